package ingest

import (
	"strings"
	"testing"

	"train-feedback-server/models"
)

func validTextFeedback() models.Feedback {
	return models.Feedback{
		FeedbackNo:   1,
		TrainNo:      "12301",
		TrainName:    "Howrah Rajdhani Express",
		Date:         "2024-03-15",
		CoachNo:      "B1",
		PNR:          "4521036985",
		Mobile:       "9830012345",
		NS1:          2,
		NS2:          1,
		NS3:          0,
		PSI:          85,
		ReportDate:   "2024-03-15",
		FeedbackText: "Coach was clean and staff were helpful",
	}
}

func validRatingFeedback() models.Feedback {
	f := validTextFeedback()
	f.FeedbackText = ""
	f.FeedbackRating = models.RatingGood
	return f
}

func TestValidateAcceptsTextOnlyRecord(t *testing.T) {
	f := validTextFeedback()
	if errs := Validate(&f); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateAcceptsRatingOnlyRecord(t *testing.T) {
	f := validRatingFeedback()
	if errs := Validate(&f); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateAccumulatesAllFailures(t *testing.T) {
	f := validTextFeedback()
	f.PNR = "45A21"
	f.Mobile = "12345"
	errs := Validate(&f)
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(errs), errs)
	}
	if !containsError(errs, "PNR must contain only numbers") {
		t.Errorf("missing PNR error in %v", errs)
	}
	if !containsError(errs, "Mobile must be a valid 10-digit number") {
		t.Errorf("missing mobile error in %v", errs)
	}
}

func TestValidateReportsEveryFailureInOneRecord(t *testing.T) {
	// Bad PNR, bad mobile and no content at all, reported together
	f := validTextFeedback()
	f.PNR = "AB123"
	f.Mobile = "98300"
	f.FeedbackText = ""
	f.FeedbackRating = ""

	errs := Validate(&f)
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(errs), errs)
	}
	for _, want := range []string{
		"PNR must contain only numbers",
		"Mobile must be a valid 10-digit number",
		"Either feedback text or rating is required",
	} {
		if !containsError(errs, want) {
			t.Errorf("expected %q in %v", want, errs)
		}
	}
}

func TestValidateRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Feedback)
		want   string
	}{
		{"missing date", func(f *models.Feedback) { f.Date = "" }, "date is required"},
		{"missing trainNo", func(f *models.Feedback) { f.TrainNo = "" }, "trainNo is required"},
		{"missing trainName", func(f *models.Feedback) { f.TrainName = "" }, "trainName is required"},
		{"missing coachNo", func(f *models.Feedback) { f.CoachNo = "  " }, "coachNo is required"},
		{"missing pnr", func(f *models.Feedback) { f.PNR = "" }, "pnr is required"},
		{"missing mobile", func(f *models.Feedback) { f.Mobile = "" }, "mobile is required"},
		{"missing reportDate", func(f *models.Feedback) { f.ReportDate = "" }, "reportDate is required"},
		{"zero feedbackNo", func(f *models.Feedback) { f.FeedbackNo = 0 }, "feedbackNo must be a positive number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validTextFeedback()
			tt.mutate(&f)
			errs := Validate(&f)
			if !containsError(errs, tt.want) {
				t.Errorf("expected %q in %v", tt.want, errs)
			}
		})
	}
}

func TestValidateContentExclusivity(t *testing.T) {
	f := validTextFeedback()
	f.FeedbackText = ""
	errs := Validate(&f)
	if !containsError(errs, "Either feedback text or rating is required") {
		t.Errorf("expected missing-content error, got %v", errs)
	}

	f = validTextFeedback()
	f.FeedbackRating = models.RatingExcellent
	errs = Validate(&f)
	if !containsError(errs, "Provide either feedback text or rating, not both") {
		t.Errorf("expected both-content error, got %v", errs)
	}
}

func TestValidateWordLimit(t *testing.T) {
	f := validTextFeedback()
	f.FeedbackText = strings.Repeat("word ", MaxFeedbackWords)
	if errs := Validate(&f); len(errs) != 0 {
		t.Fatalf("exactly %d words should pass, got %v", MaxFeedbackWords, errs)
	}

	f.FeedbackText = strings.Repeat("word ", MaxFeedbackWords+1)
	errs := Validate(&f)
	if !containsError(errs, "Feedback text cannot exceed 100 words") {
		t.Errorf("expected word-limit error, got %v", errs)
	}
}

func TestValidateRatingVocabulary(t *testing.T) {
	for rating := range models.ValidRatings {
		f := validRatingFeedback()
		f.FeedbackRating = rating
		if errs := Validate(&f); len(errs) != 0 {
			t.Errorf("rating %q should be valid, got %v", rating, errs)
		}
	}

	f := validRatingFeedback()
	f.FeedbackRating = "superb"
	errs := Validate(&f)
	if !containsError(errs, `Invalid feedback rating "superb"`) {
		t.Errorf("expected rating vocabulary error, got %v", errs)
	}
}

func TestValidateRatingCaseInsensitive(t *testing.T) {
	f := validRatingFeedback()
	f.FeedbackRating = "Very Good"
	if errs := Validate(&f); len(errs) != 0 {
		t.Errorf("mixed-case rating should pass vocabulary check, got %v", errs)
	}
}

func TestValidateNegativeCounts(t *testing.T) {
	f := validTextFeedback()
	f.NS2 = -1
	errs := Validate(&f)
	if !containsError(errs, "NS-1/NS-2/NS-3 cannot be negative") {
		t.Errorf("expected NS error, got %v", errs)
	}

	f = validTextFeedback()
	f.PSI = -5
	errs = Validate(&f)
	if !containsError(errs, "PSI cannot be negative") {
		t.Errorf("expected PSI error, got %v", errs)
	}
}

func TestValidateIsIdempotent(t *testing.T) {
	f := validTextFeedback()
	f.Mobile = "abc"
	first := Validate(&f)
	second := Validate(&f)
	if len(first) != len(second) {
		t.Fatalf("repeated validation changed results: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("error %d differs: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"one", 1},
		{"  leading and trailing  ", 3},
		{"tabs\tand\nnewlines count", 4},
	}
	for _, tt := range tests {
		if got := WordCount(tt.text); got != tt.want {
			t.Errorf("WordCount(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func containsError(errs []string, want string) bool {
	for _, e := range errs {
		if e == want {
			return true
		}
	}
	return false
}
