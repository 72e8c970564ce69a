package ingest

import (
	"fmt"
	"regexp"
	"strings"

	"train-feedback-server/models"
)

var (
	pnrPattern    = regexp.MustCompile(`^\d+$`)
	mobilePattern = regexp.MustCompile(`^\d{10}$`)
)

// MaxFeedbackWords caps the free-text feedback length
const MaxFeedbackWords = 100

// requiredFields lists the mandatory fields in check order, paired with
// accessors so the messages always name the wire field
var requiredFields = []struct {
	name  string
	value func(*models.Feedback) string
}{
	{"date", func(f *models.Feedback) string { return f.Date }},
	{"trainNo", func(f *models.Feedback) string { return f.TrainNo }},
	{"trainName", func(f *models.Feedback) string { return f.TrainName }},
	{"coachNo", func(f *models.Feedback) string { return f.CoachNo }},
	{"pnr", func(f *models.Feedback) string { return f.PNR }},
	{"mobile", func(f *models.Feedback) string { return f.Mobile }},
	{"reportDate", func(f *models.Feedback) string { return f.ReportDate }},
}

// Validate checks a candidate feedback record against the field rules and
// returns every failure. It never short-circuits: a record with a bad PNR and
// a bad mobile reports both. A nil/empty result means the record is valid.
func Validate(f *models.Feedback) []string {
	var errs []string

	for _, field := range requiredFields {
		if strings.TrimSpace(field.value(f)) == "" {
			errs = append(errs, fmt.Sprintf("%s is required", field.name))
		}
	}
	if f.FeedbackNo <= 0 {
		errs = append(errs, "feedbackNo must be a positive number")
	}

	if f.PNR != "" && !pnrPattern.MatchString(f.PNR) {
		errs = append(errs, "PNR must contain only numbers")
	}
	if f.Mobile != "" && !mobilePattern.MatchString(f.Mobile) {
		errs = append(errs, "Mobile must be a valid 10-digit number")
	}

	hasText := strings.TrimSpace(f.FeedbackText) != ""
	hasRating := strings.TrimSpace(f.FeedbackRating) != ""
	switch {
	case !hasText && !hasRating:
		errs = append(errs, "Either feedback text or rating is required")
	case hasText && hasRating:
		errs = append(errs, "Provide either feedback text or rating, not both")
	}

	if hasText && WordCount(f.FeedbackText) > MaxFeedbackWords {
		errs = append(errs, fmt.Sprintf("Feedback text cannot exceed %d words", MaxFeedbackWords))
	}
	if hasRating && !models.ValidRatings[strings.ToLower(strings.TrimSpace(f.FeedbackRating))] {
		errs = append(errs, fmt.Sprintf("Invalid feedback rating %q", f.FeedbackRating))
	}

	if f.NS1 < 0 || f.NS2 < 0 || f.NS3 < 0 {
		errs = append(errs, "NS-1/NS-2/NS-3 cannot be negative")
	}
	if f.PSI < 0 {
		errs = append(errs, "PSI cannot be negative")
	}

	return errs
}

// WordCount counts whitespace-separated words, ignoring leading and trailing
// space the way the entry form does
func WordCount(text string) int {
	return len(strings.Fields(text))
}
