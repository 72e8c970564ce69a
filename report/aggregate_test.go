package report

import (
	"testing"

	"train-feedback-server/models"
)

func feedback(trainNo, reportDate string, feedbackNo, ns1, ns2, ns3, psi int) models.Feedback {
	return models.Feedback{
		FeedbackNo: feedbackNo,
		TrainNo:    trainNo,
		TrainName:  "Test Express",
		Date:       reportDate,
		CoachNo:    "B1",
		PNR:        "1234567890",
		Mobile:     "9830012345",
		NS1:        ns1,
		NS2:        ns2,
		NS3:        ns3,
		PSI:        psi,
		ReportDate: reportDate,
	}
}

func TestAggregateSumsAndFormats(t *testing.T) {
	sheet := ReportSheet{
		TrainNo:    "12301",
		ReportDate: "2024-03-15",
		Feedbacks: []models.Feedback{
			feedback("12301", "2024-03-15", 1, 2, 1, 0, 80),
			feedback("12301", "2024-03-15", 2, 1, 0, 3, 100),
		},
	}

	totals := Aggregate(sheet)
	if totals.Count != 2 {
		t.Errorf("Count = %d, want 2", totals.Count)
	}
	if totals.NS1 != 3 || totals.NS2 != 1 || totals.NS3 != 3 {
		t.Errorf("NS sums wrong: %+v", totals)
	}
	if totals.PSI != 180 {
		t.Errorf("PSI = %d, want 180", totals.PSI)
	}
	if totals.PercentagePSI != "90.00" {
		t.Errorf("PercentagePSI = %q, want \"90.00\"", totals.PercentagePSI)
	}
	// The average figure is the raw PSI sum, matching the legacy report
	if totals.AveragePSI != "180.00" {
		t.Errorf("AveragePSI = %q, want \"180.00\"", totals.AveragePSI)
	}
}

func TestAggregateEmptySheet(t *testing.T) {
	totals := Aggregate(ReportSheet{TrainNo: "12301", ReportDate: "2024-03-15"})
	if totals.Count != 0 {
		t.Errorf("Count = %d, want 0", totals.Count)
	}
	if totals.PercentagePSI != "0" || totals.AveragePSI != "0" {
		t.Errorf("empty sheet figures should be \"0\": %+v", totals)
	}
}

func TestAggregateFractionalPercentage(t *testing.T) {
	sheet := ReportSheet{
		Feedbacks: []models.Feedback{
			feedback("12301", "2024-03-15", 1, 0, 0, 0, 85),
			feedback("12301", "2024-03-15", 2, 0, 0, 0, 90),
			feedback("12301", "2024-03-15", 3, 0, 0, 0, 92),
		},
	}
	totals := Aggregate(sheet)
	if totals.PercentagePSI != "89.00" {
		t.Errorf("PercentagePSI = %q, want \"89.00\"", totals.PercentagePSI)
	}
	if totals.AveragePSI != "267.00" {
		t.Errorf("AveragePSI = %q, want \"267.00\"", totals.AveragePSI)
	}
}

func TestBuildSheetsGroupsByTrainAndDate(t *testing.T) {
	records := []models.Feedback{
		feedback("12301", "2024-03-15", 1, 0, 0, 0, 80),
		feedback("12841", "2024-03-15", 1, 0, 0, 0, 70),
		feedback("12301", "2024-03-15", 2, 0, 0, 0, 90),
		feedback("12301", "2024-03-16", 1, 0, 0, 0, 60),
	}

	sheets := BuildSheets(records)
	if len(sheets) != 3 {
		t.Fatalf("expected 3 sheets, got %d", len(sheets))
	}

	// First-seen order of (trainNo, reportDate) keys
	if sheets[0].TrainNo != "12301" || sheets[0].ReportDate != "2024-03-15" {
		t.Errorf("sheet 0 = %s/%s", sheets[0].TrainNo, sheets[0].ReportDate)
	}
	if sheets[1].TrainNo != "12841" {
		t.Errorf("sheet 1 = %s/%s", sheets[1].TrainNo, sheets[1].ReportDate)
	}
	if sheets[2].ReportDate != "2024-03-16" {
		t.Errorf("sheet 2 = %s/%s", sheets[2].TrainNo, sheets[2].ReportDate)
	}

	if len(sheets[0].Feedbacks) != 2 {
		t.Fatalf("sheet 0 should hold 2 records, got %d", len(sheets[0].Feedbacks))
	}
	if sheets[0].Feedbacks[0].FeedbackNo != 1 || sheets[0].Feedbacks[1].FeedbackNo != 2 {
		t.Errorf("records re-ordered within sheet: %+v", sheets[0].Feedbacks)
	}
}

func TestBuildSheetsBackfillsTrainName(t *testing.T) {
	first := feedback("12301", "2024-03-15", 1, 0, 0, 0, 80)
	first.TrainName = ""
	second := feedback("12301", "2024-03-15", 2, 0, 0, 0, 90)

	sheets := BuildSheets([]models.Feedback{first, second})
	if len(sheets) != 1 {
		t.Fatalf("expected 1 sheet, got %d", len(sheets))
	}
	if sheets[0].TrainName != "Test Express" {
		t.Errorf("TrainName = %q, want backfilled name", sheets[0].TrainName)
	}
}

func TestBuildSheetsEmptyInput(t *testing.T) {
	if sheets := BuildSheets(nil); len(sheets) != 0 {
		t.Errorf("expected no sheets, got %d", len(sheets))
	}
}

func TestAggregateIsIdempotent(t *testing.T) {
	sheet := ReportSheet{
		Feedbacks: []models.Feedback{
			feedback("12301", "2024-03-15", 1, 1, 2, 3, 75),
		},
	}
	first := Aggregate(sheet)
	second := Aggregate(sheet)
	if first != second {
		t.Errorf("repeated aggregation differs: %+v vs %+v", first, second)
	}
}
