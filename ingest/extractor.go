package ingest

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"train-feedback-server/models"
)

// ExtractionError reports a sheet or row that could not be mapped. Row is
// 1-based and 0 for sheet-level failures.
type ExtractionError struct {
	Sheet   string `json:"sheet"`
	Row     int    `json:"row,omitempty"`
	Message string `json:"message"`
}

// ExtractionResult is the outcome of parsing one uploaded workbook
type ExtractionResult struct {
	Feedbacks []models.UploadedFeedback
	Errors    []ExtractionError
}

// Accepted date cell layouts, normalized to yyyy-mm-dd on extraction
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/06",
	"02-01-2006",
	"2006/01/02",
	"02-Jan-06",
	"01-02-06", // excelize default display for date-styled cells
}

// ExtractWorkbook reads an XLSX workbook and maps every sheet into candidate
// feedback records. Each sheet carries its own train/report-date header
// context; a sheet whose header cannot be read is reported and skipped
// without affecting the others. Rows that cannot be mapped are reported
// individually. The transform is pure: nothing is validated or persisted here.
func ExtractWorkbook(r io.Reader) (*ExtractionResult, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer wb.Close()

	result := &ExtractionResult{}
	for _, sheet := range wb.GetSheetList() {
		extractSheet(wb, sheet, result)
	}
	return result, nil
}

// sheetHeader is the per-sheet context shared by all of its rows
type sheetHeader struct {
	trainNo    string
	trainName  string
	reportDate string
}

func extractSheet(wb *excelize.File, sheet string, result *ExtractionResult) {
	rows, err := wb.GetRows(sheet)
	if err != nil {
		result.Errors = append(result.Errors, ExtractionError{
			Sheet:   sheet,
			Message: fmt.Sprintf("unreadable sheet: %v", err),
		})
		return
	}

	header, headerRows, err := readSheetHeader(rows)
	if err != nil {
		result.Errors = append(result.Errors, ExtractionError{
			Sheet:   sheet,
			Message: err.Error(),
		})
		return
	}

	columns, columnRow := findColumnRow(rows, headerRows)
	if columns == nil {
		result.Errors = append(result.Errors, ExtractionError{
			Sheet:   sheet,
			Message: "no column header row found (expected a row containing \"Feedback No\")",
		})
		return
	}

	for i := columnRow + 1; i < len(rows); i++ {
		row := rows[i]
		if isBlankRow(row) {
			continue
		}
		fb, err := mapRow(row, columns, header)
		if err != nil {
			result.Errors = append(result.Errors, ExtractionError{
				Sheet:   sheet,
				Row:     i + 1,
				Message: err.Error(),
			})
			continue
		}
		result.Feedbacks = append(result.Feedbacks, models.UploadedFeedback{
			Feedback: fb,
			Sheet:    sheet,
		})
	}
}

// readSheetHeader scans the leading rows for the labeled train context cells.
// Labels and values sit in adjacent cells ("Train No" | "12301" | ...).
// Returns the number of rows consumed by the header block.
func readSheetHeader(rows [][]string) (sheetHeader, int, error) {
	var h sheetHeader
	scanned := 0
	for r := 0; r < len(rows) && r < 5; r++ {
		row := rows[r]
		if rowHasLabel(row, "feedback no") {
			break
		}
		scanned = r + 1
		for c := 0; c < len(row)-1; c++ {
			label := normalizeLabel(row[c])
			value := strings.TrimSpace(row[c+1])
			switch label {
			case "train no":
				h.trainNo = value
			case "train name":
				h.trainName = value
			case "report date":
				h.reportDate = value
			}
		}
	}

	if h.trainNo == "" || h.reportDate == "" {
		return h, scanned, fmt.Errorf("unreadable header: train number and report date are required")
	}
	normalized, err := NormalizeDate(h.reportDate)
	if err != nil {
		return h, scanned, fmt.Errorf("unreadable header: %v", err)
	}
	h.reportDate = normalized
	return h, scanned, nil
}

// findColumnRow locates the row of per-record column headers and maps
// normalized header names to column indexes
func findColumnRow(rows [][]string, from int) (map[string]int, int) {
	for r := from; r < len(rows); r++ {
		if !rowHasLabel(rows[r], "feedback no") {
			continue
		}
		columns := make(map[string]int)
		for c, cell := range rows[r] {
			name := normalizeLabel(cell)
			switch name {
			case "feedback no":
				columns["feedbackNo"] = c
			case "coach", "coach no":
				columns["coachNo"] = c
			case "pnr":
				columns["pnr"] = c
			case "mobile", "mobile no":
				columns["mobile"] = c
			case "ns-1", "ns1":
				columns["ns1"] = c
			case "ns-2", "ns2":
				columns["ns2"] = c
			case "ns-3", "ns3":
				columns["ns3"] = c
			case "psi":
				columns["psi"] = c
			case "feedback text", "feedback":
				columns["feedbackText"] = c
			case "feedback rating", "rating":
				columns["feedbackRating"] = c
			case "date":
				columns["date"] = c
			}
		}
		return columns, r
	}
	return nil, 0
}

// mapRow converts one data row into a candidate record using the sheet's
// header context. Blank numeric cells default to 0.
func mapRow(row []string, columns map[string]int, header sheetHeader) (models.Feedback, error) {
	fb := models.Feedback{
		TrainNo:    header.trainNo,
		TrainName:  header.trainName,
		ReportDate: header.reportDate,
		Date:       header.reportDate,
	}

	for _, required := range []string{"feedbackNo", "coachNo", "pnr", "mobile"} {
		if _, ok := columns[required]; !ok {
			return fb, fmt.Errorf("missing mandatory column %q", required)
		}
	}

	feedbackNo, err := cellInt(row, columns, "feedbackNo")
	if err != nil {
		return fb, err
	}
	if feedbackNo == 0 {
		return fb, fmt.Errorf("feedback number is blank")
	}
	fb.FeedbackNo = feedbackNo
	fb.CoachNo = cellString(row, columns, "coachNo")
	fb.PNR = cellString(row, columns, "pnr")
	fb.Mobile = cellString(row, columns, "mobile")

	if fb.NS1, err = cellInt(row, columns, "ns1"); err != nil {
		return fb, err
	}
	if fb.NS2, err = cellInt(row, columns, "ns2"); err != nil {
		return fb, err
	}
	if fb.NS3, err = cellInt(row, columns, "ns3"); err != nil {
		return fb, err
	}
	if fb.PSI, err = cellInt(row, columns, "psi"); err != nil {
		return fb, err
	}

	fb.FeedbackText = cellString(row, columns, "feedbackText")
	fb.FeedbackRating = strings.ToLower(cellString(row, columns, "feedbackRating"))

	if raw := cellString(row, columns, "date"); raw != "" {
		normalized, err := NormalizeDate(raw)
		if err != nil {
			return fb, err
		}
		fb.Date = normalized
	}

	return fb, nil
}

func cellString(row []string, columns map[string]int, name string) string {
	c, ok := columns[name]
	if !ok || c >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[c])
}

func cellInt(row []string, columns map[string]int, name string) (int, error) {
	raw := cellString(row, columns, name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		// Tolerate numeric cells formatted with a decimal point
		if f, ferr := strconv.ParseFloat(raw, 64); ferr == nil && f == float64(int(f)) {
			return int(f), nil
		}
		return 0, fmt.Errorf("column %q: %q is not a number", name, raw)
	}
	return n, nil
}

// NormalizeDate converts a date cell to the canonical yyyy-mm-dd form.
// Accepts common display layouts plus raw Excel serial numbers.
func NormalizeDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("date is blank")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("unparseable date %q", raw)
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func rowHasLabel(row []string, label string) bool {
	for _, cell := range row {
		if normalizeLabel(cell) == label {
			return true
		}
	}
	return false
}

func normalizeLabel(cell string) string {
	s := strings.ToLower(strings.TrimSpace(cell))
	s = strings.TrimRight(s, ".:")
	return strings.TrimSpace(s)
}
