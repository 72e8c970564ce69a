package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"train-feedback-server/models"
)

// Letterhead strings printed on every generated document
const (
	OrgName    = "Young Bengal Co-Operative Labour Contract Society Ltd."
	OrgAddress = "Regd. Off: 14/1, Nirode Behari Mullick Road, Kolkata - 700 006"
	OrgContact = "Phone: 033-6535 8154 | E-mail: ybcolcs@yahoo.in"
)

// LayoutMode selects which document layout the renderer produces
type LayoutMode int

const (
	// LayoutConsolidated renders one page per sheet
	LayoutConsolidated LayoutMode = iota
	// LayoutSheet renders a single sheet
	LayoutSheet
	// LayoutDetail renders one record as a labeled key/value document
	LayoutDetail
)

var tableColumns = []struct {
	title string
	width float64
}{
	{"Sr. No.", 13},
	{"Feedback No.", 25},
	{"Coach", 15},
	{"PNR", 25},
	{"Mobile No.", 25},
	{"NS-1", 12},
	{"NS-2", 12},
	{"NS-3", 12},
	{"PSI", 10},
	{"FEEDBACK STATUS", 41},
}

// RenderConsolidated renders every sheet on its own page
func RenderConsolidated(sheets []ReportSheet) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheet data to generate PDF")
	}
	pdf := newDocument()
	for _, sheet := range sheets {
		renderSheetPage(pdf, sheet)
	}
	return output(pdf)
}

// RenderSheet renders a single-train report
func RenderSheet(sheet ReportSheet) ([]byte, error) {
	pdf := newDocument()
	renderSheetPage(pdf, sheet)
	return output(pdf)
}

// RenderDetail renders one record as a labeled detail document
func RenderDetail(fb models.Feedback) ([]byte, error) {
	pdf := newDocument()
	renderDetailPage(pdf, fb)
	return output(pdf)
}

// ConsolidatedFilename derives the deterministic download name from the first
// sheet, e.g. feedbacks_12301_2025-01-15.pdf
func ConsolidatedFilename(sheets []ReportSheet) string {
	if len(sheets) == 0 {
		return "feedbacks.pdf"
	}
	return SheetFilename(sheets[0])
}

// SheetFilename derives the download name for one sheet
func SheetFilename(sheet ReportSheet) string {
	return fmt.Sprintf("feedbacks_%s_%s.pdf", sheet.TrainNo, sheet.ReportDate)
}

// DetailFilename derives the download name for a single-record document
func DetailFilename(fb models.Feedback) string {
	return fmt.Sprintf("feedback_%d_%s.pdf", fb.FeedbackNo, fb.TrainNo)
}

func newDocument() *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	return pdf
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// renderSheetPage draws one report page: letterhead, train context line,
// record table with TOTAL row, then the summary block
func renderSheetPage(pdf *gofpdf.Fpdf, sheet ReportSheet) {
	pdf.AddPage()

	// Letterhead
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(30, 64, 175)
	pdf.Text(20, 14, OrgName)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(20, 20, OrgAddress)
	pdf.Text(20, 26, OrgContact)

	// Train context line: number left, name centered, report date right
	pdf.SetFont("Helvetica", "B", 9)
	headerY := 36.0
	pdf.Text(20, headerY, fmt.Sprintf("Train No: %s", sheet.TrainNo))
	name := fmt.Sprintf("Train Name: %s", sheet.TrainName)
	pdf.Text(105-pdf.GetStringWidth(name)/2, headerY, name)
	date := fmt.Sprintf("Report Date: %s", displayDate(sheet.ReportDate))
	pdf.Text(190-pdf.GetStringWidth(date), headerY, date)

	// Table header
	pdf.SetXY(10, headerY+10)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(30, 64, 175)
	pdf.SetTextColor(255, 255, 255)
	for i, col := range tableColumns {
		ln := 0
		if i == len(tableColumns)-1 {
			ln = 1
		}
		pdf.CellFormat(col.width, 8, col.title, "1", ln, "CM", true, 0, "")
	}

	// Record rows, striped
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	totals := Aggregate(sheet)
	for i, fb := range sheet.Feedbacks {
		if i%2 == 1 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		drawTableRow(pdf, []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", fb.FeedbackNo),
			fb.CoachNo,
			fb.PNR,
			fb.Mobile,
			fmt.Sprintf("%d", fb.NS1),
			fmt.Sprintf("%d", fb.NS2),
			fmt.Sprintf("%d", fb.NS3),
			fmt.Sprintf("%d", fb.PSI),
			statusCell(fb),
		})
	}

	// Totals row
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(220, 220, 220)
	drawTableRow(pdf, []string{
		"TOTAL", "", "", "", "",
		fmt.Sprintf("%d", totals.NS1),
		fmt.Sprintf("%d", totals.NS2),
		fmt.Sprintf("%d", totals.NS3),
		fmt.Sprintf("%d", totals.PSI),
		"",
	})

	// Summary block
	y := pdf.GetY() + 8
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(10, y, "Total feedbacks")
	pdf.Text(120, y, fmt.Sprintf("%d", totals.Count))
	y += 8
	pdf.Text(10, y, "Total No percentage of PSI for the Rake")
	pdf.Text(120, y, totals.PercentagePSI+"%")
	y += 8
	pdf.Text(10, y, "Average PSI of Rake for the round trip")
	pdf.Text(120, y, totals.AveragePSI)
}

func drawTableRow(pdf *gofpdf.Fpdf, cells []string) {
	pdf.SetX(10)
	for i, cell := range cells {
		ln := 0
		if i == len(cells)-1 {
			ln = 1
		}
		pdf.CellFormat(tableColumns[i].width, 8, cell, "1", ln, "CM", true, 0, "")
	}
}

// statusCell renders the feedback status column: the upper-cased rating, or
// the TEXT marker when free text was given
func statusCell(fb models.Feedback) string {
	switch content := fb.Content(); content.Kind {
	case models.ContentRating:
		return strings.ToUpper(content.Rating)
	case models.ContentText:
		return "TEXT"
	default:
		return ""
	}
}

// renderDetailPage draws the single-record layout with labeled sections and
// the letterhead footer
func renderDetailPage(pdf *gofpdf.Fpdf, fb models.Feedback) {
	pdf.AddPage()

	// Centered letterhead and title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(30, 64, 175)
	centerText(pdf, 12, OrgName)
	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(20, 20, 190, 20)
	pdf.SetFont("Helvetica", "B", 20)
	centerText(pdf, 28, "Feedback Details")
	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(0, 0, 0)
	centerText(pdf, 40, fmt.Sprintf("Feedback #%d", fb.FeedbackNo))
	pdf.Line(20, 46, 190, 46)

	y := 54.0
	y = sectionTitle(pdf, y, "Train Information")
	pdf.Text(20, y, fmt.Sprintf("Train No: %s", fb.TrainNo))
	pdf.Text(110, y, fmt.Sprintf("Date: %s", displayDate(fb.Date)))
	y += 6
	pdf.Text(20, y, fmt.Sprintf("Train Name: %s", fb.TrainName))
	y += 6
	pdf.Text(20, y, fmt.Sprintf("Coach: %s", fb.CoachNo))
	y += 10

	y = sectionTitle(pdf, y, "Contact Information")
	pdf.Text(20, y, fmt.Sprintf("PNR: %s", fb.PNR))
	pdf.Text(110, y, fmt.Sprintf("Mobile: %s", fb.Mobile))
	y += 10

	y = sectionTitle(pdf, y, "Technical Data")
	pdf.Text(20, y, fmt.Sprintf("NS-1: %d", fb.NS1))
	pdf.Text(70, y, fmt.Sprintf("NS-2: %d", fb.NS2))
	pdf.Text(120, y, fmt.Sprintf("NS-3: %d", fb.NS3))
	y += 6
	pdf.Text(20, y, fmt.Sprintf("PSI: %d", fb.PSI))
	y += 6
	pdf.Text(20, y, fmt.Sprintf("Report Date: %s", displayDate(fb.ReportDate)))
	y += 10

	if fb.TotalFeedbacks != nil || fb.TotalPercentageAtPSI != nil || fb.AveragePSIRoundTrip != nil {
		y = sectionTitle(pdf, y, "Additional Metrics")
		if fb.TotalFeedbacks != nil {
			pdf.Text(20, y, fmt.Sprintf("Total Feedbacks: %d", *fb.TotalFeedbacks))
			y += 6
		}
		if fb.TotalPercentageAtPSI != nil {
			pdf.Text(20, y, fmt.Sprintf("Total %% at PSI: %.2f%%", *fb.TotalPercentageAtPSI))
			y += 6
		}
		if fb.AveragePSIRoundTrip != nil {
			pdf.Text(20, y, fmt.Sprintf("Avg PSI Round Trip: %.2f", *fb.AveragePSIRoundTrip))
			y += 6
		}
		y += 4
	}

	y = sectionTitle(pdf, y, "Feedback")
	switch content := fb.Content(); content.Kind {
	case models.ContentText:
		pdf.SetXY(20, y-4)
		pdf.MultiCell(170, 6, content.Text, "", "L", false)
	case models.ContentRating:
		pdf.Text(20, y, strings.ToUpper(content.Rating))
	}

	// Letterhead footer with page number
	_, pageHeight := pdf.GetPageSize()
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(20, pageHeight-20, 190, pageHeight-20)
	centerText(pdf, pageHeight-16, OrgName)
	centerText(pdf, pageHeight-12, OrgAddress)
	centerText(pdf, pageHeight-8, OrgContact)
	pdf.SetTextColor(150, 150, 150)
	centerText(pdf, pageHeight-4, fmt.Sprintf("Page %d of 1", pdf.PageNo()))
}

func sectionTitle(pdf *gofpdf.Fpdf, y float64, title string) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(20, y, title)
	pdf.SetFont("Helvetica", "", 10)
	return y + 8
}

func centerText(pdf *gofpdf.Fpdf, y float64, text string) {
	pdf.Text(105-pdf.GetStringWidth(text)/2, y, text)
}

// displayDate renders a canonical yyyy-mm-dd date as dd/mm/yyyy; anything
// else is passed through unchanged
func displayDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("02/01/2006")
}
