package report

import (
	"fmt"

	"train-feedback-server/models"
)

// ReportSheet is one logical report block: every record of a train for one
// report date, in submission order. It is a transient view, never persisted.
type ReportSheet struct {
	TrainNo    string            `json:"trainNo"`
	TrainName  string            `json:"trainName"`
	ReportDate string            `json:"reportDate"`
	Feedbacks  []models.Feedback `json:"feedbacks"`
}

// Totals carries the derived figures for one sheet. PercentagePSI is
// sum(psi)/count; AveragePSI is the raw PSI sum formatted to two decimals.
// The "average" label is carried over from the legacy report as-is.
type Totals struct {
	Count         int    `json:"count"`
	NS1           int    `json:"ns1"`
	NS2           int    `json:"ns2"`
	NS3           int    `json:"ns3"`
	PSI           int    `json:"psi"`
	PercentagePSI string `json:"percentagePSI"`
	AveragePSI    string `json:"averagePSI"`
}

// BuildSheets groups records into report sheets keyed by (trainNo,
// reportDate). Sheet order follows the first appearance of each key and
// records keep their given order; nothing is re-sorted.
func BuildSheets(records []models.Feedback) []ReportSheet {
	type key struct {
		trainNo    string
		reportDate string
	}
	index := make(map[key]int)
	var sheets []ReportSheet

	for _, fb := range records {
		k := key{fb.TrainNo, fb.ReportDate}
		i, ok := index[k]
		if !ok {
			i = len(sheets)
			index[k] = i
			sheets = append(sheets, ReportSheet{
				TrainNo:    fb.TrainNo,
				TrainName:  fb.TrainName,
				ReportDate: fb.ReportDate,
			})
		}
		if sheets[i].TrainName == "" {
			sheets[i].TrainName = fb.TrainName
		}
		sheets[i].Feedbacks = append(sheets[i].Feedbacks, fb)
	}
	return sheets
}

// Aggregate computes the totals for one sheet. An empty sheet yields "0" for
// both PSI figures rather than a division fault.
func Aggregate(sheet ReportSheet) Totals {
	t := Totals{Count: len(sheet.Feedbacks)}
	for _, fb := range sheet.Feedbacks {
		t.NS1 += fb.NS1
		t.NS2 += fb.NS2
		t.NS3 += fb.NS3
		t.PSI += fb.PSI
	}

	if t.Count == 0 {
		t.PercentagePSI = "0"
		t.AveragePSI = "0"
		return t
	}

	t.PercentagePSI = fmt.Sprintf("%.2f", float64(t.PSI)/float64(t.Count))
	t.AveragePSI = fmt.Sprintf("%.2f", float64(t.PSI))
	return t
}
