package models

import (
	"time"

	"gorm.io/gorm"
)

// FeedbackRating is the categorical rating vocabulary. Ratings are stored
// lowercase; PDF output upper-cases them for display.
const (
	RatingPoor      = "poor"
	RatingAverage   = "average"
	RatingGood      = "good"
	RatingVeryGood  = "very good"
	RatingExcellent = "excellent"
)

// ValidRatings lists the accepted feedbackRating values
var ValidRatings = map[string]bool{
	RatingPoor:      true,
	RatingAverage:   true,
	RatingGood:      true,
	RatingVeryGood:  true,
	RatingExcellent: true,
}

// Feedback represents one passenger feedback entry for a train coach.
// Date and ReportDate are kept as canonical yyyy-mm-dd strings so batch
// grouping and search are exact string matches.
type Feedback struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	FeedbackNo int    `json:"feedbackNo" gorm:"not null;index:idx_feedback_batch"`
	TrainNo    string `json:"trainNo" gorm:"size:10;not null;index:idx_feedback_batch"`
	TrainName  string `json:"trainName" gorm:"size:100"`
	Date       string `json:"date" gorm:"size:10;not null;index:idx_feedback_batch"`
	CoachNo    string `json:"coachNo" gorm:"size:10;not null"`
	PNR        string `json:"pnr" gorm:"size:20;not null"`
	Mobile     string `json:"mobile" gorm:"size:10;not null"`

	// Technical measurement counts, blank cells default to 0
	NS1 int `json:"ns1" gorm:"default:0"`
	NS2 int `json:"ns2" gorm:"default:0"`
	NS3 int `json:"ns3" gorm:"default:0"`
	PSI int `json:"psi" gorm:"not null;default:0"`

	ReportDate string `json:"reportDate" gorm:"size:10;not null;index"`

	// Exactly one of FeedbackText and FeedbackRating is present (validated,
	// not enforced by the schema)
	FeedbackText   string `json:"feedbackText" gorm:"type:text"`
	FeedbackRating string `json:"feedbackRating" gorm:"size:20"`

	// Informational snapshots supplied by the operator, never recomputed
	TotalFeedbacks       *int     `json:"totalFeedbacks,omitempty"`
	TotalPercentageAtPSI *float64 `json:"totalPercentageAtPSI,omitempty"`
	AveragePSIRoundTrip  *float64 `json:"averagePSIRoundTrip,omitempty"`

	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName sets custom table name
func (Feedback) TableName() string { return "feedbacks" }

// ContentKind discriminates the feedback content variant
type ContentKind int

const (
	ContentNone ContentKind = iota
	ContentText
	ContentRating
)

// FeedbackContent is the tagged view over the text/rating field pair
type FeedbackContent struct {
	Kind   ContentKind
	Text   string
	Rating string
}

// Content returns the single content variant carried by the record. Text wins
// when both fields are populated, matching the display rules of the entry UI.
func (f *Feedback) Content() FeedbackContent {
	if f.FeedbackText != "" {
		return FeedbackContent{Kind: ContentText, Text: f.FeedbackText}
	}
	if f.FeedbackRating != "" {
		return FeedbackContent{Kind: ContentRating, Rating: f.FeedbackRating}
	}
	return FeedbackContent{Kind: ContentNone}
}

// FeedbackCreate represents the request structure for a single feedback entry
type FeedbackCreate struct {
	FeedbackNo int    `json:"feedbackNo"`
	TrainNo    string `json:"trainNo" binding:"required"`
	TrainName  string `json:"trainName" binding:"required"`
	Date       string `json:"date" binding:"required"`
	CoachNo    string `json:"coachNo" binding:"required"`
	PNR        string `json:"pnr" binding:"required"`
	Mobile     string `json:"mobile" binding:"required"`
	NS1        int    `json:"ns1"`
	NS2        int    `json:"ns2"`
	NS3        int    `json:"ns3"`
	PSI        int    `json:"psi"`
	ReportDate string `json:"reportDate" binding:"required"`

	FeedbackText   string `json:"feedbackText"`
	FeedbackRating string `json:"feedbackRating"`

	TotalFeedbacks       *int     `json:"totalFeedbacks,omitempty"`
	TotalPercentageAtPSI *float64 `json:"totalPercentageAtPSI,omitempty"`
	AveragePSIRoundTrip  *float64 `json:"averagePSIRoundTrip,omitempty"`
}

// ToFeedback converts the request into a Feedback record
func (r *FeedbackCreate) ToFeedback() Feedback {
	return Feedback{
		FeedbackNo:           r.FeedbackNo,
		TrainNo:              r.TrainNo,
		TrainName:            r.TrainName,
		Date:                 r.Date,
		CoachNo:              r.CoachNo,
		PNR:                  r.PNR,
		Mobile:               r.Mobile,
		NS1:                  r.NS1,
		NS2:                  r.NS2,
		NS3:                  r.NS3,
		PSI:                  r.PSI,
		ReportDate:           r.ReportDate,
		FeedbackText:         r.FeedbackText,
		FeedbackRating:       r.FeedbackRating,
		TotalFeedbacks:       r.TotalFeedbacks,
		TotalPercentageAtPSI: r.TotalPercentageAtPSI,
		AveragePSIRoundTrip:  r.AveragePSIRoundTrip,
	}
}

// UploadedFeedback is a staged record returned by the upload endpoint: the
// candidate plus its validation verdict. The client reviews and posts these
// back to submit-bulk, which re-validates server-side.
type UploadedFeedback struct {
	Feedback
	Sheet            string   `json:"sheet,omitempty"`
	Valid            bool     `json:"valid"`
	ValidationErrors []string `json:"validationErrors,omitempty"`
}

// InvalidFeedback reports a record that blocked a bulk submission
type InvalidFeedback struct {
	FeedbackNo       int      `json:"feedbackNo"`
	ValidationErrors []string `json:"validationErrors"`
}
