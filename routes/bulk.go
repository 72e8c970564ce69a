package routes

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"train-feedback-server/database"
	"train-feedback-server/ingest"
	"train-feedback-server/models"
	ws "train-feedback-server/websocket"
)

// adminHub receives batch events for the admin live feed; nil outside of a
// fully wired server
var adminHub *ws.Hub

// SetAdminHub wires the admin feed hub into the bulk submission path
func SetAdminHub(hub *ws.Hub) {
	adminHub = hub
}

// BulkSubmitRequest carries the staged batch back from the client
type BulkSubmitRequest struct {
	Feedbacks []models.UploadedFeedback `json:"feedbacks" binding:"required"`
}

// RegisterBulkRoutes registers the bulk submission route
func RegisterBulkRoutes(router *gin.RouterGroup) {
	router.POST("/submit-bulk", SubmitBulkFeedback)
}

// SubmitBulkFeedback persists a staged batch as one transaction. Every record
// is re-validated server-side; any invalid member rejects the whole batch
// with no partial commit.
func SubmitBulkFeedback(c *gin.Context) {
	var req BulkSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "No feedbacks to submit",
		})
		return
	}
	if len(req.Feedbacks) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "No feedbacks to submit",
		})
		return
	}

	// Re-validate the whole batch; the client's valid flags are advisory only.
	// Feedback numbers must be unique within a train/date batch.
	type batchKey struct {
		trainNo    string
		date       string
		feedbackNo int
	}
	seen := make(map[batchKey]bool)
	var invalid []models.InvalidFeedback
	records := make([]models.Feedback, len(req.Feedbacks))
	for i := range req.Feedbacks {
		fb := req.Feedbacks[i].Feedback
		fb.ID = 0 // staged records are never pre-assigned IDs
		errs := ingest.Validate(&fb)
		k := batchKey{fb.TrainNo, fb.Date, fb.FeedbackNo}
		if seen[k] {
			errs = append(errs, fmt.Sprintf("Duplicate feedback number %d for train %s on %s", fb.FeedbackNo, fb.TrainNo, fb.Date))
		}
		seen[k] = true
		if len(errs) > 0 {
			invalid = append(invalid, models.InvalidFeedback{
				FeedbackNo:       fb.FeedbackNo,
				ValidationErrors: errs,
			})
		}
		records[i] = fb
	}

	if len(invalid) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":          false,
			"message":          "Batch contains invalid feedbacks",
			"invalidFeedbacks": invalid,
		})
		return
	}

	// All-or-nothing insert
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		for i := range records {
			if err := tx.Create(&records[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("❌ Bulk submission failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to submit feedbacks",
		})
		return
	}

	log.Printf("✅ Bulk submission committed: %d feedbacks", len(records))
	notifyBatchSubmitted(records)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Feedbacks submitted successfully",
		"count":   len(records)},
	)
}

// notifyBatchSubmitted pushes one event per train/date batch to the admin feed
func notifyBatchSubmitted(records []models.Feedback) {
	if adminHub == nil {
		return
	}
	type key struct{ trainNo, reportDate string }
	counts := make(map[key]*ws.BatchSubmittedData)
	var order []key
	for _, fb := range records {
		k := key{fb.TrainNo, fb.ReportDate}
		if counts[k] == nil {
			counts[k] = &ws.BatchSubmittedData{
				TrainNo:    fb.TrainNo,
				TrainName:  fb.TrainName,
				ReportDate: fb.ReportDate,
			}
			order = append(order, k)
		}
		counts[k].Count++
	}
	for _, k := range order {
		adminHub.NotifyBatchSubmitted(*counts[k])
	}
}
