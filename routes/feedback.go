package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"train-feedback-server/database"
	"train-feedback-server/ingest"
	"train-feedback-server/models"
)

// RegisterFeedbackRoutes registers the feedback entry and search routes
func RegisterFeedbackRoutes(router *gin.RouterGroup) {
	router.POST("", CreateFeedback)
	router.GET("/search", SearchFeedbacks)
	router.GET("/count", GetFeedbackCount)
	router.GET("/:id", GetFeedbackById)
}

// RegisterAdminFeedbackRoutes registers the admin-only edit and delete routes
func RegisterAdminFeedbackRoutes(router *gin.RouterGroup) {
	router.PUT("/:id", UpdateFeedback)
	router.DELETE("/:id", DeleteFeedback)
}

// CreateFeedback persists a single feedback entry. The feedback number is
// assigned from the running count for the train and date when absent.
func CreateFeedback(c *gin.Context) {
	var req models.FeedbackCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	feedback := req.ToFeedback()
	if feedback.FeedbackNo == 0 {
		feedback.FeedbackNo = nextFeedbackNo(feedback.TrainNo, feedback.Date)
	}

	if errs := ingest.Validate(&feedback); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":          false,
			"message":          "Feedback failed validation",
			"validationErrors": errs,
		})
		return
	}

	if err := database.DB.Create(&feedback).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to save feedback",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Feedback submitted successfully",
		"data":    feedback,
	})
}

// SearchFeedbacks lists feedback entries for a train and date
func SearchFeedbacks(c *gin.Context) {
	trainNo := c.Query("trainNo")
	date := c.Query("date")
	if trainNo == "" || date == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Both train number and date are required",
		})
		return
	}

	var feedbacks []models.Feedback
	if err := database.DB.
		Where("train_no = ? AND date = ?", trainNo, date).
		Order("feedback_no ASC").
		Find(&feedbacks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to search feedbacks",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(feedbacks),
		"data":    feedbacks,
	})
}

// GetFeedbackCount returns the running count of entries for a train and date.
// The entry form shows the next feedback number from this.
func GetFeedbackCount(c *gin.Context) {
	trainNo := c.Query("trainNo")
	date := c.Query("date")
	if trainNo == "" || date == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Both train number and date are required",
		})
		return
	}

	var count int64
	if err := database.DB.Model(&models.Feedback{}).
		Where("train_no = ? AND date = ?", trainNo, date).
		Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to count feedbacks",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   count,
	})
}

// GetFeedbackById returns a specific feedback entry
func GetFeedbackById(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid feedback ID",
		})
		return
	}

	var feedback models.Feedback
	if err := database.DB.First(&feedback, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Feedback not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    feedback,
	})
}

// UpdateFeedback replaces the editable fields of a feedback entry. The
// aggregate snapshot fields are stored as given, never recomputed.
func UpdateFeedback(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid feedback ID",
		})
		return
	}

	var feedback models.Feedback
	if err := database.DB.First(&feedback, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Feedback not found",
		})
		return
	}

	var req models.FeedbackCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	updated := req.ToFeedback()
	updated.ID = feedback.ID
	updated.CreatedAt = feedback.CreatedAt
	if updated.FeedbackNo == 0 {
		updated.FeedbackNo = feedback.FeedbackNo
	}

	if errs := ingest.Validate(&updated); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":          false,
			"message":          "Feedback failed validation",
			"validationErrors": errs,
		})
		return
	}

	if err := database.DB.Save(&updated).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to update feedback",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Feedback updated successfully",
		"data":    updated,
	})
}

// DeleteFeedback deletes a feedback entry
func DeleteFeedback(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid feedback ID",
		})
		return
	}

	var feedback models.Feedback
	if err := database.DB.First(&feedback, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Feedback not found",
		})
		return
	}

	if err := database.DB.Delete(&feedback).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to delete feedback",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Feedback deleted successfully",
	})
}

// nextFeedbackNo returns the highest assigned number + 1 for the train/date
// batch. Count-based numbering would reissue a surviving number after a
// delete.
func nextFeedbackNo(trainNo, date string) int {
	var maxNo int
	database.DB.Model(&models.Feedback{}).
		Where("train_no = ? AND date = ?", trainNo, date).
		Select("COALESCE(MAX(feedback_no), 0)").
		Scan(&maxNo)
	return maxNo + 1
}
