package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"train-feedback-server/database"
	"train-feedback-server/models"
	"train-feedback-server/report"
)

// ConsolidatedExportRequest carries staged sheet data for a consolidated PDF
type ConsolidatedExportRequest struct {
	SheetData []report.ReportSheet `json:"sheetData" binding:"required"`
}

// RegisterExportRoutes registers the PDF export routes
func RegisterExportRoutes(router *gin.RouterGroup) {
	router.GET("/export", ExportSearchPDF)
	router.POST("/export", ExportConsolidatedPDF)
	router.GET("/:id/pdf", ExportFeedbackPDF)
}

// ExportSearchPDF renders the search result for a train and date as a
// single-sheet report PDF
func ExportSearchPDF(c *gin.Context) {
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
			"message": "Failed to fetch feedbacks",
		})
		return
	}
	if len(feedbacks) == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "No feedbacks to export",
		})
		return
	}

	sheet := report.ReportSheet{
		TrainNo:    trainNo,
		TrainName:  feedbacks[0].TrainName,
		ReportDate: date,
		Feedbacks:  feedbacks,
	}

	pdfBytes, err := report.RenderSheet(sheet)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to generate PDF",
		})
		return
	}

	servePDF(c, report.SheetFilename(sheet), pdfBytes)
}

// ExportConsolidatedPDF renders staged sheet data (from an upload preview)
// as a consolidated document, one page per sheet
func ExportConsolidatedPDF(c *gin.Context) {
	var req ConsolidatedExportRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.SheetData) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "No sheet data to generate PDF",
		})
		return
	}

	pdfBytes, err := report.RenderConsolidated(req.SheetData)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to generate PDF",
		})
		return
	}

	servePDF(c, report.ConsolidatedFilename(req.SheetData), pdfBytes)
}

// ExportFeedbackPDF renders a single record as a detail document
func ExportFeedbackPDF(c *gin.Context) {
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

	pdfBytes, err := report.RenderDetail(feedback)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to generate PDF",
		})
		return
	}

	servePDF(c, report.DetailFilename(feedback), pdfBytes)
}

func servePDF(c *gin.Context, filename string, pdfBytes []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
