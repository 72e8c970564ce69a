package routes

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"train-feedback-server/config"
	"train-feedback-server/ingest"
	"train-feedback-server/models"
	"train-feedback-server/report"
)

// RegisterUploadRoutes registers the bulk upload route
func RegisterUploadRoutes(router *gin.RouterGroup) {
	router.POST("/upload-xlsx", UploadFeedbackWorkbook)
}

// UploadFeedbackWorkbook extracts and validates feedback records from an
// uploaded XLSX workbook. Nothing is persisted here: the client reviews the
// staged batch and posts it to submit-bulk.
func UploadFeedbackWorkbook(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Please select a file to upload",
		})
		return
	}

	if ext := strings.ToLower(filepath.Ext(fileHeader.Filename)); ext != ".xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Only .xlsx files are supported",
		})
		return
	}

	maxBytes := int64(config.AppConfig.Upload.MaxFileSizeMB) * 1024 * 1024
	if fileHeader.Size > maxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"success": false,
			"message": "Uploaded file exceeds the size limit",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to read uploaded file",
		})
		return
	}
	defer file.Close()

	result, err := ingest.ExtractWorkbook(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	// Attach the validation verdict to every staged record
	for i := range result.Feedbacks {
		errs := ingest.Validate(&result.Feedbacks[i].Feedback)
		result.Feedbacks[i].Valid = len(errs) == 0
		result.Feedbacks[i].ValidationErrors = errs
	}

	// Group candidates into preview report sheets for the PDF download
	records := make([]models.Feedback, len(result.Feedbacks))
	for i, fb := range result.Feedbacks {
		records[i] = fb.Feedback
	}
	sheets := report.BuildSheets(records)

	c.JSON(http.StatusOK, gin.H{
		"success":          len(result.Feedbacks) > 0,
		"feedbacks":        result.Feedbacks,
		"sheetData":        sheets,
		"extractionErrors": result.Errors,
	})
}
