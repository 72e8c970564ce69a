package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"train-feedback-server/database"
	"train-feedback-server/models"
)

// RegisterReferenceRoutes registers the dropdown reference data routes
func RegisterReferenceRoutes(router *gin.RouterGroup) {
	data := router.Group("/data")
	data.GET("/trains", GetTrains)
	data.GET("/stations", GetStations)
	data.GET("/coaches", GetCoaches)
}

// GetTrains lists the active trains for the entry form dropdown
func GetTrains(c *gin.Context) {
	var trains []models.Train
	if err := database.DB.Where("is_active = ?", true).Order("train_no ASC").Find(&trains).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch trains",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    trains,
	})
}

// GetStations lists the stations for the from/to dropdowns
func GetStations(c *gin.Context) {
	var stations []models.Station
	if err := database.DB.Order("name ASC").Find(&stations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch stations",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stations,
	})
}

// GetCoaches lists the coach codes for the entry form dropdown
func GetCoaches(c *gin.Context) {
	var coaches []models.Coach
	if err := database.DB.Order("code ASC").Find(&coaches).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch coaches",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    coaches,
	})
}
