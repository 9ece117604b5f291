package controllers

import (
	"errors"
	"net/http"

	"breboot/configuration"
	"breboot/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateWeek adds a new weekly program.
func CreateWeek(c *gin.Context) {
	var req struct {
		Name   string `json:"name"`
		Status string `json:"status"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name == "" || req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and status are required"})
		return
	}

	week := models.Week{Name: req.Name, Status: req.Status}
	if err := configuration.DB.Create(&week).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Week created successfully", "week": week})
}

func GetAllWeeks(c *gin.Context) {
	var weeks []models.Week
	if err := configuration.DB.Find(&weeks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, weeks)
}

func GetWeekByID(c *gin.Context) {
	var week models.Week
	if err := configuration.DB.First(&week, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Week not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, week)
}

func UpdateWeek(c *gin.Context) {
	var req struct {
		Name   string `json:"name"`
		Status string `json:"status"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var week models.Week
	if err := configuration.DB.First(&week, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Week not found"})
		return
	}

	if req.Name != "" {
		week.Name = req.Name
	}
	if req.Status != "" {
		week.Status = req.Status
	}
	if err := configuration.DB.Save(&week).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Week updated successfully", "week": week})
}

func DeleteWeek(c *gin.Context) {
	res := configuration.DB.Delete(&models.Week{}, c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Week not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Week deleted successfully"})
}
