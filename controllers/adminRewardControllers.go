package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"breboot/configuration"
	"breboot/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func CreateReward(c *gin.Context) {
	name := c.PostForm("name")
	description := c.PostForm("description")
	points := c.PostForm("points")
	status := c.PostForm("status")

	if name == "" || description == "" || points == "" || status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	pointsValue, err := strconv.Atoi(points)
	if err != nil || pointsValue <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid points value"})
		return
	}

	var imagePath string
	if file, err := c.FormFile("reward_image"); err == nil {
		imagePath, err = saveUploadedImage(c, file, "assets/images/rewards")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File upload error: " + err.Error()})
			return
		}
	}

	reward := models.Reward{
		Name:        name,
		Description: description,
		Points:      pointsValue,
		Status:      status,
		RewardImage: imagePath,
	}
	if err := configuration.DB.Create(&reward).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Reward created successfully", "reward": reward})
}

func GetAllRewards(c *gin.Context) {
	var rewards []models.Reward
	if err := configuration.DB.Find(&rewards).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rewards": rewards})
}

func GetRewardByID(c *gin.Context) {
	var reward models.Reward
	if err := configuration.DB.First(&reward, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reward": reward})
}

func UpdateReward(c *gin.Context) {
	var reward models.Reward
	if err := configuration.DB.First(&reward, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found"})
		return
	}

	if name := c.PostForm("name"); name != "" {
		reward.Name = name
	}
	if description := c.PostForm("description"); description != "" {
		reward.Description = description
	}
	if points := c.PostForm("points"); points != "" {
		value, err := strconv.Atoi(points)
		if err != nil || value <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid points value"})
			return
		}
		reward.Points = value
	}
	if status := c.PostForm("status"); status != "" {
		reward.Status = status
	}
	if file, err := c.FormFile("reward_image"); err == nil {
		path, err := saveUploadedImage(c, file, "assets/images/rewards")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File upload error: " + err.Error()})
			return
		}
		reward.RewardImage = path
	}

	if err := configuration.DB.Save(&reward).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reward updated successfully", "reward": reward})
}

func DeleteReward(c *gin.Context) {
	var reward models.Reward
	if err := configuration.DB.First(&reward, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found"})
		return
	}
	if err := configuration.DB.Delete(&reward).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reward deleted successfully"})
}
