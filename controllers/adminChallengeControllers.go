package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"breboot/configuration"
	"breboot/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Challenges carry up to three illustration images.
var challengeImageFields = []string{"challenge_image1", "challenge_image2", "challenge_image3"}

// collectChallengeImages saves whichever of the three image fields are
// present, keeping their slot positions.
func collectChallengeImages(c *gin.Context, existing []string) ([]string, error) {
	images := make([]string, 3)
	copy(images, existing)

	for i, field := range challengeImageFields {
		file, err := c.FormFile(field)
		if err != nil {
			continue
		}
		path, err := saveUploadedImage(c, file, "assets/images/challenges")
		if err != nil {
			return nil, err
		}
		images[i] = path
	}

	var present []string
	for _, img := range images {
		if img != "" {
			present = append(present, img)
		}
	}
	return present, nil
}

// CreateChallenge adds a challenge with its images and metadata.
func CreateChallenge(c *gin.Context) {
	descriptions := c.PostForm("descriptions")
	if descriptions != "" {
		var parsed []string
		if err := json.Unmarshal([]byte(descriptions), &parsed); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid descriptions format"})
			return
		}
	}

	images, err := collectChallengeImages(c, nil)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File upload error: " + err.Error()})
		return
	}
	encodedImages, err := json.Marshal(images)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	rewards, _ := strconv.Atoi(c.PostForm("rewards"))
	weekID, _ := strconv.Atoi(c.PostForm("weekId"))

	challenge := models.Challenge{
		Name:             c.PostForm("name"),
		ShortDescription: c.PostForm("shortDescription"),
		Descriptions:     descriptions,
		ChallengeImages:  string(encodedImages),
		Rewards:          rewards,
		Status:           c.PostForm("status"),
		WeekID:           uint(weekID),
	}
	if err := configuration.DB.Create(&challenge).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Challenge created successfully", "challenge": challenge})
}

func GetAllChallenges(c *gin.Context) {
	var challenges []models.Challenge
	if err := configuration.DB.Preload("Week").Find(&challenges).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, challenges)
}

func GetChallengeByID(c *gin.Context) {
	var challenge models.Challenge
	if err := configuration.DB.Preload("Week").First(&challenge, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, challenge)
}

// UpdateChallenge updates metadata and replaces any re-uploaded image slots,
// preserving the others.
func UpdateChallenge(c *gin.Context) {
	var challenge models.Challenge
	if err := configuration.DB.First(&challenge, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
		return
	}

	// A bare status update arrives as JSON, not multipart.
	if c.ContentType() == "application/json" {
		var req struct {
			Status string `json:"status"`
		}
		if err := c.BindJSON(&req); err != nil || req.Status == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
			return
		}
		challenge.Status = req.Status
		if err := configuration.DB.Save(&challenge).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Status updated successfully", "challenge": challenge})
		return
	}

	if descriptions := c.PostForm("descriptions"); descriptions != "" {
		var parsed []string
		if err := json.Unmarshal([]byte(descriptions), &parsed); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid descriptions format"})
			return
		}
		challenge.Descriptions = descriptions
	}

	var existing []string
	if challenge.ChallengeImages != "" {
		if err := json.Unmarshal([]byte(challenge.ChallengeImages), &existing); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid existing image format"})
			return
		}
	}
	images, err := collectChallengeImages(c, existing)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File upload error: " + err.Error()})
		return
	}
	encodedImages, err := json.Marshal(images)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	challenge.ChallengeImages = string(encodedImages)

	if name := c.PostForm("name"); name != "" {
		challenge.Name = name
	}
	if short := c.PostForm("shortDescription"); short != "" {
		challenge.ShortDescription = short
	}
	if rewards := c.PostForm("rewards"); rewards != "" {
		if value, err := strconv.Atoi(rewards); err == nil {
			challenge.Rewards = value
		}
	}
	if status := c.PostForm("status"); status != "" {
		challenge.Status = status
	}
	if weekID := c.PostForm("weekId"); weekID != "" {
		if value, err := strconv.Atoi(weekID); err == nil {
			challenge.WeekID = uint(value)
		}
	}

	if err := configuration.DB.Save(&challenge).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Challenge updated successfully", "challenge": challenge})
}

func DeleteChallenge(c *gin.Context) {
	var challenge models.Challenge
	if err := configuration.DB.First(&challenge, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
		return
	}
	if err := configuration.DB.Delete(&challenge).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Challenge deleted successfully"})
}
