package controllers

import (
	"encoding/json"
	"net/http"

	"breboot/configuration"
	"breboot/models"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// currentUser pulls the account the auth middleware attached to the context.
func currentUser(c *gin.Context) (models.User, bool) {
	value, ok := c.Get("user")
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied. User not found."})
		return models.User{}, false
	}
	user, ok := value.(models.User)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return models.User{}, false
	}
	return user, true
}

// GetUserDetails returns the authenticated account, password excluded.
func GetUserDetails(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User found", "user": user})
}

// GetWeeks lists the weekly programs. Doctors only.
func GetWeeks(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if user.UserType != models.UserTypeDoctor {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied. Only doctors can access this resource."})
		return
	}

	var weeks []models.Week
	if err := configuration.DB.Find(&weeks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching weeks"})
		return
	}
	if len(weeks) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No weeks found for this doctor"})
		return
	}
	c.JSON(http.StatusOK, weeks)
}

// GetChallenges lists challenges with their weeks. Doctors only.
func GetChallenges(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if user.UserType != models.UserTypeDoctor {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied. Only doctors can access this resource."})
		return
	}

	var challenges []models.Challenge
	if err := configuration.DB.Preload("Week").Find(&challenges).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching challenges"})
		return
	}
	if len(challenges) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No challenges found for this doctor"})
		return
	}
	c.JSON(http.StatusOK, challenges)
}

// GetProducts lists products, available to every authenticated user.
func GetProducts(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	var products []models.Product
	if err := configuration.DB.Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching products"})
		return
	}
	if len(products) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No products found"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// SubmitChallenge accepts proof-of-completion media for a challenge. Up to 5
// images or a single video.
func SubmitChallenge(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}

	submission := models.ChallengeSubmitForm{
		UserID:    user.ID,
		Name:      c.PostForm("name"),
		Phone:     c.PostForm("phone"),
		Remark:    c.PostForm("remark"),
		MediaType: c.PostForm("mediaType"),
		Status:    "Pending",
	}
	if submission.Name == "" {
		submission.Name = user.Name
	}
	if submission.Phone == "" {
		submission.Phone = user.Phone
	}

	var challenge models.Challenge
	if err := configuration.DB.First(&challenge, c.PostForm("challengeId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
		return
	}
	submission.ChallengeID = challenge.ID

	if submission.MediaType != "images" && submission.MediaType != "video" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid media type. Allowed: images, video"})
		return
	}

	files := form.File["mediaFiles"]
	if submission.MediaType == "images" && len(files) > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Maximum 5 images allowed."})
		return
	}
	if submission.MediaType == "video" && len(files) > 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only 1 video is allowed."})
		return
	}

	uploadDir := "assets/images/challengesForm"
	if submission.MediaType == "video" {
		uploadDir = "assets/videos/challengesForm"
	}

	var mediaFiles []string
	for _, file := range files {
		path, err := saveUploadedMedia(c, file, uploadDir)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File upload error: " + err.Error()})
			return
		}
		mediaFiles = append(mediaFiles, path)
	}
	if len(mediaFiles) > 0 {
		encoded, err := json.Marshal(mediaFiles)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		submission.MediaFiles = string(encoded)
	}

	if err := configuration.DB.Create(&submission).Error; err != nil {
		log.Error("Error creating challenge submission: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit challenge"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Challenge submitted successfully",
		"challengeForm": submission,
	})
}

// RedeemReward exchanges reward points for a catalogue reward. The deduction
// and the redemption record are written in one transaction.
func RedeemReward(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		RewardID uint `json:"rewardId"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	var reward models.Reward
	if err := configuration.DB.First(&reward, req.RewardID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found"})
		return
	}

	if user.Points < reward.Points {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient points to redeem this reward"})
		return
	}

	tx := configuration.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	user.Points -= reward.Points
	if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Update("points", user.Points).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update points"})
		return
	}

	redeem := models.Redeem{UserID: user.ID, RewardID: reward.ID}
	if err := tx.Create(&redeem).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to redeem reward"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to redeem reward"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Reward redeemed successfully",
		"remainingPoints": user.Points,
	})
}
