package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"breboot/configuration"
	"breboot/models"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// GetAllUsers lists every account, passwords excluded.
func GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := configuration.DB.Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Users fetched successfully", "users": users})
}

// GetAllChallengeForms lists challenge submissions, newest first.
func GetAllChallengeForms(c *gin.Context) {
	var forms []models.ChallengeSubmitForm
	if err := configuration.DB.Order("created_at DESC").Find(&forms).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error: " + err.Error()})
		return
	}
	if len(forms) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No challengeForm found"})
		return
	}
	c.JSON(http.StatusOK, forms)
}

// UpdateChallengeForm verifies a submission. Approving a Doctor's submission
// credits the challenge's reward points to the account.
func UpdateChallengeForm(c *gin.Context) {
	var form models.ChallengeSubmitForm
	if err := configuration.DB.First(&form, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Challenge submission not found"})
		return
	}

	if mediaType := c.PostForm("mediaType"); mediaType != "" {
		if mediaType != "images" && mediaType != "video" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid media type. Allowed: images, video"})
			return
		}
		form.MediaType = mediaType
	}

	var mediaFiles []string
	if form.MediaFiles != "" {
		if err := json.Unmarshal([]byte(form.MediaFiles), &mediaFiles); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid existing media format"})
			return
		}
	}
	if multipartForm, err := c.MultipartForm(); err == nil {
		uploadDir := "assets/images/challengesForm"
		if form.MediaType == "video" {
			uploadDir = "assets/videos/challengesForm"
		}
		for _, file := range multipartForm.File["mediaFiles"] {
			path, err := saveUploadedMedia(c, file, uploadDir)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "File upload error: " + err.Error()})
				return
			}
			mediaFiles = append(mediaFiles, path)
		}
	}
	if form.MediaType == "images" && len(mediaFiles) > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Maximum 5 images allowed."})
		return
	}
	if form.MediaType == "video" && len(mediaFiles) > 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only 1 video is allowed."})
		return
	}

	isVerified, err := strconv.Atoi(c.PostForm("isVerified"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid isVerified value"})
		return
	}

	switch isVerified {
	case models.SubmissionRejected:
		form.Status = "Rejected"
	case models.SubmissionApproved:
		form.Status = "Approved"

		var challenge models.Challenge
		if err := configuration.DB.First(&challenge, form.ChallengeID).Error; err != nil || challenge.Rewards == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Challenge rewards not found"})
			return
		}

		var user models.User
		if err := configuration.DB.First(&user, form.UserID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		// Points accrue only for Doctor accounts.
		if user.UserType == models.UserTypeDoctor {
			user.Points += challenge.Rewards
			if err := configuration.DB.Model(&models.User{}).Where("id = ?", user.ID).Update("points", user.Points).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to credit reward points"})
				return
			}
		}
	case models.SubmissionPending:
		form.Status = "Pending"
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid isVerified value"})
		return
	}

	form.IsVerified = isVerified
	if name := c.PostForm("name"); name != "" {
		form.Name = name
	}
	if phone := c.PostForm("phone"); phone != "" {
		form.Phone = phone
	}
	if remark := c.PostForm("remark"); remark != "" {
		form.Remark = remark
	}
	if len(mediaFiles) > 0 {
		encoded, err := json.Marshal(mediaFiles)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}
		form.MediaFiles = string(encoded)
	}

	if err := configuration.DB.Save(&form).Error; err != nil {
		log.Error("Error updating challenge submission: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Challenge updated successfully", "challengeForm": form})
}

// GetAllRedeemedRewards lists every redemption with user and reward details.
func GetAllRedeemedRewards(c *gin.Context) {
	var redeemed []models.Redeem
	if err := configuration.DB.Preload("User").Preload("Reward").Find(&redeemed).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching redeemed rewards: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":          "All redeemed rewards fetched successfully.",
		"totalRedemptions": len(redeemed),
		"redeemedRewards":  redeemed,
	})
}

type dateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// startOfToday returns local midnight. Truncate would cut on the UTC day
// boundary and misplace events in zones ahead of UTC.
func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// lastSevenDayCounts buckets timestamps by local day over the trailing week,
// today included.
func lastSevenDayCounts(timestamps []time.Time) []dateCount {
	today := startOfToday()
	start := today.AddDate(0, 0, -6)

	counts := make([]dateCount, 7)
	index := make(map[string]int, 7)
	for i := 0; i < 7; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		counts[i] = dateCount{Date: date}
		index[date] = i
	}

	for _, ts := range timestamps {
		// Drivers may hand back UTC; bucket by the local day either way.
		if i, ok := index[ts.In(today.Location()).Format("2006-01-02")]; ok {
			counts[i].Count++
		}
	}
	return counts
}

// GetRedeemedRewardsGraph returns daily redemption counts for the last 7 days.
func GetRedeemedRewardsGraph(c *gin.Context) {
	start := startOfToday().AddDate(0, 0, -6)

	var redeemed []models.Redeem
	if err := configuration.DB.Where("redeemed_at >= ?", start).Find(&redeemed).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	timestamps := make([]time.Time, 0, len(redeemed))
	for _, r := range redeemed {
		timestamps = append(timestamps, r.RedeemedAt)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Redeemed rewards data for the last 7 days",
		"data":    lastSevenDayCounts(timestamps),
	})
}

// GetAllCompletedPayments lists settled payments.
func GetAllCompletedPayments(c *gin.Context) {
	var payments []models.Payment
	if err := configuration.DB.Where("status = ?", models.PaymentCompleted).Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, payments)
}

// GetCompletedPaymentsGraph returns daily settled-payment counts for the last
// 7 days.
func GetCompletedPaymentsGraph(c *gin.Context) {
	start := startOfToday().AddDate(0, 0, -6)

	var payments []models.Payment
	if err := configuration.DB.Where("status = ? AND created_at >= ?", models.PaymentCompleted, start).Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	timestamps := make([]time.Time, 0, len(payments))
	for _, p := range payments {
		timestamps = append(timestamps, p.CreatedAt)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Completed payments data for the last 7 days",
		"data":    lastSevenDayCounts(timestamps),
	})
}
