package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"breboot/authentication"
	"breboot/configuration"
	"breboot/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Otp is the shared OTP service, wired in main.
var Otp *authentication.OtpService

var validate = validator.New()

// Phone numbers must be exactly 10 digits and cannot start with 0.
var phoneRegex = regexp.MustCompile(`^[1-9][0-9]{9}$`)

// NextDoctorCode allocates the next referral code from the global sequence.
// The increment-and-fetch runs as a single statement so concurrent
// registrations never observe the same number.
func NextDoctorCode(db *gorm.DB) (string, error) {
	const update = "UPDATE code_trackers SET latest_number = latest_number + 1 WHERE id = 1 RETURNING latest_number"

	var latest int
	res := db.Raw(update).Scan(&latest)
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		// First allocation ever: seed the tracker row, then retry.
		tracker := models.CodeTracker{ID: 1, LatestNumber: 100}
		if err := db.Where(models.CodeTracker{ID: 1}).FirstOrCreate(&tracker).Error; err != nil {
			return "", err
		}
		res = db.Raw(update).Scan(&latest)
		if res.Error != nil {
			return "", res.Error
		}
		if res.RowsAffected == 0 {
			return "", errors.New("code tracker unavailable")
		}
	}
	return fmt.Sprintf("BYZ%d", latest), nil
}

// RegisterUser handles both steps of registration: with no otp in the body it
// issues a code to the given phone/email, with an otp it verifies the code
// and creates the account.
func RegisterUser(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if req.Phone == "" && req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Either phone or email is required"})
		return
	}

	// Reject if an account already exists for the given contact method.
	var existing models.User
	query := configuration.DB
	if req.Email != "" {
		query = query.Where("email = ?", req.Email)
	} else {
		query = query.Where("phone = ?", req.Phone)
	}
	if err := query.First(&existing).Error; err == nil {
		method := "phone"
		if req.Email != "" {
			method = "email"
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("User already exists with this %s.", method)})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error("Error checking existing user: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	if req.Phone != "" && !phoneRegex.MatchString(req.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid phone number. Must be 10 digits and cannot start with 0."})
		return
	}
	if req.Email != "" {
		if err := validate.Var(req.Email, "email"); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email address."})
			return
		}
	}

	// No OTP yet: issue one and stop here, no account is created.
	if req.Otp == "" {
		if req.Phone != "" {
			if err := Otp.IssuePhone(req.Phone); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send OTP via SMS"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "OTP sent to phone", "phone": req.Phone})
			return
		}
		if err := Otp.IssueEmail(req.Email, req.Name, req.UserType); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send OTP via email"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "OTP sent to email", "email": req.Email})
		return
	}

	identifier := req.Phone
	if identifier == "" {
		identifier = req.Email
	}
	valid, reason := Otp.Verify(identifier, req.Otp)
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"message": reason})
		return
	}

	if req.Name == "" || req.Gender == "" || req.UserType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required user fields (name, gender, userType)."})
		return
	}

	if req.Email != "" && strings.TrimSpace(req.Password) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Password is required for email registration."})
		return
	}

	userCode := strings.ToUpper(req.Code)
	initialPoints := 0

	switch {
	case req.UserType == models.UserTypeDoctor:
		code, err := NextDoctorCode(configuration.DB)
		if err != nil {
			log.Error("Error generating doctor code: ", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		userCode = code
		initialPoints = models.DoctorSignupPoints
	case req.UserType == models.UserTypeOther && userCode != "":
		// The referral code must belong to a registered doctor.
		var doctor models.User
		if err := configuration.DB.Where("code = ? AND user_type = ?", userCode, models.UserTypeDoctor).First(&doctor).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid code. No doctor found with this code."})
			return
		}
		initialPoints = models.ReferredSignupPoints
	case req.UserType == models.UserTypeOther:
		c.JSON(http.StatusBadRequest, gin.H{"message": "Code is required for OtherUsers"})
		return
	}

	var hashedPassword string
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to hash password"})
			return
		}
		hashedPassword = string(hashed)
	}

	user := models.User{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Gender:   req.Gender,
		Status:   req.Status,
		State:    req.State,
		UserType: req.UserType,
		Code:     userCode,
		Points:   initialPoints,
		Password: hashedPassword,
	}
	if err := configuration.DB.Create(&user).Error; err != nil {
		log.Error("Error creating user: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "User creation failed"})
		return
	}

	token, err := authentication.GenerateUserToken(user.ID, user.UserType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"status":  "success",
		"token":   token,
	})
}

// LoginUser authenticates by phone (OTP) or by email (password).
func LoginUser(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if req.Phone == "" && req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Either phone or email is required for login"})
		return
	}

	var user models.User
	query := configuration.DB
	if req.Email != "" {
		query = query.Where("email = ?", req.Email)
	} else {
		query = query.Where("phone = ?", req.Phone)
	}
	if err := query.First(&user).Error; err != nil {
		method := "phone"
		if req.Email != "" {
			method = "email"
		}
		c.JSON(http.StatusNotFound, gin.H{"message": fmt.Sprintf("User is not registered with this %s.", method)})
		return
	}

	if req.Phone != "" {
		if !phoneRegex.MatchString(req.Phone) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid phone number. Must be 10 digits and cannot start with 0."})
			return
		}

		if req.Otp == "" {
			if err := Otp.IssuePhone(req.Phone); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send OTP via SMS"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "OTP sent to phone", "phone": req.Phone})
			return
		}

		valid, reason := Otp.Verify(req.Phone, req.Otp)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"message": reason})
			return
		}
	} else {
		if strings.TrimSpace(req.Password) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Password is required for email login."})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid password"})
			return
		}
	}

	token, err := authentication.GenerateUserToken(user.ID, user.UserType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Login successful",
		"token":    token,
		"userType": user.UserType,
	})
}
