package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User types accepted at registration.
const (
	UserTypeDoctor = "Doctor"
	UserTypeOther  = "OtherUser"
)

// Initial reward point bonuses handed out on account creation.
const (
	DoctorSignupPoints   = 500
	ReferredSignupPoints = 50
)

type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `json:"name"`
	Phone     string `gorm:"index" json:"phone"`
	Email     string `gorm:"index" json:"email"`
	Gender    string `json:"gender"`
	Status    string `json:"status"`
	State     string `json:"state"`
	UserType  string `json:"userType"`
	Code      string `gorm:"index" json:"code"`
	Points    int    `json:"points"`
	Password  string `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CodeTracker is the global doctor referral code sequence. A single row
// (id 1) survives restarts so numbers are never reused.
type CodeTracker struct {
	ID           uint `gorm:"primaryKey"`
	LatestNumber int  `gorm:"not null"`
}

type UserClaims struct {
	ID       uint   `json:"id"`
	UserType string `json:"userType"`
	jwt.RegisteredClaims
}

// RegisterRequest carries the registration payload. The same endpoint serves
// both the OTP-issue step (no otp field) and the completion step (otp set).
type RegisterRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Gender   string `json:"gender"`
	Status   string `json:"status"`
	UserType string `json:"userType"`
	State    string `json:"state"`
	Password string `json:"password"`
	Code     string `json:"code"`
	Otp      string `json:"otp"`
}

type LoginRequest struct {
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Otp      string `json:"otp"`
}
