package models

import "time"

type Challenge struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	Name             string `gorm:"not null" json:"name"`
	ShortDescription string `json:"shortDescription"`
	// Descriptions and ChallengeImages hold JSON-encoded string arrays.
	Descriptions    string    `gorm:"type:text" json:"descriptions"`
	ChallengeImages string    `gorm:"type:text" json:"challenge_images"`
	Rewards         int       `json:"rewards"`
	Status          string    `json:"status"`
	WeekID          uint      `json:"weekId"`
	Week            *Week     `gorm:"foreignKey:WeekID" json:"week,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Challenge submission verification states.
const (
	SubmissionPending  = 0
	SubmissionApproved = 1
	SubmissionRejected = 2
)

type ChallengeSubmitForm struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      uint   `json:"userId"`
	ChallengeID uint   `json:"challengeId"`
	Name        string `gorm:"not null" json:"name"`
	Phone       string `gorm:"not null" json:"phone"`
	Remark      string `gorm:"type:text" json:"remark"`
	// MediaType is "images" (up to 5 files) or "video" (a single file).
	MediaType  string    `gorm:"not null" json:"mediaType"`
	MediaFiles string    `gorm:"type:text" json:"mediaFiles"`
	IsVerified int       `gorm:"default:0" json:"isVerified"`
	Status     string    `gorm:"default:Pending" json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
