package models

import "time"

type Reward struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Points      int       `gorm:"not null" json:"points"`
	Status      string    `json:"status"`
	RewardImage string    `json:"reward_image"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Redeem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null" json:"userId"`
	RewardID   uint      `gorm:"not null" json:"rewardId"`
	RedeemedAt time.Time `gorm:"autoCreateTime" json:"redeemedAt"`
	User       *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Reward     *Reward   `gorm:"foreignKey:RewardID" json:"reward,omitempty"`
}
