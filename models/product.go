package models

import "time"

type Product struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	OldPrice    float64 `gorm:"not null" json:"oldPrice"`
	// Discounted prices derived from OldPrice: 30% off for doctors, 20% off
	// for referred users.
	PriceForDoctor    float64   `json:"priceForDoctor"`
	PriceForOtherUser float64   `json:"priceForOtherUser"`
	ProductImage      string    `json:"product_image"`
	Status            string    `json:"status"`
	InStock           bool      `gorm:"default:true" json:"inStock"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
