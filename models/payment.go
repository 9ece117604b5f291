package models

import "time"

// Payment settlement states reported by the gateway callback.
const (
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

type Payment struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	UserID      uint    `json:"userId"`
	Txnid       string  `gorm:"uniqueIndex;not null" json:"txnid"`
	Amount      float64 `gorm:"not null" json:"amount"`
	Productinfo string  `gorm:"not null" json:"productinfo"`
	Firstname   string  `gorm:"not null" json:"firstname"`
	Email       string  `gorm:"not null" json:"email"`
	// PayuID is the gateway-side transaction id (mihpayid).
	PayuID    string    `json:"payuId"`
	Status    string    `gorm:"default:pending" json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PaymentHashRequest is the payload for the forward-hash endpoint.
type PaymentHashRequest struct {
	Txnid       string `json:"txnid" form:"txnid"`
	Amount      string `json:"amount" form:"amount"`
	Productinfo string `json:"productinfo" form:"productinfo"`
	Firstname   string `json:"firstname" form:"firstname"`
	Email       string `json:"email" form:"email"`
	Phone       string `json:"phone" form:"phone"`
	Surl        string `json:"surl" form:"surl"`
	Furl        string `json:"furl" form:"furl"`
}

// PaymentCallback is what the gateway posts back after settlement.
type PaymentCallback struct {
	Txnid       string `json:"txnid" form:"txnid"`
	Amount      string `json:"amount" form:"amount"`
	Productinfo string `json:"productinfo" form:"productinfo"`
	Firstname   string `json:"firstname" form:"firstname"`
	Email       string `json:"email" form:"email"`
	Status      string `json:"status" form:"status"`
	Mihpayid    string `json:"mihpayid" form:"mihpayid"`
	Hash        string `json:"hash" form:"hash"`
}
