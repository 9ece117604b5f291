package models

import "github.com/golang-jwt/jwt/v5"

type Admin struct {
	AdminID  int    `gorm:"primaryKey"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type AdminClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}
