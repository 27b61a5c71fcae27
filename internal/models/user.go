package models

import (
	"github.com/golang-jwt/jwt"
)

// Roles accepted by the console.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Claims carried in console access tokens.
type Claims struct {
	UserID int    `json:"user_id"`
	Role   string `json:"role"`
	jwt.StandardClaims
}
