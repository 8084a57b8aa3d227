package models

import (
	"github.com/golang-jwt/jwt/v4"
)

type User struct {
	Record
	Name        string  `json:"name"`
	Email       string  `json:"email" gorm:"uniqueIndex"`
	FCMToken    string  `json:"-" gorm:"column:fcm_token"`
	FirebaseUID *string `json:"firebase_uid,omitempty" gorm:"uniqueIndex"`
}

// DisplayName falls back to the generic member label when the user has no name.
func (u *User) DisplayName() string {
	if u == nil || u.Name == "" {
		return "회원"
	}
	return u.Name
}

type UpdateFCMTokenRequest struct {
	Token string `json:"fcm_token" validate:"max=4096"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
