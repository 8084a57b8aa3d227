package models

import "time"

// VerificationCode is a single-use email code. It is either verified or
// deleted once found expired.
type VerificationCode struct {
	Record
	Email     string    `json:"email" gorm:"size:255;not null;index:idx_verification_lookup"`
	Code      string    `json:"-" gorm:"size:4;not null;index:idx_verification_lookup"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null;index"`
	Verified  bool      `json:"verified" gorm:"default:false"`
}

func (v *VerificationCode) Expired(now time.Time) bool {
	return now.After(v.ExpiresAt)
}

type SendCodeRequest struct {
	Email string `json:"email"`
}

type VerifyCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}
