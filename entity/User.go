package entity

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email    string `json:"email" gorm:"uniqueIndex"`
	Password string `json:"-"`

	EmailVerified bool `json:"emailVerified"`

	// pending email OTP, cleared after a successful verify
	OTPCode      string     `json:"-"`
	OTPExpiresAt *time.Time `json:"-"`

	Rider *Rider `json:"-"` // nil until the rider profile is submitted
}
