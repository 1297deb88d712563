package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// LoginType is the type for the login provider enum.
type LoginType string

// LoginType enum values.
const (
	LoginLocal  LoginType = "local"
	LoginGoogle LoginType = "google"
	LoginKakao  LoginType = "kakao"
	LoginNaver  LoginType = "naver"
)

// User is the model for an account. Appliances, speakers, and routine
// histories all hang off a user.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Pwd       string    `gorm:"size:255;not null" json:"-"`
	Phone     string    `gorm:"size:20;not null" json:"phone"`
	Name      string    `gorm:"size:50;not null" json:"name"`
	LoginType LoginType `gorm:"type:text;not null" json:"login_type"`
	CreatedAt time.Time `json:"created_at"`
}

// IsValidLoginType checks if the LoginType is one of the supported providers.
func (u *User) IsValidLoginType() bool {
	switch u.LoginType {
	case LoginLocal, LoginGoogle, LoginKakao, LoginNaver:
		return true
	default:
		return false
	}
}

// BeforeCreate is a GORM hook that runs before creating a new User.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if !u.IsValidLoginType() {
		// Cancel transaction
		return errors.New("invalid LoginType provided")
	}

	return nil
}
