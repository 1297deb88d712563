package models

import "time"

// ConnStatus is the type for the speaker connection enum.
type ConnStatus string

// ConnStatus enum values.
const (
	SpeakerConnected    ConnStatus = "connected"
	SpeakerDisconnected ConnStatus = "disconnected"
)

// AiSpeaker is the model for a user's AI speaker. Its connection status
// tracks whether a client is attached to the appliance state feed.
type AiSpeaker struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"index;not null" json:"user_id"`
	Name       string     `gorm:"size:100;not null" json:"name"`
	ConnStatus ConnStatus `gorm:"type:text;not null" json:"conn_status"`
	IsActive   bool       `gorm:"not null" json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
}
