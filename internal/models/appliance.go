package models

import "time"

// OnOff is the type for the appliance power enum.
type OnOff string

// OnOff enum values.
const (
	PowerOn  OnOff = "on"
	PowerOff OnOff = "off"
)

// IsValid checks if the OnOff value is "on" or "off".
func (o OnOff) IsValid() bool {
	return o == PowerOn || o == PowerOff
}

// Appliance is the model for a user-owned controllable device. Appliances
// are provisioned outside this service; the API only reads and mutates
// their state.
type Appliance struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Name      string    `gorm:"size:50;not null" json:"name"`
	OnOff     OnOff     `gorm:"column:onoff;type:text;not null" json:"onoff"`
	State     string    `gorm:"size:100" json:"state"`
	Img       string    `gorm:"size:255;not null" json:"img"`
	IsActive  bool      `gorm:"not null" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
