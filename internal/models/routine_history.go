package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// RoutineResult is the type for the routine outcome enum.
type RoutineResult string

// RoutineResult enum values.
const (
	ResultSuccess RoutineResult = "success"
	ResultFailed  RoutineResult = "failed"
)

// AppUpdate is a sparse patch to one appliance's power, state, and active
// fields. Nil fields are left unchanged. The analysis service additionally
// supplies the target user id and appliance name in its responses; both are
// stored verbatim but ignored when applying.
type AppUpdate struct {
	ApplianceID uint    `json:"appliance_id"`
	UserID      uint    `json:"user_id,omitempty"`
	Name        string  `json:"name,omitempty"`
	OnOff       *OnOff  `json:"onoff,omitempty"`
	State       *string `json:"state,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// AppUpdates is a list of AppUpdate stored as a JSON column.
type AppUpdates []AppUpdate

// Value implements driver.Valuer for JSON column storage.
func (u AppUpdates) Value() (driver.Value, error) {
	if u == nil {
		u = AppUpdates{}
	}
	return json.Marshal(u)
}

// Scan implements sql.Scanner for JSON column storage.
func (u *AppUpdates) Scan(value interface{}) error {
	if value == nil {
		*u = AppUpdates{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, u)
	case string:
		return json.Unmarshal([]byte(v), u)
	default:
		return fmt.Errorf("unsupported type for AppUpdates: %T", value)
	}
}

// RoutineHistory is the append-only log of executed/accepted routines.
// Entries are created on accept or voice auto-accept, stamped once with a
// new ExecutedAt on re-execution, and removed only by explicit deletion.
type RoutineHistory struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	UserID       uint          `gorm:"index;not null" json:"user_id"`
	SituationTxt string        `gorm:"size:500;not null" json:"situation_txt"`
	RoutineTxt   string        `gorm:"size:500;not null" json:"routine_txt"`
	AppUpdates   AppUpdates    `gorm:"type:json;not null" json:"app_updates"`
	Result       RoutineResult `gorm:"type:text;not null" json:"result"`
	CreatedAt    time.Time     `json:"created_at"`
	ExecutedAt   time.Time     `json:"executed_at"`
}

// IsValidResult checks if the Result is a known outcome.
func (h *RoutineHistory) IsValidResult() bool {
	switch h.Result {
	case ResultSuccess, ResultFailed:
		return true
	default:
		return false
	}
}

// Validate checks the fields required before appending an entry.
func (h *RoutineHistory) Validate() error {
	if h.UserID == 0 {
		return errors.New("routine history requires a user id")
	}
	if h.SituationTxt == "" || h.RoutineTxt == "" {
		return errors.New("routine history requires situation and routine text")
	}
	if !h.IsValidResult() {
		return errors.New("invalid routine result provided")
	}
	return nil
}
