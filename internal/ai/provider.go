// Package ai holds the contract to the external routine-analysis service.
// The service is consumed strictly over HTTP; this package defines the
// request/response shapes and validates responses at the boundary.
package ai

import "context"

// RoutineProvider proposes appliance routines. Implementations must treat a
// timeout the same as any other upstream failure: no partial result.
type RoutineProvider interface {
	// RecommendRoutine asks for a routine proposal from a typed situation.
	RecommendRoutine(ctx context.Context, situation string, userID uint) (*RoutineResult, error)
	// AnalyzeVoice submits a normalized WAV recording and returns the
	// recognized situation plus a routine proposal.
	AnalyzeVoice(ctx context.Context, wavPath string) (*VoiceResult, error)
}

// DeviceUpdate is one appliance state change proposed by the service. The
// voice flow additionally carries the target user id and appliance name,
// supplied by the service rather than the caller.
type DeviceUpdate struct {
	ApplianceID uint    `json:"appliance_id"`
	UserID      uint    `json:"user_id,omitempty"`
	Name        string  `json:"name,omitempty"`
	OnOff       *string `json:"onoff,omitempty"`
	State       *string `json:"state,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// RoutineResult is the proposal returned for a typed situation.
type RoutineResult struct {
	Routine string
	Updates []DeviceUpdate
}

// VoiceResult is the proposal returned for a voice recording. Situation is
// free text and may embed emotion tags like (분노).
type VoiceResult struct {
	Situation string
	Routine   string
	Updates   []DeviceUpdate
}
