// Common service-level error values. Translation into HTTP status codes is
// performed at the handler layer; no error escapes a handler untranslated.
package service

import "errors"

// Recommendation negotiation errors.
var (
	// ErrSituationRequired is returned when a propose call carries no
	// situation text.
	ErrSituationRequired = errors.New("situation is required")

	// ErrRecommendationNotFound indicates the user has no pending
	// recommendation.
	ErrRecommendationNotFound = errors.New("no pending recommendation")

	// ErrForbidden indicates the pending recommendation belongs to a
	// different user than the caller.
	ErrForbidden = errors.New("recommendation belongs to another user")

	// ErrDuplicateRoutine is returned when accepting a recommendation whose
	// situation and routine text already exist in the user's history.
	ErrDuplicateRoutine = errors.New("identical routine already exists for this situation")

	// ErrUpstream wraps failures of the external analysis service,
	// including timeouts and malformed responses.
	ErrUpstream = errors.New("analysis service request failed")
)

// Appliance errors.
var (
	// ErrInvalidPower is returned when a power value is neither "on" nor "off".
	ErrInvalidPower = errors.New(`power must be "on" or "off"`)

	// ErrInvalidApplianceID is returned when a bulk update entry carries no
	// usable appliance id.
	ErrInvalidApplianceID = errors.New("invalid appliance id")

	// ErrEmptyUpdates is returned when a bulk update carries no entries.
	ErrEmptyUpdates = errors.New("no appliance updates provided")
)

// Voice pipeline errors.
var (
	// ErrScenarioNotFound indicates an unknown pre-recorded scenario name.
	ErrScenarioNotFound = errors.New("unknown voice scenario")
)

// Account errors.
var (
	// ErrEmailTaken indicates an account with the email already exists.
	ErrEmailTaken = errors.New("email already in use")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
