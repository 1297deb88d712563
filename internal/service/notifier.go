package service

import "github.com/modurim/homepick-api/internal/models"

// ApplianceNotifier pushes a user's committed appliance state to attached
// clients. Implemented by the websocket hub; a nil notifier disables the
// feed.
type ApplianceNotifier interface {
	NotifyApplianceState(userID uint, appliances []models.Appliance)
}
