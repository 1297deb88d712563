package service

import (
	"github.com/modurim/homepick-api/internal/ai"
	"github.com/modurim/homepick-api/internal/models"
)

// toAppUpdates converts analysis-service updates into the persisted update
// shape, verbatim. The service-supplied user id and appliance name are kept
// for the history log but never trusted when applying.
func toAppUpdates(updates []ai.DeviceUpdate) models.AppUpdates {
	converted := make(models.AppUpdates, len(updates))
	for i, u := range updates {
		converted[i] = models.AppUpdate{
			ApplianceID: u.ApplianceID,
			UserID:      u.UserID,
			Name:        u.Name,
			State:       u.State,
			IsActive:    u.IsActive,
		}
		if u.OnOff != nil {
			onoff := models.OnOff(*u.OnOff)
			converted[i].OnOff = &onoff
		}
	}
	return converted
}
