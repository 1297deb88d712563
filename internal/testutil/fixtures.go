package testutil

import (
	"time"

	"github.com/modurim/homepick-api/internal/ai"
	"github.com/modurim/homepick-api/internal/models"
)

// TestUser creates a test user.
func TestUser() *models.User {
	return &models.User{
		ID:        1,
		Email:     "test@example.com",
		Pwd:       "$2a$12$abcdefghijklmnopqrstuuABCDEFGHIJKLMNOPQRSTUVWXYZ012",
		Phone:     "010-1234-5678",
		Name:      "테스트",
		LoginType: models.LoginLocal,
		CreatedAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

// TestAppliances creates a small set of appliances owned by user 1.
func TestAppliances() []*models.Appliance {
	return []*models.Appliance{
		{ID: 1, UserID: 1, Name: "에어컨", OnOff: models.PowerOff, State: "대기", Img: "https://example.com/ac.jpg", IsActive: false},
		{ID: 2, UserID: 1, Name: "공기청정기", OnOff: models.PowerOn, State: "자동", Img: "https://example.com/purifier.jpg", IsActive: true},
		{ID: 3, UserID: 1, Name: "조명", OnOff: models.PowerOff, State: "대기", Img: "https://example.com/light.jpg", IsActive: false},
	}
}

// TestAppUpdates creates a two-entry update batch touching appliances 1 and 2.
func TestAppUpdates() models.AppUpdates {
	on := models.PowerOn
	cooling := "냉방"
	auto := "자동"
	active := true
	return models.AppUpdates{
		{ApplianceID: 1, OnOff: &on, State: &cooling, IsActive: &active},
		{ApplianceID: 2, OnOff: &on, State: &auto, IsActive: &active},
	}
}

// TestRoutineResult creates an ai.RoutineResult matching TestAppUpdates.
func TestRoutineResult() *ai.RoutineResult {
	on := "on"
	cooling := "냉방"
	auto := "자동"
	active := true
	return &ai.RoutineResult{
		Routine: "에어컨을 냉방으로 켜고 공기청정기를 자동으로 켭니다.",
		Updates: []ai.DeviceUpdate{
			{ApplianceID: 1, OnOff: &on, State: &cooling, IsActive: &active},
			{ApplianceID: 2, OnOff: &on, State: &auto, IsActive: &active},
		},
	}
}

// TestVoiceResult creates an ai.VoiceResult with a tagged situation.
func TestVoiceResult() *ai.VoiceResult {
	on := "on"
	cooling := "냉방"
	active := true
	return &ai.VoiceResult{
		Situation: "너무 더워서 (분노) 짜증이 나요",
		Routine:   "에어컨을 냉방으로 켭니다.",
		Updates: []ai.DeviceUpdate{
			{ApplianceID: 1, OnOff: &on, State: &cooling, IsActive: &active},
		},
	}
}
