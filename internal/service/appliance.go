package service

import (
	"context"
	"fmt"

	"github.com/modurim/homepick-api/internal/config"
	"github.com/modurim/homepick-api/internal/logger"
	"github.com/modurim/homepick-api/internal/models"
	"github.com/modurim/homepick-api/internal/repository"
	"github.com/modurim/homepick-api/internal/s3"
	"go.uber.org/zap"
)

// ApplianceService is the business logic layer for appliance state and
// metadata.
type ApplianceService struct {
	Cfg      *config.Config
	Repo     repository.ApplianceRepo
	Notifier ApplianceNotifier
}

// NewApplianceService is the constructor function for initializing a new
// ApplianceService.
func NewApplianceService(cfg *config.Config, repo repository.ApplianceRepo, notifier ApplianceNotifier) *ApplianceService {
	return &ApplianceService{Cfg: cfg, Repo: repo, Notifier: notifier}
}

// List returns all of the user's appliances.
func (s *ApplianceService) List(userID uint) ([]models.Appliance, error) {
	return s.Repo.ListByUser(userID)
}

// Get returns one appliance owned by the user.
func (s *ApplianceService) Get(userID, applianceID uint) (*models.Appliance, error) {
	return s.Repo.GetByID(userID, applianceID)
}

// ControlPower flips a single appliance on or off. Power changes always
// reset the operating state to standby; the appliance's activity flag
// mirrors the power value.
func (s *ApplianceService) ControlPower(userID, applianceID uint, power string) (*models.Appliance, error) {
	onoff := models.OnOff(power)
	if !onoff.IsValid() {
		return nil, ErrInvalidPower
	}

	appliance, err := s.Repo.GetByID(userID, applianceID)
	if err != nil {
		return nil, err
	}

	appliance.OnOff = onoff
	appliance.State = "대기"
	appliance.IsActive = onoff == models.PowerOn

	if err := s.Repo.Save(appliance); err != nil {
		return nil, err
	}

	s.notifyState(userID)

	return appliance, nil
}

// BulkUpdate applies a batch of sparse updates strictly: every update must
// name an owned appliance, and the first miss aborts the rest of the batch.
// The appliances touched so far are returned on success.
func (s *ApplianceService) BulkUpdate(userID uint, updates models.AppUpdates) ([]models.Appliance, error) {
	if len(updates) == 0 {
		return nil, ErrEmptyUpdates
	}
	for _, u := range updates {
		if u.ApplianceID == 0 {
			return nil, ErrInvalidApplianceID
		}
		if u.OnOff != nil && !u.OnOff.IsValid() {
			return nil, ErrInvalidPower
		}
	}

	updated, err := s.Repo.ApplyUpdatesStrict(userID, updates)
	if err != nil {
		return nil, err
	}

	s.notifyState(userID)

	return updated, nil
}

// UploadImage stores an appliance photo in S3 and records the resulting
// URL on the appliance.
func (s *ApplianceService) UploadImage(ctx context.Context, userID, applianceID uint, imgBytes []byte) (string, error) {
	appliance, err := s.Repo.GetByID(userID, applianceID)
	if err != nil {
		return "", err
	}

	key := s3.GenerateS3Key(userID, appliance.ID)
	url, err := s3.UploadApplianceImageToS3(ctx, s.Cfg, imgBytes, key)
	if err != nil {
		return "", fmt.Errorf("failed to upload appliance image: %w", err)
	}

	if err := s.Repo.UpdateImg(userID, appliance.ID, url); err != nil {
		return "", err
	}

	return url, nil
}

func (s *ApplianceService) notifyState(userID uint) {
	if s.Notifier == nil {
		return
	}
	appliances, err := s.Repo.ListByUser(userID)
	if err != nil {
		logger.Get().Warn("failed to load appliances for state feed",
			zap.Uint("user_id", userID), zap.Error(err))
		return
	}
	s.Notifier.NotifyApplianceState(userID, appliances)
}
