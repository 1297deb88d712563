package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/modurim/homepick-api/internal/logger"
	"github.com/modurim/homepick-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ApplianceRepository is a repository for interacting with appliances.
type ApplianceRepository struct {
	DB *gorm.DB
}

// NewApplianceRepository creates a new ApplianceRepository.
func NewApplianceRepository(db *gorm.DB) *ApplianceRepository {
	return &ApplianceRepository{DB: db}
}

// ListByUser retrieves a user's appliances ordered by id.
func (r *ApplianceRepository) ListByUser(userID uint) ([]models.Appliance, error) {
	var appliances []models.Appliance
	if err := r.DB.Where("user_id = ?", userID).
		Order("id ASC").
		Find(&appliances).Error; err != nil {
		return nil, err
	}

	return appliances, nil
}

// GetByID retrieves one appliance scoped to its owning user.
func (r *ApplianceRepository) GetByID(userID, applianceID uint) (*models.Appliance, error) {
	var appliance models.Appliance
	err := r.DB.Where("id = ? AND user_id = ?", applianceID, userID).
		First(&appliance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError(fmt.Sprintf("appliance %d not found", applianceID))
		}
		return nil, err
	}

	return &appliance, nil
}

// Save persists all fields of an appliance.
func (r *ApplianceRepository) Save(appliance *models.Appliance) error {
	return r.DB.Save(appliance).Error
}

// UpdateImg updates an appliance's image URL.
func (r *ApplianceRepository) UpdateImg(userID, applianceID uint, imgURL string) error {
	res := r.DB.Model(&models.Appliance{}).
		Where("id = ? AND user_id = ?", applianceID, userID).
		Updates(map[string]interface{}{"img": imgURL, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return NewNotFoundError(fmt.Sprintf("appliance %d not found", applianceID))
	}

	return nil
}

// ApplyUpdatesStrict applies a batch of sparse updates, aborting the whole
// batch with an ApplianceNotFoundError the first time an update references
// an appliance the user does not own. Used by the explicit bulk-update
// endpoint. Earlier updates in the batch stay applied.
func (r *ApplianceRepository) ApplyUpdatesStrict(userID uint, updates []models.AppUpdate) ([]models.Appliance, error) {
	updated := make([]models.Appliance, 0, len(updates))
	for _, update := range updates {
		var appliance models.Appliance
		err := r.DB.Where("id = ? AND user_id = ?", update.ApplianceID, userID).
			First(&appliance).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ApplianceNotFoundError{ApplianceID: update.ApplianceID}
			}
			return nil, err
		}

		if err := r.DB.Model(&appliance).Updates(sparseFields(update)).Error; err != nil {
			return nil, err
		}
		updated = append(updated, appliance)
	}

	return updated, nil
}

// ApplyUpdatesPermissive applies a batch of sparse updates, silently
// skipping updates that reference appliances the user does not own. Used by
// the recommendation and voice commit paths.
func (r *ApplianceRepository) ApplyUpdatesPermissive(userID uint, updates []models.AppUpdate) error {
	for _, update := range updates {
		res := r.DB.Model(&models.Appliance{}).
			Where("id = ? AND user_id = ?", update.ApplianceID, userID).
			Updates(sparseFields(update))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			logger.Get().Debug("skipping update for unknown appliance",
				zap.Uint("user_id", userID),
				zap.Uint("appliance_id", update.ApplianceID),
			)
		}
	}

	return nil
}

// sparseFields builds the column map for an update, leaving absent fields
// untouched and stamping updated_at.
func sparseFields(update models.AppUpdate) map[string]interface{} {
	fields := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if update.OnOff != nil {
		fields["onoff"] = *update.OnOff
	}
	if update.State != nil {
		fields["state"] = *update.State
	}
	if update.IsActive != nil {
		fields["is_active"] = *update.IsActive
	}
	return fields
}
