package repository

import (
	"github.com/modurim/homepick-api/internal/logger"
	"github.com/modurim/homepick-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SpeakerRepository is a repository for interacting with AI speakers.
type SpeakerRepository struct {
	DB *gorm.DB
}

// NewSpeakerRepository creates a new SpeakerRepository.
func NewSpeakerRepository(db *gorm.DB) *SpeakerRepository {
	return &SpeakerRepository{DB: db}
}

// SetConnStatus updates the connection status of all of a user's speakers.
// A user with no registered speakers is not an error.
func (r *SpeakerRepository) SetConnStatus(userID uint, status models.ConnStatus) error {
	err := r.DB.Model(&models.AiSpeaker{}).
		Where("user_id = ?", userID).
		Update("conn_status", status).Error
	if err != nil {
		logger.Get().Error("failed to update speaker connection status",
			zap.Uint("user_id", userID), zap.Error(err))
	}
	return err
}
