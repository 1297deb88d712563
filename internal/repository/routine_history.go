package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/modurim/homepick-api/internal/models"
	"gorm.io/gorm"
)

// RoutineHistoryRepository is a repository for interacting with the
// append-only routine history log.
type RoutineHistoryRepository struct {
	DB *gorm.DB
}

// NewRoutineHistoryRepository creates a new RoutineHistoryRepository.
func NewRoutineHistoryRepository(db *gorm.DB) *RoutineHistoryRepository {
	return &RoutineHistoryRepository{DB: db}
}

// Create appends a new routine history entry.
func (r *RoutineHistoryRepository) Create(entry *models.RoutineHistory) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	return r.DB.Create(entry).Error
}

// CountByUser counts a user's routine history entries.
func (r *RoutineHistoryRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&models.RoutineHistory{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// ExistsDuplicate reports whether the user already has an entry with the
// same situation and routine text. Update-list differences are ignored.
func (r *RoutineHistoryRepository) ExistsDuplicate(userID uint, situationTxt, routineTxt string) (bool, error) {
	var count int64
	err := r.DB.Model(&models.RoutineHistory{}).
		Where("user_id = ? AND situation_txt = ? AND routine_txt = ?", userID, situationTxt, routineTxt).
		Count(&count).Error
	return count > 0, err
}

// ListByUser retrieves a user's history entries newest first, optionally
// filtered by a substring match on the situation text.
func (r *RoutineHistoryRepository) ListByUser(userID uint, keyword string) ([]models.RoutineHistory, error) {
	query := r.DB.Where("user_id = ?", userID)
	if keyword != "" {
		query = query.Where("situation_txt LIKE ?", "%"+keyword+"%")
	}

	var histories []models.RoutineHistory
	if err := query.Order("created_at DESC, id DESC").Find(&histories).Error; err != nil {
		return nil, err
	}

	return histories, nil
}

// ListIDsByUser retrieves the ids of all of a user's history entries,
// newest first. Display numbering is derived from this ordering.
func (r *RoutineHistoryRepository) ListIDsByUser(userID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&models.RoutineHistory{}).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}

	return ids, nil
}

// GetByID retrieves one history entry scoped to its owning user.
func (r *RoutineHistoryRepository) GetByID(userID, historyID uint) (*models.RoutineHistory, error) {
	var history models.RoutineHistory
	err := r.DB.Where("id = ? AND user_id = ?", historyID, userID).
		First(&history).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError(fmt.Sprintf("routine history %d not found", historyID))
		}
		return nil, err
	}

	return &history, nil
}

// StampExecuted records a new execution time on an entry.
func (r *RoutineHistoryRepository) StampExecuted(historyID uint, executedAt time.Time) error {
	return r.DB.Model(&models.RoutineHistory{}).
		Where("id = ?", historyID).
		Update("executed_at", executedAt).Error
}

// Delete removes a history entry.
func (r *RoutineHistoryRepository) Delete(historyID uint) error {
	return r.DB.Delete(&models.RoutineHistory{}, historyID).Error
}
