package repository

import (
	"time"

	"github.com/modurim/homepick-api/internal/models"
)

// ApplianceRepo is the interface for appliance repository operations.
type ApplianceRepo interface {
	ListByUser(userID uint) ([]models.Appliance, error)
	GetByID(userID, applianceID uint) (*models.Appliance, error)
	Save(appliance *models.Appliance) error
	UpdateImg(userID, applianceID uint, imgURL string) error
	ApplyUpdatesStrict(userID uint, updates []models.AppUpdate) ([]models.Appliance, error)
	ApplyUpdatesPermissive(userID uint, updates []models.AppUpdate) error
}

// RoutineHistoryRepo is the interface for routine history repository operations.
type RoutineHistoryRepo interface {
	Create(entry *models.RoutineHistory) error
	CountByUser(userID uint) (int64, error)
	ExistsDuplicate(userID uint, situationTxt, routineTxt string) (bool, error)
	ListByUser(userID uint, keyword string) ([]models.RoutineHistory, error)
	ListIDsByUser(userID uint) ([]uint, error)
	GetByID(userID, historyID uint) (*models.RoutineHistory, error)
	StampExecuted(historyID uint, executedAt time.Time) error
	Delete(historyID uint) error
}

// UserRepo is the interface for user repository operations.
type UserRepo interface {
	CreateUser(user *models.User) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	EmailExists(email string) (bool, error)
}

// SpeakerRepo is the interface for AI speaker repository operations.
type SpeakerRepo interface {
	SetConnStatus(userID uint, status models.ConnStatus) error
}
