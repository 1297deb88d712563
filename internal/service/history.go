package service

import (
	"time"

	"github.com/modurim/homepick-api/internal/logger"
	"github.com/modurim/homepick-api/internal/models"
	"github.com/modurim/homepick-api/internal/repository"
	"go.uber.org/zap"
)

// HistoryService is the business logic layer for the routine history log.
// Display numbers are never stored: they are recomputed from the full
// newest-first ordering on every call, so deleting an entry renumbers the
// rest without gaps.
type HistoryService struct {
	Repo       repository.RoutineHistoryRepo
	Appliances repository.ApplianceRepo
	Notifier   ApplianceNotifier
}

// NewHistoryService is the constructor function for initializing a new
// HistoryService.
func NewHistoryService(repo repository.RoutineHistoryRepo, appliances repository.ApplianceRepo, notifier ApplianceNotifier) *HistoryService {
	return &HistoryService{Repo: repo, Appliances: appliances, Notifier: notifier}
}

// HistoryListItem is one row of the history listing.
type HistoryListItem struct {
	Number    int       `json:"number"`
	RoutineID uint      `json:"routine_id"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryDetail is the response object for a single history entry.
type HistoryDetail struct {
	Number       int               `json:"number"`
	ID           uint              `json:"id"`
	SituationTxt string            `json:"situation_txt"`
	RoutineTxt   string            `json:"routine_txt"`
	AppUpdates   models.AppUpdates `json:"app_updates"`
}

// ExecuteResult is the response object for a routine re-execution.
type ExecuteResult struct {
	Number     int       `json:"number"`
	ID         uint      `json:"id"`
	ExecutedAt time.Time `json:"executed_at"`
}

// DeleteResult is the response object for a routine deletion.
type DeleteResult struct {
	Number int  `json:"number"`
	ID     uint `json:"id"`
}

// List returns the user's history entries newest first, numbered so that
// the oldest visible entry is 1. An optional keyword filters the situation
// text by substring.
func (s *HistoryService) List(userID uint, keyword string) ([]HistoryListItem, error) {
	histories, err := s.Repo.ListByUser(userID, keyword)
	if err != nil {
		return nil, err
	}

	items := make([]HistoryListItem, len(histories))
	for i, h := range histories {
		items[i] = HistoryListItem{
			Number:    len(histories) - i,
			RoutineID: h.ID,
			CreatedAt: h.CreatedAt,
		}
	}

	return items, nil
}

// Get returns one history entry with its display number recomputed from
// the full ordering.
func (s *HistoryService) Get(userID, historyID uint) (*HistoryDetail, error) {
	entry, err := s.Repo.GetByID(userID, historyID)
	if err != nil {
		return nil, err
	}

	number, err := s.displayNumberOf(userID, historyID)
	if err != nil {
		return nil, err
	}

	return &HistoryDetail{
		Number:       number,
		ID:           entry.ID,
		SituationTxt: entry.SituationTxt,
		RoutineTxt:   entry.RoutineTxt,
		AppUpdates:   entry.AppUpdates,
	}, nil
}

// Execute re-applies the entry's stored updates to the user's appliances
// and stamps a new execution time. Updates referencing appliances the user
// no longer owns are skipped.
func (s *HistoryService) Execute(userID, historyID uint) (*ExecuteResult, error) {
	entry, err := s.Repo.GetByID(userID, historyID)
	if err != nil {
		return nil, err
	}

	if err := s.Appliances.ApplyUpdatesPermissive(userID, entry.AppUpdates); err != nil {
		return nil, err
	}

	executedAt := time.Now()
	if err := s.Repo.StampExecuted(entry.ID, executedAt); err != nil {
		return nil, err
	}

	number, err := s.displayNumberOf(userID, historyID)
	if err != nil {
		return nil, err
	}

	s.notifyState(userID)

	return &ExecuteResult{Number: number, ID: entry.ID, ExecutedAt: executedAt}, nil
}

// Delete removes one history entry. The display number is computed before
// the deletion because the ordering shifts afterwards.
func (s *HistoryService) Delete(userID, historyID uint) (*DeleteResult, error) {
	entry, err := s.Repo.GetByID(userID, historyID)
	if err != nil {
		return nil, err
	}

	number, err := s.displayNumberOf(userID, historyID)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.Delete(entry.ID); err != nil {
		return nil, err
	}

	return &DeleteResult{Number: number, ID: entry.ID}, nil
}

// displayNumberOf locates historyID in the user's full newest-first
// ordering and applies the count-minus-index formula.
func (s *HistoryService) displayNumberOf(userID, historyID uint) (int, error) {
	ids, err := s.Repo.ListIDsByUser(userID)
	if err != nil {
		return 0, err
	}
	return displayNumber(ids, historyID), nil
}

// displayNumber is the pure numbering function: ids are ordered newest
// first, the oldest entry is numbered 1, and an absent id yields 0.
func displayNumber(ids []uint, historyID uint) int {
	for i, id := range ids {
		if id == historyID {
			return len(ids) - i
		}
	}
	return 0
}

func (s *HistoryService) notifyState(userID uint) {
	if s.Notifier == nil {
		return
	}
	appliances, err := s.Appliances.ListByUser(userID)
	if err != nil {
		logger.Get().Warn("failed to load appliances for state feed",
			zap.Uint("user_id", userID), zap.Error(err))
		return
	}
	s.Notifier.NotifyApplianceState(userID, appliances)
}
