package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modurim/homepick-api/internal/ai"
	"github.com/modurim/homepick-api/internal/config"
	"github.com/modurim/homepick-api/internal/logger"
	"github.com/modurim/homepick-api/internal/models"
	"github.com/modurim/homepick-api/internal/recommend"
	"github.com/modurim/homepick-api/internal/repository"
	"go.uber.org/zap"
)

// RecommendService drives the recommendation negotiation protocol: a
// per-user, single-slot workflow of propose, fetch, accept, reject, and
// refresh. Every operation takes the user's slot lock for its full
// duration, so two concurrent accepts cannot both pass the duplicate check.
type RecommendService struct {
	Cfg        *config.Config
	Provider   ai.RoutineProvider
	Slots      *recommend.Store
	Histories  repository.RoutineHistoryRepo
	Appliances repository.ApplianceRepo
	Notifier   ApplianceNotifier
}

// NewRecommendService is the constructor function for initializing a new
// RecommendService.
func NewRecommendService(cfg *config.Config, provider ai.RoutineProvider, slots *recommend.Store,
	histories repository.RoutineHistoryRepo, appliances repository.ApplianceRepo, notifier ApplianceNotifier) *RecommendService {
	return &RecommendService{
		Cfg:        cfg,
		Provider:   provider,
		Slots:      slots,
		Histories:  histories,
		Appliances: appliances,
		Notifier:   notifier,
	}
}

// Propose asks the analysis service for a routine proposal and stores it as
// the user's pending recommendation, discarding any prior one. On upstream
// failure no state changes: an empty slot stays empty and an existing
// pending proposal survives.
func (s *RecommendService) Propose(ctx context.Context, userID uint, situation string) error {
	if strings.TrimSpace(situation) == "" {
		return ErrSituationRequired
	}

	unlock := s.Slots.Lock(userID)
	defer unlock()

	result, err := s.Provider.RecommendRoutine(ctx, situation, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	s.Slots.Put(userID, &recommend.Recommendation{
		UserID:    userID,
		Situation: situation,
		Routine:   result.Routine,
		Updates:   toAppUpdates(result.Updates),
	})

	return nil
}

// Current returns the user's pending recommendation.
func (s *RecommendService) Current(userID uint) (*recommend.Recommendation, error) {
	unlock := s.Slots.Lock(userID)
	defer unlock()

	rec, err := s.pending(userID)
	if err != nil {
		return nil, err
	}

	cp := *rec
	return &cp, nil
}

// Accept commits the pending recommendation: it appends a history entry,
// applies the device updates, and clears the slot. The history entry is
// written before devices are touched so a crash between the two leaves an
// inspectable log rather than silent state drift. A situation+routine pair
// already present in the user's history is a conflict; update-list
// differences are ignored for dedup purposes.
func (s *RecommendService) Accept(userID uint) error {
	unlock := s.Slots.Lock(userID)
	defer unlock()

	rec, err := s.pending(userID)
	if err != nil {
		return err
	}

	// Duplicate check only applies once the user has any history at all.
	total, err := s.Histories.CountByUser(userID)
	if err != nil {
		return err
	}
	if total > 0 {
		exists, err := s.Histories.ExistsDuplicate(userID, rec.Situation, rec.Routine)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateRoutine
		}
	}

	now := time.Now()
	entry := &models.RoutineHistory{
		UserID:       userID,
		SituationTxt: rec.Situation,
		RoutineTxt:   rec.Routine,
		AppUpdates:   rec.Updates,
		Result:       models.ResultSuccess,
		CreatedAt:    now,
		ExecutedAt:   now,
	}
	if err := s.Histories.Create(entry); err != nil {
		return fmt.Errorf("failed to log accepted routine: %w", err)
	}

	if err := s.Appliances.ApplyUpdatesPermissive(userID, rec.Updates); err != nil {
		return fmt.Errorf("failed to apply accepted routine: %w", err)
	}

	s.Slots.Clear(userID)
	s.notifyState(userID)

	return nil
}

// Reject discards the pending recommendation. Nothing is persisted and no
// device state changes.
func (s *RecommendService) Reject(userID uint) error {
	unlock := s.Slots.Lock(userID)
	defer unlock()

	if _, err := s.pending(userID); err != nil {
		return err
	}

	s.Slots.Clear(userID)
	return nil
}

// Refresh re-invokes the analysis service with the stored situation and
// replaces the pending recommendation's routine and updates. The situation
// is kept verbatim. On upstream failure the prior recommendation survives.
func (s *RecommendService) Refresh(ctx context.Context, userID uint) (*recommend.Recommendation, error) {
	unlock := s.Slots.Lock(userID)
	defer unlock()

	rec, err := s.pending(userID)
	if err != nil {
		return nil, err
	}

	result, err := s.Provider.RecommendRoutine(ctx, rec.Situation, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	refreshed := &recommend.Recommendation{
		UserID:    userID,
		Situation: rec.Situation,
		Routine:   result.Routine,
		Updates:   toAppUpdates(result.Updates),
	}
	s.Slots.Put(userID, refreshed)

	cp := *refreshed
	return &cp, nil
}

// pending returns the user's recommendation after the absence and ownership
// checks shared by every read. The caller must hold the user's lock.
func (s *RecommendService) pending(userID uint) (*recommend.Recommendation, error) {
	rec := s.Slots.Get(userID)
	if rec == nil {
		return nil, ErrRecommendationNotFound
	}
	if rec.UserID != userID {
		return nil, ErrForbidden
	}
	return rec, nil
}

// notifyState pushes the user's current appliance list to the state feed.
// Best effort: a failed read is logged, not surfaced.
func (s *RecommendService) notifyState(userID uint) {
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
