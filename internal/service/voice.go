package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/modurim/homepick-api/internal/ai"
	"github.com/modurim/homepick-api/internal/audio"
	"github.com/modurim/homepick-api/internal/config"
	"github.com/modurim/homepick-api/internal/emotion"
	"github.com/modurim/homepick-api/internal/logger"
	"github.com/modurim/homepick-api/internal/models"
	"github.com/modurim/homepick-api/internal/repository"
	"go.uber.org/zap"
)

// VoiceService runs the voice-to-action pipeline: transcode the recording,
// send it to the analysis service, annotate the recognized situation, then
// commit the result to history and device state. Stages run in order and
// the first failure aborts the rest.
type VoiceService struct {
	Cfg        *config.Config
	Transcoder audio.Transcoder
	Provider   ai.RoutineProvider
	Histories  repository.RoutineHistoryRepo
	Appliances repository.ApplianceRepo
	Notifier   ApplianceNotifier
}

// NewVoiceService is the constructor function for initializing a new
// VoiceService.
func NewVoiceService(cfg *config.Config, transcoder audio.Transcoder, provider ai.RoutineProvider,
	histories repository.RoutineHistoryRepo, appliances repository.ApplianceRepo, notifier ApplianceNotifier) *VoiceService {
	return &VoiceService{
		Cfg:        cfg,
		Transcoder: transcoder,
		Provider:   provider,
		Histories:  histories,
		Appliances: appliances,
		Notifier:   notifier,
	}
}

// VoiceOutcome is the response object for a completed voice pipeline run.
type VoiceOutcome struct {
	Situation string            `json:"situation"`
	Routine   string            `json:"routine"`
	Updates   models.AppUpdates `json:"updates"`
}

// ProcessUpload runs the pipeline on a user-uploaded recording. The upload
// is removed when any later stage fails; on success it is kept.
func (s *VoiceService) ProcessUpload(ctx context.Context, userID uint, uploadPath string) (*VoiceOutcome, error) {
	return s.run(ctx, userID, uploadPath, true)
}

// ProcessScenario runs the pipeline on a fixed pre-recorded scenario. The
// scenario's source recording is never deleted; only its transcoded
// derivative is temporary.
func (s *VoiceService) ProcessScenario(ctx context.Context, userID uint, name string) (*VoiceOutcome, error) {
	if s.Cfg.Scenarios == nil {
		return nil, ErrScenarioNotFound
	}
	scenario := s.Cfg.Scenarios.Find(name)
	if scenario == nil {
		return nil, ErrScenarioNotFound
	}

	return s.run(ctx, userID, scenario.Recording, false)
}

func (s *VoiceService) run(ctx context.Context, userID uint, sourcePath string, fromUpload bool) (*VoiceOutcome, error) {
	wavPath, err := s.Transcoder.ToWAV(ctx, sourcePath)
	if err != nil {
		if fromUpload {
			s.removeArtifact(sourcePath)
		}
		return nil, fmt.Errorf("voice transcode failed: %w", err)
	}
	// The transcoded derivative is temporary regardless of how the rest of
	// the pipeline goes.
	defer s.removeArtifact(wavPath)

	result, err := s.Provider.AnalyzeVoice(ctx, wavPath)
	if err != nil {
		if fromUpload {
			s.removeArtifact(sourcePath)
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	situation := emotion.Annotate(result.Situation)
	updates := toAppUpdates(result.Updates)

	now := time.Now()
	entry := &models.RoutineHistory{
		UserID:       userID,
		SituationTxt: situation,
		RoutineTxt:   result.Routine,
		AppUpdates:   updates,
		Result:       models.ResultSuccess,
		CreatedAt:    now,
		ExecutedAt:   now,
	}
	if err := s.Histories.Create(entry); err != nil {
		if fromUpload {
			s.removeArtifact(sourcePath)
		}
		return nil, fmt.Errorf("failed to log voice routine: %w", err)
	}

	if err := s.Appliances.ApplyUpdatesPermissive(userID, updates); err != nil {
		if fromUpload {
			s.removeArtifact(sourcePath)
		}
		return nil, fmt.Errorf("failed to apply voice routine: %w", err)
	}

	s.notifyState(userID)

	return &VoiceOutcome{
		Situation: situation,
		Routine:   result.Routine,
		Updates:   updates,
	}, nil
}

// removeArtifact deletes a pipeline file best-effort; a failed delete is
// logged, never re-raised.
func (s *VoiceService) removeArtifact(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Get().Warn("failed to remove voice artifact",
			zap.String("path", path), zap.Error(err))
	}
}

func (s *VoiceService) notifyState(userID uint) {
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
