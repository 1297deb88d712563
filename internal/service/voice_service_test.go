package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/modurim/homepick-api/internal/ai"
	"github.com/modurim/homepick-api/internal/config"
	"github.com/modurim/homepick-api/internal/models"
	"github.com/modurim/homepick-api/internal/testutil"
)

func newTestVoiceService(transcoder *testutil.MockTranscoder, provider *testutil.MockRoutineProvider, scenarios *config.Scenarios) (*VoiceService, *testutil.MockRoutineHistoryRepo, *testutil.MockApplianceRepo) {
	histories := testutil.NewMockRoutineHistoryRepo()
	appliances := testutil.NewMockApplianceRepo()
	for _, a := range testutil.TestAppliances() {
		appliances.Appliances[a.ID] = a
	}
	cfg := &config.Config{Scenarios: scenarios}
	svc := NewVoiceService(cfg, transcoder, provider, histories, appliances, &testutil.MockNotifier{})
	return svc, histories, appliances
}

// writeTempFile creates a throwaway file standing in for an upload or a
// transcoded derivative.
func writeTempFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("audio bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestProcessUpload_Success(t *testing.T) {
	upload := writeTempFile(t, "upload.m4a")
	wav := writeTempFile(t, "upload.wav")

	transcoder := &testutil.MockTranscoder{
		ToWAVFunc: func(ctx context.Context, inputPath string) (string, error) { return wav, nil },
	}
	provider := &testutil.MockRoutineProvider{
		AnalyzeVoiceFunc: func(ctx context.Context, wavPath string) (*ai.VoiceResult, error) {
			if wavPath != wav {
				t.Errorf("AnalyzeVoice got %q, want the transcoded path", wavPath)
			}
			return testutil.TestVoiceResult(), nil
		},
	}
	svc, histories, appliances := newTestVoiceService(transcoder, provider, nil)

	outcome, err := svc.ProcessUpload(context.Background(), 1, upload)
	if err != nil {
		t.Fatalf("ProcessUpload: %v", err)
	}

	// The emotion tag is rendered as its pictograph.
	if outcome.Situation != "너무 더워서 😡 짜증이 나요" {
		t.Errorf("Situation = %q", outcome.Situation)
	}

	// History is committed with the annotated text.
	count, _ := histories.CountByUser(1)
	if count != 1 {
		t.Fatalf("history count = %d, want 1", count)
	}
	if histories.Entries[0].SituationTxt != outcome.Situation {
		t.Errorf("stored situation = %q", histories.Entries[0].SituationTxt)
	}

	// Device updates applied.
	ac, _ := appliances.GetByID(1, 1)
	if ac.OnOff != models.PowerOn || ac.State != "냉방" {
		t.Errorf("appliance 1 = %+v", ac)
	}

	// The derivative is removed, the upload is kept.
	if fileExists(wav) {
		t.Error("transcoded wav should be removed after analysis")
	}
	if !fileExists(upload) {
		t.Error("upload should be kept on success")
	}
}

func TestProcessUpload_TranscodeFailureRemovesUpload(t *testing.T) {
	upload := writeTempFile(t, "upload.m4a")

	transcoder := &testutil.MockTranscoder{
		ToWAVFunc: func(ctx context.Context, inputPath string) (string, error) {
			return "", errors.New("ffmpeg exited with status 1")
		},
	}
	svc, histories, _ := newTestVoiceService(transcoder, &testutil.MockRoutineProvider{}, nil)

	if _, err := svc.ProcessUpload(context.Background(), 1, upload); err == nil {
		t.Fatal("ProcessUpload should fail when transcoding fails")
	}

	if fileExists(upload) {
		t.Error("upload should be removed when transcoding fails")
	}
	count, _ := histories.CountByUser(1)
	if count != 0 {
		t.Errorf("history count = %d, want 0", count)
	}
}

func TestProcessUpload_AnalysisFailureRemovesUploadAndWav(t *testing.T) {
	upload := writeTempFile(t, "upload.m4a")
	wav := writeTempFile(t, "upload.wav")

	transcoder := &testutil.MockTranscoder{
		ToWAVFunc: func(ctx context.Context, inputPath string) (string, error) { return wav, nil },
	}
	provider := &testutil.MockRoutineProvider{
		AnalyzeVoiceFunc: func(ctx context.Context, wavPath string) (*ai.VoiceResult, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc, _, _ := newTestVoiceService(transcoder, provider, nil)

	_, err := svc.ProcessUpload(context.Background(), 1, upload)
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("err = %v, want ErrUpstream", err)
	}

	if fileExists(upload) {
		t.Error("upload should be removed when analysis fails")
	}
	if fileExists(wav) {
		t.Error("transcoded wav should always be removed")
	}
}

func TestProcessUpload_CommitFailureRemovesUpload(t *testing.T) {
	upload := writeTempFile(t, "upload.m4a")
	wav := writeTempFile(t, "upload.wav")

	transcoder := &testutil.MockTranscoder{
		ToWAVFunc: func(ctx context.Context, inputPath string) (string, error) { return wav, nil },
	}
	provider := &testutil.MockRoutineProvider{
		AnalyzeVoiceFunc: func(ctx context.Context, wavPath string) (*ai.VoiceResult, error) {
			return testutil.TestVoiceResult(), nil
		},
	}
	svc, histories, _ := newTestVoiceService(transcoder, provider, nil)
	histories.CreateErr = errors.New("disk full")

	if _, err := svc.ProcessUpload(context.Background(), 1, upload); err == nil {
		t.Fatal("ProcessUpload should fail when the history write fails")
	}

	if fileExists(upload) {
		t.Error("upload should be removed when the commit fails")
	}
}

func TestProcessScenario_KeepsSourceRecording(t *testing.T) {
	recording := writeTempFile(t, "morning.m4a")
	wav := writeTempFile(t, "morning.wav")

	scenarios := &config.Scenarios{Scenarios: []config.Scenario{
		{Name: "morning", Recording: recording, Description: "아침 기상 시나리오"},
	}}

	transcoder := &testutil.MockTranscoder{
		ToWAVFunc: func(ctx context.Context, inputPath string) (string, error) {
			if inputPath != recording {
				t.Errorf("ToWAV got %q, want the scenario recording", inputPath)
			}
			return wav, nil
		},
	}
	provider := &testutil.MockRoutineProvider{
		AnalyzeVoiceFunc: func(ctx context.Context, wavPath string) (*ai.VoiceResult, error) {
			return testutil.TestVoiceResult(), nil
		},
	}
	svc, histories, _ := newTestVoiceService(transcoder, provider, scenarios)

	if _, err := svc.ProcessScenario(context.Background(), 1, "morning"); err != nil {
		t.Fatalf("ProcessScenario: %v", err)
	}

	if !fileExists(recording) {
		t.Error("scenario source recording must never be deleted")
	}
	if fileExists(wav) {
		t.Error("transcoded wav should be removed")
	}
	count, _ := histories.CountByUser(1)
	if count != 1 {
		t.Errorf("history count = %d, want 1", count)
	}
}

func TestProcessScenario_FailureKeepsSourceRecording(t *testing.T) {
	recording := writeTempFile(t, "morning.m4a")

	scenarios := &config.Scenarios{Scenarios: []config.Scenario{
		{Name: "morning", Recording: recording},
	}}

	transcoder := &testutil.MockTranscoder{
		ToWAVFunc: func(ctx context.Context, inputPath string) (string, error) {
			return "", errors.New("ffmpeg exited with status 1")
		},
	}
	svc, _, _ := newTestVoiceService(transcoder, &testutil.MockRoutineProvider{}, scenarios)

	if _, err := svc.ProcessScenario(context.Background(), 1, "morning"); err == nil {
		t.Fatal("ProcessScenario should fail when transcoding fails")
	}

	if !fileExists(recording) {
		t.Error("scenario source recording must survive pipeline failures")
	}
}

func TestProcessScenario_UnknownName(t *testing.T) {
	scenarios := &config.Scenarios{Scenarios: []config.Scenario{{Name: "morning", Recording: "x.m4a"}}}
	svc, _, _ := newTestVoiceService(&testutil.MockTranscoder{}, &testutil.MockRoutineProvider{}, scenarios)

	if _, err := svc.ProcessScenario(context.Background(), 1, "unknown"); !errors.Is(err, ErrScenarioNotFound) {
		t.Errorf("err = %v, want ErrScenarioNotFound", err)
	}
}

func TestProcessScenario_NoCatalog(t *testing.T) {
	svc, _, _ := newTestVoiceService(&testutil.MockTranscoder{}, &testutil.MockRoutineProvider{}, nil)

	if _, err := svc.ProcessScenario(context.Background(), 1, "morning"); !errors.Is(err, ErrScenarioNotFound) {
		t.Errorf("err = %v, want ErrScenarioNotFound", err)
	}
}
