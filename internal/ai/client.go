package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/modurim/homepick-api/internal/logger"
	"go.uber.org/zap"
)

// ErrMalformedResponse marks an upstream payload that failed schema
// validation. Callers surface it as an upstream failure, not as bad input.
var ErrMalformedResponse = errors.New("malformed analysis service response")

// AnalysisClient implements RoutineProvider against the analysis service's
// HTTP API.
type AnalysisClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAnalysisClient creates a client for the analysis service. The timeout
// bounds every call including body reads.
func NewAnalysisClient(baseURL string, timeout time.Duration) *AnalysisClient {
	return &AnalysisClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// routineResponse is the wire shape of both analysis endpoints.
type routineResponse struct {
	Routine   string         `json:"routine"`
	Situation string         `json:"situation"`
	Updates   []DeviceUpdate `json:"updates"`
}

// RecommendRoutine asks for a routine proposal from a typed situation.
func (c *AnalysisClient) RecommendRoutine(ctx context.Context, situation string, userID uint) (*RoutineResult, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"situation": situation,
		"userId":    userID,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/recommend_routine/", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	parsed, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if err := validateUpdates(parsed.Updates); err != nil {
		return nil, err
	}
	if parsed.Routine == "" {
		return nil, fmt.Errorf("%w: missing routine text", ErrMalformedResponse)
	}

	return &RoutineResult{Routine: parsed.Routine, Updates: parsed.Updates}, nil
}

// AnalyzeVoice submits a WAV file as a multipart audio payload.
func (c *AnalysisClient) AnalyzeVoice(ctx context.Context, wavPath string) (*VoiceResult, error) {
	file, err := os.Open(wavPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open recording: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("audio", filepath.Base(wavPath))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to read recording: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze_voice/", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	parsed, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if err := validateUpdates(parsed.Updates); err != nil {
		return nil, err
	}
	if parsed.Routine == "" || parsed.Situation == "" {
		return nil, fmt.Errorf("%w: missing situation or routine text", ErrMalformedResponse)
	}

	return &VoiceResult{
		Situation: parsed.Situation,
		Routine:   parsed.Routine,
		Updates:   parsed.Updates,
	}, nil
}

// do executes the request and decodes the response envelope.
func (c *AnalysisClient) do(req *http.Request) (*routineResponse, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analysis service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		logger.Get().Warn("analysis service returned an error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", snippet),
		)
		return nil, fmt.Errorf("analysis service returned status %d", resp.StatusCode)
	}

	var parsed routineResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return &parsed, nil
}

// validateUpdates rejects update lists that would propagate nulls into
// device state.
func validateUpdates(updates []DeviceUpdate) error {
	if updates == nil {
		return fmt.Errorf("%w: missing updates list", ErrMalformedResponse)
	}
	for i, u := range updates {
		if u.ApplianceID == 0 {
			return fmt.Errorf("%w: update %d has no appliance_id", ErrMalformedResponse, i)
		}
		if u.OnOff != nil && *u.OnOff != "on" && *u.OnOff != "off" {
			return fmt.Errorf("%w: update %d has invalid onoff %q", ErrMalformedResponse, i, *u.OnOff)
		}
	}
	return nil
}
