package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/modurim/homepick-api/internal/logger"
	"github.com/modurim/homepick-api/internal/service"
	"go.uber.org/zap"
)

// VoiceHandler is the handler for voice pipeline requests.
type VoiceHandler struct {
	Service *service.VoiceService
}

// NewVoiceHandler is the constructor function for initializing a new
// VoiceHandler.
func NewVoiceHandler(voiceService *service.VoiceService) *VoiceHandler {
	return &VoiceHandler{Service: voiceService}
}

// ProcessVoice accepts an uploaded recording, runs the voice pipeline on
// it, and answers with the recognized situation, routine, and device
// updates.
func (h *VoiceHandler) ProcessVoice(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		respondMessage(c, http.StatusBadRequest, false, "음성 파일이 없습니다.")
		return
	}

	uploadPath, err := h.saveUpload(c, fileHeader.Filename, func(dst string) error {
		return c.SaveUploadedFile(fileHeader, dst)
	})
	if err != nil {
		logger.Get().Error("failed to save voice upload", zap.Uint("user_id", userID), zap.Error(err))
		respondMessage(c, http.StatusInternalServerError, false, "음성 파일 처리에 실패했습니다.")
		return
	}

	outcome, err := h.Service.ProcessUpload(c.Request.Context(), userID, uploadPath)
	if err != nil {
		logger.Get().Error("voice pipeline failed", zap.Uint("user_id", userID), zap.Error(err))
		respondMessage(c, http.StatusInternalServerError, false, "음성 파일 처리에 실패했습니다.")
		return
	}

	respondData(c, http.StatusOK, outcome)
}

// ProcessScenario runs the voice pipeline on a pre-recorded scenario.
func (h *VoiceHandler) ProcessScenario(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	name := c.Param("name")

	outcome, err := h.Service.ProcessScenario(c.Request.Context(), userID, name)
	if err != nil {
		if errors.Is(err, service.ErrScenarioNotFound) {
			respondMessage(c, http.StatusNotFound, false, "존재하지 않는 시나리오입니다.")
			return
		}
		logger.Get().Error("voice scenario pipeline failed",
			zap.Uint("user_id", userID), zap.String("scenario", name), zap.Error(err))
		respondMessage(c, http.StatusInternalServerError, false, "음성 파일 처리에 실패했습니다.")
		return
	}

	respondData(c, http.StatusOK, outcome)
}

// saveUpload writes the uploaded recording under the configured upload
// directory, sharded by year and month, with a collision-free name.
func (h *VoiceHandler) saveUpload(c *gin.Context, originalName string, save func(dst string) error) (string, error) {
	now := time.Now()
	dir := filepath.Join(h.Service.Cfg.EnvVars.UploadDir, now.Format("2006"), now.Format("01"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %v", err)
	}

	ext := filepath.Ext(originalName)
	dst := filepath.Join(dir, uuid.New().String()+ext)
	if err := save(dst); err != nil {
		return "", fmt.Errorf("failed to save upload: %v", err)
	}

	return dst, nil
}
