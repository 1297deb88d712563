package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/modurim/homepick-api/internal/logger"
	"github.com/modurim/homepick-api/internal/models"
	"github.com/modurim/homepick-api/internal/repository"
	"github.com/modurim/homepick-api/internal/service"
	"go.uber.org/zap"
)

// ApplianceHandler is the handler for appliance-related requests.
type ApplianceHandler struct {
	Service *service.ApplianceService
}

// NewApplianceHandler is the constructor function for initializing a new
// ApplianceHandler.
func NewApplianceHandler(applianceService *service.ApplianceService) *ApplianceHandler {
	return &ApplianceHandler{Service: applianceService}
}

// GetAll returns the caller's appliances.
func (h *ApplianceHandler) GetAll(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	appliances, err := h.Service.List(userID)
	if err != nil {
		logger.Get().Error("failed to list appliances", zap.Uint("user_id", userID), zap.Error(err))
		respondMessage(c, http.StatusInternalServerError, false, "기기 목록 조회에 실패했습니다.")
		return
	}

	respondData(c, http.StatusOK, appliances)
}

// GetByID returns one of the caller's appliances.
func (h *ApplianceHandler) GetByID(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	applianceID, err := parseUintParam(c.Param("applianceId"))
	if err != nil {
		respondMessage(c, http.StatusBadRequest, false, "유효하지 않은 기기 ID입니다.")
		return
	}

	appliance, err := h.Service.Get(userID, applianceID)
	if err != nil {
		var notFoundErr repository.NotFoundError
		if errors.As(err, &notFoundErr) {
			respondMessage(c, http.StatusNotFound, false, "존재하지 않는 기기입니다.")
			return
		}
		logger.Get().Error("failed to get appliance", zap.Uint("user_id", userID), zap.Error(err))
		respondMessage(c, http.StatusInternalServerError, false, "기기 상세 조회에 실패했습니다.")
		return
	}

	respondData(c, http.StatusOK, appliance)
}

// ControlPower flips one appliance's power on or off.
func (h *ApplianceHandler) ControlPower(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	applianceID, err := parseUintParam(c.Param("applianceId"))
	if err != nil {
		respondMessage(c, http.StatusBadRequest, false, "유효하지 않은 기기 ID입니다.")
		return
	}

	var req struct {
		Power string `json:"power"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Power == "" {
		respondMessage(c, http.StatusBadRequest, false, "사용자 정보(userId), 기기 정보(applianceId), 전원 상태(power)가 필요합니다.")
		return
	}

	appliance, err := h.Service.ControlPower(userID, applianceID, req.Power)
	if err != nil {
		var notFoundErr repository.NotFoundError
		switch {
		case errors.Is(err, service.ErrInvalidPower):
			respondMessage(c, http.StatusBadRequest, false, `전원 상태(power)는 "on" 또는 "off"만 가능합니다.`)
		case errors.As(err, &notFoundErr):
			respondMessage(c, http.StatusNotFound, false, "존재하지 않는 기기입니다.")
		default:
			logger.Get().Error("failed to control appliance power", zap.Uint("user_id", userID), zap.Error(err))
			respondMessage(c, http.StatusInternalServerError, false, "기기 전원 제어에 실패했습니다.")
		}
		return
	}

	respondData(c, http.StatusOK, appliance)
}

// Update applies a batch of appliance updates. The batch is strict: every
// entry must name an appliance the caller owns.
func (h *ApplianceHandler) Update(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	var req struct {
		Updates models.AppUpdates `json:"updates"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Updates) == 0 {
		respondMessage(c, http.StatusBadRequest, false, "업데이트할 기기 정보가 필요합니다.")
		return
	}

	updated, err := h.Service.BulkUpdate(userID, req.Updates)
	if err != nil {
		var missingErr repository.ApplianceNotFoundError
		switch {
		case errors.Is(err, service.ErrEmptyUpdates):
			respondMessage(c, http.StatusBadRequest, false, "업데이트할 기기 정보가 필요합니다.")
		case errors.Is(err, service.ErrInvalidApplianceID):
			respondMessage(c, http.StatusBadRequest, false, "유효하지 않은 기기 ID입니다.")
		case errors.Is(err, service.ErrInvalidPower):
			respondMessage(c, http.StatusBadRequest, false, `전원 상태(power)는 "on" 또는 "off"만 가능합니다.`)
		case errors.As(err, &missingErr):
			respondMessage(c, http.StatusNotFound, false, fmt.Sprintf("ID %d의 기기를 찾을 수 없습니다.", missingErr.ApplianceID))
		default:
			logger.Get().Error("failed to update appliances", zap.Uint("user_id", userID), zap.Error(err))
			respondMessage(c, http.StatusInternalServerError, false, "기기 정보 업데이트에 실패했습니다.")
		}
		return
	}

	respondData(c, http.StatusOK, updated)
}

// UploadImage stores an appliance photo and records its URL.
func (h *ApplianceHandler) UploadImage(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	applianceID, err := parseUintParam(c.Param("applianceId"))
	if err != nil {
		respondMessage(c, http.StatusBadRequest, false, "유효하지 않은 기기 ID입니다.")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		respondMessage(c, http.StatusBadRequest, false, "이미지 파일이 없습니다.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Get().Error("failed to open uploaded image", zap.Uint("user_id", userID), zap.Error(err))
		respondMessage(c, http.StatusInternalServerError, false, "기기 이미지 업로드에 실패했습니다.")
		return
	}
	defer file.Close()

	imgBytes, err := io.ReadAll(file)
	if err != nil {
		logger.Get().Error("failed to read uploaded image", zap.Uint("user_id", userID), zap.Error(err))
		respondMessage(c, http.StatusInternalServerError, false, "기기 이미지 업로드에 실패했습니다.")
		return
	}

	url, err := h.Service.UploadImage(c.Request.Context(), userID, applianceID, imgBytes)
	if err != nil {
		var notFoundErr repository.NotFoundError
		if errors.As(err, &notFoundErr) {
			respondMessage(c, http.StatusNotFound, false, "존재하지 않는 기기입니다.")
			return
		}
		logger.Get().Error("failed to upload appliance image", zap.Uint("user_id", userID), zap.Error(err))
		respondMessage(c, http.StatusInternalServerError, false, "기기 이미지 업로드에 실패했습니다.")
		return
	}

	respondData(c, http.StatusOK, gin.H{"img": url})
}
