package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/modurim/homepick-api/internal/logger"
	"github.com/modurim/homepick-api/internal/repository"
	"github.com/modurim/homepick-api/internal/service"
	"go.uber.org/zap"
)

// MypageHandler is the handler for routine history requests.
type MypageHandler struct {
	Service *service.HistoryService
}

// NewMypageHandler is the constructor function for initializing a new
// MypageHandler.
func NewMypageHandler(historyService *service.HistoryService) *MypageHandler {
	return &MypageHandler{Service: historyService}
}

// List returns the caller's routine histories, optionally filtered by a
// situation keyword.
func (h *MypageHandler) List(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	items, err := h.Service.List(userID, c.Query("keyword"))
	if err != nil {
		logger.Get().Error("failed to list routine histories", zap.Uint("user_id", userID), zap.Error(err))
		respondMessage(c, http.StatusInternalServerError, false, "루틴 목록 조회에 실패했습니다.")
		return
	}

	respondData(c, http.StatusOK, items)
}

// GetByID returns one routine history with its display number.
func (h *MypageHandler) GetByID(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	historyID, err := parseUintParam(c.Param("historyId"))
	if err != nil {
		respondMessage(c, http.StatusBadRequest, false, "사용자 정보(userId)와 루틴 정보(historyId)가 필요합니다.")
		return
	}

	detail, err := h.Service.Get(userID, historyID)
	if err != nil {
		var notFoundErr repository.NotFoundError
		if errors.As(err, &notFoundErr) {
			respondMessage(c, http.StatusNotFound, false, "해당 루틴을 찾을 수 없습니다.")
			return
		}
		logger.Get().Error("failed to get routine history", zap.Uint("user_id", userID), zap.Error(err))
		respondMessage(c, http.StatusInternalServerError, false, "루틴 상세 정보 조회에 실패했습니다.")
		return
	}

	respondData(c, http.StatusOK, detail)
}

// Execute re-applies a stored routine to the caller's appliances.
func (h *MypageHandler) Execute(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	historyID, err := parseUintParam(c.Param("historyId"))
	if err != nil {
		respondMessage(c, http.StatusBadRequest, false, "사용자 정보(userId)와 루틴 정보(historyId)가 필요합니다.")
		return
	}

	result, err := h.Service.Execute(userID, historyID)
	if err != nil {
		var notFoundErr repository.NotFoundError
		if errors.As(err, &notFoundErr) {
			respondMessage(c, http.StatusNotFound, false, "해당 루틴을 찾을 수 없습니다.")
			return
		}
		logger.Get().Error("failed to execute routine", zap.Uint("user_id", userID), zap.Error(err))
		respondMessage(c, http.StatusInternalServerError, false, "루틴 실행에 실패했습니다.")
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Message: "루틴이 성공적으로 실행되었습니다.", Data: result})
}

// Delete removes one routine history.
func (h *MypageHandler) Delete(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	historyID, err := parseUintParam(c.Param("historyId"))
	if err != nil {
		respondMessage(c, http.StatusBadRequest, false, "사용자 정보(userId)와 루틴 정보(historyId)가 필요합니다.")
		return
	}

	result, err := h.Service.Delete(userID, historyID)
	if err != nil {
		var notFoundErr repository.NotFoundError
		if errors.As(err, &notFoundErr) {
			respondMessage(c, http.StatusNotFound, false, "해당 루틴을 찾을 수 없습니다.")
			return
		}
		logger.Get().Error("failed to delete routine", zap.Uint("user_id", userID), zap.Error(err))
		respondMessage(c, http.StatusInternalServerError, false, "루틴 삭제에 실패했습니다.")
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Message: "루틴이 성공적으로 삭제되었습니다.", Data: result})
}
