package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/modurim/homepick-api/internal/logger"
	"github.com/modurim/homepick-api/internal/service"
	"go.uber.org/zap"
)

// AiPickHandler is the handler for recommendation negotiation requests.
type AiPickHandler struct {
	Service *service.RecommendService
}

// NewAiPickHandler is the constructor function for initializing a new
// AiPickHandler.
func NewAiPickHandler(recommendService *service.RecommendService) *AiPickHandler {
	return &AiPickHandler{Service: recommendService}
}

// Recommend sends a situation to the analysis service and stores the
// returned proposal as the caller's pending recommendation.
func (h *AiPickHandler) Recommend(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	var req struct {
		Situation string `json:"situation"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Situation == "" {
		respondMessage(c, http.StatusBadRequest, false, "사용자 정보(userId)와 상황 정보(situation)가 필요합니다.")
		return
	}

	if err := h.Service.Propose(c.Request.Context(), userID, req.Situation); err != nil {
		if errors.Is(err, service.ErrSituationRequired) {
			respondMessage(c, http.StatusBadRequest, false, "사용자 정보(userId)와 상황 정보(situation)가 필요합니다.")
			return
		}
		logger.Get().Error("failed to request recommendation", zap.Uint("user_id", userID), zap.Error(err))
		respondMessage(c, http.StatusInternalServerError, false, "추천 요청 전송에 실패했습니다.")
		return
	}

	respondMessage(c, http.StatusOK, true, "추천 요청이 성공적으로 전송되었습니다.")
}

// Current returns the caller's pending recommendation.
func (h *AiPickHandler) Current(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	rec, err := h.Service.Current(userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecommendationNotFound):
			respondMessage(c, http.StatusNotFound, false, "현재 추천된 루틴이 없습니다.")
		case errors.Is(err, service.ErrForbidden):
			respondMessage(c, http.StatusForbidden, false, "잘못된 사용자의 접근입니다.")
		default:
			logger.Get().Error("failed to get current recommendation", zap.Uint("user_id", userID), zap.Error(err))
			respondMessage(c, http.StatusInternalServerError, false, "현재 추천된 루틴 조회에 실패했습니다.")
		}
		return
	}

	respondData(c, http.StatusOK, rec)
}

// Accept commits the caller's pending recommendation to history and
// device state.
func (h *AiPickHandler) Accept(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	if err := h.Service.Accept(userID); err != nil {
		switch {
		case errors.Is(err, service.ErrRecommendationNotFound):
			respondMessage(c, http.StatusNotFound, false, "수락할 추천 루틴이 없습니다.")
		case errors.Is(err, service.ErrForbidden):
			respondMessage(c, http.StatusForbidden, false, "잘못된 사용자의 접근입니다.")
		case errors.Is(err, service.ErrDuplicateRoutine):
			respondMessage(c, http.StatusConflict, false, "이미 동일한 상황에 대한 동일한 루틴이 존재합니다.")
		default:
			logger.Get().Error("failed to accept recommendation", zap.Uint("user_id", userID), zap.Error(err))
			respondMessage(c, http.StatusInternalServerError, false, "추천 루틴 수락/적용에 실패했습니다.")
		}
		return
	}

	respondMessage(c, http.StatusOK, true, "추천 루틴이 성공적으로 수락/적용되었습니다.")
}

// Reject discards the caller's pending recommendation.
func (h *AiPickHandler) Reject(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	if err := h.Service.Reject(userID); err != nil {
		switch {
		case errors.Is(err, service.ErrRecommendationNotFound):
			respondMessage(c, http.StatusNotFound, false, "거절할 추천 루틴이 없습니다.")
		case errors.Is(err, service.ErrForbidden):
			respondMessage(c, http.StatusForbidden, false, "잘못된 사용자의 접근입니다.")
		default:
			logger.Get().Error("failed to reject recommendation", zap.Uint("user_id", userID), zap.Error(err))
			respondMessage(c, http.StatusInternalServerError, false, "추천 루틴 거절에 실패했습니다.")
		}
		return
	}

	respondMessage(c, http.StatusOK, true, "추천 루틴이 성공적으로 거절되었습니다.")
}

// Refresh re-runs the analysis for the caller's pending recommendation with
// the same situation.
func (h *AiPickHandler) Refresh(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	rec, err := h.Service.Refresh(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecommendationNotFound):
			respondMessage(c, http.StatusNotFound, false, "루틴을 재추천하려면 먼저 추천 요청을 보내야 합니다.")
		case errors.Is(err, service.ErrForbidden):
			respondMessage(c, http.StatusForbidden, false, "잘못된 사용자의 접근입니다.")
		default:
			logger.Get().Error("failed to refresh recommendation", zap.Uint("user_id", userID), zap.Error(err))
			respondMessage(c, http.StatusInternalServerError, false, "루틴 재추천에 실패했습니다.")
		}
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Message: "루틴이 성공적으로 재추천되었습니다.", Data: rec})
}
