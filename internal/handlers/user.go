package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/modurim/homepick-api/internal/logger"
	"github.com/modurim/homepick-api/internal/models"
	"github.com/modurim/homepick-api/internal/service"
	"go.uber.org/zap"
)

// UserHandler is the handler for account requests.
type UserHandler struct {
	Service *service.UserService
}

// NewUserHandler is the constructor function for initializing a new UserHandler.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{Service: userService}
}

// Signup creates a new account and logs it in.
func (h *UserHandler) Signup(c *gin.Context) {
	var req struct {
		Email     string `json:"email" binding:"required"`
		Pwd       string `json:"pwd" binding:"required"`
		Name      string `json:"name" binding:"required"`
		Phone     string `json:"phone"`
		LoginType string `json:"login_type"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, false, "이메일, 비밀번호, 이름이 필요합니다.")
		return
	}

	user, err := h.Service.Signup(req.Email, req.Pwd, req.Name, req.Phone, models.LoginType(req.LoginType))
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			respondMessage(c, http.StatusBadRequest, false, "이미 존재하는 이메일입니다.")
			return
		}
		logger.Get().Error("signup failed", zap.String("email", req.Email), zap.Error(err))
		respondMessage(c, http.StatusInternalServerError, false, "회원가입에 실패했습니다.")
		return
	}

	accessToken, refreshToken, err := generateTokenPair(user.ID, h.Service.Cfg.EnvVars.JwtSecretKey)
	if err != nil {
		logger.Get().Error("failed to generate tokens on signup", zap.Uint("user_id", user.ID), zap.Error(err))
		respondMessage(c, http.StatusInternalServerError, false, "회원가입에 실패했습니다.")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user":          service.ToUserResponse(user),
	})
}

// Login verifies credentials and issues an access token.
func (h *UserHandler) Login(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
		Pwd   string `json:"pwd" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, false, "이메일과 비밀번호가 필요합니다.")
		return
	}

	user, err := h.Service.Login(req.Email, req.Pwd)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondMessage(c, http.StatusBadRequest, false, "이메일 또는 비밀번호가 올바르지 않습니다.")
			return
		}
		logger.Get().Error("login failed", zap.String("email", req.Email), zap.Error(err))
		respondMessage(c, http.StatusInternalServerError, false, "로그인에 실패했습니다.")
		return
	}

	accessToken, refreshToken, err := generateTokenPair(user.ID, h.Service.Cfg.EnvVars.JwtSecretKey)
	if err != nil {
		logger.Get().Error("failed to generate tokens on login", zap.Uint("user_id", user.ID), zap.Error(err))
		respondMessage(c, http.StatusInternalServerError, false, "로그인에 실패했습니다.")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user":          service.ToUserResponse(user),
	})
}

// generateTokenPair generates a short-lived access token and a long-lived
// refresh token for a user.
func generateTokenPair(userID uint, secretKey string) (string, string, error) {
	accessToken, err := signToken(userID, secretKey, "access", 24*time.Hour)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := signToken(userID, secretKey, "refresh", 7*24*time.Hour)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func signToken(userID uint, secretKey, tokenType string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(ttl).Unix(),
		"iat":     time.Now().Unix(),
		"type":    tokenType,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", fmt.Errorf("signToken: %v", err)
	}
	return tokenString, nil
}
