package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every endpoint answers with: success plus either
// a human-readable message or a data payload.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// respondMessage writes a message-only envelope.
func respondMessage(c *gin.Context, status int, success bool, message string) {
	c.JSON(status, Response{Success: success, Message: message})
}

// respondData writes a data envelope.
func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{Success: true, Data: data})
}

// parseUintParam parses a string into a uint.
func parseUintParam(param string) (uint, error) {
	parsed, err := strconv.ParseUint(param, 10, 64)
	if err != nil {
		return 0, err
	}
	if parsed > uint64(^uint(0)) {
		return 0, fmt.Errorf("value out of range for uint: %d", parsed)
	}
	return uint(parsed), nil
}

// requestUserID pulls the caller's user id from the userId query parameter.
// A missing or malformed value answers 400 and returns false; the handler
// must return immediately in that case.
func requestUserID(c *gin.Context) (uint, bool) {
	raw := c.Query("userId")
	if raw == "" {
		respondMessage(c, http.StatusBadRequest, false, "userId가 필요합니다.")
		return 0, false
	}
	userID, err := parseUintParam(raw)
	if err != nil || userID == 0 {
		respondMessage(c, http.StatusBadRequest, false, "유효하지 않은 userId입니다.")
		return 0, false
	}
	return userID, true
}
