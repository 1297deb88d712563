package ws

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/modurim/homepick-api/internal/logger"
	"github.com/modurim/homepick-api/internal/models"
	"github.com/modurim/homepick-api/internal/repository"
	"go.uber.org/zap"
)

// Client represents a single WebSocket connection on the state feed.
type Client struct {
	Hub    *Hub
	Conn   *websocket.Conn
	Send   chan []byte
	UserID uint
}

// stateMessage is the envelope pushed to feed clients after a committed
// device batch.
type stateMessage struct {
	Type       string             `json:"type"`
	Appliances []models.Appliance `json:"appliances"`
}

// FeedHandler upgrades HTTP requests to appliance state feed connections
// and mirrors attachment into the user's AI speaker connection status.
type FeedHandler struct {
	Hub      *Hub
	Speakers repository.SpeakerRepo
}

// NewFeedHandler returns a new FeedHandler.
func NewFeedHandler(hub *Hub, speakers repository.SpeakerRepo) *FeedHandler {
	return &FeedHandler{Hub: hub, Speakers: speakers}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The feed is identity-scoped by userId like the rest of the API, not
	// origin-scoped.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleFeed upgrades the request and attaches the client to its user's
// feed until the connection closes.
func (fh *FeedHandler) HandleFeed(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Query("userId"), 10, 64)
	if err != nil || userID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "사용자 정보(userId)가 필요합니다."})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Get().Error("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		Hub:    fh.Hub,
		Conn:   conn,
		Send:   make(chan []byte, 16),
		UserID: uint(userID),
	}
	fh.Hub.Register <- client

	if err := fh.Speakers.SetConnStatus(client.UserID, models.SpeakerConnected); err != nil {
		// Logged in the repository; the feed still works without a speaker row.
		_ = err
	}

	go client.writePump()
	go client.readPump(fh.Speakers)
}

// NotifyApplianceState broadcasts a committed appliance batch to the
// owner's attached clients. Implements service.ApplianceNotifier.
func (h *Hub) NotifyApplianceState(userID uint, appliances []models.Appliance) {
	if !h.HasClients(userID) {
		return
	}

	payload, err := json.Marshal(stateMessage{Type: "appliance_state", Appliances: appliances})
	if err != nil {
		logger.Get().Error("failed to encode state feed message", zap.Error(err))
		return
	}

	h.Broadcast <- &UserMessage{UserID: userID, Message: payload}
}

// readPump discards inbound messages and tears the client down when the
// peer goes away. The feed is one-directional.
func (c *Client) readPump(speakers repository.SpeakerRepo) {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
		_ = speakers.SetConnStatus(c.UserID, models.SpeakerDisconnected)
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Get().Warn("state feed read error", zap.Uint("user_id", c.UserID), zap.Error(err))
			}
			return
		}
	}
}

// writePump pushes queued messages and pings to the peer.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
