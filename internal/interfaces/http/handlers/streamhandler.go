package handlers

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/edofi/fiwe/internal/infrastructure/realtime"
	"github.com/edofi/fiwe/internal/shared/errors"
	"github.com/edofi/fiwe/internal/shared/goroutine"
	"github.com/edofi/fiwe/internal/shared/logger"
	"github.com/edofi/fiwe/internal/shared/utils"
)

const (
	sseKeepaliveInterval = 30 * time.Second
	sseContentType       = "text/event-stream"

	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 30 * time.Second
)

type realtimeHub interface {
	Register(userID uint) *realtime.Client
	Unregister(c *realtime.Client)
}

// StreamHandler pushes notification events to a user's open SSE or
// WebSocket connections.
type StreamHandler struct {
	hub       realtimeHub
	actors    actorResolver
	upgrader  websocket.Upgrader
	keepalive time.Duration
	logger    logger.Interface
}

func NewStreamHandler(hub realtimeHub, permissions PermissionChecker, allowedOrigins []string, logger logger.Interface) *StreamHandler {
	return &StreamHandler{
		hub:    hub,
		actors: actorResolver{permissions: permissions, logger: logger},
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		keepalive: sseKeepaliveInterval,
		logger:    logger,
	}
}

func originChecker(allowedOrigins []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowedOrigins) == 0 {
			return true
		}
		return slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin)
	}
}

// authorize checks that the caller may watch the :id user's stream.
func (h *StreamHandler) authorize(c *gin.Context) (uint, bool) {
	actor, err := h.actors.resolve(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return 0, false
	}

	userID, err := utils.ParseUintParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return 0, false
	}

	if !actor.CanAccess(userID) {
		h.logger.Warnw("unauthorized access to notification stream", "user_id", userID, "actor_id", actor.UserID)
		utils.ErrorResponseWithError(c, errors.NewForbiddenError("you don't have permission to watch these notifications"))
		return 0, false
	}
	return userID, true
}

// StreamSSE godoc
// @Summary Stream notification events (SSE)
// @Description Server-sent events named after the event type (notification.created, notification.read, notification.all_read, notification.deleted). Browsers may pass the token as access_token.
// @Security Bearer
// @Tags notifications
// @Produce text/event-stream
// @Param id path int true "User ID"
// @Success 200 {object} dto.RealtimeEvent
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Router /notifications/user/{id}/stream [get]
func (h *StreamHandler) StreamSSE(c *gin.Context) {
	userID, ok := h.authorize(c)
	if !ok {
		return
	}

	client := h.hub.Register(userID)
	defer h.hub.Unregister(client)

	c.Header("Content-Type", sseContentType)
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	if _, err := c.Writer.WriteString(": connected\n\n"); err != nil {
		h.logger.Warnw("SSE initial write error", "conn_id", client.ID, "error", err)
		return
	}
	c.Writer.Flush()

	h.logger.Infow("notification SSE stream opened", "conn_id", client.ID, "user_id", userID)

	keepAlive := time.NewTicker(h.keepalive)
	defer keepAlive.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			h.logger.Infow("notification SSE stream closed by client", "conn_id", client.ID, "user_id", userID)
			return

		case event, ok := <-client.Events():
			if !ok {
				return
			}
			c.SSEvent(event.Type, event)
			c.Writer.Flush()

		case <-keepAlive.C:
			if _, err := c.Writer.WriteString(": keepalive\n\n"); err != nil {
				h.logger.Warnw("SSE keepalive error", "conn_id", client.ID, "error", err)
				return
			}
			c.Writer.Flush()
		}
	}
}

// StreamWebSocket godoc
// @Summary Stream notification events (WebSocket)
// @Description Same payloads as the SSE stream, one JSON message per event.
// @Security Bearer
// @Tags notifications
// @Param id path int true "User ID"
// @Success 101 "Switching protocols"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Router /notifications/user/{id}/ws [get]
func (h *StreamHandler) StreamWebSocket(c *gin.Context) {
	userID, ok := h.authorize(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warnw("failed to upgrade notification websocket", "user_id", userID, "error", err)
		return
	}
	defer conn.Close()

	client := h.hub.Register(userID)
	defer h.hub.Unregister(client)

	h.logger.Infow("notification websocket opened", "conn_id", client.ID, "user_id", userID)

	// The reader only drains control frames; it ends when the peer goes away.
	done := make(chan struct{})
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	goroutine.SafeGo(h.logger, "notification-ws-reader", func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-done:
			h.logger.Infow("notification websocket closed by client", "conn_id", client.ID, "user_id", userID)
			return

		case event, ok := <-client.Events():
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				h.logger.Warnw("notification websocket write error", "conn_id", client.ID, "error", err)
				return
			}

		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				h.logger.Warnw("notification websocket ping error", "conn_id", client.ID, "error", err)
				return
			}
		}
	}
}
