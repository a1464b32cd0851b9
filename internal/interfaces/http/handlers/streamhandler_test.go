package handlers

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appDto "github.com/edofi/fiwe/internal/application/notification/dto"
	"github.com/edofi/fiwe/internal/infrastructure/realtime"
	"github.com/edofi/fiwe/internal/interfaces/http/handlers/testutil"
	"github.com/edofi/fiwe/internal/shared/constants"
	"github.com/edofi/fiwe/internal/shared/logger"
)

func newStreamServer(t *testing.T, hub *realtime.Hub, userID uint) *httptest.Server {
	t.Helper()
	handler := NewStreamHandler(hub, adminPermissions, nil, logger.NewNopLogger())

	r := gin.New()
	r.Use(func(c *gin.Context) {
		testutil.SetAuthContext(c, userID, constants.RoleUser)
		c.Next()
	})
	r.GET("/notifications/user/:id/stream", handler.StreamSSE)
	r.GET("/notifications/user/:id/ws", handler.StreamWebSocket)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestStreamSSE_DeliversEvents(t *testing.T) {
	hub := realtime.NewHub(4, logger.NewNopLogger())
	srv := newStreamServer(t, hub, 42)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/notifications/user/42/stream", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, sseContentType, resp.Header.Get("Content-Type"))
	require.Eventually(t, func() bool { return hub.ClientCount(42) == 1 }, time.Second, 10*time.Millisecond)

	hub.Broadcast(appDto.RealtimeEvent{Type: "notification.created", UserID: 42, NotificationID: 7})

	lines := make(chan string, 16)
	go func() {
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	var eventLine, dataLine string
	timeout := time.After(2 * time.Second)
	for dataLine == "" {
		select {
		case line, ok := <-lines:
			require.True(t, ok, "stream closed early")
			switch {
			case strings.HasPrefix(line, "event:"):
				eventLine = line
			case strings.HasPrefix(line, "data:") && eventLine != "":
				dataLine = line
			}
		case <-timeout:
			t.Fatal("no event received")
		}
	}

	assert.Equal(t, "event:notification.created", eventLine)
	assert.Contains(t, dataLine, `"notification_id":7`)

	cancel()
	assert.Eventually(t, func() bool { return hub.ClientCount(42) == 0 }, time.Second, 10*time.Millisecond)
}

func TestStreamSSE_ForbiddenForOtherUser(t *testing.T) {
	hub := realtime.NewHub(4, logger.NewNopLogger())
	handler := NewStreamHandler(hub, adminPermissions, nil, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/notifications/user/43/stream", nil)
	testutil.SetAuthContext(c, 42, constants.RoleUser)
	testutil.SetURLParam(c, "id", "43")

	handler.StreamSSE(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Zero(t, hub.ClientCount(43))
}

func TestStreamWebSocket_DeliversEvents(t *testing.T) {
	hub := realtime.NewHub(4, logger.NewNopLogger())
	srv := newStreamServer(t, hub, 42)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/notifications/user/42/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Eventually(t, func() bool { return hub.ClientCount(42) == 1 }, time.Second, 10*time.Millisecond)

	count := int64(2)
	hub.Broadcast(appDto.RealtimeEvent{Type: "notification.read", UserID: 42, NotificationID: 3, UnreadCount: &count})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event appDto.RealtimeEvent
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "notification.read", event.Type)
	assert.Equal(t, uint(3), event.NotificationID)
	require.NotNil(t, event.UnreadCount)
	assert.Equal(t, int64(2), *event.UnreadCount)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.ClientCount(42) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://app.fiwe.bj"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.True(t, check(req), "no origin header")

	req.Header.Set("Origin", "https://app.fiwe.bj")
	assert.True(t, check(req))

	req.Header.Set("Origin", "https://evil.example")
	assert.False(t, check(req))

	assert.True(t, originChecker(nil)(req))
}
