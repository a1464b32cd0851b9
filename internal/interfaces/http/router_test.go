package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edofi/fiwe/internal/infrastructure/auth"
	"github.com/edofi/fiwe/internal/infrastructure/config"
	"github.com/edofi/fiwe/internal/infrastructure/database"
	"github.com/edofi/fiwe/internal/infrastructure/migration"
	sharedConfig "github.com/edofi/fiwe/internal/shared/config"
	"github.com/edofi/fiwe/internal/shared/constants"
	"github.com/edofi/fiwe/internal/shared/logger"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type testServer struct {
	router *Router
	jwt    *auth.JWTService
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server: sharedConfig.ServerConfig{Mode: gin.TestMode},
		Database: sharedConfig.DatabaseConfig{
			Driver:     "sqlite",
			SQLitePath: ":memory:",
		},
		Auth: sharedConfig.AuthConfig{
			JWT: sharedConfig.JWTConfig{Secret: "router-test-secret", Issuer: "fiwe-test", AccessExpMinutes: 5},
		},
		Notification: sharedConfig.NotificationConfig{
			RateLimit: sharedConfig.RateLimitConfig{Requests: 1000, WindowSeconds: 60},
		},
	}

	db, err := database.Open(&cfg.Database)
	require.NoError(t, err)
	require.NoError(t, migration.NewGormAutoMigrateStrategy().Migrate(db))

	router, err := NewRouter(db, cfg, logger.NewNopLogger())
	require.NoError(t, err)
	router.SetupRoutes()

	t.Cleanup(func() {
		router.Shutdown()
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return &testServer{router: router, jwt: auth.NewJWTService(cfg.Auth.JWT)}
}

func (s *testServer) do(t *testing.T, method, path string, userID uint, role string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	if userID != 0 {
		token, err := s.jwt.Generate(userID, role)
		require.NoError(t, err)
		req.Header.Set(constants.HeaderAuthorization, "Bearer "+token.Token)
	}

	w := httptest.NewRecorder()
	s.router.GetEngine().ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func TestRouter_HealthAndAuth(t *testing.T) {
	s := setupTestServer(t)

	w, _ := s.do(t, http.MethodGet, "/health", 0, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(constants.HeaderXRequestID))

	w, _ = s.do(t, http.MethodGet, "/notifications/categories", 0, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env := s.do(t, http.MethodGet, "/notifications/categories", 42, constants.RoleUser, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var categories []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &categories))
	assert.Len(t, categories, 8)
}

func TestRouter_NotificationLifecycle(t *testing.T) {
	s := setupTestServer(t)

	create := map[string]any{
		"user_id": 42,
		"type":    "EVENT_UPDATED",
		"title":   "Jazz Night a changé",
		"message": "Nouvel horaire : **21h**",
	}

	w, _ := s.do(t, http.MethodPost, "/notifications", 42, constants.RoleUser, create)
	assert.Equal(t, http.StatusForbidden, w.Code, "plain users cannot create notifications")

	w, env := s.do(t, http.MethodPost, "/notifications", 1, constants.RoleService, create)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID     uint   `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotZero(t, created.ID)

	w, env = s.do(t, http.MethodGet, "/notifications/user/42/unread-count", 42, constants.RoleUser, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":1}`, string(env.Data))

	w, _ = s.do(t, http.MethodGet, "/notifications/user/42", 43, constants.RoleUser, nil)
	assert.Equal(t, http.StatusForbidden, w.Code, "other users cannot list the notifications")

	w, _ = s.do(t, http.MethodPut, "/notifications/"+strconv.FormatUint(uint64(created.ID), 10)+"/read", 42, constants.RoleUser, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, env = s.do(t, http.MethodGet, "/notifications/user/42/unread-count", 42, constants.RoleUser, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":0}`, string(env.Data))

	w, _ = s.do(t, http.MethodDelete, "/notifications/"+strconv.FormatUint(uint64(created.ID), 10), 42, constants.RoleUser, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, env = s.do(t, http.MethodGet, "/notifications/user/42", 42, constants.RoleUser, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Items []any `json:"items"`
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Empty(t, list.Items)
	assert.Zero(t, list.Total)
}

func TestRouter_BusinessEventTriggersNotification(t *testing.T) {
	s := setupTestServer(t)

	event := map[string]any{
		"type": "booking.created",
		"payload": map[string]any{
			"user_id":          42,
			"participant_name": "Marie Dupont",
			"event_title":      "Jazz Night",
			"event_id":         7,
		},
	}

	w, _ := s.do(t, http.MethodPost, "/notification-events", 42, constants.RoleUser, event)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(t, http.MethodPost, "/notification-events", 1, constants.RoleService, event)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	require.Eventually(t, func() bool {
		w, env := s.do(t, http.MethodGet, "/notifications/user/42?type=NEW_BOOKING", 42, constants.RoleUser, nil)
		if w.Code != http.StatusOK {
			return false
		}
		var list struct {
			Items []struct {
				Title   string `json:"title"`
				Message string `json:"message"`
			} `json:"items"`
		}
		if err := json.Unmarshal(env.Data, &list); err != nil || len(list.Items) != 1 {
			return false
		}
		return strings.Contains(list.Items[0].Message, "Marie Dupont")
	}, 3*time.Second, 20*time.Millisecond)
}

func TestRouter_PreferencesGateTemplates(t *testing.T) {
	s := setupTestServer(t)

	w, _ := s.do(t, http.MethodPut, "/notifications/user/42/preferences", 42, constants.RoleUser,
		map[string]any{"booking_enabled": false})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, env := s.do(t, http.MethodPost, "/notifications/from-template", 1, constants.RoleService, map[string]any{
		"user_id":   42,
		"type":      "NEW_BOOKING",
		"variables": map[string]any{"participant_name": "Marie Dupont", "event_title": "Jazz Night"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Empty(t, env.Data)
	assert.Equal(t, "Notification skipped by preferences", env.Message)

	w, _ = s.do(t, http.MethodPost, "/notifications/from-template", 1, constants.RoleService, map[string]any{
		"user_id":   42,
		"type":      "SECURITY_ALERT",
		"variables": map[string]any{"details": "Nouvelle connexion"},
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}
