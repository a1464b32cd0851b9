package handlers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appDto "github.com/edofi/fiwe/internal/application/notification/dto"
	"github.com/edofi/fiwe/internal/interfaces/http/handlers/testutil"
	"github.com/edofi/fiwe/internal/shared/constants"
	"github.com/edofi/fiwe/internal/shared/errors"
	"github.com/edofi/fiwe/internal/shared/logger"
)

// =====================================================================
// Mock notification service
// =====================================================================

type mockNotificationService struct {
	listNotificationsFn  func(ctx context.Context, actor appDto.Actor, req appDto.ListNotificationsRequest) (*appDto.ListResponse, error)
	createNotificationFn func(ctx context.Context, req appDto.CreateNotificationRequest) (*appDto.NotificationResponse, error)
	createFromTemplateFn func(ctx context.Context, req appDto.CreateFromTemplateRequest) (*appDto.NotificationResponse, error)
	markAsReadFn         func(ctx context.Context, actor appDto.Actor, id uint) (*appDto.NotificationResponse, error)
	markAllAsReadFn      func(ctx context.Context, actor appDto.Actor, userID uint) (*appDto.MarkAllAsReadResponse, error)
	deleteNotificationFn func(ctx context.Context, actor appDto.Actor, id uint) error
	getUnreadCountFn     func(ctx context.Context, actor appDto.Actor, userID uint) (*appDto.UnreadCountResponse, error)
	getPreferencesFn     func(ctx context.Context, actor appDto.Actor, userID uint) (*appDto.PreferenceResponse, error)
	updatePreferencesFn  func(ctx context.Context, actor appDto.Actor, userID uint, req appDto.UpdatePreferencesRequest) (*appDto.PreferenceResponse, error)
}

func (m *mockNotificationService) ListNotifications(ctx context.Context, actor appDto.Actor, req appDto.ListNotificationsRequest) (*appDto.ListResponse, error) {
	if m.listNotificationsFn != nil {
		return m.listNotificationsFn(ctx, actor, req)
	}
	return &appDto.ListResponse{Items: []*appDto.NotificationResponse{}}, nil
}

func (m *mockNotificationService) CreateNotification(ctx context.Context, req appDto.CreateNotificationRequest) (*appDto.NotificationResponse, error) {
	if m.createNotificationFn != nil {
		return m.createNotificationFn(ctx, req)
	}
	return nil, nil
}

func (m *mockNotificationService) CreateFromTemplate(ctx context.Context, req appDto.CreateFromTemplateRequest) (*appDto.NotificationResponse, error) {
	if m.createFromTemplateFn != nil {
		return m.createFromTemplateFn(ctx, req)
	}
	return nil, nil
}

func (m *mockNotificationService) MarkNotificationAsRead(ctx context.Context, actor appDto.Actor, id uint) (*appDto.NotificationResponse, error) {
	if m.markAsReadFn != nil {
		return m.markAsReadFn(ctx, actor, id)
	}
	return nil, nil
}

func (m *mockNotificationService) MarkAllAsRead(ctx context.Context, actor appDto.Actor, userID uint) (*appDto.MarkAllAsReadResponse, error) {
	if m.markAllAsReadFn != nil {
		return m.markAllAsReadFn(ctx, actor, userID)
	}
	return &appDto.MarkAllAsReadResponse{}, nil
}

func (m *mockNotificationService) DeleteNotification(ctx context.Context, actor appDto.Actor, id uint) error {
	if m.deleteNotificationFn != nil {
		return m.deleteNotificationFn(ctx, actor, id)
	}
	return nil
}

func (m *mockNotificationService) GetUnreadCount(ctx context.Context, actor appDto.Actor, userID uint) (*appDto.UnreadCountResponse, error) {
	if m.getUnreadCountFn != nil {
		return m.getUnreadCountFn(ctx, actor, userID)
	}
	return &appDto.UnreadCountResponse{}, nil
}

func (m *mockNotificationService) GetPreferences(ctx context.Context, actor appDto.Actor, userID uint) (*appDto.PreferenceResponse, error) {
	if m.getPreferencesFn != nil {
		return m.getPreferencesFn(ctx, actor, userID)
	}
	return &appDto.PreferenceResponse{UserID: userID}, nil
}

func (m *mockNotificationService) UpdatePreferences(ctx context.Context, actor appDto.Actor, userID uint, req appDto.UpdatePreferencesRequest) (*appDto.PreferenceResponse, error) {
	if m.updatePreferencesFn != nil {
		return m.updatePreferencesFn(ctx, actor, userID, req)
	}
	return &appDto.PreferenceResponse{UserID: userID}, nil
}

func (m *mockNotificationService) ListCategories() []*appDto.CategoryResponse {
	return []*appDto.CategoryResponse{{ID: "booking", Name: "Réservations", PreferenceKey: "booking_enabled"}}
}

var adminPermissions = testutil.StaticPermissions{"admin:notification:manage_any": true}

func newTestNotificationHandler(svc *mockNotificationService) *NotificationHandler {
	return NewNotificationHandler(svc, adminPermissions, logger.NewNopLogger())
}

func parseAPIResponse(t *testing.T, body []byte) testutil.APIResponse {
	t.Helper()
	var resp testutil.APIResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

// =====================================================================
// ListNotifications
// =====================================================================

func TestListNotifications_ParsesFilters(t *testing.T) {
	var gotActor appDto.Actor
	var gotReq appDto.ListNotificationsRequest
	svc := &mockNotificationService{
		listNotificationsFn: func(_ context.Context, actor appDto.Actor, req appDto.ListNotificationsRequest) (*appDto.ListResponse, error) {
			gotActor = actor
			gotReq = req
			return &appDto.ListResponse{Items: []*appDto.NotificationResponse{{ID: 1}}, Total: 1, Limit: 5}, nil
		},
	}
	handler := newTestNotificationHandler(svc)

	c, w := testutil.NewTestContext(http.MethodGet, "/notifications/user/42", nil)
	testutil.SetAuthContext(c, 42, constants.RoleUser)
	testutil.SetURLParam(c, "id", "42")
	testutil.SetQueryParams(c, map[string]string{
		"type":     "NEW_BOOKING",
		"priority": "HIGH",
		"read":     "false",
		"limit":    "5",
		"offset":   "10",
	})

	handler.ListNotifications(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, appDto.Actor{UserID: 42, Role: constants.RoleUser}, gotActor)
	assert.Equal(t, uint(42), gotReq.UserID)
	assert.Equal(t, "NEW_BOOKING", gotReq.Type)
	assert.Equal(t, "HIGH", gotReq.Priority)
	require.NotNil(t, gotReq.Read)
	assert.False(t, *gotReq.Read)
	assert.Equal(t, 5, gotReq.Limit)
	assert.Equal(t, 10, gotReq.Offset)

	resp := parseAPIResponse(t, w.Body.Bytes())
	assert.True(t, resp.Success)
}

func TestListNotifications_DefaultsWhenNoFilters(t *testing.T) {
	var gotReq appDto.ListNotificationsRequest
	svc := &mockNotificationService{
		listNotificationsFn: func(_ context.Context, _ appDto.Actor, req appDto.ListNotificationsRequest) (*appDto.ListResponse, error) {
			gotReq = req
			return &appDto.ListResponse{}, nil
		},
	}
	handler := newTestNotificationHandler(svc)

	c, w := testutil.NewTestContext(http.MethodGet, "/notifications/user/42", nil)
	testutil.SetAuthContext(c, 42, constants.RoleUser)
	testutil.SetURLParam(c, "id", "42")

	handler.ListNotifications(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, gotReq.Read)
	assert.Equal(t, constants.DefaultListLimit, gotReq.Limit)
	assert.Zero(t, gotReq.Offset)
}

func TestListNotifications_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		query  map[string]string
	}{
		{"unknown type", "42", map[string]string{"type": "NOPE"}},
		{"unknown priority", "42", map[string]string{"priority": "CRITICAL"}},
		{"unknown status", "42", map[string]string{"status": "ARCHIVED"}},
		{"bad read flag", "42", map[string]string{"read": "maybe"}},
		{"bad limit", "42", map[string]string{"limit": "ten"}},
		{"bad user id", "abc", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			svc := &mockNotificationService{
				listNotificationsFn: func(context.Context, appDto.Actor, appDto.ListNotificationsRequest) (*appDto.ListResponse, error) {
					called = true
					return &appDto.ListResponse{}, nil
				},
			}
			handler := newTestNotificationHandler(svc)

			c, w := testutil.NewTestContext(http.MethodGet, "/notifications/user/"+tt.userID, nil)
			testutil.SetAuthContext(c, 42, constants.RoleUser)
			testutil.SetURLParam(c, "id", tt.userID)
			if tt.query != nil {
				testutil.SetQueryParams(c, tt.query)
			}

			handler.ListNotifications(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, called)
			resp := parseAPIResponse(t, w.Body.Bytes())
			require.NotNil(t, resp.Error)
			assert.Equal(t, string(errors.ErrorTypeValidation), resp.Error.Type)
		})
	}
}

func TestListNotifications_Unauthenticated(t *testing.T) {
	handler := newTestNotificationHandler(&mockNotificationService{})

	c, w := testutil.NewTestContext(http.MethodGet, "/notifications/user/42", nil)
	testutil.SetURLParam(c, "id", "42")

	handler.ListNotifications(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListNotifications_ForbiddenFromService(t *testing.T) {
	svc := &mockNotificationService{
		listNotificationsFn: func(_ context.Context, actor appDto.Actor, req appDto.ListNotificationsRequest) (*appDto.ListResponse, error) {
			if !actor.CanAccess(req.UserID) {
				return nil, errors.NewForbiddenError("forbidden")
			}
			return &appDto.ListResponse{}, nil
		},
	}
	handler := newTestNotificationHandler(svc)

	t.Run("other user", func(t *testing.T) {
		c, w := testutil.NewTestContext(http.MethodGet, "/notifications/user/43", nil)
		testutil.SetAuthContext(c, 42, constants.RoleUser)
		testutil.SetURLParam(c, "id", "43")

		handler.ListNotifications(c)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin may read any user", func(t *testing.T) {
		c, w := testutil.NewTestContext(http.MethodGet, "/notifications/user/43", nil)
		testutil.SetAuthContext(c, 1, constants.RoleAdmin)
		testutil.SetURLParam(c, "id", "43")

		handler.ListNotifications(c)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestListNotifications_InternalErrorIsHidden(t *testing.T) {
	svc := &mockNotificationService{
		listNotificationsFn: func(context.Context, appDto.Actor, appDto.ListNotificationsRequest) (*appDto.ListResponse, error) {
			return nil, stderrors.New("dial tcp 10.0.0.3:3306: connection refused")
		},
	}
	handler := newTestNotificationHandler(svc)

	c, w := testutil.NewTestContext(http.MethodGet, "/notifications/user/42", nil)
	testutil.SetAuthContext(c, 42, constants.RoleUser)
	testutil.SetURLParam(c, "id", "42")

	handler.ListNotifications(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.3")
	assert.Contains(t, w.Body.String(), constants.ErrMsgInternalServerError)
}

// =====================================================================
// Counts and bulk read
// =====================================================================

func TestGetUnreadCount(t *testing.T) {
	svc := &mockNotificationService{
		getUnreadCountFn: func(_ context.Context, _ appDto.Actor, userID uint) (*appDto.UnreadCountResponse, error) {
			assert.Equal(t, uint(42), userID)
			return &appDto.UnreadCountResponse{Count: 3}, nil
		},
	}
	handler := newTestNotificationHandler(svc)

	c, w := testutil.NewTestContext(http.MethodGet, "/notifications/user/42/unread-count", nil)
	testutil.SetAuthContext(c, 42, constants.RoleUser)
	testutil.SetURLParam(c, "id", "42")

	handler.GetUnreadCount(c)

	require.Equal(t, http.StatusOK, w.Code)
	resp := parseAPIResponse(t, w.Body.Bytes())
	assert.JSONEq(t, `{"count":3}`, string(resp.Data))
}

func TestMarkAllAsRead(t *testing.T) {
	svc := &mockNotificationService{
		markAllAsReadFn: func(_ context.Context, actor appDto.Actor, userID uint) (*appDto.MarkAllAsReadResponse, error) {
			assert.Equal(t, uint(42), actor.UserID)
			return &appDto.MarkAllAsReadResponse{Updated: 4}, nil
		},
	}
	handler := newTestNotificationHandler(svc)

	c, w := testutil.NewTestContext(http.MethodPut, "/notifications/user/42/mark-all-read", nil)
	testutil.SetAuthContext(c, 42, constants.RoleUser)
	testutil.SetURLParam(c, "id", "42")

	handler.MarkAllAsRead(c)

	require.Equal(t, http.StatusOK, w.Code)
	resp := parseAPIResponse(t, w.Body.Bytes())
	assert.JSONEq(t, `{"updated":4}`, string(resp.Data))
}

// =====================================================================
// Preferences
// =====================================================================

func TestGetPreferences(t *testing.T) {
	handler := newTestNotificationHandler(&mockNotificationService{})

	c, w := testutil.NewTestContext(http.MethodGet, "/notifications/user/42/preferences", nil)
	testutil.SetAuthContext(c, 42, constants.RoleUser)
	testutil.SetURLParam(c, "id", "42")

	handler.GetPreferences(c)

	require.Equal(t, http.StatusOK, w.Code)
	var data appDto.PreferenceResponse
	require.NoError(t, json.Unmarshal(parseAPIResponse(t, w.Body.Bytes()).Data, &data))
	assert.Equal(t, uint(42), data.UserID)
}

func TestUpdatePreferences_PartialBody(t *testing.T) {
	var gotReq appDto.UpdatePreferencesRequest
	svc := &mockNotificationService{
		updatePreferencesFn: func(_ context.Context, _ appDto.Actor, userID uint, req appDto.UpdatePreferencesRequest) (*appDto.PreferenceResponse, error) {
			gotReq = req
			return &appDto.PreferenceResponse{UserID: userID, SocialEnabled: false}, nil
		},
	}
	handler := newTestNotificationHandler(svc)

	c, w := testutil.NewTestContext(http.MethodPut, "/notifications/user/42/preferences", map[string]any{"social_enabled": false})
	testutil.SetAuthContext(c, 42, constants.RoleUser)
	testutil.SetURLParam(c, "id", "42")

	handler.UpdatePreferences(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, gotReq.SocialEnabled)
	assert.False(t, *gotReq.SocialEnabled)
	assert.Nil(t, gotReq.EmailEnabled)
	assert.Nil(t, gotReq.UrgentEnabled)
}

func TestUpdatePreferences_MalformedBody(t *testing.T) {
	handler := newTestNotificationHandler(&mockNotificationService{})

	c, w := testutil.NewTestContext(http.MethodPut, "/notifications/user/42/preferences", `{"social_enabled": "nope"`)
	testutil.SetAuthContext(c, 42, constants.RoleUser)
	testutil.SetURLParam(c, "id", "42")

	handler.UpdatePreferences(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// =====================================================================
// Create
// =====================================================================

func TestCreateNotification(t *testing.T) {
	svc := &mockNotificationService{
		createNotificationFn: func(_ context.Context, req appDto.CreateNotificationRequest) (*appDto.NotificationResponse, error) {
			return &appDto.NotificationResponse{ID: 9, UserID: req.UserID, Type: req.Type, Status: "PENDING"}, nil
		},
	}
	handler := newTestNotificationHandler(svc)

	t.Run("created", func(t *testing.T) {
		c, w := testutil.NewTestContext(http.MethodPost, "/notifications", map[string]any{
			"user_id": 42,
			"type":    "NEW_BOOKING",
			"title":   "Nouvelle réservation",
			"message": "Marie Dupont a réservé.",
		})
		testutil.SetAuthContext(c, 1, constants.RoleService)

		handler.CreateNotification(c)

		require.Equal(t, http.StatusCreated, w.Code)
		var data appDto.NotificationResponse
		require.NoError(t, json.Unmarshal(parseAPIResponse(t, w.Body.Bytes()).Data, &data))
		assert.Equal(t, uint(9), data.ID)
		assert.Equal(t, "PENDING", data.Status)
	})

	t.Run("unknown type", func(t *testing.T) {
		c, w := testutil.NewTestContext(http.MethodPost, "/notifications", map[string]any{
			"user_id": 42,
			"type":    "SOMETHING_ELSE",
			"title":   "x",
			"message": "y",
		})
		testutil.SetAuthContext(c, 1, constants.RoleService)

		handler.CreateNotification(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing title", func(t *testing.T) {
		c, w := testutil.NewTestContext(http.MethodPost, "/notifications", map[string]any{
			"user_id": 42,
			"type":    "NEW_BOOKING",
			"message": "y",
		})
		testutil.SetAuthContext(c, 1, constants.RoleService)

		handler.CreateNotification(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCreateFromTemplate(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &mockNotificationService{
			createFromTemplateFn: func(_ context.Context, req appDto.CreateFromTemplateRequest) (*appDto.NotificationResponse, error) {
				assert.Equal(t, "Jazz Night", req.Variables["event_title"])
				return &appDto.NotificationResponse{ID: 1, UserID: req.UserID, Type: req.Type}, nil
			},
		}
		handler := newTestNotificationHandler(svc)

		c, w := testutil.NewTestContext(http.MethodPost, "/notifications/from-template", map[string]any{
			"user_id":   42,
			"type":      "NEW_BOOKING",
			"variables": map[string]any{"participant_name": "Marie Dupont", "event_title": "Jazz Night"},
		})
		testutil.SetAuthContext(c, 1, constants.RoleService)

		handler.CreateFromTemplate(c)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("skipped by preferences", func(t *testing.T) {
		svc := &mockNotificationService{
			createFromTemplateFn: func(context.Context, appDto.CreateFromTemplateRequest) (*appDto.NotificationResponse, error) {
				return nil, nil
			},
		}
		handler := newTestNotificationHandler(svc)

		c, w := testutil.NewTestContext(http.MethodPost, "/notifications/from-template", map[string]any{
			"user_id": 42,
			"type":    "NEW_FOLLOWER",
		})
		testutil.SetAuthContext(c, 1, constants.RoleService)

		handler.CreateFromTemplate(c)

		require.Equal(t, http.StatusOK, w.Code)
		resp := parseAPIResponse(t, w.Body.Bytes())
		assert.True(t, resp.Success)
		assert.Empty(t, resp.Data)
		assert.Equal(t, "Notification skipped by preferences", resp.Message)
	})
}

// =====================================================================
// Mark as read / delete
// =====================================================================

func TestMarkAsRead(t *testing.T) {
	svc := &mockNotificationService{
		markAsReadFn: func(_ context.Context, actor appDto.Actor, id uint) (*appDto.NotificationResponse, error) {
			switch id {
			case 404:
				return nil, errors.NewNotFoundError("notification not found")
			case 403:
				return nil, errors.NewForbiddenError("not yours")
			}
			return &appDto.NotificationResponse{ID: id, UserID: actor.UserID, Status: "READ"}, nil
		},
	}
	handler := newTestNotificationHandler(svc)

	tests := []struct {
		id   string
		want int
	}{
		{"7", http.StatusOK},
		{"404", http.StatusNotFound},
		{"403", http.StatusForbidden},
		{"0", http.StatusBadRequest},
		{"x", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			c, w := testutil.NewTestContext(http.MethodPut, "/notifications/"+tt.id+"/read", nil)
			testutil.SetAuthContext(c, 42, constants.RoleUser)
			testutil.SetURLParam(c, "id", tt.id)

			handler.MarkAsRead(c)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestDeleteNotification(t *testing.T) {
	var deleted uint
	svc := &mockNotificationService{
		deleteNotificationFn: func(_ context.Context, _ appDto.Actor, id uint) error {
			deleted = id
			return nil
		},
	}
	handler := newTestNotificationHandler(svc)

	c, w := testutil.NewTestContext(http.MethodDelete, "/notifications/5", nil)
	testutil.SetAuthContext(c, 42, constants.RoleUser)
	testutil.SetURLParam(c, "id", "5")

	handler.DeleteNotification(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, uint(5), deleted)
}

func TestListCategories(t *testing.T) {
	handler := newTestNotificationHandler(&mockNotificationService{})

	c, w := testutil.NewTestContext(http.MethodGet, "/notifications/categories", nil)
	testutil.SetAuthContext(c, 42, constants.RoleUser)

	handler.ListCategories(c)

	require.Equal(t, http.StatusOK, w.Code)
	var data []appDto.CategoryResponse
	require.NoError(t, json.Unmarshal(parseAPIResponse(t, w.Body.Bytes()).Data, &data))
	require.Len(t, data, 1)
	assert.Equal(t, "booking_enabled", data[0].PreferenceKey)
}
