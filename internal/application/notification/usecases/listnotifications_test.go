package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edofi/fiwe/internal/application/notification/dto"
	"github.com/edofi/fiwe/internal/application/notification/testutil"
	vo "github.com/edofi/fiwe/internal/domain/notification/valueobjects"
	"github.com/edofi/fiwe/internal/shared/constants"
	apperrors "github.com/edofi/fiwe/internal/shared/errors"
)

func seedListFixture(t *testing.T) (*testutil.MockNotificationRepository, map[uint]bool) {
	t.Helper()
	repo := testutil.NewMockNotificationRepository()
	ctx := context.Background()

	types := []vo.NotificationType{
		vo.NotificationTypeNewBooking,
		vo.NotificationTypeNewBooking,
		vo.NotificationTypeNewFollower,
		vo.NotificationTypeWelcome,
		vo.NotificationTypeSecurityAlert,
	}
	read := make(map[uint]bool)
	for i, nt := range types {
		n := seedNotification(t, repo, 10, nt)
		if i%2 == 0 {
			require.NoError(t, n.MarkAsRead())
			_, err := repo.MarkAsRead(ctx, n)
			require.NoError(t, err)
			read[n.ID()] = true
		} else {
			read[n.ID()] = false
		}
	}
	// Another user's notification must never leak into user 10's list.
	seedNotification(t, repo, 11, vo.NotificationTypeNewBooking)
	return repo, read
}

func TestListNotifications_ReadFilter(t *testing.T) {
	repo, read := seedListFixture(t)
	uc := NewListNotificationsUseCase(repo, nil, newNopLogger())

	resp, err := uc.Execute(context.Background(), userActor(10), dto.ListNotificationsRequest{
		UserID: 10,
		Read:   boolPtr(false),
	})

	require.NoError(t, err)
	items := resp.Items.([]*dto.NotificationResponse)
	assert.Equal(t, int64(2), resp.Total)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.False(t, read[item.ID])
		assert.Nil(t, item.ReadAt)
		assert.Equal(t, uint(10), item.UserID)
	}
}

func TestListNotifications_TypeFilter(t *testing.T) {
	repo, _ := seedListFixture(t)
	uc := NewListNotificationsUseCase(repo, nil, newNopLogger())

	resp, err := uc.Execute(context.Background(), userActor(10), dto.ListNotificationsRequest{
		UserID: 10,
		Type:   string(vo.NotificationTypeNewBooking),
	})

	require.NoError(t, err)
	items := resp.Items.([]*dto.NotificationResponse)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, string(vo.NotificationTypeNewBooking), item.Type)
	}
}

func TestListNotifications_CombinedFilters(t *testing.T) {
	repo, _ := seedListFixture(t)
	uc := NewListNotificationsUseCase(repo, nil, newNopLogger())

	resp, err := uc.Execute(context.Background(), userActor(10), dto.ListNotificationsRequest{
		UserID:   10,
		Type:     string(vo.NotificationTypeNewBooking),
		Read:     boolPtr(true),
		Priority: string(vo.PriorityMedium),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
}

func TestListNotifications_NewestFirstAndPaging(t *testing.T) {
	repo, _ := seedListFixture(t)
	uc := NewListNotificationsUseCase(repo, nil, newNopLogger())

	resp, err := uc.Execute(context.Background(), userActor(10), dto.ListNotificationsRequest{
		UserID: 10,
		Limit:  2,
		Offset: 1,
	})

	require.NoError(t, err)
	items := resp.Items.([]*dto.NotificationResponse)
	assert.Equal(t, int64(5), resp.Total)
	assert.Equal(t, 2, resp.Limit)
	assert.Equal(t, 1, resp.Offset)
	require.Len(t, items, 2)
	assert.Greater(t, items[0].ID, items[1].ID)
}

func TestListNotifications_Limits(t *testing.T) {
	repo, _ := seedListFixture(t)
	uc := NewListNotificationsUseCase(repo, nil, newNopLogger())

	tests := []struct {
		name      string
		limit     int
		wantLimit int
		wantErr   bool
	}{
		{"default", 0, constants.DefaultListLimit, false},
		{"clamped", 1000, constants.MaxListLimit, false},
		{"negative", -1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := uc.Execute(context.Background(), userActor(10), dto.ListNotificationsRequest{UserID: 10, Limit: tt.limit})
			if tt.wantErr {
				assert.True(t, apperrors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, resp.Limit)
		})
	}
}

func TestListNotifications_InvalidFilterValues(t *testing.T) {
	repo, _ := seedListFixture(t)
	uc := NewListNotificationsUseCase(repo, nil, newNopLogger())

	for _, req := range []dto.ListNotificationsRequest{
		{UserID: 10, Type: "NOPE"},
		{UserID: 10, Priority: "CRITICAL"},
		{UserID: 10, Status: "ARCHIVED"},
	} {
		_, err := uc.Execute(context.Background(), userActor(10), req)
		assert.True(t, apperrors.IsValidationError(err))
	}
}

func TestListNotifications_ForbiddenAndEmpty(t *testing.T) {
	repo, _ := seedListFixture(t)
	uc := NewListNotificationsUseCase(repo, nil, newNopLogger())

	_, err := uc.Execute(context.Background(), userActor(11), dto.ListNotificationsRequest{UserID: 10})
	assert.True(t, apperrors.IsForbiddenError(err))

	resp, err := uc.Execute(context.Background(), userActor(12), dto.ListNotificationsRequest{UserID: 12})
	require.NoError(t, err)
	assert.NotNil(t, resp.Items)
	assert.Empty(t, resp.Items)
}

func TestListNotifications_RepositoryError(t *testing.T) {
	repo := testutil.NewMockNotificationRepository()
	repo.SetListError(errors.New("connection reset"))
	uc := NewListNotificationsUseCase(repo, nil, newNopLogger())

	_, err := uc.Execute(context.Background(), userActor(10), dto.ListNotificationsRequest{UserID: 10})
	require.Error(t, err)
}
