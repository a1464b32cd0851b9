package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edofi/fiwe/internal/application/notification/testutil"
	"github.com/edofi/fiwe/internal/domain/notification"
	vo "github.com/edofi/fiwe/internal/domain/notification/valueobjects"
	"github.com/edofi/fiwe/internal/shared/biztime"
)

type dispatchFixture struct {
	notifications *testutil.MockNotificationRepository
	preferences   *testutil.MockPreferenceRepository
	recipients    *testutil.MockRecipientDirectory
	email         *testutil.MockEmailSender
	uc            *DispatchPendingUseCase
}

func newDispatchFixture() *dispatchFixture {
	f := &dispatchFixture{
		notifications: testutil.NewMockNotificationRepository(),
		preferences:   testutil.NewMockPreferenceRepository(),
		recipients:    testutil.NewMockRecipientDirectory(),
		email:         testutil.NewMockEmailSender(),
	}
	f.uc = NewDispatchPendingUseCase(f.notifications, f.preferences, f.recipients, f.email, nil, 10, newNopLogger())
	return f
}

func (f *dispatchFixture) status(t *testing.T, id uint) vo.Status {
	t.Helper()
	n, err := f.notifications.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, n)
	return n.Status()
}

func TestDispatchPending_SendsEmailAndMarksSent(t *testing.T) {
	f := newDispatchFixture()
	f.recipients.Add(70, "awa@example.com", "Awa")
	n := seedNotification(t, f.notifications, 70, vo.NotificationTypeNewBooking)

	result, err := f.uc.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, vo.StatusSent, f.status(t, n.ID()))

	sent := f.email.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "awa@example.com", sent[0].To)
	assert.Equal(t, "Titre", sent[0].Subject)
	assert.Equal(t, n.Message(), sent[0].Text)

	stored, _ := f.notifications.GetByID(context.Background(), n.ID())
	assert.NotNil(t, stored.SentAt())
}

func TestDispatchPending_EmailFailureWithInAppStillSent(t *testing.T) {
	f := newDispatchFixture()
	f.recipients.Add(70, "awa@example.com", "Awa")
	f.email.SetError(errors.New("smtp down"))
	n := seedNotification(t, f.notifications, 70, vo.NotificationTypeNewBooking)

	result, err := f.uc.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, vo.StatusSent, f.status(t, n.ID()))
}

func TestDispatchPending_AllChannelsFailedMarksFailed(t *testing.T) {
	f := newDispatchFixture()
	f.preferences.Seed(70, notification.PreferenceUpdate{InAppEnabled: boolPtr(false)})
	f.recipients.Add(70, "awa@example.com", "Awa")
	f.email.SetError(errors.New("smtp down"))
	n := seedNotification(t, f.notifications, 70, vo.NotificationTypeNewBooking)

	result, err := f.uc.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, vo.StatusFailed, f.status(t, n.ID()))
}

func TestDispatchPending_NoAddressSkipsEmail(t *testing.T) {
	f := newDispatchFixture()
	n := seedNotification(t, f.notifications, 71, vo.NotificationTypeNewBooking)

	_, err := f.uc.Run(context.Background())

	require.NoError(t, err)
	assert.Empty(t, f.email.Sent())
	assert.Equal(t, vo.StatusSent, f.status(t, n.ID()))
}

func TestDispatchPending_EmailDisabled(t *testing.T) {
	f := newDispatchFixture()
	f.preferences.Seed(72, notification.PreferenceUpdate{EmailEnabled: boolPtr(false)})
	f.recipients.Add(72, "kofi@example.com", "Kofi")
	seedNotification(t, f.notifications, 72, vo.NotificationTypeNewBooking)

	_, err := f.uc.Run(context.Background())

	require.NoError(t, err)
	assert.Empty(t, f.email.Sent())
}

func TestDispatchPending_ReadNotificationsAreNotTouched(t *testing.T) {
	f := newDispatchFixture()
	n := seedNotification(t, f.notifications, 73, vo.NotificationTypeNewBooking)
	require.NoError(t, n.MarkAsRead())
	_, err := f.notifications.MarkAsRead(context.Background(), n)
	require.NoError(t, err)

	result, err := f.uc.Run(context.Background())

	require.NoError(t, err)
	assert.Zero(t, result.Processed)
	assert.Equal(t, vo.StatusRead, f.status(t, n.ID()))
}

func TestDispatchPending_PreferenceErrorLeavesPending(t *testing.T) {
	f := newDispatchFixture()
	f.preferences.SetGetError(errors.New("timeout"))
	n := seedNotification(t, f.notifications, 74, vo.NotificationTypeNewBooking)

	processed, err := f.uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, processed)
	assert.Equal(t, vo.StatusPending, f.status(t, n.ID()))
}

func TestDispatchPending_RespectsBatchSize(t *testing.T) {
	f := newDispatchFixture()
	f.uc = NewDispatchPendingUseCase(f.notifications, f.preferences, nil, nil, nil, 2, newNopLogger())
	for i := 0; i < 5; i++ {
		seedNotification(t, f.notifications, 75, vo.NotificationTypeNewFollower)
	}

	processed, err := f.uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, processed)
	pending, err := f.notifications.ListPending(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, pending, 3)
}

// =====================================================================
// Cleanup
// =====================================================================

func seedRead(t *testing.T, repo *testutil.MockNotificationRepository, id uint, readAt time.Time) {
	t.Helper()
	n, err := notification.ReconstructNotification(
		id, 80, vo.NotificationTypeWelcome, vo.PriorityMedium, "Bienvenue", "Bonjour", nil,
		vo.StatusRead, &readAt, nil, 2, readAt.Add(-time.Hour), readAt,
	)
	require.NoError(t, err)
	repo.Put(n)
}

func TestCleanupNotifications(t *testing.T) {
	repo := testutil.NewMockNotificationRepository()
	now := biztime.NowUTC()
	for id := uint(1); id <= 5; id++ {
		seedRead(t, repo, id, now.Add(-100*24*time.Hour))
	}
	seedRead(t, repo, 6, now.Add(-time.Hour))
	unread := seedNotification(t, repo, 80, vo.NotificationTypeWelcome)

	uc := NewCleanupNotificationsUseCase(repo, 90*24*time.Hour, 2, newNopLogger())
	deleted, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 5, deleted)
	assert.Equal(t, 2, repo.Count())

	stored, err := repo.GetByID(context.Background(), unread.ID())
	require.NoError(t, err)
	assert.NotNil(t, stored, "unread notifications are kept")
}

func TestCleanupNotifications_DisabledRetention(t *testing.T) {
	repo := testutil.NewMockNotificationRepository()
	seedRead(t, repo, 1, biztime.NowUTC().Add(-1000*24*time.Hour))

	deleted, err := NewCleanupNotificationsUseCase(repo, 0, 10, newNopLogger()).Execute(context.Background())

	require.NoError(t, err)
	assert.Zero(t, deleted)
	assert.Equal(t, 1, repo.Count())
}
