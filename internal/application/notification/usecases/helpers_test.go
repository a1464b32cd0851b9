package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/edofi/fiwe/internal/application/notification/dto"
	"github.com/edofi/fiwe/internal/application/notification/testutil"
	"github.com/edofi/fiwe/internal/domain/notification"
	vo "github.com/edofi/fiwe/internal/domain/notification/valueobjects"
	"github.com/edofi/fiwe/internal/shared/constants"
	"github.com/edofi/fiwe/internal/shared/logger"
)

func boolPtr(b bool) *bool {
	return &b
}

func userActor(userID uint) dto.Actor {
	return dto.Actor{UserID: userID, Role: constants.RoleUser}
}

func adminActor(userID uint) dto.Actor {
	return dto.Actor{UserID: userID, Role: constants.RoleAdmin, CanManageAny: true}
}

// seedNotification stores a PENDING notification of type t for userID.
func seedNotification(t *testing.T, repo *testutil.MockNotificationRepository, userID uint, nt vo.NotificationType) *notification.Notification {
	t.Helper()
	n, err := notification.NewNotification(userID, nt, "", "Titre", "Message", nil)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), n))
	return n
}

func newNopLogger() logger.Interface {
	return logger.NewNopLogger()
}
