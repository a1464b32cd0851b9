package permission

import (
	"fmt"

	"github.com/edofi/fiwe/internal/shared/constants"
)

// InitNotificationPermissions installs the built-in policies. Existing
// policies are kept, so it is safe to run on every start.
func InitNotificationPermissions(e *Enforcer) error {
	policies := [][]string{
		// Admins manage every user's notifications
		{constants.RoleAdmin, ResourceNotification, ActionCreate},
		{constants.RoleAdmin, ResourceNotification, ActionManageAny},
		{constants.RoleAdmin, ResourceEvent, ActionPublish},

		// Backend services create notifications and feed business events
		{constants.RoleService, ResourceNotification, ActionCreate},
		{constants.RoleService, ResourceEvent, ActionPublish},
	}

	for _, policy := range policies {
		if err := e.AddPolicy(policy[0], policy[1], policy[2]); err != nil {
			e.logger.Errorw("failed to add notification permission policy",
				"error", err,
				"role", policy[0],
				"resource", policy[1],
				"action", policy[2])
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w",
				policy[0], policy[1], policy[2], err)
		}
	}

	e.logger.Info("notification permissions initialized successfully")
	return nil
}
