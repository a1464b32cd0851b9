package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/edofi/fiwe/internal/application/notification/dto"
	"github.com/edofi/fiwe/internal/infrastructure/permission"
	"github.com/edofi/fiwe/internal/interfaces/http/middleware"
	"github.com/edofi/fiwe/internal/shared/errors"
	"github.com/edofi/fiwe/internal/shared/logger"
)

// actorResolver turns the authenticated request into a dto.Actor. A failing
// permission lookup degrades to owner-only access.
type actorResolver struct {
	permissions PermissionChecker
	logger      logger.Interface
}

func (r actorResolver) resolve(c *gin.Context) (dto.Actor, error) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return dto.Actor{}, errors.NewUnauthorizedError("User not authenticated")
	}

	actor := dto.Actor{UserID: userID, Role: middleware.GetUserRole(c)}
	if r.permissions == nil || actor.Role == "" {
		return actor, nil
	}

	allowed, err := r.permissions.Enforce(actor.Role, permission.ResourceNotification, permission.ActionManageAny)
	if err != nil {
		r.logger.Warnw("failed to check manage_any permission", "user_id", userID, "role", actor.Role, "error", err)
		return actor, nil
	}
	actor.CanManageAny = allowed
	return actor, nil
}
