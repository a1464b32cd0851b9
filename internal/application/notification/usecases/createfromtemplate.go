package usecases

import (
	"context"
	"fmt"

	"github.com/edofi/fiwe/internal/application/notification/dto"
	"github.com/edofi/fiwe/internal/domain/notification"
	"github.com/edofi/fiwe/internal/domain/notification/templates"
	vo "github.com/edofi/fiwe/internal/domain/notification/valueobjects"
	"github.com/edofi/fiwe/internal/shared/errors"
	"github.com/edofi/fiwe/internal/shared/logger"
)

type CreateFromTemplateUseCase struct {
	preferenceRepo notification.PreferenceRepository
	create         *CreateNotificationUseCase
	logger         logger.Interface
}

func NewCreateFromTemplateUseCase(
	preferenceRepo notification.PreferenceRepository,
	create *CreateNotificationUseCase,
	logger logger.Interface,
) *CreateFromTemplateUseCase {
	return &CreateFromTemplateUseCase{
		preferenceRepo: preferenceRepo,
		create:         create,
		logger:         logger,
	}
}

// Execute renders the type's template and stores the notification. It returns
// nil, nil when the user's preferences suppress the type; nothing is queued.
func (uc *CreateFromTemplateUseCase) Execute(ctx context.Context, req dto.CreateFromTemplateRequest) (*dto.NotificationResponse, error) {
	uc.logger.Infow("executing create notification from template use case", "user_id", req.UserID, "type", req.Type)

	if req.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}
	notificationType, err := vo.NewNotificationType(req.Type)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	pref, err := uc.preferenceRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		uc.logger.Errorw("failed to load notification preference", "user_id", req.UserID, "error", err)
		return nil, fmt.Errorf("failed to load notification preference: %w", err)
	}

	if !notification.ShouldDeliver(pref, notificationType) {
		uc.logger.Infow("notification skipped by preferences", "user_id", req.UserID, "type", req.Type)
		return nil, nil
	}

	rendered, err := templates.Render(notificationType, req.Variables)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	n, err := notification.NewNotification(req.UserID, notificationType, rendered.Priority, rendered.Title, rendered.Message, req.Data)
	if err != nil {
		uc.logger.Warnw("rendered notification is invalid", "user_id", req.UserID, "type", req.Type, "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	return uc.create.store(ctx, n)
}
