package usecases

import (
	"context"
	"fmt"

	"github.com/edofi/fiwe/internal/application/notification/dto"
	"github.com/edofi/fiwe/internal/domain/notification"
	vo "github.com/edofi/fiwe/internal/domain/notification/valueobjects"
	"github.com/edofi/fiwe/internal/shared/constants"
	"github.com/edofi/fiwe/internal/shared/errors"
	"github.com/edofi/fiwe/internal/shared/logger"
)

type ListNotificationsUseCase struct {
	repo            notification.NotificationRepository
	markdownService dto.MarkdownService
	logger          logger.Interface
}

func NewListNotificationsUseCase(
	repo notification.NotificationRepository,
	markdownService dto.MarkdownService,
	logger logger.Interface,
) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{
		repo:            repo,
		markdownService: markdownService,
		logger:          logger,
	}
}

func (uc *ListNotificationsUseCase) Execute(ctx context.Context, actor dto.Actor, req dto.ListNotificationsRequest) (*dto.ListResponse, error) {
	uc.logger.Infow("executing list notifications use case", "user_id", req.UserID, "actor_id", actor.UserID)

	if !actor.CanAccess(req.UserID) {
		uc.logger.Warnw("unauthorized access to notifications", "user_id", req.UserID, "actor_id", actor.UserID)
		return nil, errors.NewForbiddenError("you don't have permission to access these notifications")
	}

	filter, err := buildListFilter(req)
	if err != nil {
		return nil, err
	}

	notifications, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list notifications", "user_id", req.UserID, "error", err)
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	items := dto.ToNotificationResponseList(notifications, uc.markdownService)
	if items == nil {
		items = []*dto.NotificationResponse{}
	}

	return &dto.ListResponse{
		Items:  items,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

func buildListFilter(req dto.ListNotificationsRequest) (notification.ListFilter, error) {
	filter := notification.ListFilter{
		UserID: req.UserID,
		Read:   req.Read,
		Limit:  req.Limit,
		Offset: req.Offset,
	}

	switch {
	case filter.Limit < 0:
		return filter, errors.NewValidationError("limit must not be negative")
	case filter.Limit == 0:
		filter.Limit = constants.DefaultListLimit
	case filter.Limit > constants.MaxListLimit:
		filter.Limit = constants.MaxListLimit
	}
	if filter.Offset < 0 {
		return filter, errors.NewValidationError("offset must not be negative")
	}

	if req.Type != "" {
		t, err := vo.NewNotificationType(req.Type)
		if err != nil {
			return filter, errors.NewValidationError(err.Error())
		}
		filter.Type = &t
	}
	if req.Priority != "" {
		p, err := vo.NewPriority(req.Priority)
		if err != nil {
			return filter, errors.NewValidationError(err.Error())
		}
		filter.Priority = &p
	}
	if req.Status != "" {
		s, err := vo.NewStatus(req.Status)
		if err != nil {
			return filter, errors.NewValidationError(err.Error())
		}
		filter.Status = &s
	}

	return filter, nil
}
