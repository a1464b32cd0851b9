package usecases

import (
	"context"
	"fmt"

	"github.com/edofi/fiwe/internal/application/notification/dto"
	"github.com/edofi/fiwe/internal/domain/notification"
	"github.com/edofi/fiwe/internal/shared/errors"
	"github.com/edofi/fiwe/internal/shared/logger"
)

type UpdatePreferencesUseCase struct {
	repo   notification.PreferenceRepository
	logger logger.Interface
}

func NewUpdatePreferencesUseCase(
	repo notification.PreferenceRepository,
	logger logger.Interface,
) *UpdatePreferencesUseCase {
	return &UpdatePreferencesUseCase{
		repo:   repo,
		logger: logger,
	}
}

// Execute merges the partial update into the stored preference and returns
// the full record.
func (uc *UpdatePreferencesUseCase) Execute(ctx context.Context, actor dto.Actor, userID uint, req dto.UpdatePreferencesRequest) (*dto.PreferenceResponse, error) {
	uc.logger.Infow("executing update notification preferences use case", "user_id", userID)

	if !actor.CanAccess(userID) {
		uc.logger.Warnw("unauthorized access to notification preferences", "user_id", userID, "actor_id", actor.UserID)
		return nil, errors.NewForbiddenError("you don't have permission to access these preferences")
	}

	pref, err := loadOrCreatePreference(ctx, uc.repo, userID, uc.logger)
	if err != nil {
		return nil, err
	}

	changes := req.ToDomain()
	if !pref.Apply(changes) {
		return dto.ToPreferenceResponse(pref), nil
	}

	if err := uc.repo.Update(ctx, pref, changes); err != nil {
		uc.logger.Errorw("failed to update notification preference", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to update notification preference: %w", err)
	}

	// reread so switches changed by concurrent requests are reported too
	if stored, err := uc.repo.GetByUserID(ctx, userID); err != nil {
		uc.logger.Warnw("failed to reload notification preference", "user_id", userID, "error", err)
	} else if stored != nil {
		pref = stored
	}

	uc.logger.Infow("notification preference updated", "user_id", userID)
	return dto.ToPreferenceResponse(pref), nil
}
