package usecases

import (
	"context"
	"fmt"

	"github.com/edofi/fiwe/internal/application/notification/dto"
	"github.com/edofi/fiwe/internal/domain/notification"
	"github.com/edofi/fiwe/internal/shared/errors"
	"github.com/edofi/fiwe/internal/shared/logger"
)

type GetPreferencesUseCase struct {
	repo   notification.PreferenceRepository
	logger logger.Interface
}

func NewGetPreferencesUseCase(
	repo notification.PreferenceRepository,
	logger logger.Interface,
) *GetPreferencesUseCase {
	return &GetPreferencesUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *GetPreferencesUseCase) Execute(ctx context.Context, actor dto.Actor, userID uint) (*dto.PreferenceResponse, error) {
	uc.logger.Infow("executing get notification preferences use case", "user_id", userID)

	if !actor.CanAccess(userID) {
		uc.logger.Warnw("unauthorized access to notification preferences", "user_id", userID, "actor_id", actor.UserID)
		return nil, errors.NewForbiddenError("you don't have permission to access these preferences")
	}

	pref, err := loadOrCreatePreference(ctx, uc.repo, userID, uc.logger)
	if err != nil {
		return nil, err
	}
	return dto.ToPreferenceResponse(pref), nil
}

// loadOrCreatePreference returns the stored preference, creating the defaults
// on first access. Losing a concurrent creation race re-reads the winner.
func loadOrCreatePreference(
	ctx context.Context,
	repo notification.PreferenceRepository,
	userID uint,
	log logger.Interface,
) (*notification.Preference, error) {
	pref, err := repo.GetByUserID(ctx, userID)
	if err != nil {
		log.Errorw("failed to load notification preference", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to load notification preference: %w", err)
	}
	if pref != nil {
		return pref, nil
	}

	pref, err = notification.NewPreference(userID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := repo.Create(ctx, pref); err != nil {
		if !errors.IsDuplicateError(err) {
			log.Errorw("failed to create notification preference", "user_id", userID, "error", err)
			return nil, fmt.Errorf("failed to create notification preference: %w", err)
		}
		existing, getErr := repo.GetByUserID(ctx, userID)
		if getErr != nil || existing == nil {
			return nil, fmt.Errorf("failed to load notification preference after conflict: %w", err)
		}
		return existing, nil
	}

	log.Infow("default notification preference created", "user_id", userID)
	return pref, nil
}
