package usecases

import (
	"context"
	"fmt"

	"github.com/edofi/fiwe/internal/application/notification/dto"
	"github.com/edofi/fiwe/internal/domain/notification"
	vo "github.com/edofi/fiwe/internal/domain/notification/valueobjects"
	"github.com/edofi/fiwe/internal/shared/logger"
)

const defaultDispatchBatchSize = 100

// DispatchPendingUseCase delivers PENDING notifications to the extra channels
// the owner enabled and records the outcome. The in-app channel needs no
// transport: the stored row is the delivery.
type DispatchPendingUseCase struct {
	notificationRepo notification.NotificationRepository
	preferenceRepo   notification.PreferenceRepository
	recipients       notification.RecipientDirectory
	emailSender      EmailSender
	markdownService  dto.MarkdownService
	batchSize        int
	logger           logger.Interface
}

// NewDispatchPendingUseCase accepts a nil emailSender or recipients; the email
// channel is then skipped.
func NewDispatchPendingUseCase(
	notificationRepo notification.NotificationRepository,
	preferenceRepo notification.PreferenceRepository,
	recipients notification.RecipientDirectory,
	emailSender EmailSender,
	markdownService dto.MarkdownService,
	batchSize int,
	logger logger.Interface,
) *DispatchPendingUseCase {
	if batchSize <= 0 {
		batchSize = defaultDispatchBatchSize
	}
	return &DispatchPendingUseCase{
		notificationRepo: notificationRepo,
		preferenceRepo:   preferenceRepo,
		recipients:       recipients,
		emailSender:      emailSender,
		markdownService:  markdownService,
		batchSize:        batchSize,
		logger:           logger,
	}
}

// Execute implements the scheduler batch job contract.
func (uc *DispatchPendingUseCase) Execute(ctx context.Context) (int, error) {
	result, err := uc.Run(ctx)
	if err != nil {
		return 0, err
	}
	return result.Processed, nil
}

// Run processes one batch of pending notifications, oldest first.
func (uc *DispatchPendingUseCase) Run(ctx context.Context) (*dto.BatchResult, error) {
	pending, err := uc.notificationRepo.ListPending(ctx, uc.batchSize)
	if err != nil {
		uc.logger.Errorw("failed to list pending notifications", "error", err)
		return nil, fmt.Errorf("failed to list pending notifications: %w", err)
	}

	result := &dto.BatchResult{}
	if len(pending) == 0 {
		return result, nil
	}
	uc.logger.Infow("executing dispatch pending notifications use case", "count", len(pending))

	prefs := make(map[uint]*notification.Preference)
	recipients := make(map[uint]*notification.Recipient)

	for _, n := range pending {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Processed++

		pref, ok := prefs[n.UserID()]
		if !ok {
			pref, err = uc.preferenceRepo.GetByUserID(ctx, n.UserID())
			if err != nil {
				// Leave it PENDING for the next run.
				uc.logger.Warnw("failed to load notification preference", "user_id", n.UserID(), "error", err)
				result.Skipped++
				continue
			}
			prefs[n.UserID()] = pref
		}

		attempted, failed := uc.deliver(ctx, n, notification.ChannelsFor(pref, n.Type()), recipients)

		if attempted > 0 && failed == attempted {
			err = n.MarkAsFailed()
		} else {
			err = n.MarkAsSent()
		}
		if err != nil {
			uc.logger.Warnw("failed to record delivery outcome", "id", n.ID(), "error", err)
			result.Skipped++
			continue
		}

		updated, err := uc.notificationRepo.UpdateDeliveryStatus(ctx, n)
		if err != nil {
			uc.logger.Errorw("failed to save delivery status", "id", n.ID(), "error", err)
			result.Skipped++
			continue
		}
		if !updated {
			// Read or dispatched elsewhere in the meantime.
			result.Skipped++
			continue
		}

		if n.Status() == vo.StatusFailed {
			result.Failed++
		} else {
			result.Succeeded++
		}
	}

	uc.logger.Infow("pending notifications dispatched",
		"processed", result.Processed,
		"succeeded", result.Succeeded,
		"failed", result.Failed,
		"skipped", result.Skipped,
	)
	return result, nil
}

// deliver runs every channel and returns how many were attempted and failed.
func (uc *DispatchPendingUseCase) deliver(
	ctx context.Context,
	n *notification.Notification,
	channels []vo.Channel,
	recipients map[uint]*notification.Recipient,
) (attempted, failed int) {
	for _, channel := range channels {
		switch channel {
		case vo.ChannelInApp:
			attempted++
		case vo.ChannelEmail:
			recipient := uc.recipientFor(ctx, n.UserID(), recipients)
			if recipient == nil || recipient.Email == "" || uc.emailSender == nil {
				continue
			}
			attempted++
			if err := uc.emailSender.SendNotificationEmail(ctx, recipient.Email, recipient.FullName, n.Title(), n.Message(), uc.emailBody(n)); err != nil {
				uc.logger.Warnw("failed to send notification email", "id", n.ID(), "user_id", n.UserID(), "error", err)
				failed++
			}
		}
	}
	return attempted, failed
}

func (uc *DispatchPendingUseCase) recipientFor(ctx context.Context, userID uint, cache map[uint]*notification.Recipient) *notification.Recipient {
	if uc.recipients == nil {
		return nil
	}
	if r, ok := cache[userID]; ok {
		return r
	}
	r, err := uc.recipients.GetRecipient(ctx, userID)
	if err != nil {
		uc.logger.Warnw("failed to resolve notification recipient", "user_id", userID, "error", err)
		return nil
	}
	cache[userID] = r
	return r
}

func (uc *DispatchPendingUseCase) emailBody(n *notification.Notification) string {
	if uc.markdownService != nil {
		if html, err := uc.markdownService.ToHTMLSanitized(n.Message()); err == nil {
			return html
		}
	}
	return n.Message()
}
