package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edofi/fiwe/internal/application/notification/dto"
	"github.com/edofi/fiwe/internal/application/notification/triggers"
	"github.com/edofi/fiwe/internal/domain/shared/events"
	"github.com/edofi/fiwe/internal/shared/biztime"
	"github.com/edofi/fiwe/internal/shared/errors"
	"github.com/edofi/fiwe/internal/shared/logger"
	"github.com/edofi/fiwe/internal/shared/utils"
)

// BusinessEventHandler accepts business events from other services and
// queues them for the notification triggers.
type BusinessEventHandler struct {
	publisher events.EventPublisher
	logger    logger.Interface
}

func NewBusinessEventHandler(publisher events.EventPublisher, logger logger.Interface) *BusinessEventHandler {
	return &BusinessEventHandler{
		publisher: publisher,
		logger:    logger,
	}
}

// PublishEvent godoc
// @Summary Ingest a business event
// @Description Queues a booking, payment, event, social or system event; matching triggers create the notifications asynchronously. Requires event:publish.
// @Security Bearer
// @Tags events
// @Accept json
// @Produce json
// @Param request body dto.BusinessEventRequest true "Business event"
// @Success 202 {object} utils.APIResponse "Event accepted"
// @Failure 400 {object} utils.APIResponse "Unknown event type"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 503 {object} utils.APIResponse "Event queue full"
// @Router /notification-events [post]
func (h *BusinessEventHandler) PublishEvent(c *gin.Context) {
	var req dto.BusinessEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for business event", "error", err)
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	if !triggers.IsKnownEventType(req.Type) {
		utils.ErrorResponseWithError(c, errors.NewValidationError("unknown event type", req.Type))
		return
	}

	event := events.NewPayloadEvent(req.Type, req.AggregateID, req.Payload, biztime.NowUTC())
	if err := h.publisher.Publish(event); err != nil {
		h.logger.Errorw("failed to queue business event", "type", req.Type, "error", err)
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "event queue unavailable, please retry")
		return
	}

	utils.SuccessResponse(c, http.StatusAccepted, "Event accepted", gin.H{"type": req.Type})
}
