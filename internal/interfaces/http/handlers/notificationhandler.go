package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edofi/fiwe/internal/application/notification/dto"
	"github.com/edofi/fiwe/internal/shared/constants"
	"github.com/edofi/fiwe/internal/shared/logger"
	"github.com/edofi/fiwe/internal/shared/utils"
)

type NotificationHandler struct {
	service notificationService
	actors  actorResolver
	logger  logger.Interface
}

func NewNotificationHandler(service notificationService, permissions PermissionChecker, logger logger.Interface) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		actors:  actorResolver{permissions: permissions, logger: logger},
		logger:  logger,
	}
}

// ListCategories godoc
// @Summary List notification categories
// @Description Static category catalog used to group notifications and preference switches
// @Security Bearer
// @Tags notifications
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]dto.CategoryResponse}
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Router /notifications/categories [get]
func (h *NotificationHandler) ListCategories(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "", h.service.ListCategories())
}

// ListNotifications godoc
// @Summary List a user's notifications
// @Description Newest first. Filters are optional and combinable.
// @Security Bearer
// @Tags notifications
// @Produce json
// @Param id path int true "User ID"
// @Param type query string false "Notification type"
// @Param priority query string false "Priority" Enums(LOW, MEDIUM, HIGH, URGENT)
// @Param status query string false "Status" Enums(PENDING, SENT, READ, FAILED)
// @Param read query bool false "Read state"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} utils.APIResponse{data=dto.ListResponse}
// @Failure 400 {object} utils.APIResponse "Invalid filter"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /notifications/user/{id} [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	actor, userID, ok := h.actorAndUser(c)
	if !ok {
		return
	}

	var req dto.ListNotificationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Warnw("invalid query for list notifications", "user_id", userID, "error", err)
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	read, err := utils.ParseOptionalBoolQuery(c, "read")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	limit, err := utils.ParseIntQuery(c, "limit", constants.DefaultListLimit)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	offset, err := utils.ParseIntQuery(c, "offset", 0)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	req.UserID = userID
	req.Read = read
	req.Limit = limit
	req.Offset = offset

	result, err := h.service.ListNotifications(c.Request.Context(), actor, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetUnreadCount godoc
// @Summary Get unread notification count
// @Security Bearer
// @Tags notifications
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} utils.APIResponse{data=dto.UnreadCountResponse}
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Router /notifications/user/{id}/unread-count [get]
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	actor, userID, ok := h.actorAndUser(c)
	if !ok {
		return
	}

	result, err := h.service.GetUnreadCount(c.Request.Context(), actor, userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// MarkAllAsRead godoc
// @Summary Mark every unread notification of a user as read
// @Security Bearer
// @Tags notifications
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} utils.APIResponse{data=dto.MarkAllAsReadResponse}
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Router /notifications/user/{id}/mark-all-read [put]
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	actor, userID, ok := h.actorAndUser(c)
	if !ok {
		return
	}

	result, err := h.service.MarkAllAsRead(c.Request.Context(), actor, userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "All notifications marked as read", result)
}

// GetPreferences godoc
// @Summary Get notification preferences
// @Description Creates the default preferences on first access
// @Security Bearer
// @Tags preferences
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} utils.APIResponse{data=dto.PreferenceResponse}
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Router /notifications/user/{id}/preferences [get]
func (h *NotificationHandler) GetPreferences(c *gin.Context) {
	actor, userID, ok := h.actorAndUser(c)
	if !ok {
		return
	}

	result, err := h.service.GetPreferences(c.Request.Context(), actor, userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdatePreferences godoc
// @Summary Update notification preferences
// @Description Partial update; omitted switches keep their value
// @Security Bearer
// @Tags preferences
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body dto.UpdatePreferencesRequest true "Switches to change"
// @Success 200 {object} utils.APIResponse{data=dto.PreferenceResponse}
// @Failure 400 {object} utils.APIResponse "Bad request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Router /notifications/user/{id}/preferences [put]
func (h *NotificationHandler) UpdatePreferences(c *gin.Context) {
	actor, userID, ok := h.actorAndUser(c)
	if !ok {
		return
	}

	var req dto.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update preferences", "user_id", userID, "error", err)
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	result, err := h.service.UpdatePreferences(c.Request.Context(), actor, userID, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Preferences updated successfully", result)
}

// CreateNotification godoc
// @Summary Create a notification
// @Description Stores a notification with status PENDING. Requires notification:create.
// @Security Bearer
// @Tags notifications
// @Accept json
// @Produce json
// @Param request body dto.CreateNotificationRequest true "Notification"
// @Success 201 {object} utils.APIResponse{data=dto.NotificationResponse}
// @Failure 400 {object} utils.APIResponse "Bad request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Router /notifications [post]
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	var req dto.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create notification", "error", err)
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	result, err := h.service.CreateNotification(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Notification created successfully")
}

// CreateFromTemplate godoc
// @Summary Create a notification from its type template
// @Description Honours the recipient's preferences. Returns 200 with null data when the preferences suppress it. Requires notification:create.
// @Security Bearer
// @Tags notifications
// @Accept json
// @Produce json
// @Param request body dto.CreateFromTemplateRequest true "Template input"
// @Success 201 {object} utils.APIResponse{data=dto.NotificationResponse}
// @Success 200 {object} utils.APIResponse "Skipped by preferences"
// @Failure 400 {object} utils.APIResponse "Bad request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Router /notifications/from-template [post]
func (h *NotificationHandler) CreateFromTemplate(c *gin.Context) {
	var req dto.CreateFromTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create from template", "error", err)
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	result, err := h.service.CreateFromTemplate(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if result == nil {
		utils.SuccessResponse(c, http.StatusOK, "Notification skipped by preferences", nil)
		return
	}

	utils.CreatedResponse(c, result, "Notification created successfully")
}

// MarkAsRead godoc
// @Summary Mark a notification as read
// @Description Idempotent; the first read time is kept
// @Security Bearer
// @Tags notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} utils.APIResponse{data=dto.NotificationResponse}
// @Failure 400 {object} utils.APIResponse "Invalid notification ID"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Notification not found"
// @Router /notifications/{id}/read [put]
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	actor, err := h.actors.resolve(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	id, err := utils.ParseUintParam(c, "id", "notification")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.MarkNotificationAsRead(c.Request.Context(), actor, id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Notification marked as read", result)
}

// DeleteNotification godoc
// @Summary Delete a notification
// @Security Bearer
// @Tags notifications
// @Param id path int true "Notification ID"
// @Success 204 "Notification deleted"
// @Failure 400 {object} utils.APIResponse "Invalid notification ID"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Notification not found"
// @Router /notifications/{id} [delete]
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	actor, err := h.actors.resolve(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	id, err := utils.ParseUintParam(c, "id", "notification")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.service.DeleteNotification(c.Request.Context(), actor, id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// actorAndUser resolves the caller and the :id user path parameter, writing
// the error response itself when either is invalid.
func (h *NotificationHandler) actorAndUser(c *gin.Context) (dto.Actor, uint, bool) {
	actor, err := h.actors.resolve(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return dto.Actor{}, 0, false
	}

	userID, err := utils.ParseUintParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return dto.Actor{}, 0, false
	}
	return actor, userID, true
}
