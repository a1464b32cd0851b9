package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edofi/fiwe/internal/shared/constants"
	"github.com/edofi/fiwe/internal/shared/errors"
)

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorInfo describes a failed request.
type ErrorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

var statusErrorTypes = map[int]errors.ErrorType{
	http.StatusBadRequest:          errors.ErrorTypeBadRequest,
	http.StatusUnauthorized:        errors.ErrorTypeUnauthorized,
	http.StatusForbidden:           errors.ErrorTypeForbidden,
	http.StatusNotFound:            errors.ErrorTypeNotFound,
	http.StatusConflict:            errors.ErrorTypeConflict,
	http.StatusTooManyRequests:     errors.ErrorTypeTooManyRequests,
	http.StatusInternalServerError: errors.ErrorTypeInternal,
}

func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, APIResponse{Success: true, Data: data, Message: message})
}

// CreatedResponse answers 201 with an optional message.
func CreatedResponse(c *gin.Context, data interface{}, message ...string) {
	msg := "Resource created successfully"
	if len(message) > 0 {
		msg = message[0]
	}
	SuccessResponse(c, http.StatusCreated, msg, data)
}

// ErrorResponse answers with a plain message. The error type follows the
// status code, "error" when the code has no dedicated type.
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	errType := "error"
	if t, ok := statusErrorTypes[statusCode]; ok {
		errType = string(t)
	}
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error:   &ErrorInfo{Type: errType, Message: message},
	})
}

// ErrorResponseWithError answers with the status and text of an AppError.
// Anything else becomes a generic 500 so internals never reach the client.
func ErrorResponseWithError(c *gin.Context, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		ErrorResponse(c, http.StatusInternalServerError, constants.ErrMsgInternalServerError)
		return
	}

	c.JSON(appErr.Code, APIResponse{
		Success: false,
		Error: &ErrorInfo{
			Type:    string(appErr.Type),
			Message: appErr.Message,
			Details: appErr.Details,
		},
	})
}

func NoContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
