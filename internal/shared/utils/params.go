package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edofi/fiwe/internal/shared/errors"
)

// ParseUintParam parses a positive numeric ID from a URL path parameter.
// entityName is used in error messages (e.g., "notification", "user").
func ParseUintParam(c *gin.Context, paramName, entityName string) (uint, error) {
	raw := c.Param(paramName)
	if raw == "" {
		return 0, errors.NewValidationError(entityName + " ID is required")
	}

	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, errors.NewValidationError("invalid " + entityName + " ID")
	}

	return uint(value), nil
}

// ParseOptionalBoolQuery parses an optional boolean query parameter.
// A missing parameter yields nil.
func ParseOptionalBoolQuery(c *gin.Context, name string) (*bool, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, errors.NewValidationError(name + " must be true or false")
	}
	return &value, nil
}

// ParseIntQuery parses an optional integer query parameter, returning def
// when the parameter is absent.
func ParseIntQuery(c *gin.Context, name string, def int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewValidationError(name + " must be an integer")
	}
	return value, nil
}
