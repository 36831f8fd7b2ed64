package utils

import (
	"github.com/gin-gonic/gin"

	"github.com/XavierPelle/sprintly/internal/shared/constants"
	"github.com/XavierPelle/sprintly/internal/shared/errors"
)

// BindJSON decodes the request body into dst and runs the validate tags,
// reporting every failing field at once.
func BindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return errors.NewValidationError("invalid request body", err.Error())
	}
	return ValidateStruct(dst)
}

// CurrentUserID returns the authenticated caller set by the auth middleware.
func CurrentUserID(c *gin.Context) (uint, error) {
	v, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, errors.NewUnauthorizedError("authentication required")
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		return 0, errors.NewUnauthorizedError("authentication required")
	}
	return id, nil
}
