package response

import (
	"errors"

	"github.com/gin-gonic/gin"

	"payroll-api/internal/service"
)

// ErrBody is the error envelope the dashboards read: they branch on the HTTP
// status and show the message inline next to the form that triggered it.
type ErrBody struct {
	Message string `json:"message"`
}

func Err(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, ErrBody{Message: msg})
}

// FromError maps service errors to HTTP statuses. Unknown errors become a
// generic 500 so internals never leak to the client.
func FromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		Err(c, 400, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		Err(c, 401, "invalid credentials")
	case errors.Is(err, service.ErrNotFound):
		Err(c, 404, "not found")
	case errors.Is(err, service.ErrEmailTaken):
		Err(c, 409, "email already in use")
	case errors.Is(err, service.ErrAlreadyApproved):
		Err(c, 409, "record already approved")
	default:
		_ = c.Error(err)
		Err(c, 500, "internal server error")
	}
}
