package controllers

import (
	"errors"

	"github.com/Deji-py/eco-rider/pkg/resp"
	"github.com/Deji-py/eco-rider/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// writeServiceError maps the service sentinels onto HTTP codes. Anything
// unrecognized is a 500.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCode):
		resp.UnprocessableEntity(c, "invalid verification code")
	case errors.Is(err, services.ErrConflict):
		resp.Conflict(c, "assignment not in expected status")
	case errors.Is(err, services.ErrForbidden):
		resp.Forbidden(c, "forbidden")
	case errors.Is(err, services.ErrHasActiveWork):
		resp.Conflict(c, "cannot go offline with active work")
	case errors.Is(err, services.ErrProfileExists):
		resp.Conflict(c, "profile already submitted")
	case errors.Is(err, services.ErrUnknownVehicle):
		resp.BadRequest(c, "unknown vehicle type")
	case errors.Is(err, gorm.ErrRecordNotFound):
		resp.NotFound(c, "not found")
	default:
		resp.ServerError(c, err)
	}
}
