package handlers

import (
	"net/http"

	"github.com/Rutujpatil0403/InterviewX-sub000/internal/apperrors"
	"github.com/Rutujpatil0403/InterviewX-sub000/internal/authz"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

func actorFrom(c *gin.Context) authz.Actor {
	return authz.Actor{
		ID:   c.GetUint("user_id"),
		Role: c.GetString("role"),
	}
}

// respondError maps the error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is a 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		status = http.StatusBadRequest
	case apperrors.KindNotFound:
		status = http.StatusNotFound
	case apperrors.KindForbidden:
		status = http.StatusForbidden
	case apperrors.KindInvalidState, apperrors.KindConflict, apperrors.KindAlreadyFinalized:
		status = http.StatusConflict
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}
