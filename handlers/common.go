package handlers

import (
	"errors"
	"net/http"

	"glowbook/database/gateway"
	"glowbook/services/booking"
	"glowbook/services/subscription"
	"glowbook/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps the service error taxonomy onto HTTP statuses. The
// mobile app shows a retry-capable message for anything non-2xx.
func respondError(c *gin.Context, message string, err error) {
	var (
		notFound   *gateway.NotFoundError
		gwErr      *gateway.GatewayError
		validation *booking.ValidationError
		authReq    *subscription.AuthRequiredError
	)
	switch {
	case errors.As(err, &notFound):
		utils.JSONError(c, http.StatusNotFound, message, err.Error())
	case errors.As(err, &validation):
		utils.JSONError(c, http.StatusUnprocessableEntity, message, err.Error())
	case errors.As(err, &authReq):
		utils.JSONError(c, http.StatusUnauthorized, message, err.Error())
	case errors.As(err, &gwErr):
		utils.JSONError(c, http.StatusBadGateway, message, err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, message, err.Error())
	}
}
