package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/priyathamsetti1/aditya-foods/pkg/resp"
	"github.com/priyathamsetti1/aditya-foods/repository"
	"github.com/priyathamsetti1/aditya-foods/services"
	"gorm.io/gorm"
)

// handleServiceError maps the service error taxonomy onto HTTP. Every
// failure a service can return lands here exactly once, so screens see a
// typed error instead of a swallowed log line.
func handleServiceError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	var pfErr *services.PaymentFailedError
	var nrErr *services.OrderNotRecordedError
	var syncErr *services.SyncError

	switch {
	case errors.As(err, &vErr):
		resp.BadRequest(c, vErr.Msg)
	case errors.Is(err, services.ErrCartEmpty):
		resp.BadRequest(c, "cart is empty")
	case errors.Is(err, services.ErrInvalidAmount):
		resp.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		resp.Unauthorized(c, "invalid credentials")
	case errors.Is(err, services.ErrForbidden):
		resp.Forbidden(c, "forbidden")
	case errors.Is(err, services.ErrCheckoutInProgress):
		resp.Conflict(c, "checkout already in progress")
	case errors.Is(err, services.ErrNotVerified):
		resp.Conflict(c, "order not verified")
	case errors.Is(err, services.ErrInvalidTransition):
		resp.Conflict(c, "order is not pending")
	case errors.Is(err, services.ErrPaymentCancelled):
		c.JSON(http.StatusPaymentRequired, gin.H{"ok": false, "error": "payment process was cancelled"})
	case errors.Is(err, repository.ErrOrderNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		resp.NotFound(c, "not found")
	case errors.As(err, &nrErr):
		// The one failure that must never hide behind a generic message.
		c.JSON(http.StatusInternalServerError, gin.H{
			"ok":         false,
			"error":      "payment succeeded but the order was not recorded; contact support",
			"payment_id": nrErr.PaymentID,
		})
	case errors.As(err, &pfErr):
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": pfErr.Error()})
	case errors.As(err, &syncErr):
		resp.ServerError(c, syncErr)
	default:
		resp.ServerError(c, err)
	}
}
