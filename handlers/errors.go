package handlers

import (
	"errors"
	"net/http"

	"eventify/models"
	"eventify/services/booking"
	"eventify/services/listing"
	"eventify/services/publisher"
	"eventify/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors to HTTP statuses.
func respondError(c *gin.Context, err error) {
	var (
		capErr       *listing.CapacityError
		qtyErr       *booking.QuantityError
		transportErr *listing.TransportError
		verrs        listing.ValidationErrors
	)
	switch {
	case errors.As(err, &verrs):
		getLogger(c).Debug("validation failed")
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "errors": verrs})
	case errors.As(err, &capErr):
		utils.ImageCapacityRejections.Inc()
		utils.JSONError(c, http.StatusUnprocessableEntity, capErr.Error(), "")
	case errors.As(err, &qtyErr):
		utils.JSONError(c, http.StatusUnprocessableEntity, qtyErr.Error(), "")
	case errors.Is(err, booking.ErrNothingSelected):
		utils.JSONError(c, http.StatusUnprocessableEntity, err.Error(), "")
	case errors.As(err, &transportErr):
		utils.JSONError(c, http.StatusBadGateway, "listing backend rejected the submission", transportErr.Error())
	case errors.Is(err, listing.ErrDraftNotFound),
		errors.Is(err, models.ErrServiceNotFound),
		errors.Is(err, models.ErrCategoryNotFound):
		utils.JSONError(c, http.StatusNotFound, "not found", err.Error())
	case errors.Is(err, listing.ErrIndexOutOfRange),
		errors.Is(err, models.ErrInvalidDetail),
		errors.Is(err, booking.ErrInvalidDate),
		errors.Is(err, publisher.ErrUnknownImage):
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
	case errors.Is(err, listing.ErrPreviewReleased):
		utils.JSONError(c, http.StatusConflict, "file is no longer available", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
	}
}

// badRequest reports an unparseable request body or parameter.
func badRequest(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
}
