package handlers

import (
	"net/http"

	"eventify/models"
	"eventify/services/booking"
	"eventify/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler prices selections and accepts bookings.
type BookingHandler struct {
	Bookings *booking.Service
}

func NewBookingHandler(bookings *booking.Service) *BookingHandler {
	return &BookingHandler{Bookings: bookings}
}

type quoteRequest struct {
	ServiceID string         `json:"service" binding:"required"`
	Selection map[string]int `json:"selection"`
}

// Quote handles POST /api/booking/quote.
func (h *BookingHandler) Quote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	quote, err := h.Bookings.Quote(c.Request.Context(), req.ServiceID, req.Selection)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.QuotesComputed.Inc()
	c.JSON(http.StatusOK, quote)
}

// CreateBooking handles POST /api/booking.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.Bookings.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.BookingsCreated.Inc()
	c.JSON(http.StatusCreated, b)
}
