package handlers

import (
	"errors"
	"net/http"
	"time"

	"eventify/models"
	"eventify/services/booking"
	"eventify/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	liveWriteWait  = 10 * time.Second
	livePongWait   = 60 * time.Second
	livePingPeriod = (livePongWait * 9) / 10
	liveMaxMessage = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// liveSelection is sent by the client whenever the customer changes a quantity.
type liveSelection struct {
	Selection map[string]int `json:"selection"`
}

// liveQuote is pushed back after each selection.
type liveQuote struct {
	Selection map[string]int `json:"selection"`
	Quote     models.Quote   `json:"quote"`
	Error     string         `json:"error,omitempty"`
}

// LiveQuote handles GET /api/booking/live/:serviceId. The first message carries the
// default selection; every selection the client sends is answered with a fresh quote.
func (h *BookingHandler) LiveQuote(c *gin.Context) {
	logger := getLogger(c).With(zap.String("serviceID", c.Param("serviceId")))
	ctx := c.Request.Context()

	variants, err := h.Bookings.Variants(ctx, c.Param("serviceId"))
	if err != nil {
		respondError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	conn.SetReadLimit(liveMaxMessage)
	conn.SetReadDeadline(time.Now().Add(livePongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(livePongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go keepAlive(conn, done)

	send := func(selection map[string]int) error {
		msg := liveQuote{Selection: selection}
		quote, err := h.Bookings.Calculator.Quote(variants, selection)
		var qtyErr *booking.QuantityError
		switch {
		case errors.As(err, &qtyErr):
			msg.Error = qtyErr.Error()
		case err != nil:
			return err
		default:
			msg.Quote = quote
			utils.QuotesComputed.Inc()
		}
		conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
		return conn.WriteJSON(msg)
	}

	if err := send(booking.DefaultSelection(variants)); err != nil {
		logger.Warn("failed to send initial quote", zap.Error(err))
		return
	}
	for {
		var in liveSelection
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("live quote connection closed", zap.Error(err))
			}
			return
		}
		if err := send(booking.NormalizeSelection(variants, in.Selection)); err != nil {
			logger.Warn("failed to send quote", zap.Error(err))
			return
		}
	}
}

// keepAlive pings the client until done is closed. gorilla/websocket allows one
// concurrent writer besides control frames sent with WriteControl.
func keepAlive(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(livePingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(liveWriteWait)); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
