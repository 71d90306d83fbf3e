package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/kessal001/prenotazione-sale/internal/calendar"
	"github.com/kessal001/prenotazione-sale/internal/realtime"
	"github.com/kessal001/prenotazione-sale/pkg/auth"
)

// subscriptionBuffer bounds how far a socket may lag behind the feed
// before events are dropped for it.
const subscriptionBuffer = 16

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// pages and API are same-origin; the token is the real gate
	CheckOrigin: func(r *http.Request) bool { return true },
}

// FeedHandler upgrades a calendar page to a WebSocket and streams it
// the room's snapshot plus live change deltas.
type FeedHandler struct {
	lister calendar.Lister
	hub    *realtime.Hub
	log    *zap.Logger
}

func NewFeedHandler(lister calendar.Lister, hub *realtime.Hub, log *zap.Logger) *FeedHandler {
	return &FeedHandler{lister: lister, hub: hub, log: log}
}

// GET /v1/sale/:sala/feed?token=...
// Browsers cannot set headers on WebSocket dials, so the token rides
// the query string here.
func (h *FeedHandler) Stream(c *gin.Context) {
	if _, err := auth.ParseValidate(c.Query("token")); err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	sala := roomParam(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// read side only signals the close; clients never send frames
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	sub := h.hub.Subscribe(subscriptionBuffer)
	sess := calendar.NewSession(sala, h.lister, sub.C, sub.Cancel, h.log)
	if err := sess.Run(ctx, func(f calendar.Frame) error {
		return conn.WriteJSON(f)
	}); err != nil {
		h.log.Debug("calendar session ended", zap.String("sala", sala), zap.Error(err))
	}
}
