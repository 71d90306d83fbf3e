package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kessal001/prenotazione-sale/internal/domain"
	"github.com/kessal001/prenotazione-sale/pkg/auth"
)

// PagesHandler serves the two HTML views: the room picker and the
// per-room calendar. Each calendar page carries a freshly minted
// client token for the JSON API and the feed socket.
type PagesHandler struct {
	tokenTTL time.Duration
	log      *zap.Logger
}

func NewPagesHandler(tokenTTL time.Duration, log *zap.Logger) *PagesHandler {
	return &PagesHandler{tokenTTL: tokenTTL, log: log}
}

// GET /
func (h *PagesHandler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", gin.H{
		"Sale": domain.Rooms,
	})
}

// GET /sala/:sala
func (h *PagesHandler) Sala(c *gin.Context) {
	sala := roomParam(c)
	token, err := auth.CreateClientToken("anon", h.tokenTTL)
	if err != nil {
		h.log.Error("mint client token", zap.Error(err))
		c.String(http.StatusInternalServerError, "errore interno")
		return
	}
	room, _ := domain.RoomByName(sala)
	c.HTML(http.StatusOK, "sala.html", gin.H{
		"Sala":  sala,
		"Color": room.Color,
		"Token": token,
	})
}
