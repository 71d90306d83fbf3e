package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/kessal001/prenotazione-sale/internal/domain"
	"github.com/kessal001/prenotazione-sale/internal/service"
)

type PrenotazioniHandler struct {
	svc *service.BookingSvc
}

func NewPrenotazioniHandler(svc *service.BookingSvc) *PrenotazioniHandler {
	return &PrenotazioniHandler{svc: svc}
}

// GET /v1/sale/:sala/prenotazioni
func (h *PrenotazioniHandler) List(c *gin.Context) {
	sala := roomParam(c)
	out, err := h.svc.List(c.Request.Context(), sala)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /v1/prenotazioni
func (h *PrenotazioniHandler) Create(c *gin.Context) {
	var in struct {
		Sala          string `json:"sala" binding:"required"`
		DataOra       string `json:"data_ora" binding:"required"` // RFC3339
		DataOraFine   string `json:"data_ora_fine"`
		Utente        string `json:"utente" binding:"required"`
		Fornitore     string `json:"fornitore" binding:"required"`
		NumeroPersone int    `json:"numero_persone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b, err := h.svc.Create(c.Request.Context(), service.CreateInput{
		Sala:          in.Sala,
		DataOra:       in.DataOra,
		DataOraFine:   in.DataOraFine,
		Utente:        in.Utente,
		Fornitore:     in.Fornitore,
		NumeroPersone: in.NumeroPersone,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// PATCH /v1/prenotazioni/:id: partial update. Absent fields keep
// their value, data_ora_fine:"" clears the end.
func (h *PrenotazioniHandler) Update(c *gin.Context) {
	var in struct {
		Utente        *string `json:"utente"`
		Fornitore     *string `json:"fornitore"`
		NumeroPersone *int    `json:"numero_persone"`
		DataOra       *string `json:"data_ora"`
		DataOraFine   *string `json:"data_ora_fine"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b, err := h.svc.Update(c.Request.Context(), c.Param("id"), service.UpdateInput{
		Utente:        in.Utente,
		Fornitore:     in.Fornitore,
		NumeroPersone: in.NumeroPersone,
		DataOra:       in.DataOra,
		DataOraFine:   in.DataOraFine,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// DELETE /v1/prenotazioni/:id
func (h *PrenotazioniHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// roomParam undoes the URL encoding of the room name path segment.
func roomParam(c *gin.Context) string {
	raw := c.Param("sala")
	if sala, err := url.PathUnescape(raw); err == nil {
		return sala
	}
	return raw
}

func respondError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrNotFound.Error()})
		return
	}
	var berr *domain.BackendError
	if errors.As(err, &berr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": berr.Banner()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
