package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kessal001/prenotazione-sale/internal/domain"
)

// GET /v1/sale returns the fixed room catalog.
func ListSale(c *gin.Context) {
	c.JSON(http.StatusOK, domain.Rooms)
}
