package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	a "github.com/kessal001/prenotazione-sale/pkg/auth"
)

// JWTAuth guards the JSON API with the client token the pages carry.
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		tok := strings.TrimPrefix(h, "Bearer ")
		claims, err := a.ParseValidate(tok)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Set("sub", claims.Sub)
		c.Set("role", claims.Role)
		c.Next()
	}
}
