package handlers

import (
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kessal001/prenotazione-sale/internal/middlewares"
	"github.com/kessal001/prenotazione-sale/internal/realtime"
	"github.com/kessal001/prenotazione-sale/internal/repository"
	"github.com/kessal001/prenotazione-sale/internal/service"
	"github.com/kessal001/prenotazione-sale/pkg/config"
	"github.com/kessal001/prenotazione-sale/web"
)

func NewRouter(cfg config.App, svc *service.BookingSvc, repo *repository.BookingRepo, hub *realtime.Hub, log *zap.Logger) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))
	r.SetHTMLTemplate(template.Must(template.ParseFS(web.Templates, "templates/*.html")))

	tokenTTL := time.Duration(cfg.TokenTTLMin) * time.Minute
	pages := NewPagesHandler(tokenTTL, log)
	r.GET("/", pages.Home)
	r.GET("/sala/:sala", pages.Sala)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	ph := NewPrenotazioniHandler(svc)
	v1 := r.Group("/v1")
	{
		// the socket authenticates via query token inside the handler
		fh := NewFeedHandler(repo, hub, log)
		v1.GET("/sale/:sala/feed", fh.Stream)

		secured := v1.Group("")
		secured.Use(middlewares.JWTAuth())
		{
			secured.GET("/sale", ListSale)
			secured.GET("/sale/:sala/prenotazioni", ph.List)
			secured.POST("/prenotazioni", ph.Create)
			secured.PATCH("/prenotazioni/:id", ph.Update)
			secured.DELETE("/prenotazioni/:id", ph.Delete)
		}
	}
	return r
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("handled",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
