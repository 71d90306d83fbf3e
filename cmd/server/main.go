package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kessal001/prenotazione-sale/internal/handlers"
	"github.com/kessal001/prenotazione-sale/internal/realtime"
	"github.com/kessal001/prenotazione-sale/internal/repository"
	"github.com/kessal001/prenotazione-sale/internal/service"
	"github.com/kessal001/prenotazione-sale/pkg/config"
	"github.com/kessal001/prenotazione-sale/pkg/db"
	"github.com/kessal001/prenotazione-sale/pkg/mq"
	"github.com/kessal001/prenotazione-sale/pkg/obs"
)

func must[T any](v T, err error) T {
	if err != nil {
		log.Fatal(err)
	}
	return v
}

func main() {
	cfg := must(config.Load())
	logger := obs.NewLogger(cfg.Env)
	defer logger.Sync()

	shutdownTracer, err := obs.InitTracer("prenotazione-sale")
	if err != nil {
		logger.Fatal("init tracer", zap.Error(err))
	}

	// DB
	gdb := db.Open(cfg.PGDSN)
	repo := repository.NewBookingRepo(gdb)
	must(0, repo.Migrate())

	// change feed: publish on mutation, consume into the local hub
	pub := must(mq.NewPublisher(cfg.RabbitURL, cfg.FeedExchange))
	defer pub.Close()

	queue := cfg.FeedQueue
	if queue == "" {
		// per-instance queue so every instance sees every change
		queue = fmt.Sprintf("prenotazioni.feed.%s", uuid.NewString()[:8])
	}
	cons := must(mq.NewConsumer(cfg.RabbitURL, cfg.FeedExchange, queue, []string{"prenotazioni.*"}))
	defer cons.Close()

	hub := realtime.NewHub(logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	feed := realtime.NewFeed(cons, hub, logger)
	must(0, feed.Run(ctx))
	logger.Info("change feed consumer started", zap.String("queue", queue))

	svc := service.NewBookingSvc(repo, pub, logger)
	router := handlers.NewRouter(cfg, svc, repo, hub, logger)
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		logger.Info("http listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server", zap.Error(err))
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	cancel()
	hub.Close()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
	_ = shutdownTracer(shutdownCtx)
	logger.Info("stopped")
}
