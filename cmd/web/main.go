package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/minaorangina/concentration/config"
	"github.com/minaorangina/concentration/engine"
	"github.com/minaorangina/concentration/server"
	"github.com/minaorangina/concentration/store"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := cfg.Logger()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	s := server.NewServer(store.NewInMemoryGameStore(), server.ServerOpts{
		Config: cfg.Game(),
		Seed:   cfg.Seed,
		Logger: logger,
		NewClock: func() engine.Clock {
			return engine.NewFrameClock(cfg.FrameInterval)
		},
	})
	s.Addr = cfg.Addr()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", zap.String("addr", s.Addr))
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server stopped", zap.Error(err))
	}

	s.Close()
	logger.Info("shut down")
}
