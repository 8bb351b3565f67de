package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arnavshah/roster-scheduler-go/pkg/config"
	"github.com/arnavshah/roster-scheduler-go/pkg/handlers"
	"github.com/arnavshah/roster-scheduler-go/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadDotEnv(config.DefaultEnvPaths...)

	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		logger.Get().Error(ctx, "could not load config", logger.Error(err))
		os.Exit(1)
	}
	if err := logger.Init(cfg.LogLevel); err != nil {
		logger.Get().Error(ctx, "bad log level", logger.Error(err))
		os.Exit(1)
	}
	log := logger.Named("server")

	if cfg.GinMode == "" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(cfg.GinMode)
	}

	h, err := handlers.New(cfg, log)
	if err != nil {
		log.Error(ctx, "could not initialise handlers", logger.Error(err))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info(ctx, "server starting", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "could not run server", logger.Error(err))
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "graceful shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
}
