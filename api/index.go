package handler

import (
	"context"
	"net/http"
	"sync"

	"github.com/arnavshah/roster-scheduler-go/pkg/config"
	"github.com/arnavshah/roster-scheduler-go/pkg/handlers"
	"github.com/arnavshah/roster-scheduler-go/pkg/logger"
	"github.com/gin-gonic/gin"
)

var (
	once    sync.Once
	router  http.Handler
	initErr error
)

func setup() {
	// Load .env if it exists (for local testing with vercel dev)
	config.LoadDotEnv(".env", "../.env")

	cfg, err := config.Load()
	if err != nil {
		initErr = err
		return
	}
	if err := logger.Init(cfg.LogLevel); err != nil {
		initErr = err
		return
	}
	gin.SetMode(gin.ReleaseMode)

	h, err := handlers.New(cfg, logger.Named("vercel"))
	if err != nil {
		initErr = err
		return
	}
	router = h.Router()
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(setup)
	if initErr != nil {
		logger.Get().Error(context.Background(), "startup failed", logger.Error(initErr))
		http.Error(w, `{"error":"service unavailable"}`, http.StatusServiceUnavailable)
		return
	}
	router.ServeHTTP(w, r)
}
