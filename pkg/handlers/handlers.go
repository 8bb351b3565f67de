package handlers

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/arnavshah/roster-scheduler-go/pkg/auth"
	"github.com/arnavshah/roster-scheduler-go/pkg/config"
	"github.com/arnavshah/roster-scheduler-go/pkg/database"
	"github.com/arnavshah/roster-scheduler-go/pkg/logger"
	"github.com/arnavshah/roster-scheduler-go/pkg/metrics"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:embed static/*
var staticEmbed embed.FS

// Version is reported by the root endpoint.
const Version = "3.0.0"

// Handler contains dependencies for the route handlers
type Handler struct {
	DB      *gorm.DB
	Auth    *auth.Service
	Metrics *metrics.Manager
	Config  *config.Config
	Log     logger.Logger
}

// Router wires every route onto a new gin engine.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), h.Metrics.GinMiddleware())

	r.StaticFS("/static", h.GetStaticFS())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Shift Roster Scheduler API",
			"version": Version,
		})
	})
	r.GET("/metrics", gin.WrapH(h.Metrics.Handler()))

	r.GET("/admin", h.AdminInterface)
	r.POST("/admin/login", h.Login)

	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware())
	{
		admin.POST("/keys", h.GenerateKey)
		admin.GET("/keys", h.ListKeys)
		admin.PUT("/keys/:id", h.UpdateKeyLimit)
		admin.DELETE("/keys/:id", h.RevokeKey)
		admin.GET("/usage/:id", h.GetUsage)
	}

	api := r.Group("/api")
	api.Use(h.APIKeyMiddleware())
	{
		api.POST("/schedule", h.ScheduleJSON)
		api.POST("/schedule/csv", h.ScheduleCSV)
		api.POST("/validate", h.ValidateInput)
		api.GET("/usage", h.GetMyUsage)
	}

	return r
}

func bearer(c *gin.Context) string {
	return strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
}

// AuthMiddleware verifies the JWT token for admin routes
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearer(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		claims, err := h.Auth.VerifyToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("username", claims.Username)
		c.Next()
	}
}

// APIKeyMiddleware verifies the HMAC API key for scheduler routes and
// enforces the key's daily request limit. Every request that passes the
// limit counts towards it, whatever the route.
func (h *Handler) APIKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := bearer(c)
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API Key required"})
			return
		}

		userID, err := h.Auth.VerifyHMACKey(key)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API Key signature"})
			return
		}

		// Fetch or create API key record to track usage
		var apiKey database.APIKey
		err = h.DB.Where(database.APIKey{Key: key}).FirstOrCreate(&apiKey, database.APIKey{
			Key:        key,
			KeyPreview: auth.KeyPreview(key),
			Name:       userID,
			RateLimit:  h.Config.DefaultRateLimit,
		}).Error
		if err != nil {
			h.Log.Error(c, "api key lookup failed", logger.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not load API key"})
			return
		}

		now := time.Now()
		var today database.APIUsage
		err = h.DB.Where("key_id = ? AND date = ?", apiKey.ID, now.Format("2006-01-02")).First(&today).Error
		if err == nil && apiKey.RateLimit > 0 && today.RequestCount >= apiKey.RateLimit {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Daily rate limit reached"})
			return
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			h.Log.Warn(c, "usage lookup failed", logger.Error(err))
		}

		if err := database.RecordUsage(h.DB, apiKey.ID, now, database.UsageDelta{Requests: 1}); err != nil {
			h.Log.Warn(c, "could not count request", logger.Error(err))
		}
		h.DB.Model(&apiKey).Update("last_used", now)

		c.Set("apiKey", &apiKey)
		c.Set("userID", userID)
		c.Next()
	}
}

// AdminInterface serves the admin web interface from embedded files
func (h *Handler) AdminInterface(c *gin.Context) {
	data, err := staticEmbed.ReadFile("static/index.html")
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "static/index.html not found in embedded FS"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", data)
}

// GetStaticFS returns the embedded filesystem for static assets
func (h *Handler) GetStaticFS() http.FileSystem {
	sub, err := fs.Sub(staticEmbed, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// New opens the database and builds a Handler from cfg, creating the
// admin user on first start.
func New(cfg *config.Config, log logger.Logger) (*Handler, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}

	h := &Handler{
		DB:      db,
		Auth:    auth.NewService(cfg.JWTSecret, cfg.MasterSecret, bcrypt.DefaultCost),
		Metrics: metrics.NewManager(),
		Config:  cfg,
		Log:     log,
	}

	created, err := h.Auth.EnsureAdminExists(db, cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		return nil, err
	}
	if created {
		log.Info(context.Background(), "default admin user created", logger.String("username", cfg.AdminUsername))
	}
	return h, nil
}
