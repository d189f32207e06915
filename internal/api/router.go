package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"booth-status-backend/config"
	"booth-status-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler, cfg *config.ServerConfig) *gin.Engine {
	r := gin.Default()

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// Booth-facing ingestion, guarded by the shared key.
		api.POST("/health/ping", mw.RequireAPIKey(cfg.APIKey), h.PostPing)

		// Operator dashboard.
		api.GET("/booths", caching, h.GetBooths)
		api.POST("/booths", h.CreateBooth)
		api.PUT("/booths/:id", h.UpdateBooth)
		api.PUT("/booths/:id/operating-hours", h.UpdateOperatingHours)

		// Staff push subscriptions.
		api.GET("/subscriptions", h.GetSubscription)
		api.PUT("/subscriptions", h.PutSubscription)
		api.DELETE("/subscriptions", h.DeleteSubscription)
		api.GET("/vapid_public_key", h.GetVAPIDPublicKey)
	}

	return r
}
