package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"equipment-maintenance-backend/config"
	"equipment-maintenance-backend/internal/mw"
	"equipment-maintenance-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, cfg *config.Config, webpushOptions *webpush.Options) *gin.Engine {
	r := gin.Default()

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	handler := NewHandler(s, cfg, webpushOptions, cacheStore)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.POST("/auth/login", handler.Login)

		api.GET("/equipment", caching, handler.ListEquipment)
		api.GET("/equipment/:id", handler.GetEquipment)
		api.GET("/maintenance", caching, handler.ListMaintenance)
		api.GET("/dashboard", caching, handler.GetDashboard)
		// Alerts are re-derived on every load, never cached.
		api.GET("/alerts", handler.GetAlerts)
		api.GET("/sectors", caching, handler.GetSectors)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)

		authed := api.Group("")
		authed.Use(mw.RequireAuth(cfg.Auth.JWTSecret))
		{
			authed.POST("/equipment", handler.RegisterEquipment)
			authed.PATCH("/equipment/:id/status", handler.UpdateEquipmentStatus)
			authed.POST("/maintenance", handler.OpenMaintenance)
			authed.POST("/maintenance/:id/finish", handler.FinishMaintenance)
		}
	}

	return r
}
