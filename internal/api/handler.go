package api

import (
	"errors"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"equipment-maintenance-backend/config"
	"equipment-maintenance-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store   store.Store
	cfg     *config.Config
	webpush *webpush.Options
	cache   *cache.Cache
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, cfg *config.Config, webpushOptions *webpush.Options, cacheStore *cache.Cache) *Handler {
	return &Handler{
		store:   s,
		cfg:     cfg,
		webpush: webpushOptions,
		cache:   cacheStore,
	}
}

// flushCache drops all cached GET responses after a successful write.
func (h *Handler) flushCache() {
	if h.cache != nil {
		h.cache.Flush()
	}
}

// writeStoreError maps store sentinel errors to HTTP status codes.
func writeStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrDuplicateSerial),
		errors.Is(err, store.ErrEquipmentNotActive),
		errors.Is(err, store.ErrMaintenanceNotOpen),
		errors.Is(err, store.ErrOpenMaintenance):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrStatusNotAssignable):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
