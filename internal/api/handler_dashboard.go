package api

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"equipment-maintenance-backend/internal/alert"
	"equipment-maintenance-backend/internal/report"
)

// GetDashboard handles GET /api/dashboard. The aggregation is recomputed
// from a fresh snapshot on every (cache-miss) load.
func (h *Handler) GetDashboard(c *gin.Context) {
	snap, err := h.store.Snapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report.Build(snap, c.Query("sector")))
}

// GetAlerts handles GET /api/alerts. Rules are evaluated against a fresh
// snapshot on every request; nothing is cached or persisted.
func (h *Handler) GetAlerts(c *gin.Context) {
	snap, err := h.store.Snapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	alerts := alert.Evaluate(time.Now().UTC(), snap, h.cfg.Alerts)
	if alerts == nil {
		alerts = []alert.Alert{}
	}

	c.JSON(http.StatusOK, gin.H{
		"generatedAt": snap.TakenAt,
		"alerts":      alerts,
	})
}

// GetSectors handles GET /api/sectors: the configured suggestion list merged
// with the sectors actually present in the equipment table.
func (h *Handler) GetSectors(c *gin.Context) {
	known, err := h.store.Sectors(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	seen := make(map[string]bool)
	sectors := make([]string, 0, len(known)+len(h.cfg.Sectors))
	for _, s := range append(append([]string{}, h.cfg.Sectors...), known...) {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		sectors = append(sectors, s)
	}
	sort.Strings(sectors)

	c.JSON(http.StatusOK, gin.H{"sectors": sectors})
}
