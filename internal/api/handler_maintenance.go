package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"equipment-maintenance-backend/internal/model"
	"equipment-maintenance-backend/internal/store"
)

type openMaintenanceRequest struct {
	EquipmentID int64  `json:"equipmentId" binding:"required"`
	Type        string `json:"type" binding:"required,oneof=preventive corrective urgent calibration sanitization inspection"`
	Description string `json:"description" binding:"required,min=5"`
}

// OpenMaintenance handles POST /api/maintenance. The equipment must be
// active; the record insert and the status flip happen in one transaction.
func (h *Handler) OpenMaintenance(c *gin.Context) {
	var req openMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	rec := model.MaintenanceRecord{
		EquipmentID: req.EquipmentID,
		Type:        req.Type,
		Description: req.Description,
	}
	if err := h.store.OpenMaintenance(c.Request.Context(), &rec, time.Now().UTC()); err != nil {
		writeStoreError(c, err)
		return
	}

	h.flushCache()
	c.JSON(http.StatusCreated, rec)
}

// FinishMaintenance handles POST /api/maintenance/:id/finish.
func (h *Handler) FinishMaintenance(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid maintenance ID"})
		return
	}

	rec, err := h.store.FinishMaintenance(c.Request.Context(), id, time.Now().UTC())
	if err != nil {
		writeStoreError(c, err)
		return
	}

	h.flushCache()
	c.JSON(http.StatusOK, rec)
}

// ListMaintenance handles GET /api/maintenance with optional equipment_id
// and status filters.
func (h *Handler) ListMaintenance(c *gin.Context) {
	var filter store.MaintenanceFilter
	if raw := c.Query("equipment_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid equipment_id"})
			return
		}
		filter.EquipmentID = id
	}
	filter.Status = c.Query("status")

	records, err := h.store.ListMaintenance(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if records == nil {
		records = []model.MaintenanceRecord{}
	}
	c.JSON(http.StatusOK, records)
}
