package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"equipment-maintenance-backend/internal/model"
	"equipment-maintenance-backend/internal/store"
)

type registerEquipmentRequest struct {
	Name         string `json:"name" binding:"required,min=3"`
	Sector       string `json:"sector" binding:"required"`
	SerialNumber string `json:"serialNumber" binding:"required"`
}

// RegisterEquipment handles POST /api/equipment.
func (h *Handler) RegisterEquipment(c *gin.Context) {
	var req registerEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	eq := model.Equipment{
		Name:         req.Name,
		Sector:       req.Sector,
		SerialNumber: req.SerialNumber,
	}
	if err := h.store.RegisterEquipment(c.Request.Context(), &eq); err != nil {
		writeStoreError(c, err)
		return
	}

	h.flushCache()
	c.JSON(http.StatusCreated, eq)
}

// ListEquipment handles GET /api/equipment with optional sector and status
// equality filters.
func (h *Handler) ListEquipment(c *gin.Context) {
	filter := store.EquipmentFilter{
		Sector: c.Query("sector"),
		Status: c.Query("status"),
	}

	equipment, err := h.store.ListEquipment(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if equipment == nil {
		equipment = []model.Equipment{}
	}
	c.JSON(http.StatusOK, equipment)
}

// GetEquipment handles GET /api/equipment/:id, with the maintenance history
// preloaded.
func (h *Handler) GetEquipment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid equipment ID"})
		return
	}

	eq, err := h.store.GetEquipment(c.Request.Context(), id)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, eq)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive awaiting_parts"`
}

// UpdateEquipmentStatus handles PATCH /api/equipment/:id/status. Only the
// administrative statuses can be assigned; the maintenance lifecycle owns
// in_maintenance.
func (h *Handler) UpdateEquipmentStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid equipment ID"})
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	if err := h.store.SetEquipmentStatus(c.Request.Context(), id, req.Status); err != nil {
		writeStoreError(c, err)
		return
	}

	h.flushCache()
	c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status})
}
