package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"booth-status-backend/internal/schedule"
)

// GetBooths handles GET /api/booths: the whole fleet with derived status.
func (h *Handler) GetBooths(c *gin.Context) {
	views, err := h.booths.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

type createBoothRequest struct {
	BoothID string `json:"boothId" binding:"required"`
	Name    string `json:"name"`
}

// CreateBooth handles POST /api/booths: explicit registration ahead of
// the first ping.
func (h *Handler) CreateBooth(c *gin.Context) {
	var req createBoothRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booth, err := h.booths.Create(c.Request.Context(), req.BoothID, req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booth)
}

type updateBoothRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateBooth handles PUT /api/booths/:id.
func (h *Handler) UpdateBooth(c *gin.Context) {
	var req updateBoothRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booth, err := h.booths.Rename(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, booth)
}

type updateOperatingHoursRequest struct {
	OperatingHours schedule.OperatingHours `json:"operatingHours"`
}

// UpdateOperatingHours handles PUT /api/booths/:id/operating-hours.
func (h *Handler) UpdateOperatingHours(c *gin.Context) {
	var req updateOperatingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booth, err := h.booths.SetOperatingHours(c.Request.Context(), c.Param("id"), req.OperatingHours)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, booth)
}
