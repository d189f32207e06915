package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"booth-status-backend/internal/apperr"
	"booth-status-backend/internal/health"
)

// PostPing handles POST /api/health/ping, the single write path booths use.
func (h *Handler) PostPing(c *gin.Context) {
	var ping health.Ping
	if err := c.ShouldBindJSON(&ping); err != nil {
		writeError(c, fmt.Errorf("invalid ping payload: %w", apperr.ErrValidation))
		return
	}

	receipt, err := h.health.ProcessPing(c.Request.Context(), ping)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, receipt)
}
