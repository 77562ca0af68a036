package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/buhba/boba-diary-engine/internal/core/domain"
	"github.com/buhba/boba-diary-engine/internal/core/services"
)

type StatsHandler struct {
	svc *services.StatsService
}

func NewStatsHandler(svc *services.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	stats := r.Group("/stats")
	{
		stats.GET("/overview", h.GetOverview)
		stats.GET("/breakdown", h.GetBreakdown)
	}
}

func (h *StatsHandler) GetOverview(c *gin.Context) {
	summary, err := h.svc.Overview(c.Request.Context(), time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve statistics"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *StatsHandler) GetBreakdown(c *gin.Context) {
	window := domain.Window(c.DefaultQuery("period", string(domain.WindowWeek)))
	if !window.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period, expected week, month, year or all-time"})
		return
	}

	breakdown, err := h.svc.Breakdown(c.Request.Context(), window, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve statistics"})
		return
	}

	c.JSON(http.StatusOK, breakdown)
}
