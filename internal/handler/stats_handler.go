package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/cellmap-backend-go/internal/service"
	"github.com/jengzang/cellmap-backend-go/pkg/response"
)

// StatsHandler handles HTTP requests for accuracy and load statistics
type StatsHandler struct {
	accuracyStats *service.AccuracyStatsService
	loader        *service.Loader
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(accuracyStats *service.AccuracyStatsService, loader *service.Loader) *StatsHandler {
	return &StatsHandler{
		accuracyStats: accuracyStats,
		loader:        loader,
	}
}

// GetAccuracy handles GET /api/v1/stats/accuracy
func (h *StatsHandler) GetAccuracy(c *gin.Context) {
	includeCDF, _ := strconv.ParseBool(c.DefaultQuery("cdf", "false"))
	response.Success(c, h.accuracyStats.Summary(includeCDF))
}

// GetFiles handles GET /api/v1/stats/files
func (h *StatsHandler) GetFiles(c *gin.Context) {
	files := h.loader.History()
	response.Success(c, gin.H{
		"data":  files,
		"count": len(files),
	})
}
