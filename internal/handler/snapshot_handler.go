package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/cellmap-backend-go/internal/repository"
	"github.com/jengzang/cellmap-backend-go/internal/store"
	"github.com/jengzang/cellmap-backend-go/pkg/logger"
	"github.com/jengzang/cellmap-backend-go/pkg/response"
)

// SnapshotHandler handles snapshot save and restore requests
type SnapshotHandler struct {
	repo     *repository.SnapshotRepository
	sites    *store.Sites
	sessions *store.Sessions
}

// NewSnapshotHandler creates a new snapshot handler
func NewSnapshotHandler(repo *repository.SnapshotRepository, sites *store.Sites, sessions *store.Sessions) *SnapshotHandler {
	return &SnapshotHandler{
		repo:     repo,
		sites:    sites,
		sessions: sessions,
	}
}

// Save handles POST /api/v1/admin/snapshot
func (h *SnapshotHandler) Save(c *gin.Context) {
	if err := h.repo.Save(h.sites, h.sessions); err != nil {
		logger.Error("snapshot save failed", "error", err)
		response.InternalError(c, "Failed to save snapshot")
		return
	}

	response.Success(c, gin.H{
		"sites":    h.sites.Len(),
		"sessions": h.sessions.Len(),
	})
}

// Restore handles POST /api/v1/admin/restore
func (h *SnapshotHandler) Restore(c *gin.Context) {
	if err := h.repo.Restore(h.sites, h.sessions); err != nil {
		logger.Error("snapshot restore failed", "error", err)
		response.InternalError(c, "Failed to restore snapshot")
		return
	}

	response.Success(c, gin.H{
		"sites":    h.sites.Len(),
		"sessions": h.sessions.Len(),
	})
}
