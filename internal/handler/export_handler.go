package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/cellmap-backend-go/internal/export"
	"github.com/jengzang/cellmap-backend-go/internal/service"
	"github.com/jengzang/cellmap-backend-go/internal/store"
	"github.com/jengzang/cellmap-backend-go/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler handles workbook downloads of the loaded model
type ExportHandler struct {
	sites    *store.Sites
	sessions *store.Sessions
	loader   *service.Loader
}

// NewExportHandler creates a new export handler
func NewExportHandler(sites *store.Sites, sessions *store.Sessions, loader *service.Loader) *ExportHandler {
	return &ExportHandler{
		sites:    sites,
		sessions: sessions,
		loader:   loader,
	}
}

// Export handles GET /api/v1/export
func (h *ExportHandler) Export(c *gin.Context) {
	workbook, err := export.Workbook(h.sites, h.sessions, h.loader.History())
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	filename := fmt.Sprintf("cellmap-%s.xlsx", time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)

	if _, err := workbook.WriteTo(c.Writer); err != nil {
		c.Error(err)
	}
}
