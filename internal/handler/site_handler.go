package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/cellmap-backend-go/internal/models"
	"github.com/jengzang/cellmap-backend-go/internal/service"
	"github.com/jengzang/cellmap-backend-go/pkg/response"
)

// SiteHandler handles HTTP requests for sites and sectors
type SiteHandler struct {
	siteService *service.SiteService
}

// NewSiteHandler creates a new site handler
func NewSiteHandler(siteService *service.SiteService) *SiteHandler {
	return &SiteHandler{
		siteService: siteService,
	}
}

// GetSites handles GET /api/v1/sites
func (h *SiteHandler) GetSites(c *gin.Context) {
	var filter models.SiteFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	response.Success(c, h.siteService.GetSites(filter))
}

// GetSiteByID handles GET /api/v1/sites/:id
func (h *SiteHandler) GetSiteByID(c *gin.Context) {
	site, err := h.siteService.GetSiteByID(c.Param("id"))
	if err != nil {
		response.NotFound(c, "Site not found")
		return
	}

	response.Success(c, site)
}

// GetSectors handles GET /api/v1/sites/:id/sectors
func (h *SiteHandler) GetSectors(c *gin.Context) {
	site, err := h.siteService.GetSiteByID(c.Param("id"))
	if err != nil {
		response.NotFound(c, "Site not found")
		return
	}

	response.Success(c, gin.H{
		"data":  site.Sectors,
		"count": len(site.Sectors),
	})
}

// GetCoverage handles GET /api/v1/sites/coverage
func (h *SiteHandler) GetCoverage(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		response.BadRequest(c, "Invalid lat parameter")
		return
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		response.BadRequest(c, "Invalid lon parameter")
		return
	}

	entries := h.siteService.Coverage(lat, lon)
	response.Success(c, gin.H{
		"data":  entries,
		"count": len(entries),
	})
}
