package service

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jengzang/cellmap-backend-go/internal/models"
	"github.com/jengzang/cellmap-backend-go/internal/spatial"
	"github.com/jengzang/cellmap-backend-go/internal/store"
)

// SiteService handles queries against the loaded site model
type SiteService struct {
	sites *store.Sites
}

// NewSiteService creates a new site service
func NewSiteService(sites *store.Sites) *SiteService {
	return &SiteService{sites: sites}
}

// GetSites retrieves sites with filtering and pagination
func (s *SiteService) GetSites(filter models.SiteFilter) *models.SitesResponse {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}

	var matched []*models.Site
	for _, site := range s.sites.All() {
		if filter.Technology != "" && !strings.EqualFold(string(site.Technology), filter.Technology) {
			continue
		}
		if filter.Name != "" && !strings.Contains(strings.ToLower(site.Name), strings.ToLower(filter.Name)) {
			continue
		}
		matched = append(matched, site)
	}

	total := len(matched)
	start := (filter.Page - 1) * filter.PageSize
	if start > total {
		start = total
	}
	end := start + filter.PageSize
	if end > total {
		end = total
	}

	return &models.SitesResponse{
		Data:       matched[start:end],
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.PageSize))),
	}
}

// GetSiteByID retrieves a single site by ID
func (s *SiteService) GetSiteByID(id string) (*models.Site, error) {
	site := s.sites.Get(id)
	if site == nil {
		return nil, fmt.Errorf("site not found")
	}
	return site, nil
}

// CoverageEntry is one sector whose beam covers a queried position
type CoverageEntry struct {
	SiteID         string  `json:"siteId"`
	SiteName       string  `json:"siteName"`
	SectorID       string  `json:"sectorId"`
	SectorName     string  `json:"sectorName"`
	DistanceMeters float64 `json:"distanceMeters"`
}

// Coverage returns the sectors whose horizontal beam covers the given
// position, nearest site first.
func (s *SiteService) Coverage(lat, lon float64) []CoverageEntry {
	var entries []CoverageEntry
	for _, site := range s.sites.All() {
		distance := spatial.HaversineDistance(site.Position.Latitude, site.Position.Longitude, lat, lon)
		for _, sector := range site.Sectors {
			if !spatial.WithinBeam(site.Position.Latitude, site.Position.Longitude,
				float64(sector.Azimuth), float64(sector.Beamwidth), lat, lon) {
				continue
			}
			entries = append(entries, CoverageEntry{
				SiteID:         site.ID,
				SiteName:       site.Name,
				SectorID:       sector.ID,
				SectorName:     sector.Name,
				DistanceMeters: distance,
			})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].DistanceMeters < entries[j].DistanceMeters
	})
	return entries
}
