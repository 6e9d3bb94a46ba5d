// Package store holds the in-memory model populated by the parsers.
// All mutation happens inside a single load pass; the mutexes only
// guard HTTP readers against a load running at the same time.
package store

import (
	"sync"

	"github.com/jengzang/cellmap-backend-go/internal/models"
)

// Sites is the collection of loaded sites, keyed by site id and
// ordered by insertion.
type Sites struct {
	mu        sync.RWMutex
	byID      map[string]*models.Site
	order     []string
	listeners []func()
}

// NewSites creates an empty site collection
func NewSites() *Sites {
	return &Sites{
		byID: make(map[string]*models.Site),
	}
}

// OnAdd registers a listener fired by Trigger after a batch of adds
func (s *Sites) OnAdd(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Get returns the site with the given id, or nil
func (s *Sites) Get(id string) *models.Site {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byID[id]
}

// Add inserts a site. A silent add fires no listeners; the parser adds
// silently per row and calls Trigger once per file. Last write wins on
// duplicate ids.
func (s *Sites) Add(site *models.Site, silent bool) {
	s.mu.Lock()
	if _, exists := s.byID[site.ID]; !exists {
		s.order = append(s.order, site.ID)
	}
	s.byID[site.ID] = site
	s.mu.Unlock()

	if !silent {
		s.Trigger()
	}
}

// AppendSector attaches a sector to the site with the given id.
// Returns false if the site does not exist.
func (s *Sites) AppendSector(siteID string, sector models.Sector) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	site, ok := s.byID[siteID]
	if !ok {
		return false
	}
	site.Sectors = append(site.Sectors, sector)
	return true
}

// Trigger fires the batched add notification
func (s *Sites) Trigger() {
	s.mu.RLock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}

// All returns the sites in insertion order
func (s *Sites) All() []*models.Site {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sites := make([]*models.Site, 0, len(s.order))
	for _, id := range s.order {
		sites = append(sites, s.byID[id])
	}
	return sites
}

// Len returns the number of sites
func (s *Sites) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// NumSectors returns the total sector count across all sites
func (s *Sites) NumSectors() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, site := range s.byID {
		n += len(site.Sectors)
	}
	return n
}

// Reset drops all sites. Listeners stay registered.
func (s *Sites) Reset() {
	s.mu.Lock()
	s.byID = make(map[string]*models.Site)
	s.order = nil
	s.mu.Unlock()
}
