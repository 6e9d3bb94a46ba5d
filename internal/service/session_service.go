package service

import (
	"fmt"
	"math"

	"github.com/jengzang/cellmap-backend-go/internal/models"
	"github.com/jengzang/cellmap-backend-go/internal/store"
)

// SessionService handles queries against the loaded sessions
type SessionService struct {
	sessions *store.Sessions
}

// NewSessionService creates a new session service
func NewSessionService(sessions *store.Sessions) *SessionService {
	return &SessionService{sessions: sessions}
}

// GetSessions retrieves sessions with filtering and pagination
func (s *SessionService) GetSessions(filter models.SessionFilter) *models.SessionsResponse {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}

	var matched []*models.Session
	for _, session := range s.sessions.All() {
		if filter.FileID != "" && session.FileID != filter.FileID {
			continue
		}
		matched = append(matched, session)
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

	return &models.SessionsResponse{
		Data:       matched[start:end],
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.PageSize))),
	}
}

// GetSessionByID retrieves a single session by ID
func (s *SessionService) GetSessionByID(id string) (*models.Session, error) {
	session := s.sessions.Get(id)
	if session == nil {
		return nil, fmt.Errorf("session not found")
	}
	return session, nil
}
