package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/cellmap-backend-go/internal/models"
	"github.com/jengzang/cellmap-backend-go/internal/service"
	"github.com/jengzang/cellmap-backend-go/pkg/response"
)

// SessionHandler handles HTTP requests for sessions
type SessionHandler struct {
	sessionService *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
	}
}

// GetSessions handles GET /api/v1/sessions
func (h *SessionHandler) GetSessions(c *gin.Context) {
	var filter models.SessionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	response.Success(c, h.sessionService.GetSessions(filter))
}

// GetSessionByID handles GET /api/v1/sessions/:id
func (h *SessionHandler) GetSessionByID(c *gin.Context) {
	session, err := h.sessionService.GetSessionByID(c.Param("id"))
	if err != nil {
		response.NotFound(c, "Session not found")
		return
	}

	response.Success(c, session)
}
