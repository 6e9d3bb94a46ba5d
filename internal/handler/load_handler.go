package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/cellmap-backend-go/internal/ingest"
	"github.com/jengzang/cellmap-backend-go/internal/models"
	"github.com/jengzang/cellmap-backend-go/internal/service"
	"github.com/jengzang/cellmap-backend-go/pkg/logger"
	"github.com/jengzang/cellmap-backend-go/pkg/response"
)

// LoadHandler handles file uploads into the in-memory model
type LoadHandler struct {
	loader *service.Loader
}

// NewLoadHandler creates a new load handler
func NewLoadHandler(loader *service.Loader) *LoadHandler {
	return &LoadHandler{
		loader: loader,
	}
}

// Upload handles POST /api/v1/files. The file type comes from the
// filename extension, overridable with a "type" form field.
func (h *LoadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Missing file upload")
		return
	}

	kind := service.DetectFileType(fileHeader.Filename)
	if override := c.PostForm("type"); override != "" {
		kind = models.FileType(override)
		switch kind {
		case models.FileTypeCellref, models.FileTypeAccuracy, models.FileTypeAxf:
		default:
			response.BadRequest(c, "Unknown file type override")
			return
		}
	}
	if kind == models.FileTypeUnknown {
		response.BadRequest(c, "Cannot detect file type from filename")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c, "Failed to open upload")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		response.InternalError(c, "Failed to read upload")
		return
	}

	text, encoding, err := ingest.DecodeText(raw)
	if err != nil {
		response.BadRequest(c, "Cannot decode file contents")
		return
	}
	logger.Debug("decoded upload", "file", fileHeader.Filename, "encoding", encoding)

	fs, ok := h.loader.LoadFile(fileHeader.Filename, kind, text)
	if !ok {
		// Rows parsed before the failure stay in the model
		response.UnprocessableEntity(c, "File loaded with errors", fs)
		return
	}

	response.Success(c, fs)
}

// Reset handles POST /api/v1/admin/reset
func (h *LoadHandler) Reset(c *gin.Context) {
	h.loader.Reset()
	response.Success(c, nil)
}
