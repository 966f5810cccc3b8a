package handler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"carprice/internal/csvexport"
	"carprice/internal/domain"
	"carprice/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BatchHandler handles CSV batch upload and result export endpoints.
type BatchHandler struct {
	batchService service.BatchService
	maxFileBytes int64
}

// NewBatchHandler creates a new BatchHandler. maxFileSizeMB <= 0 defaults to 5MB.
func NewBatchHandler(batchService service.BatchService, maxFileSizeMB int64) *BatchHandler {
	if maxFileSizeMB <= 0 {
		maxFileSizeMB = 5
	}
	return &BatchHandler{batchService: batchService, maxFileBytes: maxFileSizeMB << 20}
}

// Upload handles POST /api/batch/upload
func (h *BatchHandler) Upload(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 2*h.maxFileBytes+(1<<20))
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			RespondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size")
			return
		}
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	if header.Size > h.maxFileBytes {
		RespondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size")
		return
	}
	if !strings.EqualFold(filepath.Ext(header.Filename), ".csv") {
		RespondError(c, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: csv")
		return
	}

	contents, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_FILE", "could not read uploaded file")
		return
	}
	contents = bytes.TrimPrefix(contents, csvexport.BOM)

	state, err := h.batchService.ProcessUpload(c.Request.Context(), sid, header.Filename, contents)
	if err != nil {
		if state != nil && state.Error != "" {
			status, code, _ := MapDomainError(err)
			RespondError(c, status, code, state.Error)
			return
		}
		HandleError(c, err)
		return
	}

	RespondOK(c, state)
}

// State handles GET /api/batch
func (h *BatchHandler) State(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	RespondOK(c, h.batchService.State(c.Request.Context(), sid))
}

// Reset handles DELETE /api/batch
func (h *BatchHandler) Reset(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	h.batchService.Reset(c.Request.Context(), sid)
	RespondOK(c, gin.H{"message": "batch cleared"})
}

// Export handles GET /api/batch/export?format=csv|xlsx
func (h *BatchHandler) Export(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	format := domain.ExportFormat(strings.ToLower(c.DefaultQuery("format", string(domain.ExportFormatCSV))))

	var buf bytes.Buffer
	var contentType string
	switch format {
	case domain.ExportFormatCSV:
		buf.Write(csvexport.BOM)
		if err := h.batchService.ExportResults(c.Request.Context(), sid, &buf); err != nil {
			HandleError(c, err)
			return
		}
		contentType = "text/csv; charset=utf-8"
	case domain.ExportFormatXLSX:
		if err := h.batchService.ExportWorkbook(c.Request.Context(), sid, &buf); err != nil {
			HandleError(c, err)
			return
		}
		contentType = xlsxContentType
	default:
		HandleError(c, domain.ErrUnsupportedFormat)
		return
	}

	filename := csvexport.BuildFilename("", format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// Archive handles GET /api/batch/archive
func (h *BatchHandler) Archive(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	url, err := h.batchService.ArchiveURL(c.Request.Context(), sid)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"url": url})
}
