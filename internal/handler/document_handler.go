package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"parseai/internal/domain"
	"parseai/internal/service"
)

// multipartOverhead is allowed on top of the file size limit for form boundaries and part headers.
const multipartOverhead = 64 << 10

// DocumentHandler handles document upload and retrieval endpoints.
type DocumentHandler struct {
	docService     service.DocumentService
	maxUploadBytes int64
}

// NewDocumentHandler creates a new DocumentHandler. Request bodies larger than
// maxUploadBytes plus multipart overhead are rejected before parsing; 0 disables the limit.
func NewDocumentHandler(docService service.DocumentService, maxUploadBytes int64) *DocumentHandler {
	return &DocumentHandler{docService: docService, maxUploadBytes: maxUploadBytes}
}

// Upload handles POST /upload
// @Summary Upload a document
// @Description Upload a document (png, jpg, jpeg, gif, bmp, tiff, pdf, webp) for later analysis
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document to upload"
// @Success 200 {object} domain.UploadResponse
// @Failure 400 {object} domain.ErrorResponse "Missing file or unsupported type"
// @Failure 413 {object} domain.ErrorResponse "File too large"
// @Failure 500 {object} domain.ErrorResponse "Upload failed"
// @Router /upload [post]
func (h *DocumentHandler) Upload(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		limit := h.maxUploadBytes + multipartOverhead
		if c.Request.ContentLength > limit {
			HandleError(c, domain.ErrFileTooLarge)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			HandleError(c, domain.ErrFileTooLarge)
			return
		}
		if errors.Is(err, http.ErrMissingFile) {
			HandleError(c, domain.ErrNoFileProvided)
			return
		}
		RespondError(c, http.StatusBadRequest, fmt.Sprintf("Upload failed: %v", err))
		return
	}
	defer func() { _ = file.Close() }()

	if header.Filename == "" {
		HandleError(c, domain.ErrNoFileSelected)
		return
	}

	doc, err := h.docService.Upload(c.Request.Context(), service.DocumentUploadInput{
		FileName: header.Filename,
		Size:     header.Size,
		Body:     file,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, uploadResponse(doc))
}

// View handles GET /documents/:id/view
// @Summary View a document
// @Description Stream the stored bytes of a document inline
// @Tags documents
// @Produce octet-stream
// @Param id path string true "Document ID"
// @Success 200 {file} binary
// @Failure 404 {object} domain.ErrorResponse "Document not found"
// @Router /documents/{id}/view [get]
func (h *DocumentHandler) View(c *gin.Context) {
	doc, data, err := h.docService.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			HandleError(c, domain.WithMessage(domain.ErrNotFound, "Document file not found on server"))
			return
		}
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", doc.FileName))
	c.Data(http.StatusOK, doc.ContentType, data)
}
