package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"parseai/internal/domain"
	"parseai/internal/service"
)

// SampleHandler serves the sample document catalogue.
type SampleHandler struct {
	sampleService service.SampleService
}

// NewSampleHandler creates a new SampleHandler.
func NewSampleHandler(sampleService service.SampleService) *SampleHandler {
	return &SampleHandler{sampleService: sampleService}
}

// List handles GET /samples/:category
// @Summary List sample documents
// @Tags samples
// @Produce json
// @Param category path string true "medical, xray, financial, legal, educational or general"
// @Success 200 {object} domain.SampleDocumentsResponse
// @Failure 400 {object} domain.ErrorResponse "Invalid category"
// @Router /samples/{category} [get]
func (h *SampleHandler) List(c *gin.Context) {
	category := c.Param("category")
	resp, err := h.sampleService.List(c.Request.Context(), category)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCategory) {
			HandleError(c, domain.WithMessage(domain.ErrInvalidCategory, "Invalid category: %s", category))
			return
		}
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Download handles GET /samples/:category/*blobPath where the path ends in /download.
// @Summary Import a sample document
// @Description Copies the sample into the document store so it can be analyzed
// @Tags samples
// @Produce json
// @Param category path string true "Sample category"
// @Param blobPath path string true "Sample blob path"
// @Success 200 {object} domain.UploadResponse
// @Failure 404 {object} domain.ErrorResponse "Sample not found"
// @Router /samples/{category}/{blobPath}/download [get]
func (h *SampleHandler) Download(c *gin.Context) {
	blobPath, ok := downloadTarget(c.Param("blobPath"))
	if !ok {
		RespondError(c, http.StatusNotFound, "Not found")
		return
	}

	doc, err := h.sampleService.Download(c.Request.Context(), c.Param("category"), blobPath)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, uploadResponse(doc))
}

// downloadTarget extracts the blob path from a catch-all "/<blob path>/download".
func downloadTarget(rest string) (string, bool) {
	blob, ok := strings.CutSuffix(strings.TrimPrefix(rest, "/"), "/download")
	if !ok || blob == "" {
		return "", false
	}
	return blob, true
}
