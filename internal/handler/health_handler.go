package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"parseai/internal/domain"
	"parseai/internal/service"
)

// APIVersion is reported by the index endpoint.
const APIVersion = "1.0.0"

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	analysisService service.AnalysisService
	analyzerReady   bool
	now             func() time.Time
}

// NewHealthHandler creates a new HealthHandler. analyzerReady is reported as
// analysis_modules_available.
func NewHealthHandler(analysisService service.AnalysisService, analyzerReady bool) *HealthHandler {
	return &HealthHandler{analysisService: analysisService, analyzerReady: analyzerReady, now: time.Now}
}

// Index handles GET /
func (h *HealthHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "Parse-AI Document Analysis API",
		"version": APIVersion,
		"status":  "running",
		"endpoints": gin.H{
			"health":    "/health",
			"customers": "/customers",
			"upload":    "/upload",
			"analyze":   "/analyze/*",
		},
	})
}

// Health handles GET /health
// @Summary System health check
// @Tags health
// @Produce json
// @Success 200 {object} domain.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	active, err := h.analysisService.ActiveJobs(c.Request.Context())
	if err != nil {
		log.Printf("healthHandler.Health: counting active jobs: %v", err)
	}
	c.JSON(http.StatusOK, domain.HealthResponse{
		Status:                   "healthy",
		Timestamp:                domain.NewTimestamp(h.now()),
		AnalysisModulesAvailable: h.analyzerReady,
		ActiveJobs:               active,
	})
}
