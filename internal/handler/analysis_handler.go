package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"parseai/internal/domain"
	"parseai/internal/service"
)

// AnalysisHandler starts analysis jobs and reports their status and results.
type AnalysisHandler struct {
	analysisService service.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// Comprehensive handles POST /analyze/comprehensive
// @Summary Start a comprehensive analysis
// @Tags analysis
// @Accept json
// @Produce json
// @Param body body domain.DocumentIDsPayload true "Documents to analyze"
// @Success 200 {object} domain.JobResponse
// @Failure 400 {object} domain.ErrorResponse "No documents provided"
// @Failure 404 {object} domain.ErrorResponse "Unknown document"
// @Router /analyze/comprehensive [post]
func (h *AnalysisHandler) Comprehensive(c *gin.Context) {
	h.startMulti(c, domain.JobTypeComprehensive)
}

// Batch handles POST /analyze/batch
// @Summary Start a batch analysis
// @Tags analysis
// @Accept json
// @Produce json
// @Param body body domain.DocumentIDsPayload true "Documents to analyze"
// @Success 200 {object} domain.JobResponse
// @Router /analyze/batch [post]
func (h *AnalysisHandler) Batch(c *gin.Context) {
	h.startMulti(c, domain.JobTypeBatch)
}

// General handles POST /analyze/general
// @Summary Start a general document analysis
// @Tags analysis
// @Accept json
// @Produce json
// @Param body body domain.DocumentIDsPayload true "Documents to analyze"
// @Success 200 {object} domain.JobResponse
// @Router /analyze/general [post]
func (h *AnalysisHandler) General(c *gin.Context) {
	h.startMulti(c, domain.JobTypeGeneral)
}

// Single handles POST /analyze/single
// @Summary Start a single document analysis
// @Tags analysis
// @Accept json
// @Produce json
// @Param body body domain.DocumentIDPayload true "Document to analyze"
// @Success 200 {object} domain.JobResponse
// @Failure 400 {object} domain.ErrorResponse "No document provided"
// @Failure 404 {object} domain.ErrorResponse "Document not found"
// @Router /analyze/single [post]
func (h *AnalysisHandler) Single(c *gin.Context) {
	h.startSingle(c, domain.JobTypeSingle)
}

// XRay handles POST /analyze/xray
func (h *AnalysisHandler) XRay(c *gin.Context) {
	h.startSingle(c, domain.JobTypeXRay)
}

// FakeDocument handles POST /analyze/fake-document
func (h *AnalysisHandler) FakeDocument(c *gin.Context) {
	h.startSingle(c, domain.JobTypeFakeDocument)
}

// Tampering handles POST /analyze/tampering
func (h *AnalysisHandler) Tampering(c *gin.Context) {
	h.startSingle(c, domain.JobTypeTampering)
}

// Fraud handles POST /analyze/fraud
// @Summary Start a bill-versus-records fraud analysis
// @Tags analysis
// @Accept json
// @Produce json
// @Param body body domain.BillRecordsPayload true "Bill and medical records"
// @Success 200 {object} domain.JobResponse
// @Failure 400 {object} domain.ErrorResponse "Bill and medical records required"
// @Failure 404 {object} domain.ErrorResponse "Unknown bill or record"
// @Router /analyze/fraud [post]
func (h *AnalysisHandler) Fraud(c *gin.Context) {
	h.startBillRecords(c, domain.JobTypeFraud)
}

// FraudDetection handles POST /analyze/fraud-detection
func (h *AnalysisHandler) FraudDetection(c *gin.Context) {
	h.startBillRecords(c, domain.JobTypeFraudDetection)
}

// RevenueLeakage handles POST /analyze/revenue-leakage
func (h *AnalysisHandler) RevenueLeakage(c *gin.Context) {
	h.startBillRecords(c, domain.JobTypeRevenueLeakage)
}

// Mismatch handles POST /analyze/mismatch
func (h *AnalysisHandler) Mismatch(c *gin.Context) {
	h.startBillRecords(c, domain.JobTypeMismatch)
}

// Custom handles POST /analyze/custom
// @Summary Start a custom analysis driven by user instructions
// @Tags analysis
// @Accept json
// @Produce json
// @Param body body domain.CustomAnalysisPayload true "Documents and instructions"
// @Success 200 {object} domain.JobResponse
// @Failure 400 {object} domain.ErrorResponse "Missing documents or instructions"
// @Router /analyze/custom [post]
func (h *AnalysisHandler) Custom(c *gin.Context) {
	var payload domain.CustomAnalysisPayload
	if !bindJSON(c, &payload) {
		return
	}
	h.respondJob(c)(h.analysisService.StartCustom(c.Request.Context(), payload))
}

// CoDocument handles POST /analyze/co-document
// @Summary Start a comparison of two documents
// @Tags analysis
// @Accept json
// @Produce json
// @Param body body domain.CoDocumentPayload true "Documents to compare"
// @Success 200 {object} domain.JobResponse
// @Failure 400 {object} domain.ErrorResponse "Two documents required"
// @Router /analyze/co-document [post]
func (h *AnalysisHandler) CoDocument(c *gin.Context) {
	var payload domain.CoDocumentPayload
	if !bindJSON(c, &payload) {
		return
	}
	h.respondJob(c)(h.analysisService.StartCoDocument(c.Request.Context(), payload))
}

// Status handles GET /analysis/:jobId/status
// @Summary Get analysis job status
// @Tags analysis
// @Produce json
// @Param jobId path string true "Job ID"
// @Success 200 {object} domain.AnalysisStatusResponse
// @Failure 404 {object} domain.ErrorResponse "Job not found"
// @Router /analysis/{jobId}/status [get]
func (h *AnalysisHandler) Status(c *gin.Context) {
	status, err := h.analysisService.GetStatus(c.Request.Context(), c.Param("jobId"))
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// Result handles GET /analysis/:jobId/result
// @Summary Get analysis job result
// @Tags analysis
// @Produce json
// @Param jobId path string true "Job ID"
// @Success 200 {object} domain.AnalysisResultResponse[any]
// @Failure 400 {object} domain.ErrorResponse "Analysis not completed"
// @Failure 404 {object} domain.ErrorResponse "Job not found"
// @Router /analysis/{jobId}/result [get]
func (h *AnalysisHandler) Result(c *gin.Context) {
	result, err := h.analysisService.GetResult(c.Request.Context(), c.Param("jobId"))
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AnalysisHandler) startMulti(c *gin.Context, jobType domain.JobType) {
	var payload domain.DocumentIDsPayload
	if !bindJSON(c, &payload) {
		return
	}
	h.respondJob(c)(h.analysisService.StartMulti(c.Request.Context(), jobType, payload.DocumentIDs))
}

func (h *AnalysisHandler) startSingle(c *gin.Context, jobType domain.JobType) {
	var payload domain.DocumentIDPayload
	if !bindJSON(c, &payload) {
		return
	}
	h.respondJob(c)(h.analysisService.StartSingle(c.Request.Context(), jobType, payload.DocumentID))
}

func (h *AnalysisHandler) startBillRecords(c *gin.Context, jobType domain.JobType) {
	var payload domain.BillRecordsPayload
	if !bindJSON(c, &payload) {
		return
	}
	h.respondJob(c)(h.analysisService.StartBillRecords(c.Request.Context(), jobType, payload))
}

func (h *AnalysisHandler) respondJob(c *gin.Context) func(*domain.JobResponse, error) {
	return func(resp *domain.JobResponse, err error) {
		if err != nil {
			HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// bindJSON decodes the request body into v. An empty body leaves v zero so the
// service reports the missing fields. Returns false if a response was written.
func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		HandleError(c, domain.WithMessage(domain.ErrInvalidRequest, "Invalid request body: %v", err))
		return false
	}
	return true
}
