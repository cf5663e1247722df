package apiclient

import (
	"context"
	"encoding/json"

	"parseai/internal/domain"
)

// StartComprehensiveAnalysis analyzes several medical documents together.
func (c *Client) StartComprehensiveAnalysis(ctx context.Context, documentIDs []string) (*domain.JobResponse, error) {
	return postJSON[domain.JobResponse](ctx, c, "/analyze/comprehensive", domain.DocumentIDsPayload{DocumentIDs: documentIDs})
}

// StartSingleDocumentAnalysis analyzes one medical document.
func (c *Client) StartSingleDocumentAnalysis(ctx context.Context, documentID string) (*domain.JobResponse, error) {
	return postJSON[domain.JobResponse](ctx, c, "/analyze/single", domain.DocumentIDPayload{DocumentID: documentID})
}

// StartBatchAnalysis analyzes each document independently within one job.
func (c *Client) StartBatchAnalysis(ctx context.Context, documentIDs []string) (*domain.JobResponse, error) {
	return postJSON[domain.JobResponse](ctx, c, "/analyze/batch", domain.DocumentIDsPayload{DocumentIDs: documentIDs})
}

// StartGeneralAnalysis analyzes documents of any type.
func (c *Client) StartGeneralAnalysis(ctx context.Context, documentIDs []string) (*domain.JobResponse, error) {
	return postJSON[domain.JobResponse](ctx, c, "/analyze/general", domain.DocumentIDsPayload{DocumentIDs: documentIDs})
}

// StartCustomAnalysis analyzes documents following user-supplied instructions.
func (c *Client) StartCustomAnalysis(ctx context.Context, payload domain.CustomAnalysisPayload) (*domain.JobResponse, error) {
	return postJSON[domain.JobResponse](ctx, c, "/analyze/custom", payload)
}

// StartFraudAnalysis compares a bill against medical records on the /analyze/fraud endpoint.
func (c *Client) StartFraudAnalysis(ctx context.Context, billID string, medicalRecordIDs []string) (*domain.JobResponse, error) {
	return c.startBillAnalysis(ctx, "/analyze/fraud", billID, medicalRecordIDs)
}

// StartFraudDetection looks for items billed but absent from the medical records.
func (c *Client) StartFraudDetection(ctx context.Context, billID string, medicalRecordIDs []string) (*domain.JobResponse, error) {
	return c.startBillAnalysis(ctx, "/analyze/fraud-detection", billID, medicalRecordIDs)
}

// StartRevenueLeakageAnalysis looks for items in the medical records that were never billed.
func (c *Client) StartRevenueLeakageAnalysis(ctx context.Context, billID string, medicalRecordIDs []string) (*domain.JobResponse, error) {
	return c.startBillAnalysis(ctx, "/analyze/revenue-leakage", billID, medicalRecordIDs)
}

// StartMismatchAnalysis reports all differences between a bill and the medical records.
func (c *Client) StartMismatchAnalysis(ctx context.Context, billID string, medicalRecordIDs []string) (*domain.JobResponse, error) {
	return c.startBillAnalysis(ctx, "/analyze/mismatch", billID, medicalRecordIDs)
}

func (c *Client) startBillAnalysis(ctx context.Context, path, billID string, medicalRecordIDs []string) (*domain.JobResponse, error) {
	return postJSON[domain.JobResponse](ctx, c, path, domain.BillRecordsPayload{
		BillID:           billID,
		MedicalRecordIDs: medicalRecordIDs,
	})
}

// StartXRayAnalysis produces a radiology report for one image.
func (c *Client) StartXRayAnalysis(ctx context.Context, documentID string) (*domain.JobResponse, error) {
	return postJSON[domain.JobResponse](ctx, c, "/analyze/xray", domain.DocumentIDPayload{DocumentID: documentID})
}

// StartFakeDocumentDetection checks whether a document is fabricated.
func (c *Client) StartFakeDocumentDetection(ctx context.Context, documentID string) (*domain.JobResponse, error) {
	return postJSON[domain.JobResponse](ctx, c, "/analyze/fake-document", domain.DocumentIDPayload{DocumentID: documentID})
}

// StartTamperingDetection checks a document for signs of editing.
func (c *Client) StartTamperingDetection(ctx context.Context, documentID string) (*domain.JobResponse, error) {
	return postJSON[domain.JobResponse](ctx, c, "/analyze/tampering", domain.DocumentIDPayload{DocumentID: documentID})
}

// StartCoDocumentAnalysis compares two documents with each other.
func (c *Client) StartCoDocumentAnalysis(ctx context.Context, payload domain.CoDocumentPayload) (*domain.JobResponse, error) {
	return postJSON[domain.JobResponse](ctx, c, "/analyze/co-document", payload)
}

// GetAnalysisStatus fetches the current status of a job.
func (c *Client) GetAnalysisStatus(ctx context.Context, jobID string) (*domain.AnalysisStatusResponse, error) {
	return getJSON[domain.AnalysisStatusResponse](ctx, c, "/analysis/"+EscapeSegment(jobID)+"/status")
}

// GetAnalysisResult fetches the result of a finished job with the payload left undecoded.
func (c *Client) GetAnalysisResult(ctx context.Context, jobID string) (*domain.AnalysisResultResponse[json.RawMessage], error) {
	return GetAnalysisResultAs[json.RawMessage](ctx, c, jobID)
}

// GetAnalysisResultAs fetches the result of a finished job, decoding the payload as T.
func GetAnalysisResultAs[T any](ctx context.Context, c *Client, jobID string) (*domain.AnalysisResultResponse[T], error) {
	return getJSON[domain.AnalysisResultResponse[T]](ctx, c, "/analysis/"+EscapeSegment(jobID)+"/result")
}
