package dashboard

import (
	"context"
	"encoding/json"

	"parseai/internal/domain"
)

// API is the slice of the analysis API client the panels use.
// *apiclient.Client implements it.
type API interface {
	UploadFile(ctx context.Context, path string) (*domain.UploadResponse, error)

	StartComprehensiveAnalysis(ctx context.Context, documentIDs []string) (*domain.JobResponse, error)
	StartSingleDocumentAnalysis(ctx context.Context, documentID string) (*domain.JobResponse, error)
	StartBatchAnalysis(ctx context.Context, documentIDs []string) (*domain.JobResponse, error)
	StartGeneralAnalysis(ctx context.Context, documentIDs []string) (*domain.JobResponse, error)
	StartCustomAnalysis(ctx context.Context, payload domain.CustomAnalysisPayload) (*domain.JobResponse, error)
	StartFraudAnalysis(ctx context.Context, billID string, medicalRecordIDs []string) (*domain.JobResponse, error)
	StartFraudDetection(ctx context.Context, billID string, medicalRecordIDs []string) (*domain.JobResponse, error)
	StartRevenueLeakageAnalysis(ctx context.Context, billID string, medicalRecordIDs []string) (*domain.JobResponse, error)
	StartMismatchAnalysis(ctx context.Context, billID string, medicalRecordIDs []string) (*domain.JobResponse, error)
	StartXRayAnalysis(ctx context.Context, documentID string) (*domain.JobResponse, error)
	StartFakeDocumentDetection(ctx context.Context, documentID string) (*domain.JobResponse, error)
	StartTamperingDetection(ctx context.Context, documentID string) (*domain.JobResponse, error)
	StartCoDocumentAnalysis(ctx context.Context, payload domain.CoDocumentPayload) (*domain.JobResponse, error)

	StatusAPI

	GetSampleDocuments(ctx context.Context, category string) (*domain.SampleDocumentsResponse, error)
	DownloadSampleDocument(ctx context.Context, category, blobPath string) (*domain.UploadResponse, error)
	ListCustomers(ctx context.Context) (*domain.CustomersResponse, error)
	GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error)
	GetCustomerDocuments(ctx context.Context, customerID string) (*domain.CustomerDocumentsResponse, error)
	DownloadCustomerDocument(ctx context.Context, customerID, blobPath string) (*domain.UploadResponse, error)
	Health(ctx context.Context) (*domain.HealthResponse, error)
}

// StatusAPI is what a Poller needs.
type StatusAPI interface {
	GetAnalysisStatus(ctx context.Context, jobID string) (*domain.AnalysisStatusResponse, error)
	GetAnalysisResult(ctx context.Context, jobID string) (*domain.AnalysisResultResponse[json.RawMessage], error)
}
