package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"parseai/internal/domain"
)

// MockDashboardAPI is a mock implementation of dashboard.API.
type MockDashboardAPI struct {
	mock.Mock
}

func (m *MockDashboardAPI) UploadFile(ctx context.Context, path string) (*domain.UploadResponse, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadResponse), args.Error(1)
}

func (m *MockDashboardAPI) StartComprehensiveAnalysis(ctx context.Context, documentIDs []string) (*domain.JobResponse, error) {
	args := m.Called(ctx, documentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobResponse), args.Error(1)
}

func (m *MockDashboardAPI) StartSingleDocumentAnalysis(ctx context.Context, documentID string) (*domain.JobResponse, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobResponse), args.Error(1)
}

func (m *MockDashboardAPI) StartBatchAnalysis(ctx context.Context, documentIDs []string) (*domain.JobResponse, error) {
	args := m.Called(ctx, documentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobResponse), args.Error(1)
}

func (m *MockDashboardAPI) StartGeneralAnalysis(ctx context.Context, documentIDs []string) (*domain.JobResponse, error) {
	args := m.Called(ctx, documentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobResponse), args.Error(1)
}

func (m *MockDashboardAPI) StartCustomAnalysis(ctx context.Context, payload domain.CustomAnalysisPayload) (*domain.JobResponse, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobResponse), args.Error(1)
}

func (m *MockDashboardAPI) StartFraudAnalysis(ctx context.Context, billID string, medicalRecordIDs []string) (*domain.JobResponse, error) {
	args := m.Called(ctx, billID, medicalRecordIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobResponse), args.Error(1)
}

func (m *MockDashboardAPI) StartFraudDetection(ctx context.Context, billID string, medicalRecordIDs []string) (*domain.JobResponse, error) {
	args := m.Called(ctx, billID, medicalRecordIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobResponse), args.Error(1)
}

func (m *MockDashboardAPI) StartRevenueLeakageAnalysis(ctx context.Context, billID string, medicalRecordIDs []string) (*domain.JobResponse, error) {
	args := m.Called(ctx, billID, medicalRecordIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobResponse), args.Error(1)
}

func (m *MockDashboardAPI) StartMismatchAnalysis(ctx context.Context, billID string, medicalRecordIDs []string) (*domain.JobResponse, error) {
	args := m.Called(ctx, billID, medicalRecordIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobResponse), args.Error(1)
}

func (m *MockDashboardAPI) StartXRayAnalysis(ctx context.Context, documentID string) (*domain.JobResponse, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobResponse), args.Error(1)
}

func (m *MockDashboardAPI) StartFakeDocumentDetection(ctx context.Context, documentID string) (*domain.JobResponse, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobResponse), args.Error(1)
}

func (m *MockDashboardAPI) StartTamperingDetection(ctx context.Context, documentID string) (*domain.JobResponse, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobResponse), args.Error(1)
}

func (m *MockDashboardAPI) StartCoDocumentAnalysis(ctx context.Context, payload domain.CoDocumentPayload) (*domain.JobResponse, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobResponse), args.Error(1)
}

func (m *MockDashboardAPI) GetSampleDocuments(ctx context.Context, category string) (*domain.SampleDocumentsResponse, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SampleDocumentsResponse), args.Error(1)
}

func (m *MockDashboardAPI) DownloadSampleDocument(ctx context.Context, category, blobPath string) (*domain.UploadResponse, error) {
	args := m.Called(ctx, category, blobPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadResponse), args.Error(1)
}

func (m *MockDashboardAPI) ListCustomers(ctx context.Context) (*domain.CustomersResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomersResponse), args.Error(1)
}

func (m *MockDashboardAPI) GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockDashboardAPI) GetCustomerDocuments(ctx context.Context, customerID string) (*domain.CustomerDocumentsResponse, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerDocumentsResponse), args.Error(1)
}

func (m *MockDashboardAPI) DownloadCustomerDocument(ctx context.Context, customerID, blobPath string) (*domain.UploadResponse, error) {
	args := m.Called(ctx, customerID, blobPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadResponse), args.Error(1)
}

func (m *MockDashboardAPI) Health(ctx context.Context) (*domain.HealthResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HealthResponse), args.Error(1)
}

func (m *MockDashboardAPI) GetAnalysisStatus(ctx context.Context, jobID string) (*domain.AnalysisStatusResponse, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisStatusResponse), args.Error(1)
}

func (m *MockDashboardAPI) GetAnalysisResult(ctx context.Context, jobID string) (*domain.AnalysisResultResponse[json.RawMessage], error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisResultResponse[json.RawMessage]), args.Error(1)
}
