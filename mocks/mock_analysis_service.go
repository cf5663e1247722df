package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"parseai/internal/domain"
)

// MockAnalysisService is a mock implementation of service.AnalysisService.
type MockAnalysisService struct {
	mock.Mock
}

func (m *MockAnalysisService) job(args mock.Arguments) (*domain.JobResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobResponse), args.Error(1)
}

func (m *MockAnalysisService) StartMulti(ctx context.Context, jobType domain.JobType, documentIDs []string) (*domain.JobResponse, error) {
	return m.job(m.Called(ctx, jobType, documentIDs))
}

func (m *MockAnalysisService) StartSingle(ctx context.Context, jobType domain.JobType, documentID string) (*domain.JobResponse, error) {
	return m.job(m.Called(ctx, jobType, documentID))
}

func (m *MockAnalysisService) StartBillRecords(ctx context.Context, jobType domain.JobType, payload domain.BillRecordsPayload) (*domain.JobResponse, error) {
	return m.job(m.Called(ctx, jobType, payload))
}

func (m *MockAnalysisService) StartCustom(ctx context.Context, payload domain.CustomAnalysisPayload) (*domain.JobResponse, error) {
	return m.job(m.Called(ctx, payload))
}

func (m *MockAnalysisService) StartCoDocument(ctx context.Context, payload domain.CoDocumentPayload) (*domain.JobResponse, error) {
	return m.job(m.Called(ctx, payload))
}

func (m *MockAnalysisService) GetStatus(ctx context.Context, jobID string) (*domain.AnalysisStatusResponse, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisStatusResponse), args.Error(1)
}

func (m *MockAnalysisService) GetResult(ctx context.Context, jobID string) (*domain.AnalysisResultResponse[json.RawMessage], error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisResultResponse[json.RawMessage]), args.Error(1)
}

func (m *MockAnalysisService) ActiveJobs(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
