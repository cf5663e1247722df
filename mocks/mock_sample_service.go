package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"parseai/internal/domain"
)

// MockSampleService is a mock implementation of service.SampleService.
type MockSampleService struct {
	mock.Mock
}

func (m *MockSampleService) List(ctx context.Context, category string) (*domain.SampleDocumentsResponse, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SampleDocumentsResponse), args.Error(1)
}

func (m *MockSampleService) Download(ctx context.Context, category, blobPath string) (*domain.Document, error) {
	args := m.Called(ctx, category, blobPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}
