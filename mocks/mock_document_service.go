package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"parseai/internal/domain"
	"parseai/internal/service"
)

// MockDocumentService is a mock implementation of service.DocumentService.
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Upload(ctx context.Context, input service.DocumentUploadInput) (*domain.Document, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) Import(ctx context.Context, input service.ImportInput) (*domain.Document, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) Open(ctx context.Context, id string) (*domain.Document, []byte, error) {
	args := m.Called(ctx, id)
	var data []byte
	if b, ok := args.Get(1).([]byte); ok {
		data = b
	}
	if args.Get(0) == nil {
		return nil, data, args.Error(2)
	}
	return args.Get(0).(*domain.Document), data, args.Error(2)
}
