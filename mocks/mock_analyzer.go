package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"parseai/internal/port"
)

// MockAnalyzer is a mock implementation of port.Analyzer.
type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) Analyze(ctx context.Context, input port.AnalysisInput) (json.RawMessage, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}
