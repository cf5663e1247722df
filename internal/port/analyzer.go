package port

import (
	"context"
	"encoding/json"

	"parseai/internal/domain"
)

// AnalysisDocument is one input document handed to an Analyzer.
type AnalysisDocument struct {
	Document domain.Document
	Content  []byte
}

// AnalysisInput carries everything an Analyzer needs to run a job.
type AnalysisInput struct {
	Job       domain.Job
	Documents []AnalysisDocument
	// Progress reports completion in percent; values outside 0..100 are clamped.
	Progress func(percent int)
}

// Analyzer runs the analysis workflow for a job and returns its result payload.
type Analyzer interface {
	Analyze(ctx context.Context, input AnalysisInput) (json.RawMessage, error)
}
