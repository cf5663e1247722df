package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"parseai/internal/domain"
	"parseai/internal/port"
)

// Workflow runs one kind of analysis and returns a JSON-serializable result.
type Workflow func(ctx context.Context, input port.AnalysisInput) (any, error)

// UnknownJobTypeError is returned when no workflow is registered for a job type.
type UnknownJobTypeError struct {
	JobType domain.JobType
}

func (e *UnknownJobTypeError) Error() string {
	return fmt.Sprintf("no analysis workflow registered for job type %q", e.JobType)
}

// Registry dispatches jobs to the workflow registered for their type.
// It implements port.Analyzer.
type Registry struct {
	workflows map[domain.JobType]Workflow
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{workflows: map[domain.JobType]Workflow{}}
}

// Register binds a workflow to a job type, replacing any previous binding.
func (r *Registry) Register(jobType domain.JobType, wf Workflow) {
	r.workflows[jobType] = wf
}

// JobTypes lists the registered job types in sorted order.
func (r *Registry) JobTypes() []domain.JobType {
	out := make([]domain.JobType, 0, len(r.workflows))
	for t := range r.workflows {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (r *Registry) Analyze(ctx context.Context, input port.AnalysisInput) (json.RawMessage, error) {
	wf, ok := r.workflows[input.Job.Type]
	if !ok {
		return nil, &UnknownJobTypeError{JobType: input.Job.Type}
	}
	if input.Progress == nil {
		input.Progress = func(int) {}
	}

	out, err := wf(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("%s analysis: %w", input.Job.Type, err)
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encoding %s result: %w", input.Job.Type, err)
	}
	input.Progress(100)
	return raw, nil
}
