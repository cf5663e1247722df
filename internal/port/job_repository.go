package port

import (
	"context"

	"parseai/internal/domain"
)

// JobRepository defines the contract for analysis job persistence.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	// ClaimPending atomically moves up to limit pending jobs to processing and returns them.
	ClaimPending(ctx context.Context, limit int) ([]domain.Job, error)
	UpdateProgress(ctx context.Context, id string, progress int) error
	Complete(ctx context.Context, id string, result []byte) error
	Fail(ctx context.Context, id string, errMsg string) error
	CountByStatus(ctx context.Context, status domain.JobStatus) (int, error)
}
