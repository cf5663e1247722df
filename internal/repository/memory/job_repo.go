package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"parseai/internal/domain"
	"parseai/internal/port"
)

type jobRepo struct {
	mu   sync.Mutex
	jobs map[string]*domain.Job
	now  func() time.Time
}

// NewJobRepo creates an in-process JobRepository.
func NewJobRepo() port.JobRepository {
	return &jobRepo{jobs: map[string]*domain.Job{}, now: time.Now}
}

func (r *jobRepo) Create(_ context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j := cloneJob(job)
	r.jobs[job.ID] = &j
	return nil
}

func (r *jobRepo) GetByID(_ context.Context, id string) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	out := cloneJob(j)
	return &out, nil
}

func (r *jobRepo) ClaimPending(_ context.Context, limit int) ([]domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pending := make([]*domain.Job, 0)
	for _, j := range r.jobs {
		if j.Status == domain.JobStatusPending {
			pending = append(pending, j)
		}
	}
	sort.Slice(pending, func(i, k int) bool { return pending[i].CreatedAt.Before(pending[k].CreatedAt) })
	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}

	out := make([]domain.Job, 0, len(pending))
	for _, j := range pending {
		j.Status = domain.JobStatusProcessing
		j.Attempts++
		out = append(out, cloneJob(j))
	}
	return out, nil
}

func (r *jobRepo) UpdateProgress(_ context.Context, id string, progress int) error {
	return r.update(id, func(j *domain.Job) {
		if progress > j.Progress {
			j.Progress = progress
		}
	})
}

func (r *jobRepo) Complete(_ context.Context, id string, result []byte) error {
	return r.update(id, func(j *domain.Job) {
		now := r.now().UTC()
		j.Status = domain.JobStatusCompleted
		j.Progress = 100
		j.Result = append([]byte(nil), result...)
		j.CompletedAt = &now
	})
}

func (r *jobRepo) Fail(_ context.Context, id, errMsg string) error {
	return r.update(id, func(j *domain.Job) {
		now := r.now().UTC()
		j.Status = domain.JobStatusFailed
		j.Error = errMsg
		j.CompletedAt = &now
	})
}

func (r *jobRepo) CountByStatus(_ context.Context, status domain.JobStatus) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, j := range r.jobs {
		if j.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *jobRepo) update(id string, fn func(*domain.Job)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return domain.ErrJobNotFound
	}
	fn(j)
	return nil
}

func cloneJob(j *domain.Job) domain.Job {
	out := *j
	out.DocumentIDs = append([]string(nil), j.DocumentIDs...)
	if j.Params != nil {
		out.Params = append([]byte(nil), j.Params...)
	}
	if j.Result != nil {
		out.Result = append([]byte(nil), j.Result...)
	}
	if j.CompletedAt != nil {
		t := *j.CompletedAt
		out.CompletedAt = &t
	}
	return out
}
