package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"parseai/internal/domain"
	"parseai/internal/port"
)

// jobRow is the analysis_jobs table layout; document_ids, params and result are JSONB.
type jobRow struct {
	ID          string       `db:"id"`
	Type        string       `db:"job_type"`
	DocumentIDs []byte       `db:"document_ids"`
	Params      []byte       `db:"params"`
	Status      string       `db:"status"`
	Progress    int          `db:"progress"`
	Result      []byte       `db:"result"`
	Error       string       `db:"error"`
	Attempts    int          `db:"attempts"`
	CreatedAt   time.Time    `db:"created_at"`
	CompletedAt sql.NullTime `db:"completed_at"`
}

func (row *jobRow) toDomain() (domain.Job, error) {
	job := domain.Job{
		ID:        row.ID,
		Type:      domain.JobType(row.Type),
		Params:    row.Params,
		Status:    domain.JobStatus(row.Status),
		Progress:  row.Progress,
		Result:    row.Result,
		Error:     row.Error,
		Attempts:  row.Attempts,
		CreatedAt: row.CreatedAt,
	}
	if len(row.DocumentIDs) > 0 {
		if err := json.Unmarshal(row.DocumentIDs, &job.DocumentIDs); err != nil {
			return job, fmt.Errorf("decoding document_ids of job %s: %w", row.ID, err)
		}
	}
	if row.CompletedAt.Valid {
		t := row.CompletedAt.Time
		job.CompletedAt = &t
	}
	return job, nil
}

type jobRepo struct {
	db *sqlx.DB
}

// NewJobRepo creates a new PostgreSQL-backed JobRepository.
func NewJobRepo(db *sqlx.DB) port.JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	ids, err := json.Marshal(job.DocumentIDs)
	if err != nil {
		return fmt.Errorf("jobRepo.Create: encoding document ids: %w", err)
	}
	var params any
	if len(job.Params) > 0 {
		params = []byte(job.Params)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO analysis_jobs (id, job_type, document_ids, params, status, progress, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		job.ID, job.Type, ids, params, job.Status, job.Progress, job.CreatedAt)
	if err != nil {
		return fmt.Errorf("jobRepo.Create: %w", err)
	}
	return nil
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	var row jobRow
	if err := r.db.GetContext(ctx, &row, "SELECT * FROM analysis_jobs WHERE id = $1", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("jobRepo.GetByID: %w", err)
	}
	job, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepo) ClaimPending(ctx context.Context, limit int) ([]domain.Job, error) {
	var rows []jobRow
	err := r.db.SelectContext(ctx, &rows,
		`UPDATE analysis_jobs SET status = $1, attempts = attempts + 1
		 WHERE id IN (
			SELECT id FROM analysis_jobs
			WHERE status = $2
			ORDER BY created_at
			LIMIT $3
			FOR UPDATE SKIP LOCKED
		 )
		 RETURNING *`,
		domain.JobStatusProcessing, domain.JobStatusPending, limit)
	if err != nil {
		return nil, fmt.Errorf("jobRepo.ClaimPending: %w", err)
	}

	jobs := make([]domain.Job, 0, len(rows))
	for i := range rows {
		job, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func (r *jobRepo) UpdateProgress(ctx context.Context, id string, progress int) error {
	return r.exec(ctx, "jobRepo.UpdateProgress",
		"UPDATE analysis_jobs SET progress = GREATEST(progress, $2) WHERE id = $1", id, progress)
}

func (r *jobRepo) Complete(ctx context.Context, id string, result []byte) error {
	return r.exec(ctx, "jobRepo.Complete",
		`UPDATE analysis_jobs SET status = $2, progress = 100, result = $3, completed_at = $4
		 WHERE id = $1`,
		id, domain.JobStatusCompleted, result, time.Now().UTC())
}

func (r *jobRepo) Fail(ctx context.Context, id, errMsg string) error {
	return r.exec(ctx, "jobRepo.Fail",
		"UPDATE analysis_jobs SET status = $2, error = $3, completed_at = $4 WHERE id = $1",
		id, domain.JobStatusFailed, errMsg, time.Now().UTC())
}

func (r *jobRepo) CountByStatus(ctx context.Context, status domain.JobStatus) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM analysis_jobs WHERE status = $1", status); err != nil {
		return 0, fmt.Errorf("jobRepo.CountByStatus: %w", err)
	}
	return n, nil
}

func (r *jobRepo) exec(ctx context.Context, op, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}
