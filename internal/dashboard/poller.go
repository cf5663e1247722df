package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"parseai/internal/config"
	"parseai/internal/domain"
)

// ErrPollTimeout is returned when a job does not reach a terminal status in time.
var ErrPollTimeout = errors.New("timed out waiting for analysis job")

// JobFailedError reports a job that finished with status failed.
type JobFailedError struct {
	JobID   string
	Message string
}

func (e *JobFailedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("analysis job %s failed", e.JobID)
	}
	return fmt.Sprintf("analysis job %s failed: %s", e.JobID, e.Message)
}

// ProgressFunc observes every status a Poller receives.
type ProgressFunc func(status *domain.AnalysisStatusResponse)

// Poller waits for analysis jobs by polling their status.
type Poller struct {
	api        StatusAPI
	interval   time.Duration
	timeout    time.Duration
	onProgress ProgressFunc
}

// NewPoller creates a Poller using cfg's interval and timeout. onProgress may be nil.
func NewPoller(api StatusAPI, cfg config.PollConfig, onProgress ProgressFunc) *Poller {
	return &Poller{
		api:        api,
		interval:   cfg.Interval(),
		timeout:    cfg.Timeout(),
		onProgress: onProgress,
	}
}

// WithInterval overrides the polling interval; d <= 0 is ignored.
func (p *Poller) WithInterval(d time.Duration) *Poller {
	if d > 0 {
		p.interval = d
	}
	return p
}

// Wait polls the job's status until it is terminal. A completed job's result is
// then fetched once and returned along with the last status.
func (p *Poller) Wait(ctx context.Context, jobID string) (*domain.AnalysisStatusResponse, *domain.AnalysisResultResponse[json.RawMessage], error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		status, err := p.api.GetAnalysisStatus(ctx, jobID)
		if err != nil {
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, nil, fmt.Errorf("job %s: %w", jobID, ErrPollTimeout)
			}
			return nil, nil, err
		}
		if status == nil {
			return nil, nil, fmt.Errorf("job %s: empty status response", jobID)
		}
		if p.onProgress != nil {
			p.onProgress(status)
		}

		switch status.Status {
		case domain.JobStatusCompleted:
			result, err := p.api.GetAnalysisResult(ctx, jobID)
			if err != nil {
				return status, nil, err
			}
			return status, result, nil
		case domain.JobStatusFailed:
			msg := ""
			if status.Error != nil {
				msg = *status.Error
			}
			return status, nil, &JobFailedError{JobID: jobID, Message: msg}
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return status, nil, fmt.Errorf("job %s: %w", jobID, ErrPollTimeout)
			}
			return status, nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
