package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"parseai/internal/domain"
	"parseai/internal/port"
)

// JobWorkerConfig holds settings for the job worker.
type JobWorkerConfig struct {
	PollInterval time.Duration
	Concurrency  int
	// JobTimeout bounds a single analysis run.
	JobTimeout time.Duration
}

// JobWorker polls for pending analysis jobs and runs them through an Analyzer.
type JobWorker struct {
	jobRepo  port.JobRepository
	docs     DocumentService
	analyzer port.Analyzer
	cfg      JobWorkerConfig
	wg       sync.WaitGroup
}

// NewJobWorker creates a new JobWorker.
func NewJobWorker(jobRepo port.JobRepository, docs DocumentService, analyzer port.Analyzer, cfg JobWorkerConfig) *JobWorker {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 5 * time.Minute
	}
	return &JobWorker{
		jobRepo:  jobRepo,
		docs:     docs,
		analyzer: analyzer,
		cfg:      cfg,
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight jobs have finished.
func (w *JobWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	log.Printf("jobWorker: started (poll=%s, concurrency=%d)", w.cfg.PollInterval, w.cfg.Concurrency)

	for {
		select {
		case <-ctx.Done():
			log.Printf("jobWorker: shutting down, waiting for in-flight jobs...")
			w.wg.Wait()
			log.Printf("jobWorker: shutdown complete")
			return
		case <-ticker.C:
			available := w.cfg.Concurrency - len(sem)
			if available <= 0 {
				continue
			}

			jobs, err := w.jobRepo.ClaimPending(ctx, available)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				log.Printf("jobWorker: ClaimPending error: %v", err)
				continue
			}

			for i := range jobs {
				job := jobs[i]

				sem <- struct{}{}
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-sem }()

					// In-flight jobs finish even when the poll context is canceled.
					runCtx, cancel := context.WithTimeout(context.Background(), w.cfg.JobTimeout)
					defer cancel()

					w.Run(runCtx, &job)
				}()
			}
		}
	}
}

// Run executes one claimed job and records its terminal state.
func (w *JobWorker) Run(ctx context.Context, job *domain.Job) {
	log.Printf("jobWorker: running job %s (%s, attempt %d)", job.ID, job.Type, job.Attempts)

	result, err := w.analyze(ctx, job)
	if err != nil {
		log.Printf("jobWorker: job %s failed: %v", job.ID, err)
		if ferr := w.jobRepo.Fail(ctx, job.ID, err.Error()); ferr != nil {
			log.Printf("jobWorker: recording failure of job %s: %v", job.ID, ferr)
		}
		return
	}

	if err := w.jobRepo.Complete(ctx, job.ID, result); err != nil {
		log.Printf("jobWorker: recording completion of job %s: %v", job.ID, err)
		return
	}
	log.Printf("jobWorker: job %s completed (%d bytes)", job.ID, len(result))
}

func (w *JobWorker) analyze(ctx context.Context, job *domain.Job) ([]byte, error) {
	input := port.AnalysisInput{
		Job:       *job,
		Documents: make([]port.AnalysisDocument, 0, len(job.DocumentIDs)),
		Progress: func(percent int) {
			if err := w.jobRepo.UpdateProgress(ctx, job.ID, clampPercent(percent)); err != nil {
				log.Printf("jobWorker: progress update for job %s: %v", job.ID, err)
			}
		},
	}

	for _, id := range job.DocumentIDs {
		doc, content, err := w.docs.Open(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("loading document %s: %w", id, err)
		}
		input.Documents = append(input.Documents, port.AnalysisDocument{Document: *doc, Content: content})
	}
	input.Progress(10)

	result, err := w.analyzer.Analyze(ctx, input)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func clampPercent(p int) int {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}
