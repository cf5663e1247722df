package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"parseai/internal/domain"
	"parseai/internal/port"
)

var startMessages = map[domain.JobType]string{
	domain.JobTypeComprehensive:  "Comprehensive analysis started",
	domain.JobTypeSingle:         "Single document analysis started",
	domain.JobTypeBatch:          "Batch analysis started",
	domain.JobTypeGeneral:        "General document analysis started",
	domain.JobTypeFraud:          "Fraud analysis started",
	domain.JobTypeFraudDetection: "Fraud detection analysis started",
	domain.JobTypeRevenueLeakage: "Revenue leakage analysis started",
	domain.JobTypeMismatch:       "Mismatch analysis started",
	domain.JobTypeXRay:           "X-ray analysis started",
	domain.JobTypeFakeDocument:   "Fake document detection analysis started",
	domain.JobTypeTampering:      "Tampering detection analysis started",
	domain.JobTypeCoDocument:     "Co-document comparison analysis started",
}

// AnalysisService validates analysis requests, records jobs and reports their progress.
type AnalysisService interface {
	// StartMulti starts a job over several documents (comprehensive, batch, general).
	StartMulti(ctx context.Context, jobType domain.JobType, documentIDs []string) (*domain.JobResponse, error)
	// StartSingle starts a job over one document (single, xray, fake_document, tampering).
	StartSingle(ctx context.Context, jobType domain.JobType, documentID string) (*domain.JobResponse, error)
	// StartBillRecords starts a bill-versus-medical-records job (fraud, fraud_detection,
	// revenue_leakage, mismatch).
	StartBillRecords(ctx context.Context, jobType domain.JobType, payload domain.BillRecordsPayload) (*domain.JobResponse, error)
	StartCustom(ctx context.Context, payload domain.CustomAnalysisPayload) (*domain.JobResponse, error)
	StartCoDocument(ctx context.Context, payload domain.CoDocumentPayload) (*domain.JobResponse, error)

	GetStatus(ctx context.Context, jobID string) (*domain.AnalysisStatusResponse, error)
	GetResult(ctx context.Context, jobID string) (*domain.AnalysisResultResponse[json.RawMessage], error)
	ActiveJobs(ctx context.Context) (int, error)
}

type analysisService struct {
	docRepo port.DocumentRepository
	jobRepo port.JobRepository
	now     func() time.Time
}

// NewAnalysisService creates a new AnalysisService implementation.
func NewAnalysisService(docRepo port.DocumentRepository, jobRepo port.JobRepository) AnalysisService {
	return &analysisService{
		docRepo: docRepo,
		jobRepo: jobRepo,
		now:     time.Now,
	}
}

func (s *analysisService) StartMulti(ctx context.Context, jobType domain.JobType, documentIDs []string) (*domain.JobResponse, error) {
	if len(documentIDs) == 0 {
		return nil, domain.ErrNoDocuments
	}
	for _, id := range documentIDs {
		if err := s.requireDocument(ctx, id, "Document %s not found", id); err != nil {
			return nil, err
		}
	}
	return s.enqueue(ctx, jobType, documentIDs, nil, startMessages[jobType])
}

func (s *analysisService) StartSingle(ctx context.Context, jobType domain.JobType, documentID string) (*domain.JobResponse, error) {
	if documentID == "" {
		return nil, domain.ErrNoDocument
	}
	if err := s.requireDocument(ctx, documentID, "Document not found"); err != nil {
		return nil, err
	}
	return s.enqueue(ctx, jobType, []string{documentID}, nil, startMessages[jobType])
}

func (s *analysisService) StartBillRecords(ctx context.Context, jobType domain.JobType, payload domain.BillRecordsPayload) (*domain.JobResponse, error) {
	if payload.BillID == "" || len(payload.MedicalRecordIDs) == 0 {
		return nil, domain.ErrBillAndRecords
	}
	if err := s.requireDocument(ctx, payload.BillID, "Bill document not found"); err != nil {
		return nil, err
	}
	for _, id := range payload.MedicalRecordIDs {
		if err := s.requireDocument(ctx, id, "Medical record %s not found", id); err != nil {
			return nil, err
		}
	}

	ids := append([]string{payload.BillID}, payload.MedicalRecordIDs...)
	params := domain.BillRecordsParams{BillID: payload.BillID, MedicalRecordIDs: payload.MedicalRecordIDs}
	return s.enqueue(ctx, jobType, ids, params, startMessages[jobType])
}

func (s *analysisService) StartCustom(ctx context.Context, payload domain.CustomAnalysisPayload) (*domain.JobResponse, error) {
	if len(payload.DocumentIDs) == 0 {
		return nil, domain.ErrNoDocuments
	}
	if payload.CustomInstructions == "" {
		return nil, domain.ErrInstructionsMissing
	}
	for _, id := range payload.DocumentIDs {
		if err := s.requireDocument(ctx, id, "Document %s not found", id); err != nil {
			return nil, err
		}
	}

	params := resolveCustomParams(payload)
	msg := fmt.Sprintf("Custom %s analysis started", params.DocumentType)
	return s.enqueue(ctx, domain.JobTypeCustom, payload.DocumentIDs, params, msg)
}

func (s *analysisService) StartCoDocument(ctx context.Context, payload domain.CoDocumentPayload) (*domain.JobResponse, error) {
	if payload.Document1ID == "" || payload.Document2ID == "" {
		return nil, domain.ErrTwoDocuments
	}
	if err := s.requireDocument(ctx, payload.Document1ID, "Document 1 not found"); err != nil {
		return nil, err
	}
	if err := s.requireDocument(ctx, payload.Document2ID, "Document 2 not found"); err != nil {
		return nil, err
	}

	params := domain.CoDocumentParams{Doc1Type: payload.Doc1Type, Doc2Type: payload.Doc2Type}
	if params.Doc1Type == "" {
		params.Doc1Type = "Document 1"
	}
	if params.Doc2Type == "" {
		params.Doc2Type = "Document 2"
	}
	ids := []string{payload.Document1ID, payload.Document2ID}
	return s.enqueue(ctx, domain.JobTypeCoDocument, ids, params, startMessages[domain.JobTypeCoDocument])
}

func (s *analysisService) GetStatus(ctx context.Context, jobID string) (*domain.AnalysisStatusResponse, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	progress := job.Progress
	resp := &domain.AnalysisStatusResponse{
		JobID:     job.ID,
		Status:    job.Status,
		Progress:  &progress,
		JobType:   job.Type,
		CreatedAt: domain.NewTimestamp(job.CreatedAt),
	}
	if job.CompletedAt != nil {
		ts := domain.NewTimestamp(*job.CompletedAt)
		resp.CompletedAt = &ts
	}
	if job.Error != "" {
		msg := job.Error
		resp.Error = &msg
	}
	if job.Status == domain.JobStatusCompleted && len(job.Result) > 0 {
		resp.Result = job.Result
	}
	return resp, nil
}

func (s *analysisService) GetResult(ctx context.Context, jobID string) (*domain.AnalysisResultResponse[json.RawMessage], error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusCompleted {
		return nil, domain.ErrJobNotCompleted
	}
	return &domain.AnalysisResultResponse[json.RawMessage]{
		JobID:  job.ID,
		Status: job.Status,
		Result: job.Result,
	}, nil
}

func (s *analysisService) ActiveJobs(ctx context.Context) (int, error) {
	return s.jobRepo.CountByStatus(ctx, domain.JobStatusProcessing)
}

func (s *analysisService) requireDocument(ctx context.Context, id, format string, args ...any) error {
	_, err := s.docRepo.GetByID(ctx, id)
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrDocumentNotFound) {
		return domain.WithMessage(domain.ErrDocumentNotFound, format, args...)
	}
	return fmt.Errorf("looking up document %s: %w", id, err)
}

func (s *analysisService) enqueue(ctx context.Context, jobType domain.JobType, documentIDs []string, params any, message string) (*domain.JobResponse, error) {
	job := &domain.Job{
		ID:          uuid.New().String(),
		Type:        jobType,
		DocumentIDs: documentIDs,
		Status:      domain.JobStatusPending,
		CreatedAt:   s.now().UTC(),
	}
	if params != nil {
		raw, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("encoding %s job params: %w", jobType, err)
		}
		job.Params = raw
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("creating %s job: %w", jobType, err)
	}

	log.Printf("analysisService.enqueue: job %s (%s) queued for %d document(s)", job.ID, jobType, len(documentIDs))
	return &domain.JobResponse{
		JobID:   job.ID,
		Status:  job.Status,
		Message: message,
	}, nil
}

func resolveCustomParams(p domain.CustomAnalysisPayload) domain.CustomParams {
	out := domain.CustomParams{
		Instructions:        p.CustomInstructions,
		ModelName:           p.ModelName,
		Temperature:         domain.DefaultCustomTemperature,
		MaxCompletionTokens: domain.DefaultCustomMaxTokens,
		DocumentType:        p.DocumentType,
		OutputFormat:        p.OutputFormat,
	}
	if out.ModelName == "" {
		out.ModelName = domain.DefaultCustomModel
	}
	if p.Temperature != nil {
		out.Temperature = *p.Temperature
	}
	switch {
	case p.MaxCompletionTokens != nil:
		out.MaxCompletionTokens = *p.MaxCompletionTokens
	case p.MaxTokens != nil:
		out.MaxCompletionTokens = *p.MaxTokens
	}
	if out.DocumentType == "" {
		out.DocumentType = domain.DefaultCustomDocumentType
	}
	if out.OutputFormat == "" {
		out.OutputFormat = domain.DefaultCustomOutputFormat
	}
	return out
}
