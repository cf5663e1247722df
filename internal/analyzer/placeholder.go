package analyzer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"parseai/internal/domain"
	"parseai/internal/port"
)

// EngineName identifies results produced by the placeholder workflows.
const EngineName = "placeholder"

// DocumentDigest describes one analyzed input document.
type DocumentDigest struct {
	DocumentID  string `json:"documentId"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	SHA256      string `json:"sha256"`
	Role        string `json:"role,omitempty"`
}

// Report is the result payload of every placeholder workflow. It describes the
// inputs deterministically and carries no model output.
type Report struct {
	Engine    string           `json:"engine"`
	JobType   domain.JobType   `json:"jobType"`
	Summary   string           `json:"summary"`
	Documents []DocumentDigest `json:"documents"`
	Details   map[string]any   `json:"details,omitempty"`
}

// NewPlaceholder returns a Registry with a workflow for every job type. The
// workflows inspect document bytes only; no inference is performed.
func NewPlaceholder() *Registry {
	r := NewRegistry()
	for _, t := range []domain.JobType{
		domain.JobTypeComprehensive,
		domain.JobTypeSingle,
		domain.JobTypeBatch,
		domain.JobTypeGeneral,
		domain.JobTypeXRay,
		domain.JobTypeFakeDocument,
		domain.JobTypeTampering,
	} {
		r.Register(t, describeWorkflow)
	}
	for _, t := range []domain.JobType{
		domain.JobTypeFraud,
		domain.JobTypeFraudDetection,
		domain.JobTypeRevenueLeakage,
		domain.JobTypeMismatch,
	} {
		r.Register(t, billRecordsWorkflow)
	}
	r.Register(domain.JobTypeCustom, customWorkflow)
	r.Register(domain.JobTypeCoDocument, coDocumentWorkflow)
	return r
}

func describeWorkflow(ctx context.Context, input port.AnalysisInput) (any, error) {
	digests, err := digestAll(ctx, input, nil)
	if err != nil {
		return nil, err
	}
	return &Report{
		Engine:    EngineName,
		JobType:   input.Job.Type,
		Summary:   fmt.Sprintf("%d document(s) received for %s analysis", len(digests), input.Job.Type),
		Documents: digests,
	}, nil
}

func billRecordsWorkflow(ctx context.Context, input port.AnalysisInput) (any, error) {
	var params domain.BillRecordsParams
	if err := decodeParams(input.Job.Params, &params); err != nil {
		return nil, err
	}
	digests, err := digestAll(ctx, input, func(d domain.Document) string {
		if d.ID == params.BillID {
			return "bill"
		}
		return "medical_record"
	})
	if err != nil {
		return nil, err
	}
	return &Report{
		Engine:    EngineName,
		JobType:   input.Job.Type,
		Summary:   fmt.Sprintf("bill %s compared against %d medical record(s)", params.BillID, len(params.MedicalRecordIDs)),
		Documents: digests,
		Details: map[string]any{
			"billId":           params.BillID,
			"medicalRecordIds": params.MedicalRecordIDs,
		},
	}, nil
}

func customWorkflow(ctx context.Context, input port.AnalysisInput) (any, error) {
	var params domain.CustomParams
	if err := decodeParams(input.Job.Params, &params); err != nil {
		return nil, err
	}
	digests, err := digestAll(ctx, input, nil)
	if err != nil {
		return nil, err
	}
	return &Report{
		Engine:    EngineName,
		JobType:   input.Job.Type,
		Summary:   fmt.Sprintf("custom %s analysis of %d document(s)", params.DocumentType, len(digests)),
		Documents: digests,
		Details: map[string]any{
			"instructions":        params.Instructions,
			"modelName":           params.ModelName,
			"temperature":         params.Temperature,
			"maxCompletionTokens": params.MaxCompletionTokens,
			"documentType":        params.DocumentType,
			"outputFormat":        params.OutputFormat,
		},
	}, nil
}

func coDocumentWorkflow(ctx context.Context, input port.AnalysisInput) (any, error) {
	var params domain.CoDocumentParams
	if err := decodeParams(input.Job.Params, &params); err != nil {
		return nil, err
	}
	if len(input.Documents) != 2 {
		return nil, domain.ErrTwoDocuments
	}
	labels := []string{params.Doc1Type, params.Doc2Type}
	i := 0
	digests, err := digestAll(ctx, input, func(domain.Document) string {
		l := labels[i]
		i++
		return l
	})
	if err != nil {
		return nil, err
	}
	return &Report{
		Engine:    EngineName,
		JobType:   input.Job.Type,
		Summary:   fmt.Sprintf("%s compared with %s", params.Doc1Type, params.Doc2Type),
		Documents: digests,
		Details: map[string]any{
			"identical": digests[0].SHA256 == digests[1].SHA256,
		},
	}, nil
}

// digestAll hashes every input document, reporting progress between 10 and 90
// percent. role may be nil.
func digestAll(ctx context.Context, input port.AnalysisInput, role func(domain.Document) string) ([]DocumentDigest, error) {
	out := make([]DocumentDigest, 0, len(input.Documents))
	for i, d := range input.Documents {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sum := sha256.Sum256(d.Content)
		dg := DocumentDigest{
			DocumentID:  d.Document.ID,
			FileName:    d.Document.FileName,
			ContentType: d.Document.ContentType,
			Size:        int64(len(d.Content)),
			SHA256:      hex.EncodeToString(sum[:]),
		}
		if role != nil {
			dg.Role = role(d.Document)
		}
		out = append(out, dg)
		input.Progress(10 + 80*(i+1)/len(input.Documents))
	}
	return out, nil
}

func decodeParams(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decoding job params: %w", err)
	}
	return nil
}
