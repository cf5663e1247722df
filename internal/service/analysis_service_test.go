package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"parseai/internal/domain"
	"parseai/internal/port"
	"parseai/internal/repository/memory"
	"parseai/internal/service"
	"parseai/mocks"
)

func newAnalysisService(t *testing.T, docIDs ...string) (service.AnalysisService, port.JobRepository) {
	t.Helper()
	docs := memory.NewDocumentRepo()
	for _, id := range docIDs {
		require.NoError(t, docs.Create(context.Background(), &domain.Document{ID: id, FileName: id + ".pdf", UploadedAt: time.Now()}))
	}
	jobs := memory.NewJobRepo()
	return service.NewAnalysisService(docs, jobs), jobs
}

func TestAnalysisService_StartMulti_Success(t *testing.T) {
	svc, jobs := newAnalysisService(t, "d1", "d2")

	resp, err := svc.StartMulti(context.Background(), domain.JobTypeComprehensive, []string{"d1", "d2"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.JobID)
	assert.Equal(t, domain.JobStatusPending, resp.Status)
	assert.Equal(t, "Comprehensive analysis started", resp.Message)

	job, err := jobs.GetByID(context.Background(), resp.JobID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobTypeComprehensive, job.Type)
	assert.Equal(t, []string{"d1", "d2"}, job.DocumentIDs)
}

func TestAnalysisService_ValidationMessages(t *testing.T) {
	svc, _ := newAnalysisService(t, "d1", "bill")
	ctx := context.Background()

	tests := []struct {
		name    string
		run     func() error
		is      error
		message string
	}{
		{
			name:    "multi without documents",
			run:     func() error { _, err := svc.StartMulti(ctx, domain.JobTypeBatch, nil); return err },
			is:      domain.ErrNoDocuments,
			message: "no documents provided",
		},
		{
			name:    "multi with unknown document",
			run:     func() error { _, err := svc.StartMulti(ctx, domain.JobTypeBatch, []string{"d1", "ghost"}); return err },
			is:      domain.ErrDocumentNotFound,
			message: "Document ghost not found",
		},
		{
			name:    "single with unknown document",
			run:     func() error { _, err := svc.StartSingle(ctx, domain.JobTypeXRay, "ghost"); return err },
			is:      domain.ErrDocumentNotFound,
			message: "Document not found",
		},
		{
			name:    "single without id",
			run:     func() error { _, err := svc.StartSingle(ctx, domain.JobTypeXRay, ""); return err },
			is:      domain.ErrNoDocument,
			message: "no document provided",
		},
		{
			name: "bill missing records",
			run: func() error {
				_, err := svc.StartBillRecords(ctx, domain.JobTypeFraud, domain.BillRecordsPayload{BillID: "bill"})
				return err
			},
			is:      domain.ErrBillAndRecords,
			message: "bill and medical records required",
		},
		{
			name: "unknown bill",
			run: func() error {
				_, err := svc.StartBillRecords(ctx, domain.JobTypeFraud, domain.BillRecordsPayload{BillID: "ghost", MedicalRecordIDs: []string{"d1"}})
				return err
			},
			is:      domain.ErrDocumentNotFound,
			message: "Bill document not found",
		},
		{
			name: "unknown medical record",
			run: func() error {
				_, err := svc.StartBillRecords(ctx, domain.JobTypeMismatch, domain.BillRecordsPayload{BillID: "bill", MedicalRecordIDs: []string{"r9"}})
				return err
			},
			is:      domain.ErrDocumentNotFound,
			message: "Medical record r9 not found",
		},
		{
			name: "custom without instructions",
			run: func() error {
				_, err := svc.StartCustom(ctx, domain.CustomAnalysisPayload{DocumentIDs: []string{"d1"}})
				return err
			},
			is:      domain.ErrInstructionsMissing,
			message: "custom instructions are required",
		},
		{
			name: "co-document missing second",
			run: func() error {
				_, err := svc.StartCoDocument(ctx, domain.CoDocumentPayload{Document1ID: "d1"})
				return err
			},
			is:      domain.ErrTwoDocuments,
			message: "two documents required",
		},
		{
			name: "co-document unknown second",
			run: func() error {
				_, err := svc.StartCoDocument(ctx, domain.CoDocumentPayload{Document1ID: "d1", Document2ID: "ghost"})
				return err
			},
			is:      domain.ErrDocumentNotFound,
			message: "Document 2 not found",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.is)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestAnalysisService_StartCustom_AppliesDefaults(t *testing.T) {
	svc, jobs := newAnalysisService(t, "d1")

	resp, err := svc.StartCustom(context.Background(), domain.CustomAnalysisPayload{
		DocumentIDs:        []string{"d1"},
		CustomInstructions: "List every medication",
		DocumentType:       "Prescription",
	})
	require.NoError(t, err)
	assert.Equal(t, "Custom Prescription analysis started", resp.Message)

	job, err := jobs.GetByID(context.Background(), resp.JobID)
	require.NoError(t, err)

	var params domain.CustomParams
	require.NoError(t, json.Unmarshal(job.Params, &params))
	assert.Equal(t, "List every medication", params.Instructions)
	assert.Equal(t, domain.DefaultCustomModel, params.ModelName)
	assert.Equal(t, domain.DefaultCustomTemperature, params.Temperature)
	assert.Equal(t, domain.DefaultCustomMaxTokens, params.MaxCompletionTokens)
	assert.Equal(t, domain.DefaultCustomOutputFormat, params.OutputFormat)
}

func TestAnalysisService_StartCustom_KeepsExplicitZeroTemperature(t *testing.T) {
	svc, jobs := newAnalysisService(t, "d1")
	zero := 0.0

	resp, err := svc.StartCustom(context.Background(), domain.CustomAnalysisPayload{
		DocumentIDs:        []string{"d1"},
		CustomInstructions: "x",
		Temperature:        &zero,
	})
	require.NoError(t, err)
	assert.Equal(t, "Custom "+domain.DefaultCustomDocumentType+" analysis started", resp.Message)

	job, _ := jobs.GetByID(context.Background(), resp.JobID)
	var params domain.CustomParams
	require.NoError(t, json.Unmarshal(job.Params, &params))
	assert.Equal(t, 0.0, params.Temperature)
}

func TestAnalysisService_StartCustom_MaxTokensAlias(t *testing.T) {
	intPtr := func(n int) *int { return &n }
	tests := []struct {
		name       string
		completion *int
		alias      *int
		want       int
	}{
		{"alias only", nil, intPtr(2000), 2000},
		{"both set, max_completion_tokens wins", intPtr(1500), intPtr(2000), 1500},
		{"neither set", nil, nil, domain.DefaultCustomMaxTokens},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, jobs := newAnalysisService(t, "d1")

			resp, err := svc.StartCustom(context.Background(), domain.CustomAnalysisPayload{
				DocumentIDs:         []string{"d1"},
				CustomInstructions:  "Summarise",
				MaxCompletionTokens: tt.completion,
				MaxTokens:           tt.alias,
			})
			require.NoError(t, err)

			job, _ := jobs.GetByID(context.Background(), resp.JobID)
			var params domain.CustomParams
			require.NoError(t, json.Unmarshal(job.Params, &params))
			assert.Equal(t, tt.want, params.MaxCompletionTokens)
		})
	}
}

func TestAnalysisService_StartCoDocument_DefaultLabels(t *testing.T) {
	svc, jobs := newAnalysisService(t, "d1", "d2")

	resp, err := svc.StartCoDocument(context.Background(), domain.CoDocumentPayload{Document1ID: "d1", Document2ID: "d2", Doc2Type: "Invoice"})
	require.NoError(t, err)

	job, _ := jobs.GetByID(context.Background(), resp.JobID)
	var params domain.CoDocumentParams
	require.NoError(t, json.Unmarshal(job.Params, &params))
	assert.Equal(t, "Document 1", params.Doc1Type)
	assert.Equal(t, "Invoice", params.Doc2Type)
}

func TestAnalysisService_StatusAndResult(t *testing.T) {
	svc, jobs := newAnalysisService(t, "d1")
	ctx := context.Background()

	resp, err := svc.StartSingle(ctx, domain.JobTypeSingle, "d1")
	require.NoError(t, err)

	status, err := svc.GetStatus(ctx, resp.JobID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusPending, status.Status)
	require.NotNil(t, status.Progress)
	assert.Equal(t, 0, *status.Progress)
	assert.Nil(t, status.Result)

	_, err = svc.GetResult(ctx, resp.JobID)
	assert.ErrorIs(t, err, domain.ErrJobNotCompleted)

	_, err = jobs.ClaimPending(ctx, 1)
	require.NoError(t, err)
	active, err := svc.ActiveJobs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, active)

	require.NoError(t, jobs.Complete(ctx, resp.JobID, []byte(`{"summary":"done"}`)))

	status, err = svc.GetStatus(ctx, resp.JobID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusCompleted, status.Status)
	assert.Equal(t, 100, *status.Progress)
	assert.NotNil(t, status.CompletedAt)
	assert.JSONEq(t, `{"summary":"done"}`, string(status.Result))

	result, err := svc.GetResult(ctx, resp.JobID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"summary":"done"}`, string(result.Result))
}

func TestAnalysisService_GetStatus_UnknownJob(t *testing.T) {
	svc, _ := newAnalysisService(t)

	_, err := svc.GetStatus(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrJobNotFound)
}

func TestAnalysisService_RepositoryFailure(t *testing.T) {
	docRepo := new(mocks.MockDocumentRepo)
	jobRepo := new(mocks.MockJobRepo)
	svc := service.NewAnalysisService(docRepo, jobRepo)

	docRepo.On("GetByID", mock.Anything, "d1").Return(&domain.Document{ID: "d1"}, nil)
	jobRepo.On("Create", mock.Anything, mock.MatchedBy(func(j *domain.Job) bool {
		return j.Type == domain.JobTypeTampering && j.Status == domain.JobStatusPending && len(j.DocumentIDs) == 1
	})).Return(errors.New("connection refused"))

	_, err := svc.StartSingle(context.Background(), domain.JobTypeTampering, "d1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.NotErrorIs(t, err, domain.ErrDocumentNotFound)

	docRepo.AssertExpectations(t)
	jobRepo.AssertExpectations(t)
}
