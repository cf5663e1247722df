package analyzer_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parseai/internal/analyzer"
	"parseai/internal/domain"
	"parseai/internal/port"
)

func docs(contents ...string) []port.AnalysisDocument {
	out := make([]port.AnalysisDocument, len(contents))
	for i, c := range contents {
		id := string(rune('a' + i))
		out[i] = port.AnalysisDocument{
			Document: domain.Document{ID: id, FileName: id + ".pdf", ContentType: "application/pdf"},
			Content:  []byte(c),
		}
	}
	return out
}

func decodeReport(t *testing.T, raw json.RawMessage) analyzer.Report {
	t.Helper()
	var r analyzer.Report
	require.NoError(t, json.Unmarshal(raw, &r))
	return r
}

func TestPlaceholder_CoversEveryJobType(t *testing.T) {
	types := analyzer.NewPlaceholder().JobTypes()
	assert.Len(t, types, 13)
	assert.Contains(t, types, domain.JobTypeCoDocument)
	assert.Contains(t, types, domain.JobTypeRevenueLeakage)
}

func TestPlaceholder_Describe(t *testing.T) {
	var progress []int
	raw, err := analyzer.NewPlaceholder().Analyze(context.Background(), port.AnalysisInput{
		Job:       domain.Job{ID: "j", Type: domain.JobTypeBatch},
		Documents: docs("one", "two"),
		Progress:  func(p int) { progress = append(progress, p) },
	})
	require.NoError(t, err)

	r := decodeReport(t, raw)
	assert.Equal(t, analyzer.EngineName, r.Engine)
	assert.Equal(t, domain.JobTypeBatch, r.JobType)
	require.Len(t, r.Documents, 2)
	assert.Equal(t, int64(3), r.Documents[0].Size)
	assert.Len(t, r.Documents[0].SHA256, 64)
	assert.Equal(t, []int{50, 90, 100}, progress)
}

func TestPlaceholder_BillRecordsRoles(t *testing.T) {
	params, _ := json.Marshal(domain.BillRecordsParams{BillID: "a", MedicalRecordIDs: []string{"b"}})

	raw, err := analyzer.NewPlaceholder().Analyze(context.Background(), port.AnalysisInput{
		Job:       domain.Job{Type: domain.JobTypeFraudDetection, Params: params},
		Documents: docs("bill", "record"),
	})
	require.NoError(t, err)

	r := decodeReport(t, raw)
	assert.Equal(t, "bill", r.Documents[0].Role)
	assert.Equal(t, "medical_record", r.Documents[1].Role)
	assert.Equal(t, "a", r.Details["billId"])
}

func TestPlaceholder_CustomEchoesParams(t *testing.T) {
	params, _ := json.Marshal(domain.CustomParams{Instructions: "find totals", ModelName: "gpt-4o", DocumentType: "Invoice", OutputFormat: "JSON"})

	raw, err := analyzer.NewPlaceholder().Analyze(context.Background(), port.AnalysisInput{
		Job:       domain.Job{Type: domain.JobTypeCustom, Params: params},
		Documents: docs("x"),
	})
	require.NoError(t, err)

	r := decodeReport(t, raw)
	assert.Equal(t, "find totals", r.Details["instructions"])
	assert.Equal(t, "custom Invoice analysis of 1 document(s)", r.Summary)
}

func TestPlaceholder_CoDocument(t *testing.T) {
	params, _ := json.Marshal(domain.CoDocumentParams{Doc1Type: "Bill", Doc2Type: "Receipt"})
	reg := analyzer.NewPlaceholder()

	raw, err := reg.Analyze(context.Background(), port.AnalysisInput{
		Job:       domain.Job{Type: domain.JobTypeCoDocument, Params: params},
		Documents: docs("same", "same"),
	})
	require.NoError(t, err)
	r := decodeReport(t, raw)
	assert.Equal(t, true, r.Details["identical"])
	assert.Equal(t, "Bill", r.Documents[0].Role)
	assert.Equal(t, "Receipt", r.Documents[1].Role)

	_, err = reg.Analyze(context.Background(), port.AnalysisInput{
		Job:       domain.Job{Type: domain.JobTypeCoDocument, Params: params},
		Documents: docs("only one"),
	})
	assert.ErrorIs(t, err, domain.ErrTwoDocuments)
}

func TestRegistry_UnknownJobType(t *testing.T) {
	_, err := analyzer.NewRegistry().Analyze(context.Background(), port.AnalysisInput{Job: domain.Job{Type: "astrology"}})

	var unknown *analyzer.UnknownJobTypeError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, domain.JobType("astrology"), unknown.JobType)
}

func TestRegistry_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := analyzer.NewPlaceholder().Analyze(ctx, port.AnalysisInput{
		Job:       domain.Job{Type: domain.JobTypeGeneral},
		Documents: docs("x"),
	})
	assert.ErrorIs(t, err, context.Canceled)
}
