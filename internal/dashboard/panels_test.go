package dashboard_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"parseai/internal/dashboard"
	"parseai/internal/domain"
	"parseai/mocks"
)

func runPanel(t *testing.T, api *mocks.MockDashboardAPI, key dashboard.PanelKey, env dashboard.Env, in dashboard.Input) (dashboard.Output, error) {
	t.Helper()
	p, ok := dashboard.NewRouter().Lookup(string(key))
	require.True(t, ok, "panel %s not registered", key)
	env.API = api
	return p.Run(context.Background(), env, in)
}

func queued(id string) *domain.JobResponse {
	return &domain.JobResponse{JobID: id, Status: domain.JobStatusPending, Message: "started"}
}

func TestSinglePanel_UploadsThenStarts(t *testing.T) {
	api := new(mocks.MockDashboardAPI)
	api.On("UploadFile", mock.Anything, "/tmp/scan.pdf").Return(&domain.UploadResponse{DocumentID: "d-new", FileName: "scan.pdf"}, nil)
	api.On("StartSingleDocumentAnalysis", mock.Anything, "d-new").Return(queued("j1"), nil)

	out, err := runPanel(t, api, dashboard.KeySingle, dashboard.Env{}, dashboard.Input{Files: []string{"/tmp/scan.pdf"}})

	require.NoError(t, err)
	assert.Equal(t, dashboard.KeySingle, out.Panel)
	require.Len(t, out.Uploads, 1)
	assert.Equal(t, "d-new", out.Uploads[0].DocumentID)
	assert.Equal(t, "j1", out.Job.JobID)
	assert.Nil(t, out.Status)
	api.AssertExpectations(t)
}

func TestSinglePanel_RejectsTwoDocuments(t *testing.T) {
	api := new(mocks.MockDashboardAPI)

	_, err := runPanel(t, api, dashboard.KeyXRay, dashboard.Env{}, dashboard.Input{DocumentIDs: []string{"a", "b"}})

	assert.ErrorIs(t, err, dashboard.ErrMissingInput)
	assert.Contains(t, err.Error(), "exactly 1 document(s)")
	api.AssertNotCalled(t, "StartXRayAnalysis", mock.Anything, mock.Anything)
}

func TestMultiPanel_NoDocuments(t *testing.T) {
	_, err := runPanel(t, new(mocks.MockDashboardAPI), dashboard.KeyBatch, dashboard.Env{}, dashboard.Input{})

	assert.ErrorIs(t, err, dashboard.ErrMissingInput)
	assert.Contains(t, err.Error(), "at least 1 document(s)")
}

func TestMultiPanel_UploadFailureKeepsEarlierUploads(t *testing.T) {
	api := new(mocks.MockDashboardAPI)
	api.On("UploadFile", mock.Anything, "a.pdf").Return(&domain.UploadResponse{DocumentID: "da"}, nil)
	api.On("UploadFile", mock.Anything, "b.pdf").Return(nil, errors.New("Invalid file type"))

	out, err := runPanel(t, api, dashboard.KeyComprehensive, dashboard.Env{}, dashboard.Input{Files: []string{"a.pdf", "b.pdf"}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "uploading b.pdf")
	require.Len(t, out.Uploads, 1)
	assert.Equal(t, "da", out.Uploads[0].DocumentID)
}

func TestMultiPanel_WaitsWithPoller(t *testing.T) {
	api := new(mocks.MockDashboardAPI)
	api.On("StartGeneralAnalysis", mock.Anything, []string{"d1", "d2"}).Return(queued("j2"), nil)
	api.On("GetAnalysisStatus", mock.Anything, "j2").Return(statusOf("j2", domain.JobStatusCompleted, 100), nil)
	api.On("GetAnalysisResult", mock.Anything, "j2").Return(&domain.AnalysisResultResponse[json.RawMessage]{
		JobID: "j2", Status: domain.JobStatusCompleted, Result: json.RawMessage(`{"documents":2}`),
	}, nil)

	env := dashboard.Env{Poller: fastPoller(api, nil)}
	out, err := runPanel(t, api, dashboard.KeyGeneral, env, dashboard.Input{DocumentIDs: []string{"d1", "d2"}})

	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusCompleted, out.Status.Status)
	assert.JSONEq(t, `{"documents":2}`, string(out.Result))
}

func TestCustomPanel(t *testing.T) {
	t.Run("requires instructions", func(t *testing.T) {
		_, err := runPanel(t, new(mocks.MockDashboardAPI), dashboard.KeyCustom, dashboard.Env{}, dashboard.Input{DocumentIDs: []string{"d1"}})
		assert.ErrorIs(t, err, dashboard.ErrMissingInput)
	})

	t.Run("forwards options", func(t *testing.T) {
		api := new(mocks.MockDashboardAPI)
		temp := 0.0
		api.On("StartCustomAnalysis", mock.Anything, mock.MatchedBy(func(p domain.CustomAnalysisPayload) bool {
			return p.CustomInstructions == "List every medication" &&
				p.Temperature != nil && *p.Temperature == 0 &&
				p.MaxCompletionTokens == nil &&
				len(p.DocumentIDs) == 1 && p.DocumentIDs[0] == "d1"
		})).Return(queued("j3"), nil)

		out, err := runPanel(t, api, dashboard.KeyCustom, dashboard.Env{}, dashboard.Input{
			DocumentIDs:  []string{"d1"},
			Instructions: "List every medication",
			Temperature:  &temp,
		})

		require.NoError(t, err)
		assert.Equal(t, "j3", out.Job.JobID)
		api.AssertExpectations(t)
	})
}

func TestCoDocumentPanel(t *testing.T) {
	t.Run("needs exactly two", func(t *testing.T) {
		_, err := runPanel(t, new(mocks.MockDashboardAPI), dashboard.KeyCoDocument, dashboard.Env{}, dashboard.Input{DocumentIDs: []string{"d1"}})
		assert.ErrorIs(t, err, dashboard.ErrMissingInput)
	})

	t.Run("maps ids in order", func(t *testing.T) {
		api := new(mocks.MockDashboardAPI)
		api.On("StartCoDocumentAnalysis", mock.Anything, domain.CoDocumentPayload{
			Document1ID: "d1", Document2ID: "d2", Doc1Type: "Invoice", Doc2Type: "Receipt",
		}).Return(queued("j4"), nil)

		out, err := runPanel(t, api, dashboard.KeyCoDocument, dashboard.Env{}, dashboard.Input{
			DocumentIDs: []string{"d1", "d2"}, Doc1Type: "Invoice", Doc2Type: "Receipt",
		})

		require.NoError(t, err)
		assert.Equal(t, "j4", out.Job.JobID)
	})
}

func TestBillPanel(t *testing.T) {
	t.Run("bill file overrides bill id", func(t *testing.T) {
		api := new(mocks.MockDashboardAPI)
		api.On("UploadFile", mock.Anything, "bill.pdf").Return(&domain.UploadResponse{DocumentID: "bill-up"}, nil)
		api.On("UploadFile", mock.Anything, "notes.pdf").Return(&domain.UploadResponse{DocumentID: "rec-up"}, nil)
		api.On("StartFraudDetection", mock.Anything, "bill-up", []string{"r1", "rec-up"}).Return(queued("j5"), nil)

		out, err := runPanel(t, api, dashboard.KeyFraudDetection, dashboard.Env{}, dashboard.Input{
			BillID:      "ignored",
			BillFile:    "bill.pdf",
			RecordIDs:   []string{"r1"},
			RecordFiles: []string{"notes.pdf"},
		})

		require.NoError(t, err)
		assert.Len(t, out.Uploads, 2)
		assert.Equal(t, "j5", out.Job.JobID)
		api.AssertExpectations(t)
	})

	t.Run("requires records", func(t *testing.T) {
		_, err := runPanel(t, new(mocks.MockDashboardAPI), dashboard.KeyMismatch, dashboard.Env{}, dashboard.Input{BillID: "b1"})
		assert.ErrorIs(t, err, dashboard.ErrMissingInput)
	})
}

func TestDashboardPanel_Overview(t *testing.T) {
	api := new(mocks.MockDashboardAPI)
	api.On("Health", mock.Anything).Return(&domain.HealthResponse{Status: "healthy", ActiveJobs: 2}, nil)

	out, err := runPanel(t, api, dashboard.KeyDashboard, dashboard.Env{}, dashboard.Input{})

	require.NoError(t, err)
	assert.Equal(t, dashboard.KeyDashboard, out.Panel)
	overview, ok := out.Data.(dashboard.Overview)
	require.True(t, ok)
	assert.Equal(t, "healthy", overview.Health.Status)
	assert.Equal(t, dashboard.SampleCategories(), overview.Categories)
	assert.Len(t, overview.Panels, 20)
}

func TestBrowsePanels(t *testing.T) {
	t.Run("samples list", func(t *testing.T) {
		api := new(mocks.MockDashboardAPI)
		api.On("GetSampleDocuments", mock.Anything, "medical").Return(&domain.SampleDocumentsResponse{Category: "medical", Count: 0}, nil)

		out, err := runPanel(t, api, dashboard.KeySamples, dashboard.Env{}, dashboard.Input{Category: "medical"})

		require.NoError(t, err)
		assert.IsType(t, &domain.SampleDocumentsResponse{}, out.Data)
	})

	t.Run("samples download", func(t *testing.T) {
		api := new(mocks.MockDashboardAPI)
		api.On("DownloadSampleDocument", mock.Anything, "xray", "xray/chest.png").Return(&domain.UploadResponse{DocumentID: "s1"}, nil)

		out, err := runPanel(t, api, dashboard.KeySamples, dashboard.Env{}, dashboard.Input{Category: "xray", BlobPath: "xray/chest.png"})

		require.NoError(t, err)
		require.Len(t, out.Uploads, 1)
		assert.Nil(t, out.Data)
	})

	t.Run("customer lookup error leaves data unset", func(t *testing.T) {
		api := new(mocks.MockDashboardAPI)
		api.On("GetCustomer", mock.Anything, "CUST9").Return(nil, errors.New("Customer CUST9 not found"))

		out, err := runPanel(t, api, dashboard.KeyCustomers, dashboard.Env{}, dashboard.Input{CustomerID: "CUST9"})

		assert.EqualError(t, err, "Customer CUST9 not found")
		assert.Nil(t, out.Data)
		assert.Equal(t, dashboard.KeyCustomers, out.Panel)
	})

	t.Run("customer documents need an id", func(t *testing.T) {
		_, err := runPanel(t, new(mocks.MockDashboardAPI), dashboard.KeyCustomerDocuments, dashboard.Env{}, dashboard.Input{})
		assert.ErrorIs(t, err, dashboard.ErrMissingInput)
	})

	t.Run("result", func(t *testing.T) {
		api := new(mocks.MockDashboardAPI)
		api.On("GetAnalysisResult", mock.Anything, "j9").Return(&domain.AnalysisResultResponse[json.RawMessage]{
			JobID: "j9", Result: json.RawMessage(`{"ok":true}`),
		}, nil)

		out, err := runPanel(t, api, dashboard.KeyResult, dashboard.Env{}, dashboard.Input{JobID: "j9"})

		require.NoError(t, err)
		assert.JSONEq(t, `{"ok":true}`, string(out.Result))
	})
}
