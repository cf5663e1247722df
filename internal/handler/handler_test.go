package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"parseai/internal/domain"
	"parseai/internal/handler"
	"parseai/internal/router"
	"parseai/internal/service"
	"parseai/mocks"
)

const testUploadLimit = 1 << 20

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	engine    *gin.Engine
	docs      *mocks.MockDocumentService
	analysis  *mocks.MockAnalysisService
	samples   *mocks.MockSampleService
	customers *mocks.MockCustomerService
}

func newFixture() *fixture {
	f := &fixture{
		docs:      new(mocks.MockDocumentService),
		analysis:  new(mocks.MockAnalysisService),
		samples:   new(mocks.MockSampleService),
		customers: new(mocks.MockCustomerService),
	}
	f.engine = router.Setup(router.Handlers{
		Document: handler.NewDocumentHandler(f.docs, testUploadLimit),
		Analysis: handler.NewAnalysisHandler(f.analysis),
		Sample:   handler.NewSampleHandler(f.samples),
		Customer: handler.NewCustomerHandler(f.customers),
		Health:   handler.NewHealthHandler(f.analysis, true),
	}, []string{"http://localhost:3000"})
	return f
}

func (f *fixture) do(method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	if body == nil {
		body = http.NoBody
	}
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	f.engine.ServeHTTP(w, req)
	return w
}

func (f *fixture) postJSON(path, body string) *httptest.ResponseRecorder {
	return f.do(http.MethodPost, path, strings.NewReader(body), "application/json")
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp domain.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp.Error
}

func multipartFile(t *testing.T, field, name, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		part, err := mw.CreateFormFile(field, name)
		require.NoError(t, err)
		_, _ = io.WriteString(part, content)
	} else {
		require.NoError(t, mw.WriteField("note", "no file here"))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

// --- Index and health ---

func TestHealthHandler_Index(t *testing.T) {
	f := newFixture()
	w := f.do(http.MethodGet, "/", nil, "")

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Parse-AI Document Analysis API", body["name"])
	assert.Equal(t, handler.APIVersion, body["version"])
}

func TestHealthHandler_Health(t *testing.T) {
	f := newFixture()
	f.analysis.On("ActiveJobs", mock.Anything).Return(3, nil)

	w := f.do(http.MethodGet, "/health", nil, "")

	assert.Equal(t, http.StatusOK, w.Code)
	var body domain.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.True(t, body.AnalysisModulesAvailable)
	assert.Equal(t, 3, body.ActiveJobs)
	assert.WithinDuration(t, time.Now(), body.Timestamp.Time, time.Minute)
}

// --- Upload and view ---

func TestDocumentHandler_Upload_Success(t *testing.T) {
	f := newFixture()
	uploaded := time.Date(2024, 10, 20, 10, 30, 0, 0, time.UTC)
	f.docs.On("Upload", mock.Anything, mock.MatchedBy(func(in service.DocumentUploadInput) bool {
		return in.FileName == "scan.pdf" && in.Size == 8
	})).Return(&domain.Document{ID: "doc-1", FileName: "scan.pdf", FileSize: 8, UploadedAt: uploaded, Source: domain.DocumentSourceUpload}, nil)

	body, ct := multipartFile(t, "file", "scan.pdf", "%PDF-1.4")
	w := f.do(http.MethodPost, "/upload", body, ct)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp domain.UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "doc-1", resp.DocumentID)
	assert.Equal(t, "scan.pdf", resp.FileName)
	assert.Equal(t, int64(8), resp.FileSize)
	assert.True(t, uploaded.Equal(resp.UploadedAt.Time))
	f.docs.AssertExpectations(t)
}

func TestDocumentHandler_Upload_NoFile(t *testing.T) {
	f := newFixture()
	body, ct := multipartFile(t, "", "", "")

	w := f.do(http.MethodPost, "/upload", body, ct)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No file provided", errorBody(t, w))
	f.docs.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestDocumentHandler_Upload_InvalidType(t *testing.T) {
	f := newFixture()
	f.docs.On("Upload", mock.Anything, mock.Anything).Return(nil, domain.ErrUnsupportedFileType)

	body, ct := multipartFile(t, "file", "notes.txt", "hello")
	w := f.do(http.MethodPost, "/upload", body, ct)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid file type", errorBody(t, w))
}

func TestDocumentHandler_Upload_TooLarge(t *testing.T) {
	f := newFixture()
	body, ct := multipartFile(t, "file", "huge.pdf", strings.Repeat("x", 2*testUploadLimit))

	w := f.do(http.MethodPost, "/upload", body, ct)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "File exceeds maximum allowed size", errorBody(t, w))
	f.docs.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestDocumentHandler_Upload_TooLargeWithoutContentLength(t *testing.T) {
	f := newFixture()
	body, ct := multipartFile(t, "file", "huge.pdf", strings.Repeat("x", 2*testUploadLimit))

	req := httptest.NewRequest(http.MethodPost, "/upload", io.NopCloser(body))
	req.ContentLength = -1
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "File exceeds maximum allowed size", errorBody(t, w))
	f.docs.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestDocumentHandler_View(t *testing.T) {
	f := newFixture()
	f.docs.On("Open", mock.Anything, "doc-1").Return(&domain.Document{ID: "doc-1", FileName: "scan.png", ContentType: "image/png"}, []byte("PNGDATA"), nil)

	w := f.do(http.MethodGet, "/documents/doc-1/view", nil, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `inline; filename="scan.png"`)
	assert.Equal(t, "PNGDATA", w.Body.String())
}

func TestDocumentHandler_View_NotFound(t *testing.T) {
	f := newFixture()
	f.docs.On("Open", mock.Anything, "ghost").Return(nil, nil, domain.ErrDocumentNotFound)
	f.docs.On("Open", mock.Anything, "lost").Return(nil, nil, domain.ErrNotFound)

	w := f.do(http.MethodGet, "/documents/ghost/view", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Document not found", errorBody(t, w))

	w = f.do(http.MethodGet, "/documents/lost/view", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Document file not found on server", errorBody(t, w))
}

// --- Analysis ---

func TestAnalysisHandler_StartRoutes(t *testing.T) {
	job := &domain.JobResponse{JobID: "job-1", Status: domain.JobStatusPending, Message: "started"}

	tests := []struct {
		path  string
		body  string
		setup func(m *mocks.MockAnalysisService)
	}{
		{"/analyze/comprehensive", `{"document_ids":["a","b"]}`, func(m *mocks.MockAnalysisService) {
			m.On("StartMulti", mock.Anything, domain.JobTypeComprehensive, []string{"a", "b"}).Return(job, nil)
		}},
		{"/analyze/batch", `{"document_ids":["a"]}`, func(m *mocks.MockAnalysisService) {
			m.On("StartMulti", mock.Anything, domain.JobTypeBatch, []string{"a"}).Return(job, nil)
		}},
		{"/analyze/general", `{"document_ids":["a"]}`, func(m *mocks.MockAnalysisService) {
			m.On("StartMulti", mock.Anything, domain.JobTypeGeneral, []string{"a"}).Return(job, nil)
		}},
		{"/analyze/single", `{"document_id":"a"}`, func(m *mocks.MockAnalysisService) {
			m.On("StartSingle", mock.Anything, domain.JobTypeSingle, "a").Return(job, nil)
		}},
		{"/analyze/xray", `{"document_id":"a"}`, func(m *mocks.MockAnalysisService) {
			m.On("StartSingle", mock.Anything, domain.JobTypeXRay, "a").Return(job, nil)
		}},
		{"/analyze/fake-document", `{"document_id":"a"}`, func(m *mocks.MockAnalysisService) {
			m.On("StartSingle", mock.Anything, domain.JobTypeFakeDocument, "a").Return(job, nil)
		}},
		{"/analyze/tampering", `{"document_id":"a"}`, func(m *mocks.MockAnalysisService) {
			m.On("StartSingle", mock.Anything, domain.JobTypeTampering, "a").Return(job, nil)
		}},
		{"/analyze/fraud", `{"bill_id":"b","medical_record_ids":["r"]}`, func(m *mocks.MockAnalysisService) {
			m.On("StartBillRecords", mock.Anything, domain.JobTypeFraud, domain.BillRecordsPayload{BillID: "b", MedicalRecordIDs: []string{"r"}}).Return(job, nil)
		}},
		{"/analyze/fraud-detection", `{"bill_id":"b","medical_record_ids":["r"]}`, func(m *mocks.MockAnalysisService) {
			m.On("StartBillRecords", mock.Anything, domain.JobTypeFraudDetection, mock.Anything).Return(job, nil)
		}},
		{"/analyze/revenue-leakage", `{"bill_id":"b","medical_record_ids":["r"]}`, func(m *mocks.MockAnalysisService) {
			m.On("StartBillRecords", mock.Anything, domain.JobTypeRevenueLeakage, mock.Anything).Return(job, nil)
		}},
		{"/analyze/mismatch", `{"bill_id":"b","medical_record_ids":["r"]}`, func(m *mocks.MockAnalysisService) {
			m.On("StartBillRecords", mock.Anything, domain.JobTypeMismatch, mock.Anything).Return(job, nil)
		}},
		{"/analyze/custom", `{"document_ids":["a"],"custom_instructions":"sum it","temperature":0}`, func(m *mocks.MockAnalysisService) {
			m.On("StartCustom", mock.Anything, mock.MatchedBy(func(p domain.CustomAnalysisPayload) bool {
				return p.CustomInstructions == "sum it" && p.Temperature != nil && *p.Temperature == 0
			})).Return(job, nil)
		}},
		{"/analyze/co-document", `{"document1_id":"a","document2_id":"b","doc1_type":"Bill"}`, func(m *mocks.MockAnalysisService) {
			m.On("StartCoDocument", mock.Anything, domain.CoDocumentPayload{Document1ID: "a", Document2ID: "b", Doc1Type: "Bill"}).Return(job, nil)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			f := newFixture()
			tt.setup(f.analysis)

			w := f.postJSON(tt.path, tt.body)

			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			var resp domain.JobResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "job-1", resp.JobID)
			f.analysis.AssertExpectations(t)
		})
	}
}

func TestAnalysisHandler_CustomBindsMaxTokensAlias(t *testing.T) {
	f := newFixture()
	f.analysis.On("StartCustom", mock.Anything, mock.MatchedBy(func(p domain.CustomAnalysisPayload) bool {
		return p.MaxCompletionTokens == nil && p.MaxTokens != nil && *p.MaxTokens == 2000
	})).Return(&domain.JobResponse{JobID: "job-2", Status: domain.JobStatusPending}, nil)

	w := f.postJSON("/analyze/custom", `{"document_ids":["a"],"custom_instructions":"sum it","max_tokens":2000}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	f.analysis.AssertExpectations(t)
}

func TestAnalysisHandler_EmptyBodyReachesValidation(t *testing.T) {
	f := newFixture()
	f.analysis.On("StartMulti", mock.Anything, domain.JobTypeComprehensive, []string(nil)).Return(nil, domain.ErrNoDocuments)

	w := f.do(http.MethodPost, "/analyze/comprehensive", nil, "application/json")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No documents provided", errorBody(t, w))
}

func TestAnalysisHandler_MalformedJSON(t *testing.T) {
	f := newFixture()

	w := f.postJSON("/analyze/single", `{"document_id":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, strings.HasPrefix(errorBody(t, w), "Invalid request body: "))
	f.analysis.AssertNotCalled(t, "StartSingle", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnalysisHandler_MessageOverridesDefault(t *testing.T) {
	f := newFixture()
	f.analysis.On("StartMulti", mock.Anything, domain.JobTypeBatch, []string{"ghost"}).
		Return(nil, domain.WithMessage(domain.ErrDocumentNotFound, "Document %s not found", "ghost"))

	w := f.postJSON("/analyze/batch", `{"document_ids":["ghost"]}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Document ghost not found", errorBody(t, w))
}

func TestAnalysisHandler_InternalErrorHidesDetail(t *testing.T) {
	f := newFixture()
	f.analysis.On("StartSingle", mock.Anything, domain.JobTypeSingle, "a").Return(nil, assert.AnError)

	w := f.postJSON("/analyze/single", `{"document_id":"a"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "An internal error occurred", errorBody(t, w))
}

func TestAnalysisHandler_Status(t *testing.T) {
	f := newFixture()
	progress := 40
	f.analysis.On("GetStatus", mock.Anything, "job-1").Return(&domain.AnalysisStatusResponse{
		JobID: "job-1", Status: domain.JobStatusProcessing, Progress: &progress, JobType: domain.JobTypeSingle,
	}, nil)
	f.analysis.On("GetStatus", mock.Anything, "nope").Return(nil, domain.ErrJobNotFound)

	w := f.do(http.MethodGet, "/analysis/job-1/status", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var status domain.AnalysisStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, domain.JobStatusProcessing, status.Status)
	assert.Equal(t, 40, *status.Progress)

	w = f.do(http.MethodGet, "/analysis/nope/status", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Job not found", errorBody(t, w))
}

func TestAnalysisHandler_Result(t *testing.T) {
	f := newFixture()
	f.analysis.On("GetResult", mock.Anything, "done").Return(&domain.AnalysisResultResponse[json.RawMessage]{
		JobID: "done", Status: domain.JobStatusCompleted, Result: json.RawMessage(`{"summary":"ok"}`),
	}, nil)
	f.analysis.On("GetResult", mock.Anything, "running").Return(nil, domain.ErrJobNotCompleted)

	w := f.do(http.MethodGet, "/analysis/done/result", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"jobId":"done","status":"completed","result":{"summary":"ok"}}`, w.Body.String())

	w = f.do(http.MethodGet, "/analysis/running/result", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Analysis not completed", errorBody(t, w))
}

// --- Samples ---

func TestSampleHandler_List(t *testing.T) {
	f := newFixture()
	f.samples.On("List", mock.Anything, "medical").Return(&domain.SampleDocumentsResponse{
		Category: "medical",
		Samples:  []domain.SampleDocument{{ID: "Medical/a.pdf", Name: "a.pdf", BlobPath: "Medical/a.pdf"}},
		Count:    1,
	}, nil)

	w := f.do(http.MethodGet, "/samples/medical", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp domain.SampleDocumentsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "a.pdf", resp.Samples[0].Name)
}

func TestSampleHandler_List_InvalidCategory(t *testing.T) {
	f := newFixture()
	f.samples.On("List", mock.Anything, "recipes").Return(nil, domain.ErrInvalidCategory)

	w := f.do(http.MethodGet, "/samples/recipes", nil, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid category: recipes", errorBody(t, w))
}

func TestSampleHandler_Download(t *testing.T) {
	f := newFixture()
	f.samples.On("Download", mock.Anything, "xray", "Medical/X-ray/chest.png").
		Return(&domain.Document{ID: "doc-7", FileName: "chest.png", FileSize: 4, Source: domain.DocumentSourceSample}, nil)

	w := f.do(http.MethodGet, "/samples/xray/Medical/X-ray/chest.png/download", nil, "")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp domain.UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "doc-7", resp.DocumentID)
	assert.Equal(t, "sample", resp.Source)
}

func TestSampleHandler_Download_RequiresSuffix(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodGet, "/samples/medical/Medical/a.pdf", nil, "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	f.samples.AssertNotCalled(t, "Download", mock.Anything, mock.Anything, mock.Anything)
}

// --- Customers ---

func TestCustomerHandler_List(t *testing.T) {
	f := newFixture()
	f.customers.On("List", mock.Anything).Return([]domain.Customer{{ID: "CUST0010"}, {ID: "CUST0011"}}, nil)

	w := f.do(http.MethodGet, "/customers", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp domain.CustomersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
}

func TestCustomerHandler_NotFound(t *testing.T) {
	f := newFixture()
	f.customers.On("Get", mock.Anything, "CUST9").Return(nil, domain.ErrCustomerNotFound)
	f.customers.On("Documents", mock.Anything, "CUST9").Return(nil, domain.ErrCustomerNotFound)

	for _, path := range []string{"/customers/CUST9", "/customers/CUST9/documents"} {
		w := f.do(http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Equal(t, "Customer CUST9 not found", errorBody(t, w), path)
	}
}

func TestCustomerHandler_Download(t *testing.T) {
	f := newFixture()
	f.customers.On("DownloadDocument", mock.Anything, "CUST0010", "2024/bill.pdf").
		Return(&domain.Document{ID: "doc-9", FileName: "bill.pdf", Source: domain.DocumentSourceCustomer}, nil)

	w := f.do(http.MethodGet, "/customers/CUST0010/documents/2024/bill.pdf/download", nil, "")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp domain.UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "doc-9", resp.DocumentID)
}

func TestMapDomainError(t *testing.T) {
	status, msg := handler.MapDomainError(domain.ErrFileTooLarge)
	assert.Equal(t, http.StatusRequestEntityTooLarge, status)
	assert.Equal(t, "File exceeds maximum allowed size", msg)

	// Messages attached to server errors are not exposed.
	status, msg = handler.MapDomainError(domain.WithMessage(assert.AnError, "db password is hunter2"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "An internal error occurred", msg)
}
