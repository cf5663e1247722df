package domain

import (
	"encoding/json"
	"time"
)

// Document is a file registered with the backend, either uploaded directly or
// copied in from sample/customer storage.
type Document struct {
	ID          string         `db:"id" json:"id"`
	FileName    string         `db:"file_name" json:"file_name"`
	FileSize    int64          `db:"file_size" json:"file_size"`
	ContentType string         `db:"content_type" json:"content_type"`
	StorageKey  string         `db:"storage_key" json:"storage_key"`
	Source      DocumentSource `db:"source" json:"source"`
	Category    string         `db:"category" json:"category,omitempty"`
	CustomerID  string         `db:"customer_id" json:"customer_id,omitempty"`
	UploadedAt  time.Time      `db:"uploaded_at" json:"uploaded_at"`
}

// Job is an analysis job tracked by the backend.
type Job struct {
	ID          string          `json:"id"`
	Type        JobType         `json:"type"`
	DocumentIDs []string        `json:"document_ids"`
	Params      json.RawMessage `json:"params,omitempty"`
	Status      JobStatus       `json:"status"`
	Progress    int             `json:"progress"`
	Result      json.RawMessage `json:"result,omitempty"`
	Error       string          `json:"error,omitempty"`
	Attempts    int             `json:"attempts"`
	CreatedAt   time.Time       `json:"created_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

// Customer is an entry in the backend's customer directory.
type Customer struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Age              int    `json:"age"`
	Gender           string `json:"gender"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	Insurance        string `json:"insurance"`
	PolicyNumber     string `json:"policyNumber"`
	RegistrationDate string `json:"registrationDate"`
	LastVisit        string `json:"lastVisit"`
}

// StoredObject describes an object held in object storage.
type StoredObject struct {
	Key          string
	Size         int64
	LastModified *time.Time
}

// --- Wire DTOs exchanged with the analysis API ---

// UploadResponse is returned after a file upload or a sample/customer download completes.
// Fields the client does not model are preserved in Extra.
type UploadResponse struct {
	DocumentID string                     `json:"documentId"`
	FileName   string                     `json:"fileName"`
	FileSize   int64                      `json:"fileSize"`
	UploadedAt Timestamp                  `json:"uploadedAt"`
	Source     string                     `json:"source,omitempty"`
	Extra      map[string]json.RawMessage `json:"-"`
}

var uploadResponseKnown = map[string]bool{
	"documentId": true, "fileName": true, "fileSize": true, "uploadedAt": true, "source": true,
}

func (u *UploadResponse) UnmarshalJSON(data []byte) error {
	type plain UploadResponse
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for k, v := range all {
		if uploadResponseKnown[k] {
			continue
		}
		if p.Extra == nil {
			p.Extra = make(map[string]json.RawMessage)
		}
		p.Extra[k] = v
	}
	*u = UploadResponse(p)
	return nil
}

func (u UploadResponse) MarshalJSON() ([]byte, error) {
	type plain UploadResponse
	base, err := json.Marshal(plain(u))
	if err != nil || len(u.Extra) == 0 {
		return base, err
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range u.Extra {
		if _, exists := merged[k]; !exists {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// JobResponse is returned when an analysis job is started.
type JobResponse struct {
	JobID   string    `json:"jobId"`
	Status  JobStatus `json:"status"`
	Message string    `json:"message,omitempty"`
}

// AnalysisStatusResponse is the polled view of a job.
type AnalysisStatusResponse struct {
	JobID       string          `json:"jobId"`
	Status      JobStatus       `json:"status"`
	Progress    *int            `json:"progress,omitempty"`
	JobType     JobType         `json:"jobType"`
	CreatedAt   Timestamp       `json:"createdAt"`
	CompletedAt *Timestamp      `json:"completedAt,omitempty"`
	Error       *string         `json:"error,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
}

// AnalysisResultResponse carries the final payload of a completed job.
type AnalysisResultResponse[T any] struct {
	JobID  string    `json:"jobId"`
	Status JobStatus `json:"status"`
	Result T         `json:"result"`
}

// SampleDocument summarizes one pre-provided sample document.
type SampleDocument struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	BlobPath string `json:"blobPath"`
	Category string `json:"category,omitempty"`
}

// SampleDocumentsResponse lists the sample documents of a category.
type SampleDocumentsResponse struct {
	Category string           `json:"category"`
	Samples  []SampleDocument `json:"samples"`
	Count    int              `json:"count"`
}

// CustomerDocument is a stored document belonging to a customer.
type CustomerDocument struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Size         int64      `json:"size"`
	LastModified *Timestamp `json:"lastModified,omitempty"`
	BlobPath     string     `json:"blobPath"`
}

// CustomersResponse lists the customer directory.
type CustomersResponse struct {
	Customers []Customer `json:"customers"`
	Count     int        `json:"count"`
}

// CustomerDocumentsResponse lists the documents stored for one customer.
type CustomerDocumentsResponse struct {
	CustomerID   string             `json:"customerId"`
	CustomerInfo Customer           `json:"customerInfo"`
	Documents    []CustomerDocument `json:"documents"`
	Count        int                `json:"count"`
}

// HealthResponse reports backend liveness.
type HealthResponse struct {
	Status                   string    `json:"status"`
	Timestamp                Timestamp `json:"timestamp"`
	AnalysisModulesAvailable bool      `json:"analysis_modules_available"`
	ActiveJobs               int       `json:"active_jobs"`
}

// ErrorResponse is the body the backend sends with a non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}

// --- Request payloads ---

// DocumentIDsPayload starts a multi-document analysis.
type DocumentIDsPayload struct {
	DocumentIDs []string `json:"document_ids"`
}

// DocumentIDPayload starts a single-document analysis.
type DocumentIDPayload struct {
	DocumentID string `json:"document_id"`
}

// BillRecordsPayload starts a bill-versus-medical-records analysis.
type BillRecordsPayload struct {
	BillID           string   `json:"bill_id"`
	MedicalRecordIDs []string `json:"medical_record_ids"`
}

// CustomAnalysisPayload starts an analysis driven by user-defined instructions.
type CustomAnalysisPayload struct {
	DocumentIDs         []string `json:"document_ids"`
	CustomInstructions  string   `json:"custom_instructions"`
	ModelName           string   `json:"model_name,omitempty"`
	Temperature         *float64 `json:"temperature,omitempty"`
	MaxCompletionTokens *int     `json:"max_completion_tokens,omitempty"`
	// MaxTokens is accepted as an alias; MaxCompletionTokens wins when both are set.
	MaxTokens           *int     `json:"max_tokens,omitempty"`
	DocumentType        string   `json:"document_type,omitempty"`
	OutputFormat        string   `json:"output_format,omitempty"`
}

// CoDocumentPayload starts a comparison of two documents.
type CoDocumentPayload struct {
	Document1ID string `json:"document1_id"`
	Document2ID string `json:"document2_id"`
	Doc1Type    string `json:"doc1_type,omitempty"`
	Doc2Type    string `json:"doc2_type,omitempty"`
}

// --- Job parameters persisted alongside a job ---

// BillRecordsParams identifies which of a bill-versus-records job's documents is the bill.
type BillRecordsParams struct {
	BillID           string   `json:"bill_id"`
	MedicalRecordIDs []string `json:"medical_record_ids"`
}

// CustomParams is the resolved configuration of a custom analysis job.
type CustomParams struct {
	Instructions        string  `json:"instructions"`
	ModelName           string  `json:"model_name"`
	Temperature         float64 `json:"temperature"`
	MaxCompletionTokens int     `json:"max_completion_tokens"`
	DocumentType        string  `json:"document_type"`
	OutputFormat        string  `json:"output_format"`
}

// Defaults applied to custom analysis requests that omit a setting.
const (
	DefaultCustomModel        = "gpt-4o"
	DefaultCustomTemperature  = 0.3
	DefaultCustomMaxTokens    = 4000
	DefaultCustomDocumentType = "Custom Document"
	DefaultCustomOutputFormat = "Markdown"
)

// CoDocumentParams labels the two documents of a comparison job.
type CoDocumentParams struct {
	Doc1Type string `json:"doc1_type"`
	Doc2Type string `json:"doc2_type"`
}
