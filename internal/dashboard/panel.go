package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"parseai/internal/domain"
)

// PanelKey identifies a dashboard panel.
type PanelKey string

const (
	KeyDashboard         PanelKey = "dashboard"
	KeyComprehensive     PanelKey = "comprehensive"
	KeySingle            PanelKey = "single"
	KeyBatch             PanelKey = "batch"
	KeyGeneral           PanelKey = "general"
	KeyCustom            PanelKey = "custom"
	KeyFraud             PanelKey = "fraud"
	KeyFraudDetection    PanelKey = "fraud-detection"
	KeyRevenueLeakage    PanelKey = "revenue-leakage"
	KeyMismatch          PanelKey = "mismatch"
	KeyXRay              PanelKey = "xray"
	KeyFakeDocument      PanelKey = "fake-document"
	KeyTampering         PanelKey = "tampering"
	KeyCoDocument        PanelKey = "co-document"
	KeySamples           PanelKey = "samples"
	KeyCustomers         PanelKey = "customers"
	KeyCustomerDocuments PanelKey = "customer-documents"
	KeyStatus            PanelKey = "status"
	KeyResult            PanelKey = "result"
	KeyUpload            PanelKey = "upload"
)

// ErrMissingInput is returned when a panel lacks a required input.
var ErrMissingInput = errors.New("missing input")

func missing(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMissingInput, fmt.Sprintf(format, args...))
}

// Env is what a panel runs against.
type Env struct {
	API API
	// Poller waits for started jobs. Nil means panels return right after the
	// job is started.
	Poller *Poller
}

// Input carries everything a panel may read. Each panel uses a subset.
type Input struct {
	// Files are local paths uploaded before the analysis starts; their
	// document ids are appended after DocumentIDs.
	Files       []string
	DocumentIDs []string

	BillFile    string
	BillID      string
	RecordFiles []string
	RecordIDs   []string

	Category   string
	BlobPath   string
	CustomerID string
	JobID      string

	Instructions        string
	ModelName           string
	Temperature         *float64
	MaxCompletionTokens *int
	DocumentType        string
	OutputFormat        string

	Doc1Type string
	Doc2Type string
}

// Output is what a panel produced. Only the fields relevant to the panel are set.
type Output struct {
	Panel   PanelKey                       `json:"panel"`
	Uploads []domain.UploadResponse        `json:"uploads,omitempty"`
	Job     *domain.JobResponse            `json:"job,omitempty"`
	Status  *domain.AnalysisStatusResponse `json:"status,omitempty"`
	Result  json.RawMessage                `json:"result,omitempty"`
	Data    any                            `json:"data,omitempty"`
}

// Panel is one dashboard view: it gathers its inputs, calls the API and
// returns what should be displayed.
type Panel interface {
	Key() PanelKey
	Title() string
	Run(ctx context.Context, env Env, in Input) (Output, error)
}

// uploadAll uploads local files and returns their responses in order.
func uploadAll(ctx context.Context, api API, files []string) ([]domain.UploadResponse, error) {
	out := make([]domain.UploadResponse, 0, len(files))
	for _, f := range files {
		up, err := api.UploadFile(ctx, f)
		if err != nil {
			return out, fmt.Errorf("uploading %s: %w", f, err)
		}
		if up == nil {
			return out, fmt.Errorf("uploading %s: empty upload response", f)
		}
		out = append(out, *up)
	}
	return out, nil
}

func documentIDs(ids []string, uploads []domain.UploadResponse) []string {
	out := append([]string(nil), ids...)
	for _, u := range uploads {
		out = append(out, u.DocumentID)
	}
	return out
}
