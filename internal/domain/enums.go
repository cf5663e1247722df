package domain

// JobStatus represents the lifecycle of an analysis job as reported by the backend.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// IsTerminal reports whether no further status transitions are expected.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// JobType identifies the analysis workflow a job runs.
type JobType string

const (
	JobTypeComprehensive  JobType = "comprehensive"
	JobTypeSingle         JobType = "single"
	JobTypeBatch          JobType = "batch"
	JobTypeGeneral        JobType = "general"
	JobTypeCustom         JobType = "custom"
	JobTypeFraud          JobType = "fraud"
	JobTypeFraudDetection JobType = "fraud_detection"
	JobTypeRevenueLeakage JobType = "revenue_leakage"
	JobTypeMismatch       JobType = "mismatch"
	JobTypeXRay           JobType = "xray"
	JobTypeFakeDocument   JobType = "fake_document"
	JobTypeTampering      JobType = "tampering"
	JobTypeCoDocument     JobType = "co_document"
)

// SampleCategory names a group of pre-provided sample documents.
type SampleCategory string

const (
	SampleCategoryMedical     SampleCategory = "medical"
	SampleCategoryXRay        SampleCategory = "xray"
	SampleCategoryFinancial   SampleCategory = "financial"
	SampleCategoryLegal       SampleCategory = "legal"
	SampleCategoryEducational SampleCategory = "educational"
	SampleCategoryGeneral     SampleCategory = "general"
)

// SampleCategoryPrefixes maps a sample category to its object-storage directory.
var SampleCategoryPrefixes = map[SampleCategory]string{
	SampleCategoryMedical:     "Medical",
	SampleCategoryXRay:        "Medical/X-ray",
	SampleCategoryFinancial:   "Financial",
	SampleCategoryLegal:       "Legal",
	SampleCategoryEducational: "Educational",
	SampleCategoryGeneral:     "General",
}

// AllowedExtensions lists the file extensions (without dot) accepted for upload,
// mapped to the MIME type used when serving them back.
var AllowedExtensions = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"tif":  "image/tiff",
	"tiff": "image/tiff",
	"pdf":  "application/pdf",
	"webp": "image/webp",
}

// DocumentSource records where an uploaded document came from.
type DocumentSource string

const (
	DocumentSourceUpload   DocumentSource = "upload"
	DocumentSourceSample   DocumentSource = "sample"
	DocumentSourceCustomer DocumentSource = "customer"
)
