package dashboard

import (
	"context"

	"parseai/internal/domain"
)

// funcPanel adapts a plain function to Panel.
type funcPanel struct {
	key   PanelKey
	title string
	run   func(ctx context.Context, env Env, in Input) (Output, error)
}

func (p *funcPanel) Key() PanelKey { return p.key }
func (p *funcPanel) Title() string { return p.title }

func (p *funcPanel) Run(ctx context.Context, env Env, in Input) (Output, error) {
	out, err := p.run(ctx, env, in)
	out.Panel = p.key
	return out, err
}

// Overview is the default dashboard view.
type Overview struct {
	Health     *domain.HealthResponse `json:"health"`
	Categories []string               `json:"categories"`
	Panels     []PanelKey             `json:"panels"`
}

// SampleCategories lists the sample categories in display order.
func SampleCategories() []string {
	return []string{
		string(domain.SampleCategoryMedical),
		string(domain.SampleCategoryXRay),
		string(domain.SampleCategoryFinancial),
		string(domain.SampleCategoryLegal),
		string(domain.SampleCategoryEducational),
		string(domain.SampleCategoryGeneral),
	}
}

func dashboardPanel(keys func() []PanelKey) Panel {
	return &funcPanel{key: KeyDashboard, title: "Dashboard", run: func(ctx context.Context, env Env, _ Input) (Output, error) {
		health, err := env.API.Health(ctx)
		if err != nil {
			return Output{}, err
		}
		return Output{Data: Overview{Health: health, Categories: SampleCategories(), Panels: keys()}}, nil
	}}
}

func browsePanels() []Panel {
	return []Panel{
		&funcPanel{key: KeySamples, title: "Sample Documents", run: func(ctx context.Context, env Env, in Input) (Output, error) {
			if in.Category == "" {
				return Output{}, missing("samples needs a category")
			}
			if in.BlobPath != "" {
				up, err := env.API.DownloadSampleDocument(ctx, in.Category, in.BlobPath)
				if err != nil {
					return Output{}, err
				}
				return Output{Uploads: derefUploads(up)}, nil
			}
			return dataOf(env.API.GetSampleDocuments(ctx, in.Category))
		}},
		&funcPanel{key: KeyCustomers, title: "Customers", run: func(ctx context.Context, env Env, in Input) (Output, error) {
			if in.CustomerID != "" {
				return dataOf(env.API.GetCustomer(ctx, in.CustomerID))
			}
			return dataOf(env.API.ListCustomers(ctx))
		}},
		&funcPanel{key: KeyCustomerDocuments, title: "Customer Documents", run: func(ctx context.Context, env Env, in Input) (Output, error) {
			if in.CustomerID == "" {
				return Output{}, missing("customer-documents needs a customer id")
			}
			if in.BlobPath != "" {
				up, err := env.API.DownloadCustomerDocument(ctx, in.CustomerID, in.BlobPath)
				if err != nil {
					return Output{}, err
				}
				return Output{Uploads: derefUploads(up)}, nil
			}
			return dataOf(env.API.GetCustomerDocuments(ctx, in.CustomerID))
		}},
		&funcPanel{key: KeyUpload, title: "Upload Documents", run: func(ctx context.Context, env Env, in Input) (Output, error) {
			if len(in.Files) == 0 {
				return Output{}, missing("upload needs at least one file")
			}
			uploads, err := uploadAll(ctx, env.API, in.Files)
			return Output{Uploads: uploads}, err
		}},
		&funcPanel{key: KeyStatus, title: "Job Status", run: func(ctx context.Context, env Env, in Input) (Output, error) {
			if in.JobID == "" {
				return Output{}, missing("status needs a job id")
			}
			status, err := env.API.GetAnalysisStatus(ctx, in.JobID)
			return Output{Status: status}, err
		}},
		&funcPanel{key: KeyResult, title: "Job Result", run: func(ctx context.Context, env Env, in Input) (Output, error) {
			if in.JobID == "" {
				return Output{}, missing("result needs a job id")
			}
			res, err := env.API.GetAnalysisResult(ctx, in.JobID)
			if err != nil || res == nil {
				return Output{}, err
			}
			return Output{Result: res.Result}, nil
		}},
	}
}

func derefUploads(up *domain.UploadResponse) []domain.UploadResponse {
	if up == nil {
		return nil
	}
	return []domain.UploadResponse{*up}
}

// dataOf keeps Data unset on failure so it is omitted from the output.
func dataOf[T any](v *T, err error) (Output, error) {
	if err != nil || v == nil {
		return Output{}, err
	}
	return Output{Data: v}, nil
}
