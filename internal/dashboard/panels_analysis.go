package dashboard

import (
	"context"
	"fmt"

	"parseai/internal/domain"
)

// startFunc starts a job from already-resolved document ids.
type startFunc func(ctx context.Context, api API, in Input, ids []string) (*domain.JobResponse, error)

// analysisPanel uploads the input files, starts a job and, when the Env has a
// Poller, waits for the job and attaches its result.
type analysisPanel struct {
	key   PanelKey
	title string
	// minDocs and maxDocs bound the resolved document count; maxDocs 0 means no bound.
	minDocs, maxDocs int
	start            startFunc
}

func (p *analysisPanel) Key() PanelKey { return p.key }
func (p *analysisPanel) Title() string { return p.title }

func (p *analysisPanel) Run(ctx context.Context, env Env, in Input) (Output, error) {
	out := Output{Panel: p.key}

	uploads, err := uploadAll(ctx, env.API, in.Files)
	out.Uploads = uploads
	if err != nil {
		return out, err
	}
	ids := documentIDs(in.DocumentIDs, uploads)
	if len(ids) < p.minDocs || (p.maxDocs > 0 && len(ids) > p.maxDocs) {
		return out, missing("%s needs %s, got %d", p.key, docCount(p.minDocs, p.maxDocs), len(ids))
	}

	job, err := p.start(ctx, env.API, in, ids)
	if err != nil {
		return out, err
	}
	out.Job = job
	return wait(ctx, env, out)
}

// billPanel runs a bill-versus-medical-records analysis.
type billPanel struct {
	key   PanelKey
	title string
	start func(ctx context.Context, api API, billID string, recordIDs []string) (*domain.JobResponse, error)
}

func (p *billPanel) Key() PanelKey { return p.key }
func (p *billPanel) Title() string { return p.title }

func (p *billPanel) Run(ctx context.Context, env Env, in Input) (Output, error) {
	out := Output{Panel: p.key}

	billID := in.BillID
	if in.BillFile != "" {
		up, err := uploadAll(ctx, env.API, []string{in.BillFile})
		out.Uploads = append(out.Uploads, up...)
		if err != nil {
			return out, err
		}
		billID = up[0].DocumentID
	}
	records, err := uploadAll(ctx, env.API, in.RecordFiles)
	out.Uploads = append(out.Uploads, records...)
	if err != nil {
		return out, err
	}
	recordIDs := documentIDs(in.RecordIDs, records)

	if billID == "" || len(recordIDs) == 0 {
		return out, missing("%s needs a bill and at least one medical record", p.key)
	}

	job, err := p.start(ctx, env.API, billID, recordIDs)
	if err != nil {
		return out, err
	}
	out.Job = job
	return wait(ctx, env, out)
}

func wait(ctx context.Context, env Env, out Output) (Output, error) {
	if env.Poller == nil || out.Job == nil {
		return out, nil
	}
	status, result, err := env.Poller.Wait(ctx, out.Job.JobID)
	out.Status = status
	if err != nil {
		return out, err
	}
	if result != nil {
		out.Result = result.Result
	}
	return out, nil
}

func docCount(lo, hi int) string {
	switch {
	case lo == hi:
		return fmt.Sprintf("exactly %d document(s)", lo)
	case hi == 0:
		return fmt.Sprintf("at least %d document(s)", lo)
	default:
		return fmt.Sprintf("%d to %d documents", lo, hi)
	}
}

func multiPanel(key PanelKey, title string, start func(API) func(context.Context, []string) (*domain.JobResponse, error)) Panel {
	return &analysisPanel{
		key: key, title: title, minDocs: 1,
		start: func(ctx context.Context, api API, _ Input, ids []string) (*domain.JobResponse, error) {
			return start(api)(ctx, ids)
		},
	}
}

func singlePanel(key PanelKey, title string, start func(API) func(context.Context, string) (*domain.JobResponse, error)) Panel {
	return &analysisPanel{
		key: key, title: title, minDocs: 1, maxDocs: 1,
		start: func(ctx context.Context, api API, _ Input, ids []string) (*domain.JobResponse, error) {
			return start(api)(ctx, ids[0])
		},
	}
}

func billRecordsPanel(key PanelKey, title string, start func(API) func(context.Context, string, []string) (*domain.JobResponse, error)) Panel {
	return &billPanel{
		key: key, title: title,
		start: func(ctx context.Context, api API, billID string, recordIDs []string) (*domain.JobResponse, error) {
			return start(api)(ctx, billID, recordIDs)
		},
	}
}

func customPanel() Panel {
	return &analysisPanel{
		key: KeyCustom, title: "Custom Analysis", minDocs: 1,
		start: func(ctx context.Context, api API, in Input, ids []string) (*domain.JobResponse, error) {
			if in.Instructions == "" {
				return nil, missing("custom analysis needs instructions")
			}
			return api.StartCustomAnalysis(ctx, domain.CustomAnalysisPayload{
				DocumentIDs:         ids,
				CustomInstructions:  in.Instructions,
				ModelName:           in.ModelName,
				Temperature:         in.Temperature,
				MaxCompletionTokens: in.MaxCompletionTokens,
				DocumentType:        in.DocumentType,
				OutputFormat:        in.OutputFormat,
			})
		},
	}
}

func coDocumentPanel() Panel {
	return &analysisPanel{
		key: KeyCoDocument, title: "Co-Document Comparison", minDocs: 2, maxDocs: 2,
		start: func(ctx context.Context, api API, in Input, ids []string) (*domain.JobResponse, error) {
			return api.StartCoDocumentAnalysis(ctx, domain.CoDocumentPayload{
				Document1ID: ids[0],
				Document2ID: ids[1],
				Doc1Type:    in.Doc1Type,
				Doc2Type:    in.Doc2Type,
			})
		},
	}
}

func analysisPanels() []Panel {
	return []Panel{
		multiPanel(KeyComprehensive, "Comprehensive Medical Analysis", func(a API) func(context.Context, []string) (*domain.JobResponse, error) {
			return a.StartComprehensiveAnalysis
		}),
		singlePanel(KeySingle, "Single Document Analysis", func(a API) func(context.Context, string) (*domain.JobResponse, error) {
			return a.StartSingleDocumentAnalysis
		}),
		multiPanel(KeyBatch, "Batch Analysis", func(a API) func(context.Context, []string) (*domain.JobResponse, error) {
			return a.StartBatchAnalysis
		}),
		multiPanel(KeyGeneral, "General Document Analysis", func(a API) func(context.Context, []string) (*domain.JobResponse, error) {
			return a.StartGeneralAnalysis
		}),
		customPanel(),
		billRecordsPanel(KeyFraud, "Fraud Analysis", func(a API) func(context.Context, string, []string) (*domain.JobResponse, error) {
			return a.StartFraudAnalysis
		}),
		billRecordsPanel(KeyFraudDetection, "Fraud Detection", func(a API) func(context.Context, string, []string) (*domain.JobResponse, error) {
			return a.StartFraudDetection
		}),
		billRecordsPanel(KeyRevenueLeakage, "Revenue Leakage", func(a API) func(context.Context, string, []string) (*domain.JobResponse, error) {
			return a.StartRevenueLeakageAnalysis
		}),
		billRecordsPanel(KeyMismatch, "Bill vs Records Mismatch", func(a API) func(context.Context, string, []string) (*domain.JobResponse, error) {
			return a.StartMismatchAnalysis
		}),
		singlePanel(KeyXRay, "X-ray Analysis", func(a API) func(context.Context, string) (*domain.JobResponse, error) {
			return a.StartXRayAnalysis
		}),
		singlePanel(KeyFakeDocument, "Fake Document Detection", func(a API) func(context.Context, string) (*domain.JobResponse, error) {
			return a.StartFakeDocumentDetection
		}),
		singlePanel(KeyTampering, "Tampering Detection", func(a API) func(context.Context, string) (*domain.JobResponse, error) {
			return a.StartTamperingDetection
		}),
		coDocumentPanel(),
	}
}
