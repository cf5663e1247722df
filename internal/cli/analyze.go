package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"parseai/internal/dashboard"
)

type analyzeFlags struct {
	docs        []string
	billID      string
	billFile    string
	recordIDs   []string
	recordFiles []string
	category    string
	blobPath    string
	customerID  string
	jobID       string

	instructions string
	model        string
	temperature  float64
	maxTokens    int
	docType      string
	resultFormat string
	doc1Type     string
	doc2Type     string

	noWait bool
}

func (f *analyzeFlags) input(cmd *cobra.Command, files []string) dashboard.Input {
	in := dashboard.Input{
		Files:        files,
		DocumentIDs:  f.docs,
		BillFile:     f.billFile,
		BillID:       f.billID,
		RecordFiles:  f.recordFiles,
		RecordIDs:    f.recordIDs,
		Category:     f.category,
		BlobPath:     f.blobPath,
		CustomerID:   f.customerID,
		JobID:        f.jobID,
		Instructions: f.instructions,
		ModelName:    f.model,
		DocumentType: f.docType,
		OutputFormat: f.resultFormat,
		Doc1Type:     f.doc1Type,
		Doc2Type:     f.doc2Type,
	}
	// Unset numeric flags stay nil so the backend applies its defaults.
	if cmd.Flags().Changed("temperature") {
		t := f.temperature
		in.Temperature = &t
	}
	if cmd.Flags().Changed("max-tokens") {
		n := f.maxTokens
		in.MaxCompletionTokens = &n
	}
	return in
}

func newAnalyzeCommand(st *state) *cobra.Command {
	f := &analyzeFlags{}
	cmd := &cobra.Command{
		Use:   "analyze <panel> [files...]",
		Short: "Run a dashboard panel",
		Long: `Run one dashboard panel. Files given as arguments are uploaded first and
their document ids are added to --doc. Unless --no-wait is set, the started
job is polled until it finishes and its result is printed.

Unknown panel names open the dashboard overview. Run "parseai panels" for the list.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			panel := st.router.Select(args[0])
			if _, ok := st.router.Lookup(args[0]); !ok {
				st.debugf(cmd, "unknown panel %q, showing %s", args[0], panel.Key())
			}
			return runPanel(cmd, st, panel, f.input(cmd, args[1:]), !f.noWait)
		},
	}

	fl := cmd.Flags()
	fl.StringSliceVar(&f.docs, "doc", nil, "document id (repeatable)")
	fl.StringVar(&f.billID, "bill", "", "bill document id")
	fl.StringVar(&f.billFile, "bill-file", "", "bill file to upload")
	fl.StringSliceVar(&f.recordIDs, "record", nil, "medical record document id (repeatable)")
	fl.StringSliceVar(&f.recordFiles, "record-file", nil, "medical record file to upload (repeatable)")
	fl.StringVar(&f.category, "category", "", "sample category")
	fl.StringVar(&f.blobPath, "blob", "", "sample or customer blob path to download")
	fl.StringVar(&f.customerID, "customer", "", "customer id")
	fl.StringVar(&f.jobID, "job", "", "job id for the status and result panels")
	fl.StringVar(&f.instructions, "instructions", "", "custom analysis instructions")
	fl.StringVar(&f.model, "model", "", "custom analysis model name")
	fl.Float64Var(&f.temperature, "temperature", 0, "custom analysis temperature")
	fl.IntVar(&f.maxTokens, "max-tokens", 0, "custom analysis max completion tokens")
	fl.StringVar(&f.docType, "doc-type", "", "custom analysis document type")
	fl.StringVar(&f.resultFormat, "result-format", "", "custom analysis output format (e.g. Markdown)")
	fl.StringVar(&f.doc1Type, "doc1-type", "", "label of the first co-document")
	fl.StringVar(&f.doc2Type, "doc2-type", "", "label of the second co-document")
	fl.BoolVar(&f.noWait, "no-wait", false, "return after the job is started")

	return cmd
}

func runPanel(cmd *cobra.Command, st *state, panel dashboard.Panel, in dashboard.Input, wait bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	st.debugf(cmd, "running panel %s", panel.Key())
	out, err := panel.Run(ctx, st.env(cmd, wait), in)
	if err != nil && st.outputFmt == "text" {
		// Show what was done before the failure.
		_ = textOutput(cmd.OutOrStdout(), &out)
	}
	return render(cmd, st, &out, err, textOutput)
}

func newUploadCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>...",
		Short: "Upload documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPanel(cmd, st, st.router.Select(string(dashboard.KeyUpload)), dashboard.Input{Files: args}, false)
		},
	}
}

func newPanelsCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "panels",
		Short: "List dashboard panels",
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return writePanels(cmd.OutOrStdout(), st.router)
		},
	}
}

func writePanels(w io.Writer, r *dashboard.Router) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PANEL\tTITLE")
	for _, k := range r.Keys() {
		p := r.Select(string(k))
		fmt.Fprintf(tw, "%s\t%s\n", k, p.Title())
	}
	return tw.Flush()
}
