package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"parseai/internal/domain"
	"parseai/internal/export"
)

type exportFlags struct {
	file   string
	format string
}

// resolve picks the output format and file name. --format wins over the file
// extension; without --file a dated name is generated.
func (f *exportFlags) resolve(name string) (string, export.Format, error) {
	format := export.FormatForPath(f.file)
	if f.format != "" {
		parsed, err := export.ParseFormat(f.format)
		if err != nil {
			return "", "", err
		}
		format = parsed
	}
	file := f.file
	if file == "" {
		file = export.BuildFilename(name, format, time.Now())
	}
	return file, format, nil
}

func newExportCommand(st *state) *cobra.Command {
	f := &exportFlags{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export sample listings or job reports as CSV or XLSX",
	}
	cmd.PersistentFlags().StringVarP(&f.file, "file", "f", "", "output file (default <name>_<date>.<format>)")
	cmd.PersistentFlags().StringVar(&f.format, "format", "", "csv or xlsx (default from the file extension)")

	cmd.AddCommand(&cobra.Command{
		Use:   "samples <category>",
		Short: "Export the sample documents of a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := st.client.GetSampleDocuments(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeTable(cmd, f, args[0]+"_samples", export.SampleTable(resp))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "jobs <job-id>...",
		Short: "Export the status of analysis jobs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses := make([]domain.AnalysisStatusResponse, 0, len(args))
			for _, id := range args {
				s, err := st.client.GetAnalysisStatus(cmd.Context(), id)
				if err != nil {
					return fmt.Errorf("job %s: %w", id, err)
				}
				statuses = append(statuses, *s)
			}
			return writeTable(cmd, f, "analysis_jobs", export.JobTable(statuses))
		},
	})

	return cmd
}

func writeTable(cmd *cobra.Command, f *exportFlags, name string, t export.Table) error {
	file, format, err := f.resolve(name)
	if err != nil {
		return err
	}
	if file == "-" {
		return export.Write(cmd.OutOrStdout(), t, format)
	}

	out, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("creating %s: %w", file, err)
	}
	if err := export.Write(out, t, format); err != nil {
		out.Close()
		return fmt.Errorf("writing %s: %w", file, err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d row(s) to %s\n", len(t.Rows), file)
	return nil
}
