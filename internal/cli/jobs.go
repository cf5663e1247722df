package cli

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"parseai/internal/dashboard"
	"parseai/internal/domain"
)

func newStatusCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "status <job-id>",
		Short: "Show the status of an analysis job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := st.client.GetAnalysisStatus(cmd.Context(), args[0])
			return render(cmd, st, status, err, textStatus)
		},
	}
}

func newResultCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "result <job-id>",
		Short: "Print the result of a completed analysis job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := st.client.GetAnalysisResult(cmd.Context(), args[0])
			return render(cmd, st, res, err, func(w io.Writer, r *domain.AnalysisResultResponse[json.RawMessage]) error {
				if r == nil {
					return writeRawJSON(w, nil)
				}
				return writeRawJSON(w, r.Result)
			})
		},
	}
}

func newWaitCommand(st *state) *cobra.Command {
	var interval, timeout int
	cmd := &cobra.Command{
		Use:   "wait <job-id>",
		Short: "Poll an analysis job until it finishes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if interval > 0 {
				st.cfg.Poll.IntervalSecs = interval
			}
			if timeout > 0 {
				st.cfg.Poll.TimeoutSecs = timeout
			}
			status, res, err := st.poller(cmd).Wait(cmd.Context(), args[0])
			out := &dashboard.Output{Panel: dashboard.KeyStatus, Status: status}
			if res != nil {
				out.Result = res.Result
			}
			if err != nil && st.outputFmt == "text" {
				_ = textStatus(cmd.OutOrStdout(), status)
			}
			return render(cmd, st, out, err, textOutput)
		},
	}
	cmd.Flags().IntVar(&interval, "interval", 0, "seconds between status polls (default from config)")
	cmd.Flags().IntVar(&timeout, "timeout", 0, "seconds before giving up (default from config)")
	return cmd
}
