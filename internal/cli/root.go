// Package cli implements the parseai command-line dashboard.
package cli

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"parseai/internal/apiclient"
	"parseai/internal/config"
	"parseai/internal/dashboard"
	"parseai/internal/domain"
)

// BuildInfo is stamped at link time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// state is shared by every subcommand of one invocation.
type state struct {
	baseURL   string
	outputFmt string
	verbose   bool

	cfg    *config.Config
	client *apiclient.Client
	router *dashboard.Router
}

// NewRootCommand creates the root command.
func NewRootCommand(info BuildInfo) *cobra.Command {
	st := &state{router: dashboard.NewRouter()}

	rootCmd := &cobra.Command{
		Use:   "parseai",
		Short: "Document analysis dashboard",
		Long: `parseai uploads documents to the Parse-AI analysis API, starts analysis
workflows (medical, financial, legal, educational, fraud detection), waits for
the jobs to finish and prints their results.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return st.init(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&st.baseURL, "base-url", "", "analysis API base URL (default from PARSEAI_API_URL or "+config.DefaultBaseURL+")")
	rootCmd.PersistentFlags().StringVarP(&st.outputFmt, "output", "o", "text", "output format (text, json, yaml)")
	rootCmd.PersistentFlags().BoolVarP(&st.verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(newUploadCommand(st))
	rootCmd.AddCommand(newAnalyzeCommand(st))
	rootCmd.AddCommand(newStatusCommand(st))
	rootCmd.AddCommand(newResultCommand(st))
	rootCmd.AddCommand(newWaitCommand(st))
	rootCmd.AddCommand(newSamplesCommand(st))
	rootCmd.AddCommand(newCustomersCommand(st))
	rootCmd.AddCommand(newHealthCommand(st))
	rootCmd.AddCommand(newExportCommand(st))
	rootCmd.AddCommand(newPanelsCommand(st))
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}

func (st *state) init(cmd *cobra.Command) error {
	switch st.outputFmt {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unsupported output format %q (want text, json or yaml)", st.outputFmt)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if st.baseURL != "" {
		cfg.Client.BaseURL = st.baseURL
	}
	st.cfg = cfg
	st.client = apiclient.New(cfg.Client)
	st.debugf(cmd, "using analysis API at %s", st.client.BaseURL())
	return nil
}

// env builds the panel environment. wait=false leaves the Poller nil.
func (st *state) env(cmd *cobra.Command, wait bool) dashboard.Env {
	env := dashboard.Env{API: st.client}
	if wait {
		env.Poller = st.poller(cmd)
	}
	return env
}

func (st *state) poller(cmd *cobra.Command) *dashboard.Poller {
	return dashboard.NewPoller(st.client, st.cfg.Poll, func(s *domain.AnalysisStatusResponse) {
		progress := "?"
		if s.Progress != nil {
			progress = fmt.Sprintf("%d%%", *s.Progress)
		}
		st.debugf(cmd, "job %s: %s (%s)", s.JobID, s.Status, progress)
	})
}

func (st *state) debugf(cmd *cobra.Command, format string, args ...any) {
	if !st.verbose {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "[%s] "+format+"\n", append([]any{time.Now().Format("15:04:05")}, args...)...)
}

func newVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			version, commit, date := info.Version, info.Commit, info.Date
			if version == "" || version == "dev" {
				version = "development"
			}
			if commit == "" || commit == "none" {
				commit = "local-build"
			}
			if date == "" || date == "unknown" {
				date = "local-build"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "parseai %s (%s) built on %s\n", version, commit, date)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// Execute runs the root command and returns the process exit code.
func Execute(info BuildInfo, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand(info)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		if !isReported(err) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}
