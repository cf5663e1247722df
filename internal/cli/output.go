package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"parseai/internal/apiclient"
	"parseai/internal/dashboard"
	"parseai/internal/domain"
)

// reportedError is an error already rendered in the command output.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func isReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}

// textFunc renders a successful value for --output text.
type textFunc[T any] func(w io.Writer, v T) error

// render prints a call outcome. json and yaml print the Result envelope, so a
// failure is reported in-band and the returned error only sets the exit code.
func render[T any](cmd *cobra.Command, st *state, data T, err error, text textFunc[T]) error {
	out := cmd.OutOrStdout()
	switch st.outputFmt {
	case "json", "yaml":
		if werr := writeStructured(out, st.outputFmt, apiclient.Wrap(data, err)); werr != nil {
			return werr
		}
		if err != nil {
			return &reportedError{err: err}
		}
		return nil
	default:
		if err != nil {
			return err
		}
		if text == nil {
			return writeJSON(out, data)
		}
		return text(out, data)
	}
}

func writeStructured(w io.Writer, format string, v any) error {
	if format == "json" {
		return writeJSON(w, v)
	}
	// Round-trip through JSON so YAML keys match the API's field names.
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return err
	}
	return enc.Close()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeEmpty reports a successful call that returned no body (204 or empty 2xx).
func writeEmpty(w io.Writer) error {
	_, err := fmt.Fprintln(w, "(empty response)")
	return err
}

func writeRawJSON(w io.Writer, raw json.RawMessage) error {
	if len(raw) == 0 {
		_, err := fmt.Fprintln(w, "(no result)")
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		_, err = fmt.Fprintln(w, string(raw))
		return err
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}

func textUploads(w io.Writer, uploads []domain.UploadResponse) error {
	for _, u := range uploads {
		if _, err := fmt.Fprintf(w, "uploaded %s (%d bytes) as %s\n", u.FileName, u.FileSize, u.DocumentID); err != nil {
			return err
		}
	}
	return nil
}

func textStatus(w io.Writer, s *domain.AnalysisStatusResponse) error {
	if s == nil {
		_, err := fmt.Fprintln(w, "(no status)")
		return err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "job:      %s\n", s.JobID)
	fmt.Fprintf(&b, "type:     %s\n", s.JobType)
	fmt.Fprintf(&b, "status:   %s\n", s.Status)
	if s.Progress != nil {
		fmt.Fprintf(&b, "progress: %d%%\n", *s.Progress)
	}
	if !s.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "created:  %s\n", s.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	if s.CompletedAt != nil && !s.CompletedAt.IsZero() {
		fmt.Fprintf(&b, "finished: %s\n", s.CompletedAt.Format("2006-01-02 15:04:05"))
	}
	if s.Error != nil && *s.Error != "" {
		fmt.Fprintf(&b, "error:    %s\n", *s.Error)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// textOutput renders a panel's output.
func textOutput(w io.Writer, o *dashboard.Output) error {
	if o == nil {
		return nil
	}
	if err := textUploads(w, o.Uploads); err != nil {
		return err
	}
	if o.Job != nil {
		msg := o.Job.Message
		if msg == "" {
			msg = "analysis started"
		}
		if _, err := fmt.Fprintf(w, "%s: job %s (%s)\n", msg, o.Job.JobID, o.Job.Status); err != nil {
			return err
		}
	}
	if o.Status != nil {
		if err := textStatus(w, o.Status); err != nil {
			return err
		}
	}
	if o.Data != nil {
		if err := writeJSON(w, o.Data); err != nil {
			return err
		}
	}
	if len(o.Result) > 0 {
		return writeRawJSON(w, o.Result)
	}
	return nil
}
