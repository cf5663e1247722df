// Package export writes sample listings and job reports as CSV or XLSX.
package export

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"parseai/internal/domain"
)

// Table is a header row plus data rows, all as display strings.
type Table struct {
	Sheet   string
	Columns []string
	Rows    [][]string
}

var sampleColumns = []string{"Category", "Name", "Size (bytes)", "Blob Path", "ID"}

// SampleTable lists the sample documents of one category.
func SampleTable(resp *domain.SampleDocumentsResponse) Table {
	t := Table{Sheet: "Samples", Columns: sampleColumns}
	if resp == nil {
		return t
	}
	for _, s := range resp.Samples {
		category := s.Category
		if category == "" {
			category = resp.Category
		}
		t.Rows = append(t.Rows, []string{
			category,
			s.Name,
			strconv.FormatInt(s.Size, 10),
			s.BlobPath,
			s.ID,
		})
	}
	return t
}

var jobColumns = []string{
	"Job ID",
	"Job Type",
	"Status",
	"Progress",
	"Created At",
	"Completed At",
	"Duration (s)",
	"Error",
	"Result Size (bytes)",
}

// JobTable reports one row per job status.
func JobTable(statuses []domain.AnalysisStatusResponse) Table {
	t := Table{Sheet: "Jobs", Columns: jobColumns}
	for i := range statuses {
		t.Rows = append(t.Rows, jobRow(&statuses[i]))
	}
	return t
}

func jobRow(s *domain.AnalysisStatusResponse) []string {
	row := make([]string, len(jobColumns))
	row[0] = s.JobID
	row[1] = string(s.JobType)
	row[2] = string(s.Status)
	if s.Progress != nil {
		row[3] = strconv.Itoa(*s.Progress)
	}
	row[4] = formatTimestamp(&s.CreatedAt)
	row[5] = formatTimestamp(s.CompletedAt)
	if s.CompletedAt != nil && !s.CompletedAt.IsZero() && !s.CreatedAt.IsZero() {
		row[6] = strconv.FormatFloat(s.CompletedAt.Sub(s.CreatedAt.Time).Seconds(), 'f', 1, 64)
	}
	if s.Error != nil {
		row[7] = *s.Error
	}
	if len(s.Result) > 0 {
		row[8] = strconv.Itoa(len(s.Result))
	}
	return row
}

func formatTimestamp(ts *domain.Timestamp) string {
	if ts == nil || ts.IsZero() {
		return ""
	}
	return ts.UTC().Format(time.RFC3339)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename replaces characters outside [a-zA-Z0-9_-] with _, collapses
// runs of underscores and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns {sanitized name}_{YYYY-MM-DD}.{ext}.
func BuildFilename(name string, format Format, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(name), now.Format("2006-01-02"), format)
}
