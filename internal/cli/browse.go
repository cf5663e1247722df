package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"parseai/internal/domain"
)

func newSamplesCommand(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "samples",
		Short: "Browse and import sample documents",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list <category>",
		Short: "List the sample documents of a category",
		Long:  "List the sample documents of a category (medical, xray, financial, legal, educational, general).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := st.client.GetSampleDocuments(cmd.Context(), args[0])
			return render(cmd, st, resp, err, textSamples)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "download <category> <blob-path>",
		Short: "Import a sample document for analysis",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			up, err := st.client.DownloadSampleDocument(cmd.Context(), args[0], args[1])
			return render(cmd, st, up, err, textUpload)
		},
	})

	return cmd
}

func newCustomersCommand(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customers",
		Short: "Browse customers and their documents",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List customers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := st.client.ListCustomers(cmd.Context())
			return render(cmd, st, resp, err, textCustomers)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <customer-id>",
		Short: "Show one customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := st.client.GetCustomer(cmd.Context(), args[0])
			return render(cmd, st, c, err, func(w io.Writer, c *domain.Customer) error {
				if c == nil {
					return writeEmpty(w)
				}
				return writeJSON(w, c)
			})
		},
	})

	var download string
	docs := &cobra.Command{
		Use:   "documents <customer-id>",
		Short: "List a customer's documents, or import one with --download",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if download != "" {
				up, err := st.client.DownloadCustomerDocument(cmd.Context(), args[0], download)
				return render(cmd, st, up, err, textUpload)
			}
			resp, err := st.client.GetCustomerDocuments(cmd.Context(), args[0])
			return render(cmd, st, resp, err, textCustomerDocuments)
		},
	}
	docs.Flags().StringVar(&download, "download", "", "blob path of the document to import")
	cmd.AddCommand(docs)

	return cmd
}

func newHealthCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the analysis API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := st.client.Health(cmd.Context())
			return render(cmd, st, h, err, func(w io.Writer, h *domain.HealthResponse) error {
				if h == nil {
					return writeEmpty(w)
				}
				_, err := fmt.Fprintf(w, "%s (modules available: %t, active jobs: %d)\n",
					h.Status, h.AnalysisModulesAvailable, h.ActiveJobs)
				return err
			})
		},
	}
}

func textUpload(w io.Writer, up *domain.UploadResponse) error {
	if up == nil {
		return writeEmpty(w)
	}
	return textUploads(w, []domain.UploadResponse{*up})
}

func textSamples(w io.Writer, resp *domain.SampleDocumentsResponse) error {
	if resp == nil {
		return writeEmpty(w)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSIZE\tBLOB PATH")
	for _, s := range resp.Samples {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", s.Name, s.Size, s.BlobPath)
	}
	fmt.Fprintf(tw, "\n%d %s sample(s)\n", resp.Count, resp.Category)
	return tw.Flush()
}

func textCustomers(w io.Writer, resp *domain.CustomersResponse) error {
	if resp == nil {
		return writeEmpty(w)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tINSURANCE\tLAST VISIT")
	for _, c := range resp.Customers {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Insurance, c.LastVisit)
	}
	return tw.Flush()
}

func textCustomerDocuments(w io.Writer, resp *domain.CustomerDocumentsResponse) error {
	if resp == nil {
		return writeEmpty(w)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s (%s)\n", resp.CustomerInfo.Name, resp.CustomerID)
	fmt.Fprintln(tw, "NAME\tSIZE\tBLOB PATH")
	for _, d := range resp.Documents {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", d.Name, d.Size, d.BlobPath)
	}
	return tw.Flush()
}
