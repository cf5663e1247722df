package apiclient

import (
	"context"

	"parseai/internal/domain"
)

// GetSampleDocuments lists the sample documents of a category.
func (c *Client) GetSampleDocuments(ctx context.Context, category string) (*domain.SampleDocumentsResponse, error) {
	return getJSON[domain.SampleDocumentsResponse](ctx, c, "/samples/"+EscapePath(category))
}

// DownloadSampleDocument copies a sample into the backend's document store and
// returns its upload descriptor. blobPath may contain "/" separators.
func (c *Client) DownloadSampleDocument(ctx context.Context, category, blobPath string) (*domain.UploadResponse, error) {
	return getJSON[domain.UploadResponse](ctx, c, "/samples/"+EscapePath(category)+"/"+EscapePath(blobPath)+"/download")
}

// ListCustomers lists the customer directory.
func (c *Client) ListCustomers(ctx context.Context) (*domain.CustomersResponse, error) {
	return getJSON[domain.CustomersResponse](ctx, c, "/customers")
}

// GetCustomer fetches one customer.
func (c *Client) GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error) {
	return getJSON[domain.Customer](ctx, c, "/customers/"+EscapeSegment(customerID))
}

// GetCustomerDocuments lists the documents stored for a customer.
func (c *Client) GetCustomerDocuments(ctx context.Context, customerID string) (*domain.CustomerDocumentsResponse, error) {
	return getJSON[domain.CustomerDocumentsResponse](ctx, c, "/customers/"+EscapeSegment(customerID)+"/documents")
}

// DownloadCustomerDocument copies a customer document into the backend's document
// store. blobPath is relative to the customer's directory and may contain "/".
func (c *Client) DownloadCustomerDocument(ctx context.Context, customerID, blobPath string) (*domain.UploadResponse, error) {
	return getJSON[domain.UploadResponse](ctx, c,
		"/customers/"+EscapeSegment(customerID)+"/documents/"+EscapePath(blobPath)+"/download")
}

// Health reports backend liveness.
func (c *Client) Health(ctx context.Context) (*domain.HealthResponse, error) {
	return getJSON[domain.HealthResponse](ctx, c, "/health")
}
