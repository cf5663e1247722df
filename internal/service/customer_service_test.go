package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parseai/internal/domain"
	"parseai/internal/repository/memory"
	"parseai/internal/service"
	memstorage "parseai/internal/storage/memory"
)

func newCustomerService(t *testing.T) service.CustomerService {
	t.Helper()
	store := memstorage.NewStore()
	store.Put("docs", "customers/CUST0010/claim-1.pdf", []byte("%PDF-a"))
	store.Put("docs", "customers/CUST0010/2024/bill.pdf", []byte("%PDF-b"))
	store.Put("docs", "customers/CUST00100/other.pdf", []byte("nope"))

	docs := service.NewDocumentService(memory.NewDocumentRepo(), store, testS3Config())
	return service.NewCustomerService(service.DefaultCustomers(), store, docs, "docs", "customers")
}

func TestCustomerService_List_SortedByID(t *testing.T) {
	svc := newCustomerService(t)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "CUST0010", list[0].ID)
	assert.Equal(t, "CUST0012", list[2].ID)
}

func TestCustomerService_Get_NotFound(t *testing.T) {
	svc := newCustomerService(t)

	_, err := svc.Get(context.Background(), "CUST9999")
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)

	_, err = svc.Documents(context.Background(), "CUST9999")
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestCustomerService_Documents(t *testing.T) {
	svc := newCustomerService(t)

	resp, err := svc.Documents(context.Background(), "CUST0010")
	require.NoError(t, err)
	assert.Equal(t, "CUST0010", resp.CustomerID)
	assert.Equal(t, "Anita Rao", resp.CustomerInfo.Name)
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, "2024/bill.pdf", resp.Documents[0].BlobPath)
	assert.Equal(t, "claim-1.pdf", resp.Documents[1].BlobPath)
	assert.NotNil(t, resp.Documents[1].LastModified)
}

func TestCustomerService_DownloadDocument(t *testing.T) {
	svc := newCustomerService(t)

	doc, err := svc.DownloadDocument(context.Background(), "CUST0010", "/2024/bill.pdf")
	require.NoError(t, err)
	assert.Equal(t, "bill.pdf", doc.FileName)
	assert.Equal(t, domain.DocumentSourceCustomer, doc.Source)
	assert.Equal(t, "CUST0010", doc.CustomerID)

	_, err = svc.DownloadDocument(context.Background(), "CUST0010", "missing.pdf")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
