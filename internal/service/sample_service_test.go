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

func newSampleService(t *testing.T) (service.SampleService, service.DocumentService) {
	t.Helper()
	store := memstorage.NewStore()
	store.Put("docs", "Medical/discharge.pdf", []byte("%PDF-1"))
	store.Put("docs", "Medical/lab.png", []byte("png"))
	store.Put("docs", "Medical/X-ray/chest.png", []byte("xray"))
	store.Put("docs", "Medical/", nil)
	store.Put("docs", "Legal/contract.pdf", []byte("%PDF-2"))

	docs := service.NewDocumentService(memory.NewDocumentRepo(), store, testS3Config())
	return service.NewSampleService(store, docs, "docs"), docs
}

func TestSampleService_List_DirectChildrenOnly(t *testing.T) {
	svc, _ := newSampleService(t)

	resp, err := svc.List(context.Background(), "medical")
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Samples, 2)
	assert.Equal(t, "discharge.pdf", resp.Samples[0].Name)
	assert.Equal(t, "Medical/discharge.pdf", resp.Samples[0].BlobPath)
	assert.Equal(t, "lab.png", resp.Samples[1].Name)
}

func TestSampleService_List_XRayAndCase(t *testing.T) {
	svc, _ := newSampleService(t)

	resp, err := svc.List(context.Background(), "XRAY")
	require.NoError(t, err)
	require.Len(t, resp.Samples, 1)
	assert.Equal(t, "chest.png", resp.Samples[0].Name)
}

func TestSampleService_List_InvalidCategory(t *testing.T) {
	svc, _ := newSampleService(t)

	_, err := svc.List(context.Background(), "recipes")
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestSampleService_List_EmptyCategory(t *testing.T) {
	svc, _ := newSampleService(t)

	resp, err := svc.List(context.Background(), "educational")
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Count)
	assert.NotNil(t, resp.Samples)
}

func TestSampleService_Download_ImportsDocument(t *testing.T) {
	svc, docs := newSampleService(t)
	ctx := context.Background()

	doc, err := svc.Download(ctx, "legal", "Legal/contract.pdf")
	require.NoError(t, err)
	assert.Equal(t, domain.DocumentSourceSample, doc.Source)
	assert.Equal(t, "legal", doc.Category)

	_, content, err := docs.Open(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-2", string(content))
}
