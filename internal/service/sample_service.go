package service

import (
	"context"
	"fmt"
	"log"
	"path"
	"strings"

	"parseai/internal/domain"
	"parseai/internal/port"
)

// SampleService browses and imports the pre-provided sample documents.
type SampleService interface {
	List(ctx context.Context, category string) (*domain.SampleDocumentsResponse, error)
	Download(ctx context.Context, category, blobPath string) (*domain.Document, error)
}

type sampleService struct {
	storage port.ObjectStorage
	docs    DocumentService
	bucket  string
}

// NewSampleService creates a SampleService reading samples from bucket.
func NewSampleService(storage port.ObjectStorage, docs DocumentService, bucket string) SampleService {
	return &sampleService{storage: storage, docs: docs, bucket: bucket}
}

func (s *sampleService) List(ctx context.Context, category string) (*domain.SampleDocumentsResponse, error) {
	dir, ok := domain.SampleCategoryPrefixes[domain.SampleCategory(strings.ToLower(category))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidCategory, category)
	}

	prefix := dir + "/"
	objects, err := s.storage.List(ctx, s.bucket, prefix)
	if err != nil {
		return nil, fmt.Errorf("listing samples under %s: %w", prefix, err)
	}

	samples := make([]domain.SampleDocument, 0, len(objects))
	for _, obj := range objects {
		if obj.Key == prefix || strings.HasSuffix(obj.Key, "/") {
			continue
		}
		// Only direct children of the category directory.
		if strings.Contains(strings.TrimPrefix(obj.Key, prefix), "/") {
			continue
		}
		samples = append(samples, domain.SampleDocument{
			ID:       obj.Key,
			Name:     path.Base(obj.Key),
			Size:     obj.Size,
			BlobPath: obj.Key,
			Category: category,
		})
	}

	return &domain.SampleDocumentsResponse{
		Category: category,
		Samples:  samples,
		Count:    len(samples),
	}, nil
}

func (s *sampleService) Download(ctx context.Context, category, blobPath string) (*domain.Document, error) {
	log.Printf("sampleService.Download: importing sample %s (category %s)", blobPath, category)
	return s.docs.Import(ctx, ImportInput{
		Bucket:   s.bucket,
		Key:      blobPath,
		Source:   domain.DocumentSourceSample,
		Category: category,
	})
}
