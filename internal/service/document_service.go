package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"parseai/internal/config"
	"parseai/internal/domain"
	"parseai/internal/port"
)

// DocumentUploadInput is the DTO for file upload requests.
type DocumentUploadInput struct {
	FileName string
	Size     int64
	Body     io.Reader
}

// ImportInput describes an object already in storage that should be registered
// as a document.
type ImportInput struct {
	Bucket     string
	Key        string
	Source     domain.DocumentSource
	Category   string
	CustomerID string
}

// DocumentService defines the document management contract.
type DocumentService interface {
	Upload(ctx context.Context, input DocumentUploadInput) (*domain.Document, error)
	Import(ctx context.Context, input ImportInput) (*domain.Document, error)
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	Open(ctx context.Context, id string) (*domain.Document, []byte, error)
}

type documentService struct {
	docRepo port.DocumentRepository
	storage port.ObjectStorage
	cfg     *config.S3Config
	now     func() time.Time
}

// NewDocumentService creates a new DocumentService implementation.
func NewDocumentService(docRepo port.DocumentRepository, storage port.ObjectStorage, cfg *config.S3Config) DocumentService {
	return &documentService{
		docRepo: docRepo,
		storage: storage,
		cfg:     cfg,
		now:     time.Now,
	}
}

func (s *documentService) Upload(ctx context.Context, input DocumentUploadInput) (*domain.Document, error) {
	name := filepath.Base(input.FileName)
	if name == "" || name == "." || name == "/" {
		return nil, domain.ErrNoFileProvided
	}

	contentType, ok := contentTypeOf(name)
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	if maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024; maxBytes > 0 && input.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	docID := uuid.New().String()
	key := path.Join(s.cfg.UploadPrefix, docID, name)

	log.Printf("documentService.Upload: uploading %s (%s, %d bytes) as %s", name, contentType, input.Size, docID)

	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        input.Body,
		ContentType: contentType,
		Size:        input.Size,
	}); err != nil {
		log.Printf("documentService.Upload: storage upload failed for %s: %v", docID, err)
		return nil, domain.ErrUploadFailed
	}

	doc := &domain.Document{
		ID:          docID,
		FileName:    name,
		FileSize:    input.Size,
		ContentType: contentType,
		StorageKey:  key,
		Source:      domain.DocumentSourceUpload,
		UploadedAt:  s.now().UTC(),
	}
	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("creating document record: %w", err)
	}
	return doc, nil
}

// Import copies an object from sample or customer storage into the upload area
// so later analysis reads it like any uploaded document.
func (s *documentService) Import(ctx context.Context, input ImportInput) (*domain.Document, error) {
	data, err := s.storage.Download(ctx, input.Bucket, input.Key)
	if err != nil {
		log.Printf("documentService.Import: download of %s/%s failed: %v", input.Bucket, input.Key, err)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", input.Key, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("downloading %s: %w", input.Key, err)
	}

	name := path.Base(input.Key)
	contentType, ok := contentTypeOf(name)
	if !ok {
		contentType = "application/octet-stream"
	}

	docID := uuid.New().String()
	key := path.Join(s.cfg.UploadPrefix, docID, name)
	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(data),
		ContentType: contentType,
		Size:        int64(len(data)),
	}); err != nil {
		log.Printf("documentService.Import: storage upload failed for %s: %v", docID, err)
		return nil, domain.ErrUploadFailed
	}

	doc := &domain.Document{
		ID:          docID,
		FileName:    name,
		FileSize:    int64(len(data)),
		ContentType: contentType,
		StorageKey:  key,
		Source:      input.Source,
		Category:    input.Category,
		CustomerID:  input.CustomerID,
		UploadedAt:  s.now().UTC(),
	}
	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("creating document record: %w", err)
	}

	log.Printf("documentService.Import: imported %s as %s (%s)", input.Key, docID, input.Source)
	return doc, nil
}

func (s *documentService) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	return s.docRepo.GetByID(ctx, id)
}

func (s *documentService) Open(ctx context.Context, id string) (*domain.Document, []byte, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	data, err := s.storage.Download(ctx, s.cfg.Bucket, doc.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("reading document %s: %w", id, err)
	}
	return doc, data, nil
}

func contentTypeOf(name string) (string, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	ct, ok := domain.AllowedExtensions[ext]
	return ct, ok
}
