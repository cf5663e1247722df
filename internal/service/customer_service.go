package service

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"parseai/internal/domain"
	"parseai/internal/port"
)

// CustomerService exposes the customer directory and each customer's stored documents.
type CustomerService interface {
	List(ctx context.Context) ([]domain.Customer, error)
	Get(ctx context.Context, customerID string) (*domain.Customer, error)
	Documents(ctx context.Context, customerID string) (*domain.CustomerDocumentsResponse, error)
	DownloadDocument(ctx context.Context, customerID, blobPath string) (*domain.Document, error)
}

type customerService struct {
	directory map[string]domain.Customer
	storage   port.ObjectStorage
	docs      DocumentService
	bucket    string
	prefix    string
}

// NewCustomerService creates a CustomerService over a fixed directory. Customer
// documents live under <prefix>/<customerID>/ in bucket.
func NewCustomerService(directory []domain.Customer, storage port.ObjectStorage, docs DocumentService, bucket, prefix string) CustomerService {
	dir := make(map[string]domain.Customer, len(directory))
	for _, c := range directory {
		dir[c.ID] = c
	}
	return &customerService{
		directory: dir,
		storage:   storage,
		docs:      docs,
		bucket:    bucket,
		prefix:    prefix,
	}
}

func (s *customerService) List(_ context.Context) ([]domain.Customer, error) {
	out := make([]domain.Customer, 0, len(s.directory))
	for _, c := range s.directory {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *customerService) Get(_ context.Context, customerID string) (*domain.Customer, error) {
	c, ok := s.directory[customerID]
	if !ok {
		return nil, fmt.Errorf("customer %s: %w", customerID, domain.ErrCustomerNotFound)
	}
	return &c, nil
}

func (s *customerService) Documents(ctx context.Context, customerID string) (*domain.CustomerDocumentsResponse, error) {
	customer, err := s.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}

	dir := s.customerDir(customerID)
	objects, err := s.storage.List(ctx, s.bucket, dir)
	if err != nil {
		return nil, fmt.Errorf("listing documents for customer %s: %w", customerID, err)
	}

	docs := make([]domain.CustomerDocument, 0, len(objects))
	for _, obj := range objects {
		if obj.Key == dir || strings.HasSuffix(obj.Key, "/") {
			continue
		}
		doc := domain.CustomerDocument{
			ID:       obj.Key,
			Name:     path.Base(obj.Key),
			Size:     obj.Size,
			BlobPath: strings.TrimPrefix(obj.Key, dir),
		}
		if obj.LastModified != nil {
			ts := domain.NewTimestamp(*obj.LastModified)
			doc.LastModified = &ts
		}
		docs = append(docs, doc)
	}

	return &domain.CustomerDocumentsResponse{
		CustomerID:   customerID,
		CustomerInfo: *customer,
		Documents:    docs,
		Count:        len(docs),
	}, nil
}

func (s *customerService) DownloadDocument(ctx context.Context, customerID, blobPath string) (*domain.Document, error) {
	if _, err := s.Get(ctx, customerID); err != nil {
		return nil, err
	}
	return s.docs.Import(ctx, ImportInput{
		Bucket:     s.bucket,
		Key:        s.customerDir(customerID) + strings.TrimPrefix(blobPath, "/"),
		Source:     domain.DocumentSourceCustomer,
		CustomerID: customerID,
	})
}

func (s *customerService) customerDir(customerID string) string {
	if s.prefix == "" {
		return customerID + "/"
	}
	return path.Join(s.prefix, customerID) + "/"
}

// DefaultCustomers is the demo directory served by the development backend.
func DefaultCustomers() []domain.Customer {
	return []domain.Customer{
		{
			ID: "CUST0010", Name: "Anita Rao", Age: 58, Gender: "Female",
			Email: "anita.rao@example.com", Phone: "+91-90000-00010",
			Address: "12 Residency Road, Bengaluru", Insurance: "Star Health",
			PolicyNumber: "SH-2024-000010", RegistrationDate: "2023-05-15", LastVisit: "2024-10-20",
		},
		{
			ID: "CUST0011", Name: "Vikram Menon", Age: 45, Gender: "Male",
			Email: "vikram.menon@example.com", Phone: "+91-90000-00011",
			Address: "8 Marine Drive, Kochi", Insurance: "HDFC ERGO Health",
			PolicyNumber: "HE-2024-000011", RegistrationDate: "2022-08-22", LastVisit: "2024-10-18",
		},
		{
			ID: "CUST0012", Name: "Farah Qureshi", Age: 62, Gender: "Female",
			Email: "farah.qureshi@example.com", Phone: "+91-90000-00012",
			Address: "41 Park Street, Kolkata", Insurance: "Care Health",
			PolicyNumber: "CH-2024-000012", RegistrationDate: "2021-12-10", LastVisit: "2024-10-15",
		},
	}
}
