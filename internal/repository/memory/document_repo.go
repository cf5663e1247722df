package memory

import (
	"context"
	"sort"
	"sync"

	"parseai/internal/domain"
	"parseai/internal/port"
)

type documentRepo struct {
	mu   sync.RWMutex
	docs map[string]domain.Document
}

// NewDocumentRepo creates an in-process DocumentRepository.
func NewDocumentRepo() port.DocumentRepository {
	return &documentRepo{docs: map[string]domain.Document{}}
}

func (r *documentRepo) Create(_ context.Context, doc *domain.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[doc.ID] = *doc
	return nil
}

func (r *documentRepo) GetByID(_ context.Context, id string) (*domain.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[id]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return &doc, nil
}

func (r *documentRepo) List(_ context.Context) ([]domain.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Document, 0, len(r.docs))
	for _, d := range r.docs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out, nil
}
