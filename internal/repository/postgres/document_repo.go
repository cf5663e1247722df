package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"parseai/internal/domain"
	"parseai/internal/port"
)

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, doc *domain.Document) error {
	query := `INSERT INTO documents (
		id, file_name, file_size, content_type, storage_key,
		source, category, customer_id, uploaded_at
	) VALUES (
		:id, :file_name, :file_size, :content_type, :storage_key,
		:source, :category, :customer_id, :uploaded_at
	)`
	if _, err := r.db.NamedExecContext(ctx, query, doc); err != nil {
		return fmt.Errorf("documentRepo.Create: %w", err)
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc, "SELECT * FROM documents WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

func (r *documentRepo) List(ctx context.Context) ([]domain.Document, error) {
	var docs []domain.Document
	if err := r.db.SelectContext(ctx, &docs, "SELECT * FROM documents ORDER BY uploaded_at DESC"); err != nil {
		return nil, fmt.Errorf("documentRepo.List: %w", err)
	}
	return docs, nil
}
