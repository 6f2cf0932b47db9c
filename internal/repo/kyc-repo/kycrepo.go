package kycrepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/tanacoin/platform/internal/domain"
	"github.com/tanacoin/platform/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// Upsert replaces an earlier document of the same type and resets its review
// state to pending.
func (r *Repository) Upsert(ctx context.Context, doc *domain.KYCDocument) error {
	query := `
		INSERT INTO kyc_documents (user_id, document_type, file_path, status)
		VALUES ($1, $2, $3, 'pending')
		ON CONFLICT (user_id, document_type) DO UPDATE
		SET file_path = EXCLUDED.file_path,
		    status = 'pending',
		    rejection_reason = NULL,
		    updated_at = NOW()
		RETURNING id, status, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, doc.UserID, doc.DocumentType, doc.FilePath).
		Scan(&doc.ID, &doc.Status, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		zap.L().Error("can't save kyc document", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.KYCDocument, error) {
	query := `
		SELECT id, user_id, document_type, file_path, status, rejection_reason, created_at, updated_at
		FROM kyc_documents
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("can't list kyc documents", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var docs []domain.KYCDocument
	for rows.Next() {
		doc, err := r.scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, rows.Err()
}

func (r *Repository) scanDocument(row pgx.Row) (*domain.KYCDocument, error) {
	var doc domain.KYCDocument
	err := row.Scan(&doc.ID, &doc.UserID, &doc.DocumentType, &doc.FilePath, &doc.Status,
		&doc.RejectionReason, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
