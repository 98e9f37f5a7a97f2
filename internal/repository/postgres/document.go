package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"content-portal/internal/domain/content"
	apperrors "content-portal/pkg/errors"

	"github.com/jackc/pgx/v5"
)

// DocumentRepository stores section documents as JSONB rows keyed by their
// slash-separated path (users/{uid}/settings/{sectionId} and friends), the
// same layout the portal's hosted document DB used.
type DocumentRepository struct {
	db *DB
}

func NewDocumentRepository(db *DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Get(ctx context.Context, path string) (content.SectionData, error) {
	query := `
		SELECT body
		FROM documents
		WHERE path = $1
	`

	var body []byte
	err := r.db.Pool.QueryRow(ctx, query, path).Scan(&body)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errDocumentNotFound)
		}
		if translated := translateStoreError(err); translated != err {
			return nil, translated
		}
		return nil, fmt.Errorf(errFailedGetDocumentFmt, err)
	}

	var doc content.SectionData
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf(errFailedDecodeDocumentFmt, err)
	}

	return doc, nil
}

func (r *DocumentRepository) Put(ctx context.Context, path string, doc content.SectionData) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf(errFailedEncodeDocumentFmt, err)
	}

	query := `
		INSERT INTO documents (path, body, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (path)
		DO UPDATE SET body = EXCLUDED.body, updated_at = now()
	`

	if _, err := r.db.Pool.Exec(ctx, query, path, body); err != nil {
		if translated := translateStoreError(err); translated != err {
			return translated
		}
		return fmt.Errorf(errFailedPutDocumentFmt, err)
	}

	return nil
}

func (r *DocumentRepository) Delete(ctx context.Context, path string) error {
	query := `DELETE FROM documents WHERE path = $1`

	if _, err := r.db.Pool.Exec(ctx, query, path); err != nil {
		if translated := translateStoreError(err); translated != err {
			return translated
		}
		return fmt.Errorf(errFailedDeleteDocumentFmt, err)
	}

	return nil
}

// DeleteTree removes every document under prefix. Used when an account is
// deleted to drop the whole users/{uid}/ subtree.
func (r *DocumentRepository) DeleteTree(ctx context.Context, prefix string) error {
	query := `DELETE FROM documents WHERE path = $1 OR path LIKE $2`

	pattern := escapeLikePattern(prefix) + "/%"
	if _, err := r.db.Pool.Exec(ctx, query, prefix, pattern); err != nil {
		if translated := translateStoreError(err); translated != err {
			return translated
		}
		return fmt.Errorf(errFailedDeleteDocumentFmt, err)
	}

	return nil
}
