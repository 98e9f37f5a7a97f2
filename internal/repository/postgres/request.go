package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"content-portal/internal/domain/content"
	"content-portal/internal/domain/request"
	apperrors "content-portal/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type RequestRepository struct {
	db *DB
}

func NewRequestRepository(db *DB) *RequestRepository {
	return &RequestRepository{db: db}
}

type requestPayload struct {
	Identity content.SectionData            `json:"identity,omitempty"`
	Design   content.SectionData            `json:"design,omitempty"`
	Elements content.SectionData            `json:"elements,omitempty"`
	Pages    map[string]content.SectionData `json:"pages,omitempty"`
}

func (r *RequestRepository) Create(ctx context.Context, input request.SubmitInput) (*request.BuildRequest, error) {
	payload, err := json.Marshal(requestPayload{
		Identity: input.Identity,
		Design:   input.Design,
		Elements: input.Elements,
		Pages:    input.Pages,
	})
	if err != nil {
		return nil, fmt.Errorf(errFailedCreateRequestFmt, err)
	}

	query := `
		INSERT INTO build_requests (client_id, payload, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	req := &request.BuildRequest{
		ClientID: input.ClientID,
		Identity: input.Identity,
		Design:   input.Design,
		Elements: input.Elements,
		Pages:    input.Pages,
		Status:   request.StatusPending,
	}

	err = r.db.Pool.QueryRow(ctx, query, input.ClientID, payload, request.StatusPending).
		Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		if translated := translateStoreError(err); translated != err {
			return nil, translated
		}
		return nil, fmt.Errorf(errFailedCreateRequestFmt, err)
	}

	return req, nil
}

func scanRequest(row pgx.Row) (*request.BuildRequest, error) {
	req := &request.BuildRequest{}
	var payload []byte
	var note *string

	err := row.Scan(
		&req.ID,
		&req.ClientID,
		&payload,
		&req.Status,
		&note,
		&req.ReviewedBy,
		&req.ReviewedAt,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	var p requestPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf(errFailedScanRequestFmt, err)
	}
	req.Identity = p.Identity
	req.Design = p.Design
	req.Elements = p.Elements
	req.Pages = p.Pages
	if note != nil {
		req.Note = *note
	}

	return req, nil
}

const requestColumns = `id, client_id, payload, status, note, reviewed_by, reviewed_at, created_at, updated_at`

func (r *RequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*request.BuildRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM build_requests WHERE id = $1`

	req, err := scanRequest(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errRequestNotFound)
		}
		if translated := translateStoreError(err); translated != err {
			return nil, translated
		}
		return nil, fmt.Errorf(errFailedGetRequestFmt, err)
	}

	return req, nil
}

// List returns build requests, optionally filtered by status ("" for all),
// newest first.
func (r *RequestRepository) List(ctx context.Context, status request.Status) ([]*request.BuildRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM build_requests`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		if translated := translateStoreError(err); translated != err {
			return nil, translated
		}
		return nil, fmt.Errorf(errFailedListRequestsFmt, err)
	}
	defer rows.Close()

	var requests []*request.BuildRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf(errFailedScanRequestFmt, err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(errIterateRequestsFmt, err)
	}

	return requests, nil
}

// Review records an approve/reject decision.
func (r *RequestRepository) Review(ctx context.Context, id uuid.UUID, status request.Status, reviewer uuid.UUID, note string) error {
	query := `
		UPDATE build_requests
		SET status = $2, note = $3, reviewed_by = $4, reviewed_at = $5, updated_at = now()
		WHERE id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query, id, status, note, reviewer, time.Now().UTC())
	if err != nil {
		if translated := translateStoreError(err); translated != err {
			return translated
		}
		return fmt.Errorf(errFailedReviewRequestFmt, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(errRequestNotFound)
	}

	return nil
}
