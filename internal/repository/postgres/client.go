package postgres

import (
	"context"
	"fmt"

	"content-portal/internal/domain/client"
	apperrors "content-portal/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ClientRepository struct {
	db *DB
}

func NewClientRepository(db *DB) *ClientRepository {
	return &ClientRepository{db: db}
}

const clientColumns = `id, display_name, email, role, clinic_name, status, password_hash, created_at, updated_at`

func scanClient(row pgx.Row) (*client.Client, error) {
	c := &client.Client{}
	err := row.Scan(
		&c.ID,
		&c.DisplayName,
		&c.Email,
		&c.Role,
		&c.ClinicName,
		&c.Status,
		&c.PasswordHash,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ClientRepository) Create(ctx context.Context, input client.CreateClientInput, passwordHash string) (*client.Client, error) {
	query := `
		INSERT INTO clients (display_name, email, role, clinic_name, status, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + clientColumns

	c, err := scanClient(r.db.Pool.QueryRow(ctx, query,
		input.DisplayName, input.Email, input.Role, input.ClinicName, client.StatusActive, passwordHash))

	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("account with this email already exists")
		}
		if translated := translateStoreError(err); translated != err {
			return nil, translated
		}
		return nil, fmt.Errorf(errFailedCreateClientFmt, err)
	}

	return c, nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

	c, err := scanClient(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errClientNotFound)
		}
		if translated := translateStoreError(err); translated != err {
			return nil, translated
		}
		return nil, fmt.Errorf(errFailedGetClientFmt, err)
	}

	return c, nil
}

func (r *ClientRepository) GetByEmail(ctx context.Context, email string) (*client.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE email = $1`

	c, err := scanClient(r.db.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errClientNotFound)
		}
		if translated := translateStoreError(err); translated != err {
			return nil, translated
		}
		return nil, fmt.Errorf(errFailedGetClientFmt, err)
	}

	return c, nil
}

// listClientsQuery builds the List statement. An empty role lists every
// account; a non-empty role filters.
func listClientsQuery(role client.Role) (string, []any) {
	if role == "" {
		return `
		SELECT ` + clientColumns + `
		FROM clients
		ORDER BY created_at DESC
	`, nil
	}
	return `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE role = $1
		ORDER BY created_at DESC
	`, []any{role}
}

func (r *ClientRepository) List(ctx context.Context, role client.Role) ([]*client.Client, error) {
	query, args := listClientsQuery(role)

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		if translated := translateStoreError(err); translated != err {
			return nil, translated
		}
		return nil, fmt.Errorf(errFailedListClientsFmt, err)
	}
	defer rows.Close()

	var clients []*client.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf(errFailedScanClientFmt, err)
		}
		clients = append(clients, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(errIterateClientsFmt, err)
	}

	return clients, nil
}

func (r *ClientRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status client.Status) error {
	query := `UPDATE clients SET status = $2, updated_at = now() WHERE id = $1`

	tag, err := r.db.Pool.Exec(ctx, query, id, status)
	if err != nil {
		if translated := translateStoreError(err); translated != err {
			return translated
		}
		return fmt.Errorf(errFailedUpdateClientFmt, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(errClientNotFound)
	}

	return nil
}

// Delete removes the auth record. Returns ErrNotFound when the record was
// already absent; callers that tolerate that case check with errors.Is.
func (r *ClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM clients WHERE id = $1`

	tag, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		if translated := translateStoreError(err); translated != err {
			return translated
		}
		return fmt.Errorf(errFailedDeleteClientFmt, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(errClientNotFound)
	}

	return nil
}
