package accounts

import (
	"context"
	"errors"
	"strings"

	"content-portal/internal/auth"
	"content-portal/internal/domain/client"
	apperrors "content-portal/pkg/errors"
	"content-portal/pkg/password"
	"content-portal/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgAccountInactive  = "account is inactive"
	msgCannotDeleteSelf = "cannot delete own account"
	msgInvalidStatus    = "invalid account status"
)

// ClientStore is the persistence the account service needs.
type ClientStore interface {
	Create(ctx context.Context, input client.CreateClientInput, passwordHash string) (*client.Client, error)
	GetByID(ctx context.Context, id uuid.UUID) (*client.Client, error)
	GetByEmail(ctx context.Context, email string) (*client.Client, error)
	List(ctx context.Context, role client.Role) ([]*client.Client, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status client.Status) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DocumentDeleter removes a client's document subtree on account deletion.
type DocumentDeleter interface {
	DeleteTree(ctx context.Context, prefix string) error
}

// Service manages portal accounts: login, provisioning and teardown.
type Service struct {
	clients ClientStore
	docs    DocumentDeleter
	jwt     *auth.JWTService
	logger  *zap.Logger
}

func NewService(clients ClientStore, docs DocumentDeleter, jwt *auth.JWTService, logger *zap.Logger) *Service {
	return &Service{clients: clients, docs: docs, jwt: jwt, logger: logger}
}

// dummyPasswordHash is a pre-computed bcrypt hash (cost 12) verified against
// when the account lookup misses, so unknown emails cost the same as wrong
// passwords. The plaintext it encodes is irrelevant.
const dummyPasswordHash = "$2a$12$dWR5CQpS4zNHLavLSIr4o.P6QDQEUJKv7mJ7WekUHHqyRSRMJzH0S"

// Login verifies credentials and issues a signed token. Credential failures
// are indistinguishable to the caller, in message and in timing.
func (s *Service) Login(ctx context.Context, email, pass string) (string, *client.Client, error) {
	c, err := s.clients.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			password.Verify(pass, dummyPasswordHash)
			return "", nil, apperrors.InvalidCredentials()
		}
		return "", nil, err
	}

	if !password.Verify(pass, c.PasswordHash) {
		return "", nil, apperrors.InvalidCredentials()
	}

	if c.Status != client.StatusActive {
		return "", nil, apperrors.Unauthorized(msgAccountInactive)
	}

	token, err := s.jwt.Generate(c.ID, c.Email, c.Role)
	if err != nil {
		return "", nil, apperrors.InternalServer("failed to issue token", err)
	}

	return token, c, nil
}

// CreateClient provisions a client account.
func (s *Service) CreateClient(ctx context.Context, input client.CreateClientInput) (*client.Client, error) {
	input.Role = client.RoleClient
	return s.create(ctx, input)
}

// CreateAdmin provisions a staff account.
func (s *Service) CreateAdmin(ctx context.Context, input client.CreateClientInput) (*client.Client, error) {
	if input.Role != client.RoleAdmin && input.Role != client.RoleOwner {
		input.Role = client.RoleAdmin
	}
	return s.create(ctx, input)
}

func (s *Service) create(ctx context.Context, input client.CreateClientInput) (*client.Client, error) {
	input.Email = normalizeEmail(input.Email)

	if err := validator.Email(input.Email); err != nil {
		return nil, err
	}
	if err := validator.Password(input.Password); err != nil {
		return nil, err
	}
	if err := validator.DisplayName(input.DisplayName); err != nil {
		return nil, err
	}

	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, apperrors.InternalServer("failed to hash password", err)
	}

	created, err := s.clients.Create(ctx, input, hash)
	if err != nil {
		return nil, err
	}

	s.logger.Info("account created",
		zap.String("id", created.ID.String()),
		zap.String("role", string(created.Role)))

	return created, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	return s.clients.GetByID(ctx, id)
}

// List returns accounts, optionally filtered by role. An empty role means all.
func (s *Service) List(ctx context.Context, role client.Role) ([]*client.Client, error) {
	return s.clients.List(ctx, role)
}

func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status client.Status) error {
	if status != client.StatusActive && status != client.StatusInactive {
		return apperrors.Validation(msgInvalidStatus)
	}
	return s.clients.UpdateStatus(ctx, id, status)
}

// Delete removes an account and its entire document subtree. A missing
// account record is tolerated: content cleanup still runs, so a half-deleted
// account can be purged by retrying.
func (s *Service) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	if actorID == id {
		return apperrors.Validation(msgCannotDeleteSelf)
	}

	if err := s.clients.Delete(ctx, id); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	if err := s.docs.DeleteTree(ctx, "users/"+id.String()); err != nil {
		return err
	}

	s.logger.Info("account deleted", zap.String("id", id.String()))
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
