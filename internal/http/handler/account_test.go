package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"content-portal/internal/auth"
	"content-portal/internal/domain/client"
	apperrors "content-portal/pkg/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

type fakeAccountAdmin struct {
	accounts map[uuid.UUID]*client.Client
	deleted  []uuid.UUID
	err      error
}

func newFakeAccountAdmin() *fakeAccountAdmin {
	return &fakeAccountAdmin{accounts: make(map[uuid.UUID]*client.Client)}
}

func (f *fakeAccountAdmin) create(input client.CreateClientInput, role client.Role) (*client.Client, error) {
	if f.err != nil {
		return nil, f.err
	}
	acct := &client.Client{
		ID:          uuid.New(),
		DisplayName: input.DisplayName,
		Email:       input.Email,
		Role:        role,
		ClinicName:  input.ClinicName,
		Status:      client.StatusActive,
	}
	f.accounts[acct.ID] = acct
	return acct, nil
}

func (f *fakeAccountAdmin) CreateClient(_ context.Context, input client.CreateClientInput) (*client.Client, error) {
	return f.create(input, client.RoleClient)
}

func (f *fakeAccountAdmin) CreateAdmin(_ context.Context, input client.CreateClientInput) (*client.Client, error) {
	return f.create(input, client.RoleAdmin)
}

func (f *fakeAccountAdmin) List(_ context.Context, role client.Role) ([]*client.Client, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*client.Client
	for _, acct := range f.accounts {
		if role == "" || acct.Role == role {
			out = append(out, acct)
		}
	}
	return out, nil
}

func (f *fakeAccountAdmin) SetStatus(_ context.Context, id uuid.UUID, status client.Status) error {
	if f.err != nil {
		return f.err
	}
	acct, ok := f.accounts[id]
	if !ok {
		return apperrors.NotFound("account not found")
	}
	acct.Status = status
	return nil
}

func (f *fakeAccountAdmin) Delete(_ context.Context, actorID, id uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	if actorID == id {
		return apperrors.Validation("cannot delete your own account")
	}
	delete(f.accounts, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func TestAccountCreateClient(t *testing.T) {
	e := echo.New()
	svc := newFakeAccountAdmin()
	h := NewAccountHandler(svc, nopAudit{})

	c, rec := jsonRequest(t, e, http.MethodPost, "/api/accounts/clients",
		`{"display_name":"Dr. Ada","email":"ada@example.com","password":"sup3rsecret","clinic_name":"Bright Smiles"}`)

	assert.NoError(t, h.CreateClient(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created client.Client
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, client.RoleClient, created.Role)
	assert.Equal(t, "ada@example.com", created.Email)
}

func TestAccountCreateAdmin(t *testing.T) {
	e := echo.New()
	h := NewAccountHandler(newFakeAccountAdmin(), nopAudit{})

	c, rec := jsonRequest(t, e, http.MethodPost, "/api/accounts/admins",
		`{"display_name":"Ops","email":"ops@example.com","password":"sup3rsecret"}`)

	assert.NoError(t, h.CreateAdmin(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created client.Client
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, client.RoleAdmin, created.Role)
}

func TestAccountCreate_DuplicateEmail(t *testing.T) {
	e := echo.New()
	svc := newFakeAccountAdmin()
	svc.err = apperrors.Conflict("email already registered")
	h := NewAccountHandler(svc, nopAudit{})

	c, rec := jsonRequest(t, e, http.MethodPost, "/api/accounts/clients",
		`{"display_name":"Dup","email":"dup@example.com","password":"sup3rsecret"}`)

	assert.NoError(t, h.CreateClient(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAccountListClients_RoleFilter(t *testing.T) {
	e := echo.New()
	svc := newFakeAccountAdmin()
	h := NewAccountHandler(svc, nopAudit{})

	admin := &client.Client{ID: uuid.New(), Role: client.RoleAdmin}
	tenant := &client.Client{ID: uuid.New(), Role: client.RoleClient}
	svc.accounts[admin.ID] = admin
	svc.accounts[tenant.ID] = tenant

	c, rec := jsonRequest(t, e, http.MethodGet, "/api/clients?role=client", "")

	assert.NoError(t, h.ListClients(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var listed []client.Client
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Len(t, listed, 1)
	assert.Equal(t, tenant.ID, listed[0].ID)
}

func TestAccountUpdateStatus(t *testing.T) {
	e := echo.New()
	svc := newFakeAccountAdmin()
	h := NewAccountHandler(svc, nopAudit{})

	acct := &client.Client{ID: uuid.New(), Status: client.StatusActive}
	svc.accounts[acct.ID] = acct

	c, rec := jsonRequest(t, e, http.MethodPut, "/api/accounts/x/status", `{"status":"inactive"}`)
	c.SetParamNames(paramUserID)
	c.SetParamValues(acct.ID.String())

	assert.NoError(t, h.UpdateStatus(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, client.StatusInactive, acct.Status)
}

func TestAccountUpdateStatus_BadID(t *testing.T) {
	e := echo.New()
	h := NewAccountHandler(newFakeAccountAdmin(), nopAudit{})

	c, rec := jsonRequest(t, e, http.MethodPut, "/api/accounts/nope/status", `{"status":"inactive"}`)
	c.SetParamNames(paramUserID)
	c.SetParamValues("nope")

	assert.NoError(t, h.UpdateStatus(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAccountDelete(t *testing.T) {
	e := echo.New()
	svc := newFakeAccountAdmin()
	h := NewAccountHandler(svc, nopAudit{})

	acct := &client.Client{ID: uuid.New()}
	svc.accounts[acct.ID] = acct

	c, rec := jsonRequest(t, e, http.MethodDelete, "/api/accounts/x", "")
	c.SetParamNames(paramUserID)
	c.SetParamValues(acct.ID.String())
	c.Set(auth.ContextKeyUserID, uuid.New())

	assert.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []uuid.UUID{acct.ID}, svc.deleted)
}

func TestAccountDelete_Self(t *testing.T) {
	e := echo.New()
	svc := newFakeAccountAdmin()
	h := NewAccountHandler(svc, nopAudit{})

	id := uuid.New()
	svc.accounts[id] = &client.Client{ID: id}

	c, rec := jsonRequest(t, e, http.MethodDelete, "/api/accounts/x", "")
	c.SetParamNames(paramUserID)
	c.SetParamValues(id.String())
	c.Set(auth.ContextKeyUserID, id)

	assert.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
