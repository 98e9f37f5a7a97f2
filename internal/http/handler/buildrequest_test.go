package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"content-portal/internal/auth"
	"content-portal/internal/domain/request"
	apperrors "content-portal/pkg/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

type fakeRequestStore struct {
	requests map[uuid.UUID]*request.BuildRequest
	err      error
}

func newFakeRequestStore() *fakeRequestStore {
	return &fakeRequestStore{requests: make(map[uuid.UUID]*request.BuildRequest)}
}

func (f *fakeRequestStore) Create(_ context.Context, input request.SubmitInput) (*request.BuildRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	req := &request.BuildRequest{
		ID:        uuid.New(),
		ClientID:  input.ClientID,
		Identity:  input.Identity,
		Design:    input.Design,
		Elements:  input.Elements,
		Pages:     input.Pages,
		Status:    request.StatusPending,
		CreatedAt: time.Now(),
	}
	f.requests[req.ID] = req
	return req, nil
}

func (f *fakeRequestStore) GetByID(_ context.Context, id uuid.UUID) (*request.BuildRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	req, ok := f.requests[id]
	if !ok {
		return nil, apperrors.NotFound("build request not found")
	}
	return req, nil
}

func (f *fakeRequestStore) List(_ context.Context, status request.Status) ([]*request.BuildRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*request.BuildRequest
	for _, req := range f.requests {
		if status == "" || req.Status == status {
			out = append(out, req)
		}
	}
	return out, nil
}

func (f *fakeRequestStore) Review(_ context.Context, id uuid.UUID, status request.Status, reviewer uuid.UUID, note string) error {
	if f.err != nil {
		return f.err
	}
	req, ok := f.requests[id]
	if !ok {
		return apperrors.NotFound("build request not found")
	}
	req.Status = status
	req.Note = note
	req.ReviewedBy = &reviewer
	return nil
}

func TestRequestSubmit(t *testing.T) {
	e := echo.New()
	store := newFakeRequestStore()
	h := NewRequestHandler(store, nopAudit{})
	uid := uuid.New()

	c, rec := jsonRequest(t, e, http.MethodPost, "/api/content/requests",
		`{"identity":{"businessName":"Bright Smiles"},"pages":{"home":{"headline":"Welcome"}}}`)
	c.Set(auth.ContextKeyUserID, uid)

	assert.NoError(t, h.Submit(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created request.BuildRequest
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, uid, created.ClientID)
	assert.Equal(t, request.StatusPending, created.Status)
	assert.Equal(t, "Bright Smiles", created.Identity["businessName"])
	assert.Len(t, store.requests, 1)
}

func TestRequestSubmit_UnknownField(t *testing.T) {
	e := echo.New()
	h := NewRequestHandler(newFakeRequestStore(), nopAudit{})

	c, rec := jsonRequest(t, e, http.MethodPost, "/api/content/requests", `{"bogus":true}`)
	c.Set(auth.ContextKeyUserID, uuid.New())

	assert.NoError(t, h.Submit(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequestList_FiltersByStatus(t *testing.T) {
	e := echo.New()
	store := newFakeRequestStore()
	h := NewRequestHandler(store, nopAudit{})

	pending := &request.BuildRequest{ID: uuid.New(), Status: request.StatusPending}
	approved := &request.BuildRequest{ID: uuid.New(), Status: request.StatusApproved}
	store.requests[pending.ID] = pending
	store.requests[approved.ID] = approved

	c, rec := jsonRequest(t, e, http.MethodGet, "/api/requests?status=approved", "")

	assert.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var listed []request.BuildRequest
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Len(t, listed, 1)
	assert.Equal(t, approved.ID, listed[0].ID)
}

func TestRequestGet_NotFound(t *testing.T) {
	e := echo.New()
	h := NewRequestHandler(newFakeRequestStore(), nopAudit{})

	id := uuid.New()
	c, rec := jsonRequest(t, e, http.MethodGet, "/api/requests/"+id.String(), "")
	c.SetParamNames(paramID)
	c.SetParamValues(id.String())

	assert.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRequestReview(t *testing.T) {
	e := echo.New()
	store := newFakeRequestStore()
	h := NewRequestHandler(store, nopAudit{})
	reviewer := uuid.New()

	pending := &request.BuildRequest{ID: uuid.New(), Status: request.StatusPending}
	store.requests[pending.ID] = pending

	c, rec := jsonRequest(t, e, http.MethodPost, "/api/requests/x/review",
		`{"status":"approved","note":"looks good"}`)
	c.SetParamNames(paramID)
	c.SetParamValues(pending.ID.String())
	c.Set(auth.ContextKeyUserID, reviewer)

	assert.NoError(t, h.Review(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, request.StatusApproved, pending.Status)
	assert.Equal(t, "looks good", pending.Note)
	assert.Equal(t, reviewer, *pending.ReviewedBy)
}

func TestRequestReview_InvalidStatus(t *testing.T) {
	e := echo.New()
	h := NewRequestHandler(newFakeRequestStore(), nopAudit{})

	c, rec := jsonRequest(t, e, http.MethodPost, "/api/requests/x/review",
		`{"status":"pending"}`)
	c.SetParamNames(paramID)
	c.SetParamValues(uuid.New().String())
	c.Set(auth.ContextKeyUserID, uuid.New())

	assert.NoError(t, h.Review(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
