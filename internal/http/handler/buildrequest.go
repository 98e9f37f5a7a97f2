package handler

import (
	"context"
	"net/http"

	"content-portal/internal/audit"
	"content-portal/internal/auth"
	"content-portal/internal/domain/content"
	"content-portal/internal/domain/request"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestStore is the build-request persistence surface.
type RequestStore interface {
	Create(ctx context.Context, input request.SubmitInput) (*request.BuildRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*request.BuildRequest, error)
	List(ctx context.Context, status request.Status) ([]*request.BuildRequest, error)
	Review(ctx context.Context, id uuid.UUID, status request.Status, reviewer uuid.UUID, note string) error
}

type RequestHandler struct {
	requests RequestStore
	auditLog AuditLogger
}

func NewRequestHandler(requests RequestStore, auditLog AuditLogger) *RequestHandler {
	return &RequestHandler{requests: requests, auditLog: auditLog}
}

type SubmitRequestBody struct {
	Identity content.SectionData            `json:"identity,omitempty"`
	Design   content.SectionData            `json:"design,omitempty"`
	Elements content.SectionData            `json:"elements,omitempty"`
	Pages    map[string]content.SectionData `json:"pages,omitempty"`
}

// Submit files the authenticated client's consolidated build request.
func (h *RequestHandler) Submit(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	var body SubmitRequestBody
	if err := bindStrictJSON(c, &body); err != nil {
		return handleHTTPError(c, err)
	}

	created, err := h.requests.Create(c.Request().Context(), request.SubmitInput{
		ClientID: userID,
		Identity: body.Identity,
		Design:   body.Design,
		Elements: body.Elements,
		Pages:    body.Pages,
	})
	if err != nil {
		h.auditLog.LogError(c, audit.ResourceTypeRequest, userID.String(), audit.ActionCreate, err)
		return RespondWithMappedError(c, err)
	}

	h.auditLog.LogFromContext(c, audit.ResourceTypeRequest, created.ID.String(), audit.ActionCreate, audit.StatusSuccess, nil)

	return c.JSON(http.StatusCreated, created)
}

// List returns build requests, optionally filtered by status.
func (h *RequestHandler) List(c echo.Context) error {
	status := request.Status(c.QueryParam(queryParamStatus))

	requests, err := h.requests.List(c.Request().Context(), status)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	return c.JSON(http.StatusOK, requests)
}

func (h *RequestHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidRequestID)
	}

	req, err := h.requests.GetByID(c.Request().Context(), id)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	return c.JSON(http.StatusOK, req)
}

type ReviewRequestBody struct {
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

// Review records an approve/reject decision on a pending request.
func (h *RequestHandler) Review(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidRequestID)
	}

	reviewer, err := auth.GetUserID(c)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	var body ReviewRequestBody
	if err := bindStrictJSON(c, &body); err != nil {
		return handleHTTPError(c, err)
	}

	status := request.Status(body.Status)
	if !request.ValidReviewStatus(status) {
		return respondError(c, http.StatusBadRequest, msgInvalidReviewStatus)
	}

	if err := h.requests.Review(c.Request().Context(), id, status, reviewer, body.Note); err != nil {
		h.auditLog.LogError(c, audit.ResourceTypeRequest, id.String(), audit.ActionReview, err)
		return RespondWithMappedError(c, err)
	}

	h.auditLog.LogFromContext(c, audit.ResourceTypeRequest, id.String(), audit.ActionReview, audit.StatusSuccess,
		map[string]any{"status": body.Status})

	return respondMessage(c, http.StatusOK, msgRequestReviewed)
}
