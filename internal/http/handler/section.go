package handler

import (
	"context"
	"net/http"
	"slices"

	"content-portal/internal/audit"
	"content-portal/internal/auth"
	"content-portal/internal/domain/content"
	"content-portal/pkg/validator"

	"github.com/labstack/echo/v4"
)

// DocumentStore is the write surface the intake forms use.
type DocumentStore interface {
	Get(ctx context.Context, path string) (content.SectionData, error)
	Put(ctx context.Context, path string, doc content.SectionData) error
}

type SectionHandler struct {
	docs     DocumentStore
	auditLog AuditLogger
}

func NewSectionHandler(docs DocumentStore, auditLog AuditLogger) *SectionHandler {
	return &SectionHandler{docs: docs, auditLog: auditLog}
}

// Save persists one intake section for the authenticated client. Page
// sections land under the pages tree, everything else under settings.
func (h *SectionHandler) Save(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	sectionID := c.Param(paramSectionID)
	if err := validator.SectionID(sectionID); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	var data content.SectionData
	if err := bindStrictJSON(c, &data); err != nil {
		return handleHTTPError(c, err)
	}

	path := sectionPath(userID.String(), sectionID)
	if err := h.docs.Put(c.Request().Context(), path, data); err != nil {
		h.auditLog.LogError(c, audit.ResourceTypeSection, sectionID, audit.ActionUpdate, err)
		return RespondWithMappedError(c, err)
	}

	h.auditLog.LogFromContext(c, audit.ResourceTypeSection, sectionID, audit.ActionUpdate, audit.StatusSuccess, nil)

	return respondMessage(c, http.StatusOK, msgSectionSaved)
}

// Get returns the authenticated client's own saved copy of a section.
func (h *SectionHandler) Get(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	sectionID := c.Param(paramSectionID)
	if err := validator.SectionID(sectionID); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	data, err := h.docs.Get(c.Request().Context(), sectionPath(userID.String(), sectionID))
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	return c.JSON(http.StatusOK, data)
}

func sectionPath(uid, sectionID string) string {
	if slices.Contains(content.PageSectionIDs, sectionID) {
		return "users/" + uid + "/pages/" + sectionID
	}
	return "users/" + uid + "/settings/" + sectionID
}
