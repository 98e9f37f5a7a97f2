package handler

import (
	"context"
	"net/http"

	"content-portal/internal/audit"
	"content-portal/internal/auth"
	"content-portal/internal/domain/client"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AccountAdminService is the provisioning surface for staff.
type AccountAdminService interface {
	CreateClient(ctx context.Context, input client.CreateClientInput) (*client.Client, error)
	CreateAdmin(ctx context.Context, input client.CreateClientInput) (*client.Client, error)
	List(ctx context.Context, role client.Role) ([]*client.Client, error)
	SetStatus(ctx context.Context, id uuid.UUID, status client.Status) error
	Delete(ctx context.Context, actorID, id uuid.UUID) error
}

type AccountHandler struct {
	accounts AccountAdminService
	auditLog AuditLogger
}

func NewAccountHandler(accounts AccountAdminService, auditLog AuditLogger) *AccountHandler {
	return &AccountHandler{accounts: accounts, auditLog: auditLog}
}

type CreateAccountRequest struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	ClinicName  string `json:"clinic_name"`
	Role        string `json:"role,omitempty"`
}

func (h *AccountHandler) ListClients(c echo.Context) error {
	role := client.Role(c.QueryParam(queryParamRole))

	accounts, err := h.accounts.List(c.Request().Context(), role)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	return c.JSON(http.StatusOK, accounts)
}

func (h *AccountHandler) CreateClient(c echo.Context) error {
	return h.create(c, false)
}

func (h *AccountHandler) CreateAdmin(c echo.Context) error {
	return h.create(c, true)
}

func (h *AccountHandler) create(c echo.Context, staff bool) error {
	var req CreateAccountRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	input := client.CreateClientInput{
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Password:    req.Password,
		ClinicName:  req.ClinicName,
		Role:        client.Role(req.Role),
	}

	var created *client.Client
	var err error
	if staff {
		created, err = h.accounts.CreateAdmin(c.Request().Context(), input)
	} else {
		created, err = h.accounts.CreateClient(c.Request().Context(), input)
	}
	if err != nil {
		h.auditLog.LogError(c, audit.ResourceTypeAccount, req.Email, audit.ActionCreate, err)
		return RespondWithMappedError(c, err)
	}

	h.auditLog.LogFromContext(c, audit.ResourceTypeAccount, created.ID.String(), audit.ActionCreate, audit.StatusSuccess,
		map[string]any{"role": created.Role})

	return c.JSON(http.StatusCreated, created)
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func (h *AccountHandler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramUserID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidUserID)
	}

	var req UpdateStatusRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	if err := h.accounts.SetStatus(c.Request().Context(), id, client.Status(req.Status)); err != nil {
		return RespondWithMappedError(c, err)
	}

	h.auditLog.LogFromContext(c, audit.ResourceTypeAccount, id.String(), audit.ActionUpdate, audit.StatusSuccess,
		map[string]any{"status": req.Status})

	return respondMessage(c, http.StatusOK, msgStatusUpdated)
}

func (h *AccountHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramUserID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidUserID)
	}

	actorID, err := auth.GetUserID(c)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	if err := h.accounts.Delete(c.Request().Context(), actorID, id); err != nil {
		h.auditLog.LogError(c, audit.ResourceTypeAccount, id.String(), audit.ActionDelete, err)
		return RespondWithMappedError(c, err)
	}

	h.auditLog.LogFromContext(c, audit.ResourceTypeAccount, id.String(), audit.ActionDelete, audit.StatusSuccess, nil)

	return respondMessage(c, http.StatusOK, msgAccountDeleted)
}
