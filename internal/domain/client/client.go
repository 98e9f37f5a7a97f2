package client

import (
	"time"

	"github.com/google/uuid"
)

// Role is the portal role carried by a client record.
type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
	RoleOwner  Role = "owner"
)

// Status marks whether a client account is usable.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Client is one tenant/customer of the intake portal.
type Client struct {
	ID           uuid.UUID `json:"id"`
	DisplayName  string    `json:"display_name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	ClinicName   string    `json:"clinic_name"`
	Status       Status    `json:"status"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateClientInput struct {
	DisplayName string
	Email       string
	Password    string
	ClinicName  string
	Role        Role
}

// IsStaff reports whether the role may use the admin review surface.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleOwner
}

// IsStaff reports whether the record may use the admin review surface.
func (c *Client) IsStaff() bool {
	return c.Role.IsStaff()
}
