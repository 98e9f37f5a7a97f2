package request

import (
	"time"

	"content-portal/internal/domain/content"

	"github.com/google/uuid"
)

// Status tracks a build request through admin review.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// BuildRequest is one consolidated submission: the full nested bundle a client
// asks to have turned into a finished website.
type BuildRequest struct {
	ID         uuid.UUID                          `json:"id"`
	ClientID   uuid.UUID                          `json:"client_id"`
	Identity   content.SectionData                `json:"identity,omitempty"`
	Design     content.SectionData                `json:"design,omitempty"`
	Elements   content.SectionData                `json:"elements,omitempty"`
	Pages      map[string]content.SectionData     `json:"pages,omitempty"`
	Status     Status                             `json:"status"`
	Note       string                             `json:"note,omitempty"`
	ReviewedBy *uuid.UUID                         `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time                         `json:"reviewed_at,omitempty"`
	CreatedAt  time.Time                          `json:"created_at"`
	UpdatedAt  time.Time                          `json:"updated_at"`
}

type SubmitInput struct {
	ClientID uuid.UUID
	Identity content.SectionData
	Design   content.SectionData
	Elements content.SectionData
	Pages    map[string]content.SectionData
}

// ValidReviewStatus reports whether s is a terminal review decision.
func ValidReviewStatus(s Status) bool {
	return s == StatusApproved || s == StatusRejected
}
