package dto

import (
	"time"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// CreateComplaintRequest payload.
type CreateComplaintRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateComplaintRequest payload. Only status is applied; title, description,
// and citizen are read-only and silently ignored when supplied.
type UpdateComplaintRequest struct {
	Status      domain.ComplaintStatus `json:"status"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Citizen     string                 `json:"citizen"`
}

// ComplaintResponse renders a complaint with the owning username.
type ComplaintResponse struct {
	ID          string                 `json:"id"`
	Citizen     string                 `json:"citizen"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Status      domain.ComplaintStatus `json:"status"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}
