package events

import (
	"time"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventComplaintFiled         EventType = "complaint_filed"
	EventComplaintStatusChanged EventType = "complaint_status_changed"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID   string      `json:"user_id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	ComplaintID string      `json:"complaint_id"`
	Actor       Actor       `json:"actor"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload"`
}

// ComplaintFiledPayload payload.
type ComplaintFiledPayload struct {
	CitizenID string                 `json:"citizen_id"`
	Title     string                 `json:"title"`
	Status    domain.ComplaintStatus `json:"status"`
}

// ComplaintStatusChangedPayload payload. Emitted on every persisted update to
// an existing complaint, even when the status value is unchanged.
type ComplaintStatusChangedPayload struct {
	CitizenID string                 `json:"citizen_id"`
	Title     string                 `json:"title"`
	OldStatus domain.ComplaintStatus `json:"old_status"`
	NewStatus domain.ComplaintStatus `json:"new_status"`
}
