package domain

import "time"

// ComplaintStatus enumerates lifecycle states for complaints.
type ComplaintStatus string

const (
	ComplaintStatusOpen       ComplaintStatus = "open"
	ComplaintStatusInProgress ComplaintStatus = "in_progress"
	ComplaintStatusResolved   ComplaintStatus = "resolved"
)

// Valid reports whether the status is one of the known values. Transitions
// between valid statuses are unconstrained.
func (s ComplaintStatus) Valid() bool {
	switch s {
	case ComplaintStatusOpen, ComplaintStatusInProgress, ComplaintStatusResolved:
		return true
	}
	return false
}

// ComplaintTitleMaxLen bounds the title field.
const ComplaintTitleMaxLen = 200

// Complaint is the record a citizen files and staff triage. The citizen
// reference is set at creation and never reassigned; only status is mutable
// through the API afterwards.
type Complaint struct {
	ID              string
	CitizenID       string
	CitizenUsername string
	Title           string
	Description     string
	Status          ComplaintStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
