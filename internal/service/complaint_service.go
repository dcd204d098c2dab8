package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// ComplaintService coordinates the complaint lifecycle.
type ComplaintService struct {
	complaints repository.ComplaintRepository
	dispatcher events.Dispatcher
}

// ComplaintDependencies bundles repositories for complaint service.
type ComplaintDependencies struct {
	ComplaintRepo repository.ComplaintRepository
	Dispatcher    events.Dispatcher
}

// ComplaintCreateInput describes complaint creation payload. Status and
// citizen are never taken from the caller.
type ComplaintCreateInput struct {
	Title       string
	Description string
}

// ComplaintListFilter describes staff listing filters.
type ComplaintListFilter struct {
	Status          *domain.ComplaintStatus
	CitizenUsername *string
	CreatedOn       *time.Time
	CreatedFrom     *time.Time
	CreatedTo       *time.Time
}

// NewComplaintService constructs the service.
func NewComplaintService(deps ComplaintDependencies) *ComplaintService {
	return &ComplaintService{
		complaints: deps.ComplaintRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create files a new complaint owned by the caller with status open.
func (s *ComplaintService) Create(ctx context.Context, principal *auth.Principal, input ComplaintCreateInput) (*domain.Complaint, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, apperrors.NewValidationError("title and description required", nil)
	}
	if utf8.RuneCountInString(title) > domain.ComplaintTitleMaxLen {
		return nil, apperrors.NewValidationError("title too long", map[string]any{"max_length": domain.ComplaintTitleMaxLen})
	}

	complaint := &domain.Complaint{
		CitizenID:       principal.UserID,
		CitizenUsername: principal.Username,
		Title:           title,
		Description:     description,
		Status:          domain.ComplaintStatusOpen,
	}
	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintFiled,
		ComplaintID: complaint.ID,
		Actor:       principalActor(principal),
		Payload: events.ComplaintFiledPayload{
			CitizenID: complaint.CitizenID,
			Title:     complaint.Title,
			Status:    complaint.Status,
		},
	})
	return complaint, nil
}

// ListMine returns the caller's complaints in creation order.
func (s *ComplaintService) ListMine(ctx context.Context, citizenID string) ([]domain.Complaint, error) {
	return s.complaints.ListByCitizen(ctx, citizenID)
}

// ListAll returns complaints matching the staff filter; an empty filter
// returns everything.
func (s *ComplaintService) ListAll(ctx context.Context, filter ComplaintListFilter) ([]domain.Complaint, error) {
	return s.complaints.ListWithFilter(ctx, repository.ComplaintFilter{
		CitizenUsername: filter.CitizenUsername,
		Status:          filter.Status,
		CreatedOn:       filter.CreatedOn,
		CreatedFrom:     filter.CreatedFrom,
		CreatedTo:       filter.CreatedTo,
	})
}

// UpdateStatus sets a complaint's status. Only the status field is applied;
// the persisted update triggers the owner notification.
func (s *ComplaintService) UpdateStatus(ctx context.Context, principal *auth.Principal, complaintID string, newStatus domain.ComplaintStatus) (*domain.Complaint, error) {
	if !newStatus.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": newStatus})
	}

	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewNotFound("complaint", map[string]any{"id": complaintID})
		}
		return nil, err
	}

	oldStatus := complaint.Status
	complaint.Status = newStatus
	if err := s.complaints.UpdateStatus(ctx, complaint); err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewNotFound("complaint", map[string]any{"id": complaintID})
		}
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintStatusChanged,
		ComplaintID: complaint.ID,
		Actor:       principalActor(principal),
		Payload: events.ComplaintStatusChangedPayload{
			CitizenID: complaint.CitizenID,
			Title:     complaint.Title,
			OldStatus: oldStatus,
			NewStatus: complaint.Status,
		},
	})
	return complaint, nil
}

// Stats returns complaint counts grouped by status, one entry per status
// present in storage.
func (s *ComplaintService) Stats(ctx context.Context) (map[domain.ComplaintStatus]int64, error) {
	return s.complaints.CountByStatus(ctx)
}

func (s *ComplaintService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}

func principalActor(principal *auth.Principal) events.Actor {
	if principal == nil {
		return events.Actor{}
	}
	return events.Actor{
		UserID:   principal.UserID,
		Username: principal.Username,
		Role:     principal.Role,
	}
}
