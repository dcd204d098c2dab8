package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/mail"
	"github.com/spec-kit/complaint-service/internal/repository"
)

// NotificationService emails the owning citizen when their complaint is
// updated. Delivery is at-most-once and best-effort: any failure is logged
// and swallowed.
type NotificationService struct {
	dispatcher events.Dispatcher
	users      repository.UserRepository
	mailer     mail.Mailer
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, users repository.UserRepository, mailer mail.Mailer, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		users:      users,
		mailer:     mailer,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events. Creation events are deliberately not
// handled; only updates to existing complaints notify the citizen.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventComplaintStatusChanged, n.handleComplaintStatusChanged)
}

func (n *NotificationService) handleComplaintStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ComplaintStatusChangedPayload)
	if !ok {
		n.logger.Warn("unexpected payload type", zap.String("event_id", event.ID))
		return nil
	}

	citizen, err := n.users.GetByID(ctx, payload.CitizenID)
	if err != nil {
		n.logger.Warn("notification skipped: citizen lookup failed",
			zap.String("complaint_id", event.ComplaintID),
			zap.Error(err))
		return nil
	}

	subject := fmt.Sprintf("Your complaint '%s' status updated", payload.Title)
	body := fmt.Sprintf("Hello %s,\n\nYour complaint status is now: %s.", citizen.Username, payload.NewStatus)

	if err := n.mailer.Send(ctx, citizen.Email, subject, body); err != nil {
		n.logger.Warn("notification delivery failed",
			zap.String("complaint_id", event.ComplaintID),
			zap.String("to", citizen.Email),
			zap.Error(err))
	}
	return nil
}
