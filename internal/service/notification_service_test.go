package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
)

func seedCitizen(t *testing.T, users *fakeUserRepo, username, email string) *domain.User {
	t.Helper()
	user := &domain.User{Username: username, Email: email, Role: domain.RoleCitizen}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestStatusChangeNotifiesOwner(t *testing.T) {
	users := newFakeUserRepo()
	mailer := &fakeMailer{}
	dispatcher := events.NewInMemoryDispatcher()
	alice := seedCitizen(t, users, "alice", "alice@example.com")

	NewNotificationService(dispatcher, users, mailer, zap.NewNop()).RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:        events.EventComplaintStatusChanged,
		ComplaintID: "c1",
		Payload: events.ComplaintStatusChangedPayload{
			CitizenID: alice.ID,
			Title:     "Pothole",
			OldStatus: domain.ComplaintStatusOpen,
			NewStatus: domain.ComplaintStatusResolved,
		},
	})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}

	sent := mailer.sentMails()
	if len(sent) != 1 {
		t.Fatalf("mails: got %d, want 1", len(sent))
	}
	if sent[0].To != "alice@example.com" {
		t.Errorf("to: got %q", sent[0].To)
	}
	if sent[0].Subject != "Your complaint 'Pothole' status updated" {
		t.Errorf("subject: got %q", sent[0].Subject)
	}
	wantBody := "Hello alice,\n\nYour complaint status is now: resolved."
	if sent[0].Body != wantBody {
		t.Errorf("body: got %q, want %q", sent[0].Body, wantBody)
	}
}

func TestMailerFailureIsSwallowed(t *testing.T) {
	users := newFakeUserRepo()
	mailer := &fakeMailer{err: errors.New("smtp down")}
	dispatcher := events.NewInMemoryDispatcher()
	alice := seedCitizen(t, users, "alice", "alice@example.com")

	NewNotificationService(dispatcher, users, mailer, zap.NewNop()).RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:        events.EventComplaintStatusChanged,
		ComplaintID: "c1",
		Payload: events.ComplaintStatusChangedPayload{
			CitizenID: alice.ID,
			Title:     "t",
			OldStatus: domain.ComplaintStatusOpen,
			NewStatus: domain.ComplaintStatusInProgress,
		},
	})
	if err != nil {
		t.Fatalf("Publish must not surface mailer errors, got: %v", err)
	}
	if len(mailer.sentMails()) != 1 {
		t.Error("delivery must still be attempted")
	}
}

func TestUnknownCitizenIsSwallowed(t *testing.T) {
	users := newFakeUserRepo()
	mailer := &fakeMailer{}
	dispatcher := events.NewInMemoryDispatcher()

	NewNotificationService(dispatcher, users, mailer, zap.NewNop()).RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:        events.EventComplaintStatusChanged,
		ComplaintID: "c1",
		Payload: events.ComplaintStatusChangedPayload{
			CitizenID: "missing",
			Title:     "t",
			OldStatus: domain.ComplaintStatusOpen,
			NewStatus: domain.ComplaintStatusResolved,
		},
	})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(mailer.sentMails()) != 0 {
		t.Error("no mail expected when the citizen cannot be resolved")
	}
}

func TestComplaintFiledDoesNotNotify(t *testing.T) {
	users := newFakeUserRepo()
	mailer := &fakeMailer{}
	dispatcher := events.NewInMemoryDispatcher()
	alice := seedCitizen(t, users, "alice", "alice@example.com")

	NewNotificationService(dispatcher, users, mailer, zap.NewNop()).RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:        events.EventComplaintFiled,
		ComplaintID: "c1",
		Actor:       events.Actor{UserID: alice.ID, Username: alice.Username, Role: alice.Role},
	})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(mailer.sentMails()) != 0 {
		t.Error("creation must not send mail")
	}
}
