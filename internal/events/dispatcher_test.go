package events

import (
	"context"
	"errors"
	"testing"
)

func TestPublishInvokesSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []string
	d.Subscribe(EventComplaintStatusChanged, func(_ context.Context, e Event) error {
		got = append(got, "first:"+e.ComplaintID)
		return nil
	})
	d.Subscribe(EventComplaintStatusChanged, func(_ context.Context, e Event) error {
		got = append(got, "second:"+e.ComplaintID)
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventComplaintStatusChanged, ComplaintID: "c1"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(got) != 2 || got[0] != "first:c1" || got[1] != "second:c1" {
		t.Errorf("handlers: got %v", got)
	}
}

func TestPublishSwallowsHandlerErrors(t *testing.T) {
	d := NewInMemoryDispatcher()

	invoked := false
	d.Subscribe(EventComplaintFiled, func(context.Context, Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventComplaintFiled, func(context.Context, Event) error {
		invoked = true
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventComplaintFiled}); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if !invoked {
		t.Error("second handler not invoked after first errored")
	}
}

func TestPublishWithoutSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	if err := d.Publish(context.Background(), Event{Type: EventComplaintStatusChanged}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
}
