package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapBadUUIDReadsAsNotFound(t *testing.T) {
	// The error Postgres raises for a non-uuid id like "abc".
	err := mapBadUUID(&pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type uuid"})
	if !IsNotFound(err) {
		t.Errorf("malformed id must map to the not-found convention, got %v", err)
	}

	wrapped := mapBadUUID(fmt.Errorf("query: %w", &pgconn.PgError{Code: "22P02"}))
	if !IsNotFound(wrapped) {
		t.Errorf("wrapped malformed-id error must map too, got %v", wrapped)
	}
}

func TestMapBadUUIDPassesOtherErrorsThrough(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", Message: "duplicate key"}
	if got := mapBadUUID(unique); got != unique {
		t.Errorf("unrelated pg error must pass through, got %v", got)
	}

	plain := errors.New("connection reset")
	if got := mapBadUUID(plain); got != plain {
		t.Errorf("plain error must pass through, got %v", got)
	}

	if got := mapBadUUID(nil); got != nil {
		t.Errorf("nil must pass through, got %v", got)
	}
}
