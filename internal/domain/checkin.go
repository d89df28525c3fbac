package domain

import (
	"context"
	"errors"
)

// ErrInvalidInput is returned when a required field is missing or malformed (e.g. empty id, email without @).
var ErrInvalidInput = errors.New("invalid input")

// EventWithAttendees bundles an event with its current attendee list.
type EventWithAttendees struct {
	Event     *Event  `json:"event"`
	Attendees []*User `json:"attendees"`
}

// CheckinRepository defines storage operations for the event/user membership
// edge. A (event, user) pair appears at most once; the store enforces that,
// so concurrent writers need no application-level locking.
type CheckinRepository interface {
	// Upsert inserts the edge if absent. created is false when the edge
	// already existed, including when a concurrent insert won the race.
	Upsert(ctx context.Context, eventID, userID string) (created bool, err error)
	// Delete removes the edge if present. deleted is false when there was
	// nothing to remove.
	Delete(ctx context.Context, eventID, userID string) (deleted bool, err error)
	ListAttendeesByEventID(ctx context.Context, eventID string) ([]*User, error)
}

// CheckinService defines the membership operations: listing events with
// their attendees and the idempotent join/leave transitions.
type CheckinService interface {
	// ListEvents returns all events ascending by start time, each with its
	// full current attendee list.
	ListEvents(ctx context.Context) ([]*EventWithAttendees, error)
	// JoinEvent checks the user with the given email in to the event,
	// creating the user first if no account exists for that email. Joining
	// an event the user already attends is a no-op that still succeeds.
	JoinEvent(ctx context.Context, eventID, userEmail string) (*EventWithAttendees, error)
	// LeaveEvent removes the user's check-in. Leaving an event the user
	// never joined is a no-op that still succeeds; an email with no user
	// record at all fails with ErrUserNotFound.
	LeaveEvent(ctx context.Context, eventID, userEmail string) (*EventWithAttendees, error)
}
