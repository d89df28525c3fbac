package domain

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a referenced event does not exist.
var ErrNotFound = errors.New("not found")

// Event represents a scheduled event users can check in to
type Event struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	StartTime time.Time `json:"start_time"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(name, location string, startTime time.Time) *Event {
	return &Event{Name: name, Location: location, StartTime: startTime}
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// List returns all events ordered by start time ascending.
	List(ctx context.Context) ([]*Event, error)
}
