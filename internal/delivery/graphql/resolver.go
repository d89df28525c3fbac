package graphql

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"

	"eventcheckin/internal/domain"
)

var errStoreUnavailable = errors.New("store unavailable")

// Resolver holds the services the schema resolves against.
type Resolver struct {
	Logger         *slog.Logger
	CheckinService domain.CheckinService
	UserService    domain.UserService
}

// NewResolver creates a Resolver with the given logger and services.
func NewResolver(logger *slog.Logger, checkinService domain.CheckinService, userService domain.UserService) *Resolver {
	return &Resolver{
		Logger:         logger,
		CheckinService: checkinService,
		UserService:    userService,
	}
}

// eventView flattens an event and its attendees into the field names the
// schema exposes.
type eventView struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Location  string         `json:"location"`
	StartTime time.Time      `json:"startTime"`
	Attendees []*domain.User `json:"attendees"`
}

func toEventView(e *domain.EventWithAttendees) *eventView {
	return &eventView{
		ID:        e.Event.ID,
		Name:      e.Event.Name,
		Location:  e.Event.Location,
		StartTime: e.Event.StartTime,
		Attendees: e.Attendees,
	}
}

func (r *Resolver) resolveEvents(p graphql.ResolveParams) (interface{}, error) {
	events, err := r.CheckinService.ListEvents(p.Context)
	if err != nil {
		return nil, r.serviceError("events", err)
	}
	views := make([]*eventView, 0, len(events))
	for _, e := range events {
		views = append(views, toEventView(e))
	}
	return views, nil
}

func (r *Resolver) resolveMe(p graphql.ResolveParams) (interface{}, error) {
	email, _ := p.Args["email"].(string)
	user, err := r.UserService.GetOrCreateUser(p.Context, email)
	if err != nil {
		return nil, r.serviceError("me", err)
	}
	return user, nil
}

func (r *Resolver) resolveJoinEvent(p graphql.ResolveParams) (interface{}, error) {
	eventID, _ := p.Args["eventId"].(string)
	if err := checkEventID(eventID); err != nil {
		return nil, err
	}
	userEmail, _ := p.Args["userEmail"].(string)
	state, err := r.CheckinService.JoinEvent(p.Context, eventID, userEmail)
	if err != nil {
		return nil, r.serviceError("joinEvent", err)
	}
	return toEventView(state), nil
}

func (r *Resolver) resolveLeaveEvent(p graphql.ResolveParams) (interface{}, error) {
	eventID, _ := p.Args["eventId"].(string)
	if err := checkEventID(eventID); err != nil {
		return nil, err
	}
	userEmail, _ := p.Args["userEmail"].(string)
	state, err := r.CheckinService.LeaveEvent(p.Context, eventID, userEmail)
	if err != nil {
		return nil, r.serviceError("leaveEvent", err)
	}
	return toEventView(state), nil
}

// checkEventID screens event ids before they reach the store. An empty id is
// invalid input; any other string that is not a UUID can never match an event
// row, so it reports as an unknown event.
func checkEventID(id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	return nil
}

// serviceError passes sentinel errors to the client verbatim. Anything else
// is a store or transport failure: it is logged with full detail and reported
// to the caller as plain unavailability.
func (r *Resolver) serviceError(op string, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return err
	default:
		r.Logger.Error("resolver failed", "op", op, "error", err)
		return errStoreUnavailable
	}
}
