package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"eventcheckin/internal/domain"
)

type checkinService struct {
	eventRepo    domain.EventRepository
	userRepo     domain.UserRepository
	checkinRepo  domain.CheckinRepository
	broadcaster  domain.Broadcaster
	emailService domain.EmailService
	logger       *slog.Logger
}

// NewCheckinService creates a CheckinService with the given repositories,
// broadcaster, and email service. emailService may be nil to disable
// confirmation emails.
func NewCheckinService(
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	checkinRepo domain.CheckinRepository,
	broadcaster domain.Broadcaster,
	emailService domain.EmailService,
	logger *slog.Logger,
) domain.CheckinService {
	return &checkinService{
		eventRepo:    eventRepo,
		userRepo:     userRepo,
		checkinRepo:  checkinRepo,
		broadcaster:  broadcaster,
		emailService: emailService,
		logger:       logger,
	}
}

// ListEvents returns all events ordered by start time, each with its full
// attendee list.
func (s *checkinService) ListEvents(ctx context.Context) ([]*domain.EventWithAttendees, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	result := make([]*domain.EventWithAttendees, 0, len(events))
	for _, event := range events {
		attendees, err := s.checkinRepo.ListAttendeesByEventID(ctx, event.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list attendees for event %s: %w", event.ID, err)
		}
		result = append(result, &domain.EventWithAttendees{Event: event, Attendees: attendees})
	}
	return result, nil
}

// JoinEvent checks the user identified by email in to the event, creating
// the user record on the fly when needed. Joining an event the user already
// belongs to is a no-op that returns the current state without broadcasting.
func (s *checkinService) JoinEvent(ctx context.Context, eventID, userEmail string) (*domain.EventWithAttendees, error) {
	if eventID == "" || userEmail == "" {
		return nil, domain.ErrInvalidInput
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	user, err := s.resolveOrCreateUser(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	created, err := s.checkinRepo.Upsert(ctx, event.ID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check in: %w", err)
	}

	attendees, err := s.checkinRepo.ListAttendeesByEventID(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendees: %w", err)
	}
	state := &domain.EventWithAttendees{Event: event, Attendees: attendees}

	// Only a row that was actually inserted announces itself. A lost race or
	// a repeat join changes nothing, so subscribers hear nothing.
	if created {
		s.broadcaster.Broadcast(domain.MemberJoinedMessage{EventID: event.ID, User: user, Attendees: attendees})
		s.broadcaster.Broadcast(domain.EventChangedMessage{EventID: event.ID, Attendees: attendees})
		s.sendConfirmation(ctx, user, event)
	}
	return state, nil
}

// LeaveEvent removes the user identified by email from the event. Unlike
// JoinEvent it never creates a user: an unknown email fails with
// ErrUserNotFound. Leaving an event the user is not part of is a no-op that
// returns the current state without broadcasting.
func (s *checkinService) LeaveEvent(ctx context.Context, eventID, userEmail string) (*domain.EventWithAttendees, error) {
	if eventID == "" || userEmail == "" {
		return nil, domain.ErrInvalidInput
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	user, err := s.userRepo.GetByEmail(ctx, userEmail)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	deleted, err := s.checkinRepo.Delete(ctx, event.ID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to remove checkin: %w", err)
	}

	attendees, err := s.checkinRepo.ListAttendeesByEventID(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendees: %w", err)
	}
	state := &domain.EventWithAttendees{Event: event, Attendees: attendees}

	if deleted {
		s.broadcaster.Broadcast(domain.MemberLeftMessage{EventID: event.ID, User: user, Attendees: attendees})
		s.broadcaster.Broadcast(domain.EventChangedMessage{EventID: event.ID, Attendees: attendees})
	}
	return state, nil
}

// resolveOrCreateUser looks up the user by email, creating the record with
// the raw email local part as display name when absent.
//
// TODO: unify name derivation with GetOrCreateUser, which strips
// non-alphanumerics, once it is decided which form is canonical.
func (s *checkinService) resolveOrCreateUser(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user = domain.NewUser(localPart(email), email)
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return s.userRepo.GetByEmail(ctx, email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// sendConfirmation emails a check-in receipt without holding up the caller.
// The check-in has already been persisted; a mail failure only gets a log line.
func (s *checkinService) sendConfirmation(ctx context.Context, user *domain.User, event *domain.Event) {
	if s.emailService == nil {
		return
	}
	data := &domain.CheckinConfirmationEmailData{
		Email:         user.Email,
		Name:          user.Name,
		EventName:     event.Name,
		EventLocation: event.Location,
		StartTime:     event.StartTime,
	}
	go func(ctx context.Context) {
		if err := s.emailService.SendCheckinConfirmation(ctx, data); err != nil {
			s.logger.Error("failed to send checkin confirmation", "event_id", event.ID, "error", err)
		}
	}(context.WithoutCancel(ctx))
}
