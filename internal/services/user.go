package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"eventcheckin/internal/domain"
)

// fallbackUserName is used when stripping the email local part leaves nothing.
const fallbackUserName = "User"

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

type userService struct {
	userRepo domain.UserRepository
}

// NewUserService creates a new user service with the given repository.
func NewUserService(userRepo domain.UserRepository) domain.UserService {
	return &userService{userRepo: userRepo}
}

// GetOrCreateUser resolves a user by email, creating the record on first
// sight. The derived display name is the email local part stripped of
// non-alphanumeric characters, or "User" when nothing survives.
func (s *userService) GetOrCreateUser(ctx context.Context, email string) (*domain.User, error) {
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	name := nonAlphanumeric.ReplaceAllString(localPart(email), "")
	if name == "" {
		name = fallbackUserName
	}

	user = domain.NewUser(name, email)
	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent request created the same email first; its row wins.
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return s.userRepo.GetByEmail(ctx, email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// localPart returns everything before the first "@", or the whole string
// when no "@" is present.
func localPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}
