package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/travelease/travelease/internal/metrics"
	"github.com/travelease/travelease/internal/model"
	"github.com/travelease/travelease/internal/repository"
)

// UserService handles user records. The email is the natural key; a
// user only ever mutates the record matching their verified subject.
type UserService struct {
	store   UserStore
	metrics metrics.Recorder
}

// NewUserService creates a UserService.
func NewUserService(store UserStore, recorder metrics.Recorder) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UserService{store: store, metrics: recorder}
}

// CreateUserInput defines input for creating a user.
type CreateUserInput struct {
	Email    string
	Name     string
	PhotoURL string
	Phone    string
	Address  string
}

// CreateUser registers a user. Creation is once per unique email: if a
// record already exists, the call short-circuits with ErrUserExists,
// which the API surfaces as an informational success. The lookup-then-
// insert sequence may race with a concurrent duplicate; the unique index
// on users.email makes the loser land here too via ErrEmailExists.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*model.User, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}

	existing, err := s.store.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return existing, ErrUserExists
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      input.Name,
		PhotoURL:  input.PhotoURL,
		Phone:     input.Phone,
		Address:   input.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.InsertUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.metrics.IncUserCreated()
	return user, nil
}

// ListUsers returns all user records.
func (s *UserService) ListUsers(ctx context.Context) ([]*model.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetMe returns the caller's own user record.
func (s *UserService) GetMe(ctx context.Context, subject string) (*model.User, error) {
	user, err := s.store.GetUserByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateUserInput defines a partial profile patch. Nil fields are left
// untouched; identity fields are not patchable at all.
type UpdateUserInput struct {
	Name     *string
	PhotoURL *string
	Phone    *string
	Address  *string
}

// UpdateMe applies a partial patch to the caller's own record, selected
// by the verified subject email. An empty patch is a zero-effect
// success.
func (s *UserService) UpdateMe(ctx context.Context, subject string, input UpdateUserInput) (*model.UpdateResult, error) {
	patch := map[string]any{}
	if input.Name != nil {
		patch["name"] = *input.Name
	}
	if input.PhotoURL != nil {
		patch["photo_url"] = *input.PhotoURL
	}
	if input.Phone != nil {
		patch["phone"] = *input.Phone
	}
	if input.Address != nil {
		patch["address"] = *input.Address
	}

	if len(patch) == 0 {
		return &model.UpdateResult{}, nil
	}

	matched, err := s.store.UpdateUserByEmail(ctx, subject, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &model.UpdateResult{MatchedCount: matched, ModifiedCount: matched}, nil
}
