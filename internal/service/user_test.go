package service

import (
	"context"
	"errors"
	"testing"
)

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()
	store := newFakeUserStore()
	svc := NewUserService(store, nil)

	user, err := svc.CreateUser(ctx, CreateUserInput{Email: "a@x.com", Name: "Alice"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected generated id")
	}
	if user.Email != "a@x.com" {
		t.Fatalf("unexpected email %q", user.Email)
	}
}

func TestUserService_CreateUser_Duplicate(t *testing.T) {
	ctx := context.Background()
	store := newFakeUserStore()
	svc := NewUserService(store, nil)

	first, err := svc.CreateUser(ctx, CreateUserInput{Email: "a@x.com", Name: "Alice"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	second, err := svc.CreateUser(ctx, CreateUserInput{Email: "a@x.com", Name: "Impostor"})
	if !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if second == nil || second.ID != first.ID {
		t.Fatalf("expected the existing record back")
	}

	users, err := svc.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 record for the email, got %d", len(users))
	}
	if users[0].Name != "Alice" {
		t.Fatalf("duplicate create must not overwrite, got name %q", users[0].Name)
	}
}

func TestUserService_CreateUser_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newFakeUserStore(), nil)

	for _, email := range []string{"", "   ", "not-an-email"} {
		if _, err := svc.CreateUser(ctx, CreateUserInput{Email: email}); !errors.Is(err, ErrValidation) {
			t.Errorf("email %q: expected ErrValidation, got %v", email, err)
		}
	}
}

func TestUserService_GetMe_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newFakeUserStore(), nil)

	if _, err := svc.GetMe(ctx, "ghost@x.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserService_UpdateMe(t *testing.T) {
	ctx := context.Background()
	store := newFakeUserStore()
	svc := NewUserService(store, nil)

	if _, err := svc.CreateUser(ctx, CreateUserInput{Email: "a@x.com", Name: "Alice", Phone: "111"}); err != nil {
		t.Fatalf("create user: %v", err)
	}

	name := "Alice B"
	result, err := svc.UpdateMe(ctx, "a@x.com", UpdateUserInput{Name: &name})
	if err != nil {
		t.Fatalf("update me: %v", err)
	}
	if result.MatchedCount != 1 || result.ModifiedCount != 1 {
		t.Fatalf("unexpected result %+v", result)
	}

	user, err := svc.GetMe(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("get me: %v", err)
	}
	if user.Name != "Alice B" {
		t.Errorf("expected patched name, got %q", user.Name)
	}
	if user.Phone != "111" {
		t.Errorf("absent patch fields must stay untouched, got phone %q", user.Phone)
	}
}

func TestUserService_UpdateMe_EmptyPatch(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newFakeUserStore(), nil)

	result, err := svc.UpdateMe(ctx, "a@x.com", UpdateUserInput{})
	if err != nil {
		t.Fatalf("update me: %v", err)
	}
	if result.MatchedCount != 0 {
		t.Fatalf("empty patch must be zero-effect, got %+v", result)
	}
}
