package jsonstore

import (
	"errors"
	"testing"

	"github.com/aleksk/socialnet/internal/store"
)

func TestCreateUser(t *testing.T) {
	s := newTestStore(t)

	user, err := s.CreateUser("Ivan", "Ivanov", "ivan@example.com", "secret")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if user.ID != 1 {
		t.Errorf("expected id 1, got %d", user.ID)
	}
	if user.Password != "" {
		t.Error("returned user must not carry the password")
	}
	if user.Img == "" {
		t.Error("expected a default avatar")
	}

	second, err := s.CreateUser("Olga", "Petrova", "olga@example.com", "secret")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if second.ID != 2 {
		t.Errorf("expected id 2, got %d", second.ID)
	}
}

func TestCreateUserValidation(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		name                            string
		uname, surname, email, password string
		want                            error
	}{
		{"missing name", "", "Ivanov", "ivan@example.com", "secret", store.ErrValidation},
		{"bad email", "Ivan", "Ivanov", "not-an-email", "secret", store.ErrValidation},
		{"short password", "Ivan", "Ivanov", "ivan@example.com", "ab", store.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateUser(tt.uname, tt.surname, tt.email, tt.password)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}

	if _, err := s.CreateUser("Ivan", "Ivanov", "ivan@example.com", "secret"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	_, err := s.CreateUser("Other", "Name", "ivan@example.com", "secret")
	if !errors.Is(err, store.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate for reused email, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	s := newTestStore(t)
	seedUsers(t, s, 1)

	user, err := s.Authenticate("user1@example.com", "secret")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user.Password != "" {
		t.Error("authenticated user must not carry the password")
	}

	if _, err := s.Authenticate("user1@example.com", "wrong"); !errors.Is(err, store.ErrPermission) {
		t.Errorf("expected ErrPermission for wrong password, got %v", err)
	}
	if _, err := s.Authenticate("nobody@example.com", "secret"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown email, got %v", err)
	}
}

func TestUpdateUser(t *testing.T) {
	s := newTestStore(t)
	seedUsers(t, s, 2)

	status := "hello there"
	updated, err := s.UpdateUser(1, store.UserUpdate{Status: &status})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if updated.Status != status {
		t.Errorf("expected status %q, got %q", status, updated.Status)
	}

	taken := "user2@example.com"
	if _, err := s.UpdateUser(1, store.UserUpdate{Email: &taken}); !errors.Is(err, store.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate for taken email, got %v", err)
	}

	if _, err := s.UpdateUser(99, store.UserUpdate{Status: &status}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdatePassword(t *testing.T) {
	s := newTestStore(t)
	users := seedUsers(t, s, 1)

	if err := s.UpdatePassword(users[0].ID, "secret"); !errors.Is(err, store.ErrConflict) {
		t.Errorf("expected ErrConflict for unchanged password, got %v", err)
	}

	if err := s.UpdatePassword(users[0].ID, "changed"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}
	if _, err := s.Authenticate(users[0].Email, "changed"); err != nil {
		t.Errorf("Authenticate with new password: %v", err)
	}
	if _, err := s.Authenticate(users[0].Email, "secret"); err == nil {
		t.Error("old password still accepted")
	}
}
