package jsonstore

import (
	"errors"
	"slices"
	"testing"

	"github.com/aleksk/socialnet/internal/store"
)

func TestCreateRequest(t *testing.T) {
	s := newTestStore(t)
	seedUsers(t, s, 3)

	if err := s.CreateRequest(1, 1); !errors.Is(err, store.ErrValidation) {
		t.Errorf("expected ErrValidation for self-request, got %v", err)
	}
	if err := s.CreateRequest(1, 99); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown target, got %v", err)
	}

	if err := s.CreateRequest(1, 2); err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}

	if has, _ := s.HasRequest(1, 2); !has {
		t.Error("request should be pending")
	}
	if err := s.CreateRequest(1, 2); !errors.Is(err, store.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestRequestMutualAccept(t *testing.T) {
	s := newTestStore(t)
	seedUsers(t, s, 2)

	s.CreateRequest(1, 2)

	// The reverse request accepts instead of duplicating.
	if err := s.CreateRequest(2, 1); err != nil {
		t.Fatalf("CreateRequest (reverse): %v", err)
	}

	if ok, _ := s.AreFriends(1, 2); !ok {
		t.Error("mutual requests should establish the friendship")
	}
	if has, _ := s.HasRequest(1, 2); has {
		t.Error("accepted request should be consumed")
	}
	if has, _ := s.HasRequest(2, 1); has {
		t.Error("no reverse request should remain")
	}
}

func TestRemoveRequest(t *testing.T) {
	s := newTestStore(t)
	seedUsers(t, s, 2)

	if err := s.RemoveRequest(1, 2); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	s.CreateRequest(1, 2)
	if err := s.RemoveRequest(1, 2); err != nil {
		t.Fatalf("RemoveRequest: %v", err)
	}
	if has, _ := s.HasRequest(1, 2); has {
		t.Error("request should be revoked")
	}
}

func TestRequestIDs(t *testing.T) {
	s := newTestStore(t)
	seedUsers(t, s, 3)

	s.CreateRequest(1, 3)
	s.CreateRequest(2, 3)

	ids, _ := s.RequestIDs(3)
	slices.Sort(ids)
	if !slices.Equal(ids, []int{1, 2}) {
		t.Errorf("expected incoming requests from [1 2], got %v", ids)
	}

	ids, _ = s.RequestIDs(1)
	if len(ids) != 0 {
		t.Errorf("expected no incoming requests, got %v", ids)
	}
}
