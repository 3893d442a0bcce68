package jsonstore

import (
	"errors"
	"slices"
	"testing"

	"github.com/aleksk/socialnet/internal/store"
)

func TestAddFriend(t *testing.T) {
	s := newTestStore(t)

	if err := s.AddFriend(1, 1); !errors.Is(err, store.ErrValidation) {
		t.Errorf("expected ErrValidation for self-friending, got %v", err)
	}

	if err := s.AddFriend(2, 1); err != nil {
		t.Fatalf("AddFriend: %v", err)
	}

	for _, pair := range [][2]int{{1, 2}, {2, 1}} {
		ok, _ := s.AreFriends(pair[0], pair[1])
		if !ok {
			t.Errorf("AreFriends(%d,%d) = false, want true", pair[0], pair[1])
		}
	}

	if err := s.AddFriend(1, 2); !errors.Is(err, store.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestRemoveFriend(t *testing.T) {
	s := newTestStore(t)

	if err := s.RemoveFriend(1, 2); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	s.AddFriend(1, 2)
	if err := s.RemoveFriend(2, 1); err != nil {
		t.Fatalf("RemoveFriend: %v", err)
	}

	if ok, _ := s.AreFriends(1, 2); ok {
		t.Error("friendship should be gone")
	}
}

func TestFriendIDs(t *testing.T) {
	s := newTestStore(t)

	s.AddFriend(1, 2)
	s.AddFriend(3, 1)
	s.AddFriend(2, 3)

	ids, _ := s.FriendIDs(1)
	slices.Sort(ids)
	if !slices.Equal(ids, []int{2, 3}) {
		t.Errorf("expected friends [2 3], got %v", ids)
	}

	ids, _ = s.FriendIDs(4)
	if len(ids) != 0 {
		t.Errorf("expected no friends, got %v", ids)
	}
}

func TestAreFriendsSelf(t *testing.T) {
	s := newTestStore(t)

	if ok, _ := s.AreFriends(1, 1); ok {
		t.Error("a user is never their own friend")
	}
}
