package jsonstore

import (
	"fmt"
	"slices"

	"github.com/aleksk/socialnet/internal/models"
	"github.com/aleksk/socialnet/internal/store"
)

// CreateRequest files a friend request from fromID to toID. If the reverse
// request is already pending, both are consumed and the friendship is
// established instead (mutual accept).
func (s *Store) CreateRequest(fromID, toID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fromID == toID {
		return fmt.Errorf("%w: friend request to yourself", store.ErrValidation)
	}
	if s.findUser(fromID) == nil {
		return fmt.Errorf("%w: user %d", store.ErrNotFound, fromID)
	}
	if s.findUser(toID) == nil {
		return fmt.Errorf("%w: user %d", store.ErrNotFound, toID)
	}

	reverse := -1
	for i, r := range s.requests {
		if r.FromID == fromID && r.ToID == toID {
			return fmt.Errorf("%w: friend request", store.ErrDuplicate)
		}
		if r.FromID == toID && r.ToID == fromID {
			reverse = i
		}
	}

	prev := s.requests
	if reverse != -1 {
		s.requests = slices.Delete(slices.Clone(s.requests), reverse, reverse+1)
		if err := s.addFriend(fromID, toID); err != nil {
			s.requests = prev
			return err
		}
	} else {
		s.requests = append(s.requests, models.Request{
			FromID:    fromID,
			ToID:      toID,
			CreatedAt: now(),
		})
	}

	if err := s.save("request", s.requests); err != nil {
		s.requests = prev
		return err
	}
	return nil
}

func (s *Store) RemoveRequest(fromID, toID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fromID == toID {
		return fmt.Errorf("%w: friend request to yourself", store.ErrValidation)
	}
	if s.findUser(fromID) == nil {
		return fmt.Errorf("%w: user %d", store.ErrNotFound, fromID)
	}
	if s.findUser(toID) == nil {
		return fmt.Errorf("%w: user %d", store.ErrNotFound, toID)
	}

	index := slices.IndexFunc(s.requests, func(r models.Request) bool {
		return r.FromID == fromID && r.ToID == toID
	})
	if index == -1 {
		return fmt.Errorf("%w: friend request", store.ErrNotFound)
	}

	prev := s.requests
	s.requests = slices.Delete(slices.Clone(s.requests), index, index+1)
	if err := s.save("request", s.requests); err != nil {
		s.requests = prev
		return err
	}
	return nil
}

// RequestIDs returns the senders of requests addressed to the user.
func (s *Store) RequestIDs(userID int) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := []int{}
	for _, r := range s.requests {
		if r.ToID == userID {
			ids = append(ids, r.FromID)
		}
	}
	return ids, nil
}

func (s *Store) HasRequest(fromID, toID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.requests {
		if r.FromID == fromID && r.ToID == toID {
			return true, nil
		}
	}
	return false, nil
}
