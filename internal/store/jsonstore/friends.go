package jsonstore

import (
	"fmt"
	"slices"

	"github.com/aleksk/socialnet/internal/models"
	"github.com/aleksk/socialnet/internal/store"
)

func pairOf(id1, id2 int) models.FriendPair {
	return models.FriendPair{min(id1, id2), max(id1, id2)}
}

func (s *Store) AddFriend(id1, id2 int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.addFriend(id1, id2)
}

// addFriend is the lock-free core, shared with request acceptance.
func (s *Store) addFriend(id1, id2 int) error {
	if id1 == id2 {
		return fmt.Errorf("%w: can't befriend yourself", store.ErrValidation)
	}

	pair := pairOf(id1, id2)
	if slices.Contains(s.friends, pair) {
		return fmt.Errorf("%w: already friends", store.ErrDuplicate)
	}

	s.friends = append(s.friends, pair)
	if err := s.save("friend", s.friends); err != nil {
		s.friends = s.friends[:len(s.friends)-1]
		return err
	}
	return nil
}

func (s *Store) RemoveFriend(id1, id2 int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id1 == id2 {
		return fmt.Errorf("%w: can't befriend yourself", store.ErrValidation)
	}

	pair := pairOf(id1, id2)
	index := slices.Index(s.friends, pair)
	if index == -1 {
		return fmt.Errorf("%w: friendship", store.ErrNotFound)
	}

	prev := s.friends
	s.friends = slices.Delete(slices.Clone(s.friends), index, index+1)
	if err := s.save("friend", s.friends); err != nil {
		s.friends = prev
		return err
	}
	return nil
}

func (s *Store) FriendIDs(userID int) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := []int{}
	for _, pair := range s.friends {
		switch userID {
		case pair[0]:
			ids = append(ids, pair[1])
		case pair[1]:
			ids = append(ids, pair[0])
		}
	}
	return ids, nil
}

func (s *Store) AreFriends(id1, id2 int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id1 == id2 {
		return false, nil
	}
	return slices.Contains(s.friends, pairOf(id1, id2)), nil
}
