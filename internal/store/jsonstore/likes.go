package jsonstore

import (
	"fmt"
	"slices"

	"github.com/aleksk/socialnet/internal/models"
	"github.com/aleksk/socialnet/internal/store"
)

// ToggleLike adds the user's like on the post, or removes it if already set.
func (s *Store) ToggleLike(userID, postID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !slices.ContainsFunc(s.posts, func(p models.Post) bool { return p.ID == postID }) {
		return fmt.Errorf("%w: post %d", store.ErrNotFound, postID)
	}

	prev := s.likes
	index := slices.IndexFunc(s.likes, func(l models.Like) bool {
		return l.UserID == userID && l.PostID == postID
	})
	if index != -1 {
		s.likes = slices.Delete(slices.Clone(s.likes), index, index+1)
	} else {
		s.likes = append(s.likes, models.Like{
			UserID:    userID,
			PostID:    postID,
			CreatedAt: now(),
		})
	}

	if err := s.save("like", s.likes); err != nil {
		s.likes = prev
		return err
	}
	return nil
}

func (s *Store) LikeUserIDs(postID int) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := []int{}
	for _, l := range s.likes {
		if l.PostID == postID {
			ids = append(ids, l.UserID)
		}
	}
	return ids, nil
}
