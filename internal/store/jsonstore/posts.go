package jsonstore

import (
	"fmt"
	"slices"

	"github.com/aleksk/socialnet/internal/models"
	"github.com/aleksk/socialnet/internal/store"
)

func (s *Store) CreatePost(userID, wallID int, content string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if userID == 0 || wallID == 0 || content == "" {
		return nil, fmt.Errorf("%w: post needs an author, a wall and content", store.ErrValidation)
	}

	maxID := 0
	for _, p := range s.posts {
		if p.ID > maxID {
			maxID = p.ID
		}
	}

	post := models.Post{
		ID:        maxID + 1,
		WallID:    wallID,
		UserID:    userID,
		Content:   content,
		CreatedAt: now(),
	}

	s.posts = append(s.posts, post)
	if err := s.save("post", s.posts); err != nil {
		s.posts = s.posts[:len(s.posts)-1]
		return nil, err
	}
	return &post, nil
}

func (s *Store) GetPostByID(id int) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.posts {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: post %d", store.ErrNotFound, id)
}

func (s *Store) GetWallPosts(wallID int) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts := []models.Post{}
	for _, p := range s.posts {
		if p.WallID == wallID {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

func (s *Store) UpdatePost(userID, postID int, content string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := slices.IndexFunc(s.posts, func(p models.Post) bool { return p.ID == postID })
	if index == -1 {
		return nil, fmt.Errorf("%w: post %d", store.ErrNotFound, postID)
	}

	post := &s.posts[index]
	if post.UserID != userID {
		return nil, fmt.Errorf("%w: only the author may edit a post", store.ErrPermission)
	}
	if content == "" {
		return nil, fmt.Errorf("%w: post content must not be empty", store.ErrValidation)
	}

	prev := post.Content
	post.Content = content
	if err := s.save("post", s.posts); err != nil {
		post.Content = prev
		return nil, err
	}

	copied := *post
	return &copied, nil
}

// RemovePost deletes a post and its likes. Both the author and the wall
// owner may delete.
func (s *Store) RemovePost(userID, postID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := slices.IndexFunc(s.posts, func(p models.Post) bool { return p.ID == postID })
	if index == -1 {
		return fmt.Errorf("%w: post %d", store.ErrNotFound, postID)
	}

	post := s.posts[index]
	if post.UserID != userID && post.WallID != userID {
		return fmt.Errorf("%w: not your post or wall", store.ErrPermission)
	}

	prevPosts, prevLikes := s.posts, s.likes
	s.posts = slices.Delete(slices.Clone(s.posts), index, index+1)
	s.likes = slices.DeleteFunc(slices.Clone(s.likes), func(l models.Like) bool {
		return l.PostID == postID
	})

	if err := s.save("post", s.posts); err != nil {
		s.posts, s.likes = prevPosts, prevLikes
		return err
	}
	if err := s.save("like", s.likes); err != nil {
		s.likes = prevLikes
		return err
	}
	return nil
}

// PostLikes reports the like count of a post and whether userID is among
// the likers.
func (s *Store) PostLikes(postID, userID int) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count, liked := 0, false
	for _, l := range s.likes {
		if l.PostID == postID {
			count++
			if l.UserID == userID {
				liked = true
			}
		}
	}
	return count, liked, nil
}
