// Package jsonstore persists every collection as a single JSON array file
// under the data directory, mirrored by an in-memory slice. The in-memory
// slice is the source of truth; each mutation rewrites the whole file.
package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aleksk/socialnet/internal/models"
	"github.com/aleksk/socialnet/internal/store"
)

type Store struct {
	dir string

	// One lock serializes every operation. Some operations span collections
	// (friend-request acceptance touches requests and friends), so the lock
	// is store-wide rather than per collection.
	mu sync.Mutex

	users    []models.User
	messages []models.Message
	friends  []models.FriendPair
	requests []models.Request
	posts    []models.Post
	likes    []models.Like
}

var _ store.Store = (*Store)(nil)

// New loads every collection from dir, creating the directory and empty
// collection files as needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	s := &Store{dir: dir}

	var err error
	if s.users, err = load[models.User](s.path("user")); err != nil {
		return nil, err
	}
	if s.messages, err = load[models.Message](s.path("message")); err != nil {
		return nil, err
	}
	if s.friends, err = load[models.FriendPair](s.path("friend")); err != nil {
		return nil, err
	}
	if s.requests, err = load[models.Request](s.path("request")); err != nil {
		return nil, err
	}
	if s.posts, err = load[models.Post](s.path("post")); err != nil {
		return nil, err
	}
	if s.likes, err = load[models.Like](s.path("like")); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// load reads a collection file, creating it with an empty array if absent.
func load[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
			return nil, fmt.Errorf("create %s: %w", path, err)
		}
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if len(data) == 0 {
		return []T{}, nil
	}

	var collection []T
	if err := json.Unmarshal(data, &collection); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if collection == nil {
		collection = []T{}
	}
	return collection, nil
}

// save rewrites a collection file from the current in-memory slice. It must
// run with the store lock held so the file always reflects the latest state,
// never a stale snapshot.
func (s *Store) save(name string, collection any) error {
	data, err := json.MarshalIndent(collection, "", "   ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	if err := os.WriteFile(s.path(name), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func now() int64 {
	return time.Now().UnixMilli()
}
