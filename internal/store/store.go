package store

import (
	"errors"

	"github.com/aleksk/socialnet/internal/models"
)

// Sentinel errors shared by every store implementation. Call sites wrap them
// with context and callers match with errors.Is.
var (
	ErrNotFound   = errors.New("store: not found")
	ErrPermission = errors.New("store: permission denied")
	ErrConflict   = errors.New("store: conflict")
	ErrDuplicate  = errors.New("store: duplicate")
	ErrValidation = errors.New("store: validation failed")
)

// UserUpdate is a field patch for UpdateUser. Nil fields are left untouched.
type UserUpdate struct {
	Name    *string
	Surname *string
	Email   *string
	Img     *string
	Status  *string
}

type Store interface {
	// User operations
	CreateUser(name, surname, email, password string) (*models.User, error)
	Authenticate(email, password string) (*models.User, error)
	GetUserByID(id int) (*models.User, error)
	GetUsers() ([]models.User, error)
	UpdateUser(id int, patch UserUpdate) (*models.User, error)
	UpdatePassword(id int, password string) error

	// Message operations
	CreateMessage(senderID, receiverID int, content string) (*models.Message, error)
	GetChat(id1, id2 int) ([]models.Message, error)
	LastMessage(id1, id2 int) (*models.Message, error)
	UserChats(userID int) ([]int, error)
	ReadMessage(userID int, messageID string) error
	HasUnread(userID int) (bool, error)

	// Friend operations
	AddFriend(id1, id2 int) error
	RemoveFriend(id1, id2 int) error
	FriendIDs(userID int) ([]int, error)
	AreFriends(id1, id2 int) (bool, error)

	// Friend request operations
	CreateRequest(fromID, toID int) error
	RemoveRequest(fromID, toID int) error
	RequestIDs(userID int) ([]int, error)
	HasRequest(fromID, toID int) (bool, error)

	// Post operations
	CreatePost(userID, wallID int, content string) (*models.Post, error)
	GetPostByID(id int) (*models.Post, error)
	GetWallPosts(wallID int) ([]models.Post, error)
	UpdatePost(userID, postID int, content string) (*models.Post, error)
	RemovePost(userID, postID int) error
	PostLikes(postID, userID int) (count int, liked bool, err error)

	// Like operations
	ToggleLike(userID, postID int) error
	LikeUserIDs(postID int) ([]int, error)
}

// ChatStore is the slice of Store the realtime layer depends on: message
// lifecycle plus user lookup for resolving conversation participants.
type ChatStore interface {
	GetUserByID(id int) (*models.User, error)
	CreateMessage(senderID, receiverID int, content string) (*models.Message, error)
	GetChat(id1, id2 int) ([]models.Message, error)
	LastMessage(id1, id2 int) (*models.Message, error)
	UserChats(userID int) ([]int, error)
	ReadMessage(userID int, messageID string) error
	HasUnread(userID int) (bool, error)
}
