package jsonstore

import (
	"fmt"
	"slices"
	"sort"

	"github.com/google/uuid"

	"github.com/aleksk/socialnet/internal/models"
	"github.com/aleksk/socialnet/internal/store"
)

// maxChatMessages caps how many messages a single conversation retains.
// Sending past the cap evicts the conversation's oldest message from the
// global collection.
const maxChatMessages = 100

func (s *Store) CreateMessage(senderID, receiverID int, content string) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if content == "" {
		return nil, fmt.Errorf("%w: message content must not be empty", store.ErrValidation)
	}

	message := models.Message{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		CreatedAt:  now(),
	}

	prev := slices.Clone(s.messages)
	s.messages = append(s.messages, message)

	chat := s.chat(senderID, receiverID)
	for len(chat) > maxChatMessages {
		oldest := chat[0]
		chat = chat[1:]
		s.messages = slices.DeleteFunc(s.messages, func(m models.Message) bool {
			return m.ID == oldest.ID
		})
	}

	if err := s.save("message", s.messages); err != nil {
		s.messages = prev
		return nil, err
	}

	return &message, nil
}

func (s *Store) GetChat(id1, id2 int) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.chat(id1, id2), nil
}

// LastMessage returns the newest message of the conversation, or ErrNotFound
// if the two users never exchanged one. Equal timestamps resolve to the
// later-stored message.
func (s *Store) LastMessage(id1, id2 int) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chat := s.chat(id1, id2)
	if len(chat) == 0 {
		return nil, fmt.Errorf("%w: no messages between %d and %d", store.ErrNotFound, id1, id2)
	}

	last := chat[len(chat)-1]
	return &last, nil
}

// UserChats returns the distinct ids of everyone the user has exchanged
// messages with, in first-contact order.
func (s *Store) UserChats(userID int) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[int]bool)
	chats := []int{}
	add := func(id int) {
		if id != userID && !seen[id] {
			seen[id] = true
			chats = append(chats, id)
		}
	}

	for _, m := range s.messages {
		if m.SenderID == userID || m.ReceiverID == userID {
			add(m.SenderID)
			add(m.ReceiverID)
		}
	}

	return chats, nil
}

func (s *Store) ReadMessage(userID int, messageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var message *models.Message
	for i := range s.messages {
		if s.messages[i].ID == messageID {
			message = &s.messages[i]
			break
		}
	}

	if message == nil {
		return fmt.Errorf("%w: message %s", store.ErrNotFound, messageID)
	}
	if message.Readed {
		return fmt.Errorf("%w: message already read", store.ErrConflict)
	}
	if message.ReceiverID != userID {
		return fmt.Errorf("%w: only the receiver may read a message", store.ErrPermission)
	}

	message.Readed = true
	if err := s.save("message", s.messages); err != nil {
		message.Readed = false
		return err
	}
	return nil
}

func (s *Store) HasUnread(userID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.messages {
		if m.ReceiverID == userID && !m.Readed {
			return true, nil
		}
	}
	return false, nil
}

// chat returns the conversation between id1 and id2 ascending by CreatedAt.
// The stable sort keeps storage order for equal timestamps. Callers hold the
// lock.
func (s *Store) chat(id1, id2 int) []models.Message {
	chat := []models.Message{}
	for _, m := range s.messages {
		if m.InChat(id1, id2) {
			chat = append(chat, m)
		}
	}

	sort.SliceStable(chat, func(i, j int) bool {
		return chat[i].CreatedAt < chat[j].CreatedAt
	})
	return chat
}
