package jsonstore

import (
	"fmt"
	"net/mail"

	"golang.org/x/crypto/bcrypt"

	"github.com/aleksk/socialnet/internal/models"
	"github.com/aleksk/socialnet/internal/store"
)

const defaultAvatar = "/sets/avatar.png"

func (s *Store) CreateUser(name, surname, email, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for field, value := range map[string]string{
		"name": name, "surname": surname, "email": email, "password": password,
	} {
		if value == "" {
			return nil, fmt.Errorf("%w: %s must not be empty", store.ErrValidation, field)
		}
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: not an email address", store.ErrValidation)
	}

	if len(password) < 3 {
		return nil, fmt.Errorf("%w: password must be at least 3 characters", store.ErrValidation)
	}

	maxID := 0
	for _, u := range s.users {
		if u.Email == email {
			return nil, fmt.Errorf("%w: user with this email exists", store.ErrDuplicate)
		}
		if u.ID > maxID {
			maxID = u.ID
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:       maxID + 1,
		Name:     name,
		Surname:  surname,
		Email:    email,
		Password: string(hash),
		Img:      defaultAvatar,
	}

	s.users = append(s.users, user)
	if err := s.save("user", s.users); err != nil {
		s.users = s.users[:len(s.users)-1]
		return nil, err
	}

	sanitized := user.Sanitized()
	return &sanitized, nil
}

func (s *Store) Authenticate(email, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.findUserByEmail(email)
	if user == nil {
		return nil, fmt.Errorf("%w: user", store.ErrNotFound)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: wrong password", store.ErrPermission)
	}

	sanitized := user.Sanitized()
	return &sanitized, nil
}

func (s *Store) GetUserByID(id int) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.findUser(id)
	if user == nil {
		return nil, fmt.Errorf("%w: user %d", store.ErrNotFound, id)
	}

	sanitized := user.Sanitized()
	return &sanitized, nil
}

func (s *Store) GetUsers() ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u.Sanitized())
	}
	return users, nil
}

func (s *Store) UpdateUser(id int, patch store.UserUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.findUser(id)
	if user == nil {
		return nil, fmt.Errorf("%w: user %d", store.ErrNotFound, id)
	}

	if patch.Email != nil {
		for _, u := range s.users {
			if u.ID != id && u.Email == *patch.Email {
				return nil, fmt.Errorf("%w: email", store.ErrDuplicate)
			}
		}
	}

	prev := *user
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&user.Name, patch.Name)
	apply(&user.Surname, patch.Surname)
	apply(&user.Email, patch.Email)
	apply(&user.Img, patch.Img)
	apply(&user.Status, patch.Status)

	if err := s.save("user", s.users); err != nil {
		*user = prev
		return nil, err
	}

	sanitized := user.Sanitized()
	return &sanitized, nil
}

func (s *Store) UpdatePassword(id int, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.findUser(id)
	if user == nil {
		return fmt.Errorf("%w: user %d", store.ErrNotFound, id)
	}

	if len(password) < 3 {
		return fmt.Errorf("%w: password must be at least 3 characters", store.ErrValidation)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil {
		return fmt.Errorf("%w: new password matches the old one", store.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	prev := user.Password
	user.Password = string(hash)
	if err := s.save("user", s.users); err != nil {
		user.Password = prev
		return err
	}
	return nil
}

// findUser returns a pointer into the users slice; callers hold the lock.
func (s *Store) findUser(id int) *models.User {
	for i := range s.users {
		if s.users[i].ID == id {
			return &s.users[i]
		}
	}
	return nil
}

func (s *Store) findUserByEmail(email string) *models.User {
	for i := range s.users {
		if s.users[i].Email == email {
			return &s.users[i]
		}
	}
	return nil
}
