package store

import (
	"strings"
	"sync"

	"taskflow/internal/domain"
)

// UserStore owns the user records. Users are seeded at startup and
// read-only afterwards; the mutex still guards the maps for safety.
type UserStore struct {
	mu      sync.RWMutex
	users   map[int64]domain.User
	byEmail map[string]int64
}

// NewUserStore returns an empty user store.
func NewUserStore() *UserStore {
	return &UserStore{
		users:   make(map[int64]domain.User),
		byEmail: make(map[string]int64),
	}
}

// Get returns the user or ErrUserNotFound.
func (s *UserStore) Get(id int64) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	return user, nil
}

// GetByEmail returns the user with the given email (case-insensitive)
// or ErrUserNotFound.
func (s *UserStore) GetByEmail(email string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	return s.users[id], nil
}

// Seed inserts fixture users.
func (s *UserStore) Seed(users ...domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range users {
		s.users[user.ID] = user
		s.byEmail[strings.ToLower(user.Email)] = user.ID
	}
}
