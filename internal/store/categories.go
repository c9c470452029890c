package store

import (
	"sync"

	"taskflow/internal/domain"
)

// CategoryStore owns the category records. Same arena layout as
// TaskStore; categories are small and rarely mutated.
type CategoryStore struct {
	mu         sync.RWMutex
	categories map[int64]domain.Category
	order      []int64
	nextID     int64
}

// NewCategoryStore returns an empty category store with ids starting at 1.
func NewCategoryStore() *CategoryStore {
	return &CategoryStore{
		categories: make(map[int64]domain.Category),
		nextID:     1,
	}
}

// Create assigns the next id and stores the category.
func (s *CategoryStore) Create(category domain.Category) domain.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	category.ID = s.nextID
	s.nextID++
	s.categories[category.ID] = category
	s.order = append(s.order, category.ID)
	return category
}

// Get returns the category or ErrCategoryNotFound.
func (s *CategoryStore) Get(id int64) (domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	category, ok := s.categories[id]
	if !ok {
		return domain.Category{}, ErrCategoryNotFound
	}
	return category, nil
}

// Exists reports whether the category id is present.
func (s *CategoryStore) Exists(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.categories[id]
	return ok
}

// List returns every category in insertion order.
func (s *CategoryStore) List() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Category, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.categories[id])
	}
	return out
}

// Seed inserts fixture categories with their given ids and advances the
// id allocator past the highest of them.
func (s *CategoryStore) Seed(categories ...domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, category := range categories {
		s.categories[category.ID] = category
		s.order = append(s.order, category.ID)
		if category.ID >= s.nextID {
			s.nextID = category.ID + 1
		}
	}
}
