// Package store holds the in-memory record stores. Each store is an
// indexed arena: an id-to-record map plus an insertion-order id slice and
// a monotonic id allocator. Ids are never reused within a process
// lifetime. The stores have no persistence; all access is serialized
// behind a per-store mutex.
package store

import (
	"sync"

	"taskflow/internal/domain"
)

// TaskStore owns the task records.
type TaskStore struct {
	mu     sync.RWMutex
	tasks  map[int64]*domain.Task
	order  []int64
	nextID int64
}

// NewTaskStore returns an empty task store with ids starting at 1.
func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasks:  make(map[int64]*domain.Task),
		nextID: 1,
	}
}

// Create assigns the next id to the task, appends it to the arena and
// returns a snapshot of the stored record.
func (s *TaskStore) Create(task *domain.Task) *domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	task = task.Clone()
	task.ID = s.nextID
	s.nextID++
	s.tasks[task.ID] = task
	s.order = append(s.order, task.ID)
	return task.Clone()
}

// Get returns a snapshot of the task or ErrTaskNotFound.
func (s *TaskStore) Get(id int64) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}
	return task.Clone(), nil
}

// List returns snapshots of every task in insertion order.
func (s *TaskStore) List() []*domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Task, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.tasks[id].Clone())
	}
	return out
}

// Update applies mutate to the task under the write lock, so the
// read-modify-write is atomic with respect to other store operations.
// mutate receives a copy; the arena record is replaced only when mutate
// returns nil. Returns a snapshot of the updated record.
func (s *TaskStore) Update(id int64, mutate func(*domain.Task) error) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}

	updated := current.Clone()
	if err := mutate(updated); err != nil {
		return nil, err
	}
	// Identity and ownership are immutable regardless of what mutate did.
	updated.ID = current.ID
	updated.UserID = current.UserID
	updated.CreatedAt = current.CreatedAt

	s.tasks[id] = updated
	return updated.Clone(), nil
}

// DeleteOwned removes the task if it exists and belongs to userID, and
// returns a snapshot of the removed record. Existence and ownership are
// checked together: a task owned by someone else reports the same
// ErrTaskNotFound as a missing id, so deletes cannot probe other owners'
// tasks.
func (s *TaskStore) DeleteOwned(id, userID int64) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok || task.UserID != userID {
		return nil, ErrTaskNotFound
	}

	delete(s.tasks, id)
	for i, ordered := range s.order {
		if ordered == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return task, nil
}

// Seed inserts fixture tasks with their given ids and advances the id
// allocator past the highest of them. Intended for startup seeding only.
func (s *TaskStore) Seed(tasks ...*domain.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, task := range tasks {
		task = task.Clone()
		s.tasks[task.ID] = task
		s.order = append(s.order, task.ID)
		if task.ID >= s.nextID {
			s.nextID = task.ID + 1
		}
	}
}
