// Package stats aggregates task statistics. Read-only over the stores.
package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"taskflow/internal/apperr"
	"taskflow/internal/domain"
	"taskflow/internal/store"
)

// Productivity summarizes one user's completion rate.
type Productivity struct {
	UserID         int64  `json:"usuarioId"`
	Name           string `json:"nombre"`
	TotalTasks     int    `json:"totalTareas"`
	CompletedTasks int    `json:"tareasCompletadas"`
	// Percentage is completed/total*100, 0 when the user has no tasks.
	Percentage float64 `json:"productividad"`
}

// Service is the statistics contract consumed by the HTTP layer.
type Service interface {
	// UserProductivity computes the completion rate for targetUserID.
	// Callers may only read their own statistics unless they are the
	// admin.
	UserProductivity(ctx context.Context, callerID, targetUserID int64) (*Productivity, error)

	// CompletedPerDay counts completed tasks across all users, grouped
	// by creation date (YYYY-MM-DD).
	CompletedPerDay(ctx context.Context) (map[string]int, error)
}

var _ Service = (*service)(nil)

type service struct {
	tasks  *store.TaskStore
	users  *store.UserStore
	logger *slog.Logger
}

// New creates the statistics service.
func New(taskStore *store.TaskStore, userStore *store.UserStore, log *slog.Logger) Service {
	if taskStore == nil {
		panic("taskStore cannot be nil")
	}
	if userStore == nil {
		panic("userStore cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &service{
		tasks:  taskStore,
		users:  userStore,
		logger: log.With(slog.String("component", "stats_service")),
	}
}

// UserProductivity implements Service.UserProductivity.
func (s *service) UserProductivity(ctx context.Context, callerID, targetUserID int64) (*Productivity, error) {
	user, err := s.users.Get(targetUserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, apperr.NotFound("user")
		}
		return nil, fmt.Errorf("get user %d: %w", targetUserID, err)
	}

	if callerID != targetUserID && !domain.IsAdmin(callerID) {
		return nil, apperr.Forbidden("you do not have access to these statistics")
	}

	total, completed := 0, 0
	for _, task := range s.tasks.List() {
		if task.UserID != targetUserID {
			continue
		}
		total++
		if task.Completed {
			completed++
		}
	}

	percentage := 0.0
	if total > 0 {
		percentage = float64(completed) / float64(total) * 100
	}

	return &Productivity{
		UserID:         targetUserID,
		Name:           user.Name,
		TotalTasks:     total,
		CompletedTasks: completed,
		Percentage:     percentage,
	}, nil
}

// CompletedPerDay implements Service.CompletedPerDay.
func (s *service) CompletedPerDay(_ context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, task := range s.tasks.List() {
		if !task.Completed {
			continue
		}
		day := task.CreatedAt.UTC().Format("2006-01-02")
		counts[day]++
	}
	return counts, nil
}
