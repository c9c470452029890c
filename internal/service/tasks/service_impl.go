package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"taskflow/internal/apperr"
	"taskflow/internal/audit"
	"taskflow/internal/domain"
	"taskflow/internal/platform/logger"
	"taskflow/internal/store"
)

var _ Service = (*service)(nil)

type service struct {
	tasks      *store.TaskStore
	categories *store.CategoryStore
	audit      audit.Recorder
	logger     *slog.Logger
}

// New creates the task service. The audit recorder may be audit.Discard
// but never nil.
func New(
	taskStore *store.TaskStore,
	categoryStore *store.CategoryStore,
	recorder audit.Recorder,
	log *slog.Logger,
) Service {
	if taskStore == nil {
		panic("taskStore cannot be nil")
	}
	if categoryStore == nil {
		panic("categoryStore cannot be nil")
	}
	if recorder == nil {
		panic("recorder cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &service{
		tasks:      taskStore,
		categories: categoryStore,
		audit:      recorder,
		logger:     log.With(slog.String("component", "task_service")),
	}
}

// Get implements Service.Get.
func (s *service) Get(ctx context.Context, userID, taskID int64) (*domain.Task, error) {
	task, err := s.tasks.Get(taskID)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return nil, apperr.NotFound("task")
		}
		return nil, fmt.Errorf("get task %d: %w", taskID, err)
	}
	if task.UserID != userID {
		log := logger.FromContextOrDefault(ctx, s.logger)
		log.Warn("cross-owner task access rejected",
			slog.Int64("task_id", taskID),
			slog.Int64("owner_id", task.UserID),
			slog.Int64("caller_id", userID))
		return nil, apperr.Forbidden("you do not have access to this task")
	}
	return task, nil
}

// requireCategory checks the referenced category exists. Per contract the
// check only fails closed on NotFound; any other lookup failure is
// propagated untouched.
func (s *service) requireCategory(categoryID int64) error {
	_, err := s.categories.Get(categoryID)
	if err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			return apperr.NotFound("category")
		}
		return fmt.Errorf("check category %d: %w", categoryID, err)
	}
	return nil
}
