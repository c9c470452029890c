package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"taskflow/internal/apperr"
	"taskflow/internal/audit"
	"taskflow/internal/domain"
	"taskflow/internal/platform/logger"
	"taskflow/internal/store"
)

// Create implements Service.Create.
func (s *service) Create(ctx context.Context, userID int64, input CreateInput) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var violations []string
	if v := domain.ValidateTitle(input.Title); v != "" {
		violations = append(violations, v)
	}
	if v := domain.ValidateDescription(input.Description); v != "" {
		violations = append(violations, v)
	}
	priority := domain.PriorityMedium
	if input.Priority != nil {
		priority = *input.Priority
		if v := domain.ValidatePriority(priority); v != "" {
			violations = append(violations, v)
		}
	}
	if len(violations) > 0 {
		return nil, apperr.Validation("invalid task data", violations...)
	}

	categoryID := DefaultCategoryID
	if input.CategoryID != nil {
		categoryID = *input.CategoryID
		if err := s.requireCategory(categoryID); err != nil {
			return nil, err
		}
	}

	completed := false
	if input.Completed != nil {
		completed = *input.Completed
	}

	task := s.tasks.Create(&domain.Task{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Completed:   completed,
		Priority:    priority,
		UserID:      userID,
		CategoryID:  categoryID,
		CreatedAt:   time.Now().UTC(),
	})

	log.Info("task created",
		slog.Int64("task_id", task.ID),
		slog.Int64("user_id", userID))
	s.audit.Record(audit.Entry{
		Kind:        audit.KindCreate,
		Description: fmt.Sprintf("task #%d created", task.ID),
		Details:     map[string]any{"titulo": task.Title, "userId": userID},
	})
	return task, nil
}

// Replace implements Service.Replace.
func (s *service) Replace(ctx context.Context, userID, taskID int64, input ReplaceInput) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Existence and ownership first: a missing task is 404 and a foreign
	// one 403 before any field validation runs.
	if _, err := s.Get(ctx, userID, taskID); err != nil {
		return nil, err
	}

	var violations []string
	if v := domain.ValidateTitle(input.Title); v != "" {
		violations = append(violations, v)
	}
	if v := domain.ValidateDescription(input.Description); v != "" {
		violations = append(violations, v)
	}
	if v := domain.ValidatePriority(input.Priority); v != "" {
		violations = append(violations, v)
	}
	if input.CategoryID < 1 {
		violations = append(violations, "categoriaId: must be a positive integer")
	}
	if len(violations) > 0 {
		return nil, apperr.Validation("invalid task data", violations...)
	}
	if err := s.requireCategory(input.CategoryID); err != nil {
		return nil, err
	}

	task, err := s.tasks.Update(taskID, func(task *domain.Task) error {
		task.Title = strings.TrimSpace(input.Title)
		task.Description = strings.TrimSpace(input.Description)
		task.Priority = input.Priority
		task.Completed = input.Completed
		task.CategoryID = input.CategoryID
		task.Touch(time.Now().UTC())
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return nil, apperr.NotFound("task")
		}
		return nil, fmt.Errorf("replace task %d: %w", taskID, err)
	}

	log.Info("task replaced",
		slog.Int64("task_id", taskID),
		slog.Int64("user_id", userID))
	s.audit.Record(audit.Entry{
		Kind:        audit.KindUpdate,
		Description: fmt.Sprintf("task #%d replaced", taskID),
		Details:     map[string]any{"titulo": task.Title, "userId": userID},
	})
	return task, nil
}

// patchableFields is the PATCH allow-list.
var patchableFields = map[string]bool{
	"titulo":      true,
	"descripcion": true,
	"prioridad":   true,
	"completada":  true,
	"categoriaId": true,
}

// Patch implements Service.Patch. All field violations across the whole
// request are collected and raised together; validation never stops at
// the first offending field.
func (s *service) Patch(ctx context.Context, userID, taskID int64, fields map[string]json.RawMessage) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.Get(ctx, userID, taskID); err != nil {
		return nil, err
	}

	if len(fields) == 0 {
		return nil, apperr.Validation("must supply at least one field to update")
	}

	// Deterministic violation order regardless of map iteration.
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parsed := struct {
		title       *string
		description *string
		priority    *domain.Priority
		completed   *bool
		categoryID  *int64
	}{}

	var violations []string
	for _, name := range names {
		raw := fields[name]
		if !patchableFields[name] {
			violations = append(violations, fmt.Sprintf("%s: field is not allowed", name))
			continue
		}

		switch name {
		case "titulo":
			var value string
			if err := json.Unmarshal(raw, &value); err != nil {
				violations = append(violations, "titulo: must be a string")
				continue
			}
			if v := domain.ValidateTitle(value); v != "" {
				violations = append(violations, v)
				continue
			}
			trimmed := strings.TrimSpace(value)
			parsed.title = &trimmed

		case "descripcion":
			var value string
			if err := json.Unmarshal(raw, &value); err != nil {
				violations = append(violations, "descripcion: must be a string")
				continue
			}
			if v := domain.ValidateDescription(value); v != "" {
				violations = append(violations, v)
				continue
			}
			trimmed := strings.TrimSpace(value)
			parsed.description = &trimmed

		case "prioridad":
			var value domain.Priority
			if err := json.Unmarshal(raw, &value); err != nil {
				violations = append(violations, "prioridad: must be a string")
				continue
			}
			if v := domain.ValidatePriority(value); v != "" {
				violations = append(violations, v)
				continue
			}
			parsed.priority = &value

		case "completada":
			var value bool
			if err := json.Unmarshal(raw, &value); err != nil {
				violations = append(violations, "completada: must be a boolean")
				continue
			}
			parsed.completed = &value

		case "categoriaId":
			var value int64
			if err := json.Unmarshal(raw, &value); err != nil || value < 1 {
				violations = append(violations, "categoriaId: must be a positive integer")
				continue
			}
			if err := s.requireCategory(value); err != nil {
				// Fails closed only on NotFound; anything unexpected from
				// the lookup propagates instead of being swallowed.
				if apperr.IsKind(err, apperr.KindNotFound) {
					violations = append(violations,
						fmt.Sprintf("categoriaId: category #%d does not exist", value))
					continue
				}
				return nil, err
			}
			parsed.categoryID = &value
		}
	}

	if len(violations) > 0 {
		return nil, apperr.Validation("validation errors", violations...)
	}

	task, err := s.tasks.Update(taskID, func(task *domain.Task) error {
		if parsed.title != nil {
			task.Title = *parsed.title
		}
		if parsed.description != nil {
			task.Description = *parsed.description
		}
		if parsed.priority != nil {
			task.Priority = *parsed.priority
		}
		if parsed.completed != nil {
			task.Completed = *parsed.completed
		}
		if parsed.categoryID != nil {
			task.CategoryID = *parsed.categoryID
		}
		task.Touch(time.Now().UTC())
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return nil, apperr.NotFound("task")
		}
		return nil, fmt.Errorf("patch task %d: %w", taskID, err)
	}

	log.Info("task patched",
		slog.Int64("task_id", taskID),
		slog.Int64("user_id", userID),
		slog.Any("fields", names))
	s.audit.Record(audit.Entry{
		Kind:        audit.KindUpdate,
		Description: fmt.Sprintf("task #%d patched", taskID),
		Details:     map[string]any{"cambios": names, "userId": userID},
	})
	return task, nil
}

// Delete implements Service.Delete.
func (s *service) Delete(ctx context.Context, userID, taskID int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.tasks.DeleteOwned(taskID, userID)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			// Foreign-owned and nonexistent report identically so deletes
			// cannot probe other owners' tasks.
			return nil, apperr.NotFound("task")
		}
		return nil, fmt.Errorf("delete task %d: %w", taskID, err)
	}

	log.Info("task deleted",
		slog.Int64("task_id", taskID),
		slog.Int64("user_id", userID))
	s.audit.Record(audit.Entry{
		Kind:        audit.KindDelete,
		Description: fmt.Sprintf("task #%d deleted", taskID),
		Details:     map[string]any{"titulo": task.Title, "userId": userID},
	})
	return task, nil
}
