package tasks

import (
	"context"
	"log/slog"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"taskflow/internal/domain"
	"taskflow/internal/platform/logger"
)

// List implements Service.List.
func (s *service) List(ctx context.Context, userID int64, query ListQuery) (*Page, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	owner := ownerPredicate(userID)
	others := query.Filters.Predicates()

	var matched []*domain.Task
	for _, task := range s.tasks.List() {
		// Ownership is always AND: a record never appears for the wrong
		// owner under any operator.
		if !owner(task) {
			continue
		}
		// OR with zero extra predicates degenerates to ownership-only,
		// exactly like AND with zero extra predicates.
		match := matchesAll(task, others)
		if query.Operator == OperatorOr && len(others) > 0 {
			match = matchesAny(task, others)
		}
		if match {
			matched = append(matched, task)
		}
	}

	sortTasks(matched, query.Sort)

	page, pageSize := query.Page, query.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	total := len(matched)
	totalPages := (total + pageSize - 1) / pageSize

	offset := (page - 1) * pageSize
	end := offset + pageSize
	if offset > total {
		offset = total
	}
	if end > total {
		end = total
	}

	log.Debug("task query evaluated",
		slog.Int64("user_id", userID),
		slog.Int("predicates", len(others)),
		slog.String("operator", string(query.Operator)),
		slog.Int("total", total),
		slog.Int("page", page))

	items := matched[offset:end]
	if items == nil {
		// An empty page serializes as [] rather than null.
		items = []*domain.Task{}
	}

	return &Page{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func matchesAll(task *domain.Task, preds []Predicate) bool {
	for _, pred := range preds {
		if !pred(task) {
			return false
		}
	}
	return true
}

func matchesAny(task *domain.Task, preds []Predicate) bool {
	for _, pred := range preds {
		if pred(task) {
			return true
		}
	}
	return false
}

// sortTasks orders the filtered set in place. Sorting is stable so ties
// keep insertion order.
func sortTasks(list []*domain.Task, key SortKey) {
	switch key {
	case SortTitle:
		// Collators are not safe for concurrent use; build one per call.
		c := collate.New(language.Spanish)
		sort.SliceStable(list, func(i, j int) bool {
			return c.CompareString(list[i].Title, list[j].Title) < 0
		})
	case SortPriority:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Priority.Rank() > list[j].Priority.Rank()
		})
	case SortDate:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		})
	}
}
