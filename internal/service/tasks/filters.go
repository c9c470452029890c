package tasks

import (
	"strings"

	"taskflow/internal/domain"
)

// Predicate is a boolean test over a task record.
type Predicate func(*domain.Task) bool

// Filters holds the recognized, already-validated filter options. Nil
// pointers mean "not filtered on".
type Filters struct {
	Completed  *bool
	Priority   *domain.Priority
	CategoryID *int64
	SearchTerm string
}

// ownerPredicate is the mandatory first predicate: the record belongs to
// the caller. It is never subject to OR relaxation.
func ownerPredicate(userID int64) Predicate {
	return func(t *domain.Task) bool {
		return t.UserID == userID
	}
}

// Predicates translates the filters into independent predicates, one per
// set option. The search-term predicate matches the term against title
// OR description; that inner OR is part of the single predicate and has
// nothing to do with the top-level operator.
func (f Filters) Predicates() []Predicate {
	var preds []Predicate

	if f.Completed != nil {
		want := *f.Completed
		preds = append(preds, func(t *domain.Task) bool {
			return t.Completed == want
		})
	}

	if f.Priority != nil {
		want := *f.Priority
		preds = append(preds, func(t *domain.Task) bool {
			return t.Priority == want
		})
	}

	if f.CategoryID != nil {
		want := *f.CategoryID
		preds = append(preds, func(t *domain.Task) bool {
			return t.CategoryID == want
		})
	}

	if f.SearchTerm != "" {
		term := strings.ToLower(f.SearchTerm)
		preds = append(preds, func(t *domain.Task) bool {
			return strings.Contains(strings.ToLower(t.Title), term) ||
				strings.Contains(strings.ToLower(t.Description), term)
		})
	}

	return preds
}
