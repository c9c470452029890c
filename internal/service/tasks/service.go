// Package tasks implements the task query pipeline and mutation
// operations. Every operation takes the caller's user id explicitly;
// nothing here reads identity from shared request state.
package tasks

import (
	"context"
	"encoding/json"

	"taskflow/internal/domain"
)

// Operator controls how the non-ownership predicates combine. Ownership
// is always AND regardless of the operator.
type Operator string

const (
	OperatorAnd Operator = "AND"
	OperatorOr  Operator = "OR"
)

// Valid reports whether op is a recognized operator.
func (op Operator) Valid() bool {
	return op == OperatorAnd || op == OperatorOr
}

// SortKey selects the ordering applied after filtering. The zero value
// keeps insertion order.
type SortKey string

const (
	SortNone     SortKey = ""
	SortTitle    SortKey = "titulo"
	SortPriority SortKey = "prioridad"
	SortDate     SortKey = "fecha"
)

// Valid reports whether k is a recognized sort key.
func (k SortKey) Valid() bool {
	switch k {
	case SortNone, SortTitle, SortPriority, SortDate:
		return true
	}
	return false
}

// Pagination bounds.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// DefaultCategoryID is assigned when a task is created without a
// category.
const DefaultCategoryID int64 = 1

// ListQuery is a validated listing request. Invalid wire input must be
// rejected before a ListQuery is built.
type ListQuery struct {
	Filters  Filters
	Operator Operator
	Sort     SortKey
	Page     int
	PageSize int
}

// Page is one slice of the filtered, sorted result set plus its
// metadata.
type Page struct {
	Items      []*domain.Task
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// CreateInput carries the fields for a new task. Nil optionals take the
// documented defaults.
type CreateInput struct {
	Title       string
	Description string
	Priority    *domain.Priority
	Completed   *bool
	CategoryID  *int64
}

// ReplaceInput carries the full field set for a PUT. The handler rejects
// requests with any field missing before building one.
type ReplaceInput struct {
	Title       string
	Description string
	Priority    domain.Priority
	Completed   bool
	CategoryID  int64
}

// Service is the task operations contract consumed by the HTTP layer.
type Service interface {
	// List runs the query pipeline: ownership plus the optional
	// predicates, AND/OR combination, sort, pagination.
	List(ctx context.Context, userID int64, query ListQuery) (*Page, error)

	// Get returns one task. Missing id raises NotFound; a task owned by
	// another user raises Forbidden.
	Get(ctx context.Context, userID, taskID int64) (*domain.Task, error)

	// Create stores a new task owned by userID and returns it.
	Create(ctx context.Context, userID int64, input CreateInput) (*domain.Task, error)

	// Replace overwrites every mutable field of the task.
	Replace(ctx context.Context, userID, taskID int64, input ReplaceInput) (*domain.Task, error)

	// Patch mutates only the supplied fields. Unknown fields and invalid
	// values are collected into a single Validation error.
	Patch(ctx context.Context, userID, taskID int64, fields map[string]json.RawMessage) (*domain.Task, error)

	// Delete removes the task and returns its final snapshot. Missing and
	// foreign-owned tasks raise the same NotFound.
	Delete(ctx context.Context, userID, taskID int64) (*domain.Task, error)
}
