// Package domain defines the core business entities and their field rules.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// Priority is the task severity enum. The wire values are the Spanish
// literals the API has always used.
type Priority string

const (
	PriorityLow    Priority = "baja"
	PriorityMedium Priority = "media"
	PriorityHigh   Priority = "alta"
)

// Valid reports whether p is one of the recognized priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Rank returns the severity rank used for priority sorting:
// baja=1, media=2, alta=3.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	}
	return 0
}

// Field length limits for tasks.
const (
	TitleMinLen       = 3
	TitleMaxLen       = 100
	DescriptionMaxLen = 500
)

// Task is a single task record. The owner is fixed at creation and never
// changes; UpdatedAt is nil until the first mutation.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"titulo"`
	Description string     `json:"descripcion"`
	Completed   bool       `json:"completada"`
	Priority    Priority   `json:"prioridad"`
	UserID      int64      `json:"usuarioId"`
	CategoryID  int64      `json:"categoriaId"`
	CreatedAt   time.Time  `json:"fechaCreacion"`
	UpdatedAt   *time.Time `json:"fechaActualizacion,omitempty"`
}

// Touch records a mutation timestamp.
func (t *Task) Touch(now time.Time) {
	t.UpdatedAt = &now
}

// Clone returns an independent copy of the task, so callers can hold a
// snapshot without aliasing store-owned memory.
func (t *Task) Clone() *Task {
	clone := *t
	if t.UpdatedAt != nil {
		updated := *t.UpdatedAt
		clone.UpdatedAt = &updated
	}
	return &clone
}

// ValidateTitle checks the trimmed title against the length rules.
// The returned string is a user-facing violation; empty means valid.
func ValidateTitle(title string) string {
	trimmed := strings.TrimSpace(title)
	if len(trimmed) < TitleMinLen || len(trimmed) > TitleMaxLen {
		return fmt.Sprintf("titulo: must be between %d and %d characters", TitleMinLen, TitleMaxLen)
	}
	return ""
}

// ValidateDescription checks the trimmed description length.
func ValidateDescription(description string) string {
	if len(strings.TrimSpace(description)) > DescriptionMaxLen {
		return fmt.Sprintf("descripcion: must not exceed %d characters", DescriptionMaxLen)
	}
	return ""
}

// ValidatePriority checks the priority enum value.
func ValidatePriority(p Priority) string {
	if !p.Valid() {
		return fmt.Sprintf("prioridad: must be one of %s, %s, %s",
			PriorityLow, PriorityMedium, PriorityHigh)
	}
	return ""
}
