package domain

import (
	"fmt"
	"strings"
)

// Field length limits for categories.
const (
	CategoryNameMinLen        = 3
	CategoryNameMaxLen        = 50
	CategoryDescriptionMaxLen = 200
)

// Category groups tasks. Tasks reference categories by id; the reference
// is checked when established, not enforced afterwards.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
}

// ValidateCategoryName checks the trimmed name against the length rules.
func ValidateCategoryName(name string) string {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < CategoryNameMinLen || len(trimmed) > CategoryNameMaxLen {
		return fmt.Sprintf("nombre: must be between %d and %d characters",
			CategoryNameMinLen, CategoryNameMaxLen)
	}
	return ""
}

// ValidateCategoryDescription checks the trimmed description length.
func ValidateCategoryDescription(description string) string {
	if len(strings.TrimSpace(description)) > CategoryDescriptionMaxLen {
		return fmt.Sprintf("descripcion: must not exceed %d characters", CategoryDescriptionMaxLen)
	}
	return ""
}
