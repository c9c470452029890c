package api

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"taskflow/internal/apperr"
	"taskflow/internal/domain"
	"taskflow/internal/service/tasks"
)

// createTaskRequest is the POST /api/tareas body. Only the title is
// mandatory; the rest take documented defaults.
type createTaskRequest struct {
	Title       *string `json:"titulo" validate:"required"`
	Description *string `json:"descripcion"`
	Priority    *string `json:"prioridad"`
	Completed   *bool   `json:"completada"`
	CategoryID  *int64  `json:"categoriaId"`
}

// replaceTaskRequest is the PUT /api/tareas/{id} body. Everything but
// the description is required; pointers distinguish "absent" from zero
// values so a PUT that omits completada fails instead of silently
// resetting it. An omitted description overwrites to "".
type replaceTaskRequest struct {
	Title       *string `json:"titulo" validate:"required"`
	Description *string `json:"descripcion"`
	Priority    *string `json:"prioridad" validate:"required"`
	Completed   *bool   `json:"completada" validate:"required"`
	CategoryID  *int64  `json:"categoriaId" validate:"required"`
}

// createCategoryRequest is the POST /api/categorias body.
type createCategoryRequest struct {
	Name        *string `json:"nombre" validate:"required"`
	Description *string `json:"descripcion"`
}

// loginRequest is the POST /auth/login body.
type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// userSummary is the short profile shape login returns.
type userSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"nombre"`
}

// loginResponse carries the issued token and a summary of the
// authenticated user.
type loginResponse struct {
	Token string      `json:"token"`
	User  userSummary `json:"usuario"`
}

// completedPerDayResponse wraps the per-day counts with a description of
// what is being counted.
type completedPerDayResponse struct {
	Description string         `json:"descripcion"`
	Counts      map[string]int `json:"conteo"`
}

// deleteTaskResponse is the DELETE envelope: a confirmation message plus
// the final snapshot of the removed task.
type deleteTaskResponse struct {
	Message string       `json:"mensaje"`
	Task    *domain.Task `json:"tarea"`
}

// listResponse is the paginated success envelope.
type listResponse struct {
	Items      interface{} `json:"items"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

func newListResponse(page *tasks.Page) listResponse {
	return listResponse{
		Items:      page.Items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
}

// wireFieldNames maps Go struct field names to their wire spelling for
// validator violation messages.
var wireFieldNames = map[string]string{
	"Title":       "titulo",
	"Description": "descripcion",
	"Priority":    "prioridad",
	"Completed":   "completada",
	"CategoryID":  "categoriaId",
	"Name":        "nombre",
	"Email":       "email",
	"Password":    "password",
}

// parseListQuery validates and translates the raw query string into a
// ListQuery. Violations accumulate across parameters; the query pipeline
// only ever sees validated input.
func parseListQuery(values url.Values) (tasks.ListQuery, error) {
	query := tasks.ListQuery{
		Operator: tasks.OperatorAnd,
		Page:     1,
		PageSize: tasks.DefaultPageSize,
	}
	var violations []string

	if raw := values.Get("completada"); raw != "" {
		switch strings.ToLower(raw) {
		case "true":
			t := true
			query.Filters.Completed = &t
		case "false":
			f := false
			query.Filters.Completed = &f
		default:
			violations = append(violations, "completada: must be true or false")
		}
	}

	if raw := values.Get("prioridad"); raw != "" {
		priority := domain.Priority(raw)
		if priority.Valid() {
			query.Filters.Priority = &priority
		} else {
			violations = append(violations, "prioridad: must be one of baja media alta")
		}
	}

	if raw := values.Get("categoria_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			violations = append(violations, "categoria_id: must be a positive integer")
		} else {
			query.Filters.CategoryID = &id
		}
	}

	query.Filters.SearchTerm = values.Get("q")

	if raw := values.Get("operador_logico"); raw != "" {
		op := tasks.Operator(strings.ToUpper(raw))
		if op.Valid() {
			query.Operator = op
		} else {
			violations = append(violations, "operador_logico: must be AND or OR")
		}
	}

	if raw := values.Get("ordenar"); raw != "" {
		key := tasks.SortKey(raw)
		if key.Valid() {
			query.Sort = key
		} else {
			violations = append(violations, "ordenar: must be one of titulo prioridad fecha")
		}
	}

	if raw := values.Get("pagina"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			violations = append(violations, "pagina: must be a positive integer")
		} else {
			query.Page = page
		}
	}

	if raw := values.Get("limite"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 {
			violations = append(violations, "limite: must be a positive integer")
		} else {
			query.PageSize = size
		}
	}

	if len(violations) > 0 {
		sort.Strings(violations)
		return tasks.ListQuery{}, apperr.Validation("invalid query parameters", violations...)
	}
	return query, nil
}

// pathID parses a positive integer path parameter.
func pathID(raw, name string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, apperr.Validation(fmt.Sprintf("%s must be a positive integer", name))
	}
	return id, nil
}
