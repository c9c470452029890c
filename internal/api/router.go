package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"taskflow/internal/api/middleware"
	"taskflow/internal/api/shared"
	"taskflow/internal/audit"
	"taskflow/internal/service/auth"
	"taskflow/internal/service/stats"
	"taskflow/internal/service/tasks"
	"taskflow/internal/store"
)

// RouterDeps holds everything the router needs to build its handlers.
type RouterDeps struct {
	Tasks      tasks.Service
	Stats      stats.Service
	Categories *store.CategoryStore
	Users      *store.UserStore
	Verifier   auth.TokenVerifier
	Issuer     auth.TokenIssuer
	Passwords  auth.PasswordVerifier
	Audit      audit.Recorder
	Logger     *slog.Logger
	DevMode    bool
}

// NewRouter wires the middleware chain and every route. The login and
// info endpoints are public; everything under /api requires a bearer
// token.
func NewRouter(deps RouterDeps) http.Handler {
	errs := NewErrorWriter(deps.DevMode, deps.Audit, deps.Logger)

	taskHandler := NewTaskHandler(deps.Tasks, errs)
	categoryHandler := NewCategoryHandler(deps.Categories, deps.Audit, errs)
	userHandler := NewUserHandler(deps.Users, errs)
	statsHandler := NewStatsHandler(deps.Stats, errs)
	authHandler := NewAuthHandler(deps.Users, deps.Passwords, deps.Issuer, errs)

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.TraceID(deps.Logger))

	r.Get("/", infoHandler)
	r.Post("/auth/login", authHandler.Login)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Authenticate(deps.Verifier))

		r.Route("/tareas", func(r chi.Router) {
			r.Get("/", taskHandler.List)
			r.Post("/", taskHandler.Create)
			r.Get("/{id}", taskHandler.Get)
			r.Put("/{id}", taskHandler.Replace)
			r.Patch("/{id}", taskHandler.Patch)
			r.Delete("/{id}", taskHandler.Delete)
		})

		r.Route("/categorias", func(r chi.Router) {
			r.Get("/", categoryHandler.List)
			r.Post("/", categoryHandler.Create)
			r.Get("/{id}", categoryHandler.Get)
		})

		r.Get("/usuarios/{id}", userHandler.Get)

		r.Route("/stats", func(r chi.Router) {
			r.Get("/productividad/usuario/{id}", statsHandler.UserProductivity)
			r.Get("/tareas_completadas_por_dia", statsHandler.CompletedPerDay)
		})
	})

	r.NotFound(routeNotFound)
	r.MethodNotAllowed(routeNotFound)

	return r
}

// infoHandler answers GET / with a short service description and the
// route index, so a browser hit on the root is not a dead end.
func infoHandler(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"nombre":      "taskflow",
		"version":     "1.0.0",
		"descripcion": "task management API",
		"endpoints": []string{
			"POST /auth/login",
			"GET /api/tareas",
			"POST /api/tareas",
			"GET /api/tareas/{id}",
			"PUT /api/tareas/{id}",
			"PATCH /api/tareas/{id}",
			"DELETE /api/tareas/{id}",
			"GET /api/categorias",
			"POST /api/categorias",
			"GET /api/categorias/{id}",
			"GET /api/usuarios/{id}",
			"GET /api/stats/productividad/usuario/{id}",
			"GET /api/stats/tareas_completadas_por_dia",
		},
	})
}

// routeNotFound reports unmatched routes with the method and path that
// missed, in the dedicated envelope.
func routeNotFound(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusNotFound, shared.RouteNotFoundResponse{
		Error:     "route not found",
		Method:    r.Method,
		Path:      r.URL.Path,
		Timestamp: time.Now().UTC(),
	})
}
