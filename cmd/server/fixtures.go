package main

import (
	"time"

	"taskflow/internal/domain"
	"taskflow/internal/service/auth"
	"taskflow/internal/store"
)

// seedFixtures loads the demo data set: two users, two categories and
// four tasks.
func seedFixtures(taskStore *store.TaskStore, categoryStore *store.CategoryStore, userStore *store.UserStore) error {
	adminHash, err := auth.HashPassword("admin123")
	if err != nil {
		return err
	}
	userHash, err := auth.HashPassword("user123")
	if err != nil {
		return err
	}

	userStore.Seed(
		domain.User{ID: 1, Name: "Admin", Email: "admin@example.com", HashedPassword: adminHash},
		domain.User{ID: 2, Name: "Usuario", Email: "user@example.com", HashedPassword: userHash},
	)

	categoryStore.Seed(
		domain.Category{ID: 1, Name: "Desarrollo", Description: "Tareas relacionadas con codificación"},
		domain.Category{ID: 2, Name: "Administrativo", Description: "Tareas de gestión y planificación"},
	)

	taskStore.Seed(
		&domain.Task{
			ID: 1, Title: "Aprender Express", Description: "Completar tutorial",
			Completed: false, Priority: domain.PriorityHigh,
			UserID: 1, CategoryID: 1,
			CreatedAt: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
		},
		&domain.Task{
			ID: 2, Title: "Crear API", Description: "Implementar endpoints",
			Completed: true, Priority: domain.PriorityMedium,
			UserID: 1, CategoryID: 2,
			CreatedAt: time.Date(2025, 12, 9, 15, 0, 0, 0, time.UTC),
		},
		&domain.Task{
			ID: 3, Title: "Testing", Description: "Probar con Postman",
			Completed: false, Priority: domain.PriorityLow,
			UserID: 2, CategoryID: 1,
			CreatedAt: time.Date(2025, 12, 10, 8, 0, 0, 0, time.UTC),
		},
		&domain.Task{
			ID: 4, Title: "Reunión semanal", Description: "Revisar progreso",
			Completed: true, Priority: domain.PriorityHigh,
			UserID: 2, CategoryID: 2,
			CreatedAt: time.Date(2025, 12, 11, 9, 0, 0, 0, time.UTC),
		},
	)
	return nil
}
