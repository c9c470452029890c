package tasks

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/apperr"
	"taskflow/internal/domain"
)

func requireAppErr(t *testing.T, err error, kind apperr.Kind) *apperr.Error {
	t.Helper()
	appErr, ok := apperr.From(err)
	require.True(t, ok, "expected a typed error, got %v", err)
	require.Equal(t, kind, appErr.Kind)
	return appErr
}

func TestCreateDefaults(t *testing.T) {
	svc, _, _ := newTestService(t)

	task, err := svc.Create(context.Background(), 2, CreateInput{Title: "  Nueva tarea  "})
	require.NoError(t, err)

	assert.Equal(t, "Nueva tarea", task.Title, "title is trimmed before storage")
	assert.Equal(t, "", task.Description)
	assert.Equal(t, domain.PriorityMedium, task.Priority)
	assert.False(t, task.Completed)
	assert.Equal(t, DefaultCategoryID, task.CategoryID)
	assert.Equal(t, int64(2), task.UserID)
	assert.False(t, task.CreatedAt.IsZero())
	assert.Nil(t, task.UpdatedAt, "UpdatedAt is absent until the first mutation")
}

func TestCreateAccumulatesViolations(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), 1, CreateInput{
		Title:       "ab",
		Description: strings.Repeat("x", 501),
		Priority:    prioPtr(domain.Priority("urgente")),
	})
	appErr := requireAppErr(t, err, apperr.KindValidation)
	assert.Len(t, appErr.Details, 3)
}

func TestCreateUnknownCategoryIsNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), 1, CreateInput{
		Title:      "valid title",
		CategoryID: int64Ptr(99),
	})
	appErr := requireAppErr(t, err, apperr.KindNotFound)
	assert.Equal(t, "category not found", appErr.Message)
}

func TestGetOwnership(t *testing.T) {
	svc, taskStore, _ := newTestService(t)
	seedTask(taskStore, 1, "mine", 1, nil)
	seedTask(taskStore, 2, "theirs", 2, nil)

	task, err := svc.Get(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "mine", task.Title)

	_, err = svc.Get(context.Background(), 1, 2)
	requireAppErr(t, err, apperr.KindForbidden)

	_, err = svc.Get(context.Background(), 1, 77)
	requireAppErr(t, err, apperr.KindNotFound)
}

func TestReplaceOverwritesEveryField(t *testing.T) {
	svc, taskStore, _ := newTestService(t)
	seedTask(taskStore, 1, "before", 1, func(task *domain.Task) {
		task.Description = "old description"
		task.Priority = domain.PriorityLow
	})

	task, err := svc.Replace(context.Background(), 1, 1, ReplaceInput{
		Title:      "after",
		Priority:   domain.PriorityHigh,
		Completed:  true,
		CategoryID: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, "after", task.Title)
	assert.Equal(t, "", task.Description, "omitted description is overwritten, not retained")
	assert.Equal(t, domain.PriorityHigh, task.Priority)
	assert.True(t, task.Completed)
	assert.Equal(t, int64(2), task.CategoryID)
	require.NotNil(t, task.UpdatedAt)
}

func TestReplaceChecksExistenceThenOwnership(t *testing.T) {
	svc, taskStore, _ := newTestService(t)
	seedTask(taskStore, 1, "theirs", 2, nil)

	input := ReplaceInput{Title: "valid", Priority: domain.PriorityMedium, CategoryID: 1}

	_, err := svc.Replace(context.Background(), 1, 99, input)
	requireAppErr(t, err, apperr.KindNotFound)

	_, err = svc.Replace(context.Background(), 1, 1, input)
	requireAppErr(t, err, apperr.KindForbidden)
}

func TestReplaceUnknownCategoryIsNotFound(t *testing.T) {
	svc, taskStore, _ := newTestService(t)
	seedTask(taskStore, 1, "mine", 1, nil)

	_, err := svc.Replace(context.Background(), 1, 1, ReplaceInput{
		Title:      "valid",
		Priority:   domain.PriorityMedium,
		CategoryID: 42,
	})
	requireAppErr(t, err, apperr.KindNotFound)
}

func TestReplacePreservesOwnerAndCreation(t *testing.T) {
	svc, taskStore, _ := newTestService(t)
	created := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	seedTask(taskStore, 1, "mine", 1, func(task *domain.Task) { task.CreatedAt = created })

	task, err := svc.Replace(context.Background(), 1, 1, ReplaceInput{
		Title:      "updated",
		Priority:   domain.PriorityLow,
		CategoryID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), task.UserID)
	assert.Equal(t, created, task.CreatedAt)
}

func patchFields(t *testing.T, body string) map[string]json.RawMessage {
	t.Helper()
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(body), &fields))
	return fields
}

func TestPatchSingleField(t *testing.T) {
	svc, taskStore, _ := newTestService(t)
	seedTask(taskStore, 1, "before", 1, func(task *domain.Task) {
		task.Description = "kept"
	})

	task, err := svc.Patch(context.Background(), 1, 1, patchFields(t, `{"completada": true}`))
	require.NoError(t, err)

	assert.True(t, task.Completed)
	assert.Equal(t, "before", task.Title, "absent fields retain prior values")
	assert.Equal(t, "kept", task.Description)
	require.NotNil(t, task.UpdatedAt)
}

func TestPatchRequiresAtLeastOneField(t *testing.T) {
	svc, taskStore, _ := newTestService(t)
	seedTask(taskStore, 1, "任务", 1, nil)

	_, err := svc.Patch(context.Background(), 1, 1, patchFields(t, `{}`))
	appErr := requireAppErr(t, err, apperr.KindValidation)
	assert.Contains(t, appErr.Message, "at least one field")
}

func TestPatchAccumulatesAllViolations(t *testing.T) {
	// {foo: 1, prioridad: "urgent"} yields one detail for the unknown
	// field and one for the invalid enum.
	svc, taskStore, _ := newTestService(t)
	seedTask(taskStore, 1, "before", 1, nil)

	_, err := svc.Patch(context.Background(), 1, 1,
		patchFields(t, `{"foo": 1, "prioridad": "urgent"}`))
	appErr := requireAppErr(t, err, apperr.KindValidation)

	require.Len(t, appErr.Details, 2)
	assert.Contains(t, appErr.Details[0], "foo:")
	assert.Contains(t, appErr.Details[1], "prioridad:")
}

func TestPatchRejectsWrongTypes(t *testing.T) {
	svc, taskStore, _ := newTestService(t)
	seedTask(taskStore, 1, "before", 1, nil)

	_, err := svc.Patch(context.Background(), 1, 1, patchFields(t,
		`{"titulo": 7, "completada": "yes", "categoriaId": -3}`))
	appErr := requireAppErr(t, err, apperr.KindValidation)

	require.Len(t, appErr.Details, 3)
	assert.Contains(t, appErr.Details, "categoriaId: must be a positive integer")
	assert.Contains(t, appErr.Details, "completada: must be a boolean")
	assert.Contains(t, appErr.Details, "titulo: must be a string")
}

func TestPatchUnknownCategoryBecomesViolation(t *testing.T) {
	svc, taskStore, _ := newTestService(t)
	seedTask(taskStore, 1, "before", 1, nil)

	_, err := svc.Patch(context.Background(), 1, 1, patchFields(t, `{"categoriaId": 7}`))
	appErr := requireAppErr(t, err, apperr.KindValidation)
	require.Len(t, appErr.Details, 1)
	assert.Equal(t, "categoriaId: category #7 does not exist", appErr.Details[0])
}

func TestPatchValidCategoryApplied(t *testing.T) {
	svc, taskStore, _ := newTestService(t)
	seedTask(taskStore, 1, "before", 1, nil)

	task, err := svc.Patch(context.Background(), 1, 1, patchFields(t, `{"categoriaId": 2}`))
	require.NoError(t, err)
	assert.Equal(t, int64(2), task.CategoryID)
}

func TestPatchTrimsStrings(t *testing.T) {
	svc, taskStore, _ := newTestService(t)
	seedTask(taskStore, 1, "before", 1, nil)

	task, err := svc.Patch(context.Background(), 1, 1,
		patchFields(t, `{"titulo": "  spaced out  ", "descripcion": "  also  "}`))
	require.NoError(t, err)
	assert.Equal(t, "spaced out", task.Title)
	assert.Equal(t, "also", task.Description)
}

func TestPatchOwnershipBeforeValidation(t *testing.T) {
	svc, taskStore, _ := newTestService(t)
	seedTask(taskStore, 1, "theirs", 2, nil)

	// Even with an invalid body, a foreign task reports Forbidden first.
	_, err := svc.Patch(context.Background(), 1, 1, patchFields(t, `{"foo": 1}`))
	requireAppErr(t, err, apperr.KindForbidden)

	_, err = svc.Patch(context.Background(), 1, 55, patchFields(t, `{"foo": 1}`))
	requireAppErr(t, err, apperr.KindNotFound)
}

func TestDeleteReturnsSnapshot(t *testing.T) {
	svc, taskStore, _ := newTestService(t)
	seedTask(taskStore, 1, "doomed", 1, nil)

	task, err := svc.Delete(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "doomed", task.Title)

	_, err = svc.Get(context.Background(), 1, 1)
	requireAppErr(t, err, apperr.KindNotFound)
}

func TestDeleteForeignTaskLooksNonexistent(t *testing.T) {
	svc, taskStore, _ := newTestService(t)
	seedTask(taskStore, 1, "theirs", 2, nil)

	foreign, err := svc.Delete(context.Background(), 1, 1)
	assert.Nil(t, foreign)
	foreignErr := requireAppErr(t, err, apperr.KindNotFound)

	missing, err := svc.Delete(context.Background(), 1, 99)
	assert.Nil(t, missing)
	missingErr := requireAppErr(t, err, apperr.KindNotFound)

	// Identical shape: no way to tell a foreign task from a missing one.
	assert.Equal(t, missingErr.Message, foreignErr.Message)
	assert.Equal(t, missingErr.Details, foreignErr.Details)
}
