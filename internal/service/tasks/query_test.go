package tasks

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/audit"
	"taskflow/internal/domain"
	"taskflow/internal/store"
)

func newTestService(t *testing.T) (Service, *store.TaskStore, *store.CategoryStore) {
	t.Helper()
	taskStore := store.NewTaskStore()
	categoryStore := store.NewCategoryStore()
	categoryStore.Seed(
		domain.Category{ID: 1, Name: "Desarrollo"},
		domain.Category{ID: 2, Name: "Administrativo"},
	)
	svc := New(taskStore, categoryStore, audit.Discard{}, slog.Default())
	return svc, taskStore, categoryStore
}

func seedTask(s *store.TaskStore, id int64, title string, userID int64, opts func(*domain.Task)) {
	task := &domain.Task{
		ID:         id,
		Title:      title,
		Priority:   domain.PriorityMedium,
		UserID:     userID,
		CategoryID: 1,
		CreatedAt:  time.Date(2025, 1, int(id), 10, 0, 0, 0, time.UTC),
	}
	if opts != nil {
		opts(task)
	}
	s.Seed(task)
}

func boolPtr(b bool) *bool { return &b }

func int64Ptr(n int64) *int64 { return &n }

func prioPtr(p domain.Priority) *domain.Priority { return &p }

func collectIDs(page *Page) []int64 {
	ids := make([]int64, 0, len(page.Items))
	for _, task := range page.Items {
		ids = append(ids, task.ID)
	}
	return ids
}

func TestListOwnershipIsAlwaysEnforced(t *testing.T) {
	svc, taskStore, _ := newTestService(t)
	seedTask(taskStore, 1, "mine", 1, func(task *domain.Task) { task.Completed = true })
	seedTask(taskStore, 2, "theirs completed", 2, func(task *domain.Task) { task.Completed = true })
	seedTask(taskStore, 3, "theirs alta", 2, func(task *domain.Task) { task.Priority = domain.PriorityHigh })

	for _, operator := range []Operator{OperatorAnd, OperatorOr} {
		page, err := svc.List(context.Background(), 1, ListQuery{
			Filters: Filters{
				Completed: boolPtr(true),
				Priority:  prioPtr(domain.PriorityHigh),
			},
			Operator: operator,
			Page:     1,
			PageSize: 10,
		})
		require.NoError(t, err)
		for _, task := range page.Items {
			assert.Equal(t, int64(1), task.UserID,
				"operator %s leaked a foreign task", operator)
		}
	}
}

func TestListOrRequiresAtLeastOnePredicate(t *testing.T) {
	svc, taskStore, _ := newTestService(t)
	seedTask(taskStore, 1, "pending baja", 1, func(task *domain.Task) { task.Priority = domain.PriorityLow })
	seedTask(taskStore, 2, "done alta", 1, func(task *domain.Task) {
		task.Completed = true
		task.Priority = domain.PriorityHigh
	})
	seedTask(taskStore, 3, "pending media", 1, nil)

	page, err := svc.List(context.Background(), 1, ListQuery{
		Filters: Filters{
			Completed: boolPtr(true),
			Priority:  prioPtr(domain.PriorityLow),
		},
		Operator: OperatorOr,
		Page:     1,
		PageSize: 10,
	})
	require.NoError(t, err)
	// OR: completed OR baja.
	assert.ElementsMatch(t, []int64{1, 2}, collectIDs(page))
}

func TestListOrWithoutPredicatesEqualsAnd(t *testing.T) {
	svc, taskStore, _ := newTestService(t)
	seedTask(taskStore, 1, "a", 1, nil)
	seedTask(taskStore, 2, "b", 1, nil)
	seedTask(taskStore, 3, "c", 2, nil)

	andPage, err := svc.List(context.Background(), 1, ListQuery{Operator: OperatorAnd, Page: 1, PageSize: 10})
	require.NoError(t, err)
	orPage, err := svc.List(context.Background(), 1, ListQuery{Operator: OperatorOr, Page: 1, PageSize: 10})
	require.NoError(t, err)

	assert.Equal(t, collectIDs(andPage), collectIDs(orPage))
	assert.Equal(t, []int64{1, 2}, collectIDs(andPage))
}

func TestListAndCombinesAllFilters(t *testing.T) {
	svc, taskStore, _ := newTestService(t)
	seedTask(taskStore, 1, "done alta cat1", 1, func(task *domain.Task) {
		task.Completed = true
		task.Priority = domain.PriorityHigh
	})
	seedTask(taskStore, 2, "done alta cat2", 1, func(task *domain.Task) {
		task.Completed = true
		task.Priority = domain.PriorityHigh
		task.CategoryID = 2
	})
	seedTask(taskStore, 3, "pending alta cat1", 1, func(task *domain.Task) {
		task.Priority = domain.PriorityHigh
	})

	page, err := svc.List(context.Background(), 1, ListQuery{
		Filters: Filters{
			Completed:  boolPtr(true),
			Priority:   prioPtr(domain.PriorityHigh),
			CategoryID: int64Ptr(1),
		},
		Operator: OperatorAnd,
		Page:     1,
		PageSize: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, collectIDs(page))
}

func TestListSearchTermMatchesTitleOrDescription(t *testing.T) {
	svc, taskStore, _ := newTestService(t)
	seedTask(taskStore, 1, "Aprender Express", 1, func(task *domain.Task) {
		task.Description = "Completar tutorial"
	})
	seedTask(taskStore, 2, "Crear API", 1, func(task *domain.Task) {
		task.Description = "Implementar endpoints con express"
	})
	seedTask(taskStore, 3, "Testing", 1, func(task *domain.Task) {
		task.Description = "Probar con Postman"
	})

	page, err := svc.List(context.Background(), 1, ListQuery{
		Filters:  Filters{SearchTerm: "EXPRESS"},
		Operator: OperatorAnd,
		Page:     1,
		PageSize: 10,
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 2}, collectIDs(page))
}

func TestListSortByPriorityRanksHighFirst(t *testing.T) {
	svc, taskStore, _ := newTestService(t)
	// Insertion order deliberately scrambled against severity.
	seedTask(taskStore, 1, "alta", 1, func(task *domain.Task) { task.Priority = domain.PriorityHigh })
	seedTask(taskStore, 2, "baja", 1, func(task *domain.Task) { task.Priority = domain.PriorityLow })
	seedTask(taskStore, 3, "media", 1, nil)

	page, err := svc.List(context.Background(), 1, ListQuery{
		Operator: OperatorAnd,
		Sort:     SortPriority,
		Page:     1,
		PageSize: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3, 2}, collectIDs(page))
}

func TestListSortByPriorityOrdering(t *testing.T) {
	// Two tasks for owner 1: id 1 alta, id 2 baja; prioridad sort keeps
	// the alta task first.
	svc, taskStore, _ := newTestService(t)
	seedTask(taskStore, 1, "primera", 1, func(task *domain.Task) { task.Priority = domain.PriorityHigh })
	seedTask(taskStore, 2, "segunda", 1, func(task *domain.Task) { task.Priority = domain.PriorityLow })

	page, err := svc.List(context.Background(), 1, ListQuery{
		Operator: OperatorAnd,
		Sort:     SortPriority,
		Page:     1,
		PageSize: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, collectIDs(page))
}

func TestListSortByTitle(t *testing.T) {
	svc, taskStore, _ := newTestService(t)
	seedTask(taskStore, 1, "zanahoria", 1, nil)
	seedTask(taskStore, 2, "Ábaco", 1, nil)
	seedTask(taskStore, 3, "manzana", 1, nil)

	page, err := svc.List(context.Background(), 1, ListQuery{
		Operator: OperatorAnd,
		Sort:     SortTitle,
		Page:     1,
		PageSize: 10,
	})
	require.NoError(t, err)
	// Locale-aware: the accented title collates with "a", before "m".
	assert.Equal(t, []int64{2, 3, 1}, collectIDs(page))
}

func TestListSortByDateNewestFirst(t *testing.T) {
	svc, taskStore, _ := newTestService(t)
	seedTask(taskStore, 1, "oldest", 1, nil)
	seedTask(taskStore, 2, "newest", 1, nil)
	seedTask(taskStore, 3, "middle", 1, func(task *domain.Task) {
		task.CreatedAt = time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC)
	})

	page, err := svc.List(context.Background(), 1, ListQuery{
		Operator: OperatorAnd,
		Sort:     SortDate,
		Page:     1,
		PageSize: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3, 1}, collectIDs(page))
}

func TestListWithoutSortKeepsInsertionOrder(t *testing.T) {
	svc, taskStore, _ := newTestService(t)
	seedTask(taskStore, 5, "e", 1, nil)
	seedTask(taskStore, 6, "f", 1, nil)
	seedTask(taskStore, 7, "g", 1, nil)

	page, err := svc.List(context.Background(), 1, ListQuery{Operator: OperatorAnd, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 6, 7}, collectIDs(page))
}

func TestListPaginationWindow(t *testing.T) {
	// pageSize=1, page=2 over 3 matching records returns exactly the
	// second record with totalPages=3.
	svc, taskStore, _ := newTestService(t)
	seedTask(taskStore, 1, "first", 1, nil)
	seedTask(taskStore, 2, "second", 1, nil)
	seedTask(taskStore, 3, "third", 1, nil)

	page, err := svc.List(context.Background(), 1, ListQuery{Operator: OperatorAnd, Page: 2, PageSize: 1})
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, collectIDs(page))
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 1, page.PageSize)
	assert.Equal(t, 3, page.TotalPages)
}

func TestListPaginationIsLosslessPartition(t *testing.T) {
	svc, taskStore, _ := newTestService(t)
	for i := int64(1); i <= 17; i++ {
		seedTask(taskStore, i, "task", 1, nil)
	}

	for _, pageSize := range []int{1, 3, 5, 17, 50} {
		var concatenated []int64
		for pageNum := 1; ; pageNum++ {
			page, err := svc.List(context.Background(), 1, ListQuery{
				Operator: OperatorAnd,
				Page:     pageNum,
				PageSize: pageSize,
			})
			require.NoError(t, err)
			if len(page.Items) == 0 {
				break
			}
			concatenated = append(concatenated, collectIDs(page)...)
		}

		full, err := svc.List(context.Background(), 1, ListQuery{
			Operator: OperatorAnd,
			Page:     1,
			PageSize: MaxPageSize,
		})
		require.NoError(t, err)
		assert.Equal(t, collectIDs(full), concatenated, "pageSize %d", pageSize)
	}
}

func TestListOutOfRangePageIsEmptyNotError(t *testing.T) {
	svc, taskStore, _ := newTestService(t)
	seedTask(taskStore, 1, "only", 1, nil)

	page, err := svc.List(context.Background(), 1, ListQuery{Operator: OperatorAnd, Page: 9, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, 1, page.TotalPages)
}

func TestListClampsPageSize(t *testing.T) {
	svc, taskStore, _ := newTestService(t)
	seedTask(taskStore, 1, "only", 1, nil)

	page, err := svc.List(context.Background(), 1, ListQuery{Operator: OperatorAnd, Page: 1, PageSize: 1000})
	require.NoError(t, err)
	assert.Equal(t, MaxPageSize, page.PageSize)

	page, err = svc.List(context.Background(), 1, ListQuery{Operator: OperatorAnd, Page: 1, PageSize: 0})
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize, page.PageSize)
}
