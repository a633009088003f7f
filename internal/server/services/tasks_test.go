package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dkoval/tasktrack/internal/common"
	"github.com/dkoval/tasktrack/internal/server/models"
	"github.com/dkoval/tasktrack/internal/server/query"
	"github.com/dkoval/tasktrack/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTaskService(t *testing.T) (*TaskService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewTaskService(db, repomanager.NewPostgresRepositoryManager()), mock
}

func taskColumns() []string {
	return []string{"id", "user_id", "text", "category", "priority", "completed", "archived", "created_at", "due_date"}
}

func TestTaskCreate_Success(t *testing.T) {
	s, mock := newTaskService(t)

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+tasks`).
		WithArgs(sqlmock.AnyArg(), "u-1", "buy milk", "personal", "Low",
			false, false, sqlmock.AnyArg(), nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	task, err := s.Create(context.Background(), "u-1", "buy milk",
		models.CategoryPersonal, models.PriorityLow, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "u-1", task.UserID)
	assert.False(t, task.Completed, "new tasks start incomplete")
	assert.False(t, task.Archived, "new tasks start active")
	assert.WithinDuration(t, time.Now().UTC(), task.CreatedAt, time.Minute)
}

func TestTaskCreate_Validation(t *testing.T) {
	s, _ := newTaskService(t)
	ctx := context.Background()

	_, err := s.Create(ctx, "u-1", "   ", models.CategoryWork, models.PriorityLow, nil)
	assert.ErrorIs(t, err, common.ErrorValidation, "blank text")

	_, err = s.Create(ctx, "u-1", "x", models.Category("hobby"), models.PriorityLow, nil)
	assert.ErrorIs(t, err, common.ErrorValidation, "unknown category")

	_, err = s.Create(ctx, "u-1", "x", models.CategoryWork, models.Priority("urgent"), nil)
	assert.ErrorIs(t, err, common.ErrorValidation, "unknown priority")
}

func TestTaskList_FiltersAndSorts(t *testing.T) {
	s, mock := newTaskService(t)

	t0 := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(taskColumns()).
		AddRow("t-low", "u-1", "a", "work", "Low", false, false, t0, nil).
		AddRow("t-high", "u-1", "b", "work", "High", false, false, t0.Add(time.Minute), nil).
		AddRow("t-arch", "u-1", "c", "work", "Medium", false, true, t0.Add(2*time.Minute), nil)
	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*user_id`).
		WithArgs("u-1").
		WillReturnRows(rows)

	got, err := s.List(context.Background(), "u-1", ListParams{
		Filter: query.Filter{Archived: false},
		SortBy: query.SortByPriority,
		Order:  query.OrderDesc,
	})
	require.NoError(t, err)

	require.Len(t, got, 2, "archived tasks stay out of the active view")
	assert.Equal(t, "t-high", got[0].ID)
	assert.Equal(t, "t-low", got[1].ID)
}

func TestTaskList_DefaultsToCreationOrder(t *testing.T) {
	s, mock := newTaskService(t)

	t0 := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(taskColumns()).
		AddRow("t-2", "u-1", "b", "work", "Low", false, false, t0.Add(time.Hour), nil).
		AddRow("t-1", "u-1", "a", "work", "Low", false, false, t0, nil)
	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*user_id`).
		WithArgs("u-1").
		WillReturnRows(rows)

	got, err := s.List(context.Background(), "u-1", ListParams{Filter: query.Filter{Archived: false}})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "t-1", got[0].ID)
}

func TestTaskList_Validation(t *testing.T) {
	s, _ := newTaskService(t)
	ctx := context.Background()

	_, err := s.List(ctx, "u-1", ListParams{SortBy: query.SortKey("text")})
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = s.List(ctx, "u-1", ListParams{Order: query.Order("sideways")})
	assert.ErrorIs(t, err, common.ErrorValidation)

	bad := models.Category("hobby")
	_, err = s.List(ctx, "u-1", ListParams{Filter: query.Filter{Category: &bad}})
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestTaskFlags_OwnershipConflation(t *testing.T) {
	s, mock := newTaskService(t)
	ctx := context.Background()

	// foreign-owned or already-deleted rows all surface as not found
	mock.ExpectExec(`(?s)^UPDATE\s+tasks\s+SET\s+completed`).
		WithArgs(true, "t-1", "u-2").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, s.SetCompleted(ctx, "u-2", "t-1", true), common.ErrorNotFound)

	mock.ExpectExec(`(?s)^UPDATE\s+tasks\s+SET\s+archived`).
		WithArgs(true, "t-1", "u-2").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, s.Archive(ctx, "u-2", "t-1"), common.ErrorNotFound)

	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+tasks`).
		WithArgs("t-1", "u-2").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, s.Delete(ctx, "u-2", "t-1"), common.ErrorNotFound)
}

func TestTaskArchiveRestore_RoundTrip(t *testing.T) {
	s, mock := newTaskService(t)
	ctx := context.Background()

	mock.ExpectExec(`(?s)^UPDATE\s+tasks\s+SET\s+archived\s*=\s*\$1`).
		WithArgs(true, "t-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, s.Archive(ctx, "u-1", "t-1"))

	mock.ExpectExec(`(?s)^UPDATE\s+tasks\s+SET\s+archived\s*=\s*FALSE`).
		WithArgs("t-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, s.Restore(ctx, "u-1", "t-1"))
}

func TestTaskRestore_ActiveTaskNotFound(t *testing.T) {
	s, mock := newTaskService(t)

	mock.ExpectExec(`(?s)^UPDATE\s+tasks\s+SET\s+archived\s*=\s*FALSE`).
		WithArgs("t-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Restore(context.Background(), "u-1", "t-1")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
