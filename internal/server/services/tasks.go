package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dkoval/tasktrack/internal/common"
	"github.com/dkoval/tasktrack/internal/server/models"
	"github.com/dkoval/tasktrack/internal/server/query"
	"github.com/dkoval/tasktrack/internal/server/repositories/repomanager"
	"github.com/dkoval/tasktrack/internal/server/repositories/tasks"
	"github.com/google/uuid"
)

// ListParams carries the caller's view preferences into a task listing.
// Zero values for SortBy/Order fall back to creation order, ascending.
type ListParams struct {
	Filter query.Filter
	SortBy query.SortKey
	Order  query.Order
}

// TaskService is the single writer of task lifecycle state. Every operation
// takes the owner id produced by the access guard; no method ever accepts an
// identity from a request body.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

// Create validates input and inserts a new active, incomplete task.
func (s *TaskService) Create(ctx context.Context, ownerID, text string, category models.Category, priority models.Priority, dueDate *time.Time) (*models.Task, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: task text must not be empty", common.ErrorValidation)
	}
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", common.ErrorValidation, category)
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", common.ErrorValidation, priority)
	}

	task := &models.Task{
		ID:        uuid.NewString(),
		UserID:    ownerID,
		Text:      text,
		Category:  category,
		Priority:  priority,
		Completed: false,
		Archived:  false,
		CreatedAt: time.Now().UTC(),
		DueDate:   dueDate,
	}

	repo := s.repomanager.Tasks(s.db)
	task, err := repo.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}

	return task, nil
}

// List returns the owner's tasks for one archived partition, filtered and
// ordered by the pure query functions. The result is never nil.
func (s *TaskService) List(ctx context.Context, ownerID string, p ListParams) ([]models.Task, error) {
	if p.SortBy == "" {
		p.SortBy = query.SortByCreatedAt
	}
	if p.Order == "" {
		p.Order = query.OrderAsc
	}
	if !p.SortBy.Valid() {
		return nil, fmt.Errorf("%w: unknown sort key %q", common.ErrorValidation, p.SortBy)
	}
	if !p.Order.Valid() {
		return nil, fmt.Errorf("%w: unknown sort order %q", common.ErrorValidation, p.Order)
	}
	if p.Filter.Category != nil && !p.Filter.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", common.ErrorValidation, *p.Filter.Category)
	}
	if p.Filter.Priority != nil && !p.Filter.Priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", common.ErrorValidation, *p.Filter.Priority)
	}

	repo := s.repomanager.Tasks(s.db)
	all, err := repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}

	return query.Sort(query.Apply(all, p.Filter), p.SortBy, p.Order), nil
}

// SetCompleted toggles the completion flag. Permitted on archived tasks too:
// the flags are independent, and completing an archived task changes nothing
// about its visibility.
func (s *TaskService) SetCompleted(ctx context.Context, ownerID, taskID string, completed bool) error {
	repo := s.repomanager.Tasks(s.db)
	return s.mapFlagErr(repo.SetFlags(ctx, ownerID, taskID, tasks.FlagPatch{Completed: &completed}))
}

// Archive moves the task into the archived partition. Its completion flag is
// preserved.
func (s *TaskService) Archive(ctx context.Context, ownerID, taskID string) error {
	archived := true
	repo := s.repomanager.Tasks(s.db)
	return s.mapFlagErr(repo.SetFlags(ctx, ownerID, taskID, tasks.FlagPatch{Archived: &archived}))
}

// Restore returns an archived task to the active partition. Restoring a task
// that is not archived reports not found, the same as a missing row.
func (s *TaskService) Restore(ctx context.Context, ownerID, taskID string) error {
	repo := s.repomanager.Tasks(s.db)
	return s.mapFlagErr(repo.Restore(ctx, ownerID, taskID))
}

// Delete permanently removes the task, from any state.
func (s *TaskService) Delete(ctx context.Context, ownerID, taskID string) error {
	repo := s.repomanager.Tasks(s.db)
	return s.mapFlagErr(repo.Delete(ctx, ownerID, taskID))
}

func (s *TaskService) mapFlagErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrorNotFound
	}
	return fmt.Errorf("error updating task: %w", err)
}
