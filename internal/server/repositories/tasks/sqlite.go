package tasks

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dkoval/tasktrack/internal/common"
	"github.com/dkoval/tasktrack/internal/dbx"
	"github.com/dkoval/tasktrack/internal/server/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	query := `INSERT INTO tasks (id, user_id, text, category, priority, completed, archived, created_at, due_date)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.UserID, task.Text, task.Category, task.Priority,
		task.Completed, task.Archived, task.CreatedAt, task.DueDate)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

func (r *SQLiteRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Task, error) {
	query := `SELECT id, user_id, text, category, priority, completed, archived, created_at, due_date FROM tasks
			  WHERE user_id = ?
			  ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Task
	for rows.Next() {
		var item models.Task
		var due sql.NullTime
		if err := rows.Scan(&item.ID, &item.UserID, &item.Text, &item.Category, &item.Priority,
			&item.Completed, &item.Archived, &item.CreatedAt, &due); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if due.Valid {
			item.DueDate = &due.Time
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) SetFlags(ctx context.Context, ownerID, taskID string, patch FlagPatch) error {
	set := make([]string, 0, 2)
	args := make([]any, 0, 4)

	if patch.Completed != nil {
		set = append(set, "completed = ?")
		args = append(args, *patch.Completed)
	}
	if patch.Archived != nil {
		set = append(set, "archived = ?")
		args = append(args, *patch.Archived)
	}
	if len(set) == 0 {
		return common.ErrorValidation
	}

	args = append(args, taskID, ownerID)
	query := fmt.Sprintf(`UPDATE tasks SET %s WHERE id = ? AND user_id = ?`, strings.Join(set, ", "))

	return r.execOwned(ctx, query, args...)
}

func (r *SQLiteRepository) Restore(ctx context.Context, ownerID, taskID string) error {
	query := `UPDATE tasks SET archived = 0 WHERE id = ? AND user_id = ? AND archived = 1`

	return r.execOwned(ctx, query, taskID, ownerID)
}

func (r *SQLiteRepository) Delete(ctx context.Context, ownerID, taskID string) error {
	query := `DELETE FROM tasks WHERE id = ? AND user_id = ?`

	return r.execOwned(ctx, query, taskID, ownerID)
}

func (r *SQLiteRepository) execOwned(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if ra == 0 {
		return common.ErrorNotFound
	}

	return nil
}
