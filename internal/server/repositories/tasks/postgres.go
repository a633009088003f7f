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

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {

	query :=
		`INSERT INTO tasks (id, user_id, text, category, priority, completed, archived, created_at, due_date)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 `

	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.UserID, task.Text, task.Category, task.Priority,
		task.Completed, task.Archived, task.CreatedAt, task.DueDate)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Task, error) {
	query :=
		`SELECT id, user_id, text, category, priority, completed, archived, created_at, due_date FROM tasks
		 WHERE user_id = $1
		 ORDER BY created_at
		 `

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

func (r *PostgresRepository) SetFlags(ctx context.Context, ownerID, taskID string, patch FlagPatch) error {
	set := make([]string, 0, 2)
	args := make([]any, 0, 4)

	if patch.Completed != nil {
		args = append(args, *patch.Completed)
		set = append(set, fmt.Sprintf("completed = $%d", len(args)))
	}
	if patch.Archived != nil {
		args = append(args, *patch.Archived)
		set = append(set, fmt.Sprintf("archived = $%d", len(args)))
	}
	if len(set) == 0 {
		return common.ErrorValidation
	}

	args = append(args, taskID, ownerID)
	query := fmt.Sprintf(`UPDATE tasks SET %s WHERE id = $%d AND user_id = $%d`,
		strings.Join(set, ", "), len(args)-1, len(args))

	return r.execOwned(ctx, query, args...)
}

func (r *PostgresRepository) Restore(ctx context.Context, ownerID, taskID string) error {
	query :=
		`UPDATE tasks SET archived = FALSE
		 WHERE id = $1 AND user_id = $2 AND archived = TRUE
		 `

	return r.execOwned(ctx, query, taskID, ownerID)
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID, taskID string) error {
	query :=
		`DELETE FROM tasks
		 WHERE id = $1 AND user_id = $2
		 `

	return r.execOwned(ctx, query, taskID, ownerID)
}

// execOwned runs an owner-scoped single-row statement and converts "zero
// rows affected" into ErrorNotFound.
func (r *PostgresRepository) execOwned(ctx context.Context, query string, args ...any) error {
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
