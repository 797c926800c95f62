package pgx

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/flowlyhq/flowly/core"
)

const taskColumns = `id, account_id, judul, deskripsi, kategori, status, tenggat_waktu, created_at, updated_at`

func scanTask(row pgx.Row) (*core.Task, error) {
	t := &core.Task{}
	err := row.Scan(
		&t.ID, &t.AccountID, &t.Judul, &t.Deskripsi, &t.Kategori, &t.Status, &t.TenggatWaktu,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrTaskNotFound
		}
		return nil, err
	}
	return t, nil
}

func (a *Adapter) CreateTask(ctx context.Context, task *core.Task) error {
	query := `INSERT INTO tasks (account_id, judul, deskripsi, kategori, status, tenggat_waktu)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	return a.pool.QueryRow(ctx, query,
		task.AccountID, task.Judul, task.Deskripsi, task.Kategori, task.Status, task.TenggatWaktu,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

func (a *Adapter) GetTaskByID(ctx context.Context, id, accountID int64) (*core.Task, error) {
	q := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND account_id = $2`
	return scanTask(a.pool.QueryRow(ctx, q, id, accountID))
}

func (a *Adapter) ListTasks(ctx context.Context, accountID int64, filter core.TaskFilter) ([]*core.Task, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + taskColumns + ` FROM tasks WHERE account_id = $1`)
	args := []any{accountID}

	if filter.Kategori != nil {
		args = append(args, *filter.Kategori)
		fmt.Fprintf(&sb, " AND kategori = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		fmt.Fprintf(&sb, " AND status = $%d", len(args))
	}

	if filter.SortByDeadline {
		// NULL deadlines sink to the bottom in either direction.
		if filter.Ascending {
			sb.WriteString(" ORDER BY tenggat_waktu ASC NULLS LAST, created_at DESC")
		} else {
			sb.WriteString(" ORDER BY tenggat_waktu DESC NULLS LAST, created_at DESC")
		}
	} else {
		sb.WriteString(" ORDER BY created_at DESC")
	}

	rows, err := a.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*core.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (a *Adapter) UpdateTask(ctx context.Context, task *core.Task) error {
	q := `UPDATE tasks
		SET judul = $1, deskripsi = $2, kategori = $3, status = $4, tenggat_waktu = $5, updated_at = now()
		WHERE id = $6 AND account_id = $7
		RETURNING updated_at`

	err := a.pool.QueryRow(ctx, q,
		task.Judul, task.Deskripsi, task.Kategori, task.Status, task.TenggatWaktu,
		task.ID, task.AccountID,
	).Scan(&task.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return core.ErrTaskNotFound
		}
		return err
	}
	return nil
}

func (a *Adapter) DeleteTask(ctx context.Context, id, accountID int64) error {
	tag, err := a.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND account_id = $2`, id, accountID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrTaskNotFound
	}
	return nil
}
