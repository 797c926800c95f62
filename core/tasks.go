package core

import (
	"context"
	"fmt"
)

// TaskService implements the per-account task operations. Every operation is
// scoped by account id; a task belonging to someone else is indistinguishable
// from a missing one.
type TaskService struct {
	db TaskStorage
}

func NewTaskService(db TaskStorage) *TaskService {
	return &TaskService{db: db}
}

func (s *TaskService) CreateTask(ctx context.Context, accountID int64, input CreateTaskInput) (*Task, error) {
	if vErr := ValidateCreateTask(input); vErr != nil {
		return nil, vErr
	}

	task := &Task{
		AccountID:    accountID,
		Judul:        input.Judul,
		Deskripsi:    input.Deskripsi,
		Kategori:     input.Kategori,
		Status:       TaskStatusPending,
		TenggatWaktu: input.TenggatWaktu,
	}
	if err := s.db.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

func (s *TaskService) ListTasks(ctx context.Context, accountID int64, filter TaskFilter) ([]*Task, error) {
	if filter.Status != nil && *filter.Status != TaskStatusPending && *filter.Status != TaskStatusDone {
		return nil, &ValidationError{Errors: []string{"Status harus selesai atau belum_selesai"}}
	}

	tasks, err := s.db.ListTasks(ctx, accountID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []*Task{}
	}
	return tasks, nil
}

func (s *TaskService) GetTask(ctx context.Context, accountID, taskID int64) (*Task, error) {
	return s.db.GetTaskByID(ctx, taskID, accountID)
}

// UpdateTask applies the non-nil fields of input to an existing task. At
// least one field must be present.
func (s *TaskService) UpdateTask(ctx context.Context, accountID, taskID int64, input UpdateTaskInput) (*Task, error) {
	if vErr := ValidateUpdateTask(input); vErr != nil {
		return nil, vErr
	}
	if input.Judul == nil && input.Deskripsi == nil && input.Kategori == nil &&
		input.Status == nil && input.TenggatWaktu == nil {
		return nil, ErrNoFieldsToUpdate
	}

	task, err := s.db.GetTaskByID(ctx, taskID, accountID)
	if err != nil {
		return nil, err
	}

	if input.Judul != nil {
		task.Judul = *input.Judul
	}
	if input.Deskripsi != nil {
		task.Deskripsi = input.Deskripsi
	}
	if input.Kategori != nil {
		task.Kategori = input.Kategori
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.TenggatWaktu != nil {
		task.TenggatWaktu = input.TenggatWaktu
	}

	if err := s.db.UpdateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, accountID, taskID int64) error {
	return s.db.DeleteTask(ctx, taskID, accountID)
}

// ToggleStatus flips a task between pending and done.
func (s *TaskService) ToggleStatus(ctx context.Context, accountID, taskID int64) (*Task, error) {
	task, err := s.db.GetTaskByID(ctx, taskID, accountID)
	if err != nil {
		return nil, err
	}

	if task.Status == TaskStatusDone {
		task.Status = TaskStatusPending
	} else {
		task.Status = TaskStatusDone
	}

	if err := s.db.UpdateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}
