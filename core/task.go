package core

import "time"

// Task statuses. The wire values keep the original Indonesian vocabulary the
// mobile clients already speak.
const (
	TaskStatusPending = "belum_selesai"
	TaskStatusDone    = "selesai"
)

// Task is a to-do item owned by exactly one account.
type Task struct {
	ID           int64     `json:"id"`
	AccountID    int64     `json:"-"`
	Judul        string    `json:"judul"`
	Deskripsi    *string   `json:"deskripsi,omitempty"`
	Kategori     *string   `json:"kategori,omitempty"`
	Status       string    `json:"status"`
	TenggatWaktu *string   `json:"tenggat_waktu,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TaskFilter narrows and orders a task listing. Nil fields do not filter.
type TaskFilter struct {
	Kategori *string
	Status   *string
	// SortByDeadline orders by tenggat_waktu instead of created_at.
	SortByDeadline bool
	// Ascending only applies when SortByDeadline is set.
	Ascending bool
}
