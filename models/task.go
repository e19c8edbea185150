package models

import "time"

// Task is a single todo item owned by exactly one user. UpdatedAt stays nil
// until the first mutation.
type Task struct {
	ID          int        `json:"id"`
	UserID      int        `json:"user_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// TaskUpdate carries a partial update. A nil field is left untouched, so the
// same struct backs both PUT and PATCH.
type TaskUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// TaskCreate is the request body for creating a task.
type TaskCreate struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// ListFilters echoes the query parameters a task listing was produced with.
type ListFilters struct {
	Status string `json:"status"`
	Sort   string `json:"sort"`
	Order  string `json:"order"`
}

// TaskListResponse is the envelope for GET /api/tasks.
type TaskListResponse struct {
	Tasks   []Task      `json:"tasks"`
	Total   int         `json:"total"`
	Filters ListFilters `json:"filters"`
}
