package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/biosecret/go-tasks/models"
)

// TaskStore persists tasks. Every operation that touches an existing task is
// scoped by both task id and owner id, so a task owned by someone else is
// indistinguishable from one that doesn't exist.
type TaskStore struct {
	db *sql.DB
}

func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db}
}

const taskColumns = "id, user_id, title, description, completed, created_at, updated_at"

// List returns every task owned by userID. status narrows to pending or
// completed tasks ("all" or anything else returns both). sortField and order
// are assumed pre-validated by the boundary; id breaks ties so the ordering
// is stable.
func (s *TaskStore) List(ctx context.Context, userID int, status, sortField, order string) ([]models.Task, error) {
	query := `SELECT ` + taskColumns + `
			  FROM tasks
			  WHERE user_id = $1`
	switch status {
	case "pending":
		query += " AND completed = FALSE"
	case "completed":
		query += " AND completed = TRUE"
	}

	column := "created_at"
	if sortField == "title" {
		column = "title"
	}
	direction := "DESC"
	if order == "asc" {
		direction = "ASC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s, id %s", column, direction, direction)

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Get returns the task only when it is owned by userID; otherwise
// (nil, nil).
func (s *TaskStore) Get(ctx context.Context, taskID, userID int) (*models.Task, error) {
	query := `SELECT ` + taskColumns + `
			  FROM tasks
			  WHERE id = $1 AND user_id = $2`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return s.scanTask(s.db.QueryRowContext(ctx, query, taskID, userID))
}

// Create inserts a task for userID with completed false and no updated_at.
// Title and description lengths are enforced at the boundary.
func (s *TaskStore) Create(ctx context.Context, userID int, title string, description *string) (*models.Task, error) {
	query := `INSERT INTO tasks (user_id, title, description)
			  VALUES ($1, $2, $3)
			  RETURNING id, created_at`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	t := models.Task{UserID: userID, Title: title, Description: description}
	err := s.db.QueryRowContext(ctx, query, userID, title, description).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Update applies the non-nil fields of upd and stamps updated_at, even when
// the field set is empty or the new values equal the old ones. Returns
// (nil, nil) when no owned task matches.
func (s *TaskStore) Update(ctx context.Context, taskID, userID int, upd models.TaskUpdate) (*models.Task, error) {
	query := `UPDATE tasks
			  SET title = COALESCE($1, title),
				  description = COALESCE($2, description),
				  completed = COALESCE($3, completed),
				  updated_at = NOW()
			  WHERE id = $4 AND user_id = $5
			  RETURNING ` + taskColumns
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return s.scanTask(s.db.QueryRowContext(ctx, query, upd.Title, upd.Description, upd.Completed, taskID, userID))
}

// Delete removes the task and reports whether an owned task was found.
func (s *TaskStore) Delete(ctx context.Context, taskID, userID int) (bool, error) {
	query := `DELETE FROM tasks
			  WHERE id = $1 AND user_id = $2`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := s.db.ExecContext(ctx, query, taskID, userID)
	if err != nil {
		return false, err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Toggle flips completed and stamps updated_at. Returns (nil, nil) when no
// owned task matches.
func (s *TaskStore) Toggle(ctx context.Context, taskID, userID int) (*models.Task, error) {
	query := `UPDATE tasks
			  SET completed = NOT completed,
				  updated_at = NOW()
			  WHERE id = $1 AND user_id = $2
			  RETURNING ` + taskColumns
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return s.scanTask(s.db.QueryRowContext(ctx, query, taskID, userID))
}

func (s *TaskStore) scanTask(row *sql.Row) (*models.Task, error) {
	var t models.Task
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}
