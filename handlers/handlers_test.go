package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/biosecret/go-tasks/auth"
	"github.com/biosecret/go-tasks/config"
	"github.com/biosecret/go-tasks/database"
	"github.com/biosecret/go-tasks/events"
	"github.com/biosecret/go-tasks/handlers"
	"github.com/biosecret/go-tasks/models"
	"github.com/biosecret/go-tasks/router"
	"github.com/gofiber/fiber/v2"
)

// fakeUserStore mirrors the UserStore contract in memory, including the
// duplicate-email error.
type fakeUserStore struct {
	nextID int
	users  []models.User
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for i := range s.users {
		if s.users[i].Email == email {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) Create(_ context.Context, email, passwordHash string) (*models.User, error) {
	for i := range s.users {
		if s.users[i].Email == email {
			return nil, database.ErrDuplicateEmail
		}
	}
	s.nextID++
	u := models.User{ID: s.nextID, Email: email, PasswordHash: passwordHash, CreatedAt: time.Now()}
	s.users = append(s.users, u)
	return &u, nil
}

// fakeTaskStore mirrors the TaskStore contract in memory: ownership scoping,
// stable ordering with id tie-break, updated_at stamped on every mutation.
type fakeTaskStore struct {
	nextID int
	tasks  []models.Task
}

func (s *fakeTaskStore) List(_ context.Context, userID int, status, sortField, order string) ([]models.Task, error) {
	out := []models.Task{}
	for _, t := range s.tasks {
		if t.UserID != userID {
			continue
		}
		if status == "pending" && t.Completed {
			continue
		}
		if status == "completed" && !t.Completed {
			continue
		}
		out = append(out, t)
	}

	asc := order == "asc"
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !asc {
			a, b = b, a
		}
		if sortField == "title" {
			if a.Title != b.Title {
				return a.Title < b.Title
			}
		} else if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return out, nil
}

func (s *fakeTaskStore) find(taskID, userID int) int {
	for i := range s.tasks {
		if s.tasks[i].ID == taskID && s.tasks[i].UserID == userID {
			return i
		}
	}
	return -1
}

func (s *fakeTaskStore) Get(_ context.Context, taskID, userID int) (*models.Task, error) {
	idx := s.find(taskID, userID)
	if idx == -1 {
		return nil, nil
	}
	t := s.tasks[idx]
	return &t, nil
}

func (s *fakeTaskStore) Create(_ context.Context, userID int, title string, description *string) (*models.Task, error) {
	s.nextID++
	t := models.Task{
		ID:          s.nextID,
		UserID:      userID,
		Title:       title,
		Description: description,
		Completed:   false,
		CreatedAt:   time.Now(),
	}
	s.tasks = append(s.tasks, t)
	return &t, nil
}

func (s *fakeTaskStore) Update(_ context.Context, taskID, userID int, upd models.TaskUpdate) (*models.Task, error) {
	idx := s.find(taskID, userID)
	if idx == -1 {
		return nil, nil
	}
	if upd.Title != nil {
		s.tasks[idx].Title = *upd.Title
	}
	if upd.Description != nil {
		s.tasks[idx].Description = upd.Description
	}
	if upd.Completed != nil {
		s.tasks[idx].Completed = *upd.Completed
	}
	now := time.Now()
	s.tasks[idx].UpdatedAt = &now
	t := s.tasks[idx]
	return &t, nil
}

func (s *fakeTaskStore) Delete(_ context.Context, taskID, userID int) (bool, error) {
	idx := s.find(taskID, userID)
	if idx == -1 {
		return false, nil
	}
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	return true, nil
}

func (s *fakeTaskStore) Toggle(_ context.Context, taskID, userID int) (*models.Task, error) {
	idx := s.find(taskID, userID)
	if idx == -1 {
		return nil, nil
	}
	s.tasks[idx].Completed = !s.tasks[idx].Completed
	now := time.Now()
	s.tasks[idx].UpdatedAt = &now
	t := s.tasks[idx]
	return &t, nil
}

func newTestServer(t *testing.T) (*fiber.App, *auth.Codec) {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:    "test-secret",
		JWTAlgorithm: "HS256",
		TokenTTL:     time.Hour,
	}
	codec := auth.NewCodec(cfg)
	h := handlers.New(cfg, &fakeUserStore{}, &fakeTaskStore{}, codec, events.NewHub(), nil)

	app := fiber.New()
	router.SetupRoutes(app, h, codec)
	return app, codec
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return v
}

func signup(t *testing.T, app *fiber.App, email, password string) models.SignupResponse {
	t.Helper()
	resp := doRequest(t, app, "POST", "/api/auth/signup", "", models.SignupRequest{
		Email:    email,
		Password: password,
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("signup %s: status = %d, want 201", email, resp.StatusCode)
	}
	return decodeBody[models.SignupResponse](t, resp)
}
