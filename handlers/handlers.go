package handlers

import (
	"context"
	"log"

	"github.com/biosecret/go-tasks/auth"
	"github.com/biosecret/go-tasks/config"
	"github.com/biosecret/go-tasks/events"
	"github.com/biosecret/go-tasks/models"
	"github.com/gofiber/fiber/v2"
)

// UserStore is what the auth handlers need from user persistence.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, email, passwordHash string) (*models.User, error)
}

// TaskStore is what the task handlers need from task persistence. Every
// method is scoped to the owning user.
type TaskStore interface {
	List(ctx context.Context, userID int, status, sortField, order string) ([]models.Task, error)
	Get(ctx context.Context, taskID, userID int) (*models.Task, error)
	Create(ctx context.Context, userID int, title string, description *string) (*models.Task, error)
	Update(ctx context.Context, taskID, userID int, upd models.TaskUpdate) (*models.Task, error)
	Delete(ctx context.Context, taskID, userID int) (bool, error)
	Toggle(ctx context.Context, taskID, userID int) (*models.Task, error)
}

// Handler holds the request handlers' collaborators. Configuration is wired
// in once at startup and never changes.
type Handler struct {
	cfg   *config.Config
	users UserStore
	tasks TaskStore
	codec *auth.Codec
	hub   *events.Hub
	mqtt  *events.Publisher
}

func New(cfg *config.Config, users UserStore, tasks TaskStore, codec *auth.Codec, hub *events.Hub, mqtt *events.Publisher) *Handler {
	return &Handler{
		cfg:   cfg,
		users: users,
		tasks: tasks,
		codec: codec,
		hub:   hub,
		mqtt:  mqtt,
	}
}

// publish fans a task event out to the live listeners.
func (h *Handler) publish(eventType string, task models.Task) {
	ev := events.Event{Type: eventType, Task: task}
	h.hub.Publish(ev)
	h.mqtt.Publish(ev)
}

// currentUserID reads the identity the auth middleware stored.
func currentUserID(c *fiber.Ctx) int {
	id, _ := c.Locals("user_id").(int)
	return id
}

func currentEmail(c *fiber.Ctx) string {
	email, _ := c.Locals("email").(string)
	return email
}

func writeError(c *fiber.Ctx, status int, errorType, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{
		StatusCode: status,
		ErrorType:  errorType,
		Message:    message,
	})
}

func validationError(c *fiber.Ctx, message string) error {
	return writeError(c, fiber.StatusBadRequest, "validation_error", message)
}

func notFound(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusNotFound, "not_found", "Task not found")
}

// internalError logs the cause and returns a generic message; storage
// details never reach the client.
func internalError(c *fiber.Ctx, err error) error {
	log.Printf("internal error: %v", err)
	return writeError(c, fiber.StatusInternalServerError, "internal_error", "Internal server error")
}
