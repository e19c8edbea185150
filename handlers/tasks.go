package handlers

import (
	"unicode/utf8"

	"github.com/biosecret/go-tasks/events"
	"github.com/biosecret/go-tasks/models"
	"github.com/gofiber/fiber/v2"
)

// HandleListTasks returns the caller's tasks with optional status filtering
// and sorting.
func (h *Handler) HandleListTasks(c *fiber.Ctx) error {
	status := c.Query("status", "all")
	sortField := c.Query("sort", "created_at")
	order := c.Query("order", "desc")

	switch status {
	case "pending", "completed", "all":
	default:
		return validationError(c, "Invalid status filter. Must be 'pending', 'completed', or 'all'")
	}
	switch sortField {
	case "created_at", "title":
	default:
		return validationError(c, "Invalid sort field. Must be 'created_at' or 'title'")
	}
	switch order {
	case "asc", "desc":
	default:
		return validationError(c, "Invalid sort order. Must be 'asc' or 'desc'")
	}

	tasks, err := h.tasks.List(c.Context(), currentUserID(c), status, sortField, order)
	if err != nil {
		return internalError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(models.TaskListResponse{
		Tasks: tasks,
		Total: len(tasks),
		Filters: models.ListFilters{
			Status: status,
			Sort:   sortField,
			Order:  order,
		},
	})
}

// HandleCreateTask creates a task owned by the caller.
func (h *Handler) HandleCreateTask(c *fiber.Ctx) error {
	req := new(models.TaskCreate)
	if err := c.BodyParser(req); err != nil {
		return validationError(c, "Invalid request body")
	}
	if msg, ok := checkTitle(req.Title); !ok {
		return validationError(c, msg)
	}
	if msg, ok := checkDescription(req.Description); !ok {
		return validationError(c, msg)
	}

	task, err := h.tasks.Create(c.Context(), currentUserID(c), req.Title, req.Description)
	if err != nil {
		return internalError(c, err)
	}

	h.publish(events.TaskCreated, *task)
	return c.Status(fiber.StatusCreated).JSON(task)
}

// HandleGetTask returns one of the caller's tasks. A task owned by another
// user answers 404, same as a missing one.
func (h *Handler) HandleGetTask(c *fiber.Ctx) error {
	taskID, ok := taskIDParam(c)
	if !ok {
		return notFound(c)
	}

	task, err := h.tasks.Get(c.Context(), taskID, currentUserID(c))
	if err != nil {
		return internalError(c, err)
	}
	if task == nil {
		return notFound(c)
	}
	return c.Status(fiber.StatusOK).JSON(task)
}

// HandleUpdateTask applies a partial update. Bound to both PUT and PATCH;
// absent fields are left untouched either way.
func (h *Handler) HandleUpdateTask(c *fiber.Ctx) error {
	taskID, ok := taskIDParam(c)
	if !ok {
		return notFound(c)
	}

	upd := new(models.TaskUpdate)
	if err := c.BodyParser(upd); err != nil {
		return validationError(c, "Invalid request body")
	}
	if upd.Title != nil {
		if msg, ok := checkTitle(*upd.Title); !ok {
			return validationError(c, msg)
		}
	}
	if msg, ok := checkDescription(upd.Description); !ok {
		return validationError(c, msg)
	}

	task, err := h.tasks.Update(c.Context(), taskID, currentUserID(c), *upd)
	if err != nil {
		return internalError(c, err)
	}
	if task == nil {
		return notFound(c)
	}

	h.publish(events.TaskUpdated, *task)
	return c.Status(fiber.StatusOK).JSON(task)
}

// HandleDeleteTask removes one of the caller's tasks.
func (h *Handler) HandleDeleteTask(c *fiber.Ctx) error {
	taskID, ok := taskIDParam(c)
	if !ok {
		return notFound(c)
	}

	userID := currentUserID(c)
	deleted, err := h.tasks.Delete(c.Context(), taskID, userID)
	if err != nil {
		return internalError(c, err)
	}
	if !deleted {
		return notFound(c)
	}

	h.publish(events.TaskDeleted, models.Task{ID: taskID, UserID: userID})
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleToggleTask flips a task's completed flag.
func (h *Handler) HandleToggleTask(c *fiber.Ctx) error {
	taskID, ok := taskIDParam(c)
	if !ok {
		return notFound(c)
	}

	task, err := h.tasks.Toggle(c.Context(), taskID, currentUserID(c))
	if err != nil {
		return internalError(c, err)
	}
	if task == nil {
		return notFound(c)
	}

	h.publish(events.TaskToggled, *task)
	return c.Status(fiber.StatusOK).JSON(task)
}

// taskIDParam parses the :id path segment. A non-numeric or non-positive id
// can't name any task, so callers answer 404.
func taskIDParam(c *fiber.Ctx) (int, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func checkTitle(title string) (string, bool) {
	n := utf8.RuneCountInString(title)
	if n < 1 {
		return "Title must not be empty", false
	}
	if n > 500 {
		return "Title must be at most 500 characters", false
	}
	return "", true
}

func checkDescription(description *string) (string, bool) {
	if description != nil && utf8.RuneCountInString(*description) > 2000 {
		return "Description must be at most 2000 characters", false
	}
	return "", true
}
