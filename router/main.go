package router

import (
	"github.com/biosecret/go-tasks/auth"
	"github.com/biosecret/go-tasks/handlers"
	"github.com/biosecret/go-tasks/middleware"
	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, h *handlers.Handler, codec *auth.Codec) {
	requireAuth := middleware.RequireAuth(codec)

	api := app.Group("/api")
	api.Get("/health", handlers.HandleHealthCheck)

	authGroup := api.Group("/auth")
	authGroup.Post("/signup", h.HandleSignup)
	authGroup.Post("/signin", h.HandleSignin)
	authGroup.Post("/signout", requireAuth, h.HandleSignout)
	authGroup.Get("/me", requireAuth, h.HandleMe)

	tasks := api.Group("/tasks", requireAuth)
	tasks.Get("/", h.HandleListTasks)
	tasks.Post("/", h.HandleCreateTask)
	tasks.Get("/:id", h.HandleGetTask)
	tasks.Put("/:id", h.HandleUpdateTask)
	tasks.Patch("/:id", h.HandleUpdateTask)
	tasks.Delete("/:id", h.HandleDeleteTask)
	tasks.Post("/:id/toggle", h.HandleToggleTask)

	api.Get("/events/stream", requireAuth, h.HandleEventStream)
}
