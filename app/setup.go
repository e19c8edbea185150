package app

import (
	"github.com/biosecret/go-tasks/auth"
	"github.com/biosecret/go-tasks/config"
	"github.com/biosecret/go-tasks/database"
	"github.com/biosecret/go-tasks/events"
	"github.com/biosecret/go-tasks/handlers"
	"github.com/biosecret/go-tasks/router"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupAndRunApp wires everything together and starts the Fiber server.
func SetupAndRunApp() error {
	// Load environment variables from a .env file if one exists.
	err := config.LoadENV()
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	err = database.StartPostgreSQL(cfg)
	if err != nil {
		return err
	}
	defer database.ClosePostgreSQL()

	codec := auth.NewCodec(cfg)
	hub := events.NewHub()

	// Optional: mirror task events to an MQTT broker.
	publisher, err := events.NewPublisher(cfg.MQTTURL)
	if err != nil {
		return err
	}
	defer publisher.Close()

	h := handlers.New(
		cfg,
		database.NewUserStore(database.GetDB()),
		database.NewTaskStore(database.GetDB()),
		codec,
		hub,
		publisher,
	)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${ip}]:${port} ${status} - ${method} ${path} ${latency}\n",
	}))

	router.SetupRoutes(app, h, codec)
	config.AddSwaggerRoutes(app)

	return app.Listen(":" + cfg.Port)
}
