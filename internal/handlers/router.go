package handlers

import (
	"server/internal/app"
	"server/internal/handlers/middleware"
	"server/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func Router(router fiber.Router, app *app.App) (err error) {
	api := router.Group("/api")
	HealthHandler(api, app.Config)
	NewUserHandler(*app, api).Register()
	NewImportHandler(*app, api).Register()
	NewOrgHandler(*app, api).Register()

	return nil
}
