package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"server/internal/app"
	"server/internal/handlers"
	"server/internal/logger"

	"github.com/gofiber/fiber/v2"
)

func main() {
	log := logger.New("main")

	application, err := app.New()
	if err != nil {
		log.Er("failed to initialize app", err)
		os.Exit(1)
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Er("failed to close app", err)
		}
	}()

	server := fiber.New(fiber.Config{
		AppName:   "wfh-server",
		BodyLimit: 25 * 1024 * 1024,
	})

	if err := handlers.Router(server, application); err != nil {
		log.Er("failed to register routes", err)
		os.Exit(1)
	}

	go func() {
		address := fmt.Sprintf(":%d", application.Config.ServerPort)
		if err := server.Listen(address); err != nil {
			log.Er("server stopped", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	if err := server.Shutdown(); err != nil {
		log.Er("failed to shut down server", err)
	}
}
