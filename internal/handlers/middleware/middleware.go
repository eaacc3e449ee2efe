package middleware

import (
	"strings"

	"server/config"
	userController "server/internal/controllers/users"
	"server/internal/database"
	"server/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type Middleware struct {
	db             database.DB
	config         config.Config
	userController *userController.UserController
	log            logger.Logger
}

func New(
	db database.DB,
	config config.Config,
	userController *userController.UserController,
) Middleware {
	return Middleware{
		db:             db,
		config:         config,
		userController: userController,
		log:            logger.New("middleware"),
	}
}

// RequireAuth resolves the bearer session token to a user and stores it in
// locals for downstream handlers.
func (m Middleware) RequireAuth(c *fiber.Ctx) error {
	log := m.log.Function("RequireAuth")

	token := bearerToken(c)
	if token == "" {
		log.ErMsg("missing session token", "path", c.Path())
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "error", "error": "missing session token"})
	}

	user, err := m.userController.ResolveSession(c.Context(), token)
	if err != nil {
		log.Er("invalid session", err, "path", c.Path())
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "error", "error": "invalid session"})
	}

	c.Locals("user", *user)
	c.Locals("sessionToken", token)
	return c.Next()
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Get("X-Session-Token")
}
