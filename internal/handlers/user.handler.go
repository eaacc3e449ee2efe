package handlers

import (
	"server/internal/app"
	userController "server/internal/controllers/users"
	"server/internal/logger"
	. "server/internal/models"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	Handler
	controller *userController.UserController
}

func NewUserHandler(app app.App, router fiber.Router) *UserHandler {
	log := logger.New("handlers").File("user_handler")
	return &UserHandler{
		controller: app.UserController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *UserHandler) Register() {
	users := h.router.Group("/users")
	users.Post("/login", h.login)

	users.Get("/", h.middleware.RequireAuth, h.getUsers)
	users.Get("/me", h.middleware.RequireAuth, h.getCurrentUser)
	users.Post("/logout", h.middleware.RequireAuth, h.logout)
	users.Put("/changePosition/:id", h.middleware.RequireAuth, h.changePosition)

	password := h.router.Group("/password")
	password.Post("/validatePassword", h.middleware.RequireAuth, h.validatePassword)
	password.Post("/changePassword", h.middleware.RequireAuth, h.changePassword)
}

func (h *UserHandler) login(c *fiber.Ctx) error {
	log := h.log.Function("login")

	var loginRequest LoginRequest
	if err := c.BodyParser(&loginRequest); err != nil {
		log.Er("failed to parse login request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse login request"})
	}

	user, token, err := h.controller.Login(c.Context(), loginRequest)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "error", "error": "invalid credentials"})
	}

	return c.JSON(fiber.Map{"message": "success", "user": user, "token": token})
}

func (h *UserHandler) getCurrentUser(c *fiber.Ctx) error {
	user := c.Locals("user").(User)
	if user.ID == "" {
		h.log.Function("getCurrentUser").ErMsg("No user found in locals")
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "error", "error": "failed to get user"})
	}

	return c.JSON(fiber.Map{"message": "success", "user": user})
}

func (h *UserHandler) getUsers(c *fiber.Ctx) error {
	log := h.log.Function("getUsers")

	users, err := h.controller.GetAll(c.Context())
	if err != nil {
		log.Er("failed to get users", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "error", "error": "failed to get users"})
	}

	return c.JSON(fiber.Map{"message": "success", "users": users})
}

func (h *UserHandler) validatePassword(c *fiber.Ctx) error {
	log := h.log.Function("validatePassword")

	var request ValidatePasswordRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse validate password request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "error", "error": "failed to parse request"})
	}

	if err := h.controller.ValidatePassword(c.Context(), request.StaffID, request.Password); err != nil {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "error", "error": "invalid password"})
	}

	return c.JSON(fiber.Map{"message": "success"})
}

func (h *UserHandler) changePassword(c *fiber.Ctx) error {
	log := h.log.Function("changePassword")

	var request ChangePasswordRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse change password request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "error", "error": "failed to parse request"})
	}

	if err := h.controller.ChangePassword(c.Context(), request); err != nil {
		log.Er("failed to change password", err, "staffID", request.StaffID)
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "error", "error": "failed to change password"})
	}

	return c.JSON(fiber.Map{"message": "success"})
}

func (h *UserHandler) changePosition(c *fiber.Ctx) error {
	log := h.log.Function("changePosition")

	userID := c.Params("id")
	position := c.Query("position")

	user, err := h.controller.ChangePosition(c.Context(), userID, position)
	if err != nil {
		log.Er("failed to change position", err, "userID", userID)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "error", "error": "failed to change position"})
	}

	return c.JSON(fiber.Map{"message": "success", "user": user})
}

func (h *UserHandler) logout(c *fiber.Ctx) error {
	token, _ := c.Locals("sessionToken").(string)
	if token != "" {
		h.controller.Logout(c.Context(), token)
	}

	return c.JSON(fiber.Map{"message": "success"})
}
