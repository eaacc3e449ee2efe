package handlers

import (
	"server/internal/app"
	orgController "server/internal/controllers/org"
	"server/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type OrgHandler struct {
	Handler
	controller *orgController.OrgController
}

func NewOrgHandler(app app.App, router fiber.Router) *OrgHandler {
	log := logger.New("handlers").File("org_handler")
	return &OrgHandler{
		controller: app.OrgController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *OrgHandler) Register() {
	org := h.router.Group("/org")
	org.Get("/chart", h.middleware.RequireAuth, h.getOrgChart)
}

func (h *OrgHandler) getOrgChart(c *fiber.Ctx) error {
	log := h.log.Function("getOrgChart")

	divisions, err := h.controller.GetOrgChart(c.Context())
	if err != nil {
		log.Er("failed to get org chart", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "error", "error": "failed to get org chart"})
	}

	return c.JSON(fiber.Map{"message": "success", "divisions": divisions})
}
