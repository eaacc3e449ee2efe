package handlers

import (
	"server/internal/app"
	importController "server/internal/controllers/imports"
	"server/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type ImportHandler struct {
	Handler
	controller *importController.ImportController
}

func NewImportHandler(app app.App, router fiber.Router) *ImportHandler {
	log := logger.New("handlers").File("import_handler")
	return &ImportHandler{
		controller: app.ImportController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ImportHandler) Register() {
	imports := h.router.Group("/import")
	imports.Post("/users", h.middleware.RequireAuth, h.importUsers)
}

// importUsers accepts a multipart workbook upload plus a sheet name and runs
// the user import pipeline against it.
func (h *ImportHandler) importUsers(c *fiber.Ctx) error {
	log := h.log.Function("importUsers")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		log.Er("missing upload file", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "error", "error": "missing upload file"})
	}

	sheetName := c.FormValue("sheetName")
	if sheetName == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "error", "error": "missing sheetName"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Er("failed to open upload", err, "filename", fileHeader.Filename)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "error", "error": "failed to open upload"})
	}
	defer file.Close()

	if ok := h.controller.ImportUsers(c.Context(), file, sheetName); !ok {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "error", "error": "import failed"})
	}

	return c.JSON(fiber.Map{"message": "success"})
}
