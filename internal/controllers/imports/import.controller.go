package importController

import (
	"context"
	"io"

	"server/internal/logger"
	"server/internal/services"
)

// ImportController fronts the spreadsheet import pipeline and converts its
// outcome to the boolean success contract the upload endpoint exposes.
type ImportController struct {
	importService            *services.ImportService
	cacheInvalidationService *services.CacheInvalidationService
	log                      logger.Logger
}

func New(
	importService *services.ImportService,
	cacheInvalidationService *services.CacheInvalidationService,
) *ImportController {
	return &ImportController{
		importService:            importService,
		cacheInvalidationService: cacheInvalidationService,
		log:                      logger.New("ImportController"),
	}
}

// ImportUsers runs one import call. Failures are logged and reported as
// false; there is no per-row error report.
func (c *ImportController) ImportUsers(ctx context.Context, reader io.Reader, sheetName string) bool {
	log := c.log.Function("ImportUsers")

	if err := c.importService.ImportUsers(ctx, reader, sheetName); err != nil {
		log.Er("import failed", err, "sheet", sheetName)
		return false
	}

	c.cacheInvalidationService.InvalidateUsers(ctx)
	return true
}
