package orgController

import (
	"context"

	"server/internal/logger"
	. "server/internal/models"
	"server/internal/repositories"
)

type OrgController struct {
	divisionRepo repositories.DivisionRepository
	log          logger.Logger
}

func New(divisionRepo repositories.DivisionRepository) *OrgController {
	return &OrgController{
		divisionRepo: divisionRepo,
		log:          logger.New("OrgController"),
	}
}

// GetOrgChart returns every division with its departments and teams nested.
func (c *OrgController) GetOrgChart(ctx context.Context) ([]Division, error) {
	log := c.log.Function("GetOrgChart")

	divisions, err := c.divisionRepo.GetAll(ctx)
	if err != nil {
		return nil, log.Err("failed to load org chart", err)
	}

	return divisions, nil
}
