package repositories

import (
	"context"
	"errors"
	"server/internal/database"
	"server/internal/logger"
	. "server/internal/models"

	"gorm.io/gorm"
)

type TeamRepository interface {
	FindByName(ctx context.Context, name string) (*Team, error)
	Create(ctx context.Context, team *Team) error
}

type teamRepository struct {
	db  database.DB
	log logger.Logger
}

func NewTeam(db database.DB) TeamRepository {
	return &teamRepository{
		db:  db,
		log: logger.New("teamRepository"),
	}
}

func (r *teamRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := database.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *teamRepository) FindByName(ctx context.Context, name string) (*Team, error) {
	var team Team
	if err := r.getDB(ctx).First(&team, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, r.log.Function("FindByName").Err("failed to find team", err, "name", name)
	}

	return &team, nil
}

func (r *teamRepository) Create(ctx context.Context, team *Team) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(team).Error; err != nil {
		return log.Err("failed to create team", err, "name", team.Name)
	}

	log.Info("created team", "name", team.Name, "departmentID", team.DepartmentID)
	return nil
}
