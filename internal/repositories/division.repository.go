package repositories

import (
	"context"
	"errors"
	"server/internal/database"
	"server/internal/logger"
	. "server/internal/models"

	"gorm.io/gorm"
)

type DivisionRepository interface {
	FindByName(ctx context.Context, name string) (*Division, error)
	FindOrCreate(ctx context.Context, name string) (*Division, error)
	GetAll(ctx context.Context) ([]Division, error)
}

type divisionRepository struct {
	db  database.DB
	log logger.Logger
}

func NewDivision(db database.DB) DivisionRepository {
	return &divisionRepository{
		db:  db,
		log: logger.New("divisionRepository"),
	}
}

func (r *divisionRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := database.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *divisionRepository) FindByName(ctx context.Context, name string) (*Division, error) {
	var division Division
	if err := r.getDB(ctx).First(&division, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, r.log.Function("FindByName").Err("failed to find division", err, "name", name)
	}

	return &division, nil
}

// FindOrCreate looks a division up by its exact name and creates it when
// absent. The create is persisted immediately so later rows in the same
// import hit the existing record.
func (r *divisionRepository) FindOrCreate(ctx context.Context, name string) (*Division, error) {
	log := r.log.Function("FindOrCreate")

	division, err := r.FindByName(ctx, name)
	if err == nil {
		return division, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	division = &Division{Name: name}
	if err := r.getDB(ctx).Create(division).Error; err != nil {
		return nil, log.Err("failed to create division", err, "name", name)
	}

	log.Info("created division", "name", name)
	return division, nil
}

func (r *divisionRepository) GetAll(ctx context.Context) ([]Division, error) {
	var divisions []Division
	err := r.getDB(ctx).
		Preload("Departments").
		Preload("Departments.Teams").
		Order("name").
		Find(&divisions).Error
	if err != nil {
		return nil, r.log.Function("GetAll").Err("failed to get divisions", err)
	}

	return divisions, nil
}
