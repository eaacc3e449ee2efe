package repositories

import (
	"context"
	"errors"
	"server/internal/database"
	"server/internal/logger"
	. "server/internal/models"

	"gorm.io/gorm"
)

type PositionRepository interface {
	FindOrCreate(ctx context.Context, name string) (*Position, error)
}

type positionRepository struct {
	db  database.DB
	log logger.Logger
}

func NewPosition(db database.DB) PositionRepository {
	return &positionRepository{
		db:  db,
		log: logger.New("positionRepository"),
	}
}

func (r *positionRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := database.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *positionRepository) FindOrCreate(ctx context.Context, name string) (*Position, error) {
	log := r.log.Function("FindOrCreate")

	var position Position
	err := r.getDB(ctx).First(&position, "name = ?", name).Error
	if err == nil {
		return &position, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, log.Err("failed to find position", err, "name", name)
	}

	position = Position{Name: name}
	if err := r.getDB(ctx).Create(&position).Error; err != nil {
		return nil, log.Err("failed to create position", err, "name", name)
	}

	log.Info("created position", "name", name)
	return &position, nil
}
