package repositories

import (
	"context"
	"errors"
	"server/internal/database"
	"server/internal/logger"
	. "server/internal/models"

	"gorm.io/gorm"
)

type RoleRepository interface {
	FindOrCreate(ctx context.Context, name string) (*Role, error)
}

type roleRepository struct {
	db  database.DB
	log logger.Logger
}

func NewRole(db database.DB) RoleRepository {
	return &roleRepository{
		db:  db,
		log: logger.New("roleRepository"),
	}
}

func (r *roleRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := database.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *roleRepository) FindOrCreate(ctx context.Context, name string) (*Role, error) {
	log := r.log.Function("FindOrCreate")

	var role Role
	err := r.getDB(ctx).First(&role, "name = ?", name).Error
	if err == nil {
		return &role, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, log.Err("failed to find role", err, "name", name)
	}

	role = Role{Name: name}
	if err := r.getDB(ctx).Create(&role).Error; err != nil {
		return nil, log.Err("failed to create role", err, "name", name)
	}

	log.Info("created role", "name", name)
	return &role, nil
}
