package repositories

import (
	"context"
	"errors"
	"server/internal/database"
	"server/internal/logger"
	. "server/internal/models"

	"gorm.io/gorm"
)

type ApproveRoleRepository interface {
	FindByName(ctx context.Context, name string) (*ApproveRole, error)
	Create(ctx context.Context, approveRole *ApproveRole) error
}

type approveRoleRepository struct {
	db  database.DB
	log logger.Logger
}

func NewApproveRole(db database.DB) ApproveRoleRepository {
	return &approveRoleRepository{
		db:  db,
		log: logger.New("approveRoleRepository"),
	}
}

func (r *approveRoleRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := database.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *approveRoleRepository) FindByName(ctx context.Context, name string) (*ApproveRole, error) {
	var approveRole ApproveRole
	if err := r.getDB(ctx).First(&approveRole, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, r.log.Function("FindByName").Err("failed to find approve role", err, "name", name)
	}

	return &approveRole, nil
}

func (r *approveRoleRepository) Create(ctx context.Context, approveRole *ApproveRole) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(approveRole).Error; err != nil {
		return log.Err("failed to create approve role", err, "name", approveRole.Name)
	}

	log.Info("created approve role", "name", approveRole.Name)
	return nil
}
