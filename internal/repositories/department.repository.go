package repositories

import (
	"context"
	"errors"
	"server/internal/database"
	"server/internal/logger"
	. "server/internal/models"

	"gorm.io/gorm"
)

type DepartmentRepository interface {
	FindByName(ctx context.Context, name string) (*Department, error)
	Create(ctx context.Context, department *Department) error
}

type departmentRepository struct {
	db  database.DB
	log logger.Logger
}

func NewDepartment(db database.DB) DepartmentRepository {
	return &departmentRepository{
		db:  db,
		log: logger.New("departmentRepository"),
	}
}

func (r *departmentRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := database.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *departmentRepository) FindByName(ctx context.Context, name string) (*Department, error) {
	var department Department
	if err := r.getDB(ctx).First(&department, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, r.log.Function("FindByName").Err("failed to find department", err, "name", name)
	}

	return &department, nil
}

func (r *departmentRepository) Create(ctx context.Context, department *Department) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(department).Error; err != nil {
		return log.Err("failed to create department", err, "name", department.Name)
	}

	log.Info("created department", "name", department.Name, "divisionID", department.DivisionID)
	return nil
}
