package repositories

import (
	"context"
	"server/internal/database"
	"server/internal/logger"
	. "server/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetByLogin(ctx context.Context, login string) (*User, error)
	GetAll(ctx context.Context) ([]User, error)
	Create(ctx context.Context, user *User) error
	CreateTolerant(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	UpdatePosition(ctx context.Context, id string, positionID uint) error
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	db  database.DB
	log logger.Logger
}

func NewUser(db database.DB) UserRepository {
	return &userRepository{
		db:  db,
		log: logger.New("userRepository"),
	}
}

func (r *userRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := database.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*User, error) {
	var user User
	if err := r.getDB(ctx).Preload(clause.Associations).First(&user, "id = ?", id).Error; err != nil {
		return nil, r.log.Function("GetByID").Err("failed to get user", err, "id", id)
	}

	return &user, nil
}

// GetByLogin resolves a user by staff ID or email.
func (r *userRepository) GetByLogin(ctx context.Context, login string) (*User, error) {
	var user User
	err := r.getDB(ctx).
		First(&user, "staff_id = ? OR email = ?", login, login).Error
	if err != nil {
		return nil, r.log.Function("GetByLogin").Err("failed to get user by login", err, "login", login)
	}

	return &user, nil
}

func (r *userRepository) GetAll(ctx context.Context) ([]User, error) {
	var users []User
	err := r.getDB(ctx).
		Preload("Division").
		Preload("Department").
		Preload("Team").
		Preload("Role").
		Preload("Position").
		Order("staff_id").
		Find(&users).Error
	if err != nil {
		return nil, r.log.Function("GetAll").Err("failed to get users", err)
	}

	return users, nil
}

func (r *userRepository) Create(ctx context.Context, user *User) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(user).Error; err != nil {
		return log.Err("failed to create user", err, "staffID", user.StaffID)
	}

	return nil
}

// CreateTolerant inserts the user, silently keeping the existing record on a
// duplicate staff ID or email.
func (r *userRepository) CreateTolerant(ctx context.Context, user *User) error {
	log := r.log.Function("CreateTolerant")

	result := r.getDB(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(user)
	if result.Error != nil {
		return log.Err("failed to create user", result.Error, "staffID", user.StaffID)
	}

	if result.RowsAffected == 0 {
		log.Info("user already exists, skipped", "staffID", user.StaffID)
	}

	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	log := r.log.Function("UpdatePassword")

	result := r.getDB(ctx).Model(&User{}).Where("id = ?", id).Update("password", passwordHash)
	if result.Error != nil {
		return log.Err("failed to update password", result.Error, "id", id)
	}
	if result.RowsAffected == 0 {
		return log.ErrMsg("user not found")
	}

	return nil
}

func (r *userRepository) UpdatePosition(ctx context.Context, id string, positionID uint) error {
	log := r.log.Function("UpdatePosition")

	result := r.getDB(ctx).Model(&User{}).Where("id = ?", id).Update("position_id", positionID)
	if result.Error != nil {
		return log.Err("failed to update position", result.Error, "id", id)
	}
	if result.RowsAffected == 0 {
		return log.ErrMsg("user not found")
	}

	return nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.getDB(ctx).Model(&User{}).Count(&count).Error; err != nil {
		return 0, r.log.Function("Count").Err("failed to count users", err)
	}

	return count, nil
}
