package userController

import (
	"context"
	"fmt"
	"time"

	"server/config"
	"server/internal/database"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/repositories"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const sessionTTL = 24 * time.Hour

type UserController struct {
	userRepo     repositories.UserRepository
	positionRepo repositories.PositionRepository
	db           database.DB
	Config       config.Config
	log          logger.Logger
}

func New(
	userRepo repositories.UserRepository,
	positionRepo repositories.PositionRepository,
	db database.DB,
	config config.Config,
) *UserController {
	return &UserController{
		userRepo:     userRepo,
		positionRepo: positionRepo,
		db:           db,
		Config:       config,
		log:          logger.New("UserController"),
	}
}

// Login verifies credentials and issues a session token stored in the
// session cache.
func (c *UserController) Login(ctx context.Context, request LoginRequest) (*User, string, error) {
	log := c.log.Function("Login")

	user, err := c.userRepo.GetByLogin(ctx, request.Login)
	if err != nil {
		return nil, "", log.Err("login failed", err, "login", request.Login)
	}

	if !user.Enabled {
		return nil, "", log.Error("user is disabled", "login", request.Login)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.Password)); err != nil {
		return nil, "", log.Err("invalid credentials", err, "login", request.Login)
	}

	token := uuid.New().String()
	if err := c.db.StoreSession(ctx, sessionKey(token), user.ID, sessionTTL); err != nil {
		return nil, "", log.Err("failed to store session", err)
	}

	user.ActiveStatus = ActiveStatusOnline
	return user, token, nil
}

func (c *UserController) Logout(ctx context.Context, token string) {
	if err := c.db.DeleteSession(ctx, sessionKey(token)); err != nil {
		c.log.Function("Logout").Er("failed to delete session", err)
	}
}

// ResolveSession maps a session token back to its user.
func (c *UserController) ResolveSession(ctx context.Context, token string) (*User, error) {
	log := c.log.Function("ResolveSession")

	userID, err := c.db.GetSession(ctx, sessionKey(token))
	if err != nil {
		return nil, log.Err("session not found", err)
	}

	user, err := c.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, log.Err("session user not found", err, "userID", userID)
	}

	return user, nil
}

func (c *UserController) GetAll(ctx context.Context) ([]User, error) {
	return c.userRepo.GetAll(ctx)
}

// ValidatePassword checks a user's current password without changing
// anything. Backs the pre-flight check the change-password form performs.
func (c *UserController) ValidatePassword(ctx context.Context, staffID, password string) error {
	log := c.log.Function("ValidatePassword")

	user, err := c.userRepo.GetByLogin(ctx, staffID)
	if err != nil {
		return log.Err("user not found", err, "staffID", staffID)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return log.Err("invalid password", err, "staffID", staffID)
	}

	return nil
}

// ChangePassword verifies the current password and persists a hash of the
// new one.
func (c *UserController) ChangePassword(ctx context.Context, request ChangePasswordRequest) error {
	log := c.log.Function("ChangePassword")

	if request.NewPassword == "" {
		return log.ErrMsg("new password is empty")
	}

	user, err := c.userRepo.GetByLogin(ctx, request.StaffID)
	if err != nil {
		return log.Err("user not found", err, "staffID", request.StaffID)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.CurrentPassword)); err != nil {
		return log.Err("current password does not match", err, "staffID", request.StaffID)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return log.Err("failed to hash new password", err)
	}

	return c.userRepo.UpdatePassword(ctx, user.ID, string(hash))
}

// ChangePosition reassigns a user to a position by name, creating the
// position on first use like the import pipeline does.
func (c *UserController) ChangePosition(ctx context.Context, userID, positionName string) (*User, error) {
	log := c.log.Function("ChangePosition")

	if positionName == "" {
		return nil, log.ErrMsg("position is empty")
	}

	position, err := c.positionRepo.FindOrCreate(ctx, positionName)
	if err != nil {
		return nil, err
	}

	if err := c.userRepo.UpdatePosition(ctx, userID, position.ID); err != nil {
		return nil, err
	}

	user, err := c.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, log.Err("failed to reload user", err, "userID", userID)
	}

	return user, nil
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}
