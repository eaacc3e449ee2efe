package userController

import (
	"context"
	"testing"

	"server/config"
	"server/internal/database"
	. "server/internal/models"
	"server/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newControllerTestEnv(t *testing.T) (*UserController, database.DB) {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = gormDB.AutoMigrate(
		&Division{},
		&Department{},
		&Team{},
		&Role{},
		&Position{},
		&ApproveRole{},
		&User{},
	)
	require.NoError(t, err)

	db := database.NewFromGorm(gormDB)
	controller := New(repositories.NewUser(db), repositories.NewPosition(db), db, config.Config{})
	return controller, db
}

func seedUser(t *testing.T, db database.DB, staffID, password string, enabled bool) *User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &User{
		StaffID:      staffID,
		Name:         "Alice",
		Password:     string(hash),
		ActiveStatus: ActiveStatusOffline,
		Enabled:      enabled,
	}
	require.NoError(t, db.SQL.Create(user).Error)
	return user
}

func TestLogin_Success(t *testing.T) {
	controller, db := newControllerTestEnv(t)
	seeded := seedUser(t, db, "ADMIN-001", "password", true)

	user, token, err := controller.Login(context.Background(), LoginRequest{
		Login:    "ADMIN-001",
		Password: "password",
	})
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, seeded.ID, user.ID)
	assert.NotEmpty(t, token)
	assert.Equal(t, ActiveStatusOnline, user.ActiveStatus)
}

func TestLogin_WrongPassword(t *testing.T) {
	controller, db := newControllerTestEnv(t)
	seedUser(t, db, "ADMIN-001", "password", true)

	_, _, err := controller.Login(context.Background(), LoginRequest{
		Login:    "ADMIN-001",
		Password: "wrong",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestLogin_DisabledUser(t *testing.T) {
	controller, db := newControllerTestEnv(t)
	seedUser(t, db, "ADMIN-001", "password", false)

	_, _, err := controller.Login(context.Background(), LoginRequest{
		Login:    "ADMIN-001",
		Password: "password",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disabled")
}

func TestLogin_UnknownLogin(t *testing.T) {
	controller, _ := newControllerTestEnv(t)

	_, _, err := controller.Login(context.Background(), LoginRequest{
		Login:    "missing",
		Password: "password",
	})
	require.Error(t, err)
}

func TestValidatePassword(t *testing.T) {
	controller, db := newControllerTestEnv(t)
	seedUser(t, db, "S001", "current-secret", true)
	ctx := context.Background()

	assert.NoError(t, controller.ValidatePassword(ctx, "S001", "current-secret"))
	assert.Error(t, controller.ValidatePassword(ctx, "S001", "wrong"))
	assert.Error(t, controller.ValidatePassword(ctx, "missing", "current-secret"))
}

func TestChangePassword(t *testing.T) {
	controller, db := newControllerTestEnv(t)
	seedUser(t, db, "S001", "old-secret", true)
	ctx := context.Background()

	err := controller.ChangePassword(ctx, ChangePasswordRequest{
		StaffID:         "S001",
		CurrentPassword: "old-secret",
		NewPassword:     "new-secret",
	})
	require.NoError(t, err)

	var user User
	require.NoError(t, db.SQL.First(&user, "staff_id = ?", "S001").Error)
	assert.Error(t,
		bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("old-secret")))
	assert.NoError(t,
		bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("new-secret")))
}

func TestChangePassword_WrongCurrentPassword(t *testing.T) {
	controller, db := newControllerTestEnv(t)
	seedUser(t, db, "S001", "old-secret", true)

	err := controller.ChangePassword(context.Background(), ChangePasswordRequest{
		StaffID:         "S001",
		CurrentPassword: "wrong",
		NewPassword:     "new-secret",
	})
	require.Error(t, err)

	// Password must be untouched after a failed verification.
	var user User
	require.NoError(t, db.SQL.First(&user, "staff_id = ?", "S001").Error)
	assert.NoError(t,
		bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("old-secret")))
}

func TestChangePassword_EmptyNewPassword(t *testing.T) {
	controller, db := newControllerTestEnv(t)
	seedUser(t, db, "S001", "old-secret", true)

	err := controller.ChangePassword(context.Background(), ChangePasswordRequest{
		StaffID:         "S001",
		CurrentPassword: "old-secret",
		NewPassword:     "",
	})
	require.Error(t, err)
}

func TestChangePosition(t *testing.T) {
	controller, db := newControllerTestEnv(t)
	seeded := seedUser(t, db, "S001", "password", true)
	ctx := context.Background()

	user, err := controller.ChangePosition(ctx, seeded.ID, "Senior Engineer")
	require.NoError(t, err)
	require.NotNil(t, user.PositionID)
	require.NotNil(t, user.Position)
	assert.Equal(t, "Senior Engineer", user.Position.Name)

	// A second change to the same name reuses the existing position.
	other := seedUser(t, db, "S002", "password", true)
	user2, err := controller.ChangePosition(ctx, other.ID, "Senior Engineer")
	require.NoError(t, err)
	assert.Equal(t, *user.PositionID, *user2.PositionID)

	var count int64
	require.NoError(t, db.SQL.Model(&Position{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestChangePosition_EmptyName(t *testing.T) {
	controller, db := newControllerTestEnv(t)
	seeded := seedUser(t, db, "S001", "password", true)

	_, err := controller.ChangePosition(context.Background(), seeded.ID, "")
	require.Error(t, err)
}

func TestChangePosition_UnknownUser(t *testing.T) {
	controller, _ := newControllerTestEnv(t)

	_, err := controller.ChangePosition(context.Background(), "no-such-id", "Engineer")
	require.Error(t, err)
}

func TestResolveSession_WithoutSessionCache(t *testing.T) {
	controller, _ := newControllerTestEnv(t)

	_, err := controller.ResolveSession(context.Background(), "some-token")
	require.Error(t, err)
}
