package services

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"server/internal/database"
	. "server/internal/models"
	"server/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type importTestEnv struct {
	db      database.DB
	service *ImportService
}

func newImportTestEnv(t *testing.T) *importTestEnv {
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
	txService := NewTransactionService(db)

	service := NewImportService(
		repositories.NewDivision(db),
		repositories.NewDepartment(db),
		repositories.NewTeam(db),
		repositories.NewRole(db),
		repositories.NewPosition(db),
		repositories.NewApproveRole(db),
		repositories.NewUser(db),
		txService,
	)

	return &importTestEnv{db: db, service: service}
}

func (env *importTestEnv) seedApplicantRole(t *testing.T) {
	t.Helper()
	require.NoError(t, env.db.SQL.Create(&ApproveRole{Name: ApproveRoleApplicant}).Error)
}

// buildWorkbook writes headers into the third sheet row and data rows below
// it, matching the import template layout.
func buildWorkbook(t *testing.T, headers []string, rows [][]any) (*bytes.Reader, string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	require.NoError(t, f.SetCellValue(sheet, "A1", "Employee Import"))
	for i, header := range headers {
		axis, err := excelize.CoordinatesToCellName(i+1, 3)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, axis, header))
	}

	for r, row := range rows {
		for c, value := range row {
			axis, err := excelize.CoordinatesToCellName(c+1, 4+r)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, axis, value))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes()), sheet
}

func TestImportUsers_EndToEnd(t *testing.T) {
	env := newImportTestEnv(t)
	env.seedApplicantRole(t)

	reader, sheet := buildWorkbook(t,
		[]string{"Division", "Department", "Team", "Staff ID", "Name", "Role", "Gender"},
		[][]any{
			{"HQ", "Finance", "Payroll", "S001", "Alice", "Applicant", "F"},
			{"HQ", "Finance", "Payroll", "S002", "Bob", "Applicant", "M"},
		},
	)

	err := env.service.ImportUsers(context.Background(), reader, sheet)
	require.NoError(t, err)

	var divisionCount, departmentCount, teamCount, roleCount int64
	require.NoError(t, env.db.SQL.Model(&Division{}).Count(&divisionCount).Error)
	require.NoError(t, env.db.SQL.Model(&Department{}).Count(&departmentCount).Error)
	require.NoError(t, env.db.SQL.Model(&Team{}).Count(&teamCount).Error)
	require.NoError(t, env.db.SQL.Model(&Role{}).Count(&roleCount).Error)
	assert.Equal(t, int64(1), divisionCount)
	assert.Equal(t, int64(1), departmentCount)
	assert.Equal(t, int64(1), teamCount)
	assert.Equal(t, int64(1), roleCount)

	var users []User
	require.NoError(t, env.db.SQL.Preload("ApproveRoles").Order("staff_id").Find(&users).Error)
	require.Len(t, users, 2)

	alice, bob := users[0], users[1]
	assert.Equal(t, "S001", alice.StaffID)
	assert.Equal(t, "Alice", alice.Name)
	require.NotNil(t, alice.Profile)
	assert.Equal(t, "default-female.jfif", *alice.Profile)

	assert.Equal(t, "S002", bob.StaffID)
	require.NotNil(t, bob.Profile)
	assert.Equal(t, "default-male.png", *bob.Profile)

	// Both rows must reference the same org identities.
	require.NotNil(t, alice.DivisionID)
	require.NotNil(t, bob.DivisionID)
	assert.Equal(t, *alice.DivisionID, *bob.DivisionID)
	assert.Equal(t, *alice.DepartmentID, *bob.DepartmentID)
	assert.Equal(t, *alice.TeamID, *bob.TeamID)

	for _, user := range users {
		assert.Equal(t, ActiveStatusOffline, user.ActiveStatus)
		assert.True(t, user.Enabled)
		require.Len(t, user.ApproveRoles, 1)
		assert.Equal(t, ApproveRoleApplicant, user.ApproveRoles[0].Name)
		assert.NoError(t,
			bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(DefaultImportPassword)))
	}

	// The department must hang off the division, the team off the department.
	var department Department
	require.NoError(t, env.db.SQL.First(&department, "name = ?", "Finance").Error)
	assert.Equal(t, *alice.DivisionID, department.DivisionID)

	var team Team
	require.NoError(t, env.db.SQL.First(&team, "name = ?", "Payroll").Error)
	assert.Equal(t, department.ID, team.DepartmentID)
}

func TestImportUsers_DepartmentWithoutDivisionFails(t *testing.T) {
	env := newImportTestEnv(t)

	reader, sheet := buildWorkbook(t,
		[]string{"Department", "Staff ID", "Name"},
		[][]any{
			{"Finance", "S001", "Alice"},
		},
	)

	err := env.service.ImportUsers(context.Background(), reader, sheet)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "division not found")

	var departmentCount, userCount int64
	require.NoError(t, env.db.SQL.Model(&Department{}).Count(&departmentCount).Error)
	require.NoError(t, env.db.SQL.Model(&User{}).Count(&userCount).Error)
	assert.Equal(t, int64(0), departmentCount)
	assert.Equal(t, int64(0), userCount)
}

func TestImportUsers_InvalidJoinDateFails(t *testing.T) {
	env := newImportTestEnv(t)

	reader, sheet := buildWorkbook(t,
		[]string{"Staff ID", "Name", "Join Date"},
		[][]any{
			{"S001", "Alice", "15/01/2024"},
		},
	)

	err := env.service.ImportUsers(context.Background(), reader, sheet)
	require.Error(t, err)

	var userCount int64
	require.NoError(t, env.db.SQL.Model(&User{}).Count(&userCount).Error)
	assert.Equal(t, int64(0), userCount)
}

func TestImportUsers_ValidJoinDate(t *testing.T) {
	env := newImportTestEnv(t)

	reader, sheet := buildWorkbook(t,
		[]string{"Staff ID", "Name", "Join Date"},
		[][]any{
			{"S001", "Alice", "2024-01-15"},
		},
	)

	err := env.service.ImportUsers(context.Background(), reader, sheet)
	require.NoError(t, err)

	var user User
	require.NoError(t, env.db.SQL.First(&user, "staff_id = ?", "S001").Error)
	require.NotNil(t, user.JoinDate)
	assert.Equal(t, "2024-01-15", user.JoinDate.Format("2006-01-02"))
	assert.Nil(t, user.PermanentDate)
}

func TestImportUsers_MissingApplicantRoleIsNotFatal(t *testing.T) {
	env := newImportTestEnv(t)

	reader, sheet := buildWorkbook(t,
		[]string{"Staff ID", "Name"},
		[][]any{
			{"S001", "Alice"},
		},
	)

	err := env.service.ImportUsers(context.Background(), reader, sheet)
	require.NoError(t, err)

	var user User
	require.NoError(t, env.db.SQL.Preload("ApproveRoles").First(&user, "staff_id = ?", "S001").Error)
	assert.Empty(t, user.ApproveRoles)
}

func TestImportUsers_MaritalStatusDerivation(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"Yes", true},
		{"yes", true},
		{"YES", true},
		{"No", false},
		{"", false},
		{"Married", false},
	}

	for i, tt := range tests {
		t.Run(fmt.Sprintf("value_%q", tt.value), func(t *testing.T) {
			env := newImportTestEnv(t)

			staffID := fmt.Sprintf("S%03d", i+1)
			reader, sheet := buildWorkbook(t,
				[]string{"Staff ID", "Name", "Marital Status"},
				[][]any{
					{staffID, "Alice", tt.value},
				},
			)

			err := env.service.ImportUsers(context.Background(), reader, sheet)
			require.NoError(t, err)

			var user User
			require.NoError(t, env.db.SQL.First(&user, "staff_id = ?", staffID).Error)
			assert.Equal(t, tt.expected, user.MaritalStatus)
		})
	}
}

func TestImportUsers_UnknownGenderHasNoProfile(t *testing.T) {
	env := newImportTestEnv(t)

	reader, sheet := buildWorkbook(t,
		[]string{"Staff ID", "Name", "Gender"},
		[][]any{
			{"S001", "Alex", "Other"},
		},
	)

	err := env.service.ImportUsers(context.Background(), reader, sheet)
	require.NoError(t, err)

	var user User
	require.NoError(t, env.db.SQL.First(&user, "staff_id = ?", "S001").Error)
	assert.Nil(t, user.Profile)
}

func TestImportUsers_SheetMissing(t *testing.T) {
	env := newImportTestEnv(t)

	reader, _ := buildWorkbook(t,
		[]string{"Staff ID", "Name"},
		[][]any{
			{"S001", "Alice"},
		},
	)

	err := env.service.ImportUsers(context.Background(), reader, "Nope")
	require.Error(t, err)
}

func TestImportUsers_LastMatchingColumnWins(t *testing.T) {
	env := newImportTestEnv(t)

	// Two headers contain "Team"; the later column's value must win.
	reader, sheet := buildWorkbook(t,
		[]string{"Division", "Department", "Team", "Sub Team", "Staff ID", "Name"},
		[][]any{
			{"HQ", "Finance", "Payroll", "Payroll East", "S001", "Alice"},
		},
	)

	err := env.service.ImportUsers(context.Background(), reader, sheet)
	require.NoError(t, err)

	var user User
	require.NoError(t, env.db.SQL.First(&user, "staff_id = ?", "S001").Error)
	require.NotNil(t, user.TeamID)

	var team Team
	require.NoError(t, env.db.SQL.First(&team, "id = ?", *user.TeamID).Error)
	assert.Equal(t, "Payroll East", team.Name)

	// Both teams were still created under the same department.
	var teamCount int64
	require.NoError(t, env.db.SQL.Model(&Team{}).Count(&teamCount).Error)
	assert.Equal(t, int64(2), teamCount)
}
