package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"server/internal/excel"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/repositories"

	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// DefaultImportPassword is assigned (hashed) to every imported user.
	DefaultImportPassword = "123@dirace"

	profileMale   = "default-male.png"
	profileFemale = "default-female.jfif"

	importDateLayout = "2006-01-02"
)

// ImportService turns an uploaded workbook into persisted users with
// resolved org references. One call stages the sheet in memory, discovers
// columns by header keyword and materializes one user per staged row,
// creating divisions, departments, teams, roles and positions on first
// reference by name.
type ImportService struct {
	divisionRepo    repositories.DivisionRepository
	departmentRepo  repositories.DepartmentRepository
	teamRepo        repositories.TeamRepository
	roleRepo        repositories.RoleRepository
	positionRepo    repositories.PositionRepository
	approveRoleRepo repositories.ApproveRoleRepository
	userRepo        repositories.UserRepository
	txService       *TransactionService
	log             logger.Logger
}

func NewImportService(
	divisionRepo repositories.DivisionRepository,
	departmentRepo repositories.DepartmentRepository,
	teamRepo repositories.TeamRepository,
	roleRepo repositories.RoleRepository,
	positionRepo repositories.PositionRepository,
	approveRoleRepo repositories.ApproveRoleRepository,
	userRepo repositories.UserRepository,
	txService *TransactionService,
) *ImportService {
	return &ImportService{
		divisionRepo:    divisionRepo,
		departmentRepo:  departmentRepo,
		teamRepo:        teamRepo,
		roleRepo:        roleRepo,
		positionRepo:    positionRepo,
		approveRoleRepo: approveRoleRepo,
		userRepo:        userRepo,
		txService:       txService,
		log:             logger.New("ImportService"),
	}
}

// columnSet holds the resolved column indices for every header keyword the
// import file format defines. Built once per import and passed by value, not
// kept as shared state.
type columnSet struct {
	division      []int
	department    []int
	team          []int
	staffID       []int
	name          []int
	role          []int
	position      []int
	gender        []int
	maritalStatus []int
	parent        []int
	joinDate      []int
	permanentDate []int
	email         []int
	phone         []int
}

func resolveColumnSet(indices map[string]int) columnSet {
	return columnSet{
		division:      excel.ResolveColumns(indices, "Div"),
		department:    excel.ResolveColumns(indices, "Dept"),
		team:          excel.ResolveColumns(indices, "Team"),
		staffID:       excel.ResolveColumns(indices, "Staff"),
		name:          excel.ResolveColumns(indices, "Name"),
		role:          excel.ResolveColumns(indices, "Role"),
		position:      excel.ResolveColumns(indices, "Position"),
		gender:        excel.ResolveColumns(indices, "Gender"),
		maritalStatus: excel.ResolveColumns(indices, "Marital"),
		parent:        excel.ResolveColumns(indices, "Parent"),
		joinDate:      excel.ResolveColumns(indices, "Join"),
		permanentDate: excel.ResolveColumns(indices, "Permanent"),
		email:         excel.ResolveColumns(indices, "Email"),
		phone:         excel.ResolveColumns(indices, "Phone"),
	}
}

// ImportUsers runs the whole pipeline for one uploaded workbook. Any
// database or parse failure aborts the remaining rows; rows already
// persisted stay persisted.
func (s *ImportService) ImportUsers(ctx context.Context, reader io.Reader, sheetName string) error {
	log := s.log.Function("ImportUsers")

	f, err := excelize.OpenReader(reader)
	if err != nil {
		return log.Err("failed to open workbook", err)
	}
	defer f.Close()

	staging, err := excel.LoadStaging(f, sheetName)
	if err != nil {
		return log.Err("failed to stage sheet", err, "sheet", sheetName)
	}

	columns := resolveColumnSet(staging.ColumnIndices())

	rows := staging.Rows()
	log.Info("staged sheet", "sheet", sheetName, "rows", len(rows))

	// Each row commits on its own; a failure aborts the remaining rows but
	// never rolls back rows already persisted.
	for rowNum, row := range rows {
		err := s.txService.Execute(ctx, func(txCtx context.Context) error {
			return s.importRow(txCtx, row, columns)
		})
		if err != nil {
			return log.Err("import aborted", err, "row", rowNum)
		}
	}

	log.Info("import complete", "sheet", sheetName, "users", len(rows))
	return nil
}

func (s *ImportService) importRow(ctx context.Context, row []string, columns columnSet) error {
	user := &User{}

	if err := s.applyOrgUnits(ctx, user, row, columns); err != nil {
		return err
	}

	for _, index := range columns.staffID {
		user.StaffID = excel.CellAt(row, index)
	}
	for _, index := range columns.name {
		user.Name = excel.CellAt(row, index)
	}
	for _, index := range columns.gender {
		user.Gender = excel.CellAt(row, index)
	}
	for _, index := range columns.email {
		user.Email = excel.CellAt(row, index)
	}
	for _, index := range columns.phone {
		user.PhoneNumber = excel.CellAt(row, index)
	}

	if err := s.applyLookups(ctx, user, row, columns); err != nil {
		return err
	}

	switch user.Gender {
	case "M":
		profile := profileMale
		user.Profile = &profile
	case "F":
		profile := profileFemale
		user.Profile = &profile
	}

	for _, index := range columns.maritalStatus {
		user.MaritalStatus = isYes(excel.CellAt(row, index))
	}
	for _, index := range columns.parent {
		user.Parent = isYes(excel.CellAt(row, index))
	}

	for _, index := range columns.joinDate {
		joinDate, err := time.Parse(importDateLayout, excel.CellAt(row, index))
		if err != nil {
			return s.log.Err("failed to parse join date", err, "value", excel.CellAt(row, index))
		}
		user.JoinDate = &joinDate
	}
	for _, index := range columns.permanentDate {
		permanentDate, err := time.Parse(importDateLayout, excel.CellAt(row, index))
		if err != nil {
			return s.log.Err("failed to parse permanent date", err, "value", excel.CellAt(row, index))
		}
		user.PermanentDate = &permanentDate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultImportPassword), bcrypt.DefaultCost)
	if err != nil {
		return s.log.Err("failed to hash default password", err)
	}
	user.Password = string(hash)
	user.ActiveStatus = ActiveStatusOffline
	user.Enabled = true

	// A missing APPLICANT role is not an error; the user is saved without one.
	approveRole, err := s.approveRoleRepo.FindByName(ctx, ApproveRoleApplicant)
	if err == nil {
		user.ApproveRoles = []ApproveRole{*approveRole}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return s.userRepo.CreateTolerant(ctx, user)
}

// applyOrgUnits resolves division, department and team for one row. The leaf
// entity is created on a lookup miss; its parent must already be resolvable
// from the same row's data, otherwise the import fails at this row.
func (s *ImportService) applyOrgUnits(ctx context.Context, user *User, row []string, columns columnSet) error {
	for _, index := range columns.division {
		name := excel.CellAt(row, index)
		if name == "" {
			continue
		}

		division, err := s.divisionRepo.FindOrCreate(ctx, name)
		if err != nil {
			return err
		}
		user.DivisionID = &division.ID
	}

	for _, index := range columns.department {
		name := excel.CellAt(row, index)
		if name == "" {
			continue
		}

		department, err := s.departmentRepo.FindByName(ctx, name)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			division, resolveErr := s.resolveRowDivision(ctx, row, columns)
			if resolveErr != nil {
				return resolveErr
			}

			department = &Department{Name: name, DivisionID: division.ID}
			if createErr := s.departmentRepo.Create(ctx, department); createErr != nil {
				return createErr
			}
		} else if err != nil {
			return err
		}
		user.DepartmentID = &department.ID
	}

	for _, index := range columns.team {
		name := excel.CellAt(row, index)
		if name == "" {
			continue
		}

		team, err := s.teamRepo.FindByName(ctx, name)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			department, resolveErr := s.resolveRowDepartment(ctx, row, columns)
			if resolveErr != nil {
				return resolveErr
			}

			team = &Team{Name: name, DepartmentID: department.ID}
			if createErr := s.teamRepo.Create(ctx, team); createErr != nil {
				return createErr
			}
		} else if err != nil {
			return err
		}
		user.TeamID = &team.ID
	}

	return nil
}

// resolveRowDivision finds the division named by the current row. The parent
// is never auto-created here; a miss is an entity-not-found failure.
func (s *ImportService) resolveRowDivision(ctx context.Context, row []string, columns columnSet) (*Division, error) {
	log := s.log.Function("resolveRowDivision")

	var division *Division
	for _, index := range columns.division {
		name := excel.CellAt(row, index)
		found, err := s.divisionRepo.FindByName(ctx, name)
		if err != nil {
			return nil, log.Err("division not found", err, "name", name)
		}
		division = found
	}

	if division == nil {
		return nil, log.ErrMsg("division not found")
	}
	return division, nil
}

func (s *ImportService) resolveRowDepartment(ctx context.Context, row []string, columns columnSet) (*Department, error) {
	log := s.log.Function("resolveRowDepartment")

	var department *Department
	for _, index := range columns.department {
		name := excel.CellAt(row, index)
		found, err := s.departmentRepo.FindByName(ctx, name)
		if err != nil {
			return nil, log.Err("department not found", err, "name", name)
		}
		department = found
	}

	if department == nil {
		return nil, log.ErrMsg("department not found")
	}
	return department, nil
}

// applyLookups resolves the flat role and position lookups. A miss creates
// the entity and the freshly created record is the one assigned.
func (s *ImportService) applyLookups(ctx context.Context, user *User, row []string, columns columnSet) error {
	for _, index := range columns.role {
		name := excel.CellAt(row, index)
		if name == "" {
			continue
		}

		role, err := s.roleRepo.FindOrCreate(ctx, name)
		if err != nil {
			return err
		}
		user.RoleID = &role.ID
	}

	for _, index := range columns.position {
		name := excel.CellAt(row, index)
		if name == "" {
			continue
		}

		position, err := s.positionRepo.FindOrCreate(ctx, name)
		if err != nil {
			return err
		}
		user.PositionID = &position.ID
	}

	return nil
}

func isYes(value string) bool {
	return strings.EqualFold(value, "Yes")
}
