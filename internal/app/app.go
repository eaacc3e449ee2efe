package app

import (
	"server/config"
	"server/internal/database"
	"server/internal/handlers/middleware"
	"server/internal/logger"
	"server/internal/repositories"
	"server/internal/services"

	importController "server/internal/controllers/imports"
	orgController "server/internal/controllers/org"
	userController "server/internal/controllers/users"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Config     config.Config

	// Services
	TransactionService       *services.TransactionService
	ImportService            *services.ImportService
	CacheInvalidationService *services.CacheInvalidationService

	// Repositories
	UserRepo        repositories.UserRepository
	DivisionRepo    repositories.DivisionRepository
	DepartmentRepo  repositories.DepartmentRepository
	TeamRepo        repositories.TeamRepository
	RoleRepo        repositories.RoleRepository
	PositionRepo    repositories.PositionRepository
	ApproveRoleRepo repositories.ApproveRoleRepository

	// Controllers
	UserController   *userController.UserController
	ImportController *importController.ImportController
	OrgController    *orgController.OrgController
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	// Initialize services
	transactionService := services.NewTransactionService(db)
	cacheInvalidationService := services.NewCacheInvalidationService(db)

	// Initialize repositories
	userRepo := repositories.NewUser(db)
	divisionRepo := repositories.NewDivision(db)
	departmentRepo := repositories.NewDepartment(db)
	teamRepo := repositories.NewTeam(db)
	roleRepo := repositories.NewRole(db)
	positionRepo := repositories.NewPosition(db)
	approveRoleRepo := repositories.NewApproveRole(db)

	importService := services.NewImportService(
		divisionRepo,
		departmentRepo,
		teamRepo,
		roleRepo,
		positionRepo,
		approveRoleRepo,
		userRepo,
		transactionService,
	)

	// Initialize controllers with repositories and services
	userController := userController.New(userRepo, positionRepo, db, config)
	importController := importController.New(importService, cacheInvalidationService)
	orgController := orgController.New(divisionRepo)

	middleware := middleware.New(db, config, userController)

	app := &App{
		Database:                 db,
		Config:                   config,
		Middleware:               middleware,
		TransactionService:       transactionService,
		ImportService:            importService,
		CacheInvalidationService: cacheInvalidationService,
		UserRepo:                 userRepo,
		DivisionRepo:             divisionRepo,
		DepartmentRepo:           departmentRepo,
		TeamRepo:                 teamRepo,
		RoleRepo:                 roleRepo,
		PositionRepo:             positionRepo,
		ApproveRoleRepo:          approveRoleRepo,
		UserController:           userController,
		ImportController:         importController,
		OrgController:            orgController,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.TransactionService,
		a.ImportService,
		a.CacheInvalidationService,
		a.UserRepo,
		a.DivisionRepo,
		a.DepartmentRepo,
		a.TeamRepo,
		a.RoleRepo,
		a.PositionRepo,
		a.ApproveRoleRepo,
		a.UserController,
		a.ImportController,
		a.OrgController,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() error {
	return a.Database.Close()
}
