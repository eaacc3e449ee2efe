package main

import (
	"os"

	"server/cmd/migration/initialize"
	"server/cmd/migration/seed"
	"server/config"
	"server/internal/logger"
	"server/migrations"

	migrate "github.com/rubenv/sql-migrate"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	log := logger.New("migration")

	cfg, err := config.InitConfig()
	if err != nil {
		log.Er("failed to initialize config", err)
		os.Exit(1)
	}

	db, err := gorm.Open(sqlite.Open(cfg.DatabaseDbPath), &gorm.Config{})
	if err != nil {
		log.Er("failed to open database", err, "dbPath", cfg.DatabaseDbPath)
		os.Exit(1)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Er("failed to get sql database", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	source := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrations.FS,
		Root:       ".",
	}

	applied, err := migrate.Exec(sqlDB, "sqlite3", source, migrate.Up)
	if err != nil {
		log.Er("failed to apply migrations", err)
		os.Exit(1)
	}
	log.Info("Applied migrations", "count", applied)

	if err := initialize.InitializeTables(db, cfg, log); err != nil {
		log.Er("failed to initialize tables", err)
		os.Exit(1)
	}

	if cfg.Environment == "development" {
		if err := seed.Seed(db, cfg, log); err != nil {
			log.Er("failed to seed database", err)
			os.Exit(1)
		}
	}
}
