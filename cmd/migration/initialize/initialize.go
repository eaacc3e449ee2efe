package initialize

import (
	"server/config"
	"server/internal/logger"
	. "server/internal/models"

	"gorm.io/gorm"
)

// InitializeTables creates the workflow approve roles every environment
// needs. The import pipeline depends on APPLICANT existing; the others cover
// the team/department/division approval scopes.
func InitializeTables(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Initializing essential production data")

	approveRoleNames := []string{
		ApproveRoleApplicant,
		"TEAM_LEADER",
		"DEPARTMENT_HEAD",
		"DIVISION_HEAD",
		"HR",
	}

	for _, name := range approveRoleNames {
		var existing ApproveRole
		if err := db.First(&existing, "name = ?", name).Error; err == nil {
			continue
		}

		log.Info("Creating approve role", "name", name)
		if err := db.Create(&ApproveRole{Name: name}).Error; err != nil {
			return log.Err("failed to create approve role", err, "name", name)
		}
	}

	log.Info("Table initialization complete")
	return nil
}
