package seed

import (
	"server/config"
	"server/internal/logger"
	. "server/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	password, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return log.Err("failed to hash seed password", err)
	}

	users := []User{
		{
			StaffID:      "ADMIN-001",
			Name:         "System Admin",
			Gender:       "M",
			Email:        "admin@example.com",
			Password:     string(password),
			ActiveStatus: ActiveStatusOffline,
			Enabled:      true,
		}, {
			StaffID:      "HR-001",
			Name:         "HR Officer",
			Gender:       "F",
			Email:        "hr@example.com",
			Password:     string(password),
			ActiveStatus: ActiveStatusOffline,
			Enabled:      true,
		},
	}

	for _, user := range users {
		var existingUser User
		if err := db.First(&existingUser, "staff_id = ?", user.StaffID).Error; err == nil {
			log.Info("User already exists", "staffID", user.StaffID)
			continue
		}
		log.Info("Seeding user", "staffID", user.StaffID)
		if err := db.Create(&user).Error; err != nil {
			log.Er("failed to create user", err, "staffID", user.StaffID)
		}
	}

	return nil
}
