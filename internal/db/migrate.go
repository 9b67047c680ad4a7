package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/ssdinvest/plataforma/internal/models"
)

// Migrate creates or updates the schema for every persisted model.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: nil connection")
	}
	return conn.AutoMigrate(
		&models.User{},
		&models.UserBankDetails{},
		&models.PlatformBank{},
		&models.Deposit{},
		&models.Level{},
		&models.LevelRental{},
		&models.TaskRecord{},
		&models.Withdrawal{},
		&models.Prize{},
		&models.Setting{},
		&models.Admin{},
		&models.AuditLog{},
	)
}
