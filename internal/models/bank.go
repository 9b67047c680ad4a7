package models

import "time"

// PlatformBank is a platform-owned receiving account shown to depositors.
type PlatformBank struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	BankName   string `gorm:"type:varchar(100);not null;uniqueIndex"` // Bank name.
	HolderName string `gorm:"type:varchar(200);not null"`             // Account holder name.
	IBAN       string `gorm:"type:varchar(30);not null;uniqueIndex"`  // Receiving IBAN.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
