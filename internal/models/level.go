package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Level is a rentable income level from the immutable catalog.
type Level struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Name           string          `gorm:"type:varchar(100);not null;uniqueIndex"` // Display name.
	MinimumDeposit decimal.Decimal `gorm:"type:decimal(10,2);not null"`            // Price to rent the level.
	DailyYield     decimal.Decimal `gorm:"type:decimal(10,2);not null"`            // Yield paid per task claim.
	CycleDays      int             `gorm:"not null"`                               // Rental duration in days.
	ImageURL       string          `gorm:"type:text"`                              // Optional catalog image.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// MonthlyYield estimates the yield over a 30 day month.
func (l Level) MonthlyYield() decimal.Decimal {
	return l.DailyYield.Mul(decimal.NewFromInt(30))
}

// LevelRental is a user's time-boxed purchase of a level. Expiration is
// computed once at creation and never updated afterwards.
type LevelRental struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	UserID uint64 `gorm:"not null;index"`    // Renting user ID.
	User   *User  `gorm:"foreignKey:UserID"` // Renting user record.

	LevelID uint64 `gorm:"not null;index"`     // Rented level ID.
	Level   *Level `gorm:"foreignKey:LevelID"` // Rented level record.

	StartedAt     time.Time  `gorm:"not null"`              // Rental start.
	ExpiresAt     time.Time  `gorm:"not null"`              // Start plus the level cycle.
	IsActive      bool       `gorm:"not null;default:true"` // Active flag; never swept by time.
	LastTaskClaim *time.Time // Last daily task claim for this rental.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// TaskRecord logs a single daily yield credit.
type TaskRecord struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	UserID uint64 `gorm:"not null;index"`    // Claiming user ID.
	User   *User  `gorm:"foreignKey:UserID"` // Claiming user record.

	RentalID uint64          `gorm:"not null;index"`              // Rental that produced the yield.
	Yield    decimal.Decimal `gorm:"type:decimal(10,2);not null"` // Credited yield amount.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Claim timestamp.
}
