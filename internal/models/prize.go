package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Prize is a subsidy prize catalog entry. Chance is a selection weight
// between 0 and 100 with two fractional digits; entries are drawn ordered
// by descending chance.
type Prize struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Value       decimal.Decimal `gorm:"type:decimal(10,2);not null"` // Payout amount.
	Chance      decimal.Decimal `gorm:"type:decimal(5,2);not null"`  // Selection weight (0-100).
	Description string          `gorm:"type:varchar(255)"`           // Optional description.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
