package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a platform account and its balance fields.
type User struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	PhoneNumber    string `gorm:"type:varchar(15);not null;uniqueIndex"`  // Unique login identifier.
	Username       string `gorm:"type:varchar(150)"`                      // Optional display name.
	Password       string `gorm:"type:text;not null"`                     // Hashed password.
	InvitationCode string `gorm:"type:varchar(10);not null;uniqueIndex"`  // Opaque referral token.

	InviterID *uint64 `gorm:"index"`                // Inviting user ID, if invited.
	Inviter   *User   `gorm:"foreignKey:InviterID"` // Inviting user record.

	BalanceGeneral   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"` // General balance.
	BalanceAvailable decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"` // Balance available for withdrawal.
	BalanceSubsidy   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"` // Accumulated referral/prize subsidies.
	TotalWithdrawn   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"` // Net amount withdrawn to date.

	CanOpenPrize    bool       `gorm:"not null;default:false"` // Prize opening permission flag.
	PrizesRemaining int        `gorm:"not null;default:0"`     // Prize openings left.
	LastPrizeReset  *time.Time // Last time the prize counter was granted.

	Disabled bool `gorm:"not null;default:false"` // Blocks login when true.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// UserBankDetails stores a user's payout destination.
type UserBankDetails struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	UserID uint64 `gorm:"not null;uniqueIndex"` // Owning user ID.
	User   *User  `gorm:"foreignKey:UserID"`    // Owning user record.

	BankName   string `gorm:"type:varchar(100)"` // Destination bank name.
	HolderName string `gorm:"type:varchar(200)"` // Account holder name.
	IBAN       string `gorm:"type:varchar(30)"`  // Destination IBAN.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
