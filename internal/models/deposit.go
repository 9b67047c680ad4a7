package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Deposit and withdrawal status values.
const (
	// StatusPending marks a request awaiting admin review.
	StatusPending = "pending"
	// StatusApproved marks an approved request.
	StatusApproved = "approved"
	// StatusRejected marks a rejected request.
	StatusRejected = "rejected"
)

// Deposit records a user's funding request backed by a proof of payment.
type Deposit struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	UserID uint64 `gorm:"not null;index"`    // Depositing user ID.
	User   *User  `gorm:"foreignKey:UserID"` // Depositing user record.

	Amount decimal.Decimal `gorm:"type:decimal(10,2);not null"` // Deposited amount.

	ProofRef   string         `gorm:"type:text;not null"`               // Opaque proof-of-payment reference.
	ProofMeta  datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'"` // Proof details (bank, depositor name).
	Status     string         `gorm:"type:varchar(20);not null;default:'pending';index"` // Review status.
	ApprovedAt *time.Time     // Approval time, if approved.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Submission timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// Withdrawal records a payout request. Amount is the net value disbursed
// after the platform fee was retained.
type Withdrawal struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	UserID uint64 `gorm:"not null;index"`    // Withdrawing user ID.
	User   *User  `gorm:"foreignKey:UserID"` // Withdrawing user record.

	Amount decimal.Decimal `gorm:"type:decimal(10,2);not null"` // Net amount to disburse.
	Fee    decimal.Decimal `gorm:"type:decimal(10,2);not null"` // Fee retained by the platform.
	IBAN   string          `gorm:"type:varchar(30)"`            // Destination IBAN at request time.

	Status string `gorm:"type:varchar(20);not null;default:'pending';index"` // Review status.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Request timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
