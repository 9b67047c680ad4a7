package models

import "time"

// AuditLog records one admin action against a platform entity.
type AuditLog struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	AdminID uint64 `gorm:"not null;index"` // Acting admin ID.

	Action   string `gorm:"type:varchar(100);not null"` // Action key, e.g. deposit.approve.
	Entity   string `gorm:"type:varchar(50);not null"`  // Entity kind acted on.
	EntityID uint64 `gorm:"not null;default:0"`         // Entity primary key, 0 for bulk actions.

	CreatedAt time.Time `gorm:"not null;index;autoCreateTime"` // Action timestamp.
}
