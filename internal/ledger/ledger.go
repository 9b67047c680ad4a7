// Package ledger implements the balance and eligibility engine: every
// operation that moves money between account balance fields runs here,
// inside a single database transaction with row locks on the touched
// accounts.
package ledger

import (
	"errors"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ssdinvest/plataforma/internal/db"
	"github.com/ssdinvest/plataforma/internal/models"
)

// ReferralSubsidyRate is the share of an approved deposit paid to the
// depositor's inviter. Policy constant; change here, not at call sites.
var ReferralSubsidyRate = decimal.RequireFromString("0.15")

// Status tags the outcome of an engine operation.
type Status string

// Operation outcome statuses. Info marks benign no-ops (already processed,
// nothing to claim) so callers can distinguish them from true errors.
const (
	StatusSuccess Status = "success"
	StatusInfo    Status = "info"
)

// Ledger executes the money-moving operations. The clock and randomness
// sources are injectable for tests.
type Ledger struct {
	db        *gorm.DB
	now       func() time.Time
	randFloat func() float64
	randIntn  func(int) int
}

// New constructs a Ledger with the wall clock and math/rand defaults.
func New(conn *gorm.DB) *Ledger {
	return &Ledger{
		db:        conn,
		now:       func() time.Time { return time.Now().UTC() },
		randFloat: rand.Float64,
		randIntn:  rand.Intn,
	}
}

// lockUser loads a user row under a FOR UPDATE lock.
func lockUser(tx *gorm.DB, userID uint64) (*models.User, error) {
	var user models.User
	if errFind := db.LockForUpdate(tx).First(&user, userID).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, NotFound("user not found")
		}
		return nil, Internal("query user failed", errFind)
	}
	return &user, nil
}

// lockUsers locks several user rows in ascending id order. Fixed ordering
// prevents deadlock between concurrent cross-referral approvals.
func lockUsers(tx *gorm.DB, ids ...uint64) (map[uint64]*models.User, error) {
	sorted := append([]uint64(nil), ids...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j] < sorted[j-1]; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	users := make(map[uint64]*models.User, len(sorted))
	for _, id := range sorted {
		if _, done := users[id]; done {
			continue
		}
		user, errLock := lockUser(tx, id)
		if errLock != nil {
			return nil, errLock
		}
		users[id] = user
	}
	return users, nil
}

// hasActiveRental reports whether the user holds at least one active level
// rental.
func hasActiveRental(tx *gorm.DB, userID uint64) (bool, error) {
	var count int64
	if errCount := tx.Model(&models.LevelRental{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&count).Error; errCount != nil {
		return false, Internal("query rentals failed", errCount)
	}
	return count > 0, nil
}
