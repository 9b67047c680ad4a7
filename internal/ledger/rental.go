package ledger

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ssdinvest/plataforma/internal/models"
)

// RentalResult reports the outcome of a level rental purchase.
type RentalResult struct {
	Status  Status
	Message string
}

// RentLevel purchases a level rental for the user, debiting the level's
// minimum deposit from the available balance. A user can hold only one
// active rental at a time. The expiration timestamp is computed once at
// creation (start plus the level's cycle) and is never swept by this
// engine.
func (l *Ledger) RentLevel(ctx context.Context, userID, levelID uint64) (*RentalResult, error) {
	var result *RentalResult

	errTx := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var level models.Level
		if errFind := tx.First(&level, levelID).Error; errFind != nil {
			if errors.Is(errFind, gorm.ErrRecordNotFound) {
				return NotFound("level not found")
			}
			return Internal("query level failed", errFind)
		}

		user, errLock := lockUser(tx, userID)
		if errLock != nil {
			return errLock
		}

		active, errActive := hasActiveRental(tx, userID)
		if errActive != nil {
			return errActive
		}
		if active {
			return Conflict("an active level rental already exists")
		}

		if user.BalanceAvailable.LessThan(level.MinimumDeposit) {
			return Conflict("insufficient balance to rent this level")
		}

		now := l.now()
		rental := models.LevelRental{
			UserID:    userID,
			LevelID:   level.ID,
			StartedAt: now,
			ExpiresAt: now.AddDate(0, 0, level.CycleDays),
			IsActive:  true,
		}
		if errCreate := tx.Create(&rental).Error; errCreate != nil {
			return Internal("create rental failed", errCreate)
		}

		if errDebit := tx.Model(user).Update(
			"balance_available", user.BalanceAvailable.Sub(level.MinimumDeposit),
		).Error; errDebit != nil {
			return Internal("debit balance failed", errDebit)
		}

		result = &RentalResult{
			Status:  StatusSuccess,
			Message: fmt.Sprintf("level %s rented successfully", level.Name),
		}
		return nil
	})
	if errTx != nil {
		return nil, errTx
	}
	return result, nil
}
