package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ssdinvest/plataforma/internal/models"
)

// taskCooldown is the minimum interval between claims per rental.
const taskCooldown = 24 * time.Hour

// TaskResult reports the outcome of a daily task claim.
type TaskResult struct {
	Status        Status
	Message       string
	TotalCredited decimal.Decimal
}

// ClaimDailyTasks credits the daily yield of every active rental whose
// cooldown has elapsed. Rentals claimed within the last 24 hours are skipped
// silently; when nothing is claimable the call is a benign no-op
// (StatusInfo). All per-rental updates and the balance credit commit in one
// transaction.
func (l *Ledger) ClaimDailyTasks(ctx context.Context, userID uint64) (*TaskResult, error) {
	var result *TaskResult

	errTx := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, errLock := lockUser(tx, userID)
		if errLock != nil {
			return errLock
		}

		var rentals []models.LevelRental
		if errFind := tx.Preload("Level").
			Where("user_id = ? AND is_active = ?", userID, true).
			Order("id ASC").
			Find(&rentals).Error; errFind != nil {
			return Internal("query rentals failed", errFind)
		}
		if len(rentals) == 0 {
			return Conflict("no active level to claim tasks for")
		}

		now := l.now()
		total := decimal.Zero
		for i := range rentals {
			rental := &rentals[i]
			if rental.LastTaskClaim != nil && now.Sub(*rental.LastTaskClaim) < taskCooldown {
				continue
			}
			if rental.Level == nil {
				return Internal("rental has no level", gorm.ErrRecordNotFound)
			}

			yield := rental.Level.DailyYield
			if errClaim := tx.Model(rental).Update("last_task_claim", now).Error; errClaim != nil {
				return Internal("update rental claim time failed", errClaim)
			}
			record := models.TaskRecord{
				UserID:   userID,
				RentalID: rental.ID,
				Yield:    yield,
			}
			if errRecord := tx.Create(&record).Error; errRecord != nil {
				return Internal("record task failed", errRecord)
			}
			total = total.Add(yield)
		}

		if total.IsPositive() {
			if errCredit := tx.Model(user).Update(
				"balance_available", user.BalanceAvailable.Add(total),
			).Error; errCredit != nil {
				return Internal("credit yield failed", errCredit)
			}
			result = &TaskResult{
				Status:        StatusSuccess,
				Message:       fmt.Sprintf("daily yield of %s credited", total.StringFixed(2)),
				TotalCredited: total,
			}
			return nil
		}

		result = &TaskResult{
			Status:        StatusInfo,
			Message:       "all tasks already claimed in the last 24 hours",
			TotalCredited: decimal.Zero,
		}
		return nil
	})
	if errTx != nil {
		return nil, errTx
	}
	return result, nil
}
