package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ssdinvest/plataforma/internal/models"
)

// PrizeResult reports the outcome of a prize opening.
type PrizeResult struct {
	Status       Status
	Message      string
	WinningValue decimal.Decimal
}

// OpenPrize draws a weighted-random subsidy prize for an eligible user and
// credits the won amount to both the available and subsidy balances,
// consuming one remaining opening.
//
// Eligibility, checked in order: an approved deposit, an active rental, the
// can-open flag, and a positive openings counter. An empty catalog or a
// non-positive total weight is a configuration error.
//
// Selection draws r uniformly in [0, total weight) and walks the catalog in
// descending chance order (ties by id), picking the first entry whose
// cumulative weight reaches r. Should rounding leave no entry selected, a
// uniform fallback among all entries is used; this mirrors the historical
// behavior and is kept as policy.
func (l *Ledger) OpenPrize(ctx context.Context, userID uint64) (*PrizeResult, error) {
	var result *PrizeResult

	errTx := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, errLock := lockUser(tx, userID)
		if errLock != nil {
			return errLock
		}

		var approvedDeposits int64
		if errCount := tx.Model(&models.Deposit{}).
			Where("user_id = ? AND status = ?", userID, models.StatusApproved).
			Count(&approvedDeposits).Error; errCount != nil {
			return Internal("query deposits failed", errCount)
		}
		if approvedDeposits == 0 {
			return Conflict("an approved deposit is required to open a prize")
		}

		active, errActive := hasActiveRental(tx, userID)
		if errActive != nil {
			return errActive
		}
		if !active {
			return Conflict("an active level rental is required to open a prize")
		}

		if !user.CanOpenPrize {
			return Conflict("prize opening is not enabled for this account")
		}
		if user.PrizesRemaining <= 0 {
			return Conflict("no prize openings remaining")
		}

		var prizes []models.Prize
		if errFind := tx.Order("chance DESC, id ASC").Find(&prizes).Error; errFind != nil {
			return Internal("query prizes failed", errFind)
		}
		if len(prizes) == 0 {
			return Configuration("no subsidy prizes are configured")
		}

		totalWeight := decimal.Zero
		for _, prize := range prizes {
			totalWeight = totalWeight.Add(prize.Chance)
		}
		if !totalWeight.IsPositive() {
			return Configuration("subsidy prize chances are not configured")
		}

		r := decimal.NewFromFloat(l.randFloat()).Mul(totalWeight)
		var won *models.Prize
		cumulative := decimal.Zero
		for i := range prizes {
			cumulative = cumulative.Add(prizes[i].Chance)
			if r.LessThanOrEqual(cumulative) {
				won = &prizes[i]
				break
			}
		}
		if won == nil {
			won = &prizes[l.randIntn(len(prizes))]
		}

		if errCredit := tx.Model(user).Updates(map[string]any{
			"balance_available": user.BalanceAvailable.Add(won.Value),
			"balance_subsidy":   user.BalanceSubsidy.Add(won.Value),
			"prizes_remaining":  user.PrizesRemaining - 1,
		}).Error; errCredit != nil {
			return Internal("credit prize failed", errCredit)
		}

		result = &PrizeResult{
			Status:       StatusSuccess,
			Message:      fmt.Sprintf("congratulations, you won %s in subsidies", won.Value.StringFixed(2)),
			WinningValue: won.Value,
		}
		return nil
	})
	if errTx != nil {
		return nil, errTx
	}
	return result, nil
}
