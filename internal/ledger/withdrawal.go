package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ssdinvest/plataforma/internal/models"
	"github.com/ssdinvest/plataforma/internal/settings"
)

// WithdrawalResult reports the outcome of a withdrawal request.
type WithdrawalResult struct {
	Status    Status
	Message   string
	NetAmount decimal.Decimal
	Fee       decimal.Decimal
}

// RequestWithdrawal validates and records a withdrawal of grossRaw from the
// user's available balance. Preconditions are checked in a fixed order and
// the first failing one wins: bank details on file, current time inside the
// policy window (evaluated in the policy's reference timezone), parseable
// positive amount, policy minimum, sufficient balance.
//
// The gross amount is debited from the available balance; the created
// withdrawal row carries the net amount (gross minus fee) and the fee is
// retained by the platform. TotalWithdrawn accumulates net.
func (l *Ledger) RequestWithdrawal(ctx context.Context, userID uint64, grossRaw string, policy settings.WithdrawalPolicy) (*WithdrawalResult, error) {
	var result *WithdrawalResult

	errTx := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bank models.UserBankDetails
		if errFind := tx.Where("user_id = ?", userID).First(&bank).Error; errFind != nil {
			if errors.Is(errFind, gorm.ErrRecordNotFound) {
				return Conflict("bank details must be registered before withdrawing")
			}
			return Internal("query bank details failed", errFind)
		}

		if !policy.WindowContains(l.now()) {
			return Conflict(fmt.Sprintf(
				"withdrawals are only accepted between %02d:00 and %02d:00",
				policy.WindowStartHour, policy.WindowEndHour,
			))
		}

		gross, errParse := decimal.NewFromString(strings.TrimSpace(grossRaw))
		if errParse != nil || !gross.IsPositive() {
			return Validation("invalid withdrawal amount")
		}

		if gross.LessThan(policy.MinimumAmount) {
			return Validation(fmt.Sprintf(
				"minimum withdrawal is %s", policy.MinimumAmount.StringFixed(2),
			))
		}

		user, errLock := lockUser(tx, userID)
		if errLock != nil {
			return errLock
		}
		if gross.GreaterThan(user.BalanceAvailable) {
			return Conflict("insufficient balance")
		}

		fee := gross.Mul(policy.FeePercent).Div(decimal.NewFromInt(100)).Round(2)
		net := gross.Sub(fee)

		withdrawal := models.Withdrawal{
			UserID: userID,
			Amount: net,
			Fee:    fee,
			IBAN:   bank.IBAN,
			Status: models.StatusPending,
		}
		if errCreate := tx.Create(&withdrawal).Error; errCreate != nil {
			return Internal("create withdrawal failed", errCreate)
		}

		if errDebit := tx.Model(user).Updates(map[string]any{
			"balance_available": user.BalanceAvailable.Sub(gross),
			"total_withdrawn":   user.TotalWithdrawn.Add(net),
		}).Error; errDebit != nil {
			return Internal("debit balance failed", errDebit)
		}

		result = &WithdrawalResult{
			Status: StatusSuccess,
			Message: fmt.Sprintf(
				"withdrawal of %s requested; a fee of %s was applied",
				net.StringFixed(2), fee.StringFixed(2),
			),
			NetAmount: net,
			Fee:       fee,
		}
		return nil
	})
	if errTx != nil {
		return nil, errTx
	}
	return result, nil
}
