package ledger

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ssdinvest/plataforma/internal/db"
	"github.com/ssdinvest/plataforma/internal/models"
)

// DepositResult reports the outcome of a deposit approval.
type DepositResult struct {
	Status  Status
	Message string
}

// ApproveDeposit approves a pending deposit: the deposit amount is credited
// to the depositor's available balance (principal, not yield) and, when the
// depositor was invited by a user holding an active level rental, the
// inviter receives a referral subsidy of ReferralSubsidyRate times the
// amount on both the subsidy and available balances.
//
// Approval is idempotent: an already approved deposit returns StatusInfo
// without touching any balance. The status re-check happens after the
// deposit row is locked, so concurrent approvals of the same deposit cannot
// double-credit.
func (l *Ledger) ApproveDeposit(ctx context.Context, depositID uint64) (*DepositResult, error) {
	var result *DepositResult

	errTx := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var deposit models.Deposit
		if errFind := db.LockForUpdate(tx).First(&deposit, depositID).Error; errFind != nil {
			if errors.Is(errFind, gorm.ErrRecordNotFound) {
				return NotFound("deposit not found")
			}
			return Internal("query deposit failed", errFind)
		}

		if deposit.Status == models.StatusApproved {
			result = &DepositResult{Status: StatusInfo, Message: "deposit already approved"}
			return nil
		}

		// InviterID is immutable after registration, so reading it outside
		// the user row lock is safe.
		var depositor models.User
		if errFind := tx.Select("id", "inviter_id").First(&depositor, deposit.UserID).Error; errFind != nil {
			return Internal("query depositor failed", errFind)
		}

		lockIDs := []uint64{depositor.ID}
		if depositor.InviterID != nil {
			lockIDs = append(lockIDs, *depositor.InviterID)
		}
		users, errLock := lockUsers(tx, lockIDs...)
		if errLock != nil {
			return errLock
		}

		now := l.now()
		if errUpdate := tx.Model(&deposit).Updates(map[string]any{
			"status":      models.StatusApproved,
			"approved_at": now,
		}).Error; errUpdate != nil {
			return Internal("approve deposit failed", errUpdate)
		}

		owner := users[depositor.ID]
		if errCredit := tx.Model(owner).Updates(map[string]any{
			"balance_available": owner.BalanceAvailable.Add(deposit.Amount),
		}).Error; errCredit != nil {
			return Internal("credit depositor failed", errCredit)
		}

		if depositor.InviterID != nil {
			inviter := users[*depositor.InviterID]
			active, errActive := hasActiveRental(tx, inviter.ID)
			if errActive != nil {
				return errActive
			}
			if active {
				subsidy := deposit.Amount.Mul(ReferralSubsidyRate).Round(2)
				if errSubsidy := tx.Model(inviter).Updates(map[string]any{
					"balance_subsidy":   inviter.BalanceSubsidy.Add(subsidy),
					"balance_available": inviter.BalanceAvailable.Add(subsidy),
				}).Error; errSubsidy != nil {
					return Internal("credit inviter subsidy failed", errSubsidy)
				}
			}
			// No active rental means no subsidy; this is silent, not an error.
		}

		result = &DepositResult{
			Status:  StatusSuccess,
			Message: fmt.Sprintf("deposit of %s approved", deposit.Amount.StringFixed(2)),
		}
		return nil
	})
	if errTx != nil {
		return nil, errTx
	}
	return result, nil
}
