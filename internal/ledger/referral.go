package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ssdinvest/plataforma/internal/models"
)

// TeamMember is one invited user in the referral graph, read-only.
type TeamMember struct {
	Name           string
	PhoneNumber    string
	HasActiveLevel bool
}

// Team lists the users invited by userID with their active-rental flag.
// Each account has at most one inviter, so this is a single-hop traversal.
func (l *Ledger) Team(ctx context.Context, userID uint64) ([]TeamMember, error) {
	var invited []models.User
	if errFind := l.db.WithContext(ctx).
		Where("inviter_id = ?", userID).
		Order("id ASC").
		Find(&invited).Error; errFind != nil {
		return nil, Internal("query team failed", errFind)
	}

	members := make([]TeamMember, 0, len(invited))
	for _, member := range invited {
		active, errActive := hasActiveRental(l.db.WithContext(ctx), member.ID)
		if errActive != nil {
			return nil, errActive
		}
		name := member.Username
		if name == "" {
			name = member.PhoneNumber
		}
		members = append(members, TeamMember{
			Name:           name,
			PhoneNumber:    member.PhoneNumber,
			HasActiveLevel: active,
		})
	}
	return members, nil
}

// IncomeSummary aggregates a user's balances and approved deposit total.
type IncomeSummary struct {
	LevelName        string
	ApprovedDeposits decimal.Decimal
	BalanceAvailable decimal.Decimal
	BalanceSubsidy   decimal.Decimal
	TotalWithdrawn   decimal.Decimal
}

// Income builds the income summary shown on the earnings page.
func (l *Ledger) Income(ctx context.Context, userID uint64) (*IncomeSummary, error) {
	var user models.User
	if errFind := l.db.WithContext(ctx).First(&user, userID).Error; errFind != nil {
		return nil, NotFound("user not found")
	}

	summary := &IncomeSummary{
		LevelName:        "no level rented",
		BalanceAvailable: user.BalanceAvailable,
		BalanceSubsidy:   user.BalanceSubsidy,
		TotalWithdrawn:   user.TotalWithdrawn,
	}

	var rental models.LevelRental
	if errFind := l.db.WithContext(ctx).Preload("Level").
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("started_at DESC").
		First(&rental).Error; errFind == nil && rental.Level != nil {
		summary.LevelName = rental.Level.Name
	}

	type sumRow struct {
		Total decimal.Decimal
	}
	var row sumRow
	if errSum := l.db.WithContext(ctx).Model(&models.Deposit{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ? AND status = ?", userID, models.StatusApproved).
		Scan(&row).Error; errSum != nil {
		return nil, Internal("sum deposits failed", errSum)
	}
	summary.ApprovedDeposits = row.Total

	return summary, nil
}
