package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/ssdinvest/plataforma/internal/models"
)

func TestTeamListsInvitedUsersWithRentalFlag(t *testing.T) {
	conn := setupLedgerDB(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	l := newTestLedger(conn, now)

	inviter := createUser(t, conn, "955000001", "0.00")
	withLevel := createUser(t, conn, "955000002", "0.00")
	withoutLevel := createUser(t, conn, "955000003", "0.00")
	for _, invited := range []*models.User{withLevel, withoutLevel} {
		if errLink := conn.Model(invited).Update("inviter_id", inviter.ID).Error; errLink != nil {
			t.Fatalf("link inviter: %v", errLink)
		}
	}
	level := createLevel(t, conn, "Bronze", "5000.00", "100.00", 30)
	createActiveRental(t, conn, withLevel.ID, level.ID, now.AddDate(0, 0, -1), 30)

	members, errTeam := l.Team(context.Background(), inviter.ID)
	if errTeam != nil {
		t.Fatalf("team: %v", errTeam)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}
	if !members[0].HasActiveLevel {
		t.Fatalf("expected first member to have an active level")
	}
	if members[1].HasActiveLevel {
		t.Fatalf("expected second member to have no active level")
	}
}

func TestIncomeSummary(t *testing.T) {
	conn := setupLedgerDB(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	l := newTestLedger(conn, now)

	user := createUser(t, conn, "955000010", "750.00")
	level := createLevel(t, conn, "Gold", "20000.00", "500.00", 60)
	createActiveRental(t, conn, user.ID, level.ID, now.AddDate(0, 0, -1), 60)
	createDeposit(t, conn, user.ID, "20000.00", models.StatusApproved)
	createDeposit(t, conn, user.ID, "5000.00", models.StatusApproved)
	createDeposit(t, conn, user.ID, "999.00", models.StatusPending)

	summary, errIncome := l.Income(context.Background(), user.ID)
	if errIncome != nil {
		t.Fatalf("income: %v", errIncome)
	}
	if summary.LevelName != "Gold" {
		t.Fatalf("expected level Gold, got %s", summary.LevelName)
	}
	mustEqual(t, "approved deposits", summary.ApprovedDeposits, dec(t, "25000.00"))
	mustEqual(t, "balance_available", summary.BalanceAvailable, dec(t, "750.00"))
}
