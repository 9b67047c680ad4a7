package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/ssdinvest/plataforma/internal/models"
)

func TestClaimDailyTasksRequiresActiveLevel(t *testing.T) {
	conn := setupLedgerDB(t)
	l := newTestLedger(conn, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	user := createUser(t, conn, "922000001", "0.00")

	_, errClaim := l.ClaimDailyTasks(context.Background(), user.ID)
	if errClaim == nil {
		t.Fatalf("expected error without active level")
	}
	if KindOf(errClaim) != KindConflict {
		t.Fatalf("expected conflict kind, got %v", KindOf(errClaim))
	}
}

func TestClaimDailyTasksCooldown(t *testing.T) {
	conn := setupLedgerDB(t)
	start := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	l := newTestLedger(conn, start)

	user := createUser(t, conn, "922000002", "0.00")
	level := createLevel(t, conn, "Silver", "10000.00", "250.00", 30)
	createActiveRental(t, conn, user.ID, level.ID, start.AddDate(0, 0, -1), 30)

	first, errFirst := l.ClaimDailyTasks(context.Background(), user.ID)
	if errFirst != nil {
		t.Fatalf("first claim: %v", errFirst)
	}
	if first.Status != StatusSuccess {
		t.Fatalf("expected success on first claim, got %s", first.Status)
	}
	mustEqual(t, "total credited", first.TotalCredited, dec(t, "250.00"))
	mustEqual(t, "balance_available", reloadUser(t, conn, user.ID).BalanceAvailable, dec(t, "250.00"))

	// Within the 24h cooldown: a benign no-op, not an error.
	l.now = func() time.Time { return start.Add(23 * time.Hour) }
	second, errSecond := l.ClaimDailyTasks(context.Background(), user.ID)
	if errSecond != nil {
		t.Fatalf("second claim: %v", errSecond)
	}
	if second.Status != StatusInfo {
		t.Fatalf("expected info within cooldown, got %s", second.Status)
	}
	mustEqual(t, "balance_available", reloadUser(t, conn, user.ID).BalanceAvailable, dec(t, "250.00"))

	l.now = func() time.Time { return start.Add(25 * time.Hour) }
	third, errThird := l.ClaimDailyTasks(context.Background(), user.ID)
	if errThird != nil {
		t.Fatalf("third claim: %v", errThird)
	}
	if third.Status != StatusSuccess {
		t.Fatalf("expected success after cooldown, got %s", third.Status)
	}
	mustEqual(t, "balance_available", reloadUser(t, conn, user.ID).BalanceAvailable, dec(t, "500.00"))

	var records int64
	if errCount := conn.Model(&models.TaskRecord{}).Where("user_id = ?", user.ID).Count(&records).Error; errCount != nil {
		t.Fatalf("count task records: %v", errCount)
	}
	if records != 2 {
		t.Fatalf("expected 2 task records, got %d", records)
	}
}

func TestClaimDailyTasksCreditsEveryEligibleRental(t *testing.T) {
	conn := setupLedgerDB(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	l := newTestLedger(conn, now)

	user := createUser(t, conn, "922000003", "0.00")
	bronze := createLevel(t, conn, "Bronze", "5000.00", "100.00", 30)
	gold := createLevel(t, conn, "Gold", "20000.00", "500.00", 60)

	createActiveRental(t, conn, user.ID, bronze.ID, now.AddDate(0, 0, -2), 30)
	claimed := now.Add(-2 * time.Hour)
	recent := createActiveRental(t, conn, user.ID, gold.ID, now.AddDate(0, 0, -1), 60)
	if errSet := conn.Model(recent).Update("last_task_claim", claimed).Error; errSet != nil {
		t.Fatalf("set last claim: %v", errSet)
	}

	result, errClaim := l.ClaimDailyTasks(context.Background(), user.ID)
	if errClaim != nil {
		t.Fatalf("claim: %v", errClaim)
	}
	if result.Status != StatusSuccess {
		t.Fatalf("expected success, got %s", result.Status)
	}
	// Only the bronze rental is claimable; the gold one is inside cooldown.
	mustEqual(t, "total credited", result.TotalCredited, dec(t, "100.00"))
	mustEqual(t, "balance_available", reloadUser(t, conn, user.ID).BalanceAvailable, dec(t, "100.00"))
}
