package handlers

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ssdinvest/plataforma/internal/ledger"
	"github.com/ssdinvest/plataforma/internal/models"
)

func TestDepositApproveCreditsUserAndAudits(t *testing.T) {
	conn := setupAdminDB(t)
	user := seedUser(t, conn, "930000001", "ADMCODE001")
	deposit := seedDeposit(t, conn, user.ID, "2500.00", models.StatusPending)

	router := newRouter()
	handler := NewDepositAdminHandler(conn, ledger.New(conn))
	router.POST("/deposits/:id/approve", asAdmin(7), handler.Approve)

	rec := doJSON(t, router, http.MethodPost, "/deposits/1/approve", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if got, _ := body["status"].(string); got != string(ledger.StatusSuccess) {
		t.Fatalf("result status = %q, want success", got)
	}

	var updated models.User
	if errFind := conn.First(&updated, user.ID).Error; errFind != nil {
		t.Fatalf("reload user: %v", errFind)
	}
	if !updated.BalanceAvailable.Equal(decimal.RequireFromString("2500.00")) {
		t.Fatalf("balance = %s, want 2500.00", updated.BalanceAvailable)
	}

	var reloaded models.Deposit
	if errFind := conn.First(&reloaded, deposit.ID).Error; errFind != nil {
		t.Fatalf("reload deposit: %v", errFind)
	}
	if reloaded.Status != models.StatusApproved {
		t.Fatalf("deposit status = %q, want approved", reloaded.Status)
	}
	if reloaded.ApprovedAt == nil {
		t.Fatal("expected approved_at to be set")
	}

	if got := auditCount(t, conn, "deposit.approve"); got != 1 {
		t.Fatalf("audit rows = %d, want 1", got)
	}
	var entry models.AuditLog
	if errFind := conn.Where("action = ?", "deposit.approve").First(&entry).Error; errFind != nil {
		t.Fatalf("find audit row: %v", errFind)
	}
	if entry.AdminID != 7 || entry.Entity != "deposit" || entry.EntityID != deposit.ID {
		t.Fatalf("audit row = %+v", entry)
	}
}

func TestDepositApproveIsIdempotent(t *testing.T) {
	conn := setupAdminDB(t)
	user := seedUser(t, conn, "930000002", "ADMCODE002")
	seedDeposit(t, conn, user.ID, "1000.00", models.StatusPending)

	router := newRouter()
	handler := NewDepositAdminHandler(conn, ledger.New(conn))
	router.POST("/deposits/:id/approve", asAdmin(7), handler.Approve)

	if rec := doJSON(t, router, http.MethodPost, "/deposits/1/approve", nil); rec.Code != http.StatusOK {
		t.Fatalf("first approve status = %d", rec.Code)
	}
	rec := doJSON(t, router, http.MethodPost, "/deposits/1/approve", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("second approve status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if got, _ := body["status"].(string); got != string(ledger.StatusInfo) {
		t.Fatalf("second approve result = %q, want info", got)
	}

	var updated models.User
	if errFind := conn.First(&updated, user.ID).Error; errFind != nil {
		t.Fatalf("reload user: %v", errFind)
	}
	if !updated.BalanceAvailable.Equal(decimal.RequireFromString("1000.00")) {
		t.Fatalf("balance = %s, want single credit of 1000.00", updated.BalanceAvailable)
	}
}

func TestDepositRejectOnlyPending(t *testing.T) {
	conn := setupAdminDB(t)
	user := seedUser(t, conn, "930000003", "ADMCODE003")
	seedDeposit(t, conn, user.ID, "500.00", models.StatusApproved)

	router := newRouter()
	handler := NewDepositAdminHandler(conn, ledger.New(conn))
	router.POST("/deposits/:id/reject", asAdmin(7), handler.Reject)

	rec := doJSON(t, router, http.MethodPost, "/deposits/1/reject", nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if got := auditCount(t, conn, "deposit.reject"); got != 0 {
		t.Fatalf("audit rows = %d, want 0", got)
	}
}

func TestDepositApproveUnknownID(t *testing.T) {
	conn := setupAdminDB(t)

	router := newRouter()
	handler := NewDepositAdminHandler(conn, ledger.New(conn))
	router.POST("/deposits/:id/approve", asAdmin(7), handler.Approve)

	rec := doJSON(t, router, http.MethodPost, "/deposits/99/approve", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
