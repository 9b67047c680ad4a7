package settings

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/ssdinvest/plataforma/internal/models"
)

func setupSettingsDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:settings_%d?mode=memory&cache=shared", time.Now().UnixNano())
	conn, errOpen := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}
	if errMigrate := conn.AutoMigrate(&models.Setting{}); errMigrate != nil {
		t.Fatalf("migrate db: %v", errMigrate)
	}
	return conn
}

func TestStoreSnapshotAndValue(t *testing.T) {
	StoreSnapshot(time.Now(), map[string]json.RawMessage{
		"  SPACED  ": json.RawMessage(`"kept"`),
		"":           json.RawMessage(`"dropped"`),
		"NULLED":     nil,
	})

	if got := StringValue("SPACED", "fallback"); got != "kept" {
		t.Fatalf("StringValue(SPACED) = %q, want %q", got, "kept")
	}
	raw, ok := Value("NULLED")
	if !ok || raw != nil {
		t.Fatalf("Value(NULLED) = (%v, %v), want (nil, true)", raw, ok)
	}
	if _, ok := Value(""); ok {
		t.Fatal("empty key should not resolve")
	}
}

func TestStringValueAcceptsBareStrings(t *testing.T) {
	StoreSnapshot(time.Now(), map[string]json.RawMessage{
		"QUOTED": json.RawMessage(`"hello"`),
		"BARE":   json.RawMessage(`Africa/Luanda`),
	})

	if got := StringValue("QUOTED", ""); got != "hello" {
		t.Fatalf("StringValue(QUOTED) = %q", got)
	}
	if got := StringValue("BARE", ""); got != "Africa/Luanda" {
		t.Fatalf("StringValue(BARE) = %q", got)
	}
	if got := StringValue("MISSING", "fallback"); got != "fallback" {
		t.Fatalf("StringValue(MISSING) = %q", got)
	}
}

func TestIntValue(t *testing.T) {
	StoreSnapshot(time.Now(), map[string]json.RawMessage{
		"HOUR": json.RawMessage(`9`),
		"BAD":  json.RawMessage(`"not a number"`),
	})

	if got := IntValue("HOUR", 0); got != 9 {
		t.Fatalf("IntValue(HOUR) = %d, want 9", got)
	}
	if got := IntValue("BAD", 7); got != 7 {
		t.Fatalf("IntValue(BAD) = %d, want fallback 7", got)
	}
	if got := IntValue("MISSING", 5); got != 5 {
		t.Fatalf("IntValue(MISSING) = %d, want fallback 5", got)
	}
}

func TestRefreshSnapshotLoadsRows(t *testing.T) {
	conn := setupSettingsDB(t)

	rows := []models.Setting{
		{Key: WithdrawFeePercentKey, Value: json.RawMessage(`"10.00"`), UpdatedAt: time.Now().UTC()},
		{Key: WithdrawWindowStartHourKey, Value: json.RawMessage(`9`), UpdatedAt: time.Now().UTC()},
	}
	for i := range rows {
		if errCreate := conn.Create(&rows[i]).Error; errCreate != nil {
			t.Fatalf("create setting: %v", errCreate)
		}
	}

	if errRefresh := RefreshSnapshot(nil, conn); errRefresh != nil {
		t.Fatalf("refresh snapshot: %v", errRefresh)
	}

	if got := StringValue(WithdrawFeePercentKey, ""); got != "10.00" {
		t.Fatalf("fee percent = %q, want 10.00", got)
	}
	if got := IntValue(WithdrawWindowStartHourKey, 0); got != 9 {
		t.Fatalf("window start = %d, want 9", got)
	}
	if UpdatedAt().IsZero() {
		t.Fatal("snapshot UpdatedAt should be set after refresh")
	}
}

func TestRefreshSnapshotNilDB(t *testing.T) {
	if errRefresh := RefreshSnapshot(nil, nil); errRefresh == nil {
		t.Fatal("expected error for nil db")
	}
}
