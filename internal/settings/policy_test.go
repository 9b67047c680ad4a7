package settings

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestLoadWithdrawalPolicyDefaults(t *testing.T) {
	StoreSnapshot(time.Now(), map[string]json.RawMessage{})

	policy := LoadWithdrawalPolicy()
	if !policy.FeePercent.Equal(decimal.Zero) {
		t.Fatalf("fee percent = %s, want 0", policy.FeePercent)
	}
	if !policy.MinimumAmount.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("minimum amount = %s, want 1000", policy.MinimumAmount)
	}
	if policy.WindowStartHour != DefaultWithdrawWindowStartHour || policy.WindowEndHour != DefaultWithdrawWindowEndHour {
		t.Fatalf("window = [%d, %d), want [%d, %d)", policy.WindowStartHour, policy.WindowEndHour, DefaultWithdrawWindowStartHour, DefaultWithdrawWindowEndHour)
	}
	if policy.Location == nil {
		t.Fatal("location should never be nil")
	}
}

func TestLoadWithdrawalPolicyFromSnapshot(t *testing.T) {
	StoreSnapshot(time.Now(), map[string]json.RawMessage{
		WithdrawFeePercentKey:      json.RawMessage(`"12.50"`),
		WithdrawMinAmountKey:       json.RawMessage(`"500.00"`),
		WithdrawWindowStartHourKey: json.RawMessage(`10`),
		WithdrawWindowEndHourKey:   json.RawMessage(`16`),
		TimezoneKey:                json.RawMessage(`"UTC"`),
	})

	policy := LoadWithdrawalPolicy()
	if !policy.FeePercent.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("fee percent = %s, want 12.5", policy.FeePercent)
	}
	if !policy.MinimumAmount.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("minimum amount = %s, want 500", policy.MinimumAmount)
	}
	if policy.WindowStartHour != 10 || policy.WindowEndHour != 16 {
		t.Fatalf("window = [%d, %d), want [10, 16)", policy.WindowStartHour, policy.WindowEndHour)
	}
}

func TestLoadWithdrawalPolicyBadValuesFallBack(t *testing.T) {
	StoreSnapshot(time.Now(), map[string]json.RawMessage{
		WithdrawFeePercentKey: json.RawMessage(`"not-a-number"`),
		TimezoneKey:           json.RawMessage(`"Not/AZone"`),
	})

	policy := LoadWithdrawalPolicy()
	if !policy.FeePercent.Equal(decimal.Zero) {
		t.Fatalf("fee percent = %s, want default 0", policy.FeePercent)
	}
	if policy.Location != time.UTC {
		t.Fatalf("location = %v, want UTC fallback", policy.Location)
	}
}

func TestWindowContains(t *testing.T) {
	policy := WithdrawalPolicy{WindowStartHour: 8, WindowEndHour: 18, Location: time.UTC}

	cases := []struct {
		hour int
		want bool
	}{
		{7, false},
		{8, true},
		{17, true},
		{18, false},
		{23, false},
	}
	for _, tc := range cases {
		at := time.Date(2025, 6, 1, tc.hour, 30, 0, 0, time.UTC)
		if got := policy.WindowContains(at); got != tc.want {
			t.Errorf("WindowContains(%02d:30) = %v, want %v", tc.hour, got, tc.want)
		}
	}
}

func TestWindowContainsUsesLocation(t *testing.T) {
	loc, errLoad := time.LoadLocation("Africa/Luanda")
	if errLoad != nil {
		t.Skipf("timezone database unavailable: %v", errLoad)
	}
	policy := WithdrawalPolicy{WindowStartHour: 8, WindowEndHour: 18, Location: loc}

	// 07:30 UTC is 08:30 in Luanda (UTC+1), inside the window.
	at := time.Date(2025, 6, 1, 7, 30, 0, 0, time.UTC)
	if !policy.WindowContains(at) {
		t.Fatal("07:30 UTC should be inside the window in Africa/Luanda")
	}
}
