package settings

import (
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawalPolicy is the configuration snapshot consumed by the withdrawal
// engine. It is materialized explicitly per request instead of being read
// from ambient global state inside the engine.
type WithdrawalPolicy struct {
	FeePercent      decimal.Decimal // Fee rate in percent (5.00 means 5%).
	MinimumAmount   decimal.Decimal // Minimum gross amount per request.
	WindowStartHour int             // First hour (inclusive) withdrawals are accepted.
	WindowEndHour   int             // Hour (exclusive) withdrawals stop being accepted.
	Location        *time.Location  // Reference timezone for the window check.
}

// LoadWithdrawalPolicy builds a WithdrawalPolicy from the current snapshot,
// falling back to defaults for absent or malformed values.
func LoadWithdrawalPolicy() WithdrawalPolicy {
	fee, errFee := decimal.NewFromString(StringValue(WithdrawFeePercentKey, DefaultWithdrawFeePercent))
	if errFee != nil {
		fee, _ = decimal.NewFromString(DefaultWithdrawFeePercent)
	}
	minAmount, errMin := decimal.NewFromString(StringValue(WithdrawMinAmountKey, DefaultWithdrawMinAmount))
	if errMin != nil {
		minAmount, _ = decimal.NewFromString(DefaultWithdrawMinAmount)
	}

	loc, errLoc := time.LoadLocation(StringValue(TimezoneKey, DefaultTimezone))
	if errLoc != nil {
		loc = time.UTC
	}

	return WithdrawalPolicy{
		FeePercent:      fee,
		MinimumAmount:   minAmount,
		WindowStartHour: IntValue(WithdrawWindowStartHourKey, DefaultWithdrawWindowStartHour),
		WindowEndHour:   IntValue(WithdrawWindowEndHourKey, DefaultWithdrawWindowEndHour),
		Location:        loc,
	}
}

// WindowContains reports whether the instant falls inside the withdrawal
// window, evaluated in the policy's reference timezone.
func (p WithdrawalPolicy) WindowContains(t time.Time) bool {
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	hour := t.In(loc).Hour()
	return hour >= p.WindowStartHour && hour < p.WindowEndHour
}
