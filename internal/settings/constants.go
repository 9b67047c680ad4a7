package settings

// DB config keys and defaults for platform settings.
const (
	// WithdrawFeePercentKey is the withdrawal fee rate in percent (5.00 means 5%).
	WithdrawFeePercentKey = "WITHDRAW_FEE_PERCENT"
	// WithdrawMinAmountKey is the minimum gross withdrawal amount.
	WithdrawMinAmountKey = "WITHDRAW_MIN_AMOUNT"
	// WithdrawWindowStartHourKey is the first hour (inclusive) withdrawals are accepted.
	WithdrawWindowStartHourKey = "WITHDRAW_WINDOW_START_HOUR"
	// WithdrawWindowEndHourKey is the hour (exclusive) withdrawals stop being accepted.
	WithdrawWindowEndHourKey = "WITHDRAW_WINDOW_END_HOUR"
	// TimezoneKey is the reference timezone for the withdrawal window.
	TimezoneKey = "TIMEZONE"
	// WhatsAppGroupURLKey is the support WhatsApp group link.
	WhatsAppGroupURLKey = "WHATSAPP_GROUP_URL"
	// TelegramGroupURLKey is the support Telegram group link.
	TelegramGroupURLKey = "TELEGRAM_GROUP_URL"
	// AuditRetentionDaysKey is how many days of audit log rows to keep.
	AuditRetentionDaysKey = "AUDIT_RETENTION_DAYS"

	// DefaultWithdrawFeePercent is the fallback fee rate in percent.
	DefaultWithdrawFeePercent = "0.00"
	// DefaultWithdrawMinAmount is the fallback minimum withdrawal.
	DefaultWithdrawMinAmount = "1000.00"
	// DefaultWithdrawWindowStartHour is the fallback window start hour.
	DefaultWithdrawWindowStartHour = 8
	// DefaultWithdrawWindowEndHour is the fallback window end hour.
	DefaultWithdrawWindowEndHour = 18
	// DefaultTimezone is the fallback reference timezone.
	DefaultTimezone = "Africa/Luanda"
	// DefaultAuditRetentionDays is the fallback audit log retention.
	DefaultAuditRetentionDays = 180
)
