package models

import (
	"encoding/json"
	"time"
)

// Setting stores one platform configuration entry as a key/value row.
// The rows are loaded into an in-memory snapshot at startup and after
// every admin update; engines never read this table directly.
type Setting struct {
	Key       string          `gorm:"type:varchar(255);primaryKey"`                      // Configuration key.
	Value     json.RawMessage `gorm:"type:jsonb"`                                        // JSON-encoded value.
	UpdatedAt time.Time       `gorm:"not null;autoUpdateTime;default:CURRENT_TIMESTAMP"` // Last update timestamp.
}
