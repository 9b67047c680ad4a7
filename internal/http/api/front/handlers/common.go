package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ssdinvest/plataforma/internal/ledger"
)

// getUserID extracts the user ID from gin context.
func getUserID(c *gin.Context) uint64 {
	val, exists := c.Get("userID")
	if !exists {
		return 0
	}
	switch v := val.(type) {
	case uint64:
		return v
	case int64:
		return uint64(v)
	case uint:
		return uint64(v)
	case int:
		return uint64(v)
	default:
		return 0
	}
}

// ledgerStatusCode maps engine failure kinds to HTTP status codes.
func ledgerStatusCode(err error) int {
	switch ledger.KindOf(err) {
	case ledger.KindNotFound:
		return http.StatusNotFound
	case ledger.KindValidation:
		return http.StatusBadRequest
	case ledger.KindConflict:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondLedgerError writes a classified engine failure as JSON. Only the
// user-facing message is exposed.
func respondLedgerError(c *gin.Context, err error) {
	c.JSON(ledgerStatusCode(err), gin.H{"status": "error", "message": ledger.MessageOf(err)})
}
