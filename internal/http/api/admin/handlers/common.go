package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ssdinvest/plataforma/internal/ledger"
)

// getAdminID extracts the acting admin's ID from gin context.
func getAdminID(c *gin.Context) uint64 {
	val, exists := c.Get("adminID")
	if !exists {
		return 0
	}
	id, ok := val.(uint64)
	if !ok {
		return 0
	}
	return id
}

// pathID parses the :id route parameter, returning 0 on failure.
func pathID(c *gin.Context) uint64 {
	id, errParse := strconv.ParseUint(c.Param("id"), 10, 64)
	if errParse != nil {
		return 0
	}
	return id
}

// ledgerStatusCode maps engine failure kinds to HTTP status codes.
func ledgerStatusCode(err error) int {
	switch ledger.KindOf(err) {
	case ledger.KindNotFound:
		return http.StatusNotFound
	case ledger.KindValidation:
		return http.StatusBadRequest
	case ledger.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondLedgerError writes a classified engine failure as JSON.
func respondLedgerError(c *gin.Context, err error) {
	c.JSON(ledgerStatusCode(err), gin.H{"status": "error", "message": ledger.MessageOf(err)})
}
