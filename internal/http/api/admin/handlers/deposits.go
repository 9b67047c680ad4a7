package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ssdinvest/plataforma/internal/audit"
	"github.com/ssdinvest/plataforma/internal/ledger"
	"github.com/ssdinvest/plataforma/internal/models"
	"gorm.io/gorm"
)

// DepositAdminHandler handles deposit review endpoints.
type DepositAdminHandler struct {
	db     *gorm.DB
	ledger *ledger.Ledger
}

// NewDepositAdminHandler constructs a DepositAdminHandler.
func NewDepositAdminHandler(db *gorm.DB, l *ledger.Ledger) *DepositAdminHandler {
	return &DepositAdminHandler{db: db, ledger: l}
}

// List returns deposits, optionally filtered by status, newest first.
func (h *DepositAdminHandler) List(c *gin.Context) {
	query := h.db.WithContext(c.Request.Context()).Preload("User").Order("created_at DESC")
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		query = query.Where("status = ?", status)
	}

	var deposits []models.Deposit
	if errFind := query.Find(&deposits).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	out := make([]gin.H, 0, len(deposits))
	for _, deposit := range deposits {
		entry := gin.H{
			"id":          deposit.ID,
			"user_id":     deposit.UserID,
			"amount":      deposit.Amount,
			"proof_ref":   deposit.ProofRef,
			"proof_meta":  deposit.ProofMeta,
			"status":      deposit.Status,
			"approved_at": deposit.ApprovedAt,
			"created_at":  deposit.CreatedAt,
		}
		if deposit.User != nil {
			entry["phone_number"] = deposit.User.PhoneNumber
		}
		out = append(out, entry)
	}
	c.JSON(http.StatusOK, gin.H{"deposits": out})
}

// Approve approves a pending deposit and applies all credits.
func (h *DepositAdminHandler) Approve(c *gin.Context) {
	depositID := pathID(c)
	if depositID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid deposit id"})
		return
	}

	result, errApprove := h.ledger.ApproveDeposit(c.Request.Context(), depositID)
	if errApprove != nil {
		respondLedgerError(c, errApprove)
		return
	}

	audit.Record(c.Request.Context(), h.db, getAdminID(c), "deposit.approve", "deposit", depositID)
	c.JSON(http.StatusOK, gin.H{
		"status":  result.Status,
		"message": result.Message,
	})
}

// Reject marks a pending deposit rejected. Deposits in any other status are
// left untouched.
func (h *DepositAdminHandler) Reject(c *gin.Context) {
	depositID := pathID(c)
	if depositID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid deposit id"})
		return
	}

	var deposit models.Deposit
	if errFind := h.db.WithContext(c.Request.Context()).First(&deposit, depositID).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "deposit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	if deposit.Status != models.StatusPending {
		c.JSON(http.StatusConflict, gin.H{"error": "deposit already processed"})
		return
	}

	if errUpdate := h.db.WithContext(c.Request.Context()).Model(&deposit).Updates(map[string]any{
		"status":     models.StatusRejected,
		"updated_at": time.Now().UTC(),
	}).Error; errUpdate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reject deposit failed"})
		return
	}

	audit.Record(c.Request.Context(), h.db, getAdminID(c), "deposit.reject", "deposit", deposit.ID)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
