package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/ssdinvest/plataforma/internal/audit"
	"github.com/ssdinvest/plataforma/internal/models"
	"github.com/ssdinvest/plataforma/internal/util"
	"gorm.io/gorm"
)

// WithdrawalAdminHandler handles withdrawal review endpoints. Approval and
// rejection are status-only transitions; the balance debit already happened
// when the withdrawal was requested.
type WithdrawalAdminHandler struct {
	db *gorm.DB
}

// NewWithdrawalAdminHandler constructs a WithdrawalAdminHandler.
func NewWithdrawalAdminHandler(db *gorm.DB) *WithdrawalAdminHandler {
	return &WithdrawalAdminHandler{db: db}
}

// List returns withdrawals, optionally filtered by status, newest first.
func (h *WithdrawalAdminHandler) List(c *gin.Context) {
	query := h.db.WithContext(c.Request.Context()).Preload("User").Order("created_at DESC")
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		query = query.Where("status = ?", status)
	}

	var withdrawals []models.Withdrawal
	if errFind := query.Find(&withdrawals).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	out := make([]gin.H, 0, len(withdrawals))
	for _, withdrawal := range withdrawals {
		entry := gin.H{
			"id":         withdrawal.ID,
			"user_id":    withdrawal.UserID,
			"amount":     withdrawal.Amount,
			"fee":        withdrawal.Fee,
			"iban":       withdrawal.IBAN,
			"status":     withdrawal.Status,
			"created_at": withdrawal.CreatedAt,
		}
		if withdrawal.User != nil {
			entry["phone_number"] = withdrawal.User.PhoneNumber
		}
		out = append(out, entry)
	}
	c.JSON(http.StatusOK, gin.H{"withdrawals": out})
}

// Approve marks a pending withdrawal approved.
func (h *WithdrawalAdminHandler) Approve(c *gin.Context) {
	h.transition(c, models.StatusApproved)
}

// Reject marks a pending withdrawal rejected.
func (h *WithdrawalAdminHandler) Reject(c *gin.Context) {
	h.transition(c, models.StatusRejected)
}

func (h *WithdrawalAdminHandler) transition(c *gin.Context, status string) {
	withdrawalID := pathID(c)
	if withdrawalID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid withdrawal id"})
		return
	}

	var withdrawal models.Withdrawal
	if errFind := h.db.WithContext(c.Request.Context()).First(&withdrawal, withdrawalID).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "withdrawal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	if withdrawal.Status != models.StatusPending {
		c.JSON(http.StatusConflict, gin.H{"error": "withdrawal already processed"})
		return
	}

	if errUpdate := h.db.WithContext(c.Request.Context()).Model(&withdrawal).Updates(map[string]any{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}).Error; errUpdate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update withdrawal failed"})
		return
	}

	log.Infof("withdrawal %d marked %s (iban=%s)", withdrawal.ID, status, util.MaskIBAN(withdrawal.IBAN))
	audit.Record(c.Request.Context(), h.db, getAdminID(c), "withdrawal."+status, "withdrawal", withdrawal.ID)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
