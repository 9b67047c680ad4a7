package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ssdinvest/plataforma/internal/ledger"
	"github.com/ssdinvest/plataforma/internal/models"
	"github.com/ssdinvest/plataforma/internal/settings"
	"gorm.io/gorm"
)

// WithdrawalHandler handles withdrawal requests and history.
type WithdrawalHandler struct {
	db     *gorm.DB
	ledger *ledger.Ledger
}

// NewWithdrawalHandler constructs a WithdrawalHandler.
func NewWithdrawalHandler(db *gorm.DB, l *ledger.Ledger) *WithdrawalHandler {
	return &WithdrawalHandler{db: db, ledger: l}
}

// createWithdrawalRequest defines the request body for withdrawal requests.
type createWithdrawalRequest struct {
	Amount string `json:"amount"`
}

// Create requests a withdrawal of the given gross amount under the current
// withdrawal policy.
func (h *WithdrawalHandler) Create(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body createWithdrawalRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	policy := settings.LoadWithdrawalPolicy()
	result, errRequest := h.ledger.RequestWithdrawal(c.Request.Context(), userID, body.Amount, policy)
	if errRequest != nil {
		respondLedgerError(c, errRequest)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":     result.Status,
		"message":    result.Message,
		"net_amount": result.NetAmount,
		"fee":        result.Fee,
	})
}

// List returns the user's withdrawals, newest first.
func (h *WithdrawalHandler) List(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var withdrawals []models.Withdrawal
	if errFind := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&withdrawals).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	out := make([]gin.H, 0, len(withdrawals))
	for _, withdrawal := range withdrawals {
		out = append(out, gin.H{
			"id":         withdrawal.ID,
			"amount":     withdrawal.Amount,
			"fee":        withdrawal.Fee,
			"iban":       withdrawal.IBAN,
			"status":     withdrawal.Status,
			"created_at": withdrawal.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"withdrawals": out})
}
