package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/ssdinvest/plataforma/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DepositHandler handles deposit submission and history.
type DepositHandler struct {
	db *gorm.DB
}

// NewDepositHandler constructs a DepositHandler.
func NewDepositHandler(db *gorm.DB) *DepositHandler {
	return &DepositHandler{db: db}
}

// ListPlatformBanks returns the receiving accounts shown on the deposit page.
func (h *DepositHandler) ListPlatformBanks(c *gin.Context) {
	var banks []models.PlatformBank
	if errFind := h.db.WithContext(c.Request.Context()).Order("id ASC").Find(&banks).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	out := make([]gin.H, 0, len(banks))
	for _, bank := range banks {
		out = append(out, gin.H{
			"id":          bank.ID,
			"bank_name":   bank.BankName,
			"holder_name": bank.HolderName,
			"iban":        bank.IBAN,
		})
	}
	c.JSON(http.StatusOK, gin.H{"banks": out})
}

// createDepositRequest defines the request body for deposit submission.
type createDepositRequest struct {
	Amount    string         `json:"amount"`
	ProofRef  string         `json:"proof_ref"`
	ProofMeta map[string]any `json:"proof_meta"`
}

// Create records a pending deposit awaiting admin review.
func (h *DepositHandler) Create(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body createDepositRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	amount, errAmount := decimal.NewFromString(strings.TrimSpace(body.Amount))
	if errAmount != nil || !amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}
	proofRef := strings.TrimSpace(body.ProofRef)
	if proofRef == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing proof of payment"})
		return
	}

	meta := datatypes.JSON([]byte("{}"))
	if len(body.ProofMeta) > 0 {
		encoded, errMeta := json.Marshal(body.ProofMeta)
		if errMeta != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid proof metadata"})
			return
		}
		meta = datatypes.JSON(encoded)
	}

	now := time.Now().UTC()
	deposit := models.Deposit{
		UserID:    userID,
		Amount:    amount.Round(2),
		ProofRef:  proofRef,
		ProofMeta: meta,
		Status:    models.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&deposit).Error; errCreate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create deposit failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":     deposit.ID,
		"amount": deposit.Amount,
		"status": deposit.Status,
	})
}

// List returns the user's deposits, newest first.
func (h *DepositHandler) List(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var deposits []models.Deposit
	if errFind := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&deposits).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	out := make([]gin.H, 0, len(deposits))
	for _, deposit := range deposits {
		out = append(out, gin.H{
			"id":          deposit.ID,
			"amount":      deposit.Amount,
			"status":      deposit.Status,
			"approved_at": deposit.ApprovedAt,
			"created_at":  deposit.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"deposits": out})
}
