package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ssdinvest/plataforma/internal/models"
	"github.com/ssdinvest/plataforma/internal/security"
	"gorm.io/gorm"
)

// ProfileHandler handles user profile endpoints.
type ProfileHandler struct {
	db *gorm.DB
}

// NewProfileHandler constructs a ProfileHandler.
func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

// Get returns the current user's profile and balances.
func (h *ProfileHandler) Get(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var user models.User
	if errFind := h.db.WithContext(c.Request.Context()).First(&user, userID).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                user.ID,
		"phone_number":      user.PhoneNumber,
		"username":          user.Username,
		"invitation_code":   user.InvitationCode,
		"balance_general":   user.BalanceGeneral,
		"balance_available": user.BalanceAvailable,
		"balance_subsidy":   user.BalanceSubsidy,
		"total_withdrawn":   user.TotalWithdrawn,
		"can_open_prize":    user.CanOpenPrize,
		"prizes_remaining":  user.PrizesRemaining,
		"created_at":        user.CreatedAt,
	})
}

// changePasswordRequest defines the request body for password changes.
type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ChangePassword verifies and updates the user's password.
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body changePasswordRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	oldPassword := strings.TrimSpace(body.OldPassword)
	newPassword := strings.TrimSpace(body.NewPassword)
	if oldPassword == "" || newPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing password"})
		return
	}

	var user models.User
	if errFind := h.db.WithContext(c.Request.Context()).First(&user, userID).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	if !security.CheckPassword(user.Password, oldPassword) {
		c.JSON(http.StatusForbidden, gin.H{"error": "wrong password"})
		return
	}

	hash, errHash := security.HashPassword(newPassword)
	if errHash != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "hash password failed"})
		return
	}

	if errUpdate := h.db.WithContext(c.Request.Context()).Model(&user).Updates(map[string]any{
		"password":   hash,
		"updated_at": time.Now().UTC(),
	}).Error; errUpdate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "change password failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GetBankDetails returns the user's payout destination, if any.
func (h *ProfileHandler) GetBankDetails(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var details models.UserBankDetails
	if errFind := h.db.WithContext(c.Request.Context()).Where("user_id = ?", userID).First(&details).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"bank_details": nil})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bank_details": gin.H{
		"bank_name":   details.BankName,
		"holder_name": details.HolderName,
		"iban":        details.IBAN,
	}})
}

// bankDetailsRequest defines the request body for saving bank details.
type bankDetailsRequest struct {
	BankName   string `json:"bank_name"`
	HolderName string `json:"holder_name"`
	IBAN       string `json:"iban"`
}

// SaveBankDetails creates or replaces the user's payout destination.
func (h *ProfileHandler) SaveBankDetails(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body bankDetailsRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	bankName := strings.TrimSpace(body.BankName)
	holderName := strings.TrimSpace(body.HolderName)
	iban := strings.TrimSpace(body.IBAN)
	if bankName == "" || holderName == "" || iban == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}

	now := time.Now().UTC()
	var details models.UserBankDetails
	errFind := h.db.WithContext(c.Request.Context()).Where("user_id = ?", userID).First(&details).Error
	switch {
	case errFind == nil:
		if errUpdate := h.db.WithContext(c.Request.Context()).Model(&details).Updates(map[string]any{
			"bank_name":   bankName,
			"holder_name": holderName,
			"iban":        iban,
			"updated_at":  now,
		}).Error; errUpdate != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update bank details failed"})
			return
		}
	case errors.Is(errFind, gorm.ErrRecordNotFound):
		details = models.UserBankDetails{
			UserID:     userID,
			BankName:   bankName,
			HolderName: holderName,
			IBAN:       iban,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if errCreate := h.db.WithContext(c.Request.Context()).Create(&details).Error; errCreate != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "save bank details failed"})
			return
		}
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
