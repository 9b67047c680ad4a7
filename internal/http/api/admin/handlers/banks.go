package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ssdinvest/plataforma/internal/audit"
	"github.com/ssdinvest/plataforma/internal/models"
	"gorm.io/gorm"
)

// BankAdminHandler manages platform receiving accounts.
type BankAdminHandler struct {
	db *gorm.DB
}

// NewBankAdminHandler constructs a BankAdminHandler.
func NewBankAdminHandler(db *gorm.DB) *BankAdminHandler {
	return &BankAdminHandler{db: db}
}

// List returns all platform banks.
func (h *BankAdminHandler) List(c *gin.Context) {
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

// bankRequest defines the request body for bank create and update.
type bankRequest struct {
	BankName   string `json:"bank_name"`
	HolderName string `json:"holder_name"`
	IBAN       string `json:"iban"`
}

func (body *bankRequest) validate() (bankName, holderName, iban string, err error) {
	bankName = strings.TrimSpace(body.BankName)
	holderName = strings.TrimSpace(body.HolderName)
	iban = strings.TrimSpace(body.IBAN)
	if bankName == "" || holderName == "" || iban == "" {
		return "", "", "", errors.New("missing required fields")
	}
	return bankName, holderName, iban, nil
}

// Create adds a platform bank.
func (h *BankAdminHandler) Create(c *gin.Context) {
	var body bankRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	bankName, holderName, iban, errValidate := body.validate()
	if errValidate != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errValidate.Error()})
		return
	}

	now := time.Now().UTC()
	bank := models.PlatformBank{
		BankName:   bankName,
		HolderName: holderName,
		IBAN:       iban,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&bank).Error; errCreate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create bank failed"})
		return
	}
	audit.Record(c.Request.Context(), h.db, getAdminID(c), "bank.create", "bank", bank.ID)
	c.JSON(http.StatusCreated, gin.H{"id": bank.ID})
}

// Update replaces a platform bank's fields.
func (h *BankAdminHandler) Update(c *gin.Context) {
	bankID := pathID(c)
	if bankID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bank id"})
		return
	}

	var body bankRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	bankName, holderName, iban, errValidate := body.validate()
	if errValidate != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errValidate.Error()})
		return
	}

	var bank models.PlatformBank
	if errFind := h.db.WithContext(c.Request.Context()).First(&bank, bankID).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "bank not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	if errUpdate := h.db.WithContext(c.Request.Context()).Model(&bank).Updates(map[string]any{
		"bank_name":   bankName,
		"holder_name": holderName,
		"iban":        iban,
		"updated_at":  time.Now().UTC(),
	}).Error; errUpdate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update bank failed"})
		return
	}
	audit.Record(c.Request.Context(), h.db, getAdminID(c), "bank.update", "bank", bank.ID)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Delete removes a platform bank.
func (h *BankAdminHandler) Delete(c *gin.Context) {
	bankID := pathID(c)
	if bankID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bank id"})
		return
	}

	result := h.db.WithContext(c.Request.Context()).Delete(&models.PlatformBank{}, bankID)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete bank failed"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "bank not found"})
		return
	}
	audit.Record(c.Request.Context(), h.db, getAdminID(c), "bank.delete", "bank", bankID)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
