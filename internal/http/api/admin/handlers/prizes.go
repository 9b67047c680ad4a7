package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/ssdinvest/plataforma/internal/audit"
	"github.com/ssdinvest/plataforma/internal/models"
	"gorm.io/gorm"
)

// PrizeAdminHandler manages the prize catalog.
type PrizeAdminHandler struct {
	db *gorm.DB
}

// NewPrizeAdminHandler constructs a PrizeAdminHandler.
func NewPrizeAdminHandler(db *gorm.DB) *PrizeAdminHandler {
	return &PrizeAdminHandler{db: db}
}

// List returns all prizes in draw order.
func (h *PrizeAdminHandler) List(c *gin.Context) {
	var prizes []models.Prize
	if errFind := h.db.WithContext(c.Request.Context()).Order("chance DESC, id ASC").Find(&prizes).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	out := make([]gin.H, 0, len(prizes))
	for _, prize := range prizes {
		out = append(out, gin.H{
			"id":          prize.ID,
			"value":       prize.Value,
			"chance":      prize.Chance,
			"description": prize.Description,
		})
	}
	c.JSON(http.StatusOK, gin.H{"prizes": out})
}

// prizeRequest defines the request body for prize create and update.
type prizeRequest struct {
	Value       string `json:"value"`
	Chance      string `json:"chance"`
	Description string `json:"description"`
}

func (body *prizeRequest) validate() (value, chance decimal.Decimal, err error) {
	value, errValue := decimal.NewFromString(strings.TrimSpace(body.Value))
	if errValue != nil || !value.IsPositive() {
		return decimal.Zero, decimal.Zero, errors.New("invalid value")
	}
	chance, errChance := decimal.NewFromString(strings.TrimSpace(body.Chance))
	if errChance != nil || !chance.IsPositive() || chance.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.Zero, decimal.Zero, errors.New("invalid chance")
	}
	return value.Round(2), chance.Round(2), nil
}

// Create adds a prize to the catalog.
func (h *PrizeAdminHandler) Create(c *gin.Context) {
	var body prizeRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	value, chance, errValidate := body.validate()
	if errValidate != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errValidate.Error()})
		return
	}

	now := time.Now().UTC()
	prize := models.Prize{
		Value:       value,
		Chance:      chance,
		Description: strings.TrimSpace(body.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&prize).Error; errCreate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create prize failed"})
		return
	}
	audit.Record(c.Request.Context(), h.db, getAdminID(c), "prize.create", "prize", prize.ID)
	c.JSON(http.StatusCreated, gin.H{"id": prize.ID})
}

// Update replaces a prize's fields.
func (h *PrizeAdminHandler) Update(c *gin.Context) {
	prizeID := pathID(c)
	if prizeID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid prize id"})
		return
	}

	var body prizeRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	value, chance, errValidate := body.validate()
	if errValidate != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errValidate.Error()})
		return
	}

	var prize models.Prize
	if errFind := h.db.WithContext(c.Request.Context()).First(&prize, prizeID).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "prize not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	if errUpdate := h.db.WithContext(c.Request.Context()).Model(&prize).Updates(map[string]any{
		"value":       value,
		"chance":      chance,
		"description": strings.TrimSpace(body.Description),
		"updated_at":  time.Now().UTC(),
	}).Error; errUpdate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update prize failed"})
		return
	}
	audit.Record(c.Request.Context(), h.db, getAdminID(c), "prize.update", "prize", prize.ID)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Delete removes a prize from the catalog.
func (h *PrizeAdminHandler) Delete(c *gin.Context) {
	prizeID := pathID(c)
	if prizeID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid prize id"})
		return
	}

	result := h.db.WithContext(c.Request.Context()).Delete(&models.Prize{}, prizeID)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete prize failed"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "prize not found"})
		return
	}
	audit.Record(c.Request.Context(), h.db, getAdminID(c), "prize.delete", "prize", prizeID)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
