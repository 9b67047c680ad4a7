package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ssdinvest/plataforma/internal/ledger"
	"github.com/ssdinvest/plataforma/internal/models"
	"gorm.io/gorm"
)

// LevelHandler handles the level catalog and rental purchases.
type LevelHandler struct {
	db     *gorm.DB
	ledger *ledger.Ledger
}

// NewLevelHandler constructs a LevelHandler.
func NewLevelHandler(db *gorm.DB, l *ledger.Ledger) *LevelHandler {
	return &LevelHandler{db: db, ledger: l}
}

// List returns the level catalog ordered by price.
func (h *LevelHandler) List(c *gin.Context) {
	var levels []models.Level
	if errFind := h.db.WithContext(c.Request.Context()).Order("minimum_deposit ASC").Find(&levels).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	out := make([]gin.H, 0, len(levels))
	for _, level := range levels {
		out = append(out, gin.H{
			"id":              level.ID,
			"name":            level.Name,
			"minimum_deposit": level.MinimumDeposit,
			"daily_yield":     level.DailyYield,
			"monthly_yield":   level.MonthlyYield(),
			"cycle_days":      level.CycleDays,
			"image_url":       level.ImageURL,
		})
	}
	c.JSON(http.StatusOK, gin.H{"levels": out})
}

// Rent purchases the level named in the path for the current user.
func (h *LevelHandler) Rent(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	levelID, errParse := strconv.ParseUint(c.Param("id"), 10, 64)
	if errParse != nil || levelID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid level id"})
		return
	}

	result, errRent := h.ledger.RentLevel(c.Request.Context(), userID, levelID)
	if errRent != nil {
		respondLedgerError(c, errRent)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  result.Status,
		"message": result.Message,
	})
}

// CurrentRental returns the user's active rental, if any.
func (h *LevelHandler) CurrentRental(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var rental models.LevelRental
	errFind := h.db.WithContext(c.Request.Context()).
		Preload("Level").
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("id DESC").
		First(&rental).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"rental": nil})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	out := gin.H{
		"id":              rental.ID,
		"started_at":      rental.StartedAt,
		"expires_at":      rental.ExpiresAt,
		"last_task_claim": rental.LastTaskClaim,
	}
	if rental.Level != nil {
		out["level"] = gin.H{
			"id":          rental.Level.ID,
			"name":        rental.Level.Name,
			"daily_yield": rental.Level.DailyYield,
		}
	}
	c.JSON(http.StatusOK, gin.H{"rental": out})
}
