package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ssdinvest/plataforma/internal/ledger"
	"github.com/ssdinvest/plataforma/internal/models"
	"gorm.io/gorm"
)

// PrizeHandler handles subsidy prize openings.
type PrizeHandler struct {
	db     *gorm.DB
	ledger *ledger.Ledger
}

// NewPrizeHandler constructs a PrizeHandler.
func NewPrizeHandler(db *gorm.DB, l *ledger.Ledger) *PrizeHandler {
	return &PrizeHandler{db: db, ledger: l}
}

// Status reports whether the user can currently open a prize.
func (h *PrizeHandler) Status(c *gin.Context) {
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
		"can_open_prize":   user.CanOpenPrize,
		"prizes_remaining": user.PrizesRemaining,
	})
}

// Open draws a prize and credits the winning value to the user's balances.
func (h *PrizeHandler) Open(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, errOpen := h.ledger.OpenPrize(c.Request.Context(), userID)
	if errOpen != nil {
		respondLedgerError(c, errOpen)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        result.Status,
		"message":       result.Message,
		"winning_value": result.WinningValue,
	})
}
