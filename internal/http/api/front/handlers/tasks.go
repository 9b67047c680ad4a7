package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ssdinvest/plataforma/internal/ledger"
	"github.com/ssdinvest/plataforma/internal/models"
	"gorm.io/gorm"
)

// TaskHandler handles daily task claims and history.
type TaskHandler struct {
	db     *gorm.DB
	ledger *ledger.Ledger
}

// NewTaskHandler constructs a TaskHandler.
func NewTaskHandler(db *gorm.DB, l *ledger.Ledger) *TaskHandler {
	return &TaskHandler{db: db, ledger: l}
}

// Claim credits the daily yield for every eligible rental.
func (h *TaskHandler) Claim(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, errClaim := h.ledger.ClaimDailyTasks(c.Request.Context(), userID)
	if errClaim != nil {
		respondLedgerError(c, errClaim)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         result.Status,
		"message":        result.Message,
		"total_credited": result.TotalCredited,
	})
}

// List returns the user's task claim history, newest first.
func (h *TaskHandler) List(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var records []models.TaskRecord
	if errFind := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(100).
		Find(&records).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	out := make([]gin.H, 0, len(records))
	for _, record := range records {
		out = append(out, gin.H{
			"id":         record.ID,
			"rental_id":  record.RentalID,
			"yield":      record.Yield,
			"created_at": record.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"tasks": out})
}
