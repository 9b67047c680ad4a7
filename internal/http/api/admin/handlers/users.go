package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ssdinvest/plataforma/internal/audit"
	"github.com/ssdinvest/plataforma/internal/db"
	"github.com/ssdinvest/plataforma/internal/models"
	"gorm.io/gorm"
)

// UserAdminHandler handles user management endpoints.
type UserAdminHandler struct {
	db *gorm.DB
}

// NewUserAdminHandler constructs a UserAdminHandler.
func NewUserAdminHandler(db *gorm.DB) *UserAdminHandler {
	return &UserAdminHandler{db: db}
}

// List returns users, optionally filtered by a phone number search.
func (h *UserAdminHandler) List(c *gin.Context) {
	query := h.db.WithContext(c.Request.Context()).Order("id ASC").Limit(200)
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := db.NormalizeLikePattern(h.db, "%"+search+"%")
		query = query.Where(db.CaseInsensitiveLikeExpr(h.db, "phone_number"), pattern)
	}

	var users []models.User
	if errFind := query.Find(&users).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	out := make([]gin.H, 0, len(users))
	for _, user := range users {
		out = append(out, gin.H{
			"id":                user.ID,
			"phone_number":      user.PhoneNumber,
			"username":          user.Username,
			"invitation_code":   user.InvitationCode,
			"inviter_id":        user.InviterID,
			"balance_general":   user.BalanceGeneral,
			"balance_available": user.BalanceAvailable,
			"balance_subsidy":   user.BalanceSubsidy,
			"total_withdrawn":   user.TotalWithdrawn,
			"can_open_prize":    user.CanOpenPrize,
			"prizes_remaining":  user.PrizesRemaining,
			"disabled":          user.Disabled,
			"created_at":        user.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

// grantPrizesRequest defines the request body for granting prize openings.
type grantPrizesRequest struct {
	Count int `json:"count"`
}

// GrantPrizes enables prize openings for a user and resets the counter.
func (h *UserAdminHandler) GrantPrizes(c *gin.Context) {
	userID := pathID(c)
	if userID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var body grantPrizesRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if body.Count <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid count"})
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

	now := time.Now().UTC()
	if errUpdate := h.db.WithContext(c.Request.Context()).Model(&user).Updates(map[string]any{
		"can_open_prize":   true,
		"prizes_remaining": body.Count,
		"last_prize_reset": now,
		"updated_at":       now,
	}).Error; errUpdate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "grant prizes failed"})
		return
	}
	audit.Record(c.Request.Context(), h.db, getAdminID(c), "user.grant-prizes", "user", user.ID)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// setDisabledRequest defines the request body for the disabled flag.
type setDisabledRequest struct {
	Disabled bool `json:"disabled"`
}

// SetDisabled toggles a user's login block.
func (h *UserAdminHandler) SetDisabled(c *gin.Context) {
	userID := pathID(c)
	if userID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var body setDisabledRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
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

	if errUpdate := h.db.WithContext(c.Request.Context()).Model(&user).Updates(map[string]any{
		"disabled":   body.Disabled,
		"updated_at": time.Now().UTC(),
	}).Error; errUpdate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update user failed"})
		return
	}
	audit.Record(c.Request.Context(), h.db, getAdminID(c), "user.set-disabled", "user", user.ID)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
