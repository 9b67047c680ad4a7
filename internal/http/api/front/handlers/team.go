package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ssdinvest/plataforma/internal/ledger"
	"github.com/ssdinvest/plataforma/internal/util"
)

// TeamHandler handles the referral team and income pages.
type TeamHandler struct {
	ledger *ledger.Ledger
}

// NewTeamHandler constructs a TeamHandler.
func NewTeamHandler(l *ledger.Ledger) *TeamHandler {
	return &TeamHandler{ledger: l}
}

// List returns the users invited by the current user.
func (h *TeamHandler) List(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	members, errTeam := h.ledger.Team(c.Request.Context(), userID)
	if errTeam != nil {
		respondLedgerError(c, errTeam)
		return
	}

	out := make([]gin.H, 0, len(members))
	for _, member := range members {
		out = append(out, gin.H{
			"name":             member.Name,
			"phone_number":     util.MaskPhoneNumber(member.PhoneNumber),
			"has_active_level": member.HasActiveLevel,
		})
	}
	c.JSON(http.StatusOK, gin.H{"team": out})
}

// Income returns the current user's earnings summary.
func (h *TeamHandler) Income(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	summary, errIncome := h.ledger.Income(c.Request.Context(), userID)
	if errIncome != nil {
		respondLedgerError(c, errIncome)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"level_name":        summary.LevelName,
		"approved_deposits": summary.ApprovedDeposits,
		"balance_available": summary.BalanceAvailable,
		"balance_subsidy":   summary.BalanceSubsidy,
		"total_withdrawn":   summary.TotalWithdrawn,
	})
}
