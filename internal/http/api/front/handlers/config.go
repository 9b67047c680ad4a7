package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ssdinvest/plataforma/internal/settings"
)

// GetPublicConfig returns the public platform configuration served to the
// front end before login.
func GetPublicConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"whatsapp_group_url": settings.StringValue(settings.WhatsAppGroupURLKey, ""),
		"telegram_group_url": settings.StringValue(settings.TelegramGroupURLKey, ""),
	})
}
