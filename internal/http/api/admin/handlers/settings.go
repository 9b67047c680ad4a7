package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ssdinvest/plataforma/internal/audit"
	"github.com/ssdinvest/plataforma/internal/models"
	"github.com/ssdinvest/plataforma/internal/settings"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingAdminHandler manages platform settings. Updates are written to the
// settings table and the in-memory snapshot is refreshed in the same request
// so engines see the new values immediately.
type SettingAdminHandler struct {
	db *gorm.DB
}

// NewSettingAdminHandler constructs a SettingAdminHandler.
func NewSettingAdminHandler(db *gorm.DB) *SettingAdminHandler {
	return &SettingAdminHandler{db: db}
}

// Get returns all stored settings.
func (h *SettingAdminHandler) Get(c *gin.Context) {
	var rows []models.Setting
	if errFind := h.db.WithContext(c.Request.Context()).Order("key ASC").Find(&rows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	out := make(map[string]json.RawMessage, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	c.JSON(http.StatusOK, gin.H{"settings": out})
}

// updateSettingsRequest defines the request body for settings updates.
type updateSettingsRequest struct {
	Settings map[string]json.RawMessage `json:"settings"`
}

// Update upserts the given settings and refreshes the snapshot.
func (h *SettingAdminHandler) Update(c *gin.Context) {
	var body updateSettingsRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if len(body.Settings) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no settings given"})
		return
	}

	now := time.Now().UTC()
	errTx := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		for key, value := range body.Settings {
			row := models.Setting{Key: key, Value: value, UpdatedAt: now}
			if errUpsert := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&row).Error; errUpsert != nil {
				return errUpsert
			}
		}
		return nil
	})
	if errTx != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update settings failed"})
		return
	}

	if errRefresh := settings.RefreshSnapshot(c.Request.Context(), h.db); errRefresh != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "refresh settings failed"})
		return
	}

	audit.Record(c.Request.Context(), h.db, getAdminID(c), "settings.update", "setting", 0)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
