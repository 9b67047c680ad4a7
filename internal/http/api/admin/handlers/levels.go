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

// LevelAdminHandler manages the level catalog.
type LevelAdminHandler struct {
	db *gorm.DB
}

// NewLevelAdminHandler constructs a LevelAdminHandler.
func NewLevelAdminHandler(db *gorm.DB) *LevelAdminHandler {
	return &LevelAdminHandler{db: db}
}

// List returns all levels ordered by price.
func (h *LevelAdminHandler) List(c *gin.Context) {
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
			"cycle_days":      level.CycleDays,
			"image_url":       level.ImageURL,
		})
	}
	c.JSON(http.StatusOK, gin.H{"levels": out})
}

// levelRequest defines the request body for level create and update.
type levelRequest struct {
	Name           string `json:"name"`
	MinimumDeposit string `json:"minimum_deposit"`
	DailyYield     string `json:"daily_yield"`
	CycleDays      int    `json:"cycle_days"`
	ImageURL       string `json:"image_url"`
}

func (body *levelRequest) validate() (name string, minimum, yield decimal.Decimal, err error) {
	name = strings.TrimSpace(body.Name)
	if name == "" {
		return "", decimal.Zero, decimal.Zero, errors.New("missing name")
	}
	minimum, errMin := decimal.NewFromString(strings.TrimSpace(body.MinimumDeposit))
	if errMin != nil || !minimum.IsPositive() {
		return "", decimal.Zero, decimal.Zero, errors.New("invalid minimum deposit")
	}
	yield, errYield := decimal.NewFromString(strings.TrimSpace(body.DailyYield))
	if errYield != nil || !yield.IsPositive() {
		return "", decimal.Zero, decimal.Zero, errors.New("invalid daily yield")
	}
	if body.CycleDays <= 0 {
		return "", decimal.Zero, decimal.Zero, errors.New("invalid cycle days")
	}
	return name, minimum.Round(2), yield.Round(2), nil
}

// Create adds a level to the catalog.
func (h *LevelAdminHandler) Create(c *gin.Context) {
	var body levelRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	name, minimum, yield, errValidate := body.validate()
	if errValidate != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errValidate.Error()})
		return
	}

	now := time.Now().UTC()
	level := models.Level{
		Name:           name,
		MinimumDeposit: minimum,
		DailyYield:     yield,
		CycleDays:      body.CycleDays,
		ImageURL:       strings.TrimSpace(body.ImageURL),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&level).Error; errCreate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create level failed"})
		return
	}
	audit.Record(c.Request.Context(), h.db, getAdminID(c), "level.create", "level", level.ID)
	c.JSON(http.StatusCreated, gin.H{"id": level.ID})
}

// Update replaces a level's catalog fields.
func (h *LevelAdminHandler) Update(c *gin.Context) {
	levelID := pathID(c)
	if levelID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid level id"})
		return
	}

	var body levelRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	name, minimum, yield, errValidate := body.validate()
	if errValidate != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errValidate.Error()})
		return
	}

	var level models.Level
	if errFind := h.db.WithContext(c.Request.Context()).First(&level, levelID).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "level not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	if errUpdate := h.db.WithContext(c.Request.Context()).Model(&level).Updates(map[string]any{
		"name":            name,
		"minimum_deposit": minimum,
		"daily_yield":     yield,
		"cycle_days":      body.CycleDays,
		"image_url":       strings.TrimSpace(body.ImageURL),
		"updated_at":      time.Now().UTC(),
	}).Error; errUpdate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update level failed"})
		return
	}
	audit.Record(c.Request.Context(), h.db, getAdminID(c), "level.update", "level", level.ID)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Delete removes a level that has no rentals.
func (h *LevelAdminHandler) Delete(c *gin.Context) {
	levelID := pathID(c)
	if levelID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid level id"})
		return
	}

	var rentalCount int64
	if errCount := h.db.WithContext(c.Request.Context()).Model(&models.LevelRental{}).
		Where("level_id = ?", levelID).Count(&rentalCount).Error; errCount != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	if rentalCount > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "level has rentals"})
		return
	}

	result := h.db.WithContext(c.Request.Context()).Delete(&models.Level{}, levelID)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete level failed"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "level not found"})
		return
	}
	audit.Record(c.Request.Context(), h.db, getAdminID(c), "level.delete", "level", levelID)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
