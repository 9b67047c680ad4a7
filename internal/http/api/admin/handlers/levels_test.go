package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ssdinvest/plataforma/internal/models"
)

func TestLevelCreateAndUpdate(t *testing.T) {
	conn := setupAdminDB(t)

	router := newRouter()
	handler := NewLevelAdminHandler(conn)
	router.POST("/levels", asAdmin(2), handler.Create)
	router.PUT("/levels/:id", asAdmin(2), handler.Update)

	rec := doJSON(t, router, http.MethodPost, "/levels", gin.H{
		"name":            "SSD 1",
		"minimum_deposit": "5000.00",
		"daily_yield":     "150.005",
		"cycle_days":      30,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}

	var level models.Level
	if errFind := conn.Where("name = ?", "SSD 1").First(&level).Error; errFind != nil {
		t.Fatalf("find level: %v", errFind)
	}
	if !level.DailyYield.Equal(decimal.RequireFromString("150.01")) {
		t.Fatalf("daily yield = %s, want rounded 150.01", level.DailyYield)
	}

	rec = doJSON(t, router, http.MethodPut, "/levels/1", gin.H{
		"name":            "SSD 1 Plus",
		"minimum_deposit": "6000.00",
		"daily_yield":     "180.00",
		"cycle_days":      45,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body.String())
	}
	if errFind := conn.First(&level, level.ID).Error; errFind != nil {
		t.Fatalf("reload level: %v", errFind)
	}
	if level.Name != "SSD 1 Plus" || level.CycleDays != 45 {
		t.Fatalf("level after update = %+v", level)
	}
	if got := auditCount(t, conn, "level.update"); got != 1 {
		t.Fatalf("audit rows = %d, want 1", got)
	}
}

func TestLevelCreateValidation(t *testing.T) {
	conn := setupAdminDB(t)

	router := newRouter()
	handler := NewLevelAdminHandler(conn)
	router.POST("/levels", asAdmin(2), handler.Create)

	cases := []gin.H{
		{"name": "", "minimum_deposit": "100", "daily_yield": "1", "cycle_days": 30},
		{"name": "L", "minimum_deposit": "-5", "daily_yield": "1", "cycle_days": 30},
		{"name": "L", "minimum_deposit": "100", "daily_yield": "0", "cycle_days": 30},
		{"name": "L", "minimum_deposit": "100", "daily_yield": "1", "cycle_days": 0},
	}
	for i, body := range cases {
		rec := doJSON(t, router, http.MethodPost, "/levels", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("case %d: status = %d, want 400", i, rec.Code)
		}
	}
}

func TestLevelDeleteBlockedByRentals(t *testing.T) {
	conn := setupAdminDB(t)
	user := seedUser(t, conn, "960000001", "ADMCODE030")

	level := models.Level{
		Name:           "SSD 2",
		MinimumDeposit: decimal.RequireFromString("10000.00"),
		DailyYield:     decimal.RequireFromString("300.00"),
		CycleDays:      30,
	}
	if errCreate := conn.Create(&level).Error; errCreate != nil {
		t.Fatalf("create level: %v", errCreate)
	}
	rental := models.LevelRental{
		UserID:    user.ID,
		LevelID:   level.ID,
		StartedAt: time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(30 * 24 * time.Hour),
		IsActive:  true,
	}
	if errCreate := conn.Create(&rental).Error; errCreate != nil {
		t.Fatalf("create rental: %v", errCreate)
	}

	router := newRouter()
	handler := NewLevelAdminHandler(conn)
	router.DELETE("/levels/:id", asAdmin(2), handler.Delete)

	rec := doJSON(t, router, http.MethodDelete, "/levels/1", nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}

	var count int64
	if errCount := conn.Model(&models.Level{}).Count(&count).Error; errCount != nil {
		t.Fatalf("count levels: %v", errCount)
	}
	if count != 1 {
		t.Fatalf("levels = %d, want 1", count)
	}
}

func TestLevelDeleteUnknownID(t *testing.T) {
	conn := setupAdminDB(t)

	router := newRouter()
	handler := NewLevelAdminHandler(conn)
	router.DELETE("/levels/:id", asAdmin(2), handler.Delete)

	rec := doJSON(t, router, http.MethodDelete, "/levels/42", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
