package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ssdinvest/plataforma/internal/db"
	"github.com/ssdinvest/plataforma/internal/models"
)

func setupAdminDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:admin_handlers_%d?mode=memory&cache=shared", time.Now().UnixNano())
	conn, errOpen := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate db: %v", errMigrate)
	}
	return conn
}

// asAdmin injects a fixed admin ID, standing in for the JWT middleware.
func asAdmin(adminID uint64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("adminID", adminID)
		c.Next()
	}
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, errMarshal := json.Marshal(body)
		if errMarshal != nil {
			t.Fatalf("marshal body: %v", errMarshal)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if errDecode := json.Unmarshal(rec.Body.Bytes(), &out); errDecode != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), errDecode)
	}
	return out
}

func seedUser(t *testing.T, conn *gorm.DB, phone, code string) *models.User {
	t.Helper()
	user := models.User{
		PhoneNumber:      phone,
		Password:         "x",
		InvitationCode:   code,
		BalanceAvailable: decimal.Zero,
	}
	if errCreate := conn.Create(&user).Error; errCreate != nil {
		t.Fatalf("create user: %v", errCreate)
	}
	return &user
}

func seedDeposit(t *testing.T, conn *gorm.DB, userID uint64, amount, status string) *models.Deposit {
	t.Helper()
	deposit := models.Deposit{
		UserID:   userID,
		Amount:   decimal.RequireFromString(amount),
		ProofRef: "proof",
		Status:   status,
	}
	if errCreate := conn.Create(&deposit).Error; errCreate != nil {
		t.Fatalf("create deposit: %v", errCreate)
	}
	return &deposit
}

func auditCount(t *testing.T, conn *gorm.DB, action string) int64 {
	t.Helper()
	var count int64
	if errCount := conn.Model(&models.AuditLog{}).Where("action = ?", action).Count(&count).Error; errCount != nil {
		t.Fatalf("count audit rows: %v", errCount)
	}
	return count
}
