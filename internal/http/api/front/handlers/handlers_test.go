package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ssdinvest/plataforma/internal/config"
	"github.com/ssdinvest/plataforma/internal/db"
	"github.com/ssdinvest/plataforma/internal/models"
	"github.com/ssdinvest/plataforma/internal/security"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Expiry: time.Hour}
}

func setupHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:front_handlers_%d?mode=memory&cache=shared", time.Now().UnixNano())
	conn, errOpen := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate db: %v", errMigrate)
	}
	return conn
}

// asUser injects a fixed user ID, standing in for the JWT middleware.
func asUser(userID uint64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
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

func seedUser(t *testing.T, conn *gorm.DB, phone, password, code string) *models.User {
	t.Helper()
	hash, errHash := security.HashPassword(password)
	if errHash != nil {
		t.Fatalf("hash password: %v", errHash)
	}
	user := models.User{
		PhoneNumber:      phone,
		Password:         hash,
		InvitationCode:   code,
		BalanceAvailable: decimal.Zero,
	}
	if errCreate := conn.Create(&user).Error; errCreate != nil {
		t.Fatalf("create user: %v", errCreate)
	}
	return &user
}

func TestRegisterResolvesInviter(t *testing.T) {
	conn := setupHandlerDB(t)
	inviter := seedUser(t, conn, "911111111", "pw", "INVITE0001")

	router := newRouter()
	handler := NewAuthHandler(conn, testJWTConfig())
	router.POST("/register", handler.Register)

	rec := doJSON(t, router, http.MethodPost, "/register", gin.H{
		"phone_number":    "922222222",
		"password":        "secret",
		"invitation_code": "INVITE0001",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var created models.User
	if errFind := conn.Where("phone_number = ?", "922222222").First(&created).Error; errFind != nil {
		t.Fatalf("find created user: %v", errFind)
	}
	if created.InviterID == nil || *created.InviterID != inviter.ID {
		t.Fatalf("inviter id = %v, want %d", created.InviterID, inviter.ID)
	}
	if len(created.InvitationCode) != 10 {
		t.Fatalf("invitation code %q, want 10 chars", created.InvitationCode)
	}
	if created.InvitationCode == "INVITE0001" {
		t.Fatal("new user must get a fresh invitation code")
	}
}

func TestRegisterRejectsUnknownInvitationCode(t *testing.T) {
	conn := setupHandlerDB(t)

	router := newRouter()
	handler := NewAuthHandler(conn, testJWTConfig())
	router.POST("/register", handler.Register)

	rec := doJSON(t, router, http.MethodPost, "/register", gin.H{
		"phone_number":    "922222222",
		"password":        "secret",
		"invitation_code": "NOSUCHCODE",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRegisterRejectsDuplicatePhone(t *testing.T) {
	conn := setupHandlerDB(t)
	seedUser(t, conn, "933333333", "pw", "CODE000001")

	router := newRouter()
	handler := NewAuthHandler(conn, testJWTConfig())
	router.POST("/register", handler.Register)

	rec := doJSON(t, router, http.MethodPost, "/register", gin.H{
		"phone_number": "933333333",
		"password":     "secret",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestLoginIssuesToken(t *testing.T) {
	conn := setupHandlerDB(t)
	seedUser(t, conn, "944444444", "secret", "CODE000002")

	router := newRouter()
	handler := NewAuthHandler(conn, testJWTConfig())
	router.POST("/login", handler.Login)

	rec := doJSON(t, router, http.MethodPost, "/login", gin.H{
		"phone_number": "944444444",
		"password":     "secret",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("expected a token in the response")
	}

	claims, errParse := security.ParseToken(testJWTConfig().Secret, token)
	if errParse != nil {
		t.Fatalf("parse issued token: %v", errParse)
	}
	if claims.PhoneNumber != "944444444" {
		t.Fatalf("token phone = %q", claims.PhoneNumber)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	conn := setupHandlerDB(t)
	seedUser(t, conn, "955555555", "secret", "CODE000003")

	router := newRouter()
	handler := NewAuthHandler(conn, testJWTConfig())
	router.POST("/login", handler.Login)

	rec := doJSON(t, router, http.MethodPost, "/login", gin.H{
		"phone_number": "955555555",
		"password":     "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestLoginRejectsDisabledUser(t *testing.T) {
	conn := setupHandlerDB(t)
	user := seedUser(t, conn, "966666666", "secret", "CODE000004")
	if errUpdate := conn.Model(user).Update("disabled", true).Error; errUpdate != nil {
		t.Fatalf("disable user: %v", errUpdate)
	}

	router := newRouter()
	handler := NewAuthHandler(conn, testJWTConfig())
	router.POST("/login", handler.Login)

	rec := doJSON(t, router, http.MethodPost, "/login", gin.H{
		"phone_number": "966666666",
		"password":     "secret",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}
