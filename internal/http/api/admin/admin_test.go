package admin

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
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ssdinvest/plataforma/internal/config"
	"github.com/ssdinvest/plataforma/internal/db"
	"github.com/ssdinvest/plataforma/internal/ledger"
	"github.com/ssdinvest/plataforma/internal/models"
	"github.com/ssdinvest/plataforma/internal/security"
)

func setupAdminRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:admin_routes_%d?mode=memory&cache=shared", time.Now().UnixNano())
	conn, errOpen := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate db: %v", errMigrate)
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	jwtCfg := config.JWTConfig{Secret: "test-secret", Expiry: time.Hour}
	RegisterAdminRoutes(router, conn, jwtCfg, ledger.New(conn))
	return router, conn
}

func seedAdmin(t *testing.T, conn *gorm.DB, username string, superAdmin bool, grants []string) *models.Admin {
	t.Helper()
	hash, errHash := security.HashPassword("secret")
	if errHash != nil {
		t.Fatalf("hash password: %v", errHash)
	}
	encoded, errMarshal := json.Marshal(grants)
	if errMarshal != nil {
		t.Fatalf("marshal grants: %v", errMarshal)
	}
	admin := models.Admin{
		Username:     username,
		Password:     hash,
		Active:       true,
		IsSuperAdmin: superAdmin,
		Permissions:  datatypes.JSON(encoded),
	}
	if errCreate := conn.Create(&admin).Error; errCreate != nil {
		t.Fatalf("create admin: %v", errCreate)
	}
	return &admin
}

func loginAdmin(t *testing.T, router *gin.Engine, username string) string {
	t.Helper()
	body, _ := json.Marshal(gin.H{"username": username, "password": "secret"})
	req := httptest.NewRequest(http.MethodPost, "/v0/admin/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}
	var out map[string]any
	if errDecode := json.Unmarshal(rec.Body.Bytes(), &out); errDecode != nil {
		t.Fatalf("decode login response: %v", errDecode)
	}
	token, _ := out["token"].(string)
	if token == "" {
		t.Fatal("login returned no token")
	}
	return token
}

func doAuthed(router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(nil))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAdminRoutesRequireToken(t *testing.T) {
	router, _ := setupAdminRouter(t)

	rec := doAuthed(router, http.MethodGet, "/v0/admin/deposits", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAdminPermissionEnforcement(t *testing.T) {
	router, conn := setupAdminRouter(t)
	seedAdmin(t, conn, "reviewer", false, []string{"deposits:list"})
	token := loginAdmin(t, router, "reviewer")

	if rec := doAuthed(router, http.MethodGet, "/v0/admin/deposits", token); rec.Code != http.StatusOK {
		t.Fatalf("granted route status = %d, body %s", rec.Code, rec.Body.String())
	}
	if rec := doAuthed(router, http.MethodGet, "/v0/admin/users", token); rec.Code != http.StatusForbidden {
		t.Fatalf("ungranted route status = %d, want 403", rec.Code)
	}
	// Routes without a permission definition pass for any authenticated admin.
	if rec := doAuthed(router, http.MethodGet, "/v0/admin/permissions", token); rec.Code != http.StatusOK {
		t.Fatalf("unmapped route status = %d, want 200", rec.Code)
	}
}

func TestSuperAdminBypassesPermissions(t *testing.T) {
	router, conn := setupAdminRouter(t)
	seedAdmin(t, conn, "root", true, nil)
	token := loginAdmin(t, router, "root")

	for _, path := range []string{"/v0/admin/deposits", "/v0/admin/users", "/v0/admin/settings"} {
		if rec := doAuthed(router, http.MethodGet, path, token); rec.Code != http.StatusOK {
			t.Errorf("path %s: status = %d, body %s", path, rec.Code, rec.Body.String())
		}
	}
}

func TestDisabledAdminCannotLogin(t *testing.T) {
	router, conn := setupAdminRouter(t)
	admin := seedAdmin(t, conn, "former", false, nil)
	if errUpdate := conn.Model(admin).Update("active", false).Error; errUpdate != nil {
		t.Fatalf("disable admin: %v", errUpdate)
	}

	body, _ := json.Marshal(gin.H{"username": "former", "password": "secret"})
	req := httptest.NewRequest(http.MethodPost, "/v0/admin/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestDisabledAdminTokenRejected(t *testing.T) {
	router, conn := setupAdminRouter(t)
	admin := seedAdmin(t, conn, "leaving", true, nil)
	token := loginAdmin(t, router, "leaving")

	if errUpdate := conn.Model(admin).Update("active", false).Error; errUpdate != nil {
		t.Fatalf("disable admin: %v", errUpdate)
	}

	rec := doAuthed(router, http.MethodGet, "/v0/admin/deposits", token)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}
