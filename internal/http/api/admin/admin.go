package admin

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ssdinvest/plataforma/internal/config"
	"github.com/ssdinvest/plataforma/internal/http/api/admin/handlers"
	permissions "github.com/ssdinvest/plataforma/internal/http/api/admin/permissions"
	"github.com/ssdinvest/plataforma/internal/ledger"
	"github.com/ssdinvest/plataforma/internal/models"
	"github.com/ssdinvest/plataforma/internal/security"
	"gorm.io/gorm"
)

// RegisterAdminRoutes registers back-office routes.
func RegisterAdminRoutes(r *gin.Engine, db *gorm.DB, jwtCfg config.JWTConfig, l *ledger.Ledger) {
	if r == nil || db == nil {
		return
	}

	adminGroup := r.Group("/v0/admin")

	authHandler := handlers.NewAuthHandler(db, jwtCfg)
	adminGroup.POST("/login", authHandler.Login)

	authed := adminGroup.Group("")
	authed.Use(adminAuthMiddleware(db, jwtCfg))
	authed.Use(adminPermissionMiddleware(db))

	permissionHandler := handlers.NewPermissionHandler()
	authed.GET("/permissions", permissionHandler.List)

	depositHandler := handlers.NewDepositAdminHandler(db, l)
	authed.GET("/deposits", depositHandler.List)
	authed.POST("/deposits/:id/approve", depositHandler.Approve)
	authed.POST("/deposits/:id/reject", depositHandler.Reject)

	withdrawalHandler := handlers.NewWithdrawalAdminHandler(db)
	authed.GET("/withdrawals", withdrawalHandler.List)
	authed.POST("/withdrawals/:id/approve", withdrawalHandler.Approve)
	authed.POST("/withdrawals/:id/reject", withdrawalHandler.Reject)

	levelHandler := handlers.NewLevelAdminHandler(db)
	authed.GET("/levels", levelHandler.List)
	authed.POST("/levels", levelHandler.Create)
	authed.PUT("/levels/:id", levelHandler.Update)
	authed.DELETE("/levels/:id", levelHandler.Delete)

	prizeHandler := handlers.NewPrizeAdminHandler(db)
	authed.GET("/prizes", prizeHandler.List)
	authed.POST("/prizes", prizeHandler.Create)
	authed.PUT("/prizes/:id", prizeHandler.Update)
	authed.DELETE("/prizes/:id", prizeHandler.Delete)

	userHandler := handlers.NewUserAdminHandler(db)
	authed.GET("/users", userHandler.List)
	authed.POST("/users/:id/prizes", userHandler.GrantPrizes)
	authed.POST("/users/:id/disabled", userHandler.SetDisabled)

	bankHandler := handlers.NewBankAdminHandler(db)
	authed.GET("/banks", bankHandler.List)
	authed.POST("/banks", bankHandler.Create)
	authed.PUT("/banks/:id", bankHandler.Update)
	authed.DELETE("/banks/:id", bankHandler.Delete)

	settingHandler := handlers.NewSettingAdminHandler(db)
	authed.GET("/settings", settingHandler.Get)
	authed.PUT("/settings", settingHandler.Update)
}

// adminAuthMiddleware validates admin JWTs and loads the admin into context.
func adminAuthMiddleware(db *gorm.DB, jwtCfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}
		token = strings.TrimSpace(token)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "empty token"})
			return
		}

		claims, errJWT := security.ParseAdminToken(jwtCfg.Secret, token)
		if errJWT != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		var admin models.Admin
		if errFind := db.WithContext(c.Request.Context()).First(&admin, claims.AdminID).Error; errFind != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin not found"})
			return
		}
		if !admin.Active {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin account is disabled"})
			return
		}

		c.Set("adminID", admin.ID)
		c.Set("adminPermissions", permissions.ParsePermissions(admin.Permissions))
		c.Set("adminIsSuperAdmin", admin.IsSuperAdmin)
		c.Next()
	}
}

// adminPermissionMiddleware enforces permission checks for admin routes.
// Routes without a definition are reachable by any authenticated admin.
func adminPermissionMiddleware(db *gorm.DB) gin.HandlerFunc {
	permissionMap := permissions.DefinitionMap()

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		path := c.FullPath()
		if path == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "permission denied"})
			return
		}

		key := permissions.Key(c.Request.Method, path)
		if _, ok := permissionMap[key]; !ok {
			c.Next()
			return
		}

		adminIsSuperAdmin, _ := readAdminIsSuperAdminFromContext(c)
		if adminIsSuperAdmin {
			c.Next()
			return
		}

		adminPermissions, _ := readAdminPermissionsFromContext(c)
		if !permissions.HasPermission(adminPermissions, key) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "permission denied"})
			return
		}

		c.Next()
	}
}

// readAdminPermissionsFromContext extracts permissions from the gin context.
func readAdminPermissionsFromContext(c *gin.Context) ([]string, bool) {
	value, ok := c.Get("adminPermissions")
	if !ok {
		return nil, false
	}
	permissionsList, ok := value.([]string)
	return permissionsList, ok
}

// readAdminIsSuperAdminFromContext extracts the super admin flag from context.
func readAdminIsSuperAdminFromContext(c *gin.Context) (bool, bool) {
	value, ok := c.Get("adminIsSuperAdmin")
	if !ok {
		return false, false
	}
	flag, ok := value.(bool)
	return flag, ok
}
