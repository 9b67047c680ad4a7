package front

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ssdinvest/plataforma/internal/config"
	"github.com/ssdinvest/plataforma/internal/http/api/front/handlers"
	"github.com/ssdinvest/plataforma/internal/ledger"
	"github.com/ssdinvest/plataforma/internal/models"
	"github.com/ssdinvest/plataforma/internal/security"
	"gorm.io/gorm"
)

// RegisterFrontRoutes registers public and authenticated front-end routes.
func RegisterFrontRoutes(r *gin.Engine, db *gorm.DB, jwtCfg config.JWTConfig, l *ledger.Ledger) {
	if r == nil || db == nil {
		return
	}

	front := r.Group("/v0/front")

	authHandler := handlers.NewAuthHandler(db, jwtCfg)
	front.POST("/register", authHandler.Register)
	front.POST("/login", authHandler.Login)
	front.GET("/config", handlers.GetPublicConfig)

	authed := front.Group("")
	authed.Use(userAuthMiddleware(db, jwtCfg))

	profileHandler := handlers.NewProfileHandler(db)
	authed.GET("/profile", profileHandler.Get)
	authed.PUT("/profile/password", profileHandler.ChangePassword)
	authed.GET("/profile/bank-details", profileHandler.GetBankDetails)
	authed.PUT("/profile/bank-details", profileHandler.SaveBankDetails)

	depositHandler := handlers.NewDepositHandler(db)
	authed.GET("/banks", depositHandler.ListPlatformBanks)
	authed.POST("/deposits", depositHandler.Create)
	authed.GET("/deposits", depositHandler.List)

	withdrawalHandler := handlers.NewWithdrawalHandler(db, l)
	authed.POST("/withdrawals", withdrawalHandler.Create)
	authed.GET("/withdrawals", withdrawalHandler.List)

	levelHandler := handlers.NewLevelHandler(db, l)
	authed.GET("/levels", levelHandler.List)
	authed.POST("/levels/:id/rent", levelHandler.Rent)
	authed.GET("/rental", levelHandler.CurrentRental)

	taskHandler := handlers.NewTaskHandler(db, l)
	authed.POST("/tasks/claim", taskHandler.Claim)
	authed.GET("/tasks", taskHandler.List)

	prizeHandler := handlers.NewPrizeHandler(db, l)
	authed.GET("/prizes/status", prizeHandler.Status)
	authed.POST("/prizes/open", prizeHandler.Open)

	teamHandler := handlers.NewTeamHandler(l)
	authed.GET("/team", teamHandler.List)
	authed.GET("/income", teamHandler.Income)
}

// userAuthMiddleware validates user JWTs and loads the user into context.
func userAuthMiddleware(db *gorm.DB, jwtCfg config.JWTConfig) gin.HandlerFunc {
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

		claims, errJWT := security.ParseToken(jwtCfg.Secret, token)
		if errJWT != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		var user models.User
		if errFind := db.WithContext(c.Request.Context()).First(&user, claims.UserID).Error; errFind != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}
		if user.Disabled {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "user disabled"})
			return
		}

		c.Set("userID", user.ID)
		c.Next()
	}
}
