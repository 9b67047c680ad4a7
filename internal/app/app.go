package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/ssdinvest/plataforma/internal/audit"
	"github.com/ssdinvest/plataforma/internal/config"
	"github.com/ssdinvest/plataforma/internal/db"
	"github.com/ssdinvest/plataforma/internal/http/api/admin"
	"github.com/ssdinvest/plataforma/internal/http/api/front"
	"github.com/ssdinvest/plataforma/internal/ledger"
	"github.com/ssdinvest/plataforma/internal/logging"
	"github.com/ssdinvest/plataforma/internal/settings"
	"gorm.io/gorm"
)

// Migrate opens the database and runs migrations.
func Migrate(ctx context.Context, cfg config.AppConfig) error {
	conn, errOpen := db.Open(cfg.Database)
	if errOpen != nil {
		return errOpen
	}
	return db.Migrate(conn)
}

// RunServer boots the platform API server and blocks until ctx is canceled
// or the listener fails.
func RunServer(ctx context.Context, cfg config.AppConfig) error {
	logging.Setup(cfg.Log)

	conn, errOpen := db.Open(cfg.Database)
	if errOpen != nil {
		return errOpen
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		return errMigrate
	}
	if errRefresh := settings.RefreshSnapshot(ctx, conn); errRefresh != nil {
		return errRefresh
	}
	settings.NewPoller(conn).Start(ctx)
	audit.NewRetentionCleaner(conn).Start(ctx)

	engine := buildEngine(conn, cfg)

	server := &http.Server{
		Addr:              cfg.Listen,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", cfg.Listen)
		if errServe := server.ListenAndServe(); errServe != nil && !errors.Is(errServe, http.ErrServerClosed) {
			errCh <- errServe
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case errServe := <-errCh:
		return errServe
	}
}

// buildEngine wires the gin engine with all route groups.
func buildEngine(conn *gorm.DB, cfg config.AppConfig) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger())

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	l := ledger.New(conn)
	front.RegisterFrontRoutes(engine, conn, cfg.JWT, l)
	admin.RegisterAdminRoutes(engine, conn, cfg.JWT, l)
	return engine
}

// requestLogger logs each request with method, path, status and latency.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Info("request")
	}
}
