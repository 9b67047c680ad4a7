package audit

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ssdinvest/plataforma/internal/models"
	"gorm.io/gorm"
)

// Record stores one admin action. Failures are logged and swallowed so a
// broken audit trail never blocks the action itself.
func Record(ctx context.Context, db *gorm.DB, adminID uint64, action, entity string, entityID uint64) {
	if db == nil || adminID == 0 {
		return
	}
	entry := models.AuditLog{
		AdminID:   adminID,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		CreatedAt: time.Now().UTC(),
	}
	if errCreate := db.WithContext(ctx).Create(&entry).Error; errCreate != nil {
		log.WithError(errCreate).Warn("audit: record failed")
	}
}
