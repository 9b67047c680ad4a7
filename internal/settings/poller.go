package settings

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const defaultPollInterval = 3 * time.Minute

// Poller periodically reloads the settings snapshot from the database so
// updates made by another instance become visible without a restart.
type Poller struct {
	db       *gorm.DB
	interval time.Duration
}

// NewPoller constructs a Poller with the default interval.
func NewPoller(db *gorm.DB) *Poller {
	if db == nil {
		return nil
	}
	return &Poller{db: db, interval: defaultPollInterval}
}

// Start launches the refresh loop in a background goroutine.
func (p *Poller) Start(ctx context.Context) {
	if p == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	go p.run(ctx)
	log.Infof("settings poller started (interval=%s)", p.interval)
}

func (p *Poller) run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if errRefresh := RefreshSnapshot(ctx, p.db); errRefresh != nil {
				log.WithError(errRefresh).Warn("settings poller: refresh failed")
			}
		}
	}
}
