package app

import (
	"context"
	"time"

	"github.com/Egor213/RBACPanel/internal/service"
	log "github.com/sirupsen/logrus"
)

// runAlertMonitor takes an alert snapshot every interval until ctx is done.
func runAlertMonitor(ctx context.Context, alerts *service.AlertService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			raised, err := alerts.Snapshot(ctx)
			if err != nil {
				log.WithField("error", err).Warn("Alert snapshot incomplete")
			}
			log.WithField("alerts", len(raised)).Debug("Alert snapshot taken")
		}
	}
}
