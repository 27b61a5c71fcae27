package main

import (
	"context"
	"log"
	"time"

	"brandoraBack/internal/notify"
	"brandoraBack/internal/services"
)

const (
	orderCleanerInterval = 1 * time.Minute
	orderCleanerTimeout  = 30 * time.Second
)

// startOrderCleaner walks the cached pending-order snapshots on a timer,
// prunes orders whose expiry has passed and pushes a notification for orders
// whose payment window is about to close. Expiry is derived from the cached
// expires_at, no backend call is needed; the snapshots themselves refresh
// whenever their owner next loads the page.
func startOrderCleaner(ctx context.Context, orders *services.OrderService, notifier *notify.Notifier, infoLog, errorLog *log.Logger) {
	if orders == nil {
		return
	}

	go func() {
		ticker := time.NewTicker(orderCleanerInterval)
		defer ticker.Stop()

		runOnce := func() {
			runCtx, cancel := context.WithTimeout(ctx, orderCleanerTimeout)
			defer cancel()

			now := time.Now()
			pruned, notified := 0, 0
			for _, userID := range orders.CachedUserIDs() {
				pruned += orders.PruneExpired(userID, now)
				for _, o := range orders.Snapshot(userID) {
					if !o.IsExpiringSoon(now) {
						continue
					}
					if err := notifier.OrderExpiringSoon(runCtx, o); err != nil {
						if errorLog != nil {
							errorLog.Printf("order cleaner: notify order %s: %v", o.OrderID, err)
						}
						continue
					}
					notified++
				}
			}
			if (pruned > 0 || notified > 0) && infoLog != nil {
				infoLog.Printf("order cleaner: pruned %d expired, notified %d expiring orders", pruned, notified)
			}
		}

		runOnce()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runOnce()
			}
		}
	}()
}
