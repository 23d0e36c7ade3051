package schedulers

import (
	"context"
	"time"

	"contestbot/internal/services"
)

// RollActivityStats refreshes today's active-user snapshot. Registered
// with cron so the daily_stats row keeps tracking without user traffic.
func RollActivityStats(stats *services.StatsService) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		stats.RollActivity(ctx)
	}
}
