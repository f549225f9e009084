package job

import (
	"context"
	"log/slog"

	"github.com/postplannerhq/postplanner/internal/ratelimit"
)

type RateLimitSweepJob struct {
	store ratelimit.Store
}

func NewRateLimitSweepJob(store ratelimit.Store) *RateLimitSweepJob {
	return &RateLimitSweepJob{
		store: store,
	}
}

func (c *RateLimitSweepJob) Sweep() {
	err := c.store.ResetExpired(context.Background())
	if err != nil {
		slog.Info(err.Error())
	}
}
