package service

import (
	"context"
	"time"
)

// RunScheduler периодически пересобирает watchlist, как только поднялись.
// Первый Refresh делает bootstrap при старте, здесь только периодика.
func (u *Universe) RunScheduler(ctx context.Context) {
	t := time.NewTicker(u.cfg.SchedulerInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			_ = u.Refresh(ctx) // ошибка уже залогирована и разослана внутри
		}
	}
}
