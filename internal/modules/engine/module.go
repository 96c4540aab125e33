package engine

import (
	"context"

	"go.uber.org/fx"

	"market_sentry/internal/models"
	"market_sentry/internal/modules/engine/service"
	healthsvc "market_sentry/internal/modules/health/service"
)

// Module — ядро: канал закрытых свечей + движок + последовательный цикл обработки.
// Ровно одна горутина дренит канал, поэтому внутри движка локи не нужны.
func Module() fx.Option {
	return fx.Module("engine",
		fx.Provide(
			func() chan models.MarketEvent {
				return make(chan models.MarketEvent, 1024)
			},
			service.NewEngine,
		),
		fx.Invoke(func(
			lc fx.Lifecycle,
			ctx context.Context,
			e *service.Engine,
			events chan models.MarketEvent,
			state *healthsvc.State,
		) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					go func() {
						for {
							select {
							case <-ctx.Done():
								return
							case ev := <-events:
								state.TouchTick(ev.Timestamp)
								e.OnMarketEvent(ctx, ev)
							}
						}
					}()
					return nil
				},
			})
		}),
	)
}
