package universe

import (
	"context"

	"go.uber.org/fx"

	"market_sentry/internal/exchange"
	healthsvc "market_sentry/internal/modules/health/service"
	tgsvc "market_sentry/internal/modules/telegram_bot/service"
	"market_sentry/internal/modules/universe/service"
	"market_sentry/internal/modules/universe/service/pg"
)

func Module() fx.Option {
	return fx.Module("universe",
		fx.Provide(
			exchange.NewBinanceClient,
			pg.NewTopSymbols,
			func(t *tgsvc.Telegram) service.ServiceNotifier { return t },
			service.NewUniverse,
		),
		fx.Invoke(func(
			lc fx.Lifecycle,
			ctx context.Context,
			u *service.Universe,
			state *healthsvc.State,
		) {
			lc.Append(fx.Hook{
				OnStart: func(startCtx context.Context) error {
					// первый прогон синхронно: стримеру нужен непустой watchlist
					_ = u.Refresh(startCtx)
					state.SetReady(len(u.Symbols()) > 0)
					go u.RunScheduler(ctx)
					return nil
				},
			})
		}),
	)
}
