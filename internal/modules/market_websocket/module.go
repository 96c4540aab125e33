package market_websocket

import (
	"context"

	"go.uber.org/fx"

	"market_sentry/internal/models"
	"market_sentry/internal/modules/market_websocket/service"
	tgsvc "market_sentry/internal/modules/telegram_bot/service"
	universesvc "market_sentry/internal/modules/universe/service"
)

func Module() fx.Option {
	return fx.Module("market_websocket",
		fx.Provide(
			func(t *tgsvc.Telegram) service.ServiceNotifier { return t },
			func(u *universesvc.Universe) service.Watchlist { return u },
			service.NewClient,
		),
		fx.Invoke(func(
			lc fx.Lifecycle,
			ctx context.Context,
			c *service.Client,
			w service.Watchlist,
			events chan models.MarketEvent,
		) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					go c.Start(ctx, w, events)
					return nil
				},
			})
		}),
	)
}
