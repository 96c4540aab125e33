package monitor

import (
	"context"

	"go.uber.org/fx"

	enginesvc "market_sentry/internal/modules/engine/service"
	"market_sentry/internal/modules/monitor/service"
	tgsvc "market_sentry/internal/modules/telegram_bot/service"
)

func Module() fx.Option {
	return fx.Module("monitor",
		// адаптеры: цены из движка, уведомления через телеграм
		fx.Provide(
			func(e *enginesvc.Engine) service.PriceSource { return e },
			func(t *tgsvc.Telegram) service.Notifier { return t },
			service.NewMonitor,
		),
		fx.Invoke(func(lc fx.Lifecycle, ctx context.Context, m *service.Monitor) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					go m.Run(ctx)
					return nil
				},
			})
		}),
	)
}
