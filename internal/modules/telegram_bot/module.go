package telegram

import (
	"context"

	"go.uber.org/fx"

	enginesvc "market_sentry/internal/modules/engine/service"
	"market_sentry/internal/modules/telegram_bot/service"
	"market_sentry/internal/modules/telegram_bot/service/pg"
)

func Module() fx.Option {
	return fx.Module("telegram",
		// 1. Репозиторий сделок
		fx.Provide(
			pg.NewTransactions,
		),

		// 2. Сервис Telegram как *service.Telegram
		fx.Provide(
			service.NewTelegram,
		),

		// 3. Адаптер: *service.Telegram -> движковый Notifier
		fx.Provide(
			func(t *service.Telegram) enginesvc.Notifier {
				return t
			},
		),

		// цены для /buy и /status подвязываем после сборки графа
		fx.Invoke(func(t *service.Telegram, e *enginesvc.Engine) {
			t.SetPriceSource(e)
		}),

		// запуск long-polling через Lifecycle
		fx.Invoke(func(lc fx.Lifecycle, ctx context.Context, t *service.Telegram) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					t.Start(ctx)
					return nil
				},
				OnStop: func(ctx context.Context) error {
					t.Stop()
					return nil
				},
			})
		}),
	)
}
