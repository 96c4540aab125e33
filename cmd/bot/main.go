package main

import (
	"context"
	"log"

	"go.uber.org/fx"

	"market_sentry/internal/modules/config"
	"market_sentry/internal/modules/engine"
	"market_sentry/internal/modules/health"
	"market_sentry/internal/modules/market_websocket"
	"market_sentry/internal/modules/monitor"
	"market_sentry/internal/modules/postgres"
	telegram "market_sentry/internal/modules/telegram_bot"
	"market_sentry/internal/modules/universe"
	"market_sentry/pkg/logger"
	"market_sentry/pkg/tracing"
)

func main() {
	if err := logger.Init(); err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	app := fx.New(
		fx.Provide(
			// общий контекст приложения, гасим фоновые циклы на остановке
			func(lc fx.Lifecycle) context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				lc.Append(fx.Hook{
					OnStop: func(context.Context) error {
						cancel()
						return nil
					},
				})
				return ctx
			},
		),
		config.Module(),
		postgres.Module(),
		telegram.Module(),
		engine.Module(),
		universe.Module(),
		market_websocket.Module(),
		monitor.Module(),
		health.Module(),
		fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config) error {
			_, closeTracer, err := tracing.InitTracer(tracing.Config{
				Host: cfg.Jaeger.Host,
				Port: cfg.Jaeger.Port,
			})
			if err != nil {
				logger.Error("[TRACING] init: %v", err)
				return nil
			}
			lc.Append(fx.Hook{
				OnStop: func(context.Context) error {
					closeTracer()
					return nil
				},
			})
			return nil
		}),
	)
	app.Run()
}
