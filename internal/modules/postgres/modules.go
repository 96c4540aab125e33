package postgres

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"market_sentry/internal/modules/config"
	"market_sentry/pkg/db"
	"market_sentry/pkg/logger"
)

// Module отдаёт *db.PgTxManager. Без DSN менеджер nil —
// репозитории в этом режиме работают в памяти.
func Module() fx.Option {
	return fx.Module("postgres",
		fx.Provide(
			func(ctx context.Context, lc fx.Lifecycle, cfg *config.Config) (*db.PgTxManager, error) {
				if cfg.DB == "" {
					logger.Info("[PG] no DSN configured, running without postgres")
					return (*db.PgTxManager)(nil), nil
				}

				poolMaster, err := db.NewPool(ctx, db.PoolConfig{
					DSN: cfg.DB,
				})
				if err != nil {
					return nil, fmt.Errorf("failed to create poolMaster: %w", err)
				}

				if err = poolMaster.Ping(ctx); err != nil {
					return nil, err
				}

				manager := db.NewPgTxManager(poolMaster)
				lc.Append(fx.Hook{
					OnStop: func(context.Context) error {
						manager.Close()
						return nil
					},
				})
				return manager, nil
			},
		),
	)
}
