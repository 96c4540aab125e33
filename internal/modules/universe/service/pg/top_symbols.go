package pg

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"market_sentry/internal/models"
	"market_sentry/pkg/db"
)

// TopSymbols — снапшот watchlist в Postgres. Без базы (nil-менеджер) — no-op,
// watchlist живёт только в памяти.
type TopSymbols struct {
	db *db.PgTxManager
}

func NewTopSymbols(txm *db.PgTxManager) *TopSymbols {
	return &TopSymbols{db: txm}
}

// Replace затирает предыдущий снапшот целиком, как и ребилд по расписанию.
func (r *TopSymbols) Replace(ctx context.Context, symbols []models.TopSymbol) (err error) {
	if r.db == nil {
		return nil
	}
	defer func() {
		if err != nil {
			err = errors.Wrap(err, "pg.TopSymbols.Replace")
		}
	}()

	return r.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctxTx, `DELETE FROM top_symbols`); err != nil {
			return err
		}
		for _, s := range symbols {
			_, err := tx.Exec(ctxTx,
				`INSERT INTO top_symbols (symbol, last_price, price_change_pct, quote_volume, updated_at)
				 VALUES ($1, $2, $3, $4, $5)`,
				s.Symbol, s.LastPrice, s.PriceChangePct, s.QuoteVolume, s.UpdatedAt,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Load — последний сохранённый снапшот, на случай старта без биржи.
func (r *TopSymbols) Load(ctx context.Context) (out []models.TopSymbol, err error) {
	if r.db == nil {
		return nil, nil
	}
	defer func() {
		if err != nil {
			err = errors.Wrap(err, "pg.TopSymbols.Load")
		}
	}()

	rows, err := r.db.Conn().Query(ctx,
		`SELECT symbol, last_price, price_change_pct, quote_volume, updated_at
		 FROM top_symbols ORDER BY quote_volume DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var s models.TopSymbol
		if err := rows.Scan(&s.Symbol, &s.LastPrice, &s.PriceChangePct, &s.QuoteVolume, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
