package pg

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"market_sentry/internal/models"
	"market_sentry/pkg/db"
)

// Transactions — учёт ручных сделок. С базой пишем в Postgres,
// без базы (nil-менеджер) живём на карте в памяти — до рестарта.
type Transactions struct {
	db *db.PgTxManager

	mu     sync.Mutex
	mem    map[int64]*models.Transaction
	nextID int64
}

func NewTransactions(txm *db.PgTxManager) *Transactions {
	return &Transactions{
		db:     txm,
		mem:    make(map[int64]*models.Transaction),
		nextID: 1,
	}
}

func (r *Transactions) Create(ctx context.Context, trx *models.Transaction) (err error) {
	defer func() {
		if err != nil {
			err = errors.Wrap(err, "pg.Transactions.Create")
		}
	}()

	if r.db == nil {
		r.mu.Lock()
		defer r.mu.Unlock()
		trx.ID = r.nextID
		r.nextID++
		cp := *trx
		r.mem[trx.ID] = &cp
		return nil
	}

	return r.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		return tx.QueryRow(ctxTx,
			`INSERT INTO transactions
			   (symbol, buy_price, nominal, quantity, target_profit_pct, stop_loss_pct, status, buy_time)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 RETURNING id`,
			trx.Symbol, trx.BuyPrice, trx.Nominal, trx.Quantity,
			trx.TargetProfitPct, trx.StopLossPct, trx.Status, trx.BuyTime,
		).Scan(&trx.ID)
	})
}

func (r *Transactions) FindOpen(ctx context.Context) (out []*models.Transaction, err error) {
	defer func() {
		if err != nil {
			err = errors.Wrap(err, "pg.Transactions.FindOpen")
		}
	}()

	if r.db == nil {
		r.mu.Lock()
		defer r.mu.Unlock()
		for _, trx := range r.mem {
			if trx.Status == models.TransactionOpen {
				cp := *trx
				out = append(out, &cp)
			}
		}
		return out, nil
	}

	rows, err := r.db.Conn().Query(ctx,
		`SELECT id, symbol, buy_price, nominal, quantity, target_profit_pct, stop_loss_pct, status, buy_time
		 FROM transactions WHERE status = $1 ORDER BY buy_time`,
		models.TransactionOpen,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var trx models.Transaction
		if err := rows.Scan(
			&trx.ID, &trx.Symbol, &trx.BuyPrice, &trx.Nominal, &trx.Quantity,
			&trx.TargetProfitPct, &trx.StopLossPct, &trx.Status, &trx.BuyTime,
		); err != nil {
			return nil, err
		}
		out = append(out, &trx)
	}
	return out, rows.Err()
}

func (r *Transactions) FindOpenBySymbol(ctx context.Context, symbol string) (*models.Transaction, error) {
	open, err := r.FindOpen(ctx)
	if err != nil {
		return nil, err
	}
	for _, trx := range open {
		if trx.Symbol == symbol {
			return trx, nil
		}
	}
	return nil, nil
}

func (r *Transactions) MarkSold(ctx context.Context, id int64, sellPrice float64, at time.Time) (err error) {
	defer func() {
		if err != nil {
			err = errors.Wrap(err, "pg.Transactions.MarkSold")
		}
	}()

	if r.db == nil {
		r.mu.Lock()
		defer r.mu.Unlock()
		trx, ok := r.mem[id]
		if !ok {
			return errors.Errorf("transaction %d not found", id)
		}
		trx.Status = models.TransactionSold
		trx.SellPrice = sellPrice
		trx.SellTime = &at
		return nil
	}

	return r.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx,
			`UPDATE transactions SET status = $1, sell_price = $2, sell_time = $3 WHERE id = $4`,
			models.TransactionSold, sellPrice, at, id,
		)
		return err
	})
}
