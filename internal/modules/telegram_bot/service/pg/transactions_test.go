package pg

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market_sentry/internal/models"
)

// Все тесты гоняют репозиторий в режиме без базы.

func openTrx(symbol string, price float64) *models.Transaction {
	return &models.Transaction{
		Symbol:          symbol,
		BuyPrice:        price,
		Nominal:         100,
		Quantity:        100 / price,
		TargetProfitPct: 5,
		StopLossPct:     3,
		Status:          models.TransactionOpen,
		BuyTime:         time.Now(),
	}
}

func TestTransactionsCreateAssignsIDs(t *testing.T) {
	repo := NewTransactions(nil)
	ctx := context.Background()

	a := openTrx("BTCUSDT", 50000)
	b := openTrx("ETHUSDT", 3000)
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)
}

func TestTransactionsFindOpenSkipsSold(t *testing.T) {
	repo := NewTransactions(nil)
	ctx := context.Background()

	a := openTrx("BTCUSDT", 50000)
	b := openTrx("ETHUSDT", 3000)
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))
	require.NoError(t, repo.MarkSold(ctx, a.ID, 52000, time.Now()))

	open, err := repo.FindOpen(ctx)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "ETHUSDT", open[0].Symbol)
}

func TestTransactionsFindOpenBySymbol(t *testing.T) {
	repo := NewTransactions(nil)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, openTrx("BTCUSDT", 50000)))

	trx, err := repo.FindOpenBySymbol(ctx, "BTCUSDT")
	require.NoError(t, err)
	require.NotNil(t, trx)
	assert.Equal(t, "BTCUSDT", trx.Symbol)

	none, err := repo.FindOpenBySymbol(ctx, "SOLUSDT")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestTransactionsMarkSold(t *testing.T) {
	repo := NewTransactions(nil)
	ctx := context.Background()

	trx := openTrx("BTCUSDT", 50000)
	require.NoError(t, repo.Create(ctx, trx))

	at := time.Now()
	require.NoError(t, repo.MarkSold(ctx, trx.ID, 51500, at))

	open, err := repo.FindOpen(ctx)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestTransactionsMarkSoldUnknownID(t *testing.T) {
	repo := NewTransactions(nil)

	err := repo.MarkSold(context.Background(), 99, 1, time.Now())
	assert.Error(t, err)
}

func TestTransactionsFindOpenReturnsCopies(t *testing.T) {
	repo := NewTransactions(nil)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, openTrx("BTCUSDT", 50000)))

	open, err := repo.FindOpen(ctx)
	require.NoError(t, err)
	open[0].BuyPrice = 1 // мутируем копию

	again, err := repo.FindOpen(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(50000), again[0].BuyPrice)
}
