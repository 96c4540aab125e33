package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market_sentry/internal/models"
	"market_sentry/internal/modules/config"
	"market_sentry/internal/modules/telegram_bot/service/pg"
)

type stubPrices map[string]float64

func (s stubPrices) LastPrice(symbol string) (float64, bool) {
	p, ok := s[symbol]
	return p, ok
}

type captureNotifier struct {
	sent []string
}

func (c *captureNotifier) Send(_ context.Context, text string) error {
	c.sent = append(c.sent, text)
	return nil
}

func newTestMonitor(t *testing.T, prices stubPrices) (*Monitor, *pg.Transactions, *captureNotifier) {
	t.Helper()
	cfg := &config.Config{MonitorInterval: time.Minute}
	repo := pg.NewTransactions(nil)
	n := &captureNotifier{}
	return NewMonitor(cfg, repo, prices, n), repo, n
}

func record(t *testing.T, repo *pg.Transactions, symbol string, buy, target, stop float64) {
	t.Helper()
	err := repo.Create(context.Background(), &models.Transaction{
		Symbol:          symbol,
		BuyPrice:        buy,
		Nominal:         100,
		Quantity:        100 / buy,
		TargetProfitPct: target,
		StopLossPct:     stop,
		Status:          models.TransactionOpen,
		BuyTime:         time.Now(),
	})
	require.NoError(t, err)
}

func TestMonitorAlertsOnProfitTarget(t *testing.T) {
	m, repo, n := newTestMonitor(t, stubPrices{"BTCUSDT": 106})
	record(t, repo, "BTCUSDT", 100, 5, 3)

	m.Scan(context.Background())

	require.Len(t, n.sent, 1)
	assert.True(t, strings.HasPrefix(n.sent[0], "🚀 SELL ALERT"), n.sent[0])
	assert.Contains(t, n.sent[0], "BTCUSDT")
}

func TestMonitorAlertsOnStopLoss(t *testing.T) {
	m, repo, n := newTestMonitor(t, stubPrices{"ETHUSDT": 96})
	record(t, repo, "ETHUSDT", 100, 5, 3)

	m.Scan(context.Background())

	require.Len(t, n.sent, 1)
	assert.True(t, strings.HasPrefix(n.sent[0], "⚠️ STOP LOSS ALERT"), n.sent[0])
}

func TestMonitorQuietInsideBand(t *testing.T) {
	m, repo, n := newTestMonitor(t, stubPrices{"BTCUSDT": 101})
	record(t, repo, "BTCUSDT", 100, 5, 3)

	m.Scan(context.Background())

	assert.Empty(t, n.sent)
}

func TestMonitorSkipsSymbolsWithoutPrice(t *testing.T) {
	m, repo, n := newTestMonitor(t, stubPrices{})
	record(t, repo, "SOLUSDT", 100, 5, 3)

	m.Scan(context.Background())

	assert.Empty(t, n.sent)
}

func TestMonitorNeverClosesTransactions(t *testing.T) {
	m, repo, _ := newTestMonitor(t, stubPrices{"BTCUSDT": 110})
	record(t, repo, "BTCUSDT", 100, 5, 3)

	m.Scan(context.Background())

	open, err := repo.FindOpen(context.Background())
	require.NoError(t, err)
	assert.Len(t, open, 1)
}
