package service

import (
	"context"
	"fmt"
	"time"

	"market_sentry/internal/helper"
	"market_sentry/internal/modules/config"
	"market_sentry/internal/modules/telegram_bot/service/pg"
	"market_sentry/pkg/logger"
)

type Notifier interface {
	Send(ctx context.Context, text string) error
}

type PriceSource interface {
	LastPrice(symbol string) (float64, bool)
}

// Monitor гоняет открытые ручные сделки по последним закрытым ценам
// и шумит, когда доехали до цели или до стопа. Сам ничего не закрывает.
type Monitor struct {
	cfg    *config.Config
	repo   *pg.Transactions
	prices PriceSource
	n      Notifier
}

func NewMonitor(cfg *config.Config, repo *pg.Transactions, prices PriceSource, n Notifier) *Monitor {
	return &Monitor{cfg: cfg, repo: repo, prices: prices, n: n}
}

func (m *Monitor) Run(ctx context.Context) {
	t := time.NewTicker(m.cfg.MonitorInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.Scan(ctx)
		}
	}
}

// Scan — один проход по открытым сделкам.
func (m *Monitor) Scan(ctx context.Context) {
	open, err := m.repo.FindOpen(ctx)
	if err != nil {
		logger.Error("[MONITOR] list open transactions: %v", err)
		return
	}

	for _, trx := range open {
		cur, ok := m.prices.LastPrice(trx.Symbol)
		if !ok {
			continue
		}

		profitPct := helper.PctChange(trx.BuyPrice, cur)

		switch {
		case profitPct >= trx.TargetProfitPct:
			m.notify(ctx, fmt.Sprintf(
				"🚀 SELL ALERT: %s\nProfit target reached: %+.2f%%\nCurrent Price: %g",
				trx.Symbol, profitPct, cur,
			))
		case profitPct <= -trx.StopLossPct:
			m.notify(ctx, fmt.Sprintf(
				"⚠️ STOP LOSS ALERT: %s\nLoss: %.2f%%\nCurrent Price: %g",
				trx.Symbol, profitPct, cur,
			))
		}
	}
}

func (m *Monitor) notify(ctx context.Context, text string) {
	if err := m.n.Send(ctx, text); err != nil {
		logger.Error("[MONITOR] notify: %v", err)
	}
}
