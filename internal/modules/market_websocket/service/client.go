package service

import (
	"context"
	"time"

	"github.com/gorilla/websocket"

	"market_sentry/internal/models"
	"market_sentry/internal/modules/config"
	healthsvc "market_sentry/internal/modules/health/service"
	"market_sentry/pkg/logger"
)

type ServiceNotifier interface {
	SendService(ctx context.Context, format string, args ...any)
}

type Watchlist interface {
	Symbols() []string
}

// Client — стример klines с Binance: один WebSocket на весь watchlist
// через combined-stream endpoint.
type Client struct {
	cfg   *config.Config
	n     ServiceNotifier
	state *healthsvc.State

	wsDialer *websocket.Dialer
}

func NewClient(cfg *config.Config, n ServiceNotifier, state *healthsvc.State) *Client {
	return &Client{
		cfg:      cfg,
		n:        n,
		state:    state,
		wsDialer: &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
	}
}

// Start берёт watchlist и гонит закрытые свечи в out, пока жив ctx.
func (c *Client) Start(ctx context.Context, w Watchlist, out chan<- models.MarketEvent) {
	syms := w.Symbols()
	if len(syms) == 0 {
		if c.n != nil {
			c.n.SendService(ctx, "⚠️ Рынок: watchlist пуст — стример не запущен.")
		}
		logger.Error("[WS] empty watchlist, streamer not started")
		return
	}

	interval := c.cfg.KlineInterval
	if c.n != nil {
		c.n.SendService(ctx,
			"🚀 Binance: WebSocket-стример запущен\n• Таймфрейм: %s\n• Инструментов: %d",
			interval, len(syms),
		)
	}

	events := c.StreamKlines(ctx, syms, interval)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				if c.n != nil {
					c.n.SendService(ctx, "❌ Рынок: kline-поток %s закрыт", interval)
				}
				return
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}
}
