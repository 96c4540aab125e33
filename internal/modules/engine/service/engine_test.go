package service

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market_sentry/internal/models"
	"market_sentry/internal/modules/config"
)

type captureNotifier struct {
	sent []string
	err  error
}

func (n *captureNotifier) Send(_ context.Context, text string) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, text)
	return nil
}

func testConfig() *config.Config {
	cfg := &config.Config{
		PriceChangeThreshold:  3,
		VolumeChangeThreshold: 100,
		HistoryLength:         20,
		SignalCooldown:        30 * time.Minute,
		MinSignalScore:        50,
		MaxSignalsPerHour:     5,
		RSIPeriod:             14,
		EMAFast:               12,
		EMASlow:               26,
		BollingerPeriod:       20,
		BollingerK:            2,
	}
	return cfg
}

func newTestEngine(cfg *config.Config, n Notifier, clock *time.Time) *Engine {
	e := NewEngine(cfg, n)
	e.now = func() time.Time { return *clock }
	return e
}

func closedEvent(symbol string, open, high, low, close, volume float64) models.MarketEvent {
	return models.MarketEvent{
		Symbol: symbol, Interval: "5m",
		Open: open, High: high, Low: low, Close: close, Volume: volume,
		Timestamp: time.Now(), IsClosed: true,
	}
}

// базовая свеча + сильный бычий выброс: +5% на четырёхкратном объёме
func feedBuySetup(e *Engine, symbol string) {
	ctx := context.Background()
	e.OnMarketEvent(ctx, closedEvent(symbol, 99, 101, 98, 100, 100))
	e.OnMarketEvent(ctx, closedEvent(symbol, 100, 105.5, 99.25, 105, 400))
}

func TestEngineEmitsBuySignal(t *testing.T) {
	n := &captureNotifier{}
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e := newTestEngine(testConfig(), n, &clock)

	feedBuySetup(e, "BTCUSDT")

	require.Len(t, n.sent, 1)
	assert.Contains(t, n.sent[0], "STRONG BUY SIGNAL")
	assert.Contains(t, n.sent[0], "BTCUSDT")
	assert.Equal(t, int64(1), e.EmittedTotal())
}

func TestEngineIgnoresUnclosedCandles(t *testing.T) {
	n := &captureNotifier{}
	clock := time.Now()
	e := newTestEngine(testConfig(), n, &clock)

	ev := closedEvent("BTCUSDT", 99, 101, 98, 100, 100)
	ev.IsClosed = false
	e.OnMarketEvent(context.Background(), ev)

	assert.Equal(t, 0, e.store.Len("BTCUSDT"))
}

func TestEngineNoSignalOnShortHistory(t *testing.T) {
	n := &captureNotifier{}
	clock := time.Now()
	e := newTestEngine(testConfig(), n, &clock)

	// одна свеча — глубины нет, сигнал невозможен
	e.OnMarketEvent(context.Background(), closedEvent("BTCUSDT", 100, 105.5, 99.25, 105, 400))
	assert.Empty(t, n.sent)
}

func TestEngineCooldownSuppressesResignal(t *testing.T) {
	n := &captureNotifier{}
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e := newTestEngine(testConfig(), n, &clock)

	feedBuySetup(e, "BTCUSDT")
	require.Len(t, n.sent, 1)

	// через 10 минут тот же сетап — кулдаун 30 минут глушит
	clock = clock.Add(10 * time.Minute)
	e.OnMarketEvent(context.Background(), closedEvent("BTCUSDT", 105, 110.8, 104.2, 110.25, 1600))
	assert.Len(t, n.sent, 1)

	// после кулдауна сигнал снова проходит
	clock = clock.Add(25 * time.Minute)
	e.OnMarketEvent(context.Background(), closedEvent("BTCUSDT", 110.25, 116.1, 109.4, 115.8, 6400))
	assert.Len(t, n.sent, 2)
}

func TestEngineDeterministicReplay(t *testing.T) {
	events := []models.MarketEvent{
		closedEvent("BTCUSDT", 99, 101, 98, 100, 100),
		closedEvent("ETHUSDT", 50, 51, 49, 50, 200),
		closedEvent("BTCUSDT", 100, 105.5, 99.25, 105, 400),
		closedEvent("ETHUSDT", 50, 52.75, 49.6, 52.5, 800),
		closedEvent("BTCUSDT", 105, 106, 104, 105.5, 300),
	}

	run := func() []string {
		n := &captureNotifier{}
		clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		e := newTestEngine(testConfig(), n, &clock)
		for _, ev := range events {
			e.OnMarketEvent(context.Background(), ev)
			clock = clock.Add(5 * time.Minute)
		}
		return n.sent
	}

	first := run()
	second := run()
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestEngineSurvivesNotifierFailure(t *testing.T) {
	n := &captureNotifier{err: errors.New("telegram down")}
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e := newTestEngine(testConfig(), n, &clock)

	assert.NotPanics(t, func() {
		feedBuySetup(e, "BTCUSDT")
	})

	// следующая свеча обрабатывается как ни в чём не бывало
	clock = clock.Add(time.Hour)
	e.OnMarketEvent(context.Background(), closedEvent("BTCUSDT", 105.5, 111.4, 104.7, 110.8, 1200))
	assert.Equal(t, int64(2), e.EmittedTotal())
}

func TestEngineTracksLastPrice(t *testing.T) {
	n := &captureNotifier{}
	clock := time.Now()
	e := newTestEngine(testConfig(), n, &clock)

	e.OnMarketEvent(context.Background(), closedEvent("BTCUSDT", 99, 101, 98, 100, 100))
	p, ok := e.LastPrice("BTCUSDT")
	require.True(t, ok)
	assert.Equal(t, 100.0, p)

	_, ok = e.LastPrice("NOPE")
	assert.False(t, ok)
}
