package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/opentracing/opentracing-go"

	"market_sentry/internal/models"
	"market_sentry/internal/modules/config"
	"market_sentry/pkg/logger"
)

// Notifier — единственная исходящая способность движка.
// Доставка, ретраи и транспорт — целиком забота коллаборатора.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// Engine обрабатывает закрытые свечи строго последовательно:
// история → индикаторы → скоринг → кулдаун → квота → нотификация.
// Всё состояние живёт в инстансе и сбрасывается рестартом процесса.
type Engine struct {
	cfg      *config.Config
	store    *HistoryStore
	scorer   *Scorer
	cooldown *CooldownGate
	ledger   *SignalLedger
	notifier Notifier
	periods  Periods

	now func() time.Time

	emitted atomic.Int64

	// последние цены читает монитор сделок из своей горутины
	priceMu    sync.RWMutex
	lastPrices map[string]float64
}

func NewEngine(cfg *config.Config, n Notifier) *Engine {
	return &Engine{
		cfg:      cfg,
		store:    NewHistoryStore(cfg.HistoryLength),
		scorer:   NewScorer(cfg.PriceChangeThreshold, cfg.VolumeChangeThreshold, cfg.MinSignalScore),
		cooldown: NewCooldownGate(cfg.SignalCooldown),
		ledger:   NewSignalLedger(time.Hour, cfg.MaxSignalsPerHour),
		notifier: n,
		periods: Periods{
			RSI:             cfg.RSIPeriod,
			EMAFast:         cfg.EMAFast,
			EMASlow:         cfg.EMASlow,
			BollingerPeriod: cfg.BollingerPeriod,
			BollingerK:      cfg.BollingerK,
		},
		now:        time.Now,
		lastPrices: make(map[string]float64),
	}
}

// OnMarketEvent — один проход по событию фида. Никогда не паникует и не
// валит процесс: плохие данные и недостаток истории — ранние выходы.
func (e *Engine) OnMarketEvent(ctx context.Context, ev models.MarketEvent) {
	if !ev.IsClosed {
		return
	}
	if !e.store.Append(ev.Symbol, ev.Candle()) {
		return
	}

	e.priceMu.Lock()
	e.lastPrices[ev.Symbol] = ev.Close
	e.priceMu.Unlock()

	hist := e.store.History(ev.Symbol)
	if len(hist) < 2 {
		return
	}

	now := e.now()
	snap := ComputeSnapshot(hist, e.periods)
	sig, ok := e.scorer.Evaluate(ev.Symbol, hist, snap, now)
	if !ok {
		return
	}

	if !e.cooldown.Allow(sig.Symbol, now) {
		logger.Info("[ENGINE] %s %s suppressed: cooldown", sig.Symbol, sig.Type)
		return
	}
	if !e.ledger.Admit(sig.Symbol, sig.Score, now) {
		logger.Info("[ENGINE] %s %s suppressed: hourly quota full, score %.0f below window min",
			sig.Symbol, sig.Type, sig.Score)
		return
	}
	e.cooldown.MarkEmitted(sig.Symbol, now)
	e.emitted.Add(1)

	e.dispatch(ctx, sig, computeStats(hist), ev.Interval)
}

func (e *Engine) dispatch(ctx context.Context, sig models.Signal, st candleStats, interval string) {
	span := opentracing.StartSpan("signal.dispatch")
	span.SetTag("symbol", sig.Symbol)
	span.SetTag("type", string(sig.Type))
	span.SetTag("score", sig.Score)
	defer span.Finish()

	text := FormatAlert(sig, st, interval)
	if err := e.notifier.Send(opentracing.ContextWithSpan(ctx, span), text); err != nil {
		// доставка упала — логируем и живём дальше, следующую свечу это не задерживает
		logger.Error("[ENGINE] notify %s: %v", sig.Symbol, err)
		return
	}
	logger.Info("[ENGINE] %s %s score=%.0f emitted", sig.Symbol, sig.Type, sig.Score)
}

// LastPrice — последняя закрытая цена символа, для монитора сделок.
func (e *Engine) LastPrice(symbol string) (float64, bool) {
	e.priceMu.RLock()
	defer e.priceMu.RUnlock()
	p, ok := e.lastPrices[symbol]
	return p, ok
}

// EmittedTotal — сколько сигналов отправлено с запуска, для /status.
func (e *Engine) EmittedTotal() int64 {
	return e.emitted.Load()
}
