package service

import (
	"context"
	"sync"

	"market_sentry/internal/exchange"
	"market_sentry/internal/modules/config"
	"market_sentry/internal/modules/universe/service/pg"
	"market_sentry/pkg/logger"
)

type ServiceNotifier interface {
	SendService(ctx context.Context, format string, args ...any)
}

// Universe — актуальный watchlist: топ USDT-пар по суточному объёму.
// Снапшот пишется в Postgres; при недоступной бирже берём последний
// сохранённый или статический файл.
type Universe struct {
	cfg  *config.Config
	exch *exchange.BinanceClient
	repo *pg.TopSymbols
	n    ServiceNotifier

	mu      sync.RWMutex
	symbols []string
}

func NewUniverse(cfg *config.Config, exch *exchange.BinanceClient, repo *pg.TopSymbols, n ServiceNotifier) *Universe {
	return &Universe{
		cfg:  cfg,
		exch: exch,
		repo: repo,
		n:    n,
	}
}

// Symbols — текущий watchlist. Читают стример и монитор, обновляет только Refresh.
func (u *Universe) Symbols() []string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	out := make([]string, len(u.symbols))
	copy(out, u.symbols)
	return out
}

// Refresh перечитывает топ с биржи и сохраняет снапшот.
// Все деградации нефатальны: старый watchlist лучше пустого.
func (u *Universe) Refresh(ctx context.Context) error {
	top, err := u.exch.TopByQuoteVolume(ctx, u.cfg.WatchTopN)
	if err != nil {
		logger.Error("[UNIVERSE] refresh failed: %v", err)
		if u.n != nil {
			u.n.SendService(ctx, "❌ Ошибка обновления watchlist: %v", err)
		}
		u.fallback(ctx)
		return err
	}

	syms := make([]string, 0, len(top))
	for _, s := range top {
		syms = append(syms, s.Symbol)
	}
	u.set(syms)

	if err := u.repo.Replace(ctx, top); err != nil {
		logger.Error("[UNIVERSE] persist snapshot: %v", err)
	}

	logger.Info("[UNIVERSE] top %d symbols updated", len(syms))
	if u.n != nil {
		u.n.SendService(ctx, "✅ Watchlist обновлён: %d инструментов", len(syms))
	}
	return nil
}

// fallback: сначала снапшот из базы, потом статический файл.
func (u *Universe) fallback(ctx context.Context) {
	if len(u.Symbols()) > 0 {
		return // уже есть рабочий список, не трогаем
	}

	if saved, err := u.repo.Load(ctx); err == nil && len(saved) > 0 {
		syms := make([]string, 0, len(saved))
		for _, s := range saved {
			syms = append(syms, s.Symbol)
		}
		u.set(syms)
		logger.Info("[UNIVERSE] loaded %d symbols from last snapshot", len(syms))
		return
	}

	syms, err := LoadWatchlistFile(u.cfg.WatchlistFile)
	if err != nil {
		logger.Error("[UNIVERSE] fallback watchlist: %v", err)
		return
	}
	u.set(syms)
	logger.Info("[UNIVERSE] loaded %d symbols from %s", len(syms), u.cfg.WatchlistFile)
}

func (u *Universe) set(symbols []string) {
	u.mu.Lock()
	u.symbols = symbols
	u.mu.Unlock()
}
