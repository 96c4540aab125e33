package service

import "time"

// CooldownGate — минимальный интервал между сигналами по одному символу.
// Фиксированное окно, без декея. Отметка ставится только при успешной эмиссии.
type CooldownGate struct {
	interval    time.Duration
	lastEmitted map[string]time.Time
}

func NewCooldownGate(interval time.Duration) *CooldownGate {
	return &CooldownGate{
		interval:    interval,
		lastEmitted: make(map[string]time.Time),
	}
}

// Allow — false, пока с последней эмиссии прошло меньше интервала. Скор кандидата роли не играет.
func (g *CooldownGate) Allow(symbol string, now time.Time) bool {
	last, ok := g.lastEmitted[symbol]
	if !ok {
		return true
	}
	return now.Sub(last) >= g.interval
}

func (g *CooldownGate) MarkEmitted(symbol string, now time.Time) {
	g.lastEmitted[symbol] = now
}
