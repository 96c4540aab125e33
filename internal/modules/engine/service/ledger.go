package service

import "time"

type ledgerEntry struct {
	symbol string
	score  float64
	ts     time.Time
}

// SignalLedger — часовая квота с ранжированием по скору.
// Пока окно не заполнено, кандидаты проходят безусловно. При заполненном окне
// кандидат проходит, только если его скор строго выше минимального в окне.
// Сравнение ничего не вытесняет: слабые записи уходят только по времени.
type SignalLedger struct {
	window  time.Duration
	maxSize int
	entries []ledgerEntry
}

func NewSignalLedger(window time.Duration, maxSize int) *SignalLedger {
	return &SignalLedger{
		window:  window,
		maxSize: maxSize,
	}
}

// Admit решает судьбу кандидата и при допуске сразу записывает его в леджер.
func (l *SignalLedger) Admit(symbol string, score float64, now time.Time) bool {
	l.purge(now)

	if len(l.entries) >= l.maxSize && score <= l.windowMin() {
		return false
	}

	l.entries = append(l.entries, ledgerEntry{symbol: symbol, score: score, ts: now})
	return true
}

// Len — сколько сигналов сейчас в окне (после ленивой чистки).
func (l *SignalLedger) Len(now time.Time) int {
	l.purge(now)
	return len(l.entries)
}

func (l *SignalLedger) purge(now time.Time) {
	cutoff := now.Add(-l.window)
	i := 0
	for i < len(l.entries) && !l.entries[i].ts.After(cutoff) {
		i++
	}
	l.entries = l.entries[i:]
}

func (l *SignalLedger) windowMin() float64 {
	min := l.entries[0].score
	for _, e := range l.entries[1:] {
		if e.score < min {
			min = e.score
		}
	}
	return min
}
