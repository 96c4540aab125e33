package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLedgerAdmitsBelowQuota(t *testing.T) {
	l := NewSignalLedger(time.Hour, 5)
	t0 := time.Now()

	for i := 0; i < 5; i++ {
		assert.True(t, l.Admit("S", 70, t0.Add(time.Duration(i)*time.Minute)))
	}
	assert.Equal(t, 5, l.Len(t0.Add(5*time.Minute)))
}

func TestLedgerRankedAdmissionWhenFull(t *testing.T) {
	l := NewSignalLedger(time.Hour, 5)
	t0 := time.Now()

	for i, score := range []float64{70, 72, 75, 78, 80} {
		assert.True(t, l.Admit("S", score, t0.Add(time.Duration(i)*time.Minute)))
	}

	// 71 строго выше минимума окна (70) — проходит
	assert.True(t, l.Admit("A", 71, t0.Add(10*time.Minute)))
	// ровно 70 — не строго выше, отклоняется
	assert.False(t, l.Admit("B", 70, t0.Add(11*time.Minute)))
	// слабую запись никто не вытеснял: минимум окна всё ещё 70
	assert.False(t, l.Admit("C", 70, t0.Add(12*time.Minute)))
}

func TestLedgerTimePurge(t *testing.T) {
	l := NewSignalLedger(time.Hour, 2)
	t0 := time.Now()

	assert.True(t, l.Admit("A", 90, t0))
	assert.True(t, l.Admit("B", 91, t0.Add(2*time.Minute)))
	assert.False(t, l.Admit("C", 80, t0.Add(3*time.Minute)))

	// спустя час первая запись состарилась, место освободилось
	assert.True(t, l.Admit("C", 80, t0.Add(61*time.Minute)))
	assert.Equal(t, 2, l.Len(t0.Add(61*time.Minute)))
}
