package service

import (
	"math"

	"market_sentry/internal/models"
)

// Value — значение индикатора. OK == false, когда истории не хватает;
// для скоринга это не ошибка, такой индикатор просто не даёт бонуса.
type Value struct {
	V  float64
	OK bool
}

// Bands — полосы Боллинджера.
type Bands struct {
	Upper  float64
	Middle float64
	Lower  float64
	OK     bool
}

// Snapshot — все индикаторы, посчитанные по одной истории на момент закрытия свечи.
// Никуда не сохраняется, живёт один тик.
type Snapshot struct {
	RSI        Value
	EMAFast    Value
	EMASlow    Value
	MACD       Value
	Bollinger  Bands
	Support    Value
	Resistance Value
}

// Periods — периоды расчёта, один раз из конфига.
type Periods struct {
	RSI             int
	EMAFast         int
	EMASlow         int
	BollingerPeriod int
	BollingerK      float64
}

func ComputeSnapshot(cs []models.Candle, p Periods) Snapshot {
	sup, res := SupportResistance(cs)
	return Snapshot{
		RSI:        RSI(cs, p.RSI),
		EMAFast:    EMA(cs, p.EMAFast),
		EMASlow:    EMA(cs, p.EMASlow),
		MACD:       MACD(cs, p.EMAFast, p.EMASlow),
		Bollinger:  Bollinger(cs, p.BollingerPeriod, p.BollingerK),
		Support:    sup,
		Resistance: res,
	}
}

// RSI — простое (несглаженное) среднее gain/loss по последним period дельтам close.
// Нужно period+1 свечей. При нулевом среднем убытке RSI ровно 100.
func RSI(cs []models.Candle, period int) Value {
	if period < 1 || len(cs) < period+1 {
		return Value{}
	}

	var gain, loss float64
	start := len(cs) - period
	for i := start; i < len(cs); i++ {
		change := cs[i].Close - cs[i-1].Close
		if change > 0 {
			gain += change
		} else {
			loss += -change
		}
	}

	avgGain := gain / float64(period)
	avgLoss := loss / float64(period)
	if avgLoss == 0 {
		return Value{V: 100, OK: true}
	}

	rs := avgGain / avgLoss
	return Value{V: 100 - 100/(1+rs), OK: true}
}

// EMA — сид из SMA первых period закрытий, дальше катим по остатку истории.
// Состояние между вызовами не храним: каждый вызов считает окно заново.
func EMA(cs []models.Candle, period int) Value {
	if period < 1 || len(cs) < period {
		return Value{}
	}

	var sum float64
	for i := 0; i < period; i++ {
		sum += cs[i].Close
	}
	ema := sum / float64(period)

	k := 2.0 / float64(period+1)
	for i := period; i < len(cs); i++ {
		ema += k * (cs[i].Close - ema)
	}
	return Value{V: ema, OK: true}
}

// MACD — только линия fastEMA−slowEMA. Сигнальную линию на таком коротком
// окне не считаем.
func MACD(cs []models.Candle, fast, slow int) Value {
	f := EMA(cs, fast)
	s := EMA(cs, slow)
	if !f.OK || !s.OK {
		return Value{}
	}
	return Value{V: f.V - s.V, OK: true}
}

// Bollinger — SMA последних period закрытий ± k популяционных сигм того же окна.
func Bollinger(cs []models.Candle, period int, k float64) Bands {
	if period < 1 || len(cs) < period {
		return Bands{}
	}

	window := cs[len(cs)-period:]
	var sum float64
	for _, c := range window {
		sum += c.Close
	}
	mid := sum / float64(period)

	var variance float64
	for _, c := range window {
		d := c.Close - mid
		variance += d * d
	}
	std := math.Sqrt(variance / float64(period))

	return Bands{
		Upper:  mid + k*std,
		Middle: mid,
		Lower:  mid - k*std,
		OK:     true,
	}
}

const srWindow = 5

// SupportResistance — экстремумы последних 5 свечей независимо от длины основного окна.
func SupportResistance(cs []models.Candle) (support, resistance Value) {
	if len(cs) < srWindow {
		return Value{}, Value{}
	}

	window := cs[len(cs)-srWindow:]
	low, high := window[0].Low, window[0].High
	for _, c := range window[1:] {
		if c.Low < low {
			low = c.Low
		}
		if c.High > high {
			high = c.High
		}
	}
	return Value{V: low, OK: true}, Value{V: high, OK: true}
}
