package service

import (
	"fmt"
	"math"
	"time"

	"market_sentry/internal/models"
)

// Scorer превращает статистику закрытой свечи и снапшот индикаторов
// в сигнал с композитным скором 0..100.
type Scorer struct {
	priceThreshold  float64 // %
	volumeThreshold float64 // %
	minScore        float64
}

func NewScorer(priceThreshold, volumeThreshold, minScore float64) *Scorer {
	return &Scorer{
		priceThreshold:  priceThreshold,
		volumeThreshold: volumeThreshold,
		minScore:        minScore,
	}
}

// candleStats — производные последней свечи относительно истории.
type candleStats struct {
	priceChangePct float64
	avgVolume      float64
	volumeSpikePct float64
	bodyRatio      float64 // % тела от полного диапазона
	bullish        bool
	strong         bool
}

// computeStats требует минимум 2 свечи. Средний объём считается по всей
// истории без последней свечи.
func computeStats(hist []models.Candle) candleStats {
	cur := hist[len(hist)-1]
	prev := hist[len(hist)-2]

	var volSum float64
	for _, c := range hist[:len(hist)-1] {
		volSum += c.Volume
	}
	avgVolume := volSum / float64(len(hist)-1)

	bodyRatio := 0.0
	if r := cur.High - cur.Low; r > 0 {
		bodyRatio = math.Abs(cur.Close-cur.Open) / r * 100
	}

	return candleStats{
		priceChangePct: (cur.Close - prev.Close) / prev.Close * 100,
		avgVolume:      avgVolume,
		volumeSpikePct: (cur.Volume - avgVolume) / avgVolume * 100,
		bodyRatio:      bodyRatio,
		bullish:        cur.Close > cur.Open,
		strong:         bodyRatio > 60,
	}
}

// Evaluate: гейтинг BUY → SELL → VOLUME_ALERT, не больше одного типа на свечу.
// ok == false — сигнала нет (не прошёл гейт или скор ниже минимума).
func (s *Scorer) Evaluate(symbol string, hist []models.Candle, snap Snapshot, now time.Time) (models.Signal, bool) {
	if len(hist) < 2 {
		return models.Signal{}, false
	}

	st := computeStats(hist)
	cur := hist[len(hist)-1]

	switch {
	case st.priceChangePct >= s.priceThreshold &&
		st.volumeSpikePct >= s.volumeThreshold &&
		st.bullish && st.strong:
		return s.directional(symbol, models.SignalBuy, cur, st, snap, now)

	case st.priceChangePct <= -s.priceThreshold &&
		st.volumeSpikePct >= s.volumeThreshold &&
		!st.bullish && st.strong:
		return s.directional(symbol, models.SignalSell, cur, st, snap, now)

	case st.volumeSpikePct >= 1.5*s.volumeThreshold &&
		math.Abs(st.priceChangePct) < s.priceThreshold:
		return s.volumeAlert(symbol, cur, st, now)
	}

	return models.Signal{}, false
}

func (s *Scorer) directional(
	symbol string,
	typ models.SignalType,
	cur models.Candle,
	st candleStats,
	snap Snapshot,
	now time.Time,
) (models.Signal, bool) {
	buy := typ == models.SignalBuy

	score := 0.0
	factors := make([]string, 0, 8)

	add := func(pts float64, label string) {
		score += pts
		factors = append(factors, label)
	}

	add(math.Min(math.Abs(st.priceChangePct)*4, 25),
		fmt.Sprintf("price %+.2f%%", st.priceChangePct))
	add(math.Min(st.volumeSpikePct/6, 20),
		fmt.Sprintf("volume spike %+.0f%%", st.volumeSpikePct))
	add(math.Min(st.bodyRatio/3, 15),
		fmt.Sprintf("candle body %.0f%%", st.bodyRatio))

	if snap.RSI.OK {
		rsi := snap.RSI.V
		switch {
		case buy && rsi < 30:
			add(15, fmt.Sprintf("RSI oversold %.1f", rsi))
		case buy && rsi <= 50:
			add(8, fmt.Sprintf("RSI bullish zone %.1f", rsi))
		case !buy && rsi > 70:
			add(15, fmt.Sprintf("RSI overbought %.1f", rsi))
		case !buy && rsi >= 50:
			add(8, fmt.Sprintf("RSI bearish zone %.1f", rsi))
		}
	}

	if snap.EMAFast.OK && snap.EMASlow.OK {
		if buy && snap.EMAFast.V > snap.EMASlow.V {
			add(10, "EMA fast above slow")
		}
		if !buy && snap.EMAFast.V < snap.EMASlow.V {
			add(10, "EMA fast below slow")
		}
	}

	if snap.MACD.OK {
		if buy && snap.MACD.V > 0 {
			add(8, "MACD positive")
		}
		if !buy && snap.MACD.V < 0 {
			add(8, "MACD negative")
		}
	}

	if snap.Bollinger.OK {
		if buy && cur.Close <= snap.Bollinger.Lower {
			add(12, "close at lower Bollinger band")
		}
		if !buy && cur.Close >= snap.Bollinger.Upper {
			add(12, "close at upper Bollinger band")
		}
	}

	if buy && snap.Support.OK && snap.Support.V > 0 &&
		math.Abs(cur.Close-snap.Support.V)/snap.Support.V*100 <= 2 {
		add(7, "near support")
	}
	if !buy && snap.Resistance.OK && snap.Resistance.V > 0 &&
		math.Abs(cur.Close-snap.Resistance.V)/snap.Resistance.V*100 <= 2 {
		add(7, "near resistance")
	}

	if score > 100 {
		score = 100
	}
	if score < s.minScore {
		return models.Signal{}, false
	}

	return models.Signal{
		Symbol:         symbol,
		Type:           typ,
		Score:          score,
		Factors:        factors,
		Price:          cur.Close,
		PriceChangePct: st.priceChangePct,
		VolumeSpikePct: st.volumeSpikePct,
		Timestamp:      now,
	}, true
}

func (s *Scorer) volumeAlert(
	symbol string,
	cur models.Candle,
	st candleStats,
	now time.Time,
) (models.Signal, bool) {
	score := math.Min(st.volumeSpikePct/10, 50)
	if score < s.minScore {
		return models.Signal{}, false
	}

	return models.Signal{
		Symbol:         symbol,
		Type:           models.SignalVolumeAlert,
		Score:          score,
		Factors:        []string{fmt.Sprintf("volume spike %+.0f%%", st.volumeSpikePct)},
		Price:          cur.Close,
		PriceChangePct: st.priceChangePct,
		VolumeSpikePct: st.volumeSpikePct,
		Timestamp:      now,
	}, true
}
