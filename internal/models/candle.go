package models

import "time"

// Candle — закрытая свеча одного инструмента. После записи в историю не меняется.
type Candle struct {
	Open        float64
	High        float64
	Low         float64
	Close       float64
	Volume      float64
	QuoteVolume float64
	Timestamp   time.Time
}

// MarketEvent — сырое событие из kline-стрима.
// Движок обрабатывает только IsClosed == true, остальное игнорирует без побочных эффектов.
type MarketEvent struct {
	Symbol      string
	Interval    string
	Open        float64
	High        float64
	Low         float64
	Close       float64
	Volume      float64
	QuoteVolume float64
	Timestamp   time.Time
	IsClosed    bool
}

func (e MarketEvent) Candle() Candle {
	return Candle{
		Open:        e.Open,
		High:        e.High,
		Low:         e.Low,
		Close:       e.Close,
		Volume:      e.Volume,
		QuoteVolume: e.QuoteVolume,
		Timestamp:   e.Timestamp,
	}
}
