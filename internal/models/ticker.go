package models

import "time"

// TopSymbol — строка из 24h-тикера биржи, по которой собирается watchlist.
type TopSymbol struct {
	Symbol         string
	LastPrice      float64
	PriceChangePct float64
	QuoteVolume    float64
	UpdatedAt      time.Time
}
