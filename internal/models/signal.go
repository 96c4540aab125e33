package models

import "time"

type SignalType string

const (
	SignalBuy         SignalType = "BUY"
	SignalSell        SignalType = "SELL"
	SignalVolumeAlert SignalType = "VOLUME_ALERT"
)

// Signal — результат скоринга одной закрытой свечи.
// Живёт один тик: уходит в нотификацию и в часовой леджер.
type Signal struct {
	Symbol         string
	Type           SignalType
	Score          float64 // 0..100
	Factors        []string
	Price          float64
	PriceChangePct float64
	VolumeSpikePct float64
	Timestamp      time.Time
}
