package helper

import (
	"math"
	"strings"
)

// NormInterval приводит интервал свечей к формату Binance.
func NormInterval(raw string) string {
	s := strings.TrimSpace(strings.ToLower(raw))
	s = strings.TrimPrefix(s, "kline_")
	switch s {
	case "60m", "1h":
		return "1h"
	case "30m":
		return "30m"
	case "15m":
		return "15m"
	case "5m":
		return "5m"
	case "1m":
		return "1m"
	default:
		return s
	}
}

// PctChange — изменение в процентах от from к to.
func PctChange(from, to float64) float64 {
	if from == 0 {
		return 0
	}
	return (to - from) / from * 100
}

// RoundDownToStep округляет количество вниз до шага лота.
func RoundDownToStep(qty, step float64) float64 {
	if step <= 0 {
		return qty
	}
	steps := math.Floor(qty/step + 1e-12)
	return steps * step
}
