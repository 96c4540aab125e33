package service

import (
	"fmt"
	"strings"

	"market_sentry/internal/models"
)

// FormatAlert собирает текст уведомления: направление, скор, прайс-экшен,
// объём и список сработавших факторов.
func FormatAlert(sig models.Signal, st candleStats, interval string) string {
	var b strings.Builder

	switch sig.Type {
	case models.SignalBuy:
		b.WriteString("🚀 STRONG BUY SIGNAL\n")
	case models.SignalSell:
		b.WriteString("⚠️ STRONG SELL SIGNAL\n")
	case models.SignalVolumeAlert:
		b.WriteString("⚡ HIGH VOLUME ALERT\n")
	}
	b.WriteString("━━━━━━━━━━━━━━━━━━\n")
	fmt.Fprintf(&b, "Pair: %s\n", sig.Symbol)
	if interval != "" {
		fmt.Fprintf(&b, "Timeframe: %s\n", interval)
	}
	fmt.Fprintf(&b, "Score: %.0f/100\n\n", sig.Score)

	fmt.Fprintf(&b, "📈 Price: $%s (%+.2f%%)\n", trimFloat(sig.Price), sig.PriceChangePct)
	fmt.Fprintf(&b, "📊 Volume spike: %+.0f%% (avg %.2f)\n", sig.VolumeSpikePct, st.avgVolume)
	if sig.Type != models.SignalVolumeAlert {
		fmt.Fprintf(&b, "🕯️ Candle strength: %.0f%%\n", st.bodyRatio)
	}

	if len(sig.Factors) > 0 {
		b.WriteString("\nFactors:\n")
		for _, f := range sig.Factors {
			fmt.Fprintf(&b, "  • %s\n", f)
		}
	}

	fmt.Fprintf(&b, "\n⏰ %s", sig.Timestamp.Format("2006-01-02 15:04:05 MST"))
	return b.String()
}

// trimFloat — цена без хвостовых нулей, чтобы не писать $0.00001230.
func trimFloat(v float64) string {
	s := fmt.Sprintf("%.8f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
