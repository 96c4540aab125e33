package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"market_sentry/internal/models"
	"market_sentry/pkg/logger"
)

const combinedStreamURL = "wss://stream.binance.com:9443/stream?streams="

// klineFrame — кадр combined-стрима Binance. Цены приходят строками.
type klineFrame struct {
	Stream string `json:"stream"`
	Data   struct {
		Symbol string `json:"s"`
		Kline  struct {
			Start       int64  `json:"t"`
			Symbol      string `json:"s"`
			Interval    string `json:"i"`
			Open        string `json:"o"`
			Close       string `json:"c"`
			High        string `json:"h"`
			Low         string `json:"l"`
			Volume      string `json:"v"`
			QuoteVolume string `json:"q"`
			IsClosed    bool   `json:"x"`
		} `json:"k"`
	} `json:"data"`
}

// StreamKlines — один WebSocket на все инструменты сразу, подписка зашита в URL.
// Возвращает поток MarketEvent: наружу уходят только закрытые свечи.
func (c *Client) StreamKlines(ctx context.Context, symbols []string, interval string) <-chan models.MarketEvent {
	ch := make(chan models.MarketEvent)

	go func() {
		defer close(ch)

		if len(symbols) == 0 {
			return
		}

		streams := make([]string, 0, len(symbols))
		for _, s := range symbols {
			streams = append(streams, strings.ToLower(s)+"@kline_"+interval)
		}
		url := combinedStreamURL + strings.Join(streams, "/")

		for {
			logger.Info("[WS] connect kline_%s, %d symbols", interval, len(symbols))
			conn, _, err := c.wsDialer.DialContext(ctx, url, nil)
			if err != nil {
				logger.Error("[WS] dial error: %v", err)
				select {
				case <-ctx.Done():
					return
				case <-time.After(3 * time.Second):
					continue
				}
			}
			c.state.SetWSConnected(true)

			// основной read-loop; Binance сам пингует, gorilla отвечает понгом при чтении
			for {
				_, msg, err := conn.ReadMessage()
				if err != nil {
					logger.Error("[WS] read error: %v", err)
					c.state.SetWSConnected(false)
					_ = conn.Close()
					break
				}

				var frame klineFrame
				if err := sonic.Unmarshal(msg, &frame); err != nil {
					continue
				}
				k := frame.Data.Kline
				if k.Symbol == "" || !k.IsClosed {
					continue // ждём закрытую свечу
				}

				open, err1 := strconv.ParseFloat(k.Open, 64)
				high, err2 := strconv.ParseFloat(k.High, 64)
				low, err3 := strconv.ParseFloat(k.Low, 64)
				closep, err4 := strconv.ParseFloat(k.Close, 64)
				if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
					continue
				}

				vol, _ := strconv.ParseFloat(k.Volume, 64)
				quoteVol, _ := strconv.ParseFloat(k.QuoteVolume, 64)

				ev := models.MarketEvent{
					Symbol:      k.Symbol,
					Interval:    k.Interval,
					Open:        open,
					High:        high,
					Low:         low,
					Close:       closep,
					Volume:      vol,
					QuoteVolume: quoteVol,
					Timestamp:   time.UnixMilli(k.Start),
					IsClosed:    true,
				}

				select {
				case ch <- ev:
				case <-ctx.Done():
					_ = conn.Close()
					return
				}
			}

			select {
			case <-ctx.Done():
				return
			default:
				time.Sleep(time.Second)
			}
		}
	}()

	return ch
}
