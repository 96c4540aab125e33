package exchange

import (
	"context"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"

	"market_sentry/internal/models"
)

const ticker24hURL = "https://api.binance.com/api/v3/ticker/24hr"

// BinanceClient — публичный REST спота, ключи не нужны.
type BinanceClient struct {
	http *http.Client
}

func NewBinanceClient() *BinanceClient {
	return &BinanceClient{
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// ticker24h — суточный тикер; числовые поля приходят строками.
type ticker24h struct {
	Symbol             string `json:"symbol"`
	LastPrice          string `json:"lastPrice"`
	PriceChangePercent string `json:"priceChangePercent"`
	QuoteVolume        string `json:"quoteVolume"`
}

// TopByQuoteVolume — топ-n USDT-пар по суточному quote-объёму.
func (b *BinanceClient) TopByQuoteVolume(ctx context.Context, n int) ([]models.TopSymbol, error) {
	if n <= 0 {
		return nil, nil
	}

	tickers, err := b.fetchTickers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "fetch 24h tickers")
	}

	now := time.Now()
	arr := make([]models.TopSymbol, 0, len(tickers))
	for _, t := range tickers {
		if !strings.HasSuffix(t.Symbol, "USDT") {
			continue
		}
		last, err := strconv.ParseFloat(t.LastPrice, 64)
		if err != nil || last <= 0 {
			continue
		}
		qv, err := strconv.ParseFloat(t.QuoteVolume, 64)
		if err != nil || qv <= 0 {
			continue
		}
		changePct, _ := strconv.ParseFloat(t.PriceChangePercent, 64)

		arr = append(arr, models.TopSymbol{
			Symbol:         t.Symbol,
			LastPrice:      last,
			PriceChangePct: changePct,
			QuoteVolume:    qv,
			UpdatedAt:      now,
		})
	}
	if len(arr) == 0 {
		return nil, errors.New("binance: no USDT tickers in response")
	}

	sort.Slice(arr, func(i, j int) bool { return arr[i].QuoteVolume > arr[j].QuoteVolume })
	if n > len(arr) {
		n = len(arr)
	}
	return arr[:n], nil
}

func (b *BinanceClient) fetchTickers(ctx context.Context) ([]ticker24h, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ticker24hURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, errors.Errorf("non-2xx status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var arr []ticker24h
	if err := sonic.Unmarshal(body, &arr); err != nil {
		return nil, errors.Wrap(err, "decode tickers")
	}
	return arr, nil
}
