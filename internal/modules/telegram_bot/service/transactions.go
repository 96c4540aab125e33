package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"market_sentry/internal/helper"
	"market_sentry/internal/models"
	"market_sentry/pkg/logger"
)

// /buy SYMBOL NOMINAL — фиксируем покупку по последней закрытой цене.
func (t *Telegram) handleBuy(ctx context.Context, chatID int64, args string) {
	parts := strings.Fields(args)
	if len(parts) != 2 {
		t.reply(chatID, "Usage: /buy SYMBOL NOMINAL")
		return
	}

	symbol := strings.ToUpper(parts[0])
	nominal, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || nominal <= 0 {
		t.reply(chatID, "Usage: /buy SYMBOL NOMINAL")
		return
	}

	if t.prices == nil {
		t.reply(chatID, "❌ Цены ещё не подгружены, попробуй позже")
		return
	}
	lastPrice, ok := t.prices.LastPrice(symbol)
	if !ok {
		t.reply(chatID, fmt.Sprintf("❌ %s нет в watchlist или ещё не было закрытой свечи", symbol))
		return
	}

	trx := &models.Transaction{
		Symbol:          symbol,
		BuyPrice:        lastPrice,
		Nominal:         nominal,
		Quantity:        helper.RoundDownToStep(nominal/lastPrice, 1e-6),
		TargetProfitPct: t.cfg.TargetProfitPct,
		StopLossPct:     t.cfg.StopLossPct,
		Status:          models.TransactionOpen,
		BuyTime:         time.Now(),
	}
	if err := t.repo.Create(ctx, trx); err != nil {
		logger.Error("[TG] create transaction: %v", err)
		t.reply(chatID, "❌ Не смог сохранить сделку")
		return
	}

	t.reply(chatID, fmt.Sprintf(
		"✅ Transaction recorded\nCoin: %s\nNominal: %.2f\nQuantity: %.6f\nBuy Price: %g",
		symbol, nominal, trx.Quantity, lastPrice,
	))
}

// /sell SYMBOL PRICE — закрываем открытую сделку по символу.
func (t *Telegram) handleSell(ctx context.Context, chatID int64, args string) {
	parts := strings.Fields(args)
	if len(parts) != 2 {
		t.reply(chatID, "Usage: /sell SYMBOL PRICE")
		return
	}

	symbol := strings.ToUpper(parts[0])
	sellPrice, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || sellPrice <= 0 {
		t.reply(chatID, "Usage: /sell SYMBOL PRICE")
		return
	}

	trx, err := t.repo.FindOpenBySymbol(ctx, symbol)
	if err != nil {
		logger.Error("[TG] find transaction: %v", err)
		t.reply(chatID, "❌ Ошибка поиска сделки")
		return
	}
	if trx == nil {
		t.reply(chatID, fmt.Sprintf("❌ No open transaction for %s", symbol))
		return
	}

	if err := t.repo.MarkSold(ctx, trx.ID, sellPrice, time.Now()); err != nil {
		logger.Error("[TG] close transaction: %v", err)
		t.reply(chatID, "❌ Не смог закрыть сделку")
		return
	}

	profitPct := helper.PctChange(trx.BuyPrice, sellPrice)
	t.reply(chatID, fmt.Sprintf(
		"💰 Transaction SOLD\nCoin: %s\nBuy Price: %g\nSell Price: %g\nProfit: %+.2f%%",
		symbol, trx.BuyPrice, sellPrice, profitPct,
	))
}

// /open — список открытых сделок с текущим P/L.
func (t *Telegram) handleOpen(ctx context.Context, chatID int64) {
	open, err := t.repo.FindOpen(ctx)
	if err != nil {
		logger.Error("[TG] list transactions: %v", err)
		t.reply(chatID, "❌ Ошибка чтения сделок")
		return
	}
	if len(open) == 0 {
		t.reply(chatID, "📭 Открытых сделок нет")
		return
	}

	var b strings.Builder
	b.WriteString("📊 Открытые сделки:\n")
	for _, trx := range open {
		line := fmt.Sprintf("- %s qty=%.6f @ %g", trx.Symbol, trx.Quantity, trx.BuyPrice)
		if t.prices != nil {
			if cur, ok := t.prices.LastPrice(trx.Symbol); ok {
				line += fmt.Sprintf(" now=%g (%+.2f%%)", cur, helper.PctChange(trx.BuyPrice, cur))
			}
		}
		b.WriteString(line + "\n")
	}
	t.reply(chatID, b.String())
}

// /status — короткая сводка по живости системы.
func (t *Telegram) handleStatus(ctx context.Context, chatID int64) {
	emitted := int64(0)
	if t.prices != nil {
		emitted = t.prices.EmittedTotal()
	}
	t.reply(chatID, fmt.Sprintf(
		"ℹ️ Status\nInterval: %s\nSignals emitted: %d\nMin score: %.0f\nCooldown: %s",
		t.cfg.KlineInterval, emitted, t.cfg.MinSignalScore, t.cfg.SignalCooldown,
	))
}
