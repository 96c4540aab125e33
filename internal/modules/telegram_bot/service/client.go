package service

import (
	"context"
	"fmt"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"market_sentry/internal/modules/config"
	"market_sentry/internal/modules/telegram_bot/service/pg"
	"market_sentry/pkg/logger"
)

// PriceSource — откуда бот берёт последнюю цену для /buy и /status.
// Подвязывается после сборки графа, чтобы не закольцевать DI с движком.
type PriceSource interface {
	LastPrice(symbol string) (float64, bool)
	EmittedTotal() int64
}

// Telegram — канал уведомлений + команды ручного учёта сделок.
// Без токена работает как заглушка: всё уходит в лог.
type Telegram struct {
	bot    *tgbot.BotAPI
	cfg    *config.Config
	chatID int64
	repo   *pg.Transactions

	prices PriceSource
}

func NewTelegram(cfg *config.Config, repo *pg.Transactions) (*Telegram, error) {
	t := &Telegram{
		cfg:    cfg,
		chatID: cfg.Telegram.ChatID,
		repo:   repo,
	}

	if cfg.Telegram.Token == "" {
		logger.Info("[TG] token is empty, notifications go to log only")
		return t, nil
	}

	b, err := tgbot.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}
	t.bot = b
	return t, nil
}

func (t *Telegram) SetPriceSource(p PriceSource) { t.prices = p }

// Send — единственная способность, которую видит движок.
func (t *Telegram) Send(ctx context.Context, text string) error {
	if t == nil || t.bot == nil || t.chatID == 0 {
		logger.Info("[TG·noop] %s", text)
		return nil
	}
	msg := tgbot.NewMessage(t.chatID, text)
	_, err := t.bot.Send(msg)
	return err
}

// SendService — служебные сообщения (watchlist, стример). Ошибка не интересна.
func (t *Telegram) SendService(ctx context.Context, format string, args ...any) {
	if err := t.Send(ctx, fmt.Sprintf(format, args...)); err != nil {
		logger.Error("[TG] service message: %v", err)
	}
}

func (t *Telegram) reply(chatID int64, text string) {
	if t.bot == nil {
		logger.Info("[TG·noop] %s", text)
		return
	}
	_, _ = t.bot.Send(tgbot.NewMessage(chatID, text))
}
