package service

import (
	"context"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"market_sentry/pkg/logger"
)

// Start — long-polling цикл команд. Без бота просто нечего поллить.
func (t *Telegram) Start(ctx context.Context) {
	if t == nil || t.bot == nil {
		return
	}

	u := tgbot.NewUpdate(0)
	u.Timeout = 30
	u.AllowedUpdates = []string{"message"}

	updates := t.bot.GetUpdatesChan(u)
	go func() {
		logger.Info("[TG] bot started, long polling")
		for {
			select {
			case <-ctx.Done():
				t.bot.StopReceivingUpdates()
				return
			case upd := <-updates:
				t.handleUpdate(ctx, upd)
			}
		}
	}()
}

func (t *Telegram) Stop() {}

func (t *Telegram) handleUpdate(ctx context.Context, upd tgbot.Update) {
	msg := upd.Message
	if msg == nil || msg.Chat == nil || !msg.IsCommand() {
		return
	}
	// чужие чаты игнорируем, бот персональный
	if t.chatID != 0 && msg.Chat.ID != t.chatID {
		return
	}

	chatID := msg.Chat.ID
	switch msg.Command() {
	case "start":
		t.reply(chatID, "👋 Market sentry на связи. Команды: /buy, /sell, /open, /status")
	case "buy":
		t.handleBuy(ctx, chatID, msg.CommandArguments())
	case "sell":
		t.handleSell(ctx, chatID, msg.CommandArguments())
	case "open":
		t.handleOpen(ctx, chatID)
	case "status":
		t.handleStatus(ctx, chatID)
	default:
		// неизвестные команды молча пропускаем
	}
}
