package telegram

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

// Sender отправляет сообщения в чат
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// Bot - обертка над клиентом Telegram
type Bot struct {
	api *bot.Bot
}

// New создает бота и направляет все обновления в handler
func New(token string, debug bool, handler *Handler) (*Bot, error) {
	opts := []bot.Option{
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			handler.HandleUpdate(ctx, &Bot{api: b}, update)
		}),
	}
	if debug {
		opts = append(opts, bot.WithDebug())
	}

	b, err := bot.New(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания бота: %w", err)
	}

	return &Bot{api: b}, nil
}

// SendMessage отправляет сообщение в MarkdownV2, text должен быть уже экранирован
func (b *Bot) SendMessage(ctx context.Context, chatID int64, text string) error {
	_, err := b.api.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeMarkdown,
	})
	if err != nil {
		return fmt.Errorf("ошибка отправки сообщения: %w", err)
	}
	return nil
}

// Start запускает long polling до отмены ctx
func (b *Bot) Start(ctx context.Context) {
	log.Info().Msg("Telegram бот запущен")
	b.api.Start(ctx)
	log.Info().Msg("Telegram бот остановлен")
}
