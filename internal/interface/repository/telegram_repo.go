// internal/interface/repository/telegram_repo.go
package repository

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"planewatch-service/internal/domain/repository"
	"planewatch-service/pkg/logger"
)

// TelegramRepository delivers notifications to the configured chat.
type TelegramRepository struct {
	logger logger.Logger
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramRepository creates a Telegram delivery channel on an already
// authorized bot.
func NewTelegramRepository(bot *tgbotapi.BotAPI, chatID int64, logger logger.Logger) repository.NotifierRepository {
	return &TelegramRepository{
		logger: logger,
		bot:    bot,
		chatID: chatID,
	}
}

// SendMessage delivers an HTML-formatted message to the chat.
func (r *TelegramRepository) SendMessage(_ context.Context, text string) error {
	msg := tgbotapi.NewMessage(r.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := r.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// SendPhoto delivers a photo by URL with a caption.
func (r *TelegramRepository) SendPhoto(_ context.Context, photoURL, caption string) error {
	photo := tgbotapi.NewPhoto(r.chatID, tgbotapi.FileURL(photoURL))
	photo.Caption = caption
	if _, err := r.bot.Send(photo); err != nil {
		return fmt.Errorf("failed to send photo: %w", err)
	}
	return nil
}
