package notifications

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Aryaman129/play-nest-nagpur-sub001/pkg/config"
)

// TelegramNotifier pushes owner alerts to a Telegram chat
type TelegramNotifier struct {
	botAPI *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier creates a notifier bound to the owner chat
func NewTelegramNotifier(cfg *config.NotifierConfig) (*TelegramNotifier, error) {
	if cfg.TelegramBotToken == "" || cfg.TelegramOwnerChatID == 0 {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN and TELEGRAM_OWNER_CHAT_ID must be set")
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telegram bot: %w", err)
	}

	return &TelegramNotifier{
		botAPI: botAPI,
		chatID: cfg.TelegramOwnerChatID,
	}, nil
}

// NotifyBooking alerts the owner chat about a booking event
func (t *TelegramNotifier) NotifyBooking(turfName, event, window, totalDisplay string) error {
	text := fmt.Sprintf("%s — %s\n%s\nAmount: %s", turfName, event, window, totalDisplay)
	msg := tgbotapi.NewMessage(t.chatID, text)
	if _, err := t.botAPI.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram alert: %w", err)
	}
	return nil
}
