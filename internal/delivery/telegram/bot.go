package telegram

import (
	"context"
	"fmt"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const maxMessageLen = 4000

type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

func NewAPI(token string) (*tgbotapi.BotAPI, error) {
	return tgbotapi.NewBotAPI(token)
}

// Notifier posts run notifications to one chat.
type Notifier struct {
	api    Sender
	chatID int64
	logger *zap.Logger
}

func NewNotifier(api Sender, chatID int64, logger *zap.Logger) *Notifier {
	return &Notifier{api: api, chatID: chatID, logger: logger}
}

func (n *Notifier) Notify(_ context.Context, subject, body string) error {
	n.logger.Info("telegram notify send", zap.Int64("chat_id", n.chatID), zap.String("subject", subject))
	msg := tgbotapi.NewMessage(n.chatID, FormatMessage(subject, body))
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

// FormatMessage joins subject and body, truncated to fit one Telegram message.
func FormatMessage(subject, body string) string {
	text := subject + "\n\n" + body
	if len(text) <= maxMessageLen {
		return text
	}
	cut := maxMessageLen - len("...")
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}
