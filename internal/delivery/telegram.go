package delivery

import (
	"context"
	"fmt"
	"strings"

	"github.com/fakeguard/fakeguard/internal/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ChannelTelegram is the registry channel name served by TelegramSender.
const ChannelTelegram = "telegram"

type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramSender posts takedown notices into a Telegram chat watched by the platform's trust team.
type TelegramSender struct {
	bot    botAPI
	chatID int64
}

func NewTelegramSender(token string, chatID int64) (*TelegramSender, error) {
	if token == "" || chatID == 0 {
		return nil, fmt.Errorf("telegram sender needs a bot token and chat id")
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	return &TelegramSender{bot: bot, chatID: chatID}, nil
}

func (s *TelegramSender) Channel() string { return ChannelTelegram }

func (s *TelegramSender) Send(_ context.Context, n *models.PlatformNotification) (map[string]any, error) {
	msg := tgbotapi.NewMessage(s.chatID, FormatNotice(n))
	sent, err := s.bot.Send(msg)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"channel":    ChannelTelegram,
		"message_id": sent.MessageID,
		"chat_id":    s.chatID,
	}, nil
}

// FormatNotice renders a notification as plain text.
func FormatNotice(n *models.PlatformNotification) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Fake account report [%s]\n", strings.ToUpper(string(n.AlertLevel)))
	fmt.Fprintf(&b, "Account: @%s on %s\n", n.Username, n.Platform)
	fmt.Fprintf(&b, "Requested by: %s\n", n.RequestedBy)
	fmt.Fprintf(&b, "Reference: %s\n", n.ID)
	if ev := strings.TrimSpace(string(n.Evidence)); ev != "" && ev != "{}" && ev != "null" {
		fmt.Fprintf(&b, "Evidence: %s\n", ev)
	}
	return b.String()
}
