package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"kitnetia/internal/chatbot"
	"kitnetia/internal/domain/entity"
	"kitnetia/internal/domain/service"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier posts qualified leads to a single operations chat.
type TelegramNotifier struct {
	bot    sender
	chatID int64
}

func NewTelegramNotifier(bot sender, chatID int64) service.LeadNotifier {
	return &TelegramNotifier{bot: bot, chatID: chatID}
}

// NewTelegramBot connects with the bot token. It calls getMe, so it needs network access.
func NewTelegramBot(token string) (*tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to connect telegram bot: %w", err)
	}
	return bot, nil
}

func (n *TelegramNotifier) NotifyLead(ctx context.Context, property *entity.Property, lead *entity.Lead) error {
	msg := tgbotapi.NewMessage(n.chatID, FormatLead(property, lead))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("send lead notification: %w", err)
	}
	return nil
}

func FormatLead(property *entity.Property, lead *entity.Lead) string {
	var b strings.Builder
	b.WriteString("🎯 <b>Novo lead qualificado</b>\n")
	fmt.Fprintf(&b, "🏠 %s\n", html.EscapeString(property.Title))

	labels := []struct {
		label string
		index int
	}{
		{"Nome", chatbot.FieldName},
		{"Telefone", chatbot.FieldPhone},
		{"Email", chatbot.FieldEmail},
		{"Renda", chatbot.FieldIncome},
		{"Urgência", chatbot.FieldUrgency},
		{"Visita", chatbot.FieldVisitInterest},
		{"Motivo", chatbot.FieldReason},
	}
	for _, l := range labels {
		if v := lead.VisitorInfo.Field(l.index); v != "" {
			fmt.Fprintf(&b, "• %s: %s\n", l.label, html.EscapeString(v))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// NoopNotifier is used when no bot token is configured.
type NoopNotifier struct{}

func (NoopNotifier) NotifyLead(context.Context, *entity.Property, *entity.Lead) error {
	return nil
}
