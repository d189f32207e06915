package notify

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// messageSender is the slice of the Telegram bot API the notifier needs.
type messageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram delivers alerts as Markdown messages to a fixed chat.
type Telegram struct {
	bot    messageSender
	chatID int64
}

// NewTelegram authenticates the bot and returns the notifier.
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telegram bot: %w", err)
	}
	return &Telegram{bot: bot, chatID: chatID}, nil
}

func (t *Telegram) send(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send failed: %w", err)
	}
	return nil
}

func (t *Telegram) SendHealthUpdate(_ context.Context, a HealthUpdate) error {
	text := fmt.Sprintf(
		"📸 *Booth Health Update*\n\n"+
			"*Booth ID:* `%s`\n"+
			"*Name:* %s\n"+
			"*Status:* %s\n"+
			"*Time:* %s",
		a.BoothID, nameOrNA(a.Name), a.Status, a.CreatedAt.Format(time.RFC1123),
	)
	if a.Message != "" {
		text += fmt.Sprintf("\n*Message:* %s", a.Message)
	}
	return t.send(text)
}

func (t *Telegram) SendStaleAlert(_ context.Context, a StaleAlert) error {
	return t.send(fmt.Sprintf(
		"⚠️ *Booth Stale Alert*\n\n"+
			"*Name:* %s\n"+
			"*Booth ID:* `%s`\n"+
			"*Last Ping:* %s\n"+
			"*Minutes Since Last Ping:* %d",
		nameOrNA(a.Name), a.BoothID, a.LastPing.Format(time.RFC1123), a.MinutesSinceLastPing,
	))
}

func (t *Telegram) SendModeAlert(_ context.Context, a ModeAlert) error {
	return t.send(fmt.Sprintf(
		"⚠️ *Booth Non-Normal Mode Alert*\n\n"+
			"*Booth ID:* `%s`\n"+
			"*Name:* %s\n"+
			"*Current Mode:* %s\n"+
			"*Hours in Mode:* %.1f\n\n"+
			"This booth has been in *%s* mode for an extended period. Please check if this is expected.",
		a.BoothID, nameOrNA(a.Name), a.Mode, a.HoursInMode, a.Mode,
	))
}

func nameOrNA(name string) string {
	if name == "" {
		return "N/A"
	}
	return name
}
