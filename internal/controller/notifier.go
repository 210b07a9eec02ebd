package controller

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/Freeeeeet/tutor_dashboard/internal/controller/handlers"
	"github.com/Freeeeeet/tutor_dashboard/internal/model"
)

type messageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// ReminderNotifier доставляет напоминания студентам в личные сообщения
type ReminderNotifier struct {
	sender messageSender
}

func NewReminderNotifier(sender messageSender) *ReminderNotifier {
	return &ReminderNotifier{sender: sender}
}

// SendReminder отправляет студенту напоминание о занятии
func (n *ReminderNotifier) SendReminder(ctx context.Context, b *model.Booking, teacher *model.Teacher, kind model.ReminderKind) error {
	_, err := n.sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: b.StudentTelegramID,
		Text:   handlers.FormatReminder(b, teacher, kind),
	})
	if err != nil {
		return fmt.Errorf("send reminder to %d: %w", b.StudentTelegramID, err)
	}
	return nil
}
