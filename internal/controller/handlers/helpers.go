package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/tutor_dashboard/internal/model"
)

const (
	msgInternalError = "❌ Произошла ошибка. Попробуйте позже."
	msgTeachersOnly  = "❌ Эта команда доступна только учителям.\n\nСтать учителем: /becometeacher"
)

// requireTeacher проверяет что отправитель зарегистрирован как учитель
func (h *Handlers) requireTeacher(ctx context.Context, s Sender, update *models.Update) (*model.Teacher, bool) {
	if update.Message == nil || update.Message.From == nil {
		return nil, false
	}

	telegramID := update.Message.From.ID
	teacher, err := h.teachers.GetByTelegramID(ctx, telegramID)
	if err != nil {
		h.logger.Error("Failed to get teacher", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendMessage(ctx, s, update.Message.Chat.ID, msgInternalError)
		return nil, false
	}

	if teacher == nil {
		h.sendMessage(ctx, s, update.Message.Chat.ID, msgTeachersOnly)
		return nil, false
	}

	return teacher, true
}

// sendMessage отправляет сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, s Sender, chatID int64, text string) {
	_, err := s.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}
