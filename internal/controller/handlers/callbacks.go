package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleCallback обрабатывает нажатия на кнопки под сводкой статистики
func (h *Handlers) HandleCallback(ctx context.Context, s Sender, update *models.Update) {
	query := update.CallbackQuery
	if query == nil {
		return
	}

	if _, err := s.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: query.ID}); err != nil {
		h.logger.Warn("Failed to answer callback", zap.String("data", query.Data), zap.Error(err))
	}

	var next HandlerFunc
	switch query.Data {
	case CallbackCharts:
		next = h.HandleCharts
	case CallbackLogin:
		next = h.HandleLogin
	default:
		h.logger.Warn("Unknown callback", zap.String("data", query.Data))
		return
	}

	next(ctx, s, callbackUpdate(query))
}

// callbackUpdate представляет нажатие кнопки как команду от того же пользователя
func callbackUpdate(query *models.CallbackQuery) *models.Update {
	from := query.From
	chatID := from.ID
	if msg := query.Message.Message; msg != nil {
		chatID = msg.Chat.ID
	}

	return &models.Update{Message: &models.Message{
		From: &from,
		Chat: models.Chat{ID: chatID},
	}}
}
