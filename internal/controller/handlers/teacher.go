package handlers

import (
	"bytes"
	"context"
	"errors"
	"strconv"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/tutor_dashboard/internal/model"
	"github.com/Freeeeeet/tutor_dashboard/internal/report"
	"github.com/Freeeeeet/tutor_dashboard/internal/service"
)

// HandleBecomeTeacher обрабатывает команду /becometeacher
func (h *Handlers) HandleBecomeTeacher(ctx context.Context, s Sender, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	from := update.Message.From
	chatID := update.Message.Chat.ID

	teacher, err := h.teachers.BecomeTeacher(ctx, from.ID, from.Username, from.FirstName)
	switch {
	case errors.Is(err, service.ErrAlreadyTeacher):
		h.sendMessage(ctx, s, chatID, "✅ Вы уже зарегистрированы как учитель!\n\nСтатистика: /stats\nДашборд: /login")
		return
	case err != nil:
		h.logger.Error("Failed to register teacher", zap.Int64("telegram_id", from.ID), zap.Error(err))
		h.sendMessage(ctx, s, chatID, "❌ Не удалось зарегистрироваться как учитель. Попробуйте позже.")
		return
	}

	h.sendMessage(ctx, s, chatID, FormatTeacherCreated(teacher))
}

// HandleLogin обрабатывает команду /login: отправляет одноразовую ссылку на дашборд
func (h *Handlers) HandleLogin(ctx context.Context, s Sender, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	teacher, err := h.teachers.GetByTelegramID(ctx, telegramID)
	if err != nil {
		h.logger.Error("Failed to get teacher", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendMessage(ctx, s, chatID, msgInternalError)
		return
	}

	id, role := strconv.FormatInt(telegramID, 10), model.RoleStudent
	if teacher != nil {
		id, role = teacher.ID.String(), model.RoleTeacher
	}

	token, err := h.auth.IssueLoginToken(id, role, telegramID)
	if err != nil {
		h.logger.Error("Failed to issue login token", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendMessage(ctx, s, chatID, msgInternalError)
		return
	}

	h.logger.Info("Login link issued",
		zap.Int64("telegram_id", telegramID),
		zap.String("role", string(role)))

	h.sendMessage(ctx, s, chatID, FormatLoginMessage(LoginLink(h.publicURL, token), role))
}

// HandleStats обрабатывает команду /stats
func (h *Handlers) HandleStats(ctx context.Context, s Sender, update *models.Update) {
	teacher, ok := h.requireTeacher(ctx, s, update)
	if !ok {
		return
	}

	snapshot, err := h.dashboards.DashboardByTelegramID(ctx, teacher.TelegramID)
	if err != nil {
		h.logger.Error("Failed to compute dashboard", zap.Int64("telegram_id", teacher.TelegramID), zap.Error(err))
		h.sendMessage(ctx, s, update.Message.Chat.ID, msgInternalError)
		return
	}

	_, err = s.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        FormatStats(snapshot),
		ReplyMarkup: statsKeyboard(),
	})
	if err != nil {
		h.logger.Error("Failed to send stats", zap.Int64("chat_id", update.Message.Chat.ID), zap.Error(err))
	}
}

// HandleCharts обрабатывает команду /charts: гистограммы по дням недели и часам
func (h *Handlers) HandleCharts(ctx context.Context, s Sender, update *models.Update) {
	teacher, ok := h.requireTeacher(ctx, s, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID

	snapshot, err := h.dashboards.DashboardByTelegramID(ctx, teacher.TelegramID)
	if err != nil {
		h.logger.Error("Failed to compute dashboard", zap.Int64("telegram_id", teacher.TelegramID), zap.Error(err))
		h.sendMessage(ctx, s, chatID, msgInternalError)
		return
	}

	charts := []struct {
		filename string
		caption  string
		render   func() ([]byte, error)
	}{
		{"weekdays.png", "📅 Занятия по дням недели", func() ([]byte, error) { return report.WeekdayChart(snapshot) }},
		{"hours.png", "🕐 Занятия по часам", func() ([]byte, error) { return report.HourChart(snapshot) }},
	}

	for _, chart := range charts {
		data, err := chart.render()
		if err != nil {
			h.logger.Error("Failed to render chart", zap.String("chart", chart.filename), zap.Error(err))
			h.sendMessage(ctx, s, chatID, "❌ Не удалось построить график.")
			return
		}

		_, err = s.SendPhoto(ctx, &bot.SendPhotoParams{
			ChatID:  chatID,
			Photo:   &models.InputFileUpload{Filename: chart.filename, Data: bytes.NewReader(data)},
			Caption: chart.caption,
		})
		if err != nil {
			h.logger.Error("Failed to send chart",
				zap.Int64("chat_id", chatID),
				zap.String("chart", chart.filename),
				zap.Error(err))
			return
		}
	}
}
