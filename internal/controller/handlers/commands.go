package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot/models"
)

const helpText = "📚 Справка по командам:\n\n" +
	"/start - Начать работу с ботом\n" +
	"/help - Показать эту справку\n" +
	"/login - Ссылка для входа в веб-дашборд\n\n" +
	"Для учителей:\n" +
	"/becometeacher - Зарегистрироваться как учитель\n" +
	"/stats - Статистика занятий\n" +
	"/charts - Графики загрузки по дням и часам"

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, s Sender, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	name := update.Message.From.FirstName
	if name == "" {
		name = update.Message.From.Username
	}

	text := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Это Tutor Dashboard - статистика ваших занятий и напоминания о них.\n\n"+
			"Учитель? Зарегистрируйтесь командой /becometeacher, затем смотрите /stats и /charts.\n"+
			"Веб-дашборд откроется по ссылке из /login.\n\n"+
			"Все команды: /help",
		name,
	)

	h.sendMessage(ctx, s, update.Message.Chat.ID, text)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, s Sender, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendMessage(ctx, s, update.Message.Chat.ID, helpText)
}
