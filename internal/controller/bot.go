package controller

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/tutor_dashboard/internal/controller/handlers"
)

type BotController struct {
	bot      *bot.Bot
	handlers *handlers.Handlers
	logger   *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	teachers handlers.TeacherRegistry,
	dashboards handlers.SnapshotProvider,
	auth handlers.LoginIssuer,
	publicURL string,
	logger *zap.Logger,
) *BotController {
	return &BotController{
		bot:      botInstance,
		handlers: handlers.NewHandlers(teachers, dashboards, auth, publicURL, logger),
		logger:   logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.register("/start", c.handlers.HandleStart)
	c.register("/help", c.handlers.HandleHelp)
	c.register("/login", c.handlers.HandleLogin)

	// Команды для учителей
	c.register("/becometeacher", c.handlers.HandleBecomeTeacher)
	c.register("/stats", c.handlers.HandleStats)
	c.register("/charts", c.handlers.HandleCharts)

	// Кнопки под сводкой статистики
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, handlers.CallbackPrefix, bot.MatchTypePrefix,
		handlers.Adapt(c.handlers.HandleCallback))

	return c.setCommands(ctx)
}

func (c *BotController) register(command string, fn handlers.HandlerFunc) {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, command, bot.MatchTypeExact, handlers.Adapt(fn))
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "help", Description: "❓ Справка по командам"},
		{Command: "login", Description: "🔐 Войти в веб-дашборд"},
		{Command: "becometeacher", Description: "🎓 Стать учителем"},
		{Command: "stats", Description: "📊 Статистика занятий (учитель)"},
		{Command: "charts", Description: "📈 Графики загрузки (учитель)"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота и блокируется до отмены контекста
func (c *BotController) Start(ctx context.Context) {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
}
