package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/tutor_dashboard/internal/dashboard"
	"github.com/Freeeeeet/tutor_dashboard/internal/model"
)

// Sender часть API бота, которой пользуются обработчики
type Sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*models.Message, error)
	AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error)
}

// HandlerFunc обработчик команды, не зависящий от конкретного *bot.Bot
type HandlerFunc func(ctx context.Context, s Sender, update *models.Update)

type TeacherRegistry interface {
	BecomeTeacher(ctx context.Context, telegramID int64, username, firstName string) (*model.Teacher, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.Teacher, error)
}

type SnapshotProvider interface {
	DashboardByTelegramID(ctx context.Context, telegramID int64) (*dashboard.Snapshot, error)
}

type LoginIssuer interface {
	IssueLoginToken(id string, role model.Role, telegramID int64) (string, error)
}

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	teachers   TeacherRegistry
	dashboards SnapshotProvider
	auth       LoginIssuer
	publicURL  string
	logger     *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	teachers TeacherRegistry,
	dashboards SnapshotProvider,
	auth LoginIssuer,
	publicURL string,
	logger *zap.Logger,
) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		teachers:   teachers,
		dashboards: dashboards,
		auth:       auth,
		publicURL:  publicURL,
		logger:     logger,
	}
}

// Adapt превращает HandlerFunc в обработчик библиотеки бота
func Adapt(fn HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		fn(ctx, b, update)
	}
}
