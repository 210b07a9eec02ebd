package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Freeeeeet/tutor_dashboard/internal/model"
)

// TeacherStore хранилище учителей, реализуется repository.TeacherRepository
type TeacherStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Teacher, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.Teacher, error)
	Create(ctx context.Context, teacher *model.Teacher) error
}

// BookingHistory история записей учителя
type BookingHistory interface {
	GetByTeacherID(ctx context.Context, teacherID uuid.UUID) ([]*model.Booking, error)
}

// ReminderStore записи, ожидающие напоминаний
type ReminderStore interface {
	GetUnnotifiedBetween(ctx context.Context, from, to time.Time) ([]*model.Booking, error)
	MarkNotified(ctx context.Context, id uuid.UUID, kind model.ReminderKind) error
}

// TokenStore одноразовые идентификаторы токенов входа
type TokenStore interface {
	Consume(ctx context.Context, id string, ttl time.Duration) (bool, error)
}
