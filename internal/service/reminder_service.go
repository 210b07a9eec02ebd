package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Freeeeeet/tutor_dashboard/internal/model"
)

const (
	reminder60Window = 60 * time.Minute
	reminder10Window = 10 * time.Minute
)

// Notifier доставляет напоминание студенту
type Notifier interface {
	SendReminder(ctx context.Context, booking *model.Booking, teacher *model.Teacher, kind model.ReminderKind) error
}

// ReminderService рассылает напоминания за час и за 10 минут до занятия
type ReminderService struct {
	bookings ReminderStore
	teachers TeacherStore
	notifier Notifier
	metrics  *MetricsService
	location *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

func NewReminderService(
	bookings ReminderStore,
	teachers TeacherStore,
	notifier Notifier,
	metrics *MetricsService,
	location *time.Location,
	logger *zap.Logger,
) *ReminderService {
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderService{
		bookings: bookings,
		teachers: teachers,
		notifier: notifier,
		metrics:  metrics,
		location: location,
		now:      time.Now,
		logger:   logger,
	}
}

// Run один проход: находит записи с занятием в ближайший час и отправляет напоминания.
// Ошибки по отдельным записям не прерывают проход и возвращаются вместе.
func (s *ReminderService) Run(ctx context.Context) error {
	now := s.now().In(s.location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)

	// Вчера, сегодня и завтра: занятие через час может оказаться в соседнем дне
	bookings, err := s.bookings.GetUnnotifiedBetween(ctx, today.AddDate(0, 0, -1), today.AddDate(0, 0, 2))
	if err != nil {
		return fmt.Errorf("get unnotified bookings: %w", err)
	}

	teachers := make(map[uuid.UUID]*model.Teacher)
	var errs []error

	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		// Дата в тексте напоминания должна быть в часовом поясе расписания
		b.Date = b.Date.In(s.location)

		start, err := b.StartAt(s.location)
		if err != nil {
			s.logger.Warn("Skipping booking with malformed start time",
				zap.String("booking_id", b.ID.String()),
				zap.String("start_time", b.StartTime))
			continue
		}

		kind, ok := dueReminder(b, start.Sub(now))
		if !ok {
			continue
		}

		teacher, err := s.teacher(ctx, teachers, b.TeacherID)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if err := s.remind(ctx, b, teacher, kind); err != nil {
			s.metrics.ReminderFailed()
			s.logger.Error("Failed to send reminder",
				zap.String("booking_id", b.ID.String()),
				zap.Int("kind", int(kind)),
				zap.Error(err))
			errs = append(errs, err)
			continue
		}

		s.metrics.ReminderSent(kind)
	}

	return errors.Join(errs...)
}

func (s *ReminderService) remind(ctx context.Context, b *model.Booking, teacher *model.Teacher, kind model.ReminderKind) error {
	if err := s.notifier.SendReminder(ctx, b, teacher, kind); err != nil {
		return fmt.Errorf("send reminder: %w", err)
	}

	if err := s.bookings.MarkNotified(ctx, b.ID, kind); err != nil {
		return fmt.Errorf("mark notified: %w", err)
	}

	// Часовое напоминание после 10-минутного уже не нужно
	if kind == model.Reminder10 && !b.NotificationSent60 {
		if err := s.bookings.MarkNotified(ctx, b.ID, model.Reminder60); err != nil {
			return fmt.Errorf("mark notified: %w", err)
		}
	}

	return nil
}

func (s *ReminderService) teacher(ctx context.Context, cache map[uuid.UUID]*model.Teacher, id uuid.UUID) (*model.Teacher, error) {
	if teacher, ok := cache[id]; ok {
		return teacher, nil
	}

	teacher, err := s.teachers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get teacher: %w", err)
	}
	if teacher == nil {
		return nil, fmt.Errorf("%w: %s", ErrTeacherNotFound, id)
	}

	cache[id] = teacher
	return teacher, nil
}

// dueReminder выбирает напоминание для времени до начала занятия:
// (10, 60] минут для часового, (0, 10] для 10-минутного
func dueReminder(b *model.Booking, until time.Duration) (model.ReminderKind, bool) {
	switch {
	case until <= 0:
		return 0, false
	case until <= reminder10Window:
		return model.Reminder10, !b.NotificationSent10
	case until <= reminder60Window:
		return model.Reminder60, !b.NotificationSent60
	default:
		return 0, false
	}
}
