package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Freeeeeet/tutor_dashboard/internal/dashboard"
	"github.com/Freeeeeet/tutor_dashboard/internal/model"
)

const (
	outcomeOK       = "ok"
	outcomeNotFound = "not_found"
	outcomeError    = "error"
)

// DashboardService собирает снимок дашборда учителя при каждом запросе
type DashboardService struct {
	teachers TeacherStore
	bookings BookingHistory
	metrics  *MetricsService
	location *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

func NewDashboardService(
	teachers TeacherStore,
	bookings BookingHistory,
	metrics *MetricsService,
	location *time.Location,
	logger *zap.Logger,
) *DashboardService {
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		teachers: teachers,
		bookings: bookings,
		metrics:  metrics,
		location: location,
		now:      time.Now,
		logger:   logger,
	}
}

// Dashboard возвращает снимок для учителя по строковому ID
func (s *DashboardService) Dashboard(ctx context.Context, teacherID string) (*dashboard.Snapshot, error) {
	id, err := uuid.Parse(teacherID)
	if err != nil {
		s.metrics.ObserveDashboard(outcomeNotFound, 0)
		return nil, ErrInvalidTeacherID
	}

	teacher, err := s.teachers.GetByID(ctx, id)
	if err != nil {
		s.metrics.ObserveDashboard(outcomeError, 0)
		return nil, fmt.Errorf("get teacher: %w", err)
	}

	return s.compute(ctx, teacher)
}

// DashboardByTelegramID возвращает снимок для учителя, найденного по Telegram ID
func (s *DashboardService) DashboardByTelegramID(ctx context.Context, telegramID int64) (*dashboard.Snapshot, error) {
	teacher, err := s.teachers.GetByTelegramID(ctx, telegramID)
	if err != nil {
		s.metrics.ObserveDashboard(outcomeError, 0)
		return nil, fmt.Errorf("get teacher: %w", err)
	}

	return s.compute(ctx, teacher)
}

func (s *DashboardService) compute(ctx context.Context, teacher *model.Teacher) (*dashboard.Snapshot, error) {
	if teacher == nil {
		s.metrics.ObserveDashboard(outcomeNotFound, 0)
		return nil, ErrTeacherNotFound
	}

	bookings, err := s.bookings.GetByTeacherID(ctx, teacher.ID)
	if err != nil {
		s.logger.Error("Failed to load bookings",
			zap.String("teacher_id", teacher.ID.String()),
			zap.Error(err))
		s.metrics.ObserveDashboard(outcomeError, 0)
		return nil, fmt.Errorf("get bookings: %w", err)
	}

	start := time.Now()
	snapshot := dashboard.Compute(teacher, bookings, s.now().In(s.location))
	elapsed := time.Since(start)

	s.metrics.ObserveDashboard(outcomeOK, elapsed)
	s.logger.Debug("Dashboard computed",
		zap.String("teacher_id", teacher.ID.String()),
		zap.Int("bookings", len(bookings)),
		zap.Duration("elapsed", elapsed))

	return snapshot, nil
}
