package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Freeeeeet/tutor_dashboard/internal/model"
)

type TeacherService struct {
	teachers TeacherStore
	logger   *zap.Logger
}

func NewTeacherService(teachers TeacherStore, logger *zap.Logger) *TeacherService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{
		teachers: teachers,
		logger:   logger,
	}
}

// BecomeTeacher создаёт учителя с расписанием по умолчанию
func (s *TeacherService) BecomeTeacher(ctx context.Context, telegramID int64, username, firstName string) (*model.Teacher, error) {
	existing, err := s.teachers.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("get teacher: %w", err)
	}

	if existing != nil {
		return existing, ErrAlreadyTeacher
	}

	teacher := model.NewDefaultTeacher(telegramID, username, firstName)
	if err := s.teachers.Create(ctx, teacher); err != nil {
		s.logger.Error("Failed to create teacher",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
		return nil, fmt.Errorf("create teacher: %w", err)
	}

	s.logger.Info("Teacher registered",
		zap.Int64("telegram_id", telegramID),
		zap.String("teacher_id", teacher.ID.String()))

	return teacher, nil
}

// GetByTelegramID возвращает учителя или nil, если пользователь не учитель
func (s *TeacherService) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Teacher, error) {
	teacher, err := s.teachers.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("get teacher: %w", err)
	}
	return teacher, nil
}
