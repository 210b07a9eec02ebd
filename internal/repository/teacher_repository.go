package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Freeeeeet/tutor_dashboard/internal/model"
	"github.com/Freeeeeet/tutor_dashboard/internal/repository/base"
)

const teacherColumns = `
	id, telegram_id, username, first_name, language, working_days, time_ranges,
	lesson_duration, slot_interval, break_duration, booking_period_weeks,
	custom_schedule, weekday_schedule, share_link,
	google_access_token, google_refresh_token, google_expiry_date, created_at`

type TeacherRepository struct {
	*base.Repository
}

func NewTeacherRepository(db base.DB) *TeacherRepository {
	return &TeacherRepository{Repository: base.NewRepository(db)}
}

// Create сохраняет учителя, ID и дату создания выставляет база
func (r *TeacherRepository) Create(ctx context.Context, teacher *model.Teacher) error {
	query := `
		INSERT INTO teachers (
			telegram_id, username, first_name, language, working_days, time_ranges,
			lesson_duration, slot_interval, break_duration, booking_period_weeks,
			custom_schedule, weekday_schedule, share_link
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at
	`

	err := r.DB().QueryRow(
		ctx, query,
		teacher.TelegramID,
		teacher.Username,
		teacher.FirstName,
		teacher.Language,
		nonNil(teacher.WorkingDays),
		nonNil(teacher.TimeRanges),
		teacher.LessonDuration,
		teacher.SlotInterval,
		teacher.BreakDuration,
		teacher.BookingPeriodWeeks,
		nonNil(teacher.CustomSchedule),
		nonNil(teacher.WeekdaySchedule),
		teacher.ShareLink,
	).Scan(&teacher.ID, &teacher.CreatedAt)

	if err != nil {
		return fmt.Errorf("create teacher: %w", err)
	}

	return nil
}

// GetByID получает учителя по ID
func (r *TeacherRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Teacher, error) {
	query := `SELECT ` + teacherColumns + ` FROM teachers WHERE id = $1`

	teacher, err := scanTeacher(r.DB().QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get teacher by id: %w", err)
	}

	return teacher, nil
}

// GetByTelegramID получает учителя по Telegram ID
func (r *TeacherRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Teacher, error) {
	query := `SELECT ` + teacherColumns + ` FROM teachers WHERE telegram_id = $1`

	teacher, err := scanTeacher(r.DB().QueryRow(ctx, query, telegramID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get teacher by telegram id: %w", err)
	}

	return teacher, nil
}

func scanTeacher(row base.Scanner) (*model.Teacher, error) {
	var (
		teacher      model.Teacher
		accessToken  *string
		refreshToken *string
		expiryDate   *int64
	)

	err := row.Scan(
		&teacher.ID,
		&teacher.TelegramID,
		&teacher.Username,
		&teacher.FirstName,
		&teacher.Language,
		&teacher.WorkingDays,
		&teacher.TimeRanges,
		&teacher.LessonDuration,
		&teacher.SlotInterval,
		&teacher.BreakDuration,
		&teacher.BookingPeriodWeeks,
		&teacher.CustomSchedule,
		&teacher.WeekdaySchedule,
		&teacher.ShareLink,
		&accessToken,
		&refreshToken,
		&expiryDate,
		&teacher.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if accessToken != nil || refreshToken != nil || expiryDate != nil {
		teacher.GoogleCalendar = &model.GoogleCalendar{
			RefreshToken: refreshToken,
			ExpiryDate:   expiryDate,
		}
		if accessToken != nil {
			teacher.GoogleCalendar.AccessToken = *accessToken
		}
	}

	return &teacher, nil
}

// nonNil не даёт записать NULL в NOT NULL колонки массивов и JSONB
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
