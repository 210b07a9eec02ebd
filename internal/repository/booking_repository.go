package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Freeeeeet/tutor_dashboard/internal/model"
	"github.com/Freeeeeet/tutor_dashboard/internal/repository/base"
)

const bookingColumns = `
	id, teacher_id, student_telegram_id, student_username, student_first_name,
	date, start_time, end_time, status, google_calendar_event_id,
	notification_sent_60, notification_sent_10, created_at`

type BookingRepository struct {
	*base.Repository
}

func NewBookingRepository(db base.DB) *BookingRepository {
	return &BookingRepository{Repository: base.NewRepository(db)}
}

// GetByTeacherID получает всю историю записей учителя, включая отменённые
func (r *BookingRepository) GetByTeacherID(ctx context.Context, teacherID uuid.UUID) ([]*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE teacher_id = $1`

	rows, err := r.DB().Query(ctx, query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("get bookings by teacher: %w", err)
	}

	bookings, err := base.CollectRows(rows, scanBooking)
	if err != nil {
		return nil, fmt.Errorf("scan booking: %w", err)
	}

	return bookings, nil
}

// GetUnnotifiedBetween получает активные записи с датой в [from, to),
// по которым ещё не отправлено хотя бы одно напоминание
func (r *BookingRepository) GetUnnotifiedBetween(ctx context.Context, from, to time.Time) ([]*model.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status <> 'cancelled'
		  AND date >= $1 AND date < $2
		  AND NOT (notification_sent_60 AND notification_sent_10)
		ORDER BY date, start_time
	`

	rows, err := r.DB().Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("get unnotified bookings: %w", err)
	}

	bookings, err := base.CollectRows(rows, scanBooking)
	if err != nil {
		return nil, fmt.Errorf("scan booking: %w", err)
	}

	return bookings, nil
}

// MarkNotified отмечает отправленное напоминание
func (r *BookingRepository) MarkNotified(ctx context.Context, id uuid.UUID, kind model.ReminderKind) error {
	column, err := notificationColumn(kind)
	if err != nil {
		return err
	}

	query := `UPDATE bookings SET ` + column + ` = TRUE WHERE id = $1`

	affected, err := r.ExecAffected(ctx, query, id)
	if err != nil {
		return fmt.Errorf("mark booking notified: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("booking %s not found", id)
	}

	return nil
}

func notificationColumn(kind model.ReminderKind) (string, error) {
	switch kind {
	case model.Reminder60:
		return "notification_sent_60", nil
	case model.Reminder10:
		return "notification_sent_10", nil
	default:
		return "", fmt.Errorf("unknown reminder kind %d", kind)
	}
}

func scanBooking(row base.Scanner) (*model.Booking, error) {
	var booking model.Booking
	err := row.Scan(
		&booking.ID,
		&booking.TeacherID,
		&booking.StudentTelegramID,
		&booking.StudentUsername,
		&booking.StudentFirstName,
		&booking.Date,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.GoogleCalendarEventID,
		&booking.NotificationSent60,
		&booking.NotificationSent10,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
