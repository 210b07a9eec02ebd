package model

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"   // Ожидает подтверждения учителя
	BookingStatusConfirmed BookingStatus = "confirmed" // Подтверждено
	BookingStatusCancelled BookingStatus = "cancelled" // Отменено
)

// ReminderKind определяет какое напоминание было отправлено студенту
type ReminderKind int

const (
	Reminder60 ReminderKind = 60 // За час до занятия
	Reminder10 ReminderKind = 10 // За 10 минут до занятия
)

type Booking struct {
	ID                    uuid.UUID     `json:"id"`
	TeacherID             uuid.UUID     `json:"teacher_id"`
	StudentTelegramID     int64         `json:"student_telegram_id"`
	StudentUsername       string        `json:"student_username,omitempty"`
	StudentFirstName      string        `json:"student_first_name,omitempty"`
	Date                  time.Time     `json:"date"`
	StartTime             string        `json:"start_time"` // HH:MM
	EndTime               string        `json:"end_time"`   // HH:MM
	Status                BookingStatus `json:"status"`
	GoogleCalendarEventID string        `json:"google_calendar_event_id,omitempty"`
	NotificationSent60    bool          `json:"notification_sent_60"`
	NotificationSent10    bool          `json:"notification_sent_10"`
	CreatedAt             time.Time     `json:"created_at"`
}

// IsActive возвращает true для всех записей кроме отменённых
func (b *Booking) IsActive() bool {
	return b.Status != BookingStatusCancelled
}

// Day возвращает календарный день записи в указанной локации (время обнулено).
// Дата сначала переводится в loc: pgx отдаёт TIMESTAMPTZ в зоне процесса.
func (b *Booking) Day(loc *time.Location) time.Time {
	local := b.Date.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// StartAt объединяет дату записи и время начала в один момент времени
func (b *Booking) StartAt(loc *time.Location) (time.Time, error) {
	hour, minute, err := ParseClock(b.StartTime)
	if err != nil {
		return time.Time{}, err
	}
	return b.Day(loc).Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute), nil
}

// DisplayName возвращает имя студента для отображения: имя, затем username
func (b *Booking) DisplayName() string {
	if b.StudentFirstName != "" {
		return b.StudentFirstName
	}
	if b.StudentUsername != "" {
		return b.StudentUsername
	}
	return "Student"
}
