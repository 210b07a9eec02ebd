package model

import (
	"time"

	"github.com/google/uuid"
)

type Language string

const (
	LanguageUkrainian Language = "uk"
	LanguageEnglish   Language = "en"
)

type TimeRange struct {
	Start string `json:"start"` // HH:MM
	End   string `json:"end"`   // HH:MM
}

// CustomSchedule исключение из расписания на конкретную дату
type CustomSchedule struct {
	Date         time.Time   `json:"date"`
	IsWorkingDay bool        `json:"is_working_day"`
	TimeRanges   []TimeRange `json:"time_ranges,omitempty"`
}

// WeekdaySchedule переопределение расписания для дня недели
type WeekdaySchedule struct {
	Weekday      int         `json:"weekday"`
	IsWorkingDay bool        `json:"is_working_day"`
	TimeRanges   []TimeRange `json:"time_ranges,omitempty"`
}

type GoogleCalendar struct {
	AccessToken  string  `json:"-"`
	RefreshToken *string `json:"-"`
	ExpiryDate   *int64  `json:"expiry_date,omitempty"`
}

type Teacher struct {
	ID                 uuid.UUID         `json:"id"`
	TelegramID         int64             `json:"telegram_id"`
	Username           string            `json:"username,omitempty"`
	FirstName          string            `json:"first_name,omitempty"`
	Language           Language          `json:"language"`
	WorkingDays        []int             `json:"working_days"`
	TimeRanges         []TimeRange       `json:"time_ranges"`
	LessonDuration     int               `json:"lesson_duration"`      // в минутах
	SlotInterval       int               `json:"slot_interval"`        // в минутах
	BreakDuration      int               `json:"break_duration"`       // в минутах
	BookingPeriodWeeks int               `json:"booking_period_weeks"` // горизонт записи
	CustomSchedule     []CustomSchedule  `json:"custom_schedule"`
	WeekdaySchedule    []WeekdaySchedule `json:"weekday_schedule"`
	ShareLink          string            `json:"share_link,omitempty"`
	GoogleCalendar     *GoogleCalendar   `json:"google_calendar,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
}

// GoogleCalendarConnected проверяет подключён ли внешний календарь
func (t *Teacher) GoogleCalendarConnected() bool {
	return t.GoogleCalendar != nil && t.GoogleCalendar.AccessToken != ""
}

// NewDefaultTeacher создаёт учителя с расписанием по умолчанию (Пн-Пт, 09:00-18:00)
func NewDefaultTeacher(telegramID int64, username, firstName string) *Teacher {
	return &Teacher{
		TelegramID:         telegramID,
		Username:           username,
		FirstName:          firstName,
		Language:           LanguageUkrainian,
		WorkingDays:        []int{1, 2, 3, 4, 5},
		TimeRanges:         []TimeRange{{Start: "09:00", End: "18:00"}},
		LessonDuration:     60,
		SlotInterval:       30,
		BreakDuration:      0,
		BookingPeriodWeeks: 2,
		CustomSchedule:     []CustomSchedule{},
		WeekdaySchedule:    []WeekdaySchedule{},
	}
}
