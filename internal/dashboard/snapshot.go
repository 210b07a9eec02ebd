package dashboard

import (
	"time"

	"github.com/Freeeeeet/tutor_dashboard/internal/model"
)

// Statistics основные счётчики дашборда
type Statistics struct {
	TotalBookings         int     `json:"totalBookings"`
	CompletedLessons      int     `json:"completedLessons"`
	UpcomingLessons       int     `json:"upcomingLessons"`
	CancelledBookings     int     `json:"cancelledBookings"`
	UniqueStudents        int     `json:"uniqueStudents"`
	TotalHours            float64 `json:"totalHours"`
	ThisWeekLessons       int     `json:"thisWeekLessons"`
	ThisMonthLessons      int     `json:"thisMonthLessons"`
	AverageLessonsPerWeek float64 `json:"averageLessonsPerWeek"`
}

type TopStudent struct {
	StudentTelegramID int64  `json:"studentTelegramId"`
	StudentUsername   string `json:"studentUsername,omitempty"`
	StudentFirstName  string `json:"studentFirstName,omitempty"`
	LessonsCount      int    `json:"lessonsCount"`
}

// DisplayName возвращает имя студента: имя, затем username
func (s TopStudent) DisplayName() string {
	if s.StudentFirstName != "" {
		return s.StudentFirstName
	}
	if s.StudentUsername != "" {
		return s.StudentUsername
	}
	return "Student"
}

type WeekdayStat struct {
	Weekday      int `json:"weekday"` // 0 = воскресенье
	LessonsCount int `json:"lessonsCount"`
}

type TimeSlotStat struct {
	Hour         int `json:"hour"`
	LessonsCount int `json:"lessonsCount"`
}

type PeriodStats struct {
	TotalLessons   int     `json:"totalLessons"`
	UniqueStudents int     `json:"uniqueStudents"`
	TotalHours     float64 `json:"totalHours"`
	CancelledCount int     `json:"cancelledCount"`
}

type Periods struct {
	Last7Days  PeriodStats `json:"last7Days"`
	Last30Days PeriodStats `json:"last30Days"`
}

type UpcomingBooking struct {
	ID          string              `json:"id"`
	Date        time.Time           `json:"date"`
	StartTime   string              `json:"startTime"`
	EndTime     string              `json:"endTime"`
	StudentName string              `json:"studentName"`
	Status      model.BookingStatus `json:"status"`
}

// TeacherProfile профиль учителя с подставленными значениями по умолчанию
type TeacherProfile struct {
	ID                      string            `json:"id"`
	TelegramID              int64             `json:"telegramId"`
	Username                string            `json:"username,omitempty"`
	FirstName               string            `json:"firstName,omitempty"`
	Language                model.Language    `json:"language,omitempty"`
	WorkingDays             []int             `json:"workingDays"`
	TimeRanges              []model.TimeRange `json:"timeRanges"`
	LessonDuration          int               `json:"lessonDuration"`
	SlotInterval            int               `json:"slotInterval"`
	BreakDuration           int               `json:"breakDuration"`
	BookingPeriodWeeks      int               `json:"bookingPeriodWeeks"`
	CustomScheduleCount     int               `json:"customScheduleCount"`
	WeekdayScheduleCount    int               `json:"weekdayScheduleCount"`
	ShareLink               string            `json:"shareLink,omitempty"`
	GoogleCalendarConnected bool              `json:"googleCalendarConnected"`
	CreatedAt               time.Time         `json:"createdAt"`
}

// DisplayName возвращает имя учителя для заголовков
func (p TeacherProfile) DisplayName() string {
	if p.FirstName != "" {
		return p.FirstName
	}
	if p.Username != "" {
		return "@" + p.Username
	}
	return "Teacher"
}

// Snapshot результат одного вычисления дашборда
type Snapshot struct {
	Teacher          TeacherProfile    `json:"teacher"`
	Stats            Statistics        `json:"stats"`
	TopStudents      []TopStudent      `json:"topStudents"`
	WeekdayStats     []WeekdayStat     `json:"weekdayStats"`
	TimeSlotStats    []TimeSlotStat    `json:"timeSlotStats"`
	UpcomingBookings []UpcomingBooking `json:"upcomingBookings"`
	PeriodStats      Periods           `json:"periodStats"`
	GeneratedAt      time.Time         `json:"generatedAt"`
}
