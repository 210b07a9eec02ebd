package dashboard

import (
	"math"
	"sort"
	"time"

	"github.com/Freeeeeet/tutor_dashboard/internal/model"
)

const (
	TopStudentsLimit      = 8
	UpcomingBookingsLimit = 6

	averageWindowDays = 28
	last7DaysOffset   = 6
	last30DaysOffset  = 29

	defaultSlotInterval       = 30
	defaultBookingPeriodWeeks = 2
)

// Compute строит снимок дашборда из профиля учителя и всей истории его записей.
// Функция чистая: не читает часы, не делает I/O, входные данные не изменяет.
// "Сегодня" определяется в локации now.
func Compute(teacher *model.Teacher, bookings []*model.Booking, now time.Time) *Snapshot {
	all := make([]*model.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b != nil {
			all = append(all, b)
		}
	}

	loc := now.Location()
	today := startOfDay(now)
	lessonDuration := max(teacher.LessonDuration, 0)

	active := make([]*model.Booking, 0, len(all))
	for _, b := range all {
		if b.IsActive() {
			active = append(active, b)
		}
	}

	return &Snapshot{
		Teacher:          profileOf(teacher),
		Stats:            computeStatistics(all, active, today, lessonDuration, loc),
		TopStudents:      computeTopStudents(active),
		WeekdayStats:     computeWeekdayStats(active, loc),
		TimeSlotStats:    computeTimeSlotStats(active),
		UpcomingBookings: computeUpcoming(active, today, loc),
		PeriodStats: Periods{
			Last7Days:  computePeriodStats(all, today.AddDate(0, 0, -last7DaysOffset), now, lessonDuration),
			Last30Days: computePeriodStats(all, today.AddDate(0, 0, -last30DaysOffset), now, lessonDuration),
		},
		GeneratedAt: now,
	}
}

func computeStatistics(all, active []*model.Booking, today time.Time, lessonDuration int, loc *time.Location) Statistics {
	weekStart := startOfWeek(today)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc)
	fourWeeksAgo := today.AddDate(0, 0, -averageWindowDays)

	stats := Statistics{TotalBookings: len(all)}
	students := make(map[int64]struct{})
	lastFourWeeks := 0

	for _, b := range all {
		if !b.IsActive() {
			stats.CancelledBookings++
		}
	}

	for _, b := range active {
		students[b.StudentTelegramID] = struct{}{}

		day := b.Day(loc)
		if day.Before(today) {
			stats.CompletedLessons++
		} else {
			stats.UpcomingLessons++
		}
		if !day.Before(weekStart) {
			stats.ThisWeekLessons++
		}
		// Сравнение по исходной дате без усечения до дня
		if !b.Date.Before(monthStart) {
			stats.ThisMonthLessons++
		}
		if !day.Before(fourWeeksAgo) && day.Before(today) {
			lastFourWeeks++
		}
	}

	stats.UniqueStudents = len(students)
	stats.TotalHours = lessonHours(stats.CompletedLessons, lessonDuration)
	stats.AverageLessonsPerWeek = round1(float64(lastFourWeeks) / 4)

	return stats
}

// computeTopStudents группирует активные записи по студенту в порядке первого появления.
// Имя и username берутся из последней записи, где они не пустые.
func computeTopStudents(active []*model.Booking) []TopStudent {
	order := make([]int64, 0)
	byID := make(map[int64]*TopStudent)

	for _, b := range active {
		entry, ok := byID[b.StudentTelegramID]
		if !ok {
			entry = &TopStudent{
				StudentTelegramID: b.StudentTelegramID,
				StudentUsername:   b.StudentUsername,
				StudentFirstName:  b.StudentFirstName,
			}
			byID[b.StudentTelegramID] = entry
			order = append(order, b.StudentTelegramID)
		}
		entry.LessonsCount++
		if b.StudentUsername != "" {
			entry.StudentUsername = b.StudentUsername
		}
		if b.StudentFirstName != "" {
			entry.StudentFirstName = b.StudentFirstName
		}
	}

	students := make([]TopStudent, 0, len(order))
	for _, id := range order {
		students = append(students, *byID[id])
	}

	sort.SliceStable(students, func(i, j int) bool {
		return students[i].LessonsCount > students[j].LessonsCount
	})

	if len(students) > TopStudentsLimit {
		students = students[:TopStudentsLimit]
	}
	return students
}

func computeWeekdayStats(active []*model.Booking, loc *time.Location) []WeekdayStat {
	stats := make([]WeekdayStat, 7)
	for i := range stats {
		stats[i].Weekday = i
	}
	for _, b := range active {
		stats[int(b.Day(loc).Weekday())].LessonsCount++
	}
	return stats
}

// computeTimeSlotStats считает занятия по часу начала. Записи с некорректным
// временем начала в гистограмму не попадают.
func computeTimeSlotStats(active []*model.Booking) []TimeSlotStat {
	counts := make(map[int]int)
	for _, b := range active {
		hour, err := model.ParseHour(b.StartTime)
		if err != nil {
			continue
		}
		counts[hour]++
	}

	stats := make([]TimeSlotStat, 0, len(counts))
	for hour, count := range counts {
		stats = append(stats, TimeSlotStat{Hour: hour, LessonsCount: count})
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Hour < stats[j].Hour
	})
	return stats
}

func computeUpcoming(active []*model.Booking, today time.Time, loc *time.Location) []UpcomingBooking {
	type scheduled struct {
		booking *model.Booking
		start   time.Time
	}

	candidates := make([]scheduled, 0)
	for _, b := range active {
		if b.Day(loc).Before(today) {
			continue
		}
		start, err := b.StartAt(loc)
		if err != nil {
			continue
		}
		candidates = append(candidates, scheduled{booking: b, start: start})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].start.Before(candidates[j].start)
	})

	if len(candidates) > UpcomingBookingsLimit {
		candidates = candidates[:UpcomingBookingsLimit]
	}

	upcoming := make([]UpcomingBooking, 0, len(candidates))
	for _, c := range candidates {
		upcoming = append(upcoming, UpcomingBooking{
			ID:          c.booking.ID.String(),
			Date:        c.booking.Date.In(loc),
			StartTime:   c.booking.StartTime,
			EndTime:     c.booking.EndTime,
			StudentName: c.booking.DisplayName(),
			Status:      c.booking.Status,
		})
	}
	return upcoming
}

// computePeriodStats считает статистику по всем записям с исходной датой в [start, end]
func computePeriodStats(all []*model.Booking, start, end time.Time, lessonDuration int) PeriodStats {
	var stats PeriodStats
	students := make(map[int64]struct{})

	for _, b := range all {
		if b.Date.Before(start) || b.Date.After(end) {
			continue
		}
		if !b.IsActive() {
			stats.CancelledCount++
			continue
		}
		stats.TotalLessons++
		students[b.StudentTelegramID] = struct{}{}
	}

	stats.UniqueStudents = len(students)
	stats.TotalHours = lessonHours(stats.TotalLessons, lessonDuration)
	return stats
}

func profileOf(t *model.Teacher) TeacherProfile {
	workingDays := make([]int, len(t.WorkingDays))
	copy(workingDays, t.WorkingDays)

	timeRanges := make([]model.TimeRange, len(t.TimeRanges))
	copy(timeRanges, t.TimeRanges)

	return TeacherProfile{
		ID:                      t.ID.String(),
		TelegramID:              t.TelegramID,
		Username:                t.Username,
		FirstName:               t.FirstName,
		Language:                t.Language,
		WorkingDays:             workingDays,
		TimeRanges:              timeRanges,
		LessonDuration:          max(t.LessonDuration, 0),
		SlotInterval:            orDefault(t.SlotInterval, defaultSlotInterval),
		BreakDuration:           max(t.BreakDuration, 0),
		BookingPeriodWeeks:      orDefault(t.BookingPeriodWeeks, defaultBookingPeriodWeeks),
		CustomScheduleCount:     len(t.CustomSchedule),
		WeekdayScheduleCount:    len(t.WeekdaySchedule),
		ShareLink:               t.ShareLink,
		GoogleCalendarConnected: t.GoogleCalendarConnected(),
		CreatedAt:               t.CreatedAt,
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek возвращает понедельник недели, в которую входит день
func startOfWeek(day time.Time) time.Time {
	offset := int(day.Weekday()) - 1
	if day.Weekday() == time.Sunday {
		offset = 6
	}
	return day.AddDate(0, 0, -offset)
}

func lessonHours(lessons, lessonDuration int) float64 {
	return round1(float64(lessons*lessonDuration) / 60)
}

// round1 округляет до десятых, половина вверх
func round1(value float64) float64 {
	return math.Floor(value*10+0.5) / 10
}

func orDefault(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}
