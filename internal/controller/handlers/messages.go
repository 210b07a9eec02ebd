package handlers

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Freeeeeet/tutor_dashboard/internal/dashboard"
	"github.com/Freeeeeet/tutor_dashboard/internal/formatting"
	"github.com/Freeeeeet/tutor_dashboard/internal/model"
)

// LoginLink собирает ссылку обмена одноразового токена на сессию
func LoginLink(publicURL, token string) string {
	return strings.TrimRight(publicURL, "/") + "/auth/telegram?token=" + url.QueryEscape(token)
}

func FormatLoginMessage(link string, role model.Role) string {
	text := "🔐 Ссылка для входа в дашборд:\n" + link + "\n\nСсылка одноразовая и скоро истечёт."
	if role != model.RoleTeacher {
		text += "\n\nДашборд доступен только учителям. Стать учителем: /becometeacher"
	}
	return text
}

// FormatTeacherCreated сообщение после регистрации учителя с расписанием по умолчанию
func FormatTeacherCreated(t *model.Teacher) string {
	ranges := make([]string, 0, len(t.TimeRanges))
	for _, r := range t.TimeRanges {
		ranges = append(ranges, formatting.FormatTimeRange(r.Start, r.End))
	}

	return fmt.Sprintf(
		"🎓 Вы зарегистрированы как учитель!\n\n"+
			"Расписание по умолчанию:\n"+
			"📅 Дни: %s\n"+
			"🕐 Время: %s\n"+
			"⏱ Занятие: %s\n"+
			"📆 Запись на %d %s вперёд\n\n"+
			"Статистика: /stats\n"+
			"Дашборд: /login",
		formatting.FormatWorkingDays(t.WorkingDays),
		strings.Join(ranges, ", "),
		formatting.FormatDuration(t.LessonDuration),
		t.BookingPeriodWeeks, formatting.PluralizeWeeks(t.BookingPeriodWeeks),
	)
}

// FormatStats текстовая сводка снимка дашборда
func FormatStats(s *dashboard.Snapshot) string {
	var sb strings.Builder
	st := s.Stats

	fmt.Fprintf(&sb, "📊 Статистика: %s\n\n", s.Teacher.DisplayName())
	fmt.Fprintf(&sb, "📝 Всего: %d %s\n", st.TotalBookings, formatting.PluralizeBookings(st.TotalBookings))
	fmt.Fprintf(&sb, "✅ Проведено: %s (%s)\n", countLessons(st.CompletedLessons), formatting.FormatHours(st.TotalHours))
	fmt.Fprintf(&sb, "⏭ Предстоит: %s\n", countLessons(st.UpcomingLessons))
	fmt.Fprintf(&sb, "❌ Отменено: %d\n", st.CancelledBookings)
	fmt.Fprintf(&sb, "👥 %d %s\n", st.UniqueStudents, formatting.PluralizeStudents(st.UniqueStudents))
	fmt.Fprintf(&sb, "🗓 На этой неделе: %d, в этом месяце: %d\n", st.ThisWeekLessons, st.ThisMonthLessons)
	fmt.Fprintf(&sb, "📈 В среднем в неделю: %s\n\n", formatting.FormatDecimal(st.AverageLessonsPerWeek))

	day, hasDay := busiestWeekday(s.WeekdayStats)
	if hasDay {
		fmt.Fprintf(&sb, "🔥 Самый загруженный день: %s\n", formatting.GetWeekdayName(day))
	}
	hour, hasHour := busiestHour(s.TimeSlotStats)
	if hasHour {
		fmt.Fprintf(&sb, "🕐 Популярное время: %s\n", formatting.FormatHour(hour))
	}
	if hasDay || hasHour {
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "За 7 дней: %s\n", formatPeriod(s.PeriodStats.Last7Days))
	fmt.Fprintf(&sb, "За 30 дней: %s\n", formatPeriod(s.PeriodStats.Last30Days))

	if len(s.TopStudents) > 0 {
		sb.WriteString("\n🏆 Топ студентов:\n")
		for i, student := range s.TopStudents {
			fmt.Fprintf(&sb, "%d. %s - %s\n", i+1, student.DisplayName(), countLessons(student.LessonsCount))
		}
	}

	if len(s.UpcomingBookings) > 0 {
		sb.WriteString("\n📅 Ближайшие занятия:\n")
		for _, b := range s.UpcomingBookings {
			fmt.Fprintf(&sb, "%s %s %s %s\n",
				formatting.GetBookingStatusDisplay(b.Status).Emoji,
				formatting.FormatDateWithWeekday(b.Date),
				formatting.FormatTimeRange(b.StartTime, b.EndTime),
				b.StudentName)
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// FormatReminder текст напоминания студенту о занятии
func FormatReminder(b *model.Booking, teacher *model.Teacher, kind model.ReminderKind) string {
	when := "через час"
	if kind == model.Reminder10 {
		when = "через 10 минут"
	}

	return fmt.Sprintf(
		"⏰ Напоминание: %s занятие у %s\n\n📅 %s\n🕐 %s",
		when,
		teacherName(teacher),
		formatting.FormatDateWithWeekday(b.Date),
		formatting.FormatTimeRange(b.StartTime, b.EndTime),
	)
}

func formatPeriod(p dashboard.PeriodStats) string {
	return fmt.Sprintf("%s, %s, отмен: %d",
		countLessons(p.TotalLessons),
		formatting.FormatHours(p.TotalHours),
		p.CancelledCount)
}

// busiestWeekday день недели с наибольшим числом занятий, при равенстве первый с понедельника
func busiestWeekday(stats []dashboard.WeekdayStat) (int, bool) {
	counts := make(map[int]int, len(stats))
	for _, st := range stats {
		counts[st.Weekday] = st.LessonsCount
	}

	best, bestCount := 0, 0
	for _, day := range formatting.MondayFirst {
		if counts[day] > bestCount {
			best, bestCount = day, counts[day]
		}
	}
	return best, bestCount > 0
}

// busiestHour час с наибольшим числом занятий, при равенстве более ранний
func busiestHour(stats []dashboard.TimeSlotStat) (int, bool) {
	best, bestCount := 0, 0
	for _, st := range stats {
		if st.LessonsCount > bestCount {
			best, bestCount = st.Hour, st.LessonsCount
		}
	}
	return best, bestCount > 0
}

func countLessons(n int) string {
	return fmt.Sprintf("%d %s", n, formatting.PluralizeLessons(n))
}

func teacherName(t *model.Teacher) string {
	switch {
	case t == nil:
		return "преподавателя"
	case t.FirstName != "":
		return t.FirstName
	case t.Username != "":
		return "@" + t.Username
	}
	return "преподавателя"
}
