package formatting

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	weekdayNames      = []string{"Воскресенье", "Понедельник", "Вторник", "Среда", "Четверг", "Пятница", "Суббота"}
	weekdayShortNames = []string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}
)

// MondayFirst порядок дней недели для отображения (0 = воскресенье)
var MondayFirst = []int{1, 2, 3, 4, 5, 6, 0}

// FormatDate форматирует только дату
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatDateWithWeekday форматирует дату с коротким днём недели: "Ср, 12.06.2024"
func FormatDateWithWeekday(t time.Time) string {
	return GetWeekdayShortName(int(t.Weekday())) + ", " + FormatDate(t)
}

// FormatDateTime форматирует дату и время
func FormatDateTime(t time.Time) string {
	return t.Format("02.01.2006 15:04")
}

// FormatTimeRange форматирует диапазон "HH:MM-HH:MM"
func FormatTimeRange(start, end string) string {
	if end == "" || end == start {
		return start
	}
	return start + "-" + end
}

// FormatHour форматирует час как "09:00"
func FormatHour(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// FormatDuration форматирует длительность в минутах
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d мин", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%d ч", hours)
	}
	return fmt.Sprintf("%d ч %d мин", hours, mins)
}

// FormatDecimal форматирует число с десятичной запятой: 12,5
func FormatDecimal(value float64) string {
	return strings.Replace(strconv.FormatFloat(value, 'f', -1, 64), ".", ",", 1)
}

// FormatHours форматирует дробное число часов: 12,5 ч
func FormatHours(hours float64) string {
	return FormatDecimal(hours) + " ч"
}

// GetWeekdayName возвращает название дня недели на русском
func GetWeekdayName(weekday int) string {
	if weekday >= 0 && weekday < len(weekdayNames) {
		return weekdayNames[weekday]
	}
	return "Неизвестно"
}

// GetWeekdayShortName возвращает краткое название дня недели на русском
func GetWeekdayShortName(weekday int) string {
	if weekday >= 0 && weekday < len(weekdayShortNames) {
		return weekdayShortNames[weekday]
	}
	return "?"
}

// FormatWorkingDays перечисляет рабочие дни в порядке с понедельника: "Пн, Вт, Ср"
func FormatWorkingDays(days []int) string {
	set := make(map[int]bool, len(days))
	for _, d := range days {
		set[d] = true
	}

	names := make([]string, 0, len(days))
	for _, d := range MondayFirst {
		if set[d] {
			names = append(names, GetWeekdayShortName(d))
		}
	}

	if len(names) == 0 {
		return "не заданы"
	}
	return strings.Join(names, ", ")
}
