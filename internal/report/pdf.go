package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/Freeeeeet/tutor_dashboard/internal/dashboard"
	"github.com/Freeeeeet/tutor_dashboard/internal/formatting"
)

const (
	pdfFont      = "Go"
	pageWidth    = 190.0
	pageHeight   = 297.0
	marginBottom = 15.0
	rowHeight    = 7.0
	weekdayImage = "weekdays"
)

// PDF рендерит отчёт A4 по снимку дашборда: профиль, статистика, студенты, гистограмма по дням
func PDF(snapshot *dashboard.Snapshot) ([]byte, error) {
	chart, err := WeekdayChart(snapshot)
	if err != nil {
		return nil, fmt.Errorf("render weekday chart: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.AddUTF8FontFromBytes(pdfFont, "", goregular.TTF)
	pdf.AddUTF8FontFromBytes(pdfFont, "B", gobold.TTF)
	pdf.AddPage()

	writeProfile(pdf, snapshot)
	writeStatistics(pdf, snapshot.Stats)
	writePeriods(pdf, snapshot.PeriodStats)
	writeTopStudents(pdf, snapshot.TopStudents)
	writeUpcoming(pdf, snapshot.UpcomingBookings)

	imageOptions := gofpdf.ImageOptions{ImageType: "PNG"}
	imageHeight := pageWidth * chartHeight / chartWidth
	if pdf.GetY()+imageHeight > pageHeight-marginBottom {
		pdf.AddPage()
	}
	pdf.RegisterImageOptionsReader(weekdayImage, imageOptions, bytes.NewReader(chart))
	pdf.ImageOptions(weekdayImage, 10, pdf.GetY(), pageWidth, imageHeight, false, imageOptions, 0, "")

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeProfile(pdf *gofpdf.Fpdf, snapshot *dashboard.Snapshot) {
	teacher := snapshot.Teacher

	pdf.SetFont(pdfFont, "B", 16)
	pdf.CellFormat(0, 10, "Отчёт преподавателя: "+teacher.DisplayName(), "", 1, "C", false, 0, "")
	pdf.SetFont(pdfFont, "", 9)
	pdf.CellFormat(0, 5, "Сформирован "+formatting.FormatDateTime(snapshot.GeneratedAt), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont(pdfFont, "", 10)
	lines := []string{
		"Рабочие дни: " + formatting.FormatWorkingDays(teacher.WorkingDays),
		fmt.Sprintf("Занятие: %s, шаг записи: %s, перерыв: %s",
			formatting.FormatDuration(teacher.LessonDuration),
			formatting.FormatDuration(teacher.SlotInterval),
			formatting.FormatDuration(teacher.BreakDuration)),
		fmt.Sprintf("Запись открыта на %d %s вперёд", teacher.BookingPeriodWeeks, formatting.PluralizeWeeks(teacher.BookingPeriodWeeks)),
	}
	for _, r := range teacher.TimeRanges {
		lines = append(lines, "Рабочее время: "+formatting.FormatTimeRange(r.Start, r.End))
	}
	if teacher.GoogleCalendarConnected {
		lines = append(lines, "Google Calendar подключён")
	}
	for _, line := range lines {
		pdf.CellFormat(0, 5.5, line, "", 1, "", false, 0, "")
	}
	pdf.Ln(3)
}

func writeStatistics(pdf *gofpdf.Fpdf, stats dashboard.Statistics) {
	writeSection(pdf, "Статистика")
	writeTable(pdf, []string{"Показатель", "Значение"}, [][]string{
		{"Всего записей", fmt.Sprint(stats.TotalBookings)},
		{"Проведено занятий", fmt.Sprint(stats.CompletedLessons)},
		{"Предстоящих занятий", fmt.Sprint(stats.UpcomingLessons)},
		{"Отменено", fmt.Sprint(stats.CancelledBookings)},
		{"Уникальных студентов", fmt.Sprint(stats.UniqueStudents)},
		{"Проведено часов", formatting.FormatHours(stats.TotalHours)},
		{"Занятий на этой неделе", fmt.Sprint(stats.ThisWeekLessons)},
		{"Занятий в этом месяце", fmt.Sprint(stats.ThisMonthLessons)},
		{"Среднее в неделю (4 недели)", formatting.FormatDecimal(stats.AverageLessonsPerWeek)},
	})
}

func writePeriods(pdf *gofpdf.Fpdf, periods dashboard.Periods) {
	writeSection(pdf, "Периоды")
	row := func(name string, p dashboard.PeriodStats) []string {
		return []string{name, fmt.Sprint(p.TotalLessons), fmt.Sprint(p.UniqueStudents), formatting.FormatHours(p.TotalHours), fmt.Sprint(p.CancelledCount)}
	}
	writeTable(pdf, []string{"Период", "Занятия", "Студенты", "Часы", "Отмены"}, [][]string{
		row("7 дней", periods.Last7Days),
		row("30 дней", periods.Last30Days),
	})
}

func writeTopStudents(pdf *gofpdf.Fpdf, students []dashboard.TopStudent) {
	writeSection(pdf, "Лучшие студенты")
	if len(students) == 0 {
		writeEmpty(pdf, "Студентов пока нет")
		return
	}

	rows := make([][]string, 0, len(students))
	for i, s := range students {
		username := ""
		if s.StudentUsername != "" {
			username = "@" + s.StudentUsername
		}
		rows = append(rows, []string{fmt.Sprint(i + 1), s.DisplayName(), username, fmt.Sprintf("%d %s", s.LessonsCount, formatting.PluralizeLessons(s.LessonsCount))})
	}
	writeTable(pdf, []string{"#", "Студент", "Telegram", "Занятия"}, rows)
}

func writeUpcoming(pdf *gofpdf.Fpdf, upcoming []dashboard.UpcomingBooking) {
	writeSection(pdf, "Ближайшие занятия")
	if len(upcoming) == 0 {
		writeEmpty(pdf, "Нет запланированных занятий")
		return
	}

	rows := make([][]string, 0, len(upcoming))
	for _, b := range upcoming {
		status := formatting.GetBookingStatusDisplay(b.Status)
		rows = append(rows, []string{
			formatting.FormatDateWithWeekday(b.Date),
			formatting.FormatTimeRange(b.StartTime, b.EndTime),
			b.StudentName,
			status.Text,
		})
	}
	writeTable(pdf, []string{"Дата", "Время", "Студент", "Статус"}, rows)
}

func writeSection(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont(pdfFont, "B", 12)
	pdf.CellFormat(0, 8, title, "", 1, "", false, 0, "")
}

func writeEmpty(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont(pdfFont, "", 10)
	pdf.CellFormat(0, rowHeight, text, "", 1, "", false, 0, "")
	pdf.Ln(2)
}

func writeTable(pdf *gofpdf.Fpdf, headers []string, rows [][]string) {
	colWidth := pageWidth / float64(len(headers))

	pdf.SetFont(pdfFont, "B", 10)
	pdf.SetFillColor(235, 236, 240)
	for _, header := range headers {
		pdf.CellFormat(colWidth, rowHeight+1, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(pdfFont, "", 9)
	for _, row := range rows {
		for _, value := range row {
			pdf.CellFormat(colWidth, rowHeight, value, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(3)
}
