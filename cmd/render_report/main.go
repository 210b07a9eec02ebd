package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Freeeeeet/tutor_dashboard/internal/dashboard"
	"github.com/Freeeeeet/tutor_dashboard/internal/model"
	"github.com/Freeeeeet/tutor_dashboard/internal/report"
)

// Рендерит графики и PDF по тестовым данным, чтобы проверить вёрстку без базы и бота
func main() {
	outDir := "."
	if len(os.Args) > 1 {
		outDir = os.Args[1]
	}

	now := time.Now()
	teacher := model.NewDefaultTeacher(100, "olga_t", "Ольга")
	teacher.ID = uuid.New()
	teacher.CreatedAt = now.AddDate(0, -3, 0)

	snapshot := dashboard.Compute(teacher, sampleBookings(teacher.ID, now), now)

	outputs := []struct {
		name   string
		render func(*dashboard.Snapshot) ([]byte, error)
	}{
		{"weekdays.png", report.WeekdayChart},
		{"hours.png", report.HourChart},
		{"report.pdf", report.PDF},
	}

	for _, out := range outputs {
		data, err := out.render(snapshot)
		if err != nil {
			fmt.Printf("Ошибка при генерации %s: %v\n", out.name, err)
			os.Exit(1)
		}

		path := filepath.Join(outDir, out.name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			fmt.Printf("Ошибка при сохранении %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("Сохранено: %s (%d байт)\n", path, len(data))
	}
}

// sampleBookings создаёт записи за последние 5 недель и на 2 недели вперёд
func sampleBookings(teacherID uuid.UUID, now time.Time) []*model.Booking {
	students := []struct {
		id       int64
		username string
		name     string
	}{
		{201, "anna_k", "Анна"},
		{202, "petr", "Пётр"},
		{203, "", "Мария"},
		{204, "ivan_s", ""},
	}
	hours := []string{"09:00", "10:00", "14:00", "16:00", "18:00"}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	bookings := make([]*model.Booking, 0)

	for offset := -35; offset <= 14; offset++ {
		day := today.AddDate(0, 0, offset)
		if day.Weekday() == time.Sunday {
			continue
		}

		for i := 0; i < 1+(offset+40)%3; i++ {
			student := students[(offset+40+i)%len(students)]
			start := hours[(offset+40+i*2)%len(hours)]

			status := model.BookingStatusConfirmed
			if (offset+i)%7 == 0 {
				status = model.BookingStatusCancelled
			} else if offset > 0 && i == 0 {
				status = model.BookingStatusPending
			}

			bookings = append(bookings, &model.Booking{
				ID:                uuid.New(),
				TeacherID:         teacherID,
				StudentTelegramID: student.id,
				StudentUsername:   student.username,
				StudentFirstName:  student.name,
				Date:              day,
				StartTime:         start,
				EndTime:           start[:2] + ":45",
				Status:            status,
				CreatedAt:         day.AddDate(0, 0, -3),
			})
		}
	}

	return bookings
}
