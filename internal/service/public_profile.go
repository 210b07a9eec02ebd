package service

import (
	"context"
	"math"
	"time"

	"github.com/Freeeeeet/tutor_dashboard/internal/dashboard"
)

// PublicStats счётчики для публичной страницы учителя
type PublicStats struct {
	TotalLessons  int `json:"totalLessons"`
	ActiveLessons int `json:"activeLessons"`
	SuccessRate   int `json:"successRate"` // доля неотменённых записей, %
}

// BusySlot занятое время без данных студента
type BusySlot struct {
	Date      time.Time `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
}

type PublicStudent struct {
	Name         string `json:"name"`
	TotalLessons int    `json:"totalLessons"`
}

// PublicProfile то, что видит любой посетитель страницы учителя
type PublicProfile struct {
	Teacher   dashboard.TeacherProfile `json:"teacher"`
	Stats     PublicStats              `json:"stats"`
	BusySlots []BusySlot               `json:"upcomingBookings"`
	Students  []PublicStudent          `json:"students"`
}

// PublicProfile строит публичный профиль из того же снимка, что и дашборд
func (s *DashboardService) PublicProfile(ctx context.Context, teacherID string) (*PublicProfile, error) {
	snapshot, err := s.Dashboard(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	return NewPublicProfile(snapshot), nil
}

// NewPublicProfile убирает из снимка всё, что не предназначено посетителям
func NewPublicProfile(snapshot *dashboard.Snapshot) *PublicProfile {
	stats := snapshot.Stats
	profile := &PublicProfile{
		Teacher: snapshot.Teacher,
		Stats: PublicStats{
			TotalLessons:  stats.CompletedLessons + stats.UpcomingLessons,
			ActiveLessons: stats.UpcomingLessons,
		},
		BusySlots: make([]BusySlot, 0, len(snapshot.UpcomingBookings)),
		Students:  make([]PublicStudent, 0, len(snapshot.TopStudents)),
	}
	profile.Teacher.GoogleCalendarConnected = false

	if stats.TotalBookings > 0 {
		kept := stats.TotalBookings - stats.CancelledBookings
		profile.Stats.SuccessRate = int(math.Round(float64(kept) * 100 / float64(stats.TotalBookings)))
	}

	for _, b := range snapshot.UpcomingBookings {
		profile.BusySlots = append(profile.BusySlots, BusySlot{
			Date:      b.Date,
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
		})
	}

	for _, st := range snapshot.TopStudents {
		profile.Students = append(profile.Students, PublicStudent{
			Name:         st.DisplayName(),
			TotalLessons: st.LessonsCount,
		})
	}

	return profile
}
