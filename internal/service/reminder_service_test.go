package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/tutor_dashboard/internal/model"
)

var reminderNow = time.Date(2024, time.June, 12, 14, 0, 0, 0, time.UTC)

func reminderBooking(teacherID uuid.UUID, day int, start string) *model.Booking {
	return &model.Booking{
		ID:                uuid.New(),
		TeacherID:         teacherID,
		StudentTelegramID: 9000 + int64(day),
		Date:              time.Date(2024, time.June, day, 0, 0, 0, 0, time.UTC),
		StartTime:         start,
		EndTime:           start,
		Status:            model.BookingStatusConfirmed,
	}
}

func newTestReminderService(bookings *fakeBookingStore, teachers *fakeTeacherStore, notifier Notifier, metrics *MetricsService) *ReminderService {
	svc := NewReminderService(bookings, teachers, notifier, metrics, time.UTC, nil)
	svc.now = fixedClock(reminderNow)
	return svc
}

func TestReminderService_Run(t *testing.T) {
	teacher := model.NewDefaultTeacher(700, "tutor", "Olena")
	teacher.ID = uuid.New()

	inHour := reminderBooking(teacher.ID, 12, "15:00")
	inFiveMinutes := reminderBooking(teacher.ID, 12, "14:05")
	alreadyNotified := reminderBooking(teacher.ID, 12, "14:30")
	alreadyNotified.NotificationSent60 = true
	tooFar := reminderBooking(teacher.ID, 12, "15:01")
	started := reminderBooking(teacher.ID, 12, "14:00")
	malformed := reminderBooking(teacher.ID, 12, "later")
	cancelled := reminderBooking(teacher.ID, 12, "14:20")
	cancelled.Status = model.BookingStatusCancelled

	bookings := &fakeBookingStore{bookings: []*model.Booking{inHour, inFiveMinutes, alreadyNotified, tooFar, started, malformed, cancelled}}
	notifier := &fakeNotifier{}
	metrics := NewMetricsService()
	teachers := newFakeTeacherStore(teacher)

	svc := newTestReminderService(bookings, teachers, notifier, metrics)
	require.NoError(t, svc.Run(context.Background()))

	assert.Equal(t, time.Date(2024, time.June, 11, 0, 0, 0, 0, time.UTC), bookings.from)
	assert.Equal(t, time.Date(2024, time.June, 14, 0, 0, 0, 0, time.UTC), bookings.to)

	assert.ElementsMatch(t, []sentReminder{
		{bookingID: inHour.ID, studentID: inHour.StudentTelegramID, kind: model.Reminder60},
		{bookingID: inFiveMinutes.ID, studentID: inFiveMinutes.StudentTelegramID, kind: model.Reminder10},
	}, notifier.sent)

	assert.Equal(t, []model.ReminderKind{model.Reminder60}, bookings.marked[inHour.ID])
	assert.Equal(t, []model.ReminderKind{model.Reminder10, model.Reminder60}, bookings.marked[inFiveMinutes.ID])
	assert.NotContains(t, bookings.marked, alreadyNotified.ID)
	assert.Equal(t, 1, teachers.lookups, "teacher is loaded once per run")

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.remindersSent.WithLabelValues("60")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.remindersSent.WithLabelValues("10")))
}

func TestReminderService_CrossesMidnight(t *testing.T) {
	teacher := model.NewDefaultTeacher(700, "tutor", "Olena")
	teacher.ID = uuid.New()
	tomorrow := reminderBooking(teacher.ID, 13, "00:30")

	notifier := &fakeNotifier{}
	svc := NewReminderService(&fakeBookingStore{bookings: []*model.Booking{tomorrow}}, newFakeTeacherStore(teacher), notifier, nil, time.UTC, nil)
	svc.now = fixedClock(time.Date(2024, time.June, 12, 23, 45, 0, 0, time.UTC))

	require.NoError(t, svc.Run(context.Background()))
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, model.Reminder60, notifier.sent[0].kind)
}

func TestReminderService_DateInProcessZone(t *testing.T) {
	kyiv := time.FixedZone("EEST", 3*60*60)
	teacher := model.NewDefaultTeacher(700, "tutor", "Olena")
	teacher.ID = uuid.New()

	// Полночь 12 июня по Киеву, прочитанная из базы как 21:00 11 июня UTC
	b := reminderBooking(teacher.ID, 12, "15:00")
	b.Date = time.Date(2024, time.June, 12, 0, 0, 0, 0, kyiv).UTC()

	notifier := &fakeNotifier{}
	svc := NewReminderService(&fakeBookingStore{bookings: []*model.Booking{b}}, newFakeTeacherStore(teacher), notifier, nil, kyiv, nil)
	svc.now = fixedClock(time.Date(2024, time.June, 12, 14, 0, 0, 0, kyiv))

	require.NoError(t, svc.Run(context.Background()))
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, model.Reminder60, notifier.sent[0].kind)
	assert.Equal(t, 12, b.Date.Day())
	assert.Equal(t, kyiv, b.Date.Location())
}

func TestReminderService_TenMinuteAfterHourReminder(t *testing.T) {
	teacher := model.NewDefaultTeacher(700, "tutor", "Olena")
	teacher.ID = uuid.New()
	b := reminderBooking(teacher.ID, 12, "14:10")
	b.NotificationSent60 = true

	bookings := &fakeBookingStore{bookings: []*model.Booking{b}}
	notifier := &fakeNotifier{}
	svc := newTestReminderService(bookings, newFakeTeacherStore(teacher), notifier, nil)

	require.NoError(t, svc.Run(context.Background()))
	assert.Equal(t, []model.ReminderKind{model.Reminder10}, bookings.marked[b.ID])
}

func TestReminderService_Failures(t *testing.T) {
	teacher := model.NewDefaultTeacher(700, "tutor", "Olena")
	teacher.ID = uuid.New()

	t.Run("notifier error does not mark booking", func(t *testing.T) {
		b := reminderBooking(teacher.ID, 12, "14:30")
		bookings := &fakeBookingStore{bookings: []*model.Booking{b}}
		metrics := NewMetricsService()
		svc := newTestReminderService(bookings, newFakeTeacherStore(teacher), &fakeNotifier{err: errors.New("blocked by user")}, metrics)

		err := svc.Run(context.Background())
		assert.ErrorContains(t, err, "blocked by user")
		assert.Empty(t, bookings.marked)
		assert.Equal(t, float64(1), testutil.ToFloat64(metrics.reminderFailures))
	})

	t.Run("missing teacher", func(t *testing.T) {
		b := reminderBooking(uuid.New(), 12, "14:30")
		svc := newTestReminderService(&fakeBookingStore{bookings: []*model.Booking{b}}, newFakeTeacherStore(teacher), &fakeNotifier{}, nil)

		assert.ErrorIs(t, svc.Run(context.Background()), ErrTeacherNotFound)
	})

	t.Run("store error", func(t *testing.T) {
		svc := newTestReminderService(&fakeBookingStore{err: errors.New("db down")}, newFakeTeacherStore(teacher), &fakeNotifier{}, nil)

		assert.ErrorContains(t, svc.Run(context.Background()), "get unnotified bookings")
	})
}

func TestDueReminder(t *testing.T) {
	tests := []struct {
		name     string
		until    time.Duration
		sent60   bool
		sent10   bool
		wantKind model.ReminderKind
		wantOK   bool
	}{
		{"started", 0, false, false, 0, false},
		{"one minute", time.Minute, false, false, model.Reminder10, true},
		{"ten minutes", 10 * time.Minute, false, false, model.Reminder10, true},
		{"ten minutes already sent", 10 * time.Minute, true, true, model.Reminder10, false},
		{"eleven minutes", 11 * time.Minute, false, false, model.Reminder60, true},
		{"hour", time.Hour, false, false, model.Reminder60, true},
		{"hour already sent", time.Hour, true, false, model.Reminder60, false},
		{"too early", time.Hour + time.Second, false, false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &model.Booking{NotificationSent60: tt.sent60, NotificationSent10: tt.sent10}
			kind, ok := dueReminder(b, tt.until)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantKind, kind)
			}
		})
	}
}
