package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/tutor_dashboard/internal/model"
	"github.com/Freeeeeet/tutor_dashboard/internal/repository/base"
)

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return errors.New("column count mismatch")
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r.values[i]))
	}
	return nil
}

func teacherRow(accessToken, refreshToken *string, expiry *int64) fakeRow {
	return fakeRow{values: []any{
		uuid.MustParse("0d9e4c2b-3f43-4c1f-8f0a-1b2c3d4e5f60"),
		int64(555),
		"tutor",
		"Olena",
		model.LanguageEnglish,
		[]int{1, 2, 3},
		[]model.TimeRange{{Start: "09:00", End: "13:00"}},
		45,
		15,
		5,
		3,
		[]model.CustomSchedule{},
		[]model.WeekdaySchedule{{Weekday: 6, IsWorkingDay: false}},
		"tutor-olena",
		accessToken,
		refreshToken,
		expiry,
		time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC),
	}}
}

func TestScanTeacher(t *testing.T) {
	teacher, err := scanTeacher(teacherRow(nil, nil, nil))
	require.NoError(t, err)

	assert.Equal(t, int64(555), teacher.TelegramID)
	assert.Equal(t, model.LanguageEnglish, teacher.Language)
	assert.Equal(t, []int{1, 2, 3}, teacher.WorkingDays)
	assert.Equal(t, 45, teacher.LessonDuration)
	assert.Equal(t, 3, teacher.BookingPeriodWeeks)
	assert.Len(t, teacher.WeekdaySchedule, 1)
	assert.Nil(t, teacher.GoogleCalendar)
	assert.False(t, teacher.GoogleCalendarConnected())
}

func TestScanTeacher_GoogleCalendar(t *testing.T) {
	access := "access-token"
	refresh := "refresh-token"
	expiry := int64(1718000000000)

	teacher, err := scanTeacher(teacherRow(&access, &refresh, &expiry))
	require.NoError(t, err)

	require.NotNil(t, teacher.GoogleCalendar)
	assert.Equal(t, "access-token", teacher.GoogleCalendar.AccessToken)
	assert.Equal(t, &refresh, teacher.GoogleCalendar.RefreshToken)
	assert.True(t, teacher.GoogleCalendarConnected())

	teacher, err = scanTeacher(teacherRow(nil, &refresh, nil))
	require.NoError(t, err)
	require.NotNil(t, teacher.GoogleCalendar)
	assert.False(t, teacher.GoogleCalendarConnected())
}

func TestScanTeacher_NotFound(t *testing.T) {
	_, err := scanTeacher(fakeRow{err: pgx.ErrNoRows})
	assert.True(t, base.IsNotFound(err))
}

func TestScanBooking(t *testing.T) {
	id := uuid.New()
	date := time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC)

	booking, err := scanBooking(fakeRow{values: []any{
		id,
		uuid.New(),
		int64(42),
		"student",
		"",
		date,
		"10:00",
		"11:00",
		model.BookingStatusConfirmed,
		"",
		true,
		false,
		date,
	}})
	require.NoError(t, err)

	assert.Equal(t, id, booking.ID)
	assert.Equal(t, date, booking.Date)
	assert.Equal(t, "student", booking.DisplayName())
	assert.True(t, booking.NotificationSent60)
	assert.False(t, booking.NotificationSent10)
}

func TestNotificationColumn(t *testing.T) {
	column, err := notificationColumn(model.Reminder60)
	require.NoError(t, err)
	assert.Equal(t, "notification_sent_60", column)

	column, err = notificationColumn(model.Reminder10)
	require.NoError(t, err)
	assert.Equal(t, "notification_sent_10", column)

	_, err = notificationColumn(model.ReminderKind(30))
	assert.Error(t, err)
}

type fakeDB struct {
	base.DB
	tag  pgconn.CommandTag
	sql  string
	args []any
}

func (db *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	db.sql, db.args = sql, args
	return db.tag, nil
}

func TestMarkNotified(t *testing.T) {
	id := uuid.MustParse("2b0c6a1e-7d4f-4e83-9c1a-5f6e7d8c9b0a")

	db := &fakeDB{tag: pgconn.NewCommandTag("UPDATE 1")}
	require.NoError(t, NewBookingRepository(db).MarkNotified(context.Background(), id, model.Reminder10))
	assert.Contains(t, db.sql, "notification_sent_10 = TRUE")
	assert.Equal(t, []any{id}, db.args)

	db = &fakeDB{tag: pgconn.NewCommandTag("UPDATE 0")}
	err := NewBookingRepository(db).MarkNotified(context.Background(), id, model.Reminder60)
	require.Error(t, err)
	assert.Contains(t, err.Error(), id.String())
}

func TestNonNil(t *testing.T) {
	assert.NotNil(t, nonNil[int](nil))
	assert.Equal(t, []int{1}, nonNil([]int{1}))
}
