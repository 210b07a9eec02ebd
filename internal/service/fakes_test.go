package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Freeeeeet/tutor_dashboard/internal/model"
)

type fakeTeacherStore struct {
	byID      map[uuid.UUID]*model.Teacher
	err       error
	createErr error
	lookups   int
}

func newFakeTeacherStore(teachers ...*model.Teacher) *fakeTeacherStore {
	store := &fakeTeacherStore{byID: make(map[uuid.UUID]*model.Teacher)}
	for _, t := range teachers {
		store.byID[t.ID] = t
	}
	return store
}

func (f *fakeTeacherStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Teacher, error) {
	f.lookups++
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[id], nil
}

func (f *fakeTeacherStore) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Teacher, error) {
	f.lookups++
	if f.err != nil {
		return nil, f.err
	}
	for _, t := range f.byID {
		if t.TelegramID == telegramID {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTeacherStore) Create(ctx context.Context, teacher *model.Teacher) error {
	if f.createErr != nil {
		return f.createErr
	}
	teacher.ID = uuid.New()
	teacher.CreatedAt = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	f.byID[teacher.ID] = teacher
	return nil
}

type fakeBookingStore struct {
	mu       sync.Mutex
	bookings []*model.Booking
	err      error
	markErr  error
	marked   map[uuid.UUID][]model.ReminderKind
	from, to time.Time
}

func (f *fakeBookingStore) GetByTeacherID(ctx context.Context, teacherID uuid.UUID) ([]*model.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	var result []*model.Booking
	for _, b := range f.bookings {
		if b.TeacherID == teacherID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeBookingStore) GetUnnotifiedBetween(ctx context.Context, from, to time.Time) ([]*model.Booking, error) {
	f.from, f.to = from, to
	if f.err != nil {
		return nil, f.err
	}
	var result []*model.Booking
	for _, b := range f.bookings {
		if b.Date.Before(from) || !b.Date.Before(to) {
			continue
		}
		if b.NotificationSent60 && b.NotificationSent10 {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingStore) MarkNotified(ctx context.Context, id uuid.UUID, kind model.ReminderKind) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.markErr != nil {
		return f.markErr
	}
	if f.marked == nil {
		f.marked = make(map[uuid.UUID][]model.ReminderKind)
	}
	f.marked[id] = append(f.marked[id], kind)
	return nil
}

type fakeTokenStore struct {
	used map[string]time.Duration
	err  error
}

func (f *fakeTokenStore) Consume(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.used == nil {
		f.used = make(map[string]time.Duration)
	}
	if _, ok := f.used[id]; ok {
		return false, nil
	}
	f.used[id] = ttl
	return true, nil
}

type sentReminder struct {
	bookingID uuid.UUID
	studentID int64
	kind      model.ReminderKind
}

type fakeNotifier struct {
	sent []sentReminder
	err  error
}

func (f *fakeNotifier) SendReminder(ctx context.Context, booking *model.Booking, teacher *model.Teacher, kind model.ReminderKind) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentReminder{bookingID: booking.ID, studentID: booking.StudentTelegramID, kind: kind})
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
