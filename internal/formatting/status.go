package formatting

import "github.com/Freeeeeet/tutor_dashboard/internal/model"

// BookingStatusDisplay представляет отображение статуса бронирования
type BookingStatusDisplay struct {
	Emoji string
	Text  string
}

var bookingStatusDisplays = map[model.BookingStatus]BookingStatusDisplay{
	model.BookingStatusPending:   {"⏳", "Ожидает подтверждения"},
	model.BookingStatusConfirmed: {"✅", "Подтверждена"},
	model.BookingStatusCancelled: {"❌", "Отменена"},
}

// GetBookingStatusDisplay возвращает emoji и текст для статуса бронирования
func GetBookingStatusDisplay(status model.BookingStatus) BookingStatusDisplay {
	if display, ok := bookingStatusDisplays[status]; ok {
		return display
	}
	return BookingStatusDisplay{"❓", "Неизвестно"}
}
