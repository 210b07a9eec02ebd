package handlers

import "github.com/go-telegram/bot/models"

// Данные callback кнопок под сводкой статистики
const (
	CallbackPrefix = "stats:"
	CallbackCharts = CallbackPrefix + "charts"
	CallbackLogin  = CallbackPrefix + "login"
)

// keyboard упрощает создание inline клавиатур
type keyboard struct {
	rows [][]models.InlineKeyboardButton
}

func newKeyboard() *keyboard {
	return &keyboard{rows: make([][]models.InlineKeyboardButton, 0)}
}

// Row добавляет новый ряд кнопок
func (k *keyboard) Row(buttons ...models.InlineKeyboardButton) *keyboard {
	if len(buttons) > 0 {
		k.rows = append(k.rows, buttons)
	}
	return k
}

func (k *keyboard) Build() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{InlineKeyboard: k.rows}
}

func button(text, callbackData string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{Text: text, CallbackData: callbackData}
}

// statsKeyboard кнопки быстрых действий под сводкой
func statsKeyboard() *models.InlineKeyboardMarkup {
	return newKeyboard().
		Row(button("📈 Графики", CallbackCharts), button("🔐 Дашборд", CallbackLogin)).
		Build()
}
