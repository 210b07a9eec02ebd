package formatting

// Pluralize выбирает форму слова для числа: one (1, 21), few (2-4, 22-24), many (остальные)
func Pluralize(count int, one, few, many string) string {
	if count < 0 {
		count = -count
	}
	if count%10 == 1 && count%100 != 11 {
		return one
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return few
	}
	return many
}

// PluralizeLessons возвращает правильное склонение слова "занятие"
func PluralizeLessons(count int) string {
	return Pluralize(count, "занятие", "занятия", "занятий")
}

// PluralizeStudents возвращает правильное склонение слова "студент"
func PluralizeStudents(count int) string {
	return Pluralize(count, "студент", "студента", "студентов")
}

// PluralizeBookings возвращает правильное склонение слова "запись"
func PluralizeBookings(count int) string {
	return Pluralize(count, "запись", "записи", "записей")
}

// PluralizeWeeks возвращает склонение слова "неделя" в винительном падеже
func PluralizeWeeks(count int) string {
	return Pluralize(count, "неделю", "недели", "недель")
}
