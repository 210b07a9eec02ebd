package model

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseClock разбирает строку вида "HH:MM" в часы и минуты
func ParseClock(value string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid clock value %q", value)
	}

	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", value)
	}

	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", value)
	}

	return hour, minute, nil
}

// ParseHour возвращает только часовую часть времени "HH:MM", минуты не проверяются
func ParseHour(value string) (int, error) {
	field, _, _ := strings.Cut(strings.TrimSpace(value), ":")
	hour, err := strconv.Atoi(field)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", value)
	}
	return hour, nil
}
