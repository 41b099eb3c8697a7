package types

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// timeLayout формат времени "HH:MM"
const timeLayout = "15:04"

// minutesPerDay количество минут в сутках
const minutesPerDay = 24 * 60

// TimeString время суток в формате "HH:MM" без привязки к дате
// Используется для времени начала слотов и бронирований
type TimeString string

// NewTimeString создает TimeString из time.Time (отбрасывает дату и секунды)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString парсит строку "HH:MM" в TimeString
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid time string format: %q", s)
	}
	return TimeString(t.Format(timeLayout)), nil
}

// String возвращает строковое представление "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// Minutes возвращает количество минут с начала суток
func (t TimeString) Minutes() (int, error) {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return 0, fmt.Errorf("invalid time string format: %q", t)
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes возвращает время через delta минут
// Возвращает ошибку, если результат выходит за пределы суток
func (t TimeString) AddMinutes(delta int) (TimeString, error) {
	minutes, err := t.Minutes()
	if err != nil {
		return "", err
	}

	total := minutes + delta
	if total < 0 || total > minutesPerDay {
		return "", fmt.Errorf("time %s + %d minutes is out of day range", t, delta)
	}

	// 24:00 допустимо только как правая граница интервала,
	// представляем его как 00:00 следующего дня нельзя - сравнения сломаются,
	// поэтому отдельный случай
	if total == minutesPerDay {
		return TimeString("24:00"), nil
	}

	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// Value реализует driver.Valuer для записи в БД
func (t TimeString) Value() (driver.Value, error) {
	return string(t), nil
}

// Scan реализует sql.Scanner для чтения из БД
// Поддерживает string, []byte и time.Time (колонки типа TIME)
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		// Postgres TIME приходит как "10:00:00" - отрезаем секунды
		if len(v) > 5 {
			v = v[:5]
		}
		*t = TimeString(v)
		return nil
	case []byte:
		s := string(v)
		if len(s) > 5 {
			s = s[:5]
		}
		*t = TimeString(s)
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeString", src)
	}
}
