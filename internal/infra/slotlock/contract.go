package slotlock

import (
	"context"

	"github.com/m04kA/SMP-BookingService/internal/domain"
)

// BookingChecker проверяет наличие закоммиченного активного бронирования
// на ключе слота. Это авторитетная проверка конфликта: лок лишь ускоряет
// отказ, источником истины всегда остается таблица бронирований
type BookingChecker interface {
	ExistsActiveAtSlot(ctx context.Context, key domain.SlotKey) (bool, error)
}

// Recorder интерфейс для метрик лок-менеджера
type Recorder interface {
	IncSlotLock(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// noopRecorder используется, когда метрики выключены
type noopRecorder struct{}

func (noopRecorder) IncSlotLock(string) {}

// Результаты операций для метрик
const (
	resultAcquired = "acquired"
	resultConflict = "conflict"
	resultReleased = "released"
	resultSwept    = "swept"
)
