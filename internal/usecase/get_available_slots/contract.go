package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMP-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetActiveByServiceAndDate получает нетерминальные бронирования услуги на дату
	GetActiveByServiceAndDate(ctx context.Context, serviceID int64, date time.Time) ([]*domain.Booking, error)
}

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
	GetActiveWindowsForWeekday(ctx context.Context, serviceID int64, weekday time.Weekday) ([]*domain.WeeklyAvailabilityWindow, error)
	HasDateOverride(ctx context.Context, serviceID int64, date time.Time) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
