package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMP-BookingService/internal/domain"
	"github.com/m04kA/SMP-BookingService/internal/integrations/notifyservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	// Delete используется только для отката записи при проигранной гонке
	// подтверждения лока
	Delete(ctx context.Context, id int64) error
}

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
}

// SlotLockManager интерфейс менеджера слот-локов
// Acquire и Confirm образуют строгий mutual-exclusion гейт по ключу слота
type SlotLockManager interface {
	Acquire(ctx context.Context, key domain.SlotKey) (*domain.SlotLock, error)
	Confirm(ctx context.Context, key domain.SlotKey, bookingID int64) error
	Release(ctx context.Context, key domain.SlotKey)
}

// Notifier интерфейс отправки уведомлений
// Доставка best-effort: её сбой не роняет операцию бронирования
type Notifier interface {
	SendBestEffort(ctx context.Context, n notifyservice.Notification)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
