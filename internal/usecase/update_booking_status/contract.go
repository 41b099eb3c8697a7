package update_booking_status

import (
	"context"

	"github.com/m04kA/SMP-BookingService/internal/domain"
	"github.com/m04kA/SMP-BookingService/internal/integrations/notifyservice"
)

// BookingRepository интерфейс репозитория бронирований
// Методы перехода выполняют compare-and-swap по предыдущему статусу
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, from domain.BookingStatus, reason string) error
	Complete(ctx context.Context, id int64, from domain.BookingStatus) error
	UpdateNotes(ctx context.Context, id int64, notes string) error
}

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	IncrementCompletedBookings(ctx context.Context, serviceID int64) error
}

// LedgerRepository интерфейс леджера заработка провайдеров
type LedgerRepository interface {
	CreditProvider(ctx context.Context, providerID int64, amount float64, currency string) error
}

// TransactionManager интерфейс для управления транзакциями
// Переход статуса и его побочные эффекты применяются атомарно
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс отправки уведомлений
type Notifier interface {
	SendBestEffort(ctx context.Context, n notifyservice.Notification)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
