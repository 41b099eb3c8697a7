package domain

import (
	"time"

	"github.com/m04kA/SMP-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusAccepted   BookingStatus = "accepted"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusRejected   BookingStatus = "rejected"
	StatusNoShow     BookingStatus = "no_show"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Booking represents a client's reservation of a provider service slot
type Booking struct {
	ID            int64
	BookingNumber string
	ClientID      int64
	ProviderID    int64
	ServiceID     int64
	BookingDate   time.Time
	StartTime     types.TimeString
	// Copied from the service at creation time so later service edits
	// do not retroactively alter existing bookings
	DurationMinutes int
	Status          BookingStatus
	PaymentStatus   PaymentStatus

	// Denormalized data for history
	ServiceName string
	TotalAmount float64
	PlatformFee float64
	Currency    string
	Notes       *string

	CancellationReason *string
	CancelledAt        *time.Time
	CompletedAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true if no further transition is permitted
func (b *Booking) IsTerminal() bool {
	return b.Status.IsTerminal()
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return !b.Status.IsTerminal()
}

// IsTerminal returns true for statuses with no outgoing transitions
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusRejected, StatusNoShow:
		return true
	}
	return false
}

// ProviderBookingsFilter фильтр для получения бронирований провайдера
type ProviderBookingsFilter struct {
	ProviderID      int64          // Обязательный параметр
	ServiceID       *int64         // Фильтр по услуге (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли терминальные бронирования
}
