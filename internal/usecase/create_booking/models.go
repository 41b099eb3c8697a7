package create_booking

import (
	"time"

	"github.com/m04kA/SMP-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ClientID  int64            // ID клиента
	ServiceID int64            // ID услуги
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала слота (например, "10:00")
	Notes     *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // ID созданного бронирования
	BookingNumber   string           // Человекочитаемый номер
	ClientID        int64            // ID клиента
	ProviderID      int64            // ID провайдера услуги
	ServiceID       int64            // ID услуги
	BookingDate     time.Time        // Дата бронирования
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус бронирования
	PaymentStatus   string           // Статус оплаты

	// Денормализованные данные
	ServiceName string  // Название услуги
	TotalAmount float64 // Полная стоимость
	PlatformFee float64 // Комиссия платформы
	Currency    string  // Валюта
	Notes       *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
