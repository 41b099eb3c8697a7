package get_available_slots

import (
	"time"

	"github.com/m04kA/SMP-BookingService/internal/domain"
)

// Request модель запроса на получение слотов
type Request struct {
	ServiceID int64     // ID услуги
	Date      time.Time // Дата для расчёта слотов (без времени)
}

// Response модель ответа со слотами на дату
// ServiceAvailable = false означает, что услуга не принимает бронирования -
// это отличимо от "на эту дату нет слотов"
type Response struct {
	ServiceID        int64         // ID услуги
	Date             time.Time     // Дата, на которую считались слоты
	ServiceAvailable bool          // Принимает ли услуга бронирования
	Slots            []domain.Slot // Слоты с признаком доступности
}
