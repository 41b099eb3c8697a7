package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrStatusConflict возвращается, когда compare-and-swap статуса не прошёл:
	// статус в БД уже не тот, от которого выполнялся переход
	ErrStatusConflict = errors.New("booking.repository: status changed concurrently")

	// ErrSlotOccupied возвращается при нарушении уникального индекса
	// (service_id, booking_date, start_time) по активным статусам -
	// страховка под лок-менеджером
	ErrSlotOccupied = errors.New("booking.repository: slot already occupied")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
