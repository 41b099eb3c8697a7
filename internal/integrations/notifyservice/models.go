package notifyservice

// Типы уведомлений, которые отправляет ядро бронирования
const (
	TypeNewBooking    = "booking.new"
	TypeStatusChanged = "booking.status_changed"
)

// Notification событие для сервиса уведомлений
// Доставка - забота внешнего сервиса, ядро работает fire-and-forget
type Notification struct {
	RecipientID int64   `json:"recipientId"`
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	Message     string  `json:"message"`
	DeepLink    *string `json:"deepLink,omitempty"`
}

// ErrorResponse модель ошибки от NotifyService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
