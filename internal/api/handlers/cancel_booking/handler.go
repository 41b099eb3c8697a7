package cancel_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMP-BookingService/internal/api/handlers"
	"github.com/m04kA/SMP-BookingService/internal/api/middleware"
	"github.com/m04kA/SMP-BookingService/internal/domain"
	updateBookingStatus "github.com/m04kA/SMP-BookingService/internal/usecase/update_booking_status"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingReason      = "не указана причина отмены"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgCannotCancel       = "бронирование нельзя отменить в текущем статусе"
	msgForbidden          = "доступ запрещен"
	msgConflict           = "бронирование было изменено параллельным запросом, повторите попытку"
)

type Handler struct {
	useCase UpdateBookingStatusUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// CancelBookingRequest HTTP запрос на отмену бронирования
type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
// Сахар над переходом статуса в cancelled с обязательной причиной
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.Reason == "" {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Missing cancellation reason: booking_id=%d", bookingID)
		handlers.RespondBadRequest(w, msgMissingReason)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &updateBookingStatus.Request{
		BookingID: bookingID,
		Actor:     actor,
		Status:    domain.StatusCancelled,
		Reason:    &req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, updateBookingStatus.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateBookingStatus.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Cannot cancel: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)

		case errors.Is(err, updateBookingStatus.ErrForbidden),
			errors.Is(err, updateBookingStatus.ErrNotInvolved):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Access denied: booking_id=%d, user_id=%d", bookingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateBookingStatus.ErrConflict):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Concurrent modification: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgConflict)

		case errors.Is(err, updateBookingStatus.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /bookings/{id}/cancel - Failed to cancel booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/cancel - Booking cancelled: booking_id=%d, user_id=%d",
		bookingID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
