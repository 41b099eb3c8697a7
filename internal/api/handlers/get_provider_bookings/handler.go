package get_provider_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMP-BookingService/internal/api/handlers"
	"github.com/m04kA/SMP-BookingService/internal/api/middleware"
	"github.com/m04kA/SMP-BookingService/internal/domain"
	"github.com/m04kA/SMP-BookingService/internal/service/bookings"
	"github.com/m04kA/SMP-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidProviderID = "некорректный ID провайдера"
	msgInvalidServiceID  = "некорректный параметр serviceId"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter     = "некорректные параметры фильтрации"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/bookings
// Параметры: serviceId, startDate, endDate, status, includeInactive
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/bookings - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /providers/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.GetProviderBookingsRequest{
		Actor:      actor,
		ProviderID: providerID,
	}

	query := r.URL.Query()

	if serviceIDStr := query.Get("serviceId"); serviceIDStr != "" {
		serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
		if err != nil || serviceID <= 0 {
			h.logger.Warn("GET /providers/{id}/bookings - Invalid service ID filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidServiceID)
			return
		}
		req.ServiceID = &serviceID
	}

	if startDateStr := query.Get("startDate"); startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			h.logger.Warn("GET /providers/{id}/bookings - Invalid start date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &startDate
	}

	if endDateStr := query.Get("endDate"); endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			h.logger.Warn("GET /providers/{id}/bookings - Invalid end date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.EndDate = &endDate
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	req.IncludeInactive = query.Get("includeInactive") == "true"

	result, err := h.service.GetProviderBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /providers/{id}/bookings - Access denied: provider_id=%d, user_id=%d", providerID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /providers/{id}/bookings - Invalid input: provider_id=%d, error=%v", providerID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /providers/{id}/bookings - Failed to get bookings: provider_id=%d, error=%v", providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{id}/bookings - Bookings retrieved: provider_id=%d, count=%d",
		providerID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
