package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMP-BookingService/internal/domain"
	catalogRepo "github.com/m04kA/SMP-BookingService/internal/infra/storage/catalog"
)

// UseCase use case расчёта доступных слотов услуги на дату
// Чистое чтение без побочных эффектов: недельные окна минус
// активные бронирования с учётом блокировок дат
type UseCase struct {
	bookingRepo BookingRepository
	catalogRepo CatalogRepository
	slotStep    int
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	slotStep int,
	logger Logger,
) *UseCase {
	if slotStep <= 0 {
		slotStep = domain.DefaultSlotStepMinutes
	}
	return &UseCase{
		bookingRepo: bookingRepo,
		catalogRepo: catalogRepo,
		slotStep:    slotStep,
		logger:      logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%d, date=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу
	service, err := uc.catalogRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Услуга не принимает бронирования - пустой результат
	// с явным флагом, отличимым от "нет слотов на дату"
	if !service.IsBookable() {
		uc.logger.Info("GetAvailableSlots: service id=%d is not bookable (status=%s, available=%t)",
			service.ID, service.Status, service.IsAvailable)
		return &Response{
			ServiceID:        req.ServiceID,
			Date:             req.Date,
			ServiceAvailable: false,
			Slots:            []domain.Slot{},
		}, nil
	}

	// 4. Блокировка даты перекрывает все недельные окна
	overridden, err := uc.catalogRepo.HasDateOverride(ctx, req.ServiceID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to check date override: %v", err)
		return nil, fmt.Errorf("%w: failed to check date override: %v", ErrInternal, err)
	}
	if overridden {
		uc.logger.Info("GetAvailableSlots: date %s is overridden for service id=%d",
			req.Date.Format(domain.DateFormat), req.ServiceID)
		return &Response{
			ServiceID:        req.ServiceID,
			Date:             req.Date,
			ServiceAvailable: true,
			Slots:            []domain.Slot{},
		}, nil
	}

	// 5. Получаем активные окна на день недели даты
	windows, err := uc.catalogRepo.GetActiveWindowsForWeekday(ctx, req.ServiceID, req.Date.Weekday())
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get windows: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability windows: %v", ErrInternal, err)
	}

	// 6. Генерируем сетку слотов с шагом slotStep
	timeSlots, err := generateDaySlots(windows, uc.slotStep)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, err)
	}

	// 7. Получаем активные бронирования услуги на эту дату
	bookings, err := uc.bookingRepo.GetActiveByServiceAndDate(ctx, req.ServiceID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 8. Размечаем занятость слотов
	slots := markAvailability(timeSlots, uc.slotStep, bookings)

	uc.logger.Info("GetAvailableSlots: generated %d slots for service=%d, date=%s",
		len(slots), req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		ServiceID:        req.ServiceID,
		Date:             req.Date,
		ServiceAvailable: true,
		Slots:            slots,
	}, nil
}
