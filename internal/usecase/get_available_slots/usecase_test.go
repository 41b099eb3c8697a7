package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMP-BookingService/internal/domain"
	catalogRepo "github.com/m04kA/SMP-BookingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMP-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetActiveByServiceAndDate(ctx context.Context, serviceID int64, date time.Time) ([]*domain.Booking, error) {
	return f.bookings, f.err
}

type fakeCatalogRepo struct {
	service    *domain.Service
	serviceErr error
	windows    []*domain.WeeklyAvailabilityWindow
	overridden bool
}

func (f *fakeCatalogRepo) GetServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	if f.serviceErr != nil {
		return nil, f.serviceErr
	}
	return f.service, nil
}

func (f *fakeCatalogRepo) GetActiveWindowsForWeekday(ctx context.Context, serviceID int64, weekday time.Weekday) ([]*domain.WeeklyAvailabilityWindow, error) {
	return f.windows, nil
}

func (f *fakeCatalogRepo) HasDateOverride(ctx context.Context, serviceID int64, date time.Time) (bool, error) {
	return f.overridden, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func bookableService() *domain.Service {
	return &domain.Service{
		ID:              1,
		ProviderID:      200,
		Name:            "Haircut",
		DurationMinutes: 60,
		BasePrice:       50,
		Currency:        "RUB",
		IsAvailable:     true,
		Status:          domain.ServiceActive,
	}
}

func window(start, end string) *domain.WeeklyAvailabilityWindow {
	return &domain.WeeklyAvailabilityWindow{
		ServiceID: 1,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
		IsActive:  true,
	}
}

// 2025-10-15 is a Wednesday
var testDate = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

func slotTimes(slots []domain.Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.StartTime.String()
	}
	return out
}

func TestExecute_GeneratesGridFromWindow(t *testing.T) {
	catalog := &fakeCatalogRepo{
		service: bookableService(),
		windows: []*domain.WeeklyAvailabilityWindow{window("09:00", "12:00")},
	}
	uc := NewUseCase(&fakeBookingRepo{}, catalog, 30, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)

	assert.True(t, resp.ServiceAvailable)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}, slotTimes(resp.Slots))
	for _, slot := range resp.Slots {
		assert.True(t, slot.Available)
		assert.Equal(t, 30, slot.DurationMinutes)
	}
}

func TestExecute_TrailingPartialSlotDropped(t *testing.T) {
	catalog := &fakeCatalogRepo{
		service: bookableService(),
		windows: []*domain.WeeklyAvailabilityWindow{window("09:00", "10:45")},
	}
	uc := NewUseCase(&fakeBookingRepo{}, catalog, 30, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)

	// 10:30 не помещается целиком до 10:45 и отбрасывается
	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, slotTimes(resp.Slots))
}

func TestExecute_OverlappingWindowsAreUnioned(t *testing.T) {
	catalog := &fakeCatalogRepo{
		service: bookableService(),
		windows: []*domain.WeeklyAvailabilityWindow{
			window("09:00", "11:00"),
			window("10:00", "12:00"),
		},
	}
	uc := NewUseCase(&fakeBookingRepo{}, catalog, 60, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)

	// Дубликаты схлопнуты, результат отсортирован
	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, slotTimes(resp.Slots))
}

func TestExecute_ActiveBookingMarksSlotsUnavailable(t *testing.T) {
	catalog := &fakeCatalogRepo{
		service: bookableService(),
		windows: []*domain.WeeklyAvailabilityWindow{window("09:00", "12:00")},
	}
	bookings := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{StartTime: types.TimeString("10:00"), DurationMinutes: 60, Status: domain.StatusAccepted},
		},
	}
	uc := NewUseCase(bookings, catalog, 30, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)

	byTime := make(map[string]bool)
	for _, slot := range resp.Slots {
		byTime[slot.StartTime.String()] = slot.Available
	}

	// Бронирование 10:00-11:00 закрывает слоты 10:00 и 10:30
	assert.True(t, byTime["09:00"])
	assert.True(t, byTime["09:30"])
	assert.False(t, byTime["10:00"])
	assert.False(t, byTime["10:30"])
	// Граничные слоты не считаются пересечением
	assert.True(t, byTime["11:00"])
	assert.True(t, byTime["11:30"])
}

func TestExecute_TerminalBookingDoesNotBlockSlot(t *testing.T) {
	catalog := &fakeCatalogRepo{
		service: bookableService(),
		windows: []*domain.WeeklyAvailabilityWindow{window("10:00", "11:00")},
	}
	bookings := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{StartTime: types.TimeString("10:00"), DurationMinutes: 60, Status: domain.StatusCancelled},
		},
	}
	uc := NewUseCase(bookings, catalog, 60, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 1)
	assert.True(t, resp.Slots[0].Available)
}

func TestExecute_DateOverrideYieldsEmptyGrid(t *testing.T) {
	catalog := &fakeCatalogRepo{
		service:    bookableService(),
		windows:    []*domain.WeeklyAvailabilityWindow{window("09:00", "18:00")},
		overridden: true,
	}
	uc := NewUseCase(&fakeBookingRepo{}, catalog, 30, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)

	assert.True(t, resp.ServiceAvailable)
	assert.Empty(t, resp.Slots)
}

func TestExecute_UnbookableServiceFlagged(t *testing.T) {
	svc := bookableService()
	svc.IsAvailable = false
	catalog := &fakeCatalogRepo{
		service: svc,
		windows: []*domain.WeeklyAvailabilityWindow{window("09:00", "18:00")},
	}
	uc := NewUseCase(&fakeBookingRepo{}, catalog, 30, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)

	// Отличимо от пустой сетки доступной услуги
	assert.False(t, resp.ServiceAvailable)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	catalog := &fakeCatalogRepo{serviceErr: catalogRepo.ErrServiceNotFound}
	uc := NewUseCase(&fakeBookingRepo{}, catalog, 30, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeCatalogRepo{}, 30, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 0, Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ServiceID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
