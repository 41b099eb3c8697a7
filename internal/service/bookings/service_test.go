package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMP-BookingService/internal/domain"
	storage "github.com/m04kA/SMP-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMP-BookingService/internal/service/bookings/models"
	"github.com/m04kA/SMP-BookingService/pkg/types"
)

type fakeRepo struct {
	booking *domain.Booking
	list    []*domain.Booking
	err     error

	lastFilter domain.ProviderBookingsFilter
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.booking, nil
}

func (f *fakeRepo) GetByClientID(ctx context.Context, clientID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}

func (f *fakeRepo) GetByProviderWithFilter(ctx context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastFilter = filter
	return f.list, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func sampleBooking() *domain.Booking {
	return &domain.Booking{
		ID:              1,
		BookingNumber:   "SMP-CAFEBABE",
		ClientID:        100,
		ProviderID:      200,
		ServiceID:       5,
		BookingDate:     time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 60,
		Status:          domain.StatusAccepted,
		PaymentStatus:   domain.PaymentPending,
		ServiceName:     "Haircut",
		TotalAmount:     100,
		PlatformFee:     10,
		Currency:        "RUB",
	}
}

func TestGetByID_AccessControl(t *testing.T) {
	svc := NewService(&fakeRepo{booking: sampleBooking()}, nopLogger{})
	ctx := context.Background()

	t.Run("client sees own booking", func(t *testing.T) {
		resp, err := svc.GetByID(ctx, 1, domain.Actor{UserID: 100, Role: domain.RoleClient})
		require.NoError(t, err)
		assert.Equal(t, "2025-10-15", resp.BookingDate)
		assert.Equal(t, "10:00", resp.StartTime)
	})

	t.Run("provider sees own booking", func(t *testing.T) {
		_, err := svc.GetByID(ctx, 1, domain.Actor{UserID: 200, Role: domain.RoleProvider})
		assert.NoError(t, err)
	})

	t.Run("admin sees any booking", func(t *testing.T) {
		_, err := svc.GetByID(ctx, 1, domain.Actor{UserID: 999, Role: domain.RoleAdmin})
		assert.NoError(t, err)
	})

	t.Run("stranger denied", func(t *testing.T) {
		_, err := svc.GetByID(ctx, 1, domain.Actor{UserID: 555, Role: domain.RoleClient})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(&fakeRepo{err: storage.ErrBookingNotFound}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 1, domain.Actor{UserID: 100, Role: domain.RoleClient})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetClientBookings(t *testing.T) {
	svc := NewService(&fakeRepo{list: []*domain.Booking{sampleBooking()}}, nopLogger{})
	ctx := context.Background()

	t.Run("client lists own history", func(t *testing.T) {
		resp, err := svc.GetClientBookings(ctx, &models.GetClientBookingsRequest{
			Actor:    domain.Actor{UserID: 100, Role: domain.RoleClient},
			ClientID: 100,
		})
		require.NoError(t, err)
		require.Len(t, resp.Bookings, 1)
	})

	t.Run("other client denied", func(t *testing.T) {
		_, err := svc.GetClientBookings(ctx, &models.GetClientBookingsRequest{
			Actor:    domain.Actor{UserID: 42, Role: domain.RoleClient},
			ClientID: 100,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("admin allowed", func(t *testing.T) {
		_, err := svc.GetClientBookings(ctx, &models.GetClientBookingsRequest{
			Actor:    domain.Actor{UserID: 1, Role: domain.RoleAdmin},
			ClientID: 100,
		})
		assert.NoError(t, err)
	})

	t.Run("unknown status filter rejected", func(t *testing.T) {
		bad := "destroyed"
		_, err := svc.GetClientBookings(ctx, &models.GetClientBookingsRequest{
			Actor:    domain.Actor{UserID: 100, Role: domain.RoleClient},
			ClientID: 100,
			Status:   &bad,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGetProviderBookings(t *testing.T) {
	repo := &fakeRepo{list: []*domain.Booking{sampleBooking()}}
	svc := NewService(repo, nopLogger{})
	ctx := context.Background()

	t.Run("provider lists own bookings with filters", func(t *testing.T) {
		serviceID := int64(5)
		status := "accepted"
		start := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC)

		resp, err := svc.GetProviderBookings(ctx, &models.GetProviderBookingsRequest{
			Actor:      domain.Actor{UserID: 200, Role: domain.RoleProvider},
			ProviderID: 200,
			ServiceID:  &serviceID,
			StartDate:  &start,
			EndDate:    &end,
			Status:     &status,
		})
		require.NoError(t, err)
		require.Len(t, resp.Bookings, 1)

		assert.Equal(t, int64(200), repo.lastFilter.ProviderID)
		require.NotNil(t, repo.lastFilter.Status)
		assert.Equal(t, domain.StatusAccepted, *repo.lastFilter.Status)
	})

	t.Run("other provider denied", func(t *testing.T) {
		_, err := svc.GetProviderBookings(ctx, &models.GetProviderBookingsRequest{
			Actor:      domain.Actor{UserID: 300, Role: domain.RoleProvider},
			ProviderID: 200,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("end date before start date rejected", func(t *testing.T) {
		start := time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
		_, err := svc.GetProviderBookings(ctx, &models.GetProviderBookingsRequest{
			Actor:      domain.Actor{UserID: 200, Role: domain.RoleProvider},
			ProviderID: 200,
			StartDate:  &start,
			EndDate:    &end,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
