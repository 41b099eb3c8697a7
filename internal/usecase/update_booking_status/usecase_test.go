package update_booking_status

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMP-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMP-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMP-BookingService/internal/integrations/notifyservice"
	"github.com/m04kA/SMP-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	booking *domain.Booking

	getErr    error
	updateErr error
	cancelErr error
	notesErr  error

	cancelReason string
	notesCalls   int
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	out := *f.booking
	return &out, nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if f.booking.Status != from {
		return bookingRepo.ErrStatusConflict
	}
	f.booking.Status = to
	return nil
}

func (f *fakeBookingRepo) Cancel(ctx context.Context, id int64, from domain.BookingStatus, reason string) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	if f.booking.Status != from {
		return bookingRepo.ErrStatusConflict
	}
	now := time.Now()
	f.booking.Status = domain.StatusCancelled
	f.booking.PaymentStatus = domain.PaymentRefunded
	f.booking.CancellationReason = &reason
	f.booking.CancelledAt = &now
	f.cancelReason = reason
	return nil
}

func (f *fakeBookingRepo) Complete(ctx context.Context, id int64, from domain.BookingStatus) error {
	if f.booking.Status != from {
		return bookingRepo.ErrStatusConflict
	}
	now := time.Now()
	f.booking.Status = domain.StatusCompleted
	f.booking.PaymentStatus = domain.PaymentPaid
	f.booking.CompletedAt = &now
	return nil
}

func (f *fakeBookingRepo) UpdateNotes(ctx context.Context, id int64, notes string) error {
	f.notesCalls++
	if f.notesErr != nil {
		return f.notesErr
	}
	f.booking.Notes = &notes
	return nil
}

type fakeCatalogRepo struct {
	incremented []int64
}

func (f *fakeCatalogRepo) IncrementCompletedBookings(ctx context.Context, serviceID int64) error {
	f.incremented = append(f.incremented, serviceID)
	return nil
}

type fakeLedgerRepo struct {
	providerID int64
	amount     float64
	currency   string
	calls      int
}

func (f *fakeLedgerRepo) CreditProvider(ctx context.Context, providerID int64, amount float64, currency string) error {
	f.providerID = providerID
	f.amount = amount
	f.currency = currency
	f.calls++
	return nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeNotifier struct {
	sent []notifyservice.Notification
}

func (f *fakeNotifier) SendBestEffort(ctx context.Context, n notifyservice.Notification) {
	f.sent = append(f.sent, n)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func testBooking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:              1,
		BookingNumber:   "SMP-DEADBEEF",
		ClientID:        100,
		ProviderID:      200,
		ServiceID:       5,
		BookingDate:     time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 60,
		Status:          status,
		PaymentStatus:   domain.PaymentPending,
		ServiceName:     "Haircut",
		TotalAmount:     100,
		PlatformFee:     10,
		Currency:        "RUB",
	}
}

var (
	clientActor   = domain.Actor{UserID: 100, Role: domain.RoleClient}
	providerActor = domain.Actor{UserID: 200, Role: domain.RoleProvider}
	adminActor    = domain.Actor{UserID: 1, Role: domain.RoleAdmin}
)

func newTestEnv(status domain.BookingStatus) (*UseCase, *fakeBookingRepo, *fakeCatalogRepo, *fakeLedgerRepo, *fakeNotifier) {
	repo := &fakeBookingRepo{booking: testBooking(status)}
	catalog := &fakeCatalogRepo{}
	ledger := &fakeLedgerRepo{}
	notifier := &fakeNotifier{}
	uc := NewUseCase(repo, catalog, ledger, passthroughTxManager{}, notifier, nopLogger{})
	return uc, repo, catalog, ledger, notifier
}

func TestExecute_ProviderAcceptsPending(t *testing.T) {
	uc, _, _, ledger, notifier := newTestEnv(domain.StatusPending)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 1,
		Actor:     providerActor,
		Status:    domain.StatusAccepted,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusAccepted), resp.Status)
	assert.Equal(t, string(domain.PaymentPending), resp.PaymentStatus)
	assert.Zero(t, ledger.calls)

	// Провайдер действует - уведомляется клиент, ровно одно событие
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, int64(100), notifier.sent[0].RecipientID)
	assert.Equal(t, notifyservice.TypeStatusChanged, notifier.sent[0].Type)
}

func TestExecute_CompleteSideEffects(t *testing.T) {
	uc, _, catalog, ledger, notifier := newTestEnv(domain.StatusInProgress)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 1,
		Actor:     providerActor,
		Status:    domain.StatusCompleted,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	assert.Equal(t, string(domain.PaymentPaid), resp.PaymentStatus)
	require.NotNil(t, resp.CompletedAt)

	// Провайдеру начислена сумма за вычетом комиссии
	assert.Equal(t, 1, ledger.calls)
	assert.Equal(t, int64(200), ledger.providerID)
	assert.Equal(t, 90.0, ledger.amount)
	assert.Equal(t, "RUB", ledger.currency)

	// Счётчик завершённых бронирований услуги увеличен
	assert.Equal(t, []int64{5}, catalog.incremented)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, int64(100), notifier.sent[0].RecipientID)
}

func TestExecute_NotesUpdatedWithStatus(t *testing.T) {
	uc, repo, _, _, _ := newTestEnv(domain.StatusPending)

	notes := "домофон 42, второй этаж"
	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 1,
		Actor:     providerActor,
		Status:    domain.StatusAccepted,
		Notes:     &notes,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusAccepted), resp.Status)
	require.NotNil(t, resp.Notes)
	assert.Equal(t, notes, *resp.Notes)
	assert.Equal(t, 1, repo.notesCalls)
}

func TestExecute_NotesOmittedLeavesExisting(t *testing.T) {
	uc, repo, _, _, _ := newTestEnv(domain.StatusPending)
	existing := "старая заметка"
	repo.booking.Notes = &existing

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 1,
		Actor:     providerActor,
		Status:    domain.StatusAccepted,
	})
	require.NoError(t, err)

	assert.Zero(t, repo.notesCalls)
	require.NotNil(t, resp.Notes)
	assert.Equal(t, existing, *resp.Notes)
}

func TestExecute_NotesTooLong(t *testing.T) {
	uc, repo, _, _, _ := newTestEnv(domain.StatusPending)

	long := make([]byte, domain.MaxNotesLength+1)
	for i := range long {
		long[i] = 'n'
	}
	notes := string(long)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 1,
		Actor:     providerActor,
		Status:    domain.StatusAccepted,
		Notes:     &notes,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, domain.StatusPending, repo.booking.Status)
}

func TestExecute_ClientCancelsWithRefund(t *testing.T) {
	uc, repo, _, ledger, notifier := newTestEnv(domain.StatusAccepted)

	reason := "передумал"
	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 1,
		Actor:     clientActor,
		Status:    domain.StatusCancelled,
		Reason:    &reason,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, string(domain.PaymentRefunded), resp.PaymentStatus)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, reason, *resp.CancellationReason)
	require.NotNil(t, resp.CancelledAt)
	assert.Equal(t, reason, repo.cancelReason)
	assert.Zero(t, ledger.calls)

	// Клиент действует - уведомляется провайдер
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, int64(200), notifier.sent[0].RecipientID)
}

func TestExecute_AdminTransitionNotifiesClient(t *testing.T) {
	uc, _, _, _, notifier := newTestEnv(domain.StatusPending)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 1,
		Actor:     adminActor,
		Status:    domain.StatusRejected,
	})
	require.NoError(t, err)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, int64(100), notifier.sent[0].RecipientID)
}

func TestExecute_InvalidTransitionKeepsStatusPair(t *testing.T) {
	uc, _, _, _, notifier := newTestEnv(domain.StatusPending)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 1,
		Actor:     providerActor,
		Status:    domain.StatusCompleted,
	})
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Contains(t, err.Error(), "pending -> completed")
	assert.Empty(t, notifier.sent)

	// Самопереход клиентом - тоже нарушение графа, а не отказ по роли
	uc, _, _, _, _ = newTestEnv(domain.StatusAccepted)
	_, err = uc.Execute(context.Background(), &Request{
		BookingID: 1,
		Actor:     clientActor,
		Status:    domain.StatusAccepted,
	})
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Contains(t, err.Error(), "accepted -> accepted")
}

func TestExecute_ClientMayNotAccept(t *testing.T) {
	uc, repo, _, _, _ := newTestEnv(domain.StatusPending)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 1,
		Actor:     clientActor,
		Status:    domain.StatusAccepted,
	})
	require.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, domain.StatusPending, repo.booking.Status)
}

func TestExecute_StrangerNotInvolved(t *testing.T) {
	uc, _, _, _, _ := newTestEnv(domain.StatusPending)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 1,
		Actor:     domain.Actor{UserID: 555, Role: domain.RoleClient},
		Status:    domain.StatusCancelled,
	})
	assert.ErrorIs(t, err, ErrNotInvolved)
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc, repo, _, _, _ := newTestEnv(domain.StatusPending)
	repo.getErr = bookingRepo.ErrBookingNotFound

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 1,
		Actor:     clientActor,
		Status:    domain.StatusCancelled,
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_ConcurrentModificationConflict(t *testing.T) {
	uc, repo, _, _, notifier := newTestEnv(domain.StatusPending)
	repo.updateErr = bookingRepo.ErrStatusConflict

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 1,
		Actor:     providerActor,
		Status:    domain.StatusAccepted,
	})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Empty(t, notifier.sent)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc, _, _, _, _ := newTestEnv(domain.StatusPending)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 0,
		Actor:     clientActor,
		Status:    domain.StatusCancelled,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		BookingID: 1,
		Actor:     clientActor,
		Status:    domain.BookingStatus("destroyed"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
