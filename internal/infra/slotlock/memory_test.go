package slotlock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMP-BookingService/internal/domain"
	"github.com/m04kA/SMP-BookingService/pkg/types"
)

type fakeChecker struct {
	mu    sync.Mutex
	taken bool
	err   error
	calls int
}

func (f *fakeChecker) ExistsActiveAtSlot(ctx context.Context, key domain.SlotKey) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.taken, f.err
}

type nopLogger struct{}

func (nopLogger) Debug(format string, v ...interface{}) {}
func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func testKey() domain.SlotKey {
	return domain.SlotKey{
		ServiceID: 42,
		Date:      time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("10:00"),
	}
}

func newTestManager(checker BookingChecker, ttl time.Duration) *MemoryManager {
	return NewMemoryManager(checker, ttl, time.Minute, nil, nopLogger{})
}

func TestMemoryManager_AcquireAndConfirm(t *testing.T) {
	m := newTestManager(&fakeChecker{}, time.Minute)
	ctx := context.Background()
	key := testKey()

	lock, err := m.Acquire(ctx, key)
	require.NoError(t, err)
	require.NotEmpty(t, lock.Token)
	assert.Nil(t, lock.BookingID)

	require.NoError(t, m.Confirm(ctx, key, 7))

	// Повторный Confirm тем же ID идемпотентен
	require.NoError(t, m.Confirm(ctx, key, 7))

	// Привязка к другому бронированию отклоняется
	assert.ErrorIs(t, m.Confirm(ctx, key, 8), ErrLockBoundToOther)
}

func TestMemoryManager_AcquireConflict(t *testing.T) {
	m := newTestManager(&fakeChecker{}, time.Minute)
	ctx := context.Background()
	key := testKey()

	_, err := m.Acquire(ctx, key)
	require.NoError(t, err)

	// Второй захват того же ключа отклоняется немедленно
	_, err = m.Acquire(ctx, key)
	assert.ErrorIs(t, err, ErrSlotTaken)

	// Другой ключ свободен
	other := key
	other.StartTime = types.TimeString("11:00")
	_, err = m.Acquire(ctx, other)
	assert.NoError(t, err)
}

func TestMemoryManager_AcquireRejectsCommittedBooking(t *testing.T) {
	checker := &fakeChecker{taken: true}
	m := newTestManager(checker, time.Minute)
	key := testKey()

	_, err := m.Acquire(context.Background(), key)
	assert.ErrorIs(t, err, ErrSlotTaken)

	// Резервация снята - ключ снова доступен для захвата
	checker.taken = false
	_, err = m.Acquire(context.Background(), key)
	assert.NoError(t, err)
}

func TestMemoryManager_ExpiredLockIsReplaced(t *testing.T) {
	m := newTestManager(&fakeChecker{}, 10*time.Millisecond)
	ctx := context.Background()
	key := testKey()

	first, err := m.Acquire(ctx, key)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	second, err := m.Acquire(ctx, key)
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, second.Token)

	// Confirm после истечения нашего лока видит чужой лок как отсутствующий свой
	// и не затирает его токен
	assert.NoError(t, m.Confirm(ctx, key, 1))
}

func TestMemoryManager_ConfirmMissingLock(t *testing.T) {
	m := newTestManager(&fakeChecker{}, time.Minute)
	assert.ErrorIs(t, m.Confirm(context.Background(), testKey(), 1), ErrLockNotFound)
}

func TestMemoryManager_ReleaseIsIdempotent(t *testing.T) {
	m := newTestManager(&fakeChecker{}, time.Minute)
	ctx := context.Background()
	key := testKey()

	_, err := m.Acquire(ctx, key)
	require.NoError(t, err)

	m.Release(ctx, key)
	m.Release(ctx, key) // no-op

	// После Release ключ свободен
	_, err = m.Acquire(ctx, key)
	assert.NoError(t, err)
}

func TestMemoryManager_ConcurrentAcquireSingleWinner(t *testing.T) {
	m := newTestManager(&fakeChecker{}, time.Minute)
	key := testKey()

	const attempts = 32
	var wg sync.WaitGroup
	var mu sync.Mutex
	acquired := 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.Acquire(context.Background(), key); err == nil {
				mu.Lock()
				acquired++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, acquired, "exactly one concurrent acquire must win")
}

func TestMemoryManager_SweepRemovesExpired(t *testing.T) {
	m := NewMemoryManager(&fakeChecker{}, 10*time.Millisecond, time.Minute, nil, nopLogger{})
	ctx := context.Background()

	key := testKey()
	_, err := m.Acquire(ctx, key)
	require.NoError(t, err)

	fresh := key
	fresh.StartTime = types.TimeString("12:00")

	time.Sleep(20 * time.Millisecond)
	_, err = m.Acquire(ctx, fresh)
	require.NoError(t, err)

	m.sweep()

	m.mu.Lock()
	_, expiredPresent := m.locks[key.String()]
	_, freshPresent := m.locks[fresh.String()]
	m.mu.Unlock()

	assert.False(t, expiredPresent)
	assert.True(t, freshPresent)
}

func TestMemoryManager_StartStop(t *testing.T) {
	m := NewMemoryManager(&fakeChecker{}, time.Minute, 5*time.Millisecond, nil, nopLogger{})
	m.Start()
	time.Sleep(15 * time.Millisecond)
	m.Stop() // должен вернуться, дождавшись завершения цикла
}

func TestMemoryManager_StopWithoutStart(t *testing.T) {
	m := NewMemoryManager(&fakeChecker{}, time.Minute, 5*time.Millisecond, nil, nopLogger{})

	done := make(chan struct{})
	go func() {
		m.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop without Start must return immediately")
	}
}
