package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMP-BookingService/pkg/types"
)

// SlotKey identifies the slot a creation attempt is competing for
type SlotKey struct {
	ServiceID int64
	Date      time.Time
	StartTime types.TimeString
}

// String возвращает каноническое строковое представление ключа
// Используется как ключ в lock map и в Redis
func (k SlotKey) String() string {
	return fmt.Sprintf("slot:%d:%s:%s", k.ServiceID, k.Date.Format(DateFormat), k.StartTime)
}

// SlotLock is a short-lived advisory lock on a slot key
// It accelerates conflict rejection; the authoritative conflict check
// is always the committed bookings table
type SlotLock struct {
	Token     string // unique lock identifier
	Key       SlotKey
	BookingID *int64 // bound once the booking row is durably written
	ExpiresAt time.Time
}

// IsExpired returns true if the lock's lease has elapsed
// An expired lock is treated as absent and is replaced, not reused
func (l *SlotLock) IsExpired(now time.Time) bool {
	return !now.Before(l.ExpiresAt)
}
