package domain

// Default configuration values
const (
	DefaultSlotStepMinutes      = 30
	DefaultLockTTLMinutes       = 10
	DefaultSweepIntervalSeconds = 60
	DefaultPlatformFeeRate      = 0.10
)

// Business validation constants
const (
	MinSlotStepMinutes          = 5
	MaxSlotStepMinutes          = 480 // 8 hours
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// TerminalStatuses список терминальных статусов
// Бронирования в этих статусах не занимают слот
var TerminalStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
	StatusRejected,
	StatusNoShow,
}

// ActiveStatuses список нетерминальных статусов
// Используется для подсчёта занятости слотов и проверки конфликтов
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusAccepted,
	StatusInProgress,
}
