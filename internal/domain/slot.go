package domain

import "github.com/m04kA/SMP-BookingService/pkg/types"

// Slot represents a fixed-width time slot of a service on a given date
type Slot struct {
	StartTime       types.TimeString
	DurationMinutes int
	Available       bool
}
