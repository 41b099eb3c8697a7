package domain

import (
	"time"

	"github.com/m04kA/SMP-BookingService/pkg/types"
)

// ServiceStatus represents the moderation status of a service
type ServiceStatus string

const (
	ServiceActive          ServiceStatus = "active"
	ServiceInactive        ServiceStatus = "inactive"
	ServicePendingApproval ServiceStatus = "pending_approval"
)

// Service represents a bookable offering owned by a provider
type Service struct {
	ID                int64
	ProviderID        int64
	Name              string
	DurationMinutes   int
	BasePrice         float64
	Currency          string
	IsAvailable       bool
	Status            ServiceStatus
	CompletedBookings int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsBookable returns true if the service accepts new bookings
func (s *Service) IsBookable() bool {
	return s.Status == ServiceActive && s.IsAvailable
}

// WeeklyAvailabilityWindow is a recurring open-hours interval of a service
// Multiple windows per weekday are permitted; overlap is tolerated and
// treated as a union of bookable time
type WeeklyAvailabilityWindow struct {
	ID        int64
	ServiceID int64
	Weekday   time.Weekday
	StartTime types.TimeString
	EndTime   types.TimeString // must be after StartTime
	IsActive  bool
}

// DateOverride marks a specific calendar date fully unavailable,
// overriding all weekly windows for that date
type DateOverride struct {
	ID        int64
	ServiceID int64
	Date      time.Time
	Reason    *string
}
