package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestBooking(status BookingStatus) *Booking {
	return &Booking{
		ID:         1,
		ClientID:   100,
		ProviderID: 200,
		ServiceID:  300,
		Status:     status,
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{"pending to accepted", StatusPending, StatusAccepted, true},
		{"pending to rejected", StatusPending, StatusRejected, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"accepted to in_progress", StatusAccepted, StatusInProgress, true},
		{"accepted to cancelled", StatusAccepted, StatusCancelled, true},
		{"in_progress to completed", StatusInProgress, StatusCompleted, true},

		{"pending to completed", StatusPending, StatusCompleted, false},
		{"pending to in_progress", StatusPending, StatusInProgress, false},
		{"accepted to rejected", StatusAccepted, StatusRejected, false},
		{"in_progress to cancelled", StatusInProgress, StatusCancelled, false},
		{"accepted to pending", StatusAccepted, StatusPending, false},
		{"completed to anything", StatusCompleted, StatusCancelled, false},
		{"cancelled is terminal", StatusCancelled, StatusAccepted, false},
		{"rejected is terminal", StatusRejected, StatusAccepted, false},
		{"no_show is terminal", StatusNoShow, StatusAccepted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestValidateTransition_RoleGating(t *testing.T) {
	client := Actor{UserID: 100, Role: RoleClient}
	provider := Actor{UserID: 200, Role: RoleProvider}
	admin := Actor{UserID: 999, Role: RoleAdmin}

	t.Run("provider accepts pending booking", func(t *testing.T) {
		err := ValidateTransition(provider, newTestBooking(StatusPending), StatusAccepted)
		assert.NoError(t, err)
	})

	t.Run("client may not accept", func(t *testing.T) {
		err := ValidateTransition(client, newTestBooking(StatusPending), StatusAccepted)
		assert.ErrorIs(t, err, ErrTransitionForbidden)
	})

	t.Run("client may not complete", func(t *testing.T) {
		err := ValidateTransition(client, newTestBooking(StatusInProgress), StatusCompleted)
		assert.ErrorIs(t, err, ErrTransitionForbidden)
	})

	t.Run("client cancels own pending booking", func(t *testing.T) {
		err := ValidateTransition(client, newTestBooking(StatusPending), StatusCancelled)
		assert.NoError(t, err)
	})

	t.Run("provider cancels accepted booking", func(t *testing.T) {
		err := ValidateTransition(provider, newTestBooking(StatusAccepted), StatusCancelled)
		assert.NoError(t, err)
	})

	t.Run("admin may drive any valid transition", func(t *testing.T) {
		assert.NoError(t, ValidateTransition(admin, newTestBooking(StatusPending), StatusRejected))
		assert.NoError(t, ValidateTransition(admin, newTestBooking(StatusAccepted), StatusInProgress))
		assert.NoError(t, ValidateTransition(admin, newTestBooking(StatusInProgress), StatusCompleted))
	})
}

func TestValidateTransition_Involvement(t *testing.T) {
	stranger := Actor{UserID: 555, Role: RoleClient}

	err := ValidateTransition(stranger, newTestBooking(StatusPending), StatusCancelled)
	assert.ErrorIs(t, err, ErrNotInvolved)

	// Причастность проверяется раньше роли и графа: даже заведомо
	// невозможный переход от чужого пользователя дает ErrNotInvolved
	err = ValidateTransition(stranger, newTestBooking(StatusCompleted), StatusPending)
	assert.ErrorIs(t, err, ErrNotInvolved)
}

func TestValidateTransition_InvalidGraph(t *testing.T) {
	provider := Actor{UserID: 200, Role: RoleProvider}

	t.Run("skipping in_progress", func(t *testing.T) {
		err := ValidateTransition(provider, newTestBooking(StatusAccepted), StatusCompleted)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		// Текст ошибки содержит пару статусов
		assert.Contains(t, err.Error(), "accepted -> completed")
	})

	t.Run("terminal state has no exits", func(t *testing.T) {
		err := ValidateTransition(provider, newTestBooking(StatusCancelled), StatusAccepted)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("no transition targets pending", func(t *testing.T) {
		err := ValidateTransition(provider, newTestBooking(StatusAccepted), StatusPending)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("no transition targets no_show", func(t *testing.T) {
		err := ValidateTransition(provider, newTestBooking(StatusAccepted), StatusNoShow)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestValidateTransition_GraphViolationWinsOverRole(t *testing.T) {
	client := Actor{UserID: 100, Role: RoleClient}

	// Самопереход причастного вызывающего - нарушение графа, не роли:
	// клиент не допущен к установке accepted, но ответ обязан называть
	// пару статусов
	err := ValidateTransition(client, newTestBooking(StatusAccepted), StatusAccepted)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.NotErrorIs(t, err, ErrTransitionForbidden)
	assert.Contains(t, err.Error(), "accepted -> accepted")

	// То же для графово-невозможного перехода в роль-закрытый статус
	err = ValidateTransition(client, newTestBooking(StatusPending), StatusCompleted)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Contains(t, err.Error(), "pending -> completed")
}

func TestBookingStatus_IsTerminal(t *testing.T) {
	for _, s := range TerminalStatuses {
		assert.True(t, s.IsTerminal(), "status %s", s)
	}
	for _, s := range ActiveStatuses {
		assert.False(t, s.IsTerminal(), "status %s", s)
	}
}

func TestResolveRelationship(t *testing.T) {
	b := newTestBooking(StatusPending)

	assert.Equal(t, RelationClient, ResolveRelationship(Actor{UserID: 100, Role: RoleClient}, b))
	assert.Equal(t, RelationProvider, ResolveRelationship(Actor{UserID: 200, Role: RoleProvider}, b))
	assert.Equal(t, RelationAdmin, ResolveRelationship(Actor{UserID: 1, Role: RoleAdmin}, b))
	assert.Equal(t, RelationNone, ResolveRelationship(Actor{UserID: 42, Role: RoleClient}, b))
}
