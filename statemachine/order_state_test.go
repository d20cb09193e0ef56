package statemachine

import (
	"testing"

	"github.com/Everilll/CateringKita/apperr"
	"github.com/Everilll/CateringKita/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStatus_LinearChain(t *testing.T) {
	chain := []models.OrderStatus{
		models.StatusPending,
		models.StatusConfirmed,
		models.StatusPreparing,
		models.StatusReady,
		models.StatusOnDelivery,
		models.StatusDelivered,
	}
	for i := 0; i < len(chain)-1; i++ {
		next, ok := NextStatus(chain[i])
		require.True(t, ok, "expected %s to have a next status", chain[i])
		assert.Equal(t, chain[i+1], next)
	}
}

func TestNextStatus_TerminalStates(t *testing.T) {
	for _, s := range []models.OrderStatus{models.StatusDelivered, models.StatusCancelled} {
		_, ok := NextStatus(s)
		assert.False(t, ok, "%s must be terminal", s)
	}
}

func TestValidateAdvance(t *testing.T) {
	tests := []struct {
		name      string
		current   models.OrderStatus
		requested models.OrderStatus
		wantErr   bool
	}{
		{"exact next is accepted", models.StatusPending, models.StatusConfirmed, false},
		{"skipping a step is rejected", models.StatusPending, models.StatusPreparing, true},
		{"re-submitting current is rejected", models.StatusConfirmed, models.StatusConfirmed, true},
		{"regressing is rejected", models.StatusReady, models.StatusConfirmed, true},
		{"delivered is terminal", models.StatusDelivered, models.StatusCancelled, true},
		{"cancelled is terminal", models.StatusCancelled, models.StatusConfirmed, true},
		{"jumping to delivered is rejected", models.StatusConfirmed, models.StatusDelivered, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAdvance(tt.current, tt.requested)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperr.ErrIllegalTransition)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateAdvance_NamesAllowedNext(t *testing.T) {
	err := ValidateAdvance(models.StatusPending, models.StatusReady)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pending")
	assert.Contains(t, err.Error(), "confirmed")
}

func TestValidateCancel(t *testing.T) {
	tests := []struct {
		role    models.UserRole
		status  models.OrderStatus
		wantErr bool
	}{
		{models.RoleCustomer, models.StatusPending, false},
		{models.RoleCustomer, models.StatusConfirmed, true},
		{models.RoleCustomer, models.StatusPreparing, true},
		{models.RoleVendor, models.StatusPending, false},
		{models.RoleVendor, models.StatusConfirmed, false},
		{models.RoleVendor, models.StatusPreparing, true},
		{models.RoleVendor, models.StatusReady, true},
		{models.RoleVendor, models.StatusOnDelivery, true},
		{models.RoleVendor, models.StatusDelivered, true},
		{models.RoleVendor, models.StatusCancelled, true},
		{models.RoleCustomer, models.StatusCancelled, true},
	}
	for _, tt := range tests {
		err := ValidateCancel(tt.role, tt.status)
		if tt.wantErr {
			require.Error(t, err, "%s cancelling %s", tt.role, tt.status)
			assert.ErrorIs(t, err, apperr.ErrIllegalTransition)
		} else {
			assert.NoError(t, err, "%s cancelling %s", tt.role, tt.status)
		}
	}
}

func TestValidateCancel_AdminHasNoWindow(t *testing.T) {
	err := ValidateCancel(models.RoleAdmin, models.StatusPending)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestKnownStatus(t *testing.T) {
	assert.True(t, KnownStatus(models.StatusOnDelivery))
	assert.False(t, KnownStatus("shipped"))
	assert.False(t, KnownStatus("PENDING"))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(models.StatusDelivered))
	assert.True(t, IsTerminal(models.StatusCancelled))
	assert.False(t, IsTerminal(models.StatusPending))
}
