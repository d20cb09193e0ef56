// Package statemachine defines the order status flow.
//
// Two distinct rule sets govern the same status value: the linear forward
// chain walked by the owning vendor, and the cancellation windows per role.
// They are kept as separate tables because a vendor that may still cancel a
// confirmed order may not rewind it.
package statemachine

import (
	"fmt"

	"github.com/Everilll/CateringKita/apperr"
	"github.com/Everilll/CateringKita/models"
)

// statusFlow maps each status to the single legal next status.
// Statuses absent from the map (delivered, cancelled) are terminal.
var statusFlow = map[models.OrderStatus]models.OrderStatus{
	models.StatusPending:    models.StatusConfirmed,
	models.StatusConfirmed:  models.StatusPreparing,
	models.StatusPreparing:  models.StatusReady,
	models.StatusReady:      models.StatusOnDelivery,
	models.StatusOnDelivery: models.StatusDelivered,
}

// cancellableStatuses lists, per role, the statuses an order may still be
// cancelled from. Once preparation starts the food is committed and nobody
// can cancel.
var cancellableStatuses = map[models.UserRole][]models.OrderStatus{
	models.RoleCustomer: {models.StatusPending},
	models.RoleVendor:   {models.StatusPending, models.StatusConfirmed},
}

// NextStatus returns the single legal next status, or false when the current
// status is terminal.
func NextStatus(current models.OrderStatus) (models.OrderStatus, bool) {
	next, ok := statusFlow[current]
	return next, ok
}

// ValidateAdvance checks that requested is exactly the next status in the
// chain. Skipping ahead and re-submitting the current status are both
// rejected.
func ValidateAdvance(current, requested models.OrderStatus) error {
	next, ok := statusFlow[current]
	if !ok {
		return apperr.IllegalTransition(
			fmt.Sprintf("Order dengan status '%s' tidak bisa diubah", current))
	}
	if requested != next {
		return apperr.IllegalTransition(
			fmt.Sprintf("Status tidak valid. Dari '%s' hanya bisa ke '%s'", current, next))
	}
	return nil
}

// ValidateCancel checks the role-specific cancellation window.
func ValidateCancel(role models.UserRole, current models.OrderStatus) error {
	for _, s := range cancellableStatuses[role] {
		if current == s {
			return nil
		}
	}
	switch role {
	case models.RoleCustomer:
		return apperr.IllegalTransition("Order hanya bisa dibatalkan jika masih berstatus pending")
	case models.RoleVendor:
		return apperr.IllegalTransition("Order hanya bisa dibatalkan jika berstatus pending atau confirmed")
	}
	return apperr.Forbidden("Role tidak bisa membatalkan order")
}

// KnownStatus reports whether status is one of the persisted tokens.
func KnownStatus(status models.OrderStatus) bool {
	switch status {
	case models.StatusPending, models.StatusConfirmed, models.StatusPreparing,
		models.StatusReady, models.StatusOnDelivery, models.StatusDelivered,
		models.StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no forward transition exists from status.
func IsTerminal(status models.OrderStatus) bool {
	_, ok := statusFlow[status]
	return !ok
}
