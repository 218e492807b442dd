// Package permissions holds the stateless authorization predicates gating
// every mutating operation. Predicates take the resolved caller and the
// target resource and compose with plain boolean logic; none of them touch
// the database.
package permissions

import (
	"gigmarket/internal/models"
)

// Owned is implemented by every resource kind with a single owning user.
// The predicates below depend only on this capability, never on the
// concrete resource types.
type Owned interface {
	OwnedBy(userID uint) bool
}

// IsOwner reports whether the caller owns the resource.
func IsOwner(caller *models.User, resource Owned) bool {
	return caller != nil && resource.OwnedBy(caller.ID)
}

// IsStaff reports whether the caller is an administrator.
func IsStaff(caller *models.User) bool {
	return caller != nil && caller.IsStaff
}

// IsOwnerOrStaff allows owners and administrators. Used for destructive
// operations where the admin override explicitly applies.
func IsOwnerOrStaff(caller *models.User, resource Owned) bool {
	return IsOwner(caller, resource) || IsStaff(caller)
}

// IsBusiness reports whether the caller may publish offers.
func IsBusiness(caller *models.User) bool {
	return caller != nil && caller.IsBusiness()
}

// IsCustomer reports whether the caller may place orders and write reviews.
func IsCustomer(caller *models.User) bool {
	return caller != nil && caller.IsCustomer()
}

// IsOrderParticipant reports whether the caller is on either side of the order.
func IsOrderParticipant(caller *models.User, order *models.Order) bool {
	return caller != nil && order.Participant(caller.ID)
}

// IsOrderBusinessPartner reports whether the caller is the business side of
// the order. Only the business partner may change an order's status; the
// customer who placed it cannot.
func IsOrderBusinessPartner(caller *models.User, order *models.Order) bool {
	return caller != nil && order.BusinessUserID == caller.ID
}
