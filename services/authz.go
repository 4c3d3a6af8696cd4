package services

import (
	"github.com/maduka-shop/maduka-api/models"
)

// OrderAction is one of the guarded operations on an order
type OrderAction string

const (
	OrderActionView          OrderAction = "view"
	OrderActionPay           OrderAction = "pay"
	OrderActionDeliver       OrderAction = "deliver"
	OrderActionCancel        OrderAction = "cancel"
	OrderActionChangePayment OrderAction = "change-payment-method"
)

// CanActOnOrder is the single authorization policy for order access:
// delivery is reserved for admins, everything else is allowed to the
// order's owner or an admin. All handlers go through here instead of
// scattering role checks.
func CanActOnOrder(actor models.User, ownerID uint, action OrderAction) bool {
	if action == OrderActionDeliver {
		return actor.IsAdmin()
	}
	return actor.IsAdmin() || actor.ID == ownerID
}
