package services

import (
	"math"

	"github.com/maduka-shop/maduka-api/models"
)

// Pricing constants. Tax is a fixed 16% VAT; shipping is a flat fee
// waived once the subtotal clears the free-shipping threshold.
const (
	TaxRate               = 0.16
	ShippingFee           = 250.0
	FreeShippingThreshold = 100.0
)

// OrderTotals is the computed financial breakdown of an order.
// Total is always Subtotal + Tax + Shipping.
type OrderTotals struct {
	Subtotal float64
	Tax      float64
	Shipping float64
	Total    float64
}

// ComputeOrderTotals derives the order totals from reserved line items.
// Pure function: no side effects, no failure modes.
func ComputeOrderTotals(items []models.OrderItem) OrderTotals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}

	tax := round2(subtotal * TaxRate)

	shipping := ShippingFee
	if subtotal > FreeShippingThreshold {
		shipping = 0
	}

	return OrderTotals{
		Subtotal: round2(subtotal),
		Tax:      tax,
		Shipping: shipping,
		Total:    round2(subtotal) + tax + shipping,
	}
}

// round2 rounds to two decimal places so stored totals stay consistent
// across drivers
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
