package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/maduka-shop/maduka-api/models"
	"gorm.io/gorm"
)

// ErrProductNotFound is returned when a requested line item references a
// product that does not exist
var ErrProductNotFound = errors.New("product not found")

// InsufficientStockError names the product that could not be reserved
type InsufficientStockError struct {
	ProductID uint
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d", e.ProductID)
}

// OrderItemRequest is one requested line item, already shape-validated
// by the intake validator.
type OrderItemRequest struct {
	ProductID uint
	Quantity  int
}

// ReserveOrderItems reserves stock for every requested line item,
// left-to-right. Each reservation is a single conditional update:
//
//	UPDATE products SET count_in_stock = count_in_stock - qty
//	WHERE id = ? AND count_in_stock >= qty
//
// so two concurrent orders can never both take the last unit. On
// failure at item k, stock already reserved for items 1..k-1 is
// re-incremented before the error is returned; the caller never
// observes a half-applied reservation.
//
// On success it returns the enriched line item snapshots, read from the
// product rows at the moment of the decrement.
func ReserveOrderItems(db *gorm.DB, requested []OrderItemRequest) ([]models.OrderItem, error) {
	reserved := make([]models.OrderItem, 0, len(requested))

	for _, req := range requested {
		result := db.Model(&models.Product{}).
			Where("id = ? AND count_in_stock >= ?", req.ProductID, req.Quantity).
			UpdateColumn("count_in_stock", gorm.Expr("count_in_stock - ?", req.Quantity))
		if result.Error != nil {
			ReleaseOrderItems(db, reserved)
			return nil, result.Error
		}

		if result.RowsAffected == 0 {
			// Distinguish a missing product from an out-of-stock one
			ReleaseOrderItems(db, reserved)

			var product models.Product
			if err := db.First(&product, req.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrProductNotFound
				}
				return nil, err
			}
			return nil, &InsufficientStockError{ProductID: req.ProductID}
		}

		// Snapshot name/image/price from the authoritative product row
		// as it was when the decrement succeeded
		var product models.Product
		if err := db.First(&product, req.ProductID).Error; err != nil {
			ReleaseOrderItems(db, reserved)
			return nil, err
		}

		reserved = append(reserved, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Image:     product.Image,
			Price:     product.Price,
			Quantity:  req.Quantity,
		})
	}

	return reserved, nil
}

// ReleaseOrderItems compensates a partial reservation by re-incrementing
// stock for every item already reserved in this request. A failed
// increment leaves inventory short, so it is logged loudly; there is no
// retry path here.
func ReleaseOrderItems(db *gorm.DB, reserved []models.OrderItem) {
	for _, item := range reserved {
		result := db.Model(&models.Product{}).
			Where("id = ?", item.ProductID).
			UpdateColumn("count_in_stock", gorm.Expr("count_in_stock + ?", item.Quantity))
		if result.Error != nil {
			log.Printf("ALERT: failed to restore %d units of product %d during order compensation: %v",
				item.Quantity, item.ProductID, result.Error)
		}
	}
}
