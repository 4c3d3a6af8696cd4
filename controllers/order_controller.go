package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maduka-shop/maduka-api/config"
	"github.com/maduka-shop/maduka-api/models"
	"github.com/maduka-shop/maduka-api/services"
	"gorm.io/gorm/clause"
)

// OrderItemPayload is one requested line item in an order submission
type OrderItemPayload struct {
	Product  uint `json:"product"`
	Quantity int  `json:"quantity"`
}

// CreateOrderRequest represents the request body for placing an order
type CreateOrderRequest struct {
	OrderItems      []OrderItemPayload     `json:"orderItems"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
}

// PayOrderRequest carries the payment-collaborator result metadata
type PayOrderRequest struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	UpdateTime   string `json:"update_time"`
	EmailAddress string `json:"email_address"`
}

// UpdatePaymentMethodRequest represents the payment-method change body
type UpdatePaymentMethodRequest struct {
	PaymentMethod string `json:"paymentMethod" binding:"required"`
}

// validateOrderRequest checks the shape of an order submission before
// any stateful work. Returns an empty string when the request is valid,
// otherwise a message naming exactly what is missing.
func validateOrderRequest(req CreateOrderRequest) string {
	if len(req.OrderItems) == 0 {
		return "Order must contain at least one item"
	}

	for i, item := range req.OrderItems {
		if item.Product == 0 {
			return fmt.Sprintf("Order item %d is missing a product reference", i+1)
		}
		if item.Quantity < 1 {
			return fmt.Sprintf("Order item %d must have a quantity of at least 1", i+1)
		}
	}

	if missing := missingAddressFields(req.ShippingAddress); len(missing) > 0 {
		return "Shipping address is missing required fields: " + strings.Join(missing, ", ")
	}

	if req.PaymentMethod == "" {
		return "Payment method is required"
	}

	return ""
}

// missingAddressFields returns the names of shipping address fields
// that were not provided
func missingAddressFields(addr models.ShippingAddress) []string {
	var missing []string
	fields := []struct {
		name  string
		value string
	}{
		{"name", addr.Name},
		{"phone", addr.Phone},
		{"address", addr.Address},
		{"city", addr.City},
		{"postalCode", addr.PostalCode},
		{"county", addr.County},
		{"country", addr.Country},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// CreateOrder handles POST /api/v1/orders - places a new order.
// Flow: intake validation, per-item stock reservation (compensated on
// partial failure), pricing, persist.
func CreateOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request data"})
		return
	}

	if msg := validateOrderRequest(req); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}

	requested := make([]services.OrderItemRequest, 0, len(req.OrderItems))
	for _, item := range req.OrderItems {
		requested = append(requested, services.OrderItemRequest{
			ProductID: item.Product,
			Quantity:  item.Quantity,
		})
	}

	db := config.GetDB()
	items, err := services.ReserveOrderItems(db, requested)
	if err != nil {
		var stockErr *services.InsufficientStockError
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		case errors.As(err, &stockErr):
			c.JSON(http.StatusBadRequest, gin.H{
				"message": fmt.Sprintf("Insufficient stock for product %d", stockErr.ProductID),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to reserve stock"})
		}
		return
	}

	totals := services.ComputeOrderTotals(items)

	order := models.Order{
		UserID:          user.ID,
		OrderItems:      items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		ItemsPrice:      totals.Subtotal,
		TaxPrice:        totals.Tax,
		ShippingPrice:   totals.Shipping,
		TotalPrice:      totals.Total,
		Status:          models.OrderStatusProcessing,
	}

	if err := db.Create(&order).Error; err != nil {
		// The reservation already went through; hand the stock back
		services.ReleaseOrderItems(db, items)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create order"})
		return
	}

	// Reload with relationships to return complete data
	if err := db.Preload("OrderItems").Preload("User").First(&order, order.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load order details"})
		return
	}

	c.JSON(http.StatusCreated, order)
}

// findOrder loads the order named by the :id route parameter. Writes a
// 404 response and returns false when it does not exist.
func findOrder(c *gin.Context) (*models.Order, bool) {
	db := config.GetDB()
	var order models.Order
	if err := db.Preload("OrderItems").First(&order, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return nil, false
	}
	return &order, true
}

// GetOrder handles GET /api/v1/orders/:id - returns one order
// (owner or admin only)
func GetOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	order, ok := findOrder(c)
	if !ok {
		return
	}

	if !services.CanActOnOrder(*user, order.UserID, services.OrderActionView) {
		c.JSON(http.StatusForbidden, gin.H{"message": "You do not have permission to access this order"})
		return
	}

	db := config.GetDB()
	var full models.Order
	if err := db.Preload("OrderItems").Preload("User").First(&full, order.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load order details"})
		return
	}

	c.JSON(http.StatusOK, full)
}

// ListOrders handles GET /api/v1/orders - lists all orders (admin only)
func ListOrders(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"message": "Admin access required"})
		return
	}

	db := config.GetDB()
	var orders []models.Order
	if err := db.Preload("OrderItems").Preload("User").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

// ListMyOrders handles GET /api/v1/orders/myorders - lists the caller's
// own orders, optionally filtered by status, creation-date lookback
// window (period, in days) and a case-insensitive free-text search over
// item names and shipping address fields.
func ListMyOrders(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	query := db.Model(&models.Order{}).Where("user_id = ?", user.ID)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if period := c.Query("period"); period != "" {
		if days, err := strconv.Atoi(period); err == nil && days > 0 {
			query = query.Where("created_at >= ?", time.Now().AddDate(0, 0, -days))
		}
	}

	if search := c.Query("search"); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			`LOWER(ship_name) LIKE ? OR LOWER(ship_phone) LIKE ? OR LOWER(ship_address) LIKE ?
			OR LOWER(ship_city) LIKE ? OR LOWER(ship_postal_code) LIKE ? OR LOWER(ship_county) LIKE ?
			OR LOWER(ship_country) LIKE ?
			OR id IN (SELECT order_id FROM order_items WHERE LOWER(name) LIKE ?)`,
			like, like, like, like, like, like, like, like,
		)
	}

	var orders []models.Order
	if err := query.Preload("OrderItems").Order("created_at DESC").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders"})
		return
	}

	if len(orders) == 0 {
		c.JSON(http.StatusOK, gin.H{"orders": []models.Order{}, "message": "No orders found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// PayOrder handles PUT /api/v1/orders/:id/pay - marks an order as paid
// and stores the payment-collaborator result metadata
func PayOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	order, ok := findOrder(c)
	if !ok {
		return
	}

	if !services.CanActOnOrder(*user, order.UserID, services.OrderActionPay) {
		c.JSON(http.StatusForbidden, gin.H{"message": "You do not have permission to modify this order"})
		return
	}

	if order.Status == models.OrderStatusCancelled {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Order has been cancelled"})
		return
	}

	if order.IsPaid {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Order is already paid"})
		return
	}

	var req PayOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request data"})
		return
	}

	now := time.Now()
	order.IsPaid = true
	order.PaidAt = &now
	order.PaymentResult = models.PaymentResult{
		TransactionID: req.ID,
		Status:        req.Status,
		UpdateTime:    req.UpdateTime,
		EmailAddress:  req.EmailAddress,
	}

	db := config.GetDB()
	if err := db.Omit(clause.Associations).Save(order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update order"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// DeliverOrder handles PUT /api/v1/orders/:id/deliver - marks a paid
// order as delivered (admin only)
func DeliverOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	order, ok := findOrder(c)
	if !ok {
		return
	}

	if !services.CanActOnOrder(*user, order.UserID, services.OrderActionDeliver) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Admin access required"})
		return
	}

	if order.IsDelivered {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Order is already delivered"})
		return
	}

	if !order.IsPaid {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Order has not been paid yet"})
		return
	}

	now := time.Now()
	order.IsDelivered = true
	order.DeliveredAt = &now
	order.Status = models.OrderStatusDelivered

	db := config.GetDB()
	if err := db.Omit(clause.Associations).Save(order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update order"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdatePaymentMethod handles PUT /api/v1/orders/:id/payment-method -
// overwrites the payment method of an unpaid order
func UpdatePaymentMethod(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	order, ok := findOrder(c)
	if !ok {
		return
	}

	if !services.CanActOnOrder(*user, order.UserID, services.OrderActionChangePayment) {
		c.JSON(http.StatusForbidden, gin.H{"message": "You do not have permission to modify this order"})
		return
	}

	if order.IsPaid {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payment method cannot be changed after payment"})
		return
	}

	var req UpdatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payment method is required"})
		return
	}

	order.PaymentMethod = req.PaymentMethod

	db := config.GetDB()
	if err := db.Omit(clause.Associations).Save(order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update order"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// CancelOrder handles PUT /api/v1/orders/:id/cancel - cancels an unpaid
// order
func CancelOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	order, ok := findOrder(c)
	if !ok {
		return
	}

	if !services.CanActOnOrder(*user, order.UserID, services.OrderActionCancel) {
		c.JSON(http.StatusForbidden, gin.H{"message": "You do not have permission to modify this order"})
		return
	}

	if order.IsPaid {
		c.JSON(http.StatusBadRequest, gin.H{"message": "A paid order cannot be cancelled"})
		return
	}

	if order.Status == models.OrderStatusCancelled {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Order is already cancelled"})
		return
	}

	order.Status = models.OrderStatusCancelled

	db := config.GetDB()
	if err := db.Omit(clause.Associations).Save(order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update order"})
		return
	}

	c.JSON(http.StatusOK, order)
}
