package models

import (
	"time"

	"gorm.io/gorm"
)

// Order lifecycle states. Paid/delivered progress is tracked by the
// IsPaid/IsDelivered flags; Status only moves to Delivered or Cancelled.
const (
	OrderStatusProcessing = "Processing"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

// ShippingAddress is copied into the order at creation time.
// Every field is required by the intake validator.
type ShippingAddress struct {
	Name       string `gorm:"not null" json:"name"`
	Phone      string `gorm:"not null" json:"phone"`
	Address    string `gorm:"not null" json:"address"`
	City       string `gorm:"not null" json:"city"`
	PostalCode string `gorm:"not null" json:"postalCode"`
	County     string `gorm:"not null" json:"county"`
	Country    string `gorm:"not null" json:"country"`
}

// PaymentResult holds the metadata returned by the external payment
// collaborator when an order is marked paid.
type PaymentResult struct {
	TransactionID string `json:"id,omitempty"`
	Status        string `json:"status,omitempty"`
	UpdateTime    string `json:"update_time,omitempty"`
	EmailAddress  string `json:"email_address,omitempty"`
}

// Order represents one purchase transaction. Line items and the shipping
// address are snapshots owned by the order, so historical orders stay
// stable when products are edited or deleted later.
type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          uint            `gorm:"not null;index" json:"user_id"`
	User            *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	OrderItems      []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"orderItems"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shippingAddress"`
	PaymentMethod   string          `gorm:"not null" json:"paymentMethod"`
	PaymentResult   PaymentResult   `gorm:"embedded;embeddedPrefix:payment_" json:"paymentResult"`
	ItemsPrice      float64         `gorm:"not null" json:"itemsPrice"` // subtotal
	TaxPrice        float64         `gorm:"not null" json:"taxPrice"`
	ShippingPrice   float64         `gorm:"not null" json:"shippingPrice"`
	TotalPrice      float64         `gorm:"not null" json:"totalPrice"`
	IsPaid          bool            `gorm:"not null;default:false" json:"isPaid"`
	PaidAt          *time.Time      `json:"paidAt"`
	IsDelivered     bool            `gorm:"not null;default:false" json:"isDelivered"`
	DeliveredAt     *time.Time      `json:"deliveredAt"`
	Status          string          `gorm:"not null;default:'Processing'" json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a line item snapshot frozen at reservation time.
// Name, Image and Price come from the product row as it was when the
// stock decrement succeeded, not from the incoming request.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"not null;index" json:"order_id"`
	ProductID uint    `gorm:"not null;index" json:"product"`
	Name      string  `gorm:"not null" json:"name"`
	Image     string  `json:"image"`
	Price     float64 `gorm:"not null" json:"price"`
	Quantity  int     `gorm:"not null" json:"quantity"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
