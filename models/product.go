package models

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a catalog entry. CountInStock is only ever changed
// through the conditional decrement/increment in the inventory service,
// which keeps it from going negative under concurrent orders.
type Product struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"not null;index" json:"name"`
	Image        string         `json:"image"` // S3 key of the product image
	Brand        string         `json:"brand"`
	Description  string         `gorm:"type:text" json:"description"`
	CategoryID   *uint          `gorm:"index" json:"category_id"`
	Category     *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Price        float64        `gorm:"not null" json:"price"`
	CountInStock int            `gorm:"not null;default:0;check:count_in_stock >= 0" json:"countInStock"`
	Rating       float64        `gorm:"not null;default:0" json:"rating"`
	NumReviews   int            `gorm:"not null;default:0" json:"numReviews"`
	Reviews      []Review       `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// Review is a customer review embedded in a product. A user may review
// a given product at most once.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_reviews_product_user" json:"product_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_reviews_product_user" json:"user_id"`
	Name      string    `gorm:"not null" json:"name"` // reviewer name snapshot
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Review model
func (Review) TableName() string {
	return "reviews"
}
