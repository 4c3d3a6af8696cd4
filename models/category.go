package models

import (
	"time"

	"gorm.io/gorm"
)

// Category is a node in the catalog taxonomy. Parent/child is a
// back-reference, not ownership: a category with children cannot be
// deleted, and deleting a parent never cascades.
type Category struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Slug      string         `gorm:"uniqueIndex;not null" json:"slug"`
	ParentID  *uint          `gorm:"index" json:"parent_id"`
	Parent    *Category      `gorm:"foreignKey:ParentID" json:"-"`
	Children  []Category     `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
