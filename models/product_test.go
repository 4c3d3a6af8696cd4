package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductTableName(t *testing.T) {
	product := Product{}
	assert.Equal(t, "products", product.TableName(), "Table name should be 'products'")
}

func TestReviewTableName(t *testing.T) {
	review := Review{}
	assert.Equal(t, "reviews", review.TableName(), "Table name should be 'reviews'")
}

func TestCategoryTableName(t *testing.T) {
	category := Category{}
	assert.Equal(t, "categories", category.TableName(), "Table name should be 'categories'")
}

func TestProductStructFields(t *testing.T) {
	categoryID := uint(3)
	product := Product{
		Name:         "Woven Basket",
		Brand:        "Maduka",
		Price:        30.0,
		CountInStock: 12,
		CategoryID:   &categoryID,
	}

	assert.Equal(t, "Woven Basket", product.Name)
	assert.Equal(t, 30.0, product.Price)
	assert.Equal(t, 12, product.CountInStock)
	assert.Equal(t, uint(3), *product.CategoryID)
}
