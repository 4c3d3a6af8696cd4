package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/maduka-shop/maduka-api/config"
	"github.com/maduka-shop/maduka-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRequest represents the request body for creating or updating a
// product (admin only)
type ProductRequest struct {
	Name         string  `json:"name" binding:"required"`
	Image        string  `json:"image"`
	Brand        string  `json:"brand"`
	Description  string  `json:"description"`
	CategoryID   *uint   `json:"category_id"`
	Price        float64 `json:"price" binding:"required,gt=0"`
	CountInStock int     `json:"countInStock" binding:"gte=0"`
}

// CreateReviewRequest represents the request body for reviewing a product
type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment string `json:"comment"`
}

// ListProducts handles GET /api/v1/products - paginated catalog listing
// with optional case-insensitive keyword search on the product name
func ListProducts(c *gin.Context) {
	db := config.GetDB()

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 10
	}

	query := db.Model(&models.Product{})
	if keyword := c.Query("keyword"); keyword != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(keyword)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch products"})
		return
	}

	var products []models.Product
	if err := query.Preload("Category").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch products"})
		return
	}

	pages := (total + int64(limit) - 1) / int64(limit)

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"page":     page,
		"pages":    pages,
		"total":    total,
	})
}

// findProduct loads the product named by the :id route parameter.
// Writes a 404 response and returns false when it does not exist.
func findProduct(c *gin.Context) (*models.Product, bool) {
	db := config.GetDB()
	var product models.Product
	if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return nil, false
	}
	return &product, true
}

// GetProduct handles GET /api/v1/products/:id - returns one product
// with its reviews
func GetProduct(c *gin.Context) {
	db := config.GetDB()
	var product models.Product
	if err := db.Preload("Category").Preload("Reviews").
		First(&product, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// CreateProduct handles POST /api/v1/products - creates a catalog entry
// (admin only)
func CreateProduct(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"message": "Admin access required"})
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request data"})
		return
	}

	db := config.GetDB()
	if req.CategoryID != nil {
		var category models.Category
		if err := db.First(&category, *req.CategoryID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Category not found"})
			return
		}
	}

	product := models.Product{
		Name:         req.Name,
		Image:        req.Image,
		Brand:        req.Brand,
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		Price:        req.Price,
		CountInStock: req.CountInStock,
	}

	if err := db.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles PUT /api/v1/products/:id - updates a catalog
// entry (admin only). Existing orders keep their line item snapshots.
func UpdateProduct(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"message": "Admin access required"})
		return
	}

	product, ok := findProduct(c)
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request data"})
		return
	}

	db := config.GetDB()
	if req.CategoryID != nil {
		var category models.Category
		if err := db.First(&category, *req.CategoryID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Category not found"})
			return
		}
	}

	product.Name = req.Name
	product.Image = req.Image
	product.Brand = req.Brand
	product.Description = req.Description
	product.CategoryID = req.CategoryID
	product.Price = req.Price
	product.CountInStock = req.CountInStock

	if err := db.Omit(clause.Associations).Save(product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update product"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/v1/products/:id - soft-deletes a
// catalog entry (admin only). Orders referencing it are unaffected:
// line items carry their own snapshots.
func DeleteProduct(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"message": "Admin access required"})
		return
	}

	product, ok := findProduct(c)
	if !ok {
		return
	}

	db := config.GetDB()
	if err := db.Delete(product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// recomputeProductRating recalculates the cached rating and review
// count from the review rows. Called after every review add/remove.
func recomputeProductRating(db *gorm.DB, productID uint) error {
	var reviews []models.Review
	if err := db.Where("product_id = ?", productID).Find(&reviews).Error; err != nil {
		return err
	}

	rating := 0.0
	if len(reviews) > 0 {
		sum := 0
		for _, review := range reviews {
			sum += review.Rating
		}
		rating = float64(sum) / float64(len(reviews))
	}

	return db.Model(&models.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"rating":      rating,
			"num_reviews": len(reviews),
		}).Error
}

// CreateReview handles POST /api/v1/products/:id/reviews - adds a
// review. A user may review a given product at most once.
func CreateReview(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	product, ok := findProduct(c)
	if !ok {
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Rating must be between 1 and 5"})
		return
	}

	db := config.GetDB()
	var existing models.Review
	err := db.Where("product_id = ? AND user_id = ?", product.ID, user.ID).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Product already reviewed"})
		return
	}

	review := models.Review{
		ProductID: product.ID,
		UserID:    user.ID,
		Name:      user.Name,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	if err := db.Create(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create review"})
		return
	}

	if err := recomputeProductRating(db, product.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update product rating"})
		return
	}

	c.JSON(http.StatusCreated, review)
}

// DeleteReview handles DELETE /api/v1/products/:id/reviews - removes
// the caller's review of the product
func DeleteReview(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	product, ok := findProduct(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var review models.Review
	if err := db.Where("product_id = ? AND user_id = ?", product.ID, user.ID).First(&review).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Review not found"})
		return
	}

	if err := db.Delete(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete review"})
		return
	}

	if err := recomputeProductRating(db, product.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update product rating"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}
