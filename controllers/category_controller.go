package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/maduka-shop/maduka-api/config"
	"github.com/maduka-shop/maduka-api/models"
	"github.com/maduka-shop/maduka-api/utils"
)

// CategoryRequest represents the request body for creating or updating
// a category
type CategoryRequest struct {
	Name     string `json:"name" binding:"required"`
	Slug     string `json:"slug"`
	ParentID *uint  `json:"parent_id"`
}

// CreateCategory handles POST /api/v1/categories - creates a taxonomy
// node (admin only). The slug is derived from the name when omitted.
func CreateCategory(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"message": "Admin access required"})
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Category name is required"})
		return
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Name)
	}

	db := config.GetDB()
	if req.ParentID != nil {
		var parent models.Category
		if err := db.First(&parent, *req.ParentID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Parent category not found"})
			return
		}
	}

	category := models.Category{
		Name:     req.Name,
		Slug:     slug,
		ParentID: req.ParentID,
	}

	if err := db.Create(&category).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			c.JSON(http.StatusConflict, gin.H{"message": "A category with this slug already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, category)
}

// ListCategories handles GET /api/v1/categories - returns the root
// categories with their children preloaded
func ListCategories(c *gin.Context) {
	db := config.GetDB()

	var categories []models.Category
	if err := db.Where("parent_id IS NULL").
		Preload("Children").
		Order("name ASC").
		Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, categories)
}

// GetCategoryBySlug handles GET /api/v1/categories/:slug - returns one
// category with its children
func GetCategoryBySlug(c *gin.Context) {
	db := config.GetDB()

	var category models.Category
	if err := db.Where("slug = ?", c.Param("slug")).
		Preload("Children").
		First(&category).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		return
	}

	c.JSON(http.StatusOK, category)
}

// UpdateCategory handles PUT /api/v1/categories/:id - renames a
// category (admin only). The slug never changes after creation.
func UpdateCategory(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"message": "Admin access required"})
		return
	}

	db := config.GetDB()
	var category models.Category
	if err := db.First(&category, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Category name is required"})
		return
	}

	if err := db.Model(&category).Update("name", req.Name).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update category"})
		return
	}

	c.JSON(http.StatusOK, category)
}

// DeleteCategory handles DELETE /api/v1/categories/:id - deletes a
// taxonomy node (admin only). Blocked while the category still has
// children; deletion never cascades.
func DeleteCategory(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"message": "Admin access required"})
		return
	}

	db := config.GetDB()
	var category models.Category
	if err := db.First(&category, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		return
	}

	var childCount int64
	if err := db.Model(&models.Category{}).
		Where("parent_id = ?", category.ID).
		Count(&childCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete category"})
		return
	}

	if childCount > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Category has child categories and cannot be deleted"})
		return
	}

	if err := db.Delete(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
