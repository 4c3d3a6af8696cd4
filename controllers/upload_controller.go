package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maduka-shop/maduka-api/services"
	"github.com/maduka-shop/maduka-api/utils"
)

// UploadProductImage handles POST /api/v1/uploads - uploads a product
// image to S3 and returns its storage key and a presigned URL
// (admin only)
func UploadProductImage(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"message": "Admin access required"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Image file is required"})
		return
	}

	imageService := services.GetImageService()
	if imageService == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Image service not available"})
		return
	}

	imageKey, err := imageService.UploadImage(fileHeader)
	if err != nil {
		// Validation failures carry a client-facing message
		if uploadErr, ok := err.(*utils.FileUploadError); ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": uploadErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload image"})
		return
	}

	imageURL, err := imageService.GetImageURL(imageKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate image URL"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"image": imageKey,
		"url":   imageURL,
	})
}
