package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maduka-shop/maduka-api/config"
	"github.com/maduka-shop/maduka-api/middleware"
	"github.com/maduka-shop/maduka-api/models"
)

// currentUser resolves the authenticated user's profile from the Auth0
// subject stored in the context. Writes the error response itself and
// returns false when the caller should stop.
func currentUser(c *gin.Context) (*models.User, bool) {
	auth0ID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"message": "Could not extract user information",
		})
		return nil, false
	}

	db := config.GetDB()
	var user models.User
	if err := db.Where("auth0_id = ?", auth0ID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "User profile not found. Please create a profile first.",
		})
		return nil, false
	}

	return &user, true
}
