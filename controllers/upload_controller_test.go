package controllers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/maduka-shop/maduka-api/config"
	"github.com/maduka-shop/maduka-api/models"
	"github.com/maduka-shop/maduka-api/services"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupUploadTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func uploadRouter(user models.User) *gin.Engine {
	router := setupTestRouter()
	auth := mockAuthMiddleware(user.Auth0ID, user.Role, "mock-token")
	router.POST("/uploads", auth, UploadProductImage)
	return router
}

// multipartImageRequest builds a multipart POST with the given filename
// under the "image" form field
func multipartImageRequest(t *testing.T, filename string, content []byte) *http.Request {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("Failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	req, _ := http.NewRequest(http.MethodPost, "/uploads", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadProductImage(t *testing.T) {
	db := setupUploadTestDB(t)
	config.SetDB(db)

	admin := createTestUser(t, db, "auth0|upload-admin", "admin")
	customer := createTestUser(t, db, "auth0|upload-customer", "customer")

	mockService := services.NewMockImageService()
	mockService.SetAsMockForTesting()

	t.Run("Admin uploads a PNG", func(t *testing.T) {
		router := uploadRouter(admin)
		req := multipartImageRequest(t, "mug.png", []byte("fake png bytes"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response map[string]string
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, "products/mock_mug.png", response["image"])
		assert.Contains(t, response["url"], response["image"])
		assert.True(t, mockService.ImageExists(response["image"]))
	})

	t.Run("Customer is forbidden", func(t *testing.T) {
		router := uploadRouter(customer)
		req := multipartImageRequest(t, "mug.png", []byte("fake png bytes"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Unsupported format is rejected", func(t *testing.T) {
		router := uploadRouter(admin)
		req := multipartImageRequest(t, "document.pdf", []byte("%PDF-1.4"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, "Only .png, .jpg, .jpeg files are allowed", response["message"])
	})

	t.Run("Missing file field is rejected", func(t *testing.T) {
		router := uploadRouter(admin)
		req, _ := http.NewRequest(http.MethodPost, "/uploads", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, "Image file is required", response["message"])
	})
}
