package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequireAdmin_MissingToken(t *testing.T) {
	auth, _ := newAuthService("test-secret", "hunter2")

	router := gin.New()
	router.Use(requireAdmin(auth))
	router.POST("/protected", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{}) })

	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRequireAdmin_ValidToken(t *testing.T) {
	auth, _ := newAuthService("test-secret", "hunter2")
	token, err := auth.generateToken()
	if err != nil {
		t.Fatalf("generateToken: %v", err)
	}

	router := gin.New()
	router.Use(requireAdmin(auth))
	router.POST("/protected", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{}) })

	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestCORSMiddleware_PreflightNoContent(t *testing.T) {
	router := gin.New()
	router.Use(corsMiddleware())
	router.GET("/x", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{}) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}
}
