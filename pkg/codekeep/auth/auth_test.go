package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/codekeep/codekeep/pkg/codekeep/models"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	models.AutoMigrate(db)
	return db
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(db)
	handler.RegisterRoutes(r.Group("/api/auth"))
	return r
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "password123" {
		t.Error("Hash should not equal the plaintext password")
	}
	if !CheckPassword("password123", hash) {
		t.Error("CheckPassword should accept the correct password")
	}
	if CheckPassword("wrong", hash) {
		t.Error("CheckPassword should reject a wrong password")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(7, "owner@example.com")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != 7 || claims.Email != "owner@example.com" {
		t.Errorf("Unexpected claims: %+v", claims)
	}

	if _, err := ValidateToken("not.a.token"); err == nil {
		t.Error("Expected garbage token to be rejected")
	}
}

func TestRegisterClosedAfterFirstUser(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	body, _ := json.Marshal(RegisterRequest{
		Email:    "owner@example.com",
		Password: "password123",
		Name:     "Owner",
	})

	req, _ := http.NewRequest("POST", "/api/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	// Second registration must be rejected: this is a single-user instance
	body2, _ := json.Marshal(RegisterRequest{
		Email:    "intruder@example.com",
		Password: "password123",
		Name:     "Intruder",
	})
	req2, _ := http.NewRequest("POST", "/api/auth/register", bytes.NewReader(body2))
	req2.Header.Set("Content-Type", "application/json")
	resp2 := httptest.NewRecorder()
	router.ServeHTTP(resp2, req2)

	if resp2.Code != http.StatusForbidden {
		t.Errorf("Expected status 403 for second registration, got %d", resp2.Code)
	}
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	hash, _ := HashPassword("password123")
	user := models.User{Email: "owner@example.com", PasswordHash: hash, Name: "Owner"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	body, _ := json.Marshal(LoginRequest{Email: "owner@example.com", Password: "password123"})
	req, _ := http.NewRequest("POST", "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var authResp AuthResponse
	json.Unmarshal(resp.Body.Bytes(), &authResp)
	if authResp.Token == "" {
		t.Error("Expected a token in the login response")
	}

	// Wrong password
	badBody, _ := json.Marshal(LoginRequest{Email: "owner@example.com", Password: "nope-wrong"})
	badReq, _ := http.NewRequest("POST", "/api/auth/login", bytes.NewReader(badBody))
	badReq.Header.Set("Content-Type", "application/json")
	badResp := httptest.NewRecorder()
	router.ServeHTTP(badResp, badReq)

	if badResp.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 for wrong password, got %d", badResp.Code)
	}
}
