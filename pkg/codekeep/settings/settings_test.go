package settings

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/codekeep/codekeep/pkg/codekeep/auth"
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

func createTestUser(t *testing.T, db *gorm.DB) models.User {
	hash, _ := auth.HashPassword("password123")
	user := models.User{Email: "owner@example.com", PasswordHash: hash, Name: "Owner"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(db)

	api := r.Group("/api")
	api.Use(auth.AuthMiddleware())
	handler.RegisterRoutes(api)

	return r
}

func getAuthHeader(user models.User) string {
	token, _ := auth.GenerateToken(user.ID, user.Email)
	return "Bearer " + token
}

func TestEnsureDefaultsSeedsMissingKeys(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	// Pre-set one key; EnsureDefaults must not overwrite it
	if err := store.Set(KeyAiLanguage, "de"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.EnsureDefaults(); err != nil {
		t.Fatalf("EnsureDefaults failed: %v", err)
	}

	lang, err := store.GetString(KeyAiLanguage)
	if err != nil {
		t.Fatalf("GetString failed: %v", err)
	}
	if lang != "de" {
		t.Errorf("Expected existing value to survive seeding, got %q", lang)
	}

	var count int64
	db.Model(&models.Setting{}).Count(&count)
	if count != int64(len(Defaults)) {
		t.Errorf("Expected %d seeded rows, got %d", len(Defaults), count)
	}
}

func TestGetBoolFallsBackToDefault(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	hideTagged, err := store.GetBool(KeyHideTaggedWhenNoTagSelected)
	if err != nil {
		t.Fatalf("GetBool failed: %v", err)
	}
	if hideTagged {
		t.Errorf("Expected default false for %s", KeyHideTaggedWhenNoTagSelected)
	}

	searchAcross, err := store.GetBool(KeySearchAcrossAllTags)
	if err != nil {
		t.Fatalf("GetBool failed: %v", err)
	}
	if !searchAcross {
		t.Errorf("Expected default true for %s", KeySearchAcrossAllTags)
	}
}

func TestUpdateRejectsUnknownKey(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db)

	body, _ := json.Marshal(UpdateSettingsRequest{Values: map[string]string{"nonsense": "true"}})
	req, _ := http.NewRequest("PUT", "/api/settings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", getAuthHeader(user))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for unknown key, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestUpdateAndGetRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db)

	body, _ := json.Marshal(UpdateSettingsRequest{Values: map[string]string{
		KeyHideTaggedWhenNoTagSelected: "true",
		KeyAiLanguage:                  "fr",
	}})
	req, _ := http.NewRequest("PUT", "/api/settings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", getAuthHeader(user))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	getReq, _ := http.NewRequest("GET", "/api/settings", nil)
	getReq.Header.Set("Authorization", getAuthHeader(user))
	getResp := httptest.NewRecorder()
	router.ServeHTTP(getResp, getReq)

	var values map[string]string
	json.Unmarshal(getResp.Body.Bytes(), &values)
	if values[KeyHideTaggedWhenNoTagSelected] != "true" {
		t.Errorf("Expected updated value, got %q", values[KeyHideTaggedWhenNoTagSelected])
	}
	if values[KeyAiLanguage] != "fr" {
		t.Errorf("Expected updated language, got %q", values[KeyAiLanguage])
	}
	// Untouched keys report their defaults
	if values[KeyDuplicateCheckEnabled] != "true" {
		t.Errorf("Expected default for untouched key, got %q", values[KeyDuplicateCheckEnabled])
	}
}
