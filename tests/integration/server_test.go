package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/codekeep/codekeep/pkg/codekeep/apikeys"
	"github.com/codekeep/codekeep/pkg/codekeep/auth"
	"github.com/codekeep/codekeep/pkg/codekeep/barcodes"
	"github.com/codekeep/codekeep/pkg/codekeep/events"
	"github.com/codekeep/codekeep/pkg/codekeep/history"
	"github.com/codekeep/codekeep/pkg/codekeep/importexport"
	"github.com/codekeep/codekeep/pkg/codekeep/models"
	"github.com/codekeep/codekeep/pkg/codekeep/settings"
	"github.com/codekeep/codekeep/pkg/codekeep/tags"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	if err := settings.NewStore(db).EnsureDefaults(); err != nil {
		t.Fatalf("Failed to seed settings: %v", err)
	}
	return db
}

// setupFullServer creates a Gin engine with all routes registered.
// This mirrors the setup in cmd/codekeep-server/main.go
func setupFullServer(db *gorm.DB, emitter *events.Emitter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		authHandler := auth.NewHandler(db)
		authHandler.RegisterRoutes(api.Group("/auth"))

		combinedAuth := apikeys.CombinedAuthMiddleware(db)

		apiKeysHandler := apikeys.NewHandler(db)
		apiKeysHandler.RegisterRoutes(api.Group("", auth.AuthMiddleware()))

		barcodesHandler := barcodes.NewHandler(db, emitter)
		barcodesHandler.RegisterRoutes(api.Group("", combinedAuth))

		historyHandler := history.NewHandler(db)
		historyHandler.RegisterRoutes(api.Group("", combinedAuth))

		tagsHandler := tags.NewHandler(db, emitter)
		tagsHandler.RegisterRoutes(api.Group("", combinedAuth))

		settingsHandler := settings.NewHandler(db)
		settingsHandler.RegisterRoutes(api.Group("", combinedAuth))

		importExportHandler := importexport.NewHandler(db)
		importExportHandler.RegisterRoutes(api.Group("", combinedAuth))
	}

	return r
}

func registerAndLogin(t *testing.T, router *gin.Engine) string {
	body, _ := json.Marshal(map[string]string{
		"email":    "owner@example.com",
		"password": "password123",
		"name":     "Owner",
	})
	req, _ := http.NewRequest("POST", "/api/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("Registration failed: %d %s", resp.Code, resp.Body.String())
	}

	loginBody, _ := json.Marshal(map[string]string{
		"email":    "owner@example.com",
		"password": "password123",
	})
	loginReq, _ := http.NewRequest("POST", "/api/auth/login", bytes.NewReader(loginBody))
	loginReq.Header.Set("Content-Type", "application/json")
	loginResp := httptest.NewRecorder()
	router.ServeHTTP(loginResp, loginReq)
	if loginResp.Code != http.StatusOK {
		t.Fatalf("Login failed: %d %s", loginResp.Code, loginResp.Body.String())
	}

	var result struct {
		Token string `json:"token"`
	}
	json.Unmarshal(loginResp.Body.Bytes(), &result)
	if result.Token == "" {
		t.Fatal("Expected a token from login")
	}
	return "Bearer " + result.Token
}

func authedRequest(t *testing.T, router *gin.Engine, method, path, authHeader string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", authHeader)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestHealthEndpoints(t *testing.T) {
	db := setupTestDB(t)
	router := setupFullServer(db, events.NewEmitter())

	resp := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Errorf("Expected 200 from /health, got %d", resp.Code)
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	db := setupTestDB(t)
	router := setupFullServer(db, events.NewEmitter())

	for _, path := range []string{"/api/history", "/api/tags", "/api/settings", "/api/export", "/api/barcodes/stats"} {
		req, _ := http.NewRequest("GET", path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401 from %s without auth, got %d", path, resp.Code)
		}
	}
}

func TestSecondRegistrationRejected(t *testing.T) {
	db := setupTestDB(t)
	router := setupFullServer(db, events.NewEmitter())
	registerAndLogin(t, router)

	body, _ := json.Marshal(map[string]string{
		"email":    "second@example.com",
		"password": "password123",
		"name":     "Second",
	})
	req, _ := http.NewRequest("POST", "/api/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for a second registration, got %d", resp.Code)
	}
}

// TestScanSaveAndRetrieveFlow walks the main user journey: save a capture
// with tag names, find it through history filters, toggle its favorite
// flag, and export it.
func TestScanSaveAndRetrieveFlow(t *testing.T) {
	db := setupTestDB(t)
	router := setupFullServer(db, events.NewEmitter())
	authHeader := registerAndLogin(t, router)

	// Duplicate check on an empty store
	resp := authedRequest(t, router, "GET", "/api/barcodes/duplicate?content=https://go.dev", authHeader, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Duplicate check failed: %d %s", resp.Code, resp.Body.String())
	}
	var dupResult struct {
		Duplicate bool `json:"duplicate"`
	}
	json.Unmarshal(resp.Body.Bytes(), &dupResult)
	if dupResult.Duplicate {
		t.Fatal("Expected no duplicate on an empty store")
	}

	// Save with tag names
	resp = authedRequest(t, router, "POST", "/api/barcodes", authHeader, map[string]interface{}{
		"value_type":  "url",
		"symbology":   "qr",
		"raw_content": "https://go.dev",
		"title":       "Go homepage",
		"tag_names":   []string{"Golang", "Docs"},
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("Save failed: %d %s", resp.Code, resp.Body.String())
	}
	var saved models.Barcode
	json.Unmarshal(resp.Body.Bytes(), &saved)
	if saved.ID == 0 || len(saved.Tags) != 2 {
		t.Fatalf("Expected a saved barcode with 2 tags, got %+v", saved)
	}

	// The same content now reports as a duplicate, case-insensitively
	resp = authedRequest(t, router, "GET", "/api/barcodes/duplicate?content=HTTPS://GO.DEV", authHeader, nil)
	json.Unmarshal(resp.Body.Bytes(), &dupResult)
	if !dupResult.Duplicate {
		t.Error("Expected a duplicate after saving")
	}

	// History text search finds it
	resp = authedRequest(t, router, "GET", "/api/history?q=go.dev", authHeader, nil)
	var found []models.Barcode
	json.Unmarshal(resp.Body.Bytes(), &found)
	if len(found) != 1 || found[0].ID != saved.ID {
		t.Fatalf("Expected history search to find the barcode, got %d results", len(found))
	}

	// Tag filter finds it too
	var tagID uint
	for _, tag := range saved.Tags {
		if tag.Name == "Golang" {
			tagID = tag.ID
		}
	}
	resp = authedRequest(t, router, "GET", "/api/history?tag_id="+itoa(tagID), authHeader, nil)
	json.Unmarshal(resp.Body.Bytes(), &found)
	if len(found) != 1 {
		t.Fatalf("Expected tag filter to find the barcode, got %d results", len(found))
	}

	// Favorite it, then filter by favorites
	resp = authedRequest(t, router, "PUT", "/api/barcodes/"+itoa(saved.ID)+"/favorite", authHeader, map[string]bool{"value": true})
	if resp.Code != http.StatusOK {
		t.Fatalf("Favorite toggle failed: %d %s", resp.Code, resp.Body.String())
	}
	resp = authedRequest(t, router, "GET", "/api/history?favorites=true", authHeader, nil)
	json.Unmarshal(resp.Body.Bytes(), &found)
	if len(found) != 1 {
		t.Fatalf("Expected favorites filter to find the barcode, got %d results", len(found))
	}

	// Export carries the record with its tags
	resp = authedRequest(t, router, "GET", "/api/export", authHeader, nil)
	var exported []map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &exported)
	if len(exported) != 1 {
		t.Fatalf("Expected 1 exported barcode, got %d", len(exported))
	}
}

func itoa(v uint) string {
	return strconv.Itoa(int(v))
}
