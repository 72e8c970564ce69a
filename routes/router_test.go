package routes

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"train-feedback-server/config"
	"train-feedback-server/database"
	"train-feedback-server/models"
	"train-feedback-server/utils"
)

// setupTestDB points the global connection at a throwaway sqlite file with the
// production model set migrated
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	config.Load()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.sqlite")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	database.DB = db
	return db
}

// newTestRouter wires the feedback routes without the auth middleware; the
// handlers under test do not read the authenticated identity
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	feedbacks := api.Group("/feedback")
	RegisterFeedbackRoutes(feedbacks)
	RegisterBulkRoutes(feedbacks)
	RegisterAdminFeedbackRoutes(feedbacks)
	RegisterAuthRoutes(api.Group("/auth"))
	return router
}

// newAuthedRouter registers the protected auth routes behind a stub identity
// middleware so handlers see the given user as authenticated
func newAuthedRouter(userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	authed := router.Group("/api/v1")
	authed.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	RegisterProtectedAuthRoutes(authed)
	return router
}

func performJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return body
}

func createUser(t *testing.T, userID, password string, role models.UserRole, active bool) *models.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{
		UserID:       userID,
		Name:         "Test " + userID,
		PasswordHash: hash,
		Role:         role,
		IsActive:     active,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &user
}

func validCreatePayload() map[string]interface{} {
	return map[string]interface{}{
		"trainNo":      "12301",
		"trainName":    "Howrah Rajdhani Express",
		"date":         "2024-03-15",
		"coachNo":      "B1",
		"pnr":          "4521036985",
		"mobile":       "9830012345",
		"ns1":          1,
		"ns2":          0,
		"ns3":          2,
		"psi":          85,
		"reportDate":   "2024-03-15",
		"feedbackText": "Coach was clean",
	}
}

func mustStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, want, w.Body.String())
	}
}
