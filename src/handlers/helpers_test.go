package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fluentos/desktop-admin-api/src/database"
	"github.com/fluentos/desktop-admin-api/src/repositories/sqlite"
	"github.com/fluentos/desktop-admin-api/src/services"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// Test helpers for handler tests

// testServices is the service graph over a private in-memory database
type testServices struct {
	db         *database.Database
	accounts   *services.AccountService
	auth       *services.AuthService
	audit      *services.AuditLogService
	broadcasts *services.BroadcastService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	if err := RegisterValidators(); err != nil {
		t.Fatalf("register validators: %v", err)
	}

	db := database.NewTestSQLite(t)
	hasher := services.NewBcryptHasher(bcrypt.MinCost)
	users := sqlite.NewUserRepository(db.GetSQL())

	s := &testServices{db: db}
	s.accounts = services.NewAccountService(users, hasher)
	s.audit = services.NewAuditLogService(sqlite.NewLoginLogRepository(db.GetSQL()))
	s.auth = services.NewAuthService(users, hasher, s.audit)
	s.broadcasts = services.NewBroadcastService(sqlite.NewBroadcastRepository(db.GetSQL()), nil)

	if err := s.accounts.EnsureDefaults(context.Background(), services.DefaultCredentials{}); err != nil {
		t.Fatalf("seed defaults: %v", err)
	}
	return s
}

// createTestContext creates a test Gin context with recorder
func createTestContext() (*httptest.ResponseRecorder, *gin.Context) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return w, c
}

// jsonRequest builds a request with a JSON body
func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// assertStatusCode checks if response status code matches expected
func assertStatusCode(t *testing.T, w *httptest.ResponseRecorder, expectedCode int) {
	t.Helper()
	if w.Code != expectedCode {
		t.Errorf("expected status %d, got %d: %s", expectedCode, w.Code, w.Body.String())
	}
}

// assertDetail checks the error detail of a response
func assertDetail(t *testing.T, w *httptest.ResponseRecorder, expected string) {
	t.Helper()
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if response["detail"] != expected {
		t.Errorf("expected detail '%s', got '%v'", expected, response["detail"])
	}
}
