package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"expense_tracker/internal/cache"
	"expense_tracker/internal/middleware"
	"expense_tracker/internal/store"

	"github.com/gin-gonic/gin"
)

const testToken = "test-secure-token"

func itoa(n int) string { return strconv.Itoa(n) }

// newTestRouter wires the full middleware and route stack against the in
// memory store and cache.
func newTestRouter() (*gin.Engine, *store.MemoryStore) {
	gin.SetMode(gin.TestMode)
	s := store.NewMemoryStore()
	r := gin.New()
	r.Use(middleware.TokenAuth(testToken))
	Register(r, s, cache.NewMemoryCache())
	return r, s
}

// doRequest performs a request against the router and returns the recorder.
// An empty token leaves the Authorization header unset.
func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	request, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response := httptest.NewRecorder()
	r.ServeHTTP(response, request)
	return response
}

// decodeBody unmarshals a JSON object response body
func decodeBody(t *testing.T, response *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(response.Body).Decode(&body); err != nil {
		t.Fatalf("unable to parse response from server '%v'", err)
	}
	return body
}

// decodeListBody unmarshals a JSON array response body
func decodeListBody(t *testing.T, response *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var body []map[string]any
	if err := json.NewDecoder(response.Body).Decode(&body); err != nil {
		t.Fatalf("unable to parse response from server '%v'", err)
	}
	return body
}

// createTestUser creates a user through the API and returns its user_id.
func createTestUser(t *testing.T, r *gin.Engine, email string) int {
	t.Helper()
	response := doRequest(t, r, http.MethodPost, "/users", testToken, gin.H{
		"user_pass":  "p",
		"user_name":  "n",
		"user_email": email,
	})
	if response.Code != http.StatusCreated {
		t.Fatalf("wanted 201 creating user, got %d: %s", response.Code, response.Body.String())
	}
	return int(decodeBody(t, response)["user_id"].(float64))
}

// createTestExpense creates an expense through the API for a user.
func createTestExpense(t *testing.T, r *gin.Engine, userID int) map[string]any {
	t.Helper()
	response := doRequest(t, r, http.MethodPost, "/expenses", testToken, gin.H{
		"user_id":          userID,
		"transaction_type": "debit",
		"title":            "coffee",
		"amount":           3.5,
		"category":         "food",
		"date":             "2024-05-01",
	})
	if response.Code != http.StatusCreated {
		t.Fatalf("wanted 201 creating expense, got %d: %s", response.Code, response.Body.String())
	}
	return decodeBody(t, response)
}
