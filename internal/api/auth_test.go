package api

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestMissingAndWrongTokenAreIndistinguishable(t *testing.T) {
	r, _ := newTestRouter()

	noToken := doRequest(t, r, http.MethodGet, "/users", "", nil)
	wrongToken := doRequest(t, r, http.MethodGet, "/users", "not-the-token", nil)

	if noToken.Code != http.StatusUnauthorized || wrongToken.Code != http.StatusUnauthorized {
		t.Fatalf("wanted 401 for both, got %d and %d", noToken.Code, wrongToken.Code)
	}
	// Identical shape: the body must not leak which check failed
	if !reflect.DeepEqual(decodeBody(t, noToken), decodeBody(t, wrongToken)) {
		t.Error("wanted identical 401 bodies for missing and wrong tokens")
	}
}

func TestMalformedAuthorizationHeader(t *testing.T) {
	r, _ := newTestRouter()

	// Non-bearer scheme
	request, _ := http.NewRequest(http.MethodGet, "/users", nil)
	request.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	response := httptest.NewRecorder()
	r.ServeHTTP(response, request)

	if response.Code != http.StatusUnauthorized {
		t.Fatalf("wanted 401 for a non-bearer scheme, got %d", response.Code)
	}
	if body := decodeBody(t, response); body["message"] != "Unauthorized" {
		t.Errorf("wanted generic message, got %v", body["message"])
	}
}

func TestValidTokenPasses(t *testing.T) {
	r, _ := newTestRouter()

	response := doRequest(t, r, http.MethodGet, "/users", testToken, nil)
	if response.Code != http.StatusOK {
		t.Errorf("wanted 200 with the correct token, got %d", response.Code)
	}
}
