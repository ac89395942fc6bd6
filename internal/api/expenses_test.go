package api

import (
	"net/http"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCreateExpenseAllocatesTransactionNo(t *testing.T) {
	r, _ := newTestRouter()
	id := createTestUser(t, r, "a@x.com")

	first := createTestExpense(t, r, id)
	second := createTestExpense(t, r, id)

	if first["transaction_no"] != 1.0 {
		t.Errorf("wanted first transaction_no 1, got %v", first["transaction_no"])
	}
	if second["transaction_no"] != 2.0 {
		t.Errorf("wanted second transaction_no 2, got %v", second["transaction_no"])
	}
	if first["_id"] == nil || first["_id"] == "" {
		t.Error("create response must include the storage-assigned _id")
	}
}

func TestCreateExpenseMissingFields(t *testing.T) {
	r, _ := newTestRouter()

	response := doRequest(t, r, http.MethodPost, "/expenses", testToken, gin.H{
		"user_id": 1,
		"title":   "coffee",
		// transaction_type, amount, category, date missing
	})
	if response.Code != http.StatusBadRequest {
		t.Fatalf("wanted 400, got %d", response.Code)
	}
	if body := decodeBody(t, response); body["message"] != "Add complete expense data" {
		t.Errorf("unexpected message %v", body["message"])
	}
}

func TestCreateExpenseZeroAmountIsPresent(t *testing.T) {
	// Validation is presence-only: a zero amount is a legal payload
	r, _ := newTestRouter()
	id := createTestUser(t, r, "a@x.com")

	response := doRequest(t, r, http.MethodPost, "/expenses", testToken, gin.H{
		"user_id":          id,
		"transaction_type": "debit",
		"title":            "freebie",
		"amount":           0,
		"category":         "misc",
		"date":             "2024-05-01",
	})
	if response.Code != http.StatusCreated {
		t.Errorf("wanted 201 for a zero amount, got %d: %s", response.Code, response.Body.String())
	}
}

func TestConcurrentExpenseCreationOverAPI(t *testing.T) {
	// Concurrent creations for one user must produce transaction numbers
	// that are exactly 1..N.

	r, _ := newTestRouter()
	id := createTestUser(t, r, "a@x.com")
	const n = 32

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			response := doRequest(t, r, http.MethodPost, "/expenses", testToken, gin.H{
				"user_id":          id,
				"transaction_type": "debit",
				"title":            "coffee",
				"amount":           3.5,
				"category":         "food",
				"date":             "2024-05-01",
			})
			if response.Code != http.StatusCreated {
				t.Errorf("wanted 201, got %d", response.Code)
			}
		}()
	}
	wg.Wait()

	response := doRequest(t, r, http.MethodGet, "/expenses/"+itoa(id), testToken, nil)
	if response.Code != http.StatusOK {
		t.Fatalf("wanted 200, got %d", response.Code)
	}
	expenses := decodeListBody(t, response)
	if len(expenses) != n {
		t.Fatalf("wanted %d expenses, got %d", n, len(expenses))
	}
	seen := make(map[float64]bool)
	for _, e := range expenses {
		no := e["transaction_no"].(float64)
		if seen[no] {
			t.Errorf("duplicate transaction_no %v", no)
		}
		seen[no] = true
	}
	for i := 1; i <= n; i++ {
		if !seen[float64(i)] {
			t.Errorf("missing transaction_no %d", i)
		}
	}
}

func TestGetExpense(t *testing.T) {
	r, _ := newTestRouter()
	id := createTestUser(t, r, "a@x.com")
	createTestExpense(t, r, id)

	response := doRequest(t, r, http.MethodGet, "/expenses/"+itoa(id)+"/1", testToken, nil)
	if response.Code != http.StatusOK {
		t.Fatalf("wanted 200, got %d", response.Code)
	}
	expense := decodeBody(t, response)
	if expense["title"] != "coffee" || expense["amount"] != 3.5 {
		t.Errorf("unexpected expense %v", expense)
	}
	if _, hasID := expense["_id"]; hasID {
		t.Error("read responses must not expose the storage id")
	}
}

func TestGetExpenseNotFound(t *testing.T) {
	r, _ := newTestRouter()

	response := doRequest(t, r, http.MethodGet, "/expenses/1/1", testToken, nil)
	if response.Code != http.StatusNotFound {
		t.Fatalf("wanted 404, got %d", response.Code)
	}
	if body := decodeBody(t, response); body["message"] != "Expense not found" {
		t.Errorf("unexpected message %v", body["message"])
	}
}

func TestGetExpenseBadPathEchoesError(t *testing.T) {
	r, _ := newTestRouter()

	response := doRequest(t, r, http.MethodGet, "/expenses/1/abc", testToken, nil)
	if response.Code != http.StatusBadRequest {
		t.Fatalf("wanted 400, got %d", response.Code)
	}
	body := decodeBody(t, response)
	if body["message"] != "Error has occured" {
		t.Errorf("unexpected message %v", body["message"])
	}
	if body["error"] == nil || body["error"] == "" {
		t.Error("lookup failures must echo an error detail")
	}
}

func TestUpdateExpenseOnlyAmount(t *testing.T) {
	r, _ := newTestRouter()
	id := createTestUser(t, r, "a@x.com")
	createTestExpense(t, r, id)

	response := doRequest(t, r, http.MethodPut, "/expenses/"+itoa(id)+"/1", testToken, gin.H{
		"amount": 99.0,
	})
	if response.Code != http.StatusOK {
		t.Fatalf("wanted 200, got %d: %s", response.Code, response.Body.String())
	}
	expense := decodeBody(t, response)
	if expense["amount"] != 99.0 {
		t.Errorf("wanted amount 99, got %v", expense["amount"])
	}
	if expense["transaction_type"] != "debit" || expense["title"] != "coffee" ||
		expense["category"] != "food" || expense["date"] != "2024-05-01" {
		t.Errorf("fields absent from the payload changed: %v", expense)
	}
}

func TestUpdateExpenseNotFound(t *testing.T) {
	r, _ := newTestRouter()

	response := doRequest(t, r, http.MethodPut, "/expenses/1/1", testToken, gin.H{"amount": 1})
	if response.Code != http.StatusNotFound {
		t.Errorf("wanted 404, got %d", response.Code)
	}
}

func TestDeleteExpense(t *testing.T) {
	r, _ := newTestRouter()
	id := createTestUser(t, r, "a@x.com")
	createTestExpense(t, r, id)

	response := doRequest(t, r, http.MethodDelete, "/expenses/"+itoa(id)+"/1", testToken, nil)
	if response.Code != http.StatusOK {
		t.Fatalf("wanted 200, got %d", response.Code)
	}
	if body := decodeBody(t, response); body["message"] != "Expense deleted successfully" {
		t.Errorf("unexpected message %v", body["message"])
	}

	if response := doRequest(t, r, http.MethodGet, "/expenses/"+itoa(id)+"/1", testToken, nil); response.Code != http.StatusNotFound {
		t.Errorf("wanted 404 after delete, got %d", response.Code)
	}
}

func TestDeleteExpenseNotFound(t *testing.T) {
	r, _ := newTestRouter()

	response := doRequest(t, r, http.MethodDelete, "/expenses/1/1", testToken, nil)
	if response.Code != http.StatusNotFound {
		t.Errorf("wanted 404, got %d", response.Code)
	}
}

func TestListExpensesPerUser(t *testing.T) {
	r, _ := newTestRouter()
	first := createTestUser(t, r, "a@x.com")
	second := createTestUser(t, r, "b@x.com")
	createTestExpense(t, r, first)
	createTestExpense(t, r, first)
	createTestExpense(t, r, second)

	response := doRequest(t, r, http.MethodGet, "/expenses/"+itoa(first), testToken, nil)
	if got := len(decodeListBody(t, response)); got != 2 {
		t.Errorf("wanted 2 expenses for the first user, got %d", got)
	}

	response = doRequest(t, r, http.MethodGet, "/expenses", testToken, nil)
	if got := len(decodeListBody(t, response)); got != 3 {
		t.Errorf("wanted 3 expenses overall, got %d", got)
	}
}
