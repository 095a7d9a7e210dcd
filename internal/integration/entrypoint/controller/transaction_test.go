package controller

import (
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger-api/internal/integration/entrypoint/dto"
)

func TestTransactionController_CreateAndGet(t *testing.T) {
	s := newTestServer(t)
	checking := s.seedAccount(t, s.userID, "Checking")
	food := s.seedCategory(t, s.userID, "Food")

	w := s.do(t, http.MethodPost, "/api/v1/transactions", map[string]interface{}{
		"date":          "2024-03-02",
		"accountId":     checking.ID.String(),
		"categoryId":    food.ID.String(),
		"displayAmount": "-12.34",
		"payee":         "Grocer",
	})
	expectStatus(t, w, http.StatusCreated)

	created := decodeData[dto.TransactionResponse](t, w)
	if created.Amount != -12340 {
		t.Errorf("amount = %d, want -12340", created.Amount)
	}
	if created.Date != "2024-03-02" {
		t.Errorf("date = %q, want 2024-03-02", created.Date)
	}
	if created.CategoryID == nil || *created.CategoryID != food.ID.String() {
		t.Errorf("categoryId = %v, want %s", created.CategoryID, food.ID)
	}

	w = s.do(t, http.MethodGet, "/api/v1/transactions/"+created.ID, nil)
	expectStatus(t, w, http.StatusOK)
	if got := decodeData[dto.TransactionResponse](t, w); got.Payee != "Grocer" {
		t.Errorf("payee = %q, want Grocer", got.Payee)
	}

	w = s.doAs(t, uuid.New(), http.MethodGet, "/api/v1/transactions/"+created.ID, nil)
	expectStatus(t, w, http.StatusNotFound)
}

func TestTransactionController_Create_Errors(t *testing.T) {
	s := newTestServer(t)
	checking := s.seedAccount(t, s.userID, "Checking")
	foreignAccount := s.seedAccount(t, uuid.New(), "Foreign")
	foreignCategory := s.seedCategory(t, uuid.New(), "Foreign")

	tests := []struct {
		name       string
		body       map[string]interface{}
		wantStatus int
		wantCode   string
	}{
		{
			name:       "missing payee",
			body:       map[string]interface{}{"date": "2024-03-02", "accountId": checking.ID.String(), "amount": 1000},
			wantStatus: http.StatusBadRequest,
			wantCode:   "TXN-010009",
		},
		{
			name:       "bad date",
			body:       map[string]interface{}{"date": "yesterday", "accountId": checking.ID.String(), "amount": 1000, "payee": "x"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "TXN-010001",
		},
		{
			name:       "no amount",
			body:       map[string]interface{}{"date": "2024-03-02", "accountId": checking.ID.String(), "payee": "x"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "TXN-010002",
		},
		{
			name:       "foreign account",
			body:       map[string]interface{}{"date": "2024-03-02", "accountId": foreignAccount.ID.String(), "amount": 1000, "payee": "x"},
			wantStatus: http.StatusForbidden,
			wantCode:   "TXN-020002",
		},
		{
			name: "foreign category",
			body: map[string]interface{}{
				"date": "2024-03-02", "accountId": checking.ID.String(), "categoryId": foreignCategory.ID.String(),
				"amount": 1000, "payee": "x",
			},
			wantStatus: http.StatusForbidden,
			wantCode:   "TXN-020003",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/api/v1/transactions", tt.body)
			expectStatus(t, w, tt.wantStatus)
			if _, code := decodeError(t, w); code != tt.wantCode {
				t.Errorf("code = %q, want %q", code, tt.wantCode)
			}
		})
	}
}

func TestTransactionController_List(t *testing.T) {
	s := newTestServer(t)
	checking := s.seedAccount(t, s.userID, "Checking")
	savings := s.seedAccount(t, s.userID, "Savings")
	food := s.seedCategory(t, s.userID, "Food")

	s.seedTransaction(t, checking.ID, &food.ID, "2024-03-01", -1000)
	s.seedTransaction(t, savings.ID, nil, "2024-03-03", 2000)
	s.seedTransaction(t, checking.ID, nil, "2024-04-01", 3000)

	w := s.do(t, http.MethodGet, "/api/v1/transactions?from=2024-03-01&to=2024-03-31", nil)
	expectStatus(t, w, http.StatusOK)

	items := decodeData[[]dto.TransactionListItemResponse](t, w)
	if len(items) != 2 {
		t.Fatalf("got %d transactions, want 2", len(items))
	}
	if items[0].Date != "2024-03-03" || items[0].Account != "Savings" || items[0].Category != nil {
		t.Errorf("items[0] = %+v, want the savings row first", items[0])
	}
	if items[1].Account != "Checking" || items[1].Category == nil || *items[1].Category != "Food" {
		t.Errorf("items[1] = %+v, want the checking/Food row", items[1])
	}

	w = s.do(t, http.MethodGet, "/api/v1/transactions?from=2024-03-01&to=2024-03-31&accountId="+checking.ID.String(), nil)
	expectStatus(t, w, http.StatusOK)
	if items := decodeData[[]dto.TransactionListItemResponse](t, w); len(items) != 1 {
		t.Errorf("got %d transactions for checking, want 1", len(items))
	}

	w = s.do(t, http.MethodGet, "/api/v1/transactions?from=2024-03-31&to=2024-03-01", nil)
	expectStatus(t, w, http.StatusBadRequest)
	if _, code := decodeError(t, w); code != "SUM-010002" {
		t.Errorf("code = %q, want SUM-010002", code)
	}
}

func TestTransactionController_BulkCreate(t *testing.T) {
	s := newTestServer(t)
	checking := s.seedAccount(t, s.userID, "Checking")
	foreign := s.seedAccount(t, uuid.New(), "Foreign")

	t.Run("all or nothing", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/transactions/bulk-create", []map[string]interface{}{
			{"date": "2024-03-01", "accountId": checking.ID.String(), "amount": 1000, "payee": "a"},
			{"date": "2024-03-02", "accountId": foreign.ID.String(), "amount": 2000, "payee": "b"},
		})
		expectStatus(t, w, http.StatusForbidden)

		w = s.do(t, http.MethodGet, "/api/v1/transactions?from=2024-03-01&to=2024-03-31", nil)
		if items := decodeData[[]dto.TransactionListItemResponse](t, w); len(items) != 0 {
			t.Errorf("got %d transactions after rejected batch, want 0", len(items))
		}
	})

	t.Run("creates every row", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/transactions/bulk-create", []map[string]interface{}{
			{"date": "2024-03-01", "accountId": checking.ID.String(), "amount": 1000, "payee": "a"},
			{"date": "2024-03-02T10:30:00Z", "accountId": checking.ID.String(), "displayAmount": "2.5", "payee": "b"},
		})
		expectStatus(t, w, http.StatusCreated)

		created := decodeData[[]dto.TransactionResponse](t, w)
		if len(created) != 2 {
			t.Fatalf("created %d transactions, want 2", len(created))
		}
		if created[1].Amount != 2500 || created[1].Date != "2024-03-02" {
			t.Errorf("created[1] = %+v, want 2500 on 2024-03-02", created[1])
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/transactions/bulk-create", []map[string]interface{}{})
		expectStatus(t, w, http.StatusBadRequest)
		if _, code := decodeError(t, w); code != "TXN-010007" {
			t.Errorf("code = %q, want TXN-010007", code)
		}
	})
}

func TestTransactionController_UpdateAndDelete(t *testing.T) {
	s := newTestServer(t)
	checking := s.seedAccount(t, s.userID, "Checking")
	food := s.seedCategory(t, s.userID, "Food")
	txn := s.seedTransaction(t, checking.ID, &food.ID, "2024-03-01", -1000)
	other := s.seedTransaction(t, checking.ID, nil, "2024-03-02", -2000)

	w := s.do(t, http.MethodPatch, "/api/v1/transactions/"+txn.ID.String(), map[string]interface{}{
		"amount":        -4500,
		"payee":         "Market",
		"clearCategory": true,
	})
	expectStatus(t, w, http.StatusOK)

	updated := decodeData[dto.TransactionResponse](t, w)
	if updated.Amount != -4500 || updated.Payee != "Market" || updated.CategoryID != nil {
		t.Errorf("updated = %+v, want amount -4500, payee Market, no category", updated)
	}

	w = s.do(t, http.MethodDelete, "/api/v1/transactions/"+txn.ID.String(), nil)
	expectStatus(t, w, http.StatusOK)
	if got := decodeData[dto.IDResponse](t, w); got.ID != txn.ID.String() {
		t.Errorf("deleted id = %q, want %s", got.ID, txn.ID)
	}

	w = s.do(t, http.MethodDelete, "/api/v1/transactions/"+txn.ID.String(), nil)
	expectStatus(t, w, http.StatusNotFound)

	w = s.do(t, http.MethodPost, "/api/v1/transactions/bulk-delete", dto.BulkDeleteRequest{
		IDs: []string{other.ID.String(), uuid.NewString()},
	})
	expectStatus(t, w, http.StatusOK)
	if got := decodeData[[]dto.IDResponse](t, w); len(got) != 1 || got[0].ID != other.ID.String() {
		t.Errorf("deleted = %+v, want only %s", got, other.ID)
	}

	w = s.do(t, http.MethodPost, "/api/v1/transactions/bulk-delete", dto.BulkDeleteRequest{IDs: []string{"nope"}})
	expectStatus(t, w, http.StatusBadRequest)
	if _, code := decodeError(t, w); code != "TXN-010008" {
		t.Errorf("code = %q, want TXN-010008", code)
	}

	w = s.do(t, http.MethodPatch, "/api/v1/transactions/"+uuid.NewString(), map[string]interface{}{"payee": "x"})
	expectStatus(t, w, http.StatusNotFound)
}
