package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"fincore/internal/models"
)

func newTestClient(baseURL string) *Client {
	return NewClient(Config{
		BaseURL:     baseURL,
		APIKey:      "test-key",
		Timeout:     2 * time.Second,
		Concurrency: 4,
	})
}

func TestIsConfigured(t *testing.T) {
	if NewClient(Config{BaseURL: "http://x"}).IsConfigured() {
		t.Error("client without API key should not be configured")
	}
	if !newTestClient("http://x").IsConfigured() {
		t.Error("client with API key should be configured")
	}
}

func TestUnconfiguredClientMakesNoCalls(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	if _, err := client.ListAccounts(context.Background()); err != ErrNotConfigured {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if calls.Load() != 0 {
		t.Errorf("expected zero outbound calls, got %d", calls.Load())
	}
}

func TestListAccounts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/accounts" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"accounts":[
			{"id":"acct_1","name":"Operating","type":"checking","balance":1234.565,"available_balance":1200.00,"currency":"USD","status":"open"},
			{"id":"acct_2","name":"Reserve","type":"treasury","balance":50000,"available_balance":50000,"currency":"USD","status":"open"}
		]}`))
	}))
	defer srv.Close()

	accounts, err := newTestClient(srv.URL).ListAccounts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(accounts))
	}

	acct := accounts[0].Model(time.Now())
	if acct.ExternalID != "acct_1" {
		t.Errorf("expected external id acct_1, got %s", acct.ExternalID)
	}
	// 1234.565 major units rounds half-up to 123457 cents.
	if acct.Balance != 123457 {
		t.Errorf("expected balance 123457, got %d", acct.Balance)
	}
	if accounts[1].Model(time.Now()).Type != models.AccountTypeTreasury {
		t.Errorf("expected treasury account type")
	}
}

func TestListAccountsProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ListAccounts(context.Background())
	if err == nil {
		t.Fatal("expected error on 403 response")
	}
	provErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *provider.Error, got %T", err)
	}
	if provErr.StatusCode != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", provErr.StatusCode)
	}
}

func TestListAccountsRetriesServerErrors(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "try later", http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"accounts":[{"id":"acct_1","name":"Operating","type":"checking","balance":1,"available_balance":1,"currency":"USD","status":"open"}]}`))
	}))
	defer srv.Close()

	accounts, err := newTestClient(srv.URL).ListAccounts(context.Background())
	if err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if len(accounts) != 1 {
		t.Fatalf("expected 1 account, got %d", len(accounts))
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestListTransactionsParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/account/acct_1/transactions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("limit") != "50" || q.Get("offset") != "100" || q.Get("status") != "posted" {
			t.Errorf("unexpected query %v", q)
		}
		if q.Get("start") != "2024-01-01" || q.Get("end") != "2024-01-31" {
			t.Errorf("unexpected date range %v", q)
		}
		w.Write([]byte(`{"transactions":[
			{"id":"txn_1","account_id":"acct_1","type":"credit","amount":500.00,"description":"Stripe Payments","counterparty_name":"Stripe","status":"posted","created_at":"2024-01-15T10:00:00Z"}
		],"total":1}`))
	}))
	defer srv.Close()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	list, err := newTestClient(srv.URL).ListTransactions(context.Background(), "acct_1", TransactionParams{
		Limit: 50, Offset: 100, Status: "posted", DateStart: &start, DateEnd: &end,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if list.Total != 1 || len(list.Transactions) != 1 {
		t.Fatalf("unexpected list %+v", list)
	}

	txn := list.Transactions[0].Model(7)
	if txn.AccountID != 7 {
		t.Errorf("expected account id 7, got %d", txn.AccountID)
	}
	if txn.Amount != 50000 {
		t.Errorf("expected 50000 cents, got %d", txn.Amount)
	}
	if txn.Direction != models.DirectionCredit {
		t.Errorf("expected credit direction")
	}
	if txn.Category != models.CategorySalesRevenue {
		t.Errorf("expected Sales Revenue category, got %s", txn.Category)
	}
}

func TestListAllTransactionsSkipsFailingAccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/accounts":
			w.Write([]byte(`{"accounts":[
				{"id":"good","name":"Good","type":"checking","balance":1,"available_balance":1,"currency":"USD","status":"open"},
				{"id":"bad","name":"Bad","type":"checking","balance":1,"available_balance":1,"currency":"USD","status":"open"}
			]}`))
		case "/account/good/transactions":
			w.Write([]byte(`{"transactions":[
				{"id":"txn_old","account_id":"good","type":"debit","amount":10,"description":"AWS","counterparty_name":"AWS","status":"posted","created_at":"2024-01-01T00:00:00Z"},
				{"id":"txn_new","account_id":"good","type":"debit","amount":20,"description":"AWS","counterparty_name":"AWS","status":"posted","created_at":"2024-02-01T00:00:00Z"}
			],"total":2}`))
		case "/account/bad/transactions":
			http.Error(w, "nope", http.StatusNotFound)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	merged, err := newTestClient(srv.URL).ListAllTransactions(context.Background(), TransactionParams{})
	if err != nil {
		t.Fatalf("per-account failure should not fail the call: %v", err)
	}
	if len(merged) != 2 {
		t.Fatalf("expected 2 transactions from the healthy account, got %d", len(merged))
	}
	// Sorted by creation time descending.
	if merged[0].ID != "txn_new" || merged[1].ID != "txn_old" {
		t.Errorf("expected descending sort, got %s then %s", merged[0].ID, merged[1].ID)
	}
}

func TestMinorUnits(t *testing.T) {
	cases := []struct {
		major float64
		want  int64
	}{
		{0, 0},
		{1, 100},
		{1.005, 101}, // half rounds up
		{1.004, 100},
		{19.99, 1999},
		{1234.565, 123457},
	}
	for _, tc := range cases {
		if got := MinorUnits(tc.major); got != tc.want {
			t.Errorf("MinorUnits(%v) = %d, want %d", tc.major, got, tc.want)
		}
	}
}
