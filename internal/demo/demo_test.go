package demo

import (
	"testing"
	"time"

	"fincore/internal/models"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func TestGeneratorDeterminism(t *testing.T) {
	a := NewGenerator(7)
	b := NewGenerator(7)

	txnsA := a.Transactions(testNow)
	txnsB := b.Transactions(testNow)
	if len(txnsA) != len(txnsB) {
		t.Fatalf("same seed produced different counts: %d vs %d", len(txnsA), len(txnsB))
	}
	for i := range txnsA {
		if txnsA[i].ExternalID != txnsB[i].ExternalID ||
			txnsA[i].Amount != txnsB[i].Amount ||
			txnsA[i].Category != txnsB[i].Category {
			t.Fatalf("same seed diverged at index %d: %+v vs %+v", i, txnsA[i], txnsB[i])
		}
	}

	if len(NewGenerator(7).Orders(testNow, "30days")) != len(NewGenerator(7).Orders(testNow, "30days")) {
		t.Error("Orders not deterministic for same seed")
	}
}

func TestAccountsShape(t *testing.T) {
	accounts := NewGenerator(0).Accounts(testNow)
	if len(accounts) == 0 {
		t.Fatal("expected demo accounts, got none")
	}
	seen := make(map[string]bool)
	for _, a := range accounts {
		if a.ExternalID == "" {
			t.Error("demo account missing external id")
		}
		if seen[a.ExternalID] {
			t.Errorf("duplicate external id %s", a.ExternalID)
		}
		seen[a.ExternalID] = true
		if !a.IsActive {
			t.Errorf("demo account %s should be active", a.ExternalID)
		}
		if a.Balance < 0 {
			t.Errorf("demo account %s has negative balance", a.ExternalID)
		}
	}
}

func TestTransactionsAreWellFormed(t *testing.T) {
	g := NewGenerator(0)
	accounts := g.Accounts(testNow)
	accountIDs := make(map[uint]bool)
	for _, a := range accounts {
		accountIDs[a.ID] = true
	}

	txns := g.Transactions(testNow)
	if len(txns) == 0 {
		t.Fatal("expected demo transactions, got none")
	}
	for _, txn := range txns {
		if txn.Amount < 0 {
			t.Errorf("transaction %s has negative amount", txn.ExternalID)
		}
		if !accountIDs[txn.AccountID] {
			t.Errorf("transaction %s references unknown account %d", txn.ExternalID, txn.AccountID)
		}
		if txn.Category == "" {
			t.Errorf("transaction %s missing category", txn.ExternalID)
		}
		if txn.PostedAt.After(testNow) {
			t.Errorf("transaction %s posted in the future", txn.ExternalID)
		}
	}
}

func TestScale(t *testing.T) {
	cases := map[string]float64{
		"today":   0.1,
		"7days":   0.3,
		"30days":  1,
		"90days":  3,
		"year":    12,
		"unknown": 1,
	}
	for filter, want := range cases {
		if got := Scale(filter); got != want {
			t.Errorf("Scale(%q) = %v, want %v", filter, got, want)
		}
	}
}

func TestFunnelCountsMonotonic(t *testing.T) {
	for _, filter := range []string{"today", "7days", "30days", "90days", "year"} {
		counts := NewGenerator(0).FunnelCounts(filter)
		stages := []models.FunnelStage{
			models.FunnelStageVisit, models.FunnelStageCart,
			models.FunnelStageCheckout, models.FunnelStagePurchase,
		}
		for i := 1; i < len(stages); i++ {
			if counts[stages[i]] > counts[stages[i-1]] {
				t.Errorf("filter %s: stage %s count %d exceeds previous stage %d",
					filter, stages[i], counts[stages[i]], counts[stages[i-1]])
			}
			if counts[stages[i]] < 1 {
				t.Errorf("filter %s: stage %s count below 1", filter, stages[i])
			}
		}
	}
}

func TestOrdersScaleWithFilter(t *testing.T) {
	g := NewGenerator(0)
	small := len(g.Orders(testNow, "today"))
	medium := len(g.Orders(testNow, "30days"))
	large := len(g.Orders(testNow, "year"))
	if !(small < medium && medium < large) {
		t.Errorf("order counts should grow with the window: today=%d 30days=%d year=%d", small, medium, large)
	}
}
