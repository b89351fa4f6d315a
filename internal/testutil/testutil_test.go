package testutil_test

import (
	"testing"
	"time"

	"fincore/internal/errors"
	"fincore/internal/models"
	"fincore/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"accounts", "transactions", "financial_snapshots", "orders", "order_items", "funnel_events"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	account := testutil.CreateTestAccount(t, db, 5000)
	if account.ID == 0 {
		t.Fatal("account should have a non-zero ID")
	}
	if account.Balance != 5000 {
		t.Errorf("expected balance 5000, got %d", account.Balance)
	}

	tx := testutil.CreateTestTransaction(t, db, account.ID, models.DirectionCredit, 1000, "Test Deposit")
	if tx.Amount != 1000 {
		t.Errorf("expected amount 1000, got %d", tx.Amount)
	}
	if tx.Category != models.CategoryOtherIncome {
		t.Errorf("expected credit fixture category %q, got %q", models.CategoryOtherIncome, tx.Category)
	}

	order := testutil.CreateTestOrder(t, db, models.ChannelDirect, 2500, time.Now())
	if order.Total != 2500 {
		t.Errorf("expected order total 2500, got %d", order.Total)
	}
	if len(order.Items) != 1 {
		t.Errorf("expected 1 order item, got %d", len(order.Items))
	}

	testutil.CreateTestFunnelEvents(t, db, models.FunnelStageVisit, 3)
	var events int64
	if err := db.Model(&models.FunnelEvent{}).Count(&events).Error; err != nil {
		t.Fatalf("counting funnel events: %v", err)
	}
	if events != 3 {
		t.Errorf("expected 3 funnel events, got %d", events)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrAccountNotFound, "custom message")
	testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
