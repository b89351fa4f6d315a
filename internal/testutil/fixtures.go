package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fincore/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestAccount creates an active checking account with the given balance (in cents).
func CreateTestAccount(t *testing.T, db *gorm.DB, balance int64) *models.Account {
	t.Helper()

	n := nextID()
	account := &models.Account{
		ExternalID:       fmt.Sprintf("acct_test_%d", n),
		Name:             fmt.Sprintf("Test Account %d", n),
		Type:             models.AccountTypeChecking,
		Balance:          balance,
		AvailableBalance: balance,
		Currency:         "USD",
		IsActive:         true,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestTransaction creates a posted transaction with the given
// direction and amount (in cents), categorized like a provider sync would.
func CreateTestTransaction(t *testing.T, db *gorm.DB, accountID uint, direction models.Direction, amount int64, description string) *models.Transaction {
	t.Helper()
	return CreateTestTransactionAt(t, db, accountID, direction, amount, description, time.Now())
}

// CreateTestTransactionAt creates a posted transaction at a specific time.
func CreateTestTransactionAt(t *testing.T, db *gorm.DB, accountID uint, direction models.Direction, amount int64, description string, postedAt time.Time) *models.Transaction {
	t.Helper()

	category := models.CategoryOtherExpenses
	if direction == models.DirectionCredit {
		category = models.CategoryOtherIncome
	}
	tx := &models.Transaction{
		ExternalID:  fmt.Sprintf("txn_test_%d", nextID()),
		AccountID:   accountID,
		Direction:   direction,
		Amount:      amount,
		Description: description,
		Category:    category,
		Status:      models.TransactionStatusPosted,
		PostedAt:    postedAt,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestOrder creates an order with one line item totalling the given amount (in cents).
func CreateTestOrder(t *testing.T, db *gorm.DB, channel models.Channel, total int64, placedAt time.Time) *models.Order {
	t.Helper()

	order := &models.Order{
		Channel:  channel,
		Total:    total,
		PlacedAt: placedAt,
		Items: []models.OrderItem{{
			ProductName: fmt.Sprintf("Test Product %d", nextID()),
			Quantity:    1,
			UnitPrice:   total,
		}},
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("failed to create test order: %v", err)
	}
	return order
}

// CreateTestFunnelEvents creates count funnel events at the given stage.
func CreateTestFunnelEvents(t *testing.T, db *gorm.DB, stage models.FunnelStage, count int) {
	t.Helper()

	events := make([]models.FunnelEvent, count)
	for i := range events {
		events[i] = models.FunnelEvent{Stage: stage, OccurredAt: time.Now()}
	}
	if err := db.Create(&events).Error; err != nil {
		t.Fatalf("failed to create test funnel events: %v", err)
	}
}
