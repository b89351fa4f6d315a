package provider

import (
	"fmt"
	"math"
	"time"

	"fincore/internal/categorize"
	"fincore/internal/models"
)

// AccountPayload is the provider-native shape of a bank account. Amounts
// are decimal major units; conversion to integer cents happens in Model().
type AccountPayload struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Type             string  `json:"type"`
	Balance          float64 `json:"balance"`
	AvailableBalance float64 `json:"available_balance"`
	Currency         string  `json:"currency"`
	Status           string  `json:"status"`
}

// TransactionPayload is the provider-native shape of a transaction.
type TransactionPayload struct {
	ID             string   `json:"id"`
	AccountID      string   `json:"account_id"`
	Type           string   `json:"type"` // "credit" or "debit"
	Amount         float64  `json:"amount"`
	RunningBalance *float64 `json:"running_balance,omitempty"`
	Description    string   `json:"description"`
	Counterparty   string   `json:"counterparty_name"`
	Status         string   `json:"status"`
	CreatedAt      string   `json:"created_at"` // RFC3339
}

// TransactionList is the provider's paginated transaction response.
type TransactionList struct {
	Transactions []TransactionPayload `json:"transactions"`
	Total        int                  `json:"total"`
}

// TransactionParams are query parameters for listing transactions.
type TransactionParams struct {
	Limit     int
	Offset    int
	Status    string
	DateStart *time.Time
	DateEnd   *time.Time
}

// MinorUnits converts a decimal major-unit amount to integer cents using
// round-half-up. The epsilon compensates for decimals like 1.005 that sit
// just below the half-cent in binary floating point.
func MinorUnits(major float64) int64 {
	return int64(math.Floor(major*100 + 0.5 + 1e-9))
}

// Validate checks that the payload carries the fields the rest of the
// system depends on. Untyped or partial provider data must not flow past
// this boundary.
func (p *AccountPayload) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("account payload missing id")
	}
	if p.Name == "" {
		return fmt.Errorf("account payload %s missing name", p.ID)
	}
	return nil
}

// Model converts the payload into the internal Account model.
func (p *AccountPayload) Model(now time.Time) models.Account {
	accountType := models.AccountType(p.Type)
	switch accountType {
	case models.AccountTypeChecking, models.AccountTypeSavings, models.AccountTypeTreasury:
	default:
		accountType = models.AccountTypeChecking
	}

	currency := p.Currency
	if currency == "" {
		currency = "USD"
	}

	synced := now
	return models.Account{
		ExternalID:       p.ID,
		Name:             p.Name,
		Type:             accountType,
		Balance:          MinorUnits(p.Balance),
		AvailableBalance: MinorUnits(p.AvailableBalance),
		Currency:         currency,
		IsActive:         p.Status != "inactive",
		LastSyncedAt:     &synced,
	}
}

// Validate checks the transaction payload at the provider boundary.
func (p *TransactionPayload) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("transaction payload missing id")
	}
	if p.Type != "credit" && p.Type != "debit" {
		return fmt.Errorf("transaction payload %s has unknown type %q", p.ID, p.Type)
	}
	if p.Amount < 0 {
		return fmt.Errorf("transaction payload %s has negative amount", p.ID)
	}
	return nil
}

// PostedAt parses the provider's creation timestamp, falling back to the
// date-only form some providers emit.
func (p *TransactionPayload) PostedAt() time.Time {
	if t, err := time.Parse(time.RFC3339, p.CreatedAt); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", p.CreatedAt); err == nil {
		return t
	}
	return time.Time{}
}

// Model converts the payload into the internal Transaction model, assigning
// a category from the description and direction.
func (p *TransactionPayload) Model(accountID uint) models.Transaction {
	direction := models.DirectionDebit
	if p.Type == "credit" {
		direction = models.DirectionCredit
	}

	status := models.TransactionStatus(p.Status)
	switch status {
	case models.TransactionStatusPending, models.TransactionStatusPosted, models.TransactionStatusFailed:
	default:
		status = models.TransactionStatusPosted
	}

	var running *int64
	if p.RunningBalance != nil {
		v := MinorUnits(*p.RunningBalance)
		running = &v
	}

	return models.Transaction{
		ExternalID:     p.ID,
		AccountID:      accountID,
		Direction:      direction,
		Amount:         MinorUnits(p.Amount),
		RunningBalance: running,
		Description:    p.Description,
		Counterparty:   p.Counterparty,
		Category:       categorize.Categorize(p.Description, p.Counterparty, direction == models.DirectionCredit),
		Status:         status,
		PostedAt:       p.PostedAt(),
	}
}
