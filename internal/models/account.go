package models

import "time"

// AccountType represents the type of bank account
type AccountType string

const (
	AccountTypeChecking AccountType = "checking"
	AccountTypeSavings  AccountType = "savings"
	AccountTypeTreasury AccountType = "treasury"
)

// Account represents one bank account mirrored from the banking provider.
// ExternalID is the provider's stable identifier; reconciliation always
// upserts by it, never by the internal primary key. Accounts are marked
// inactive rather than deleted.
type Account struct {
	Base
	ExternalID       string      `gorm:"uniqueIndex;not null" json:"external_id"`
	Name             string      `gorm:"not null" json:"name"`
	Type             AccountType `gorm:"not null;default:'checking'" json:"type"`
	Balance          int64       `gorm:"type:bigint;not null;default:0" json:"balance"`
	AvailableBalance int64       `gorm:"type:bigint;not null;default:0" json:"available_balance"`
	Currency         string      `gorm:"not null;default:'USD'" json:"currency"`
	IsActive         bool        `gorm:"default:true" json:"is_active"`
	LastSyncedAt     *time.Time  `json:"last_synced_at,omitempty"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:AccountID" json:"transactions,omitempty"`
}
