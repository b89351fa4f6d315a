package models

import "time"

// Direction represents the direction of a ledger movement. Amounts are
// always non-negative; direction carries the sign semantics.
type Direction string

const (
	DirectionCredit Direction = "credit"
	DirectionDebit  Direction = "debit"
)

// TransactionStatus represents the settlement state of a transaction
type TransactionStatus string

const (
	TransactionStatusPending TransactionStatus = "pending"
	TransactionStatusPosted  TransactionStatus = "posted"
	TransactionStatusFailed  TransactionStatus = "failed"
)

// Transaction represents one posted or pending ledger movement on an Account.
// ExternalID is unique per provider; re-syncing the same external id updates
// the row in place. Amount, status, and category may be corrected on re-sync
// (e.g. pending -> posted) but transactions are never deleted.
type Transaction struct {
	Base
	ExternalID     string            `gorm:"uniqueIndex;not null" json:"external_id"`
	AccountID      uint              `gorm:"not null;index" json:"account_id"`
	Direction      Direction         `gorm:"not null" json:"direction"`
	Amount         int64             `gorm:"type:bigint;not null" json:"amount"`
	RunningBalance *int64            `gorm:"type:bigint" json:"running_balance,omitempty"`
	Description    string            `json:"description"`
	Counterparty   string            `json:"counterparty"`
	Category       Category          `gorm:"not null" json:"category"`
	Status         TransactionStatus `gorm:"not null;default:'posted'" json:"status"`
	PostedAt       time.Time         `gorm:"not null;index" json:"posted_at"`

	// Relationships
	Account Account `gorm:"foreignKey:AccountID" json:"account,omitempty"`
}

// IsCredit reports whether the transaction moves money into the account.
func (t *Transaction) IsCredit() bool {
	return t.Direction == DirectionCredit
}
