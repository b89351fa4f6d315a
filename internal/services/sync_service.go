package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "fincore/internal/errors"
	"fincore/internal/logger"
	"fincore/internal/models"
	"fincore/internal/provider"
)

// providerPageSize is how many transactions are requested per provider call
// when paging through an account's history.
const providerPageSize = 200

// maxProviderPages caps paging per account so one runaway account cannot
// stall a sync.
const maxProviderPages = 25

// syncService reconciles remote banking data into the local store.
type syncService struct {
	db          *gorm.DB
	provider    BankingProvider
	concurrency int
}

// NewSyncService creates a new SyncServicer. Concurrency bounds the
// per-account fan-out when refreshing many accounts at once.
func NewSyncService(db *gorm.DB, bankingProvider BankingProvider, concurrency int) SyncServicer {
	if concurrency <= 0 {
		concurrency = 8
	}
	return &syncService{db: db, provider: bankingProvider, concurrency: concurrency}
}

// SyncAccounts refreshes accounts from the provider when configured, then
// returns the authoritative persisted view of active accounts. Remote
// failures are logged and degrade to the persisted state; they never fail
// the call. An unconfigured provider skips the remote fetch entirely.
func (s *syncService) SyncAccounts(ctx context.Context) ([]models.Account, error) {
	if s.provider.IsConfigured() {
		payloads, err := s.provider.ListAccounts(ctx)
		if err != nil {
			logger.Get().Warnw("account refresh failed, serving persisted state", "error", err.Error())
		} else {
			now := time.Now()
			for i := range payloads {
				account := payloads[i].Model(now)
				if err := s.upsertAccount(&account); err != nil {
					logger.Get().Errorw("account upsert failed",
						"external_id", account.ExternalID,
						"error", err.Error(),
					)
				}
			}
		}
	}

	var accounts []models.Account
	if err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return accounts, nil
}

// SyncTransactions refreshes one account's transactions from the provider,
// then returns the persisted transactions for that account within the
// requested window, newest first.
func (s *syncService) SyncTransactions(ctx context.Context, accountID uint, from, to *time.Time) ([]models.Transaction, error) {
	var account models.Account
	if err := s.db.WithContext(ctx).First(&account, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.refreshAccountTransactions(ctx, &account, from, to); err != nil {
		logger.Get().Warnw("transaction refresh failed, serving persisted state",
			"account_id", account.ID,
			"external_id", account.ExternalID,
			"error", err.Error(),
		)
	}

	return s.readTransactions(ctx, &accountID, from, to)
}

// SyncAllTransactions refreshes every active account concurrently (bounded)
// and returns the merged persisted view sorted by posting time descending.
// A failing account is skipped, never fatal to the whole call.
func (s *syncService) SyncAllTransactions(ctx context.Context, from, to *time.Time) ([]models.Transaction, error) {
	accounts, err := s.SyncAccounts(ctx)
	if err != nil {
		return nil, err
	}

	if s.provider.IsConfigured() {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.concurrency)
		for i := range accounts {
			account := accounts[i]
			g.Go(func() error {
				if err := s.refreshAccountTransactions(gctx, &account, from, to); err != nil {
					logger.Get().Warnw("skipping account in transaction sync",
						"account_id", account.ID,
						"external_id", account.ExternalID,
						"error", err.Error(),
					)
				}
				return nil
			})
		}
		// Goroutines never return errors; Wait only propagates context cancellation.
		if err := g.Wait(); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.readTransactions(ctx, nil, from, to)
}

// refreshAccountTransactions pages through the provider's transactions for
// one account and upserts them in a single database transaction, making the
// account batch the atomicity unit. It is a no-op when the provider is
// unconfigured.
func (s *syncService) refreshAccountTransactions(ctx context.Context, account *models.Account, from, to *time.Time) error {
	if !s.provider.IsConfigured() {
		return nil
	}

	params := provider.TransactionParams{
		Limit:     providerPageSize,
		DateStart: from,
		DateEnd:   to,
	}

	var payloads []provider.TransactionPayload
	for page := 0; page < maxProviderPages; page++ {
		params.Offset = page * providerPageSize
		list, err := s.provider.ListTransactions(ctx, account.ExternalID, params)
		if err != nil {
			return err
		}
		payloads = append(payloads, list.Transactions...)
		if len(payloads) >= list.Total || len(list.Transactions) == 0 {
			break
		}
	}
	if len(payloads) == 0 {
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range payloads {
			txn := payloads[i].Model(account.ID)
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "external_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"amount", "direction", "running_balance", "description",
					"counterparty", "category", "status", "posted_at", "updated_at",
				}),
			}).Create(&txn).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// upsertAccount inserts or updates an account keyed by its external id.
func (s *syncService) upsertAccount(account *models.Account) error {
	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "type", "balance", "available_balance",
			"currency", "is_active", "last_synced_at", "updated_at",
		}),
	}).Create(account).Error
}

// readTransactions returns the persisted transactions matching the filter,
// newest first. accountID of nil means all accounts.
func (s *syncService) readTransactions(ctx context.Context, accountID *uint, from, to *time.Time) ([]models.Transaction, error) {
	q := s.db.WithContext(ctx).Model(&models.Transaction{})
	if accountID != nil {
		q = q.Where("account_id = ?", *accountID)
	}
	if from != nil {
		q = q.Where("posted_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("posted_at <= ?", *to)
	}

	var txns []models.Transaction
	if err := q.Order("posted_at DESC").Find(&txns).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return txns, nil
}
