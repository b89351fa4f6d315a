// Package provider is a typed client over the external banking provider's
// HTTP API. It is the only place provider-native JSON and decimal amounts
// exist; everything past this boundary is strongly typed in integer cents.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"

	"fincore/internal/logger"
)

// ErrNotConfigured is returned when a live call is attempted without an
// API key. Callers gate on IsConfigured and fall back to persisted or
// demo data instead of surfacing this.
var ErrNotConfigured = fmt.Errorf("banking provider is not configured")

// Error is a provider request failure: a non-2xx status or a malformed body.
type Error struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider request failed: %v", e.Err)
	}
	return fmt.Sprintf("provider returned status %d (%s)", e.StatusCode, e.Body)
}

func (e *Error) Unwrap() error { return e.Err }

// Config holds provider client settings.
type Config struct {
	BaseURL     string
	APIKey      string
	Timeout     time.Duration
	Concurrency int
}

// Client is the banking provider HTTP client. Requests are wrapped in a
// circuit breaker and retried with exponential backoff on transport errors
// and 5xx responses.
type Client struct {
	cfg        Config
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker
}

// NewClient creates a provider client. An empty API key produces an
// unconfigured client whose live calls fail with ErrNotConfigured.
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 8
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "banking-provider",
			MaxRequests: 3,
			Interval:    30 * time.Second,
			Timeout:     10 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 5 && failureRatio >= 0.6
			},
		}),
	}
}

// IsConfigured reports whether an access credential is present. All live
// calls are gated on this.
func (c *Client) IsConfigured() bool {
	return c.cfg.APIKey != ""
}

// ListAccounts fetches all accounts from the provider.
func (c *Client) ListAccounts(ctx context.Context) ([]AccountPayload, error) {
	body, err := c.get(ctx, "/accounts", nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Accounts []AccountPayload `json:"accounts"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &Error{Err: fmt.Errorf("malformed accounts response: %w", err)}
	}

	for i := range resp.Accounts {
		if err := resp.Accounts[i].Validate(); err != nil {
			return nil, &Error{Err: err}
		}
	}
	return resp.Accounts, nil
}

// ListTransactions fetches one page of transactions for a provider account.
func (c *Client) ListTransactions(ctx context.Context, accountID string, params TransactionParams) (*TransactionList, error) {
	q := url.Values{}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		q.Set("offset", strconv.Itoa(params.Offset))
	}
	if params.Status != "" {
		q.Set("status", params.Status)
	}
	if params.DateStart != nil {
		q.Set("start", params.DateStart.Format("2006-01-02"))
	}
	if params.DateEnd != nil {
		q.Set("end", params.DateEnd.Format("2006-01-02"))
	}

	body, err := c.get(ctx, "/account/"+url.PathEscape(accountID)+"/transactions", q)
	if err != nil {
		return nil, err
	}

	var list TransactionList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, &Error{Err: fmt.Errorf("malformed transactions response: %w", err)}
	}

	for i := range list.Transactions {
		if err := list.Transactions[i].Validate(); err != nil {
			return nil, &Error{Err: err}
		}
	}
	return &list, nil
}

// ListAllTransactions fans out ListTransactions across every account,
// bounded by the configured concurrency limit. A failing account is logged
// and skipped rather than failing the whole call; the merged result is
// sorted by creation time descending.
func (c *Client) ListAllTransactions(ctx context.Context, params TransactionParams) ([]TransactionPayload, error) {
	accounts, err := c.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	var (
		mu     sync.Mutex
		merged []TransactionPayload
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Concurrency)

	for _, account := range accounts {
		g.Go(func() error {
			list, err := c.ListTransactions(gctx, account.ID, params)
			if err != nil {
				logger.Get().Warnw("skipping account in transaction fan-out",
					"account_id", account.ID,
					"error", err.Error(),
				)
				return nil
			}
			mu.Lock()
			merged = append(merged, list.Transactions...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].CreatedAt > merged[j].CreatedAt
	})
	return merged, nil
}

// get performs an authenticated GET with breaker and retry, returning the
// response body.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	uri := c.cfg.BaseURL + path
	if len(query) > 0 {
		uri += "?" + query.Encode()
	}

	result, err := c.cb.Execute(func() (any, error) {
		var body []byte
		op := func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
			if err != nil {
				return backoff.Permanent(err)
			}
			req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
			req.Header.Set("Accept", "application/json")

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			b, err := io.ReadAll(resp.Body)
			if err != nil {
				return err
			}

			if resp.StatusCode >= 500 {
				// the provider is having trouble, worth retrying
				return &Error{StatusCode: resp.StatusCode, Body: truncate(b)}
			}
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				return backoff.Permanent(&Error{StatusCode: resp.StatusCode, Body: truncate(b)})
			}

			body = b
			return nil
		}

		policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
		if err := backoff.Retry(op, policy); err != nil {
			return nil, err
		}
		return body, nil
	})
	if err != nil {
		var provErr *Error
		if errors.As(err, &provErr) {
			return nil, provErr
		}
		return nil, &Error{Err: err}
	}
	return result.([]byte), nil
}

func truncate(b []byte) string {
	const max = 256
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
