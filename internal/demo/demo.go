// Package demo produces a deterministic synthetic dataset with the same
// shapes as live data. It substitutes for the reconciled store whenever the
// banking provider is unconfigured, the store is empty, or a read fails.
// Generation is pure given (seed, now): no wall-clock randomness, so demo
// responses are stable across calls and testable byte for byte. Demo data
// is never mixed with live data inside a single response.
package demo

import (
	"fmt"
	"math/rand"
	"time"

	"fincore/internal/categorize"
	"fincore/internal/models"
)

// Generator produces the synthetic dataset. The zero seed is replaced with
// a fixed default so an unset config still yields stable output.
type Generator struct {
	seed int64
}

// NewGenerator creates a demo data generator with the given seed.
func NewGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = 42
	}
	return &Generator{seed: seed}
}

// Accounts returns the synthetic account set. Balances are chosen so the
// overview reads like a small company: operating, payroll reserve, treasury.
func (g *Generator) Accounts(now time.Time) []models.Account {
	synced := now
	return []models.Account{
		{
			Base:             models.Base{ID: 1},
			ExternalID:       "demo-acct-operating",
			Name:             "Operating Checking",
			Type:             models.AccountTypeChecking,
			Balance:          28_450_00,
			AvailableBalance: 27_900_00,
			Currency:         "USD",
			IsActive:         true,
			LastSyncedAt:     &synced,
		},
		{
			Base:             models.Base{ID: 2},
			ExternalID:       "demo-acct-savings",
			Name:             "Payroll Reserve",
			Type:             models.AccountTypeSavings,
			Balance:          41_200_00,
			AvailableBalance: 41_200_00,
			Currency:         "USD",
			IsActive:         true,
			LastSyncedAt:     &synced,
		},
		{
			Base:             models.Base{ID: 3},
			ExternalID:       "demo-acct-treasury",
			Name:             "Treasury",
			Type:             models.AccountTypeTreasury,
			Balance:          120_000_00,
			AvailableBalance: 120_000_00,
			Currency:         "USD",
			IsActive:         true,
			LastSyncedAt:     &synced,
		},
	}
}

// vendor templates for synthetic transactions. Credit/debit split and
// amounts are picked per-day from the seeded source.
var creditTemplates = []struct {
	description  string
	counterparty string
	min, max     int64 // cents
}{
	{"Stripe Payments payout", "Stripe", 80_000, 450_000},
	{"Shopify payout", "Shopify", 40_000, 220_000},
	{"Wholesale invoice payment", "Faire Wholesale", 100_000, 600_000},
	{"Treasury interest earned", "Bank", 1_500, 9_000},
}

var debitTemplates = []struct {
	description  string
	counterparty string
	min, max     int64
}{
	{"Gusto Payroll", "Gusto", 400_000, 900_000},
	{"AWS Services", "Amazon Web Services", 15_000, 90_000},
	{"Stripe fee", "Stripe", 2_000, 14_000},
	{"Shippo label purchase", "Shippo", 4_000, 30_000},
	{"Google Ads", "Google", 20_000, 120_000},
	{"Monthly rent", "Parkside Properties", 350_000, 350_000},
	{"Hiscox business insurance", "Hiscox", 42_000, 42_000},
	{"ULINE supplies order", "ULINE", 8_000, 45_000},
	{"Inventory restock - supplier", "Acme Goods Co", 120_000, 500_000},
}

// Transactions returns roughly three transactions per day over the last 90
// days, spread across the demo accounts and categorized exactly like live
// data would be.
func (g *Generator) Transactions(now time.Time) []models.Transaction {
	r := rand.New(rand.NewSource(g.seed))
	accounts := g.Accounts(now)

	var txns []models.Transaction
	id := uint(1)
	for day := 90; day >= 1; day-- {
		postedAt := now.AddDate(0, 0, -day)
		perDay := 2 + r.Intn(3)
		for i := 0; i < perDay; i++ {
			account := accounts[r.Intn(len(accounts))]
			isCredit := r.Float64() < 0.45

			var description, counterparty string
			var amount int64
			if isCredit {
				tpl := creditTemplates[r.Intn(len(creditTemplates))]
				description, counterparty = tpl.description, tpl.counterparty
				amount = tpl.min + r.Int63n(tpl.max-tpl.min+1)
			} else {
				tpl := debitTemplates[r.Intn(len(debitTemplates))]
				description, counterparty = tpl.description, tpl.counterparty
				amount = tpl.min
				if tpl.max > tpl.min {
					amount += r.Int63n(tpl.max - tpl.min + 1)
				}
			}

			direction := models.DirectionDebit
			if isCredit {
				direction = models.DirectionCredit
			}

			txns = append(txns, models.Transaction{
				Base:         models.Base{ID: id},
				ExternalID:   fmt.Sprintf("demo-txn-%04d", id),
				AccountID:    account.ID,
				Direction:    direction,
				Amount:       amount,
				Description:  description,
				Counterparty: counterparty,
				Category:     categorize.Categorize(description, counterparty, isCredit),
				Status:       models.TransactionStatusPosted,
				PostedAt:     postedAt.Add(time.Duration(r.Intn(24)) * time.Hour),
			})
			id++
		}
	}
	return txns
}

// statsScale maps a time filter to how much of the fixed daily base the
// synthetic order data should represent, so demo stats stay proportionally
// plausible across filters.
var statsScale = map[string]float64{
	"today":  0.1,
	"7days":  0.3,
	"30days": 1,
	"90days": 3,
	"year":   12,
}

// Scale returns the demo scaling factor for a stats time filter.
// Unknown filters scale like 30 days.
func Scale(filter string) float64 {
	if s, ok := statsScale[filter]; ok {
		return s
	}
	return 1
}

var demoProducts = []string{
	"Canvas Tote - Natural",
	"Ceramic Mug 12oz",
	"Linen Throw Blanket",
	"Walnut Serving Board",
	"Soy Candle - Cedar",
}

// Orders returns synthetic orders covering the stats window implied by the
// filter, split between direct and wholesale channels.
func (g *Generator) Orders(now time.Time, filter string) []models.Order {
	r := rand.New(rand.NewSource(g.seed + 1))
	scale := Scale(filter)

	// fixed daily base of 18 orders/day, one month at scale 1
	total := int(540 * scale)
	if total < 1 {
		total = 1
	}
	days := windowDays(filter)

	orders := make([]models.Order, 0, total)
	for i := 0; i < total; i++ {
		channel := models.ChannelDirect
		if r.Float64() < 0.3 {
			channel = models.ChannelWholesale
		}

		placedAt := now.Add(-time.Duration(r.Intn(days*24)) * time.Hour)
		itemCount := 1 + r.Intn(3)
		order := models.Order{
			Base:     models.Base{ID: uint(i + 1)},
			Channel:  channel,
			PlacedAt: placedAt,
		}
		for j := 0; j < itemCount; j++ {
			unit := int64(1_800 + r.Intn(6_500))
			qty := int64(1 + r.Intn(4))
			order.Items = append(order.Items, models.OrderItem{
				Base:        models.Base{ID: uint(i*10 + j + 1)},
				OrderID:     order.ID,
				ProductName: demoProducts[r.Intn(len(demoProducts))],
				Quantity:    qty,
				UnitPrice:   unit,
			})
			order.Total += unit * qty
		}
		if channel == models.ChannelWholesale {
			// wholesale orders run larger
			order.Total *= 4
			for j := range order.Items {
				order.Items[j].Quantity *= 4
			}
		}
		orders = append(orders, order)
	}
	return orders
}

// FunnelCounts returns synthetic conversion-funnel stage counts, each stage
// a strict subset of the previous so derived rates stay plausible.
func (g *Generator) FunnelCounts(filter string) map[models.FunnelStage]int64 {
	scale := Scale(filter)

	counts := map[models.FunnelStage]int64{
		models.FunnelStageVisit:    int64(12_000 * scale),
		models.FunnelStageCart:     int64(1_900 * scale),
		models.FunnelStageCheckout: int64(950 * scale),
		models.FunnelStagePurchase: int64(540 * scale),
	}
	for stage, n := range counts {
		if n < 1 {
			counts[stage] = 1
		}
	}
	return counts
}

// windowDays converts a stats filter to its window length in days.
func windowDays(filter string) int {
	switch filter {
	case "today":
		return 1
	case "7days":
		return 7
	case "90days":
		return 90
	case "year":
		return 365
	default:
		return 30
	}
}
