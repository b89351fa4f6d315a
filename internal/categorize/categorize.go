// Package categorize assigns business categories to bank transactions using
// ordered keyword rules. Matching is deterministic, case-insensitive
// substring matching; the first rule that matches wins. The function is
// total: inputs that match no rule fall back to Other Income / Other
// Expenses rather than erroring.
package categorize

import (
	"strings"

	"fincore/internal/models"
)

// rule maps a set of description substrings to a category. Rules are
// evaluated in order; keep more specific substrings (e.g. "stripe fee")
// ahead of generic ones ("stripe"). Reordering rules is an observable
// behavior change.
type rule struct {
	keywords []string
	category models.Category
}

var creditRules = []rule{
	{[]string{"refund", "return", "chargeback"}, models.CategoryRefunds},
	{[]string{"transfer", "internal", "sweep"}, models.CategoryTransfers},
	{[]string{"interest", "dividend", "yield"}, models.CategoryInterest},
	{[]string{"stripe", "shopify", "paypal", "square", "payment", "payout", "sales", "invoice"}, models.CategorySalesRevenue},
}

var debitRules = []rule{
	// Fee rules stay ahead of anything that could read as a sale or a
	// generic vendor name.
	{[]string{"stripe fee", "shopify fee", "paypal fee", "square fee", "platform fee", "processing fee"}, models.CategoryPlatformFees},
	{[]string{"gusto", "payroll", "adp", "rippling", "salary", "wages"}, models.CategoryPayroll},
	{[]string{"aws", "amazon web services", "google cloud", "gcp", "azure", "digitalocean", "heroku", "vercel", "cloudflare", "datadog", "github"}, models.CategoryInfrastructure},
	{[]string{"shippo", "easypost", "usps", "fedex", "ups ", "dhl", "shipping", "freight"}, models.CategoryShipping},
	{[]string{"facebook ads", "google ads", "meta platforms", "tiktok", "mailchimp", "klaviyo", "marketing", "adwords"}, models.CategoryMarketing},
	{[]string{"rent", "lease", "wework"}, models.CategoryRent},
	{[]string{"insurance", "hiscox", "northwestern mutual"}, models.CategoryInsurance},
	{[]string{"staples", "office depot", "uline", "supplies"}, models.CategorySupplies},
	{[]string{"inventory", "wholesale", "supplier", "alibaba", "faire", "manufactur"}, models.CategoryInventory},
}

// Categorize maps a transaction to a business category. The description is
// matched first; only when no rule matches it is the counterparty tried, so
// a descriptive memo always wins over the payee name. It is pure and never
// fails; transactions matching no rule on either input map to Other Income
// or Other Expenses depending on direction.
func Categorize(description, counterparty string, isCredit bool) models.Category {
	rules := debitRules
	fallback := models.CategoryOtherExpenses
	if isCredit {
		rules = creditRules
		fallback = models.CategoryOtherIncome
	}

	for _, input := range [2]string{description, counterparty} {
		input = strings.ToLower(input)
		if input == "" {
			continue
		}
		for _, r := range rules {
			for _, kw := range r.keywords {
				if strings.Contains(input, kw) {
					return r.category
				}
			}
		}
	}
	return fallback
}
