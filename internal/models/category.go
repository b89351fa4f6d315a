package models

// Category is a closed enumeration of business categories assigned by the
// categorizer. Storing the enum, not a free-form string, keeps aggregation
// keys stable across syncs.
type Category string

// Credit (income) categories.
const (
	CategorySalesRevenue Category = "Sales Revenue"
	CategoryRefunds      Category = "Refunds"
	CategoryTransfers    Category = "Transfers"
	CategoryInterest     Category = "Interest"
	CategoryOtherIncome  Category = "Other Income"
)

// Debit (expense) categories.
const (
	CategoryPayroll        Category = "Payroll"
	CategoryInfrastructure Category = "Infrastructure"
	CategoryPlatformFees   Category = "Platform Fees"
	CategoryShipping       Category = "Shipping"
	CategoryMarketing      Category = "Marketing"
	CategoryRent           Category = "Rent"
	CategoryInsurance      Category = "Insurance"
	CategorySupplies       Category = "Supplies"
	CategoryInventory      Category = "Inventory"
	CategoryOtherExpenses  Category = "Other Expenses"
)

// CreditCategories lists every category assignable to credit transactions.
var CreditCategories = []Category{
	CategorySalesRevenue,
	CategoryRefunds,
	CategoryTransfers,
	CategoryInterest,
	CategoryOtherIncome,
}

// DebitCategories lists every category assignable to debit transactions.
var DebitCategories = []Category{
	CategoryPayroll,
	CategoryInfrastructure,
	CategoryPlatformFees,
	CategoryShipping,
	CategoryMarketing,
	CategoryRent,
	CategoryInsurance,
	CategorySupplies,
	CategoryInventory,
	CategoryOtherExpenses,
}
