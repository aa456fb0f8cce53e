package domain

// AccountClass defines the fundamental accounting classification of an account.
type AccountClass string

const (
	Asset     AccountClass = "ASSET"
	Liability AccountClass = "LIABILITY"
	Equity    AccountClass = "EQUITY"
	Revenue   AccountClass = "REVENUE"
	Expense   AccountClass = "EXPENSE"
)

// DebitNormal reports whether the class carries a normal debit balance.
// Asset and Expense accounts increase with debits; Liability, Equity and
// Revenue accounts increase with credits.
func (c AccountClass) DebitNormal() bool {
	return c == Asset || c == Expense
}

// AccountCategory refines the class for statement grouping.
type AccountCategory string

const (
	CurrentAsset     AccountCategory = "CURRENT_ASSET"
	FixedAsset       AccountCategory = "FIXED_ASSET"
	CurrentLiability AccountCategory = "CURRENT_LIABILITY"
	OwnerEquity      AccountCategory = "OWNER_EQUITY"
	OperatingRevenue AccountCategory = "OPERATING_REVENUE"
	CostOfGoodsSold  AccountCategory = "COST_OF_GOODS_SOLD"
	OperatingExpense AccountCategory = "OPERATING_EXPENSE"
)

// Account is one row of the chart of accounts. The chart is fixed at startup;
// accounts are never created or mutated at runtime.
type Account struct {
	Code        int             `json:"code"`        // Unique; the thousands digit determines Class
	Name        string          `json:"name"`        // Display name
	Class       AccountClass    `json:"class"`       // Derived from Code range
	Category    AccountCategory `json:"category"`    // Statement grouping
	Description string          `json:"description"` // Optional
}
