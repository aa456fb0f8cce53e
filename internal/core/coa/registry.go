// Package coa holds the fixed chart of accounts for the ponmo business.
// The registry is loaded once at startup and is immutable afterwards; it is
// injected into the services that need account classification.
package coa

import (
	"fmt"
	"sort"

	"github.com/ponmobiz/ponmo_books_app/internal/apperrors"
	"github.com/ponmobiz/ponmo_books_app/internal/core/domain"
)

// Registry maps account codes to their immutable account definitions.
type Registry struct {
	accounts map[int]domain.Account
	codes    []int // sorted
}

// ClassForCode derives the account class from the reserved code range:
// 1000s Assets, 2000s Liabilities, 3000s Equity, 4000s Revenue, 5000s Expenses.
func ClassForCode(code int) (domain.AccountClass, error) {
	switch {
	case code >= 1000 && code <= 1999:
		return domain.Asset, nil
	case code >= 2000 && code <= 2999:
		return domain.Liability, nil
	case code >= 3000 && code <= 3999:
		return domain.Equity, nil
	case code >= 4000 && code <= 4999:
		return domain.Revenue, nil
	case code >= 5000 && code <= 5999:
		return domain.Expense, nil
	default:
		return "", fmt.Errorf("%w: code %d outside reserved ranges", apperrors.ErrUnknownAccount, code)
	}
}

type accountDef struct {
	code        int
	name        string
	category    domain.AccountCategory
	description string
}

// standardChart is the fixed chart of accounts for the ponmo (cow skin food
// product) business, following the usual small-manufacturer layout.
var standardChart = []accountDef{
	// Assets (1000-1999)
	{1000, "Cash on Hand", domain.CurrentAsset, "Physical cash available"},
	{1100, "Bank Accounts", domain.CurrentAsset, "All bank account balances"},
	{1200, "Accounts Receivable", domain.CurrentAsset, "Money owed by customers"},
	{1300, "Raw Materials Inventory", domain.CurrentAsset, "Raw cow skins inventory"},
	{1310, "Work in Process Inventory", domain.CurrentAsset, "Partially processed cow skins"},
	{1320, "Finished Goods Inventory", domain.CurrentAsset, "Processed ponmo ready for sale"},
	{1400, "Equipment", domain.FixedAsset, "Processing equipment and machinery"},
	{1500, "Accumulated Depreciation - Equipment", domain.FixedAsset, "Depreciation accumulated on equipment (contra-asset)"},

	// Liabilities (2000-2999)
	{2000, "Accounts Payable", domain.CurrentLiability, "Money owed to vendors"},
	{2100, "Accrued Expenses", domain.CurrentLiability, "Expenses incurred but not yet paid"},
	{2200, "Customer Deposits", domain.CurrentLiability, "Advance payments received from customers"},

	// Equity (3000-3999)
	{3000, "Owner's Capital", domain.OwnerEquity, "Owner's initial investment"},
	{3100, "Retained Earnings", domain.OwnerEquity, "Accumulated profits from previous periods"},
	{3200, "Current Period Earnings", domain.OwnerEquity, "Current period's net profit or loss"},

	// Revenue (4000-4999)
	{4000, "Sales Revenue", domain.OperatingRevenue, "Revenue from ponmo sales"},
	{4100, "Service Revenue", domain.OperatingRevenue, "Revenue from processing services"},

	// Expenses (5000-5999)
	{5000, "Cost of Goods Sold", domain.CostOfGoodsSold, "Direct costs of producing ponmo"},
	{5100, "Raw Materials Purchased", domain.CostOfGoodsSold, "Cost of raw cow skins purchased"},
	{5200, "Direct Labor", domain.CostOfGoodsSold, "Labor costs for processing"},
	{5300, "Manufacturing Overhead", domain.CostOfGoodsSold, "Indirect manufacturing costs"},
	{5400, "Operating Expenses", domain.OperatingExpense, "General operating expenses"},
	{5500, "Administrative Expenses", domain.OperatingExpense, "Administrative and office expenses"},
	{5600, "Selling Expenses", domain.OperatingExpense, "Marketing and selling expenses"},
	{5700, "Financing Expenses", domain.OperatingExpense, "Interest on loans, bank charges, and other financing costs"},
}

// NewStandardRegistry builds the registry from the fixed standard chart.
func NewStandardRegistry() *Registry {
	reg, err := newRegistry(standardChart)
	if err != nil {
		// The standard chart is a compile-time constant; a bad definition is
		// a programming error, not a runtime condition.
		panic(err)
	}
	return reg
}

func newRegistry(defs []accountDef) (*Registry, error) {
	accounts := make(map[int]domain.Account, len(defs))
	codes := make([]int, 0, len(defs))
	for _, def := range defs {
		class, err := ClassForCode(def.code)
		if err != nil {
			return nil, err
		}
		if _, dup := accounts[def.code]; dup {
			return nil, fmt.Errorf("%w: account code %d", apperrors.ErrDuplicate, def.code)
		}
		accounts[def.code] = domain.Account{
			Code:        def.code,
			Name:        def.name,
			Class:       class,
			Category:    def.category,
			Description: def.description,
		}
		codes = append(codes, def.code)
	}
	sort.Ints(codes)
	return &Registry{accounts: accounts, codes: codes}, nil
}

// Lookup returns the account registered under code.
func (r *Registry) Lookup(code int) (domain.Account, error) {
	acc, ok := r.accounts[code]
	if !ok {
		return domain.Account{}, fmt.Errorf("%w: code %d", apperrors.ErrUnknownAccount, code)
	}
	return acc, nil
}

// Classify returns the account class for a registered code.
func (r *Registry) Classify(code int) (domain.AccountClass, error) {
	acc, err := r.Lookup(code)
	if err != nil {
		return "", err
	}
	return acc.Class, nil
}

// Exists reports whether code is registered.
func (r *Registry) Exists(code int) bool {
	_, ok := r.accounts[code]
	return ok
}

// Accounts returns all registered accounts ordered by code.
func (r *Registry) Accounts() []domain.Account {
	out := make([]domain.Account, 0, len(r.codes))
	for _, code := range r.codes {
		out = append(out, r.accounts[code])
	}
	return out
}
