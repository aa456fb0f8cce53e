package domain

import (
	"github.com/shopspring/decimal"
)

// AccountTotals carries raw per-account debit/credit sums from storage.
type AccountTotals struct {
	AccountCode int
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// TrialBalanceRow represents a single account's totals in a trial balance.
type TrialBalanceRow struct {
	AccountCode int             `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Class       AccountClass    `json:"class"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// AccountAmount represents an account with its net amount for financial reports.
type AccountAmount struct {
	AccountCode int             `json:"accountCode"`
	Name        string          `json:"name"`
	NetAmount   decimal.Decimal `json:"netAmount"`
}

// PAndLReport represents a profit and loss statement for a period.
type PAndLReport struct {
	Revenue       []AccountAmount `json:"revenue"`
	COGS          []AccountAmount `json:"costOfGoodsSold"`
	Expenses      []AccountAmount `json:"operatingExpenses"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalCOGS     decimal.Decimal `json:"totalCOGS"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	GrossProfit   decimal.Decimal `json:"grossProfit"`
	NetProfit     decimal.Decimal `json:"netProfit"`
}

// FinancialSummary bundles all three statements as of one date with the
// headline figures pulled out for a dashboard-style overview.
type FinancialSummary struct {
	TrialBalance     []TrialBalanceRow   `json:"trialBalance"`
	ProfitAndLoss    *PAndLReport        `json:"profitAndLoss"`
	BalanceSheet     *BalanceSheetReport `json:"balanceSheet"`
	TotalAssets      decimal.Decimal     `json:"totalAssets"`
	TotalLiabilities decimal.Decimal     `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal     `json:"totalEquity"`
	TotalRevenue     decimal.Decimal     `json:"totalRevenue"`
	NetProfit        decimal.Decimal     `json:"netProfit"`
}

// BalanceSheetReport represents a balance sheet as of a date. Equity includes
// a computed current period earnings row so the accounting equation holds.
type BalanceSheetReport struct {
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
}
