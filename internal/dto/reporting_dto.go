package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ponmobiz/ponmo_books_app/internal/core/domain"
)

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountCode int             `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Class       string          `json:"class"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	AsOf   string                    `json:"asOf"`
	Rows   []TrialBalanceRowResponse `json:"rows"`
	Totals struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
}

// AccountAmountResponse represents an account with its amount in a financial report
type AccountAmountResponse struct {
	AccountCode int             `json:"accountCode"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
}

// ProfitAndLossResponse represents the profit and loss report response
type ProfitAndLossResponse struct {
	FromDate string                  `json:"fromDate"`
	ToDate   string                  `json:"toDate"`
	Revenue  []AccountAmountResponse `json:"revenue"`
	COGS     []AccountAmountResponse `json:"costOfGoodsSold"`
	Expenses []AccountAmountResponse `json:"operatingExpenses"`
	Summary  struct {
		TotalRevenue  decimal.Decimal `json:"totalRevenue"`
		TotalCOGS     decimal.Decimal `json:"totalCostOfGoodsSold"`
		TotalExpenses decimal.Decimal `json:"totalOperatingExpenses"`
		GrossProfit   decimal.Decimal `json:"grossProfit"`
		NetProfit     decimal.Decimal `json:"netProfit"`
	} `json:"summary"`
}

// BalanceSheetResponse represents the balance sheet report response
type BalanceSheetResponse struct {
	AsOf        string                  `json:"asOf"`
	Assets      []AccountAmountResponse `json:"assets"`
	Liabilities []AccountAmountResponse `json:"liabilities"`
	Equity      []AccountAmountResponse `json:"equity"`
	Summary     struct {
		TotalAssets      decimal.Decimal `json:"totalAssets"`
		TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
		TotalEquity      decimal.Decimal `json:"totalEquity"`
	} `json:"summary"`
}

// ToTrialBalanceResponse converts trial balance rows to the report response.
func ToTrialBalanceResponse(rows []domain.TrialBalanceRow, asOf time.Time) TrialBalanceResponse {
	resp := TrialBalanceResponse{
		AsOf: asOf.Format("2006-01-02"),
		Rows: make([]TrialBalanceRowResponse, len(rows)),
	}
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for i, row := range rows {
		resp.Rows[i] = TrialBalanceRowResponse{
			AccountCode: row.AccountCode,
			AccountName: row.AccountName,
			Class:       string(row.Class),
			Debit:       row.Debit,
			Credit:      row.Credit,
		}
		totalDebit = totalDebit.Add(row.Debit)
		totalCredit = totalCredit.Add(row.Credit)
	}
	resp.Totals.Debit = totalDebit
	resp.Totals.Credit = totalCredit
	return resp
}

func toAccountAmountResponses(amounts []domain.AccountAmount) []AccountAmountResponse {
	responses := make([]AccountAmountResponse, len(amounts))
	for i, amt := range amounts {
		responses[i] = AccountAmountResponse{
			AccountCode: amt.AccountCode,
			Name:        amt.Name,
			Amount:      amt.NetAmount,
		}
	}
	return responses
}

// ToProfitAndLossResponse converts a domain P&L report to the response DTO.
func ToProfitAndLossResponse(report *domain.PAndLReport, from, to time.Time) ProfitAndLossResponse {
	resp := ProfitAndLossResponse{
		FromDate: from.Format("2006-01-02"),
		ToDate:   to.Format("2006-01-02"),
		Revenue:  toAccountAmountResponses(report.Revenue),
		COGS:     toAccountAmountResponses(report.COGS),
		Expenses: toAccountAmountResponses(report.Expenses),
	}
	resp.Summary.TotalRevenue = report.TotalRevenue
	resp.Summary.TotalCOGS = report.TotalCOGS
	resp.Summary.TotalExpenses = report.TotalExpenses
	resp.Summary.GrossProfit = report.GrossProfit
	resp.Summary.NetProfit = report.NetProfit
	return resp
}

// ToBalanceSheetResponse converts a domain balance sheet to the response DTO.
func ToBalanceSheetResponse(report *domain.BalanceSheetReport, asOf time.Time) BalanceSheetResponse {
	resp := BalanceSheetResponse{
		AsOf:        asOf.Format("2006-01-02"),
		Assets:      toAccountAmountResponses(report.Assets),
		Liabilities: toAccountAmountResponses(report.Liabilities),
		Equity:      toAccountAmountResponses(report.Equity),
	}
	resp.Summary.TotalAssets = report.TotalAssets
	resp.Summary.TotalLiabilities = report.TotalLiabilities
	resp.Summary.TotalEquity = report.TotalEquity
	return resp
}

// FinancialSummaryResponse bundles the three statements with headline totals
type FinancialSummaryResponse struct {
	AsOf          string                `json:"asOf"`
	TrialBalance  TrialBalanceResponse  `json:"trialBalance"`
	ProfitAndLoss ProfitAndLossResponse `json:"profitAndLoss"`
	BalanceSheet  BalanceSheetResponse  `json:"balanceSheet"`
	Summary       struct {
		TotalAssets      decimal.Decimal `json:"totalAssets"`
		TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
		TotalEquity      decimal.Decimal `json:"totalEquity"`
		TotalRevenue     decimal.Decimal `json:"totalRevenue"`
		NetProfit        decimal.Decimal `json:"netProfit"`
	} `json:"summary"`
}

// ToFinancialSummaryResponse converts a domain financial summary to the response DTO.
func ToFinancialSummaryResponse(summary *domain.FinancialSummary, asOf time.Time) FinancialSummaryResponse {
	resp := FinancialSummaryResponse{
		AsOf:          asOf.Format("2006-01-02"),
		TrialBalance:  ToTrialBalanceResponse(summary.TrialBalance, asOf),
		ProfitAndLoss: ToProfitAndLossResponse(summary.ProfitAndLoss, time.Time{}, asOf),
		BalanceSheet:  ToBalanceSheetResponse(summary.BalanceSheet, asOf),
	}
	resp.Summary.TotalAssets = summary.TotalAssets
	resp.Summary.TotalLiabilities = summary.TotalLiabilities
	resp.Summary.TotalEquity = summary.TotalEquity
	resp.Summary.TotalRevenue = summary.TotalRevenue
	resp.Summary.NetProfit = summary.NetProfit
	return resp
}
