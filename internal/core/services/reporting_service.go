package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ponmobiz/ponmo_books_app/internal/apperrors"
	"github.com/ponmobiz/ponmo_books_app/internal/core/coa"
	"github.com/ponmobiz/ponmo_books_app/internal/core/domain"
	portsrepo "github.com/ponmobiz/ponmo_books_app/internal/core/ports/repositories"
	portssvc "github.com/ponmobiz/ponmo_books_app/internal/core/ports/services"
	"github.com/ponmobiz/ponmo_books_app/internal/middleware"
)

// currentPeriodEarningsCode is the equity account that absorbs net profit
// so the balance sheet equation holds before a closing entry exists.
const currentPeriodEarningsCode = 3200

// reportingService derives financial statements from posted ledger totals.
type reportingService struct {
	registry      *coa.Registry
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, registry *coa.Registry) portssvc.ReportingSvcFacade {
	return &reportingService{
		registry:      registry,
		reportingRepo: reportingRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// TrialBalance lists every account with posted activity up to asOf, with
// its debit and credit side netted against each other per account.
func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	totals, err := s.reportingRepo.GetAccountTotalsAsOf(ctx, asOf)
	if err != nil {
		logger.Error("Failed to fetch account totals for trial balance", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch account totals: %w", err)
	}

	rows := make([]domain.TrialBalanceRow, 0, len(totals))
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, t := range totals {
		account, err := s.registry.Lookup(t.AccountCode)
		if err != nil {
			logger.Error("Ledger references account missing from the chart", slog.Int("account_code", t.AccountCode))
			return nil, fmt.Errorf("account %d present in ledger but not in chart: %w", t.AccountCode, apperrors.ErrLedgerIntegrity)
		}

		row := domain.TrialBalanceRow{
			AccountCode: t.AccountCode,
			AccountName: account.Name,
			Class:       account.Class,
		}
		// Net the account to a single side. A fully netted account still
		// gets a zero row: it had posted activity.
		net := t.Debit.Sub(t.Credit)
		switch {
		case net.IsPositive():
			row.Debit = net
		case net.IsNegative():
			row.Credit = net.Neg()
		default:
			row.Debit = decimal.Zero
			row.Credit = decimal.Zero
		}
		rows = append(rows, row)
		totalDebit = totalDebit.Add(row.Debit)
		totalCredit = totalCredit.Add(row.Credit)
	}

	if !totalDebit.Equal(totalCredit) {
		logger.Error("Trial balance does not balance",
			slog.String("total_debit", totalDebit.String()),
			slog.String("total_credit", totalCredit.String()))
		return nil, fmt.Errorf("trial balance totals differ (debit %s, credit %s): %w",
			totalDebit, totalCredit, apperrors.ErrLedgerIntegrity)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].AccountCode < rows[j].AccountCode })
	return rows, nil
}

// ProfitAndLoss aggregates revenue and expense activity inside [from, to].
func (s *reportingService) ProfitAndLoss(ctx context.Context, from time.Time, to time.Time) (*domain.PAndLReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if to.Before(from) {
		return nil, fmt.Errorf("period end precedes start: %w", apperrors.ErrValidation)
	}

	totals, err := s.reportingRepo.GetAccountTotalsInRange(ctx, from, to)
	if err != nil {
		logger.Error("Failed to fetch account totals for P&L", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch account totals: %w", err)
	}

	report := &domain.PAndLReport{
		Revenue:       []domain.AccountAmount{},
		COGS:          []domain.AccountAmount{},
		Expenses:      []domain.AccountAmount{},
		TotalRevenue:  decimal.Zero,
		TotalCOGS:     decimal.Zero,
		TotalExpenses: decimal.Zero,
	}

	for _, t := range totals {
		account, err := s.registry.Lookup(t.AccountCode)
		if err != nil {
			return nil, fmt.Errorf("account %d present in ledger but not in chart: %w", t.AccountCode, apperrors.ErrLedgerIntegrity)
		}

		switch account.Class {
		case domain.Revenue:
			net := t.Credit.Sub(t.Debit)
			report.Revenue = append(report.Revenue, domain.AccountAmount{AccountCode: t.AccountCode, Name: account.Name, NetAmount: net})
			report.TotalRevenue = report.TotalRevenue.Add(net)
		case domain.Expense:
			net := t.Debit.Sub(t.Credit)
			amount := domain.AccountAmount{AccountCode: t.AccountCode, Name: account.Name, NetAmount: net}
			if account.Category == domain.CostOfGoodsSold {
				report.COGS = append(report.COGS, amount)
				report.TotalCOGS = report.TotalCOGS.Add(net)
			} else {
				report.Expenses = append(report.Expenses, amount)
				report.TotalExpenses = report.TotalExpenses.Add(net)
			}
		}
	}

	sortAccountAmounts(report.Revenue)
	sortAccountAmounts(report.COGS)
	sortAccountAmounts(report.Expenses)

	report.GrossProfit = report.TotalRevenue.Sub(report.TotalCOGS)
	report.NetProfit = report.GrossProfit.Sub(report.TotalExpenses)
	return report, nil
}

// BalanceSheet presents assets, liabilities and equity as of a date. Net
// profit since inception is folded into equity as current period earnings
// so the accounting equation holds.
func (s *reportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	totals, err := s.reportingRepo.GetAccountTotalsAsOf(ctx, asOf)
	if err != nil {
		logger.Error("Failed to fetch account totals for balance sheet", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch account totals: %w", err)
	}

	report := &domain.BalanceSheetReport{
		Assets:           []domain.AccountAmount{},
		Liabilities:      []domain.AccountAmount{},
		Equity:           []domain.AccountAmount{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}
	earnings := decimal.Zero

	for _, t := range totals {
		account, err := s.registry.Lookup(t.AccountCode)
		if err != nil {
			return nil, fmt.Errorf("account %d present in ledger but not in chart: %w", t.AccountCode, apperrors.ErrLedgerIntegrity)
		}

		switch account.Class {
		case domain.Asset:
			net := t.Debit.Sub(t.Credit)
			report.Assets = append(report.Assets, domain.AccountAmount{AccountCode: t.AccountCode, Name: account.Name, NetAmount: net})
			report.TotalAssets = report.TotalAssets.Add(net)
		case domain.Liability:
			net := t.Credit.Sub(t.Debit)
			report.Liabilities = append(report.Liabilities, domain.AccountAmount{AccountCode: t.AccountCode, Name: account.Name, NetAmount: net})
			report.TotalLiabilities = report.TotalLiabilities.Add(net)
		case domain.Equity:
			net := t.Credit.Sub(t.Debit)
			report.Equity = append(report.Equity, domain.AccountAmount{AccountCode: t.AccountCode, Name: account.Name, NetAmount: net})
			report.TotalEquity = report.TotalEquity.Add(net)
		case domain.Revenue:
			earnings = earnings.Add(t.Credit.Sub(t.Debit))
		case domain.Expense:
			earnings = earnings.Sub(t.Debit.Sub(t.Credit))
		}
	}

	if !earnings.IsZero() {
		earningsAccount, err := s.registry.Lookup(currentPeriodEarningsCode)
		if err != nil {
			return nil, fmt.Errorf("current period earnings account missing from chart: %w", apperrors.ErrLedgerIntegrity)
		}
		merged := false
		for i := range report.Equity {
			if report.Equity[i].AccountCode == currentPeriodEarningsCode {
				report.Equity[i].NetAmount = report.Equity[i].NetAmount.Add(earnings)
				merged = true
				break
			}
		}
		if !merged {
			report.Equity = append(report.Equity, domain.AccountAmount{
				AccountCode: currentPeriodEarningsCode,
				Name:        earningsAccount.Name,
				NetAmount:   earnings,
			})
		}
		report.TotalEquity = report.TotalEquity.Add(earnings)
	}

	sortAccountAmounts(report.Assets)
	sortAccountAmounts(report.Liabilities)
	sortAccountAmounts(report.Equity)

	if !report.TotalAssets.Equal(report.TotalLiabilities.Add(report.TotalEquity)) {
		logger.Error("Accounting equation violated",
			slog.String("assets", report.TotalAssets.String()),
			slog.String("liabilities", report.TotalLiabilities.String()),
			slog.String("equity", report.TotalEquity.String()))
		return nil, fmt.Errorf("assets %s do not equal liabilities %s plus equity %s: %w",
			report.TotalAssets, report.TotalLiabilities, report.TotalEquity, apperrors.ErrLedgerIntegrity)
	}

	return report, nil
}

func sortAccountAmounts(amounts []domain.AccountAmount) {
	sort.Slice(amounts, func(i, j int) bool { return amounts[i].AccountCode < amounts[j].AccountCode })
}

// FinancialSummary bundles the three statements as of one date. The P&L
// covers everything from inception through asOf, matching the balance
// sheet's earnings figure.
func (s *reportingService) FinancialSummary(ctx context.Context, asOf time.Time) (*domain.FinancialSummary, error) {
	rows, err := s.TrialBalance(ctx, asOf)
	if err != nil {
		return nil, err
	}
	pl, err := s.ProfitAndLoss(ctx, time.Time{}, asOf)
	if err != nil {
		return nil, err
	}
	bs, err := s.BalanceSheet(ctx, asOf)
	if err != nil {
		return nil, err
	}

	return &domain.FinancialSummary{
		TrialBalance:     rows,
		ProfitAndLoss:    pl,
		BalanceSheet:     bs,
		TotalAssets:      bs.TotalAssets,
		TotalLiabilities: bs.TotalLiabilities,
		TotalEquity:      bs.TotalEquity,
		TotalRevenue:     pl.TotalRevenue,
		NetProfit:        pl.NetProfit,
	}, nil
}
