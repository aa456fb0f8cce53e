package services

import (
	"context"
	"time"

	"github.com/ponmobiz/ponmo_books_app/internal/core/domain"
)

// ReportingSvcFacade produces financial statements from posted entries.
type ReportingSvcFacade interface {
	TrialBalance(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error)
	ProfitAndLoss(ctx context.Context, from time.Time, to time.Time) (*domain.PAndLReport, error)
	BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error)
	FinancialSummary(ctx context.Context, asOf time.Time) (*domain.FinancialSummary, error)
}
