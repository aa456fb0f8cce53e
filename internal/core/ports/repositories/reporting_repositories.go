package repositories

import (
	"context"
	"time"

	"github.com/ponmobiz/ponmo_books_app/internal/core/domain"
)

// ReportingRepository defines the aggregate queries behind statement
// generation. Account names and classes live in the in-process chart of
// accounts, so only per-code totals come back from storage.
type ReportingRepository interface {
	// GetAccountTotalsAsOf returns per-account debit/credit sums over all
	// lines dated up to and including asOf, for accounts with at least one
	// posted line.
	GetAccountTotalsAsOf(ctx context.Context, asOf time.Time) ([]domain.AccountTotals, error)

	// GetAccountTotalsInRange returns per-account debit/credit sums over
	// lines dated within [from, to].
	GetAccountTotalsInRange(ctx context.Context, from, to time.Time) ([]domain.AccountTotals, error)
}
