package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ponmobiz/ponmo_books_app/internal/core/domain"
	portsrepo "github.com/ponmobiz/ponmo_books_app/internal/core/ports/repositories"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

func (r *reportingRepository) queryTotals(ctx context.Context, query string, args ...interface{}) ([]domain.AccountTotals, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying account totals: %w", classifyError(err))
	}
	defer rows.Close()

	result := []domain.AccountTotals{}
	for rows.Next() {
		var t domain.AccountTotals
		if err := rows.Scan(&t.AccountCode, &t.Debit, &t.Credit); err != nil {
			return nil, fmt.Errorf("error scanning account totals row: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account totals rows: %w", classifyError(err))
	}

	return result, nil
}

// GetAccountTotalsAsOf aggregates debits and credits per account across all
// entries dated on or before asOf.
func (r *reportingRepository) GetAccountTotalsAsOf(ctx context.Context, asOf time.Time) ([]domain.AccountTotals, error) {
	query := `
		SELECT
			l.account_code,
			COALESCE(SUM(l.debit), 0) AS total_debit,
			COALESCE(SUM(l.credit), 0) AS total_credit
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE e.entry_date <= $1
		GROUP BY l.account_code
		ORDER BY l.account_code;
	`
	return r.queryTotals(ctx, query, asOf)
}

// GetAccountTotalsInRange aggregates debits and credits per account across
// entries dated within [from, to].
func (r *reportingRepository) GetAccountTotalsInRange(ctx context.Context, from, to time.Time) ([]domain.AccountTotals, error) {
	query := `
		SELECT
			l.account_code,
			COALESCE(SUM(l.debit), 0) AS total_debit,
			COALESCE(SUM(l.credit), 0) AS total_credit
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE e.entry_date >= $1 AND e.entry_date <= $2
		GROUP BY l.account_code
		ORDER BY l.account_code;
	`
	return r.queryTotals(ctx, query, from, to)
}
