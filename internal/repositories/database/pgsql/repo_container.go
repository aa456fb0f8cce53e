package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/ponmobiz/ponmo_books_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	ledgerRepo := newPgxLedgerRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		LedgerRepo:    ledgerRepo,
		ReportingRepo: reportingRepo,
	}
}
