package services

import (
	"github.com/ponmobiz/ponmo_books_app/internal/core/coa"
	portsrepo "github.com/ponmobiz/ponmo_books_app/internal/core/ports/repositories"
	portssvc "github.com/ponmobiz/ponmo_books_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(registry *coa.Registry, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Ledger first since posting depends on it
	container.Ledger = NewLedgerService(repos.LedgerRepo, registry)
	container.Reporting = NewReportingService(repos.ReportingRepo, registry)
	container.Posting = NewPostingService(container.Ledger, registry)

	return container
}
