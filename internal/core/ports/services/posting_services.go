package services

import (
	"context"

	"github.com/ponmobiz/ponmo_books_app/internal/core/domain"
	"github.com/ponmobiz/ponmo_books_app/internal/dto"
)

// PostingSvcFacade translates business events into journal entries.
type PostingSvcFacade interface {
	RecordPurchase(ctx context.Context, req dto.PurchaseRequest, creatorUserID string) (*domain.JournalEntry, error)
	// RecordProduction posts two entries: raw materials into WIP, then
	// WIP into finished goods.
	RecordProduction(ctx context.Context, req dto.ProductionRequest, creatorUserID string) ([]domain.JournalEntry, error)
	RecordSale(ctx context.Context, req dto.SaleRequest, creatorUserID string) (*domain.JournalEntry, error)
	RecordExpense(ctx context.Context, req dto.ExpenseRequest, creatorUserID string) (*domain.JournalEntry, error)
	RecordVendorPayment(ctx context.Context, req dto.VendorPaymentRequest, creatorUserID string) (*domain.JournalEntry, error)
	RecordCustomerDeposit(ctx context.Context, req dto.CustomerDepositRequest, creatorUserID string) (*domain.JournalEntry, error)
	RecordDepositUsage(ctx context.Context, req dto.DepositUsageRequest, creatorUserID string) (*domain.JournalEntry, error)
	RecordPaymentReceived(ctx context.Context, req dto.PaymentReceivedRequest, creatorUserID string) (*domain.JournalEntry, error)
}
