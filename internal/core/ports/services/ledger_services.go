package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ponmobiz/ponmo_books_app/internal/core/domain"
	"github.com/ponmobiz/ponmo_books_app/internal/dto"
)

// LedgerSvcFacade is the append-only journal ledger surface.
type LedgerSvcFacade interface {
	// Post validates and appends a new journal entry. Retrying with the
	// same idempotency key returns the previously posted entry.
	Post(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error)
	// GetEntry fetches a single entry with its lines.
	GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	// ListEntries returns a page of entries in posting order.
	ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
	// EntriesFor returns the line activity touching an account in [from, to].
	EntriesFor(ctx context.Context, accountCode int, from time.Time, to time.Time) ([]domain.AccountActivity, error)
	// BalanceAsOf computes an account's signed balance over all entries
	// dated on or before asOf, using the account's normal side.
	BalanceAsOf(ctx context.Context, accountCode int, asOf time.Time) (decimal.Decimal, error)
	// Reverse appends a reversing entry for entryID and marks the
	// original as reversed. An already-reversed entry or a reversal
	// entry cannot be reversed again.
	Reverse(ctx context.Context, entryID string, creatorUserID string) (*domain.JournalEntry, error)
}
