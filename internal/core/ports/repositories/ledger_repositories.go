package repositories

import (
	"context"
	"time"

	"github.com/ponmobiz/ponmo_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryReader defines read operations for journal entry data.
type EntryReader interface {
	// FindEntryByID retrieves a journal entry (without lines) by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindEntryByIdempotencyKey retrieves the entry posted under the given
	// caller-supplied idempotency key, if any.
	FindEntryByIdempotencyKey(ctx context.Context, key string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of entries ordered by entry date
	// then creation time, using token-based pagination.
	ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// EntryWriter defines append operations for the ledger. The ledger is
// append-only: there is no update or delete of posted lines.
type EntryWriter interface {
	// AppendEntry durably appends an entry and its lines in a single atomic
	// write. A reused idempotency key fails with apperrors.ErrDuplicate and
	// appends nothing.
	AppendEntry(ctx context.Context, entry domain.JournalEntry) error

	// AppendReversal atomically appends the reversing entry and marks the
	// original entry as reversed, linking the two.
	AppendReversal(ctx context.Context, reversing domain.JournalEntry, originalEntryID string) error
}

// LineReader defines read operations over posted line items.
type LineReader interface {
	// FindLinesByEntryID retrieves all lines of a single entry, in posting order.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.LineItem, error)

	// ListAccountActivity retrieves the lines touching an account within
	// [from, to], joined with parent-entry context, ordered by entry date
	// ascending. Each call runs an independent scan.
	ListAccountActivity(ctx context.Context, accountCode int, from, to time.Time) ([]domain.AccountActivity, error)

	// SumAccountAsOf returns the account's total debits and credits across
	// all lines dated up to and including asOf.
	SumAccountAsOf(ctx context.Context, accountCode int, asOf time.Time) (debit, credit decimal.Decimal, err error)
}

// LedgerRepositoryFacade combines all ledger repository interfaces for
// clients that need full access.
type LedgerRepositoryFacade interface {
	EntryReader
	EntryWriter
	LineReader
}
