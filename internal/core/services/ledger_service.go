package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ponmobiz/ponmo_books_app/internal/apperrors"
	"github.com/ponmobiz/ponmo_books_app/internal/core/accounting"
	"github.com/ponmobiz/ponmo_books_app/internal/core/coa"
	"github.com/ponmobiz/ponmo_books_app/internal/core/domain"
	portsrepo "github.com/ponmobiz/ponmo_books_app/internal/core/ports/repositories"
	portssvc "github.com/ponmobiz/ponmo_books_app/internal/core/ports/services"
	"github.com/ponmobiz/ponmo_books_app/internal/dto"
	"github.com/ponmobiz/ponmo_books_app/internal/middleware"
)

// ledgerService provides the append-only journal entry operations.
type ledgerService struct {
	registry   *coa.Registry
	ledgerRepo portsrepo.LedgerRepositoryFacade

	// Serializes Post and Reverse so idempotency lookups and the
	// reversed-status transition never race each other.
	postMu sync.Mutex
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, registry *coa.Registry) portssvc.LedgerSvcFacade {
	return &ledgerService{
		registry:   registry,
		ledgerRepo: ledgerRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// Post validates the request and appends a new journal entry to the ledger.
func (s *ledgerService) Post(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	lines := make([]domain.LineItem, len(req.Lines))
	for i, lineReq := range req.Lines {
		lines[i] = domain.LineItem{
			AccountCode: lineReq.AccountCode,
			Debit:       lineReq.Debit,
			Credit:      lineReq.Credit,
			Memo:        lineReq.Memo,
		}
	}

	if err := accounting.ValidateLines(s.registry, lines); err != nil {
		logger.Warn("Journal entry rejected by validation", slog.String("error", err.Error()))
		return nil, err
	}

	sourceType := domain.SourceType(req.SourceType)
	if sourceType == "" {
		sourceType = domain.SourceAdjustment
	}

	s.postMu.Lock()
	defer s.postMu.Unlock()

	// Idempotent retry: a key we have seen before returns the entry that
	// was posted for it, without appending anything.
	if req.IdempotencyKey != "" {
		existing, err := s.ledgerRepo.FindEntryByIdempotencyKey(ctx, req.IdempotencyKey)
		if err == nil {
			logger.Info("Idempotency key already posted, returning existing entry", slog.String("entry_id", existing.EntryID))
			return existing, nil
		}
		if !errors.Is(err, apperrors.ErrEntryNotFound) {
			logger.Error("Failed idempotency lookup", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed idempotency lookup: %w", err)
		}
	}

	now := time.Now().UTC()
	entry := domain.JournalEntry{
		EntryID:        uuid.NewString(),
		EntryDate:      req.EntryDate,
		Description:    req.Description,
		Reference:      req.Reference,
		SourceType:     sourceType,
		Status:         domain.Posted,
		IdempotencyKey: req.IdempotencyKey,
		Lines:          lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	for i := range entry.Lines {
		entry.Lines[i].LineID = uuid.NewString()
		entry.Lines[i].EntryID = entry.EntryID
	}

	if err := s.ledgerRepo.AppendEntry(ctx, entry); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) && req.IdempotencyKey != "" {
			// Lost a race on the unique key; the stored entry wins.
			existing, findErr := s.ledgerRepo.FindEntryByIdempotencyKey(ctx, req.IdempotencyKey)
			if findErr == nil {
				return existing, nil
			}
		}
		logger.Error("Failed to append journal entry", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to append journal entry: %w", err)
	}

	logger.Info("Journal entry posted", slog.String("entry_id", entry.EntryID), slog.String("source_type", string(entry.SourceType)))
	return &entry, nil
}

// GetEntry retrieves a journal entry with its lines.
func (s *ledgerService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrEntryNotFound) {
			logger.Error("Failed to find entry by ID", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}

	lines, err := s.ledgerRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		logger.Error("Failed to fetch lines for entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, apperrors.ErrInternal)
	}
	entry.Lines = lines

	return entry, nil
}

// ListEntries retrieves a page of journal entries in posting order.
func (s *ledgerService) ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if limit <= 0 {
		limit = 20
	}
	entries, token, err := s.ledgerRepo.ListEntries(ctx, limit, nextToken)
	if err != nil {
		logger.Error("Failed to list entries", slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, token, nil
}

// EntriesFor retrieves the posted line activity touching an account within the period.
func (s *ledgerService) EntriesFor(ctx context.Context, accountCode int, from time.Time, to time.Time) ([]domain.AccountActivity, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !s.registry.Exists(accountCode) {
		return nil, fmt.Errorf("account %d: %w", accountCode, apperrors.ErrUnknownAccount)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("period end precedes start: %w", apperrors.ErrValidation)
	}

	activity, err := s.ledgerRepo.ListAccountActivity(ctx, accountCode, from, to)
	if err != nil {
		logger.Error("Failed to list account activity", slog.String("error", err.Error()), slog.Int("account_code", accountCode))
		return nil, fmt.Errorf("failed to list activity for account %d: %w", accountCode, err)
	}
	return activity, nil
}

// BalanceAsOf computes the signed balance of an account over all entries
// dated on or before asOf. Debit-normal accounts report debits minus
// credits; credit-normal accounts the opposite.
func (s *ledgerService) BalanceAsOf(ctx context.Context, accountCode int, asOf time.Time) (decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.registry.Lookup(accountCode)
	if err != nil {
		return decimal.Zero, err
	}

	debit, credit, err := s.ledgerRepo.SumAccountAsOf(ctx, accountCode, asOf)
	if err != nil {
		logger.Error("Failed to sum account", slog.String("error", err.Error()), slog.Int("account_code", accountCode))
		return decimal.Zero, fmt.Errorf("failed to sum account %d: %w", accountCode, err)
	}

	if account.Class.DebitNormal() {
		return debit.Sub(credit), nil
	}
	return credit.Sub(debit), nil
}

// Reverse appends a mirror-image entry for entryID and marks the original
// as reversed. The original entry is never modified beyond its status marker.
func (s *ledgerService) Reverse(ctx context.Context, entryID string, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	s.postMu.Lock()
	defer s.postMu.Unlock()

	original, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrEntryNotFound) {
			logger.Error("Failed to find entry for reversal", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, fmt.Errorf("failed to find entry %s for reversal: %w", entryID, err)
	}

	if original.Status == domain.Reversed {
		logger.Warn("Attempt to reverse an already reversed entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("entry %s is already reversed: %w", entryID, apperrors.ErrConflict)
	}
	if original.SourceType == domain.SourceReversal {
		logger.Warn("Attempt to reverse a reversal entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("entry %s is itself a reversal: %w", entryID, apperrors.ErrConflict)
	}

	originalLines, err := s.ledgerRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		logger.Error("Failed to fetch lines for reversal", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, apperrors.ErrInternal)
	}

	now := time.Now().UTC()
	reversing := domain.JournalEntry{
		EntryID:         uuid.NewString(),
		EntryDate:       now,
		Description:     "Reversal of: " + original.Description,
		Reference:       original.Reference,
		SourceType:      domain.SourceReversal,
		Status:          domain.Posted,
		OriginalEntryID: &original.EntryID,
		Lines:           accounting.ReversalLines(originalLines),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	for i := range reversing.Lines {
		reversing.Lines[i].LineID = uuid.NewString()
		reversing.Lines[i].EntryID = reversing.EntryID
	}

	if err := s.ledgerRepo.AppendReversal(ctx, reversing, original.EntryID); err != nil {
		logger.Error("Failed to append reversal", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to reverse entry %s: %w", entryID, err)
	}

	logger.Info("Journal entry reversed", slog.String("entry_id", entryID), slog.String("reversing_entry_id", reversing.EntryID))
	return &reversing, nil
}
