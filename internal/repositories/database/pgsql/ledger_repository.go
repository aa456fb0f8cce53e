package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ponmobiz/ponmo_books_app/internal/apperrors"
	"github.com/ponmobiz/ponmo_books_app/internal/core/domain"
	portsrepo "github.com/ponmobiz/ponmo_books_app/internal/core/ports/repositories"
	"github.com/ponmobiz/ponmo_books_app/internal/models"
	"github.com/ponmobiz/ponmo_books_app/internal/utils/mapping"
	"github.com/ponmobiz/ponmo_books_app/internal/utils/pagination"
)

const idempotencyKeyConstraint = "journal_entries_idempotency_key_key"

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for journal entry and line data.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const entryColumns = `entry_id, entry_date, description, reference, source_type, status,
	idempotency_key, original_entry_id, reversing_entry_id,
	created_at, created_by, last_updated_at, last_updated_by`

// insertEntryTx writes the entry header and its lines inside the given transaction.
func (r *PgxLedgerRepository) insertEntryTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, entryQuery,
		m.EntryID,
		m.EntryDate,
		m.Description,
		m.Reference,
		m.SourceType,
		m.Status,
		m.IdempotencyKey,
		m.OriginalEntryID,
		m.ReversingEntryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, idempotencyKeyConstraint) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert entry "+m.EntryID, classifyError(err))
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (line_id, entry_id, account_code, debit, credit, memo)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, line := range entry.Lines {
		ml := mapping.ToModelLineItem(line)
		batch.Queue(lineQuery, ml.LineID, ml.EntryID, ml.AccountCode, ml.Debit, ml.Credit, ml.Memo)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute line batch for entry "+m.EntryID, classifyError(err))
	}
	return nil
}

// AppendEntry durably appends an entry and its lines in one transaction.
func (r *PgxLedgerRepository) AppendEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertEntryTx(ctx, tx, entry); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// AppendReversal appends the reversing entry and flips the original entry to
// REVERSED in the same transaction, linking the two.
func (r *PgxLedgerRepository) AppendReversal(ctx context.Context, reversing domain.JournalEntry, originalEntryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertEntryTx(ctx, tx, reversing); err != nil {
		return err
	}

	updateQuery := `
		UPDATE journal_entries
		SET status = $1, reversing_entry_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE entry_id = $5 AND status = $6;
	`
	tag, err := tx.Exec(ctx, updateQuery,
		models.Reversed,
		reversing.EntryID,
		reversing.CreatedAt,
		reversing.CreatedBy,
		originalEntryID,
		models.Posted,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark entry "+originalEntryID+" reversed", classifyError(err))
	}
	if tag.RowsAffected() == 0 {
		// Original vanished or was reversed concurrently.
		return apperrors.ErrConflict
	}

	return r.Commit(ctx, tx)
}

func scanEntry(row pgx.Row) (*models.JournalEntry, error) {
	var m models.JournalEntry
	var reference, idempotencyKey sql.NullString
	var originalID, reversingID sql.NullString

	err := row.Scan(
		&m.EntryID,
		&m.EntryDate,
		&m.Description,
		&reference,
		&m.SourceType,
		&m.Status,
		&idempotencyKey,
		&originalID,
		&reversingID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	m.Reference = reference.String
	m.IdempotencyKey = idempotencyKey.String
	if originalID.Valid {
		m.OriginalEntryID = &originalID.String
	}
	if reversingID.Valid {
		m.ReversingEntryID = &reversingID.String
	}
	return &m, nil
}

// FindEntryByID retrieves an entry header by its ID.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEntryNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry "+entryID, classifyError(err))
	}

	entry := mapping.ToDomainJournalEntry(*m)
	return &entry, nil
}

// FindEntryByIdempotencyKey retrieves the entry posted under the given key.
func (r *PgxLedgerRepository) FindEntryByIdempotencyKey(ctx context.Context, key string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE idempotency_key = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEntryNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry by idempotency key", classifyError(err))
	}

	entry := mapping.ToDomainJournalEntry(*m)
	lines, err := r.FindLinesByEntryID(ctx, entry.EntryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	return &entry, nil
}

// ListEntries retrieves a paginated list of entries using token-based pagination.
// It returns the list of entries, a token for the next page (if any), and an error.
func (r *PgxLedgerRepository) ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + entryColumns + ` FROM journal_entries`
	// Ordering must be stable: entry_date DESC with created_at DESC as tie-breaker.
	orderByClause := `ORDER BY entry_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `WHERE (entry_date, created_at) < ($1, $2)`
		args = append(args, lastDate, lastCreatedAt)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $1;"
		rows, err = r.Pool.Query(ctx, query, fetchLimit)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries", classifyError(err))
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row", scanErr)
		}
		modelEntries = append(modelEntries, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows", classifyError(err))
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		// The token points to the last item included in this response page;
		// the next query starts after it.
		lastEntry := modelEntries[limit-1]
		newToken := pagination.EncodeToken(lastEntry.EntryDate, lastEntry.CreatedAt)
		nextTokenVal = &newToken
		results = modelEntries[:limit]
	}

	domainEntries := make([]domain.JournalEntry, len(results))
	for i, m := range results {
		domainEntries[i] = mapping.ToDomainJournalEntry(m)
	}

	return domainEntries, nextTokenVal, nil
}

// FindLinesByEntryID retrieves all lines of a single entry in posting order.
func (r *PgxLedgerRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.LineItem, error) {
	query := `
		SELECT line_id, entry_id, account_code, debit, credit, COALESCE(memo, '')
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY line_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, classifyError(err))
	}
	defer rows.Close()

	var modelLines []models.LineItem
	for rows.Next() {
		var ml models.LineItem
		if err := rows.Scan(&ml.LineID, &ml.EntryID, &ml.AccountCode, &ml.Debit, &ml.Credit, &ml.Memo); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for entry "+entryID, err)
		}
		modelLines = append(modelLines, ml)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for entry "+entryID, classifyError(err))
	}

	return mapping.ToDomainLineItems(modelLines), nil
}

// ListAccountActivity retrieves the lines touching an account within [from, to],
// joined with their parent-entry context, ordered by entry date ascending.
func (r *PgxLedgerRepository) ListAccountActivity(ctx context.Context, accountCode int, from, to time.Time) ([]domain.AccountActivity, error) {
	query := `
		SELECT l.line_id, l.entry_id, l.account_code, l.debit, l.credit, COALESCE(l.memo, ''),
		       e.entry_date, e.description, e.source_type
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE l.account_code = $1 AND e.entry_date >= $2 AND e.entry_date <= $3
		ORDER BY e.entry_date ASC, e.created_at ASC, l.line_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, accountCode, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query activity for account "+strconv.Itoa(accountCode), classifyError(err))
	}
	defer rows.Close()

	activity := []domain.AccountActivity{}
	for rows.Next() {
		var act domain.AccountActivity
		var sourceType string
		if err := rows.Scan(
			&act.LineID,
			&act.EntryID,
			&act.AccountCode,
			&act.Debit,
			&act.Credit,
			&act.Memo,
			&act.EntryDate,
			&act.EntryDescription,
			&sourceType,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan activity row for account "+strconv.Itoa(accountCode), err)
		}
		act.SourceType = domain.SourceType(sourceType)
		activity = append(activity, act)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating activity rows for account "+strconv.Itoa(accountCode), classifyError(err))
	}

	return activity, nil
}

// SumAccountAsOf returns the account's total debits and credits across all
// lines whose entry is dated on or before asOf.
func (r *PgxLedgerRepository) SumAccountAsOf(ctx context.Context, accountCode int, asOf time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE l.account_code = $1 AND e.entry_date <= $2;
	`
	var debit, credit decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, accountCode, asOf).Scan(&debit, &credit); err != nil {
		return decimal.Zero, decimal.Zero, apperrors.NewAppError(500, "failed to sum account "+strconv.Itoa(accountCode), classifyError(err))
	}
	return debit, credit, nil
}
