package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry row.
type EntryStatus string

const (
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

// JournalEntry mirrors a row of the journal_entries table.
type JournalEntry struct {
	EntryID          string      `json:"entryID"`
	EntryDate        time.Time   `json:"entryDate"`
	Description      string      `json:"description"`
	Reference        string      `json:"reference"`
	SourceType       string      `json:"sourceType"`
	Status           EntryStatus `json:"status"`
	IdempotencyKey   string      `json:"idempotencyKey"` // empty key stored as NULL
	OriginalEntryID  *string     `json:"originalEntryID"`
	ReversingEntryID *string     `json:"reversingEntryID"`
	AuditFields
}

// LineItem mirrors a row of the journal_lines table.
type LineItem struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	AccountCode int             `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Memo        string          `json:"memo"`
}
