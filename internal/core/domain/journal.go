package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a posted journal entry.
// Entries are immutable once posted; Reversed is an audit marker set when a
// reversing entry has been posted against this one, it never changes the
// entry's lines or its contribution to balances.
type EntryStatus string

const (
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

// SourceType tags the originating business transaction of a journal entry.
type SourceType string

const (
	SourceSale       SourceType = "SALE"
	SourcePurchase   SourceType = "PURCHASE"
	SourceProduction SourceType = "PRODUCTION"
	SourceExpense    SourceType = "EXPENSE"
	SourcePayment    SourceType = "PAYMENT"
	SourceDeposit    SourceType = "DEPOSIT"
	SourceAdjustment SourceType = "ADJUSTMENT"
	SourceReversal   SourceType = "REVERSAL"
)

// LineItem is a single debit or credit against one account within a journal
// entry. Exactly one of Debit/Credit is nonzero.
type LineItem struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	AccountCode int             `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Memo        string          `json:"memo"`
}

// JournalEntry represents a single, balanced financial event composed of at
// least two line items. Sum of debits equals sum of credits, exactly.
type JournalEntry struct {
	EntryID          string      `json:"entryID"`
	EntryDate        time.Time   `json:"entryDate"`
	Description      string      `json:"description"`
	Reference        string      `json:"reference"` // Invoice / receipt / batch reference
	SourceType       SourceType  `json:"sourceType"`
	Status           EntryStatus `json:"status"`
	IdempotencyKey   string      `json:"idempotencyKey,omitempty"`
	OriginalEntryID  *string     `json:"originalEntryID,omitempty"`  // Set on reversing entries
	ReversingEntryID *string     `json:"reversingEntryID,omitempty"` // Set on reversed originals
	Lines            []LineItem  `json:"lines,omitempty"`
	AuditFields
}

// AccountActivity is a line item joined with context from its parent entry,
// as returned by account activity queries.
type AccountActivity struct {
	LineID           string          `json:"lineID"`
	EntryID          string          `json:"entryID"`
	AccountCode      int             `json:"accountCode"`
	Debit            decimal.Decimal `json:"debit"`
	Credit           decimal.Decimal `json:"credit"`
	Memo             string          `json:"memo"`
	EntryDate        time.Time       `json:"entryDate"`
	EntryDescription string          `json:"entryDescription"`
	SourceType       SourceType      `json:"sourceType"`
}
