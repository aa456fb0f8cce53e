package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ponmobiz/ponmo_books_app/internal/core/domain"
)

// CreateLineRequest defines one debit or credit line of a new journal entry.
type CreateLineRequest struct {
	AccountCode int             `json:"accountCode" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Memo        string          `json:"memo" binding:"max=255"`
}

// CreateEntryRequest defines the data needed to post a journal entry.
type CreateEntryRequest struct {
	EntryDate      time.Time           `json:"entryDate" binding:"required"`
	Description    string              `json:"description" binding:"required,max=255"`
	Reference      string              `json:"reference" binding:"max=100"`
	SourceType     string              `json:"sourceType" binding:"omitempty,oneof=SALE PURCHASE PRODUCTION EXPENSE PAYMENT DEPOSIT ADJUSTMENT"`
	IdempotencyKey string              `json:"idempotencyKey" binding:"max=100"`
	Lines          []CreateLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// LineResponse defines the data returned for a single entry line.
type LineResponse struct {
	LineID      string          `json:"lineID"`
	AccountCode int             `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Memo        string          `json:"memo,omitempty"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID          string         `json:"entryID"`
	EntryDate        time.Time      `json:"entryDate"`
	Description      string         `json:"description"`
	Reference        string         `json:"reference,omitempty"`
	SourceType       string         `json:"sourceType"`
	Status           string         `json:"status"`
	OriginalEntryID  *string        `json:"originalEntryID,omitempty"`
	ReversingEntryID *string        `json:"reversingEntryID,omitempty"`
	Lines            []LineResponse `json:"lines"`
	CreatedAt        time.Time      `json:"createdAt"`
	CreatedBy        string         `json:"createdBy"`
}

// ListEntriesParams defines query parameters for listing journal entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken" binding:"omitempty"`
}

// ListEntriesResponse defines the paginated journal entry listing.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// AccountActivityResponse defines one ledger line as seen from an account.
type AccountActivityResponse struct {
	LineID           string          `json:"lineID"`
	EntryID          string          `json:"entryID"`
	EntryDate        time.Time       `json:"entryDate"`
	EntryDescription string          `json:"entryDescription"`
	SourceType       string          `json:"sourceType"`
	Debit            decimal.Decimal `json:"debit"`
	Credit           decimal.Decimal `json:"credit"`
	Memo             string          `json:"memo,omitempty"`
}

// AccountBalanceResponse defines the signed balance of an account.
type AccountBalanceResponse struct {
	AccountCode int             `json:"accountCode"`
	AsOf        string          `json:"asOf"`
	Balance     decimal.Decimal `json:"balance"`
}

// ToLineResponse converts a domain.LineItem to LineResponse DTO.
func ToLineResponse(line *domain.LineItem) LineResponse {
	return LineResponse{
		LineID:      line.LineID,
		AccountCode: line.AccountCode,
		Debit:       line.Debit,
		Credit:      line.Credit,
		Memo:        line.Memo,
	}
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse DTO.
func ToEntryResponse(entry *domain.JournalEntry) EntryResponse {
	lines := make([]LineResponse, len(entry.Lines))
	for i := range entry.Lines {
		lines[i] = ToLineResponse(&entry.Lines[i])
	}
	return EntryResponse{
		EntryID:          entry.EntryID,
		EntryDate:        entry.EntryDate,
		Description:      entry.Description,
		Reference:        entry.Reference,
		SourceType:       string(entry.SourceType),
		Status:           string(entry.Status),
		OriginalEntryID:  entry.OriginalEntryID,
		ReversingEntryID: entry.ReversingEntryID,
		Lines:            lines,
		CreatedAt:        entry.CreatedAt,
		CreatedBy:        entry.CreatedBy,
	}
}

// ToEntryResponses converts a slice of domain.JournalEntry to []EntryResponse.
func ToEntryResponses(entries []domain.JournalEntry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses
}

// ToAccountActivityResponses converts domain account activity to response DTOs.
func ToAccountActivityResponses(activity []domain.AccountActivity) []AccountActivityResponse {
	responses := make([]AccountActivityResponse, len(activity))
	for i, act := range activity {
		responses[i] = AccountActivityResponse{
			LineID:           act.LineID,
			EntryID:          act.EntryID,
			EntryDate:        act.EntryDate,
			EntryDescription: act.EntryDescription,
			SourceType:       string(act.SourceType),
			Debit:            act.Debit,
			Credit:           act.Credit,
			Memo:             act.Memo,
		}
	}
	return responses
}
