package mapping

import (
	"github.com/ponmobiz/ponmo_books_app/internal/core/domain"
	"github.com/ponmobiz/ponmo_books_app/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:          d.EntryID,
		EntryDate:        d.EntryDate,
		Description:      d.Description,
		Reference:        d.Reference,
		SourceType:       string(d.SourceType),
		Status:           models.EntryStatus(d.Status),
		IdempotencyKey:   d.IdempotencyKey,
		OriginalEntryID:  d.OriginalEntryID,
		ReversingEntryID: d.ReversingEntryID,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:          m.EntryID,
		EntryDate:        m.EntryDate,
		Description:      m.Description,
		Reference:        m.Reference,
		SourceType:       domain.SourceType(m.SourceType),
		Status:           domain.EntryStatus(m.Status),
		IdempotencyKey:   m.IdempotencyKey,
		OriginalEntryID:  m.OriginalEntryID,
		ReversingEntryID: m.ReversingEntryID,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLineItem converts a domain LineItem to a model LineItem
func ToModelLineItem(d domain.LineItem) models.LineItem {
	return models.LineItem{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		AccountCode: d.AccountCode,
		Debit:       d.Debit,
		Credit:      d.Credit,
		Memo:        d.Memo,
	}
}

// ToDomainLineItem converts a model LineItem to a domain LineItem
func ToDomainLineItem(m models.LineItem) domain.LineItem {
	return domain.LineItem{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		AccountCode: m.AccountCode,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Memo:        m.Memo,
	}
}

// ToDomainLineItems converts a slice of model LineItems to domain LineItems
func ToDomainLineItems(ms []models.LineItem) []domain.LineItem {
	out := make([]domain.LineItem, len(ms))
	for i, m := range ms {
		out[i] = ToDomainLineItem(m)
	}
	return out
}
