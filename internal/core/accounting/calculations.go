// Package accounting holds the pure double-entry arithmetic shared by the
// ledger service and the statement generator. All functions are deterministic
// and side-effect free.
package accounting

import (
	"fmt"

	"github.com/ponmobiz/ponmo_books_app/internal/apperrors"
	"github.com/ponmobiz/ponmo_books_app/internal/core/coa"
	"github.com/ponmobiz/ponmo_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// maxCurrencyPlaces is the smallest currency unit: amounts carry at most two
// decimal places, with no rounding tolerance beyond that.
const maxCurrencyPlaces = 2

// ValidateLines checks a proposed set of line items against the chart of
// accounts and the double-entry invariants. It returns nil only when the
// lines form a postable journal entry.
func ValidateLines(reg *coa.Registry, lines []domain.LineItem) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: got %d", apperrors.ErrInsufficientLines, len(lines))
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero

	for i, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrMalformedLine, i)
		}
		hasDebit := !line.Debit.IsZero()
		hasCredit := !line.Credit.IsZero()
		if hasDebit == hasCredit {
			return fmt.Errorf("%w: line %d must have exactly one of debit or credit", apperrors.ErrMalformedLine, i)
		}
		if hasFractionBeyond(line.Debit) || hasFractionBeyond(line.Credit) {
			return fmt.Errorf("%w: line %d exceeds %d decimal places", apperrors.ErrMalformedLine, i, maxCurrencyPlaces)
		}
		if !reg.Exists(line.AccountCode) {
			return fmt.Errorf("%w: line %d references code %d", apperrors.ErrInvalidAccount, i, line.AccountCode)
		}
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}

	if !totalDebit.Equal(totalCredit) {
		return fmt.Errorf("%w: debits %s, credits %s",
			apperrors.ErrUnbalanced, totalDebit.String(), totalCredit.String())
	}
	return nil
}

// hasFractionBeyond reports whether the amount carries a nonzero fraction
// past the smallest currency unit. Trailing-zero representations like 10.100
// are fine; 10.001 is not.
func hasFractionBeyond(amount decimal.Decimal) bool {
	return !amount.Equal(amount.Round(maxCurrencyPlaces))
}

// SignedAmount applies the normal-balance sign convention to a line:
// debit-normal accounts (Asset, Expense) report debit minus credit,
// credit-normal accounts (Liability, Equity, Revenue) report credit minus debit.
func SignedAmount(line domain.LineItem, class domain.AccountClass) (decimal.Decimal, error) {
	switch class {
	case domain.Asset, domain.Expense:
		return line.Debit.Sub(line.Credit), nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return line.Credit.Sub(line.Debit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account class %q for account %d", class, line.AccountCode)
	}
}

// EntryTotals returns the debit and credit sums across lines.
func EntryTotals(lines []domain.LineItem) (debit, credit decimal.Decimal) {
	debit = decimal.Zero
	credit = decimal.Zero
	for _, line := range lines {
		debit = debit.Add(line.Debit)
		credit = credit.Add(line.Credit)
	}
	return debit, credit
}

// ReversalLines builds the lines of a correcting entry by swapping each
// original line's debit and credit amounts. The original is not modified.
func ReversalLines(original []domain.LineItem) []domain.LineItem {
	reversed := make([]domain.LineItem, len(original))
	for i, line := range original {
		reversed[i] = domain.LineItem{
			AccountCode: line.AccountCode,
			Debit:       line.Credit,
			Credit:      line.Debit,
			Memo:        line.Memo,
		}
	}
	return reversed
}
