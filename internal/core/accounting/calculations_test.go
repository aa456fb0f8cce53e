package accounting_test

import (
	"testing"

	"github.com/ponmobiz/ponmo_books_app/internal/apperrors"
	"github.com/ponmobiz/ponmo_books_app/internal/core/accounting"
	"github.com/ponmobiz/ponmo_books_app/internal/core/coa"
	"github.com/ponmobiz/ponmo_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func debitLine(code int, amount string) domain.LineItem {
	return domain.LineItem{AccountCode: code, Debit: dec(amount), Credit: decimal.Zero}
}

func creditLine(code int, amount string) domain.LineItem {
	return domain.LineItem{AccountCode: code, Debit: decimal.Zero, Credit: dec(amount)}
}

func TestValidateLines(t *testing.T) {
	reg := coa.NewStandardRegistry()

	tests := []struct {
		name    string
		lines   []domain.LineItem
		wantErr error
	}{
		{
			name:  "balanced purchase entry",
			lines: []domain.LineItem{debitLine(1300, "1000"), creditLine(2000, "1000")},
		},
		{
			name: "balanced multi-line sale",
			lines: []domain.LineItem{
				debitLine(1200, "1500"),
				creditLine(4000, "1500"),
				debitLine(5000, "1200"),
				creditLine(1320, "1200"),
			},
		},
		{
			name:    "unbalanced sums",
			lines:   []domain.LineItem{debitLine(1300, "1000"), creditLine(2000, "900")},
			wantErr: apperrors.ErrUnbalanced,
		},
		{
			name:    "fewer than two lines",
			lines:   []domain.LineItem{debitLine(1300, "1000")},
			wantErr: apperrors.ErrInsufficientLines,
		},
		{
			name:    "no lines",
			lines:   nil,
			wantErr: apperrors.ErrInsufficientLines,
		},
		{
			name: "line with both debit and credit",
			lines: []domain.LineItem{
				{AccountCode: 1300, Debit: dec("100"), Credit: dec("100")},
				creditLine(2000, "0"),
			},
			wantErr: apperrors.ErrMalformedLine,
		},
		{
			name:    "line with neither debit nor credit",
			lines:   []domain.LineItem{debitLine(1300, "100"), {AccountCode: 2000}},
			wantErr: apperrors.ErrMalformedLine,
		},
		{
			name:    "negative amount",
			lines:   []domain.LineItem{debitLine(1300, "-100"), creditLine(2000, "-100")},
			wantErr: apperrors.ErrMalformedLine,
		},
		{
			name:    "more than two decimal places",
			lines:   []domain.LineItem{debitLine(1300, "10.005"), creditLine(2000, "10.005")},
			wantErr: apperrors.ErrMalformedLine,
		},
		{
			name:  "trailing zero past two places is still two places",
			lines: []domain.LineItem{debitLine(1300, "10.100"), creditLine(2000, "10.10")},
		},
		{
			name:    "unregistered account code",
			lines:   []domain.LineItem{debitLine(1301, "100"), creditLine(2000, "100")},
			wantErr: apperrors.ErrInvalidAccount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := accounting.ValidateLines(reg, tt.lines)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateLines_Deterministic(t *testing.T) {
	reg := coa.NewStandardRegistry()
	lines := []domain.LineItem{debitLine(1300, "250.50"), creditLine(1000, "250.50")}
	for i := 0; i < 3; i++ {
		assert.NoError(t, accounting.ValidateLines(reg, lines))
	}
}

func TestSignedAmount(t *testing.T) {
	debit := debitLine(1300, "1000")
	credit := creditLine(2000, "1000")

	got, err := accounting.SignedAmount(debit, domain.Asset)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("1000")))

	got, err = accounting.SignedAmount(debit, domain.Liability)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("-1000")))

	got, err = accounting.SignedAmount(credit, domain.Liability)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("1000")))

	got, err = accounting.SignedAmount(credit, domain.Expense)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("-1000")))

	_, err = accounting.SignedAmount(debit, domain.AccountClass("BOGUS"))
	assert.Error(t, err)
}

func TestReversalLines(t *testing.T) {
	original := []domain.LineItem{debitLine(1300, "1000"), creditLine(2000, "1000")}
	reversed := accounting.ReversalLines(original)

	require.Len(t, reversed, 2)
	assert.True(t, reversed[0].Credit.Equal(dec("1000")))
	assert.True(t, reversed[0].Debit.IsZero())
	assert.True(t, reversed[1].Debit.Equal(dec("1000")))
	assert.True(t, reversed[1].Credit.IsZero())

	// Original is untouched.
	assert.True(t, original[0].Debit.Equal(dec("1000")))
	assert.True(t, original[0].Credit.IsZero())

	// Reversal of a reversal restores the original amounts.
	roundTrip := accounting.ReversalLines(reversed)
	debit, credit := accounting.EntryTotals(roundTrip)
	assert.True(t, debit.Equal(dec("1000")))
	assert.True(t, credit.Equal(dec("1000")))
	assert.True(t, roundTrip[0].Debit.Equal(original[0].Debit))
}

func TestEntryTotals(t *testing.T) {
	lines := []domain.LineItem{
		debitLine(1200, "1500"),
		creditLine(4000, "1500"),
		debitLine(5000, "1200"),
		creditLine(1320, "1200"),
	}
	debit, credit := accounting.EntryTotals(lines)
	assert.True(t, debit.Equal(dec("2700")))
	assert.True(t, credit.Equal(dec("2700")))
}
