package coa_test

import (
	"testing"

	"github.com/ponmobiz/ponmo_books_app/internal/apperrors"
	"github.com/ponmobiz/ponmo_books_app/internal/core/coa"
	"github.com/ponmobiz/ponmo_books_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassForCode(t *testing.T) {
	tests := []struct {
		name    string
		code    int
		want    domain.AccountClass
		wantErr bool
	}{
		{name: "asset range", code: 1300, want: domain.Asset},
		{name: "liability range", code: 2200, want: domain.Liability},
		{name: "equity range", code: 3100, want: domain.Equity},
		{name: "revenue range", code: 4000, want: domain.Revenue},
		{name: "expense range", code: 5700, want: domain.Expense},
		{name: "below reserved ranges", code: 999, wantErr: true},
		{name: "above reserved ranges", code: 6000, wantErr: true},
		{name: "zero", code: 0, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := coa.ClassForCode(tt.code)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrUnknownAccount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry_Lookup(t *testing.T) {
	reg := coa.NewStandardRegistry()

	acc, err := reg.Lookup(1320)
	require.NoError(t, err)
	assert.Equal(t, "Finished Goods Inventory", acc.Name)
	assert.Equal(t, domain.Asset, acc.Class)
	assert.Equal(t, domain.CurrentAsset, acc.Category)

	_, err = reg.Lookup(9999)
	assert.ErrorIs(t, err, apperrors.ErrUnknownAccount)
}

func TestRegistry_Classify(t *testing.T) {
	reg := coa.NewStandardRegistry()

	class, err := reg.Classify(2000)
	require.NoError(t, err)
	assert.Equal(t, domain.Liability, class)

	// 1999 is inside the asset range but not a registered account.
	_, err = reg.Classify(1999)
	assert.ErrorIs(t, err, apperrors.ErrUnknownAccount)
}

func TestRegistry_AccountsSortedAndComplete(t *testing.T) {
	reg := coa.NewStandardRegistry()
	accounts := reg.Accounts()
	require.NotEmpty(t, accounts)

	for i := 1; i < len(accounts); i++ {
		assert.Less(t, accounts[i-1].Code, accounts[i].Code, "accounts must be sorted by code")
	}

	// The class of every registered account matches its code range.
	for _, acc := range accounts {
		class, err := coa.ClassForCode(acc.Code)
		require.NoError(t, err)
		assert.Equal(t, class, acc.Class, "account %d", acc.Code)
	}
}

func TestAccountClass_DebitNormal(t *testing.T) {
	assert.True(t, domain.Asset.DebitNormal())
	assert.True(t, domain.Expense.DebitNormal())
	assert.False(t, domain.Liability.DebitNormal())
	assert.False(t, domain.Equity.DebitNormal())
	assert.False(t, domain.Revenue.DebitNormal())
}
