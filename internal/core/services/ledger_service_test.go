package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ponmobiz/ponmo_books_app/internal/apperrors"
	"github.com/ponmobiz/ponmo_books_app/internal/core/coa"
	"github.com/ponmobiz/ponmo_books_app/internal/core/domain"
	portsrepo "github.com/ponmobiz/ponmo_books_app/internal/core/ports/repositories"
	portssvc "github.com/ponmobiz/ponmo_books_app/internal/core/ports/services"
	"github.com/ponmobiz/ponmo_books_app/internal/core/services"
	"github.com/ponmobiz/ponmo_books_app/internal/dto"
)

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindEntryByIdempotencyKey(ctx context.Context, key string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedToken, args.Error(2)
}

func (m *MockLedgerRepository) AppendEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) AppendReversal(ctx context.Context, reversing domain.JournalEntry, originalEntryID string) error {
	args := m.Called(ctx, reversing, originalEntryID)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.LineItem, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LineItem), args.Error(1)
}

func (m *MockLedgerRepository) ListAccountActivity(ctx context.Context, accountCode int, from, to time.Time) ([]domain.AccountActivity, error) {
	args := m.Called(ctx, accountCode, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountActivity), args.Error(1)
}

func (m *MockLedgerRepository) SumAccountAsOf(ctx context.Context, accountCode int, asOf time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, accountCode, asOf)
	if args.Get(0) == nil {
		return decimal.Zero, decimal.Zero, args.Error(2)
	}
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

// --- Test Suite Setup ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo *MockLedgerRepository
	service        portssvc.LedgerSvcFacade
	userID         string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewLedgerService(suite.mockLedgerRepo, coa.NewStandardRegistry())
	suite.userID = uuid.NewString()
}

func balancedRequest() dto.CreateEntryRequest {
	return dto.CreateEntryRequest{
		EntryDate:   time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Description: "Purchase of raw cow skins",
		Reference:   "PO-042",
		SourceType:  string(domain.SourcePurchase),
		Lines: []dto.CreateLineRequest{
			{AccountCode: 1300, Debit: decimal.NewFromInt(1000)},
			{AccountCode: 2000, Credit: decimal.NewFromInt(1000)},
		},
	}
}

// --- Test Cases ---

func (suite *LedgerServiceTestSuite) TestPost_Success() {
	ctx := context.Background()
	req := balancedRequest()

	suite.mockLedgerRepo.On("AppendEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()

	entry, err := suite.service.Post(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.Equal(domain.Posted, entry.Status)
	suite.Equal(domain.SourcePurchase, entry.SourceType)
	suite.Equal(suite.userID, entry.CreatedBy)
	suite.Len(entry.Lines, 2)
	for _, line := range entry.Lines {
		suite.Equal(entry.EntryID, line.EntryID)
		suite.NotEmpty(line.LineID)
	}
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPost_UnbalancedLeavesLedgerUntouched() {
	ctx := context.Background()
	req := balancedRequest()
	req.Lines[1].Credit = decimal.NewFromInt(999)

	_, err := suite.service.Post(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnbalanced)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "AppendEntry", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPost_UnknownAccountRejected() {
	ctx := context.Background()
	req := balancedRequest()
	req.Lines[0].AccountCode = 1301

	_, err := suite.service.Post(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidAccount)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "AppendEntry", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPost_IdempotentRetryReturnsExisting() {
	ctx := context.Background()
	req := balancedRequest()
	req.IdempotencyKey = "purchase:PO-042"
	existing := &domain.JournalEntry{EntryID: uuid.NewString(), Status: domain.Posted}

	suite.mockLedgerRepo.On("FindEntryByIdempotencyKey", ctx, req.IdempotencyKey).Return(existing, nil).Once()

	entry, err := suite.service.Post(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(existing.EntryID, entry.EntryID)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "AppendEntry", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPost_DuplicateRaceFallsBackToStoredEntry() {
	ctx := context.Background()
	req := balancedRequest()
	req.IdempotencyKey = "purchase:PO-042"
	stored := &domain.JournalEntry{EntryID: uuid.NewString(), Status: domain.Posted}

	suite.mockLedgerRepo.On("FindEntryByIdempotencyKey", ctx, req.IdempotencyKey).Return(nil, apperrors.ErrEntryNotFound).Once()
	suite.mockLedgerRepo.On("AppendEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(apperrors.ErrDuplicate).Once()
	suite.mockLedgerRepo.On("FindEntryByIdempotencyKey", ctx, req.IdempotencyKey).Return(stored, nil).Once()

	entry, err := suite.service.Post(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(stored.EntryID, entry.EntryID)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestBalanceAsOf_DebitNormal() {
	ctx := context.Background()
	asOf := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockLedgerRepo.On("SumAccountAsOf", ctx, 1000, asOf).
		Return(decimal.NewFromInt(5000), decimal.NewFromInt(1200), nil).Once()

	balance, err := suite.service.BalanceAsOf(ctx, 1000, asOf)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(3800)))
}

func (suite *LedgerServiceTestSuite) TestBalanceAsOf_CreditNormal() {
	ctx := context.Background()
	asOf := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockLedgerRepo.On("SumAccountAsOf", ctx, 2000, asOf).
		Return(decimal.NewFromInt(400), decimal.NewFromInt(1000), nil).Once()

	balance, err := suite.service.BalanceAsOf(ctx, 2000, asOf)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(600)))
}

func (suite *LedgerServiceTestSuite) TestBalanceAsOf_UnknownAccount() {
	ctx := context.Background()

	_, err := suite.service.BalanceAsOf(ctx, 9999, time.Now())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnknownAccount)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SumAccountAsOf", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestReverse_Success() {
	ctx := context.Background()
	originalID := uuid.NewString()
	original := &domain.JournalEntry{
		EntryID:     originalID,
		Description: "Purchase of raw cow skins",
		SourceType:  domain.SourcePurchase,
		Status:      domain.Posted,
	}
	lines := []domain.LineItem{
		{LineID: uuid.NewString(), EntryID: originalID, AccountCode: 1300, Debit: decimal.NewFromInt(1000), Credit: decimal.Zero},
		{LineID: uuid.NewString(), EntryID: originalID, AccountCode: 2000, Debit: decimal.Zero, Credit: decimal.NewFromInt(1000)},
	}

	suite.mockLedgerRepo.On("FindEntryByID", ctx, originalID).Return(original, nil).Once()
	suite.mockLedgerRepo.On("FindLinesByEntryID", ctx, originalID).Return(lines, nil).Once()
	suite.mockLedgerRepo.On("AppendReversal", ctx, mock.AnythingOfType("domain.JournalEntry"), originalID).Return(nil).Once()

	reversing, err := suite.service.Reverse(ctx, originalID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reversing)
	suite.Equal(domain.SourceReversal, reversing.SourceType)
	suite.Equal("Reversal of: Purchase of raw cow skins", reversing.Description)
	suite.Require().NotNil(reversing.OriginalEntryID)
	suite.Equal(originalID, *reversing.OriginalEntryID)
	suite.Require().Len(reversing.Lines, 2)
	// Debits and credits swap sides.
	suite.True(reversing.Lines[0].Credit.Equal(decimal.NewFromInt(1000)))
	suite.True(reversing.Lines[0].Debit.IsZero())
	suite.True(reversing.Lines[1].Debit.Equal(decimal.NewFromInt(1000)))
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestReverse_NotFound() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockLedgerRepo.On("FindEntryByID", ctx, entryID).Return(nil, apperrors.ErrEntryNotFound).Once()

	_, err := suite.service.Reverse(ctx, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrEntryNotFound)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "AppendReversal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestReverse_AlreadyReversed() {
	ctx := context.Background()
	entryID := uuid.NewString()
	original := &domain.JournalEntry{EntryID: entryID, SourceType: domain.SourcePurchase, Status: domain.Reversed}

	suite.mockLedgerRepo.On("FindEntryByID", ctx, entryID).Return(original, nil).Once()

	_, err := suite.service.Reverse(ctx, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *LedgerServiceTestSuite) TestReverse_ReversalEntryRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	original := &domain.JournalEntry{EntryID: entryID, SourceType: domain.SourceReversal, Status: domain.Posted}

	suite.mockLedgerRepo.On("FindEntryByID", ctx, entryID).Return(original, nil).Once()

	_, err := suite.service.Reverse(ctx, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *LedgerServiceTestSuite) TestEntriesFor_InvalidPeriod() {
	ctx := context.Background()
	from := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := suite.service.EntriesFor(ctx, 1000, from, to)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Run Test Suite ---
func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
