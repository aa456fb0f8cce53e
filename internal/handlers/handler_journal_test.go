package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ponmobiz/ponmo_books_app/internal/apperrors"
	"github.com/ponmobiz/ponmo_books_app/internal/core/coa"
	"github.com/ponmobiz/ponmo_books_app/internal/core/domain"
	portssvc "github.com/ponmobiz/ponmo_books_app/internal/core/ports/services"
	"github.com/ponmobiz/ponmo_books_app/internal/dto"
	"github.com/ponmobiz/ponmo_books_app/internal/handlers"
	"github.com/ponmobiz/ponmo_books_app/internal/platform/config"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Post(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockLedgerService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockLedgerService) ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.JournalEntry), token, args.Error(2)
}
func (m *MockLedgerService) EntriesFor(ctx context.Context, accountCode int, from time.Time, to time.Time) ([]domain.AccountActivity, error) {
	args := m.Called(ctx, accountCode, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountActivity), args.Error(1)
}
func (m *MockLedgerService) BalanceAsOf(ctx context.Context, accountCode int, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, accountCode, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockLedgerService) Reverse(ctx context.Context, entryID string, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) TrialBalance(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}
func (m *MockReportingService) ProfitAndLoss(ctx context.Context, from time.Time, to time.Time) (*domain.PAndLReport, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PAndLReport), args.Error(1)
}
func (m *MockReportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheetReport), args.Error(1)
}
func (m *MockReportingService) FinancialSummary(ctx context.Context, asOf time.Time) (*domain.FinancialSummary, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialSummary), args.Error(1)
}

var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

// --- Mock PostingService ---
type MockPostingService struct {
	mock.Mock
}

func (m *MockPostingService) RecordPurchase(ctx context.Context, req dto.PurchaseRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockPostingService) RecordProduction(ctx context.Context, req dto.ProductionRequest, creatorUserID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}
func (m *MockPostingService) RecordSale(ctx context.Context, req dto.SaleRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockPostingService) RecordExpense(ctx context.Context, req dto.ExpenseRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockPostingService) RecordVendorPayment(ctx context.Context, req dto.VendorPaymentRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockPostingService) RecordCustomerDeposit(ctx context.Context, req dto.CustomerDepositRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockPostingService) RecordDepositUsage(ctx context.Context, req dto.DepositUsageRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockPostingService) RecordPaymentReceived(ctx context.Context, req dto.PaymentReceivedRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

var _ portssvc.PostingSvcFacade = (*MockPostingService)(nil)

// --- Test Suite ---
type JournalHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockLedger    *MockLedgerService
	mockReporting *MockReportingService
	mockPosting   *MockPostingService
	jwtSecret     string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *JournalHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "ponmo-books-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *JournalHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockLedger = new(MockLedgerService)
	suite.mockReporting = new(MockReportingService)
	suite.mockPosting = new(MockPostingService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // no swagger routes in tests
	}
	services := &portssvc.ServiceContainer{
		Ledger:    suite.mockLedger,
		Reporting: suite.mockReporting,
		Posting:   suite.mockPosting,
	}
	handlers.RegisterRoutes(suite.router, cfg, coa.NewStandardRegistry(), services)
}

// doRequest performs an authenticated request against the test router.
func (suite *JournalHandlerTestSuite) doRequest(method, url, userID string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *JournalHandlerTestSuite) TestPostEntry_Success() {
	userID := uuid.NewString()
	entryDate := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	reqBody := dto.CreateEntryRequest{
		EntryDate:   entryDate,
		Description: "Bought raw skins",
		SourceType:  "PURCHASE",
		Lines: []dto.CreateLineRequest{
			{AccountCode: 1300, Debit: decimal.NewFromInt(5000)},
			{AccountCode: 1000, Credit: decimal.NewFromInt(5000)},
		},
	}
	entryID := uuid.NewString()
	posted := &domain.JournalEntry{
		EntryID:     entryID,
		EntryDate:   entryDate,
		Description: "Bought raw skins",
		SourceType:  domain.SourcePurchase,
		Status:      domain.Posted,
		Lines: []domain.LineItem{
			{LineID: uuid.NewString(), EntryID: entryID, AccountCode: 1300, Debit: decimal.NewFromInt(5000)},
			{LineID: uuid.NewString(), EntryID: entryID, AccountCode: 1000, Credit: decimal.NewFromInt(5000)},
		},
	}

	suite.mockLedger.On("Post",
		mock.AnythingOfType("*context.valueCtx"),
		mock.AnythingOfType("dto.CreateEntryRequest"),
		userID,
	).Return(posted, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/journal-entries", userID, reqBody)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.EntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(entryID, resp.EntryID)
	suite.Equal("POSTED", resp.Status)
	suite.Len(resp.Lines, 2)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestPostEntry_UnbalancedReturnsBadRequest() {
	userID := uuid.NewString()
	reqBody := dto.CreateEntryRequest{
		EntryDate:   time.Now().UTC(),
		Description: "Will not balance",
		Lines: []dto.CreateLineRequest{
			{AccountCode: 1300, Debit: decimal.NewFromInt(5000)},
			{AccountCode: 1000, Credit: decimal.NewFromInt(4000)},
		},
	}

	suite.mockLedger.On("Post",
		mock.AnythingOfType("*context.valueCtx"),
		mock.AnythingOfType("dto.CreateEntryRequest"),
		userID,
	).Return(nil, apperrors.ErrUnbalanced).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/journal-entries", userID, reqBody)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestPostEntry_RejectedWithoutToken() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/journal-entries", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "Post")
}

func (suite *JournalHandlerTestSuite) TestGetEntry_NotFound() {
	userID := uuid.NewString()
	entryID := uuid.NewString()

	suite.mockLedger.On("GetEntry",
		mock.AnythingOfType("*context.valueCtx"),
		entryID,
	).Return(nil, apperrors.ErrEntryNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/journal-entries/"+entryID, userID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestReverseEntry_ConflictWhenAlreadyReversed() {
	userID := uuid.NewString()
	entryID := uuid.NewString()

	suite.mockLedger.On("Reverse",
		mock.AnythingOfType("*context.valueCtx"),
		entryID,
		userID,
	).Return(nil, apperrors.ErrConflict).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/journal-entries/"+entryID+"/reverse", userID, nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestRecordPurchase_Created() {
	userID := uuid.NewString()
	reqBody := dto.PurchaseRequest{
		Date:          time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		Amount:        decimal.NewFromInt(20000),
		VendorName:    "Alhaji Musa",
		PaymentMethod: dto.PaymentMethodAccountsPayable,
		Reference:     "PO-0042",
	}
	posted := &domain.JournalEntry{
		EntryID:    uuid.NewString(),
		EntryDate:  reqBody.Date,
		SourceType: domain.SourcePurchase,
		Status:     domain.Posted,
	}

	suite.mockPosting.On("RecordPurchase",
		mock.AnythingOfType("*context.valueCtx"),
		mock.MatchedBy(func(r dto.PurchaseRequest) bool {
			return r.Reference == "PO-0042" && r.Amount.Equal(decimal.NewFromInt(20000))
		}),
		userID,
	).Return(posted, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/transactions/purchases", userID, reqBody)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockPosting.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestTrialBalance_IntegrityFailureWithheld() {
	userID := uuid.NewString()

	suite.mockReporting.On("TrialBalance",
		mock.AnythingOfType("*context.valueCtx"),
		mock.AnythingOfType("time.Time"),
	).Return(nil, apperrors.ErrLedgerIntegrity).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/reports/trial-balance?asOf=2025-03-31", userID, nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.mockReporting.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestJournalHandler(t *testing.T) {
	suite.Run(t, new(JournalHandlerTestSuite))
}
