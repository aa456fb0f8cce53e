package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ponmobiz/ponmo_books_app/internal/apperrors"
	"github.com/ponmobiz/ponmo_books_app/internal/core/coa"
	"github.com/ponmobiz/ponmo_books_app/internal/core/domain"
	portssvc "github.com/ponmobiz/ponmo_books_app/internal/core/ports/services"
	"github.com/ponmobiz/ponmo_books_app/internal/dto"
)

// Account codes the posting rules wire business events to.
const (
	cashOnHandCode        = 1000
	bankAccountsCode      = 1100
	accountsReceivableCode = 1200
	rawMaterialsCode      = 1300
	wipInventoryCode      = 1310
	finishedGoodsCode     = 1320
	accountsPayableCode   = 2000
	customerDepositsCode  = 2200
	salesRevenueCode      = 4000
	cogsCode              = 5000
	directLaborCode       = 5200
	overheadCode          = 5300
)

// postingService turns business events (purchases, production runs, sales,
// expenses, payments) into balanced journal entries and posts them through
// the ledger service.
type postingService struct {
	registry  *coa.Registry
	ledgerSvc portssvc.LedgerSvcFacade
}

// NewPostingService creates a new PostingService.
func NewPostingService(ledgerSvc portssvc.LedgerSvcFacade, registry *coa.Registry) portssvc.PostingSvcFacade {
	return &postingService{
		registry:  registry,
		ledgerSvc: ledgerSvc,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// paymentAccount resolves a payment method string to the account the money
// moves through.
func paymentAccount(method string) (int, error) {
	switch method {
	case dto.PaymentMethodCash:
		return cashOnHandCode, nil
	case dto.PaymentMethodBankTransfer, dto.PaymentMethodCheck:
		return bankAccountsCode, nil
	case dto.PaymentMethodAccountsPayable:
		return accountsPayableCode, nil
	default:
		return 0, fmt.Errorf("unknown payment method %q: %w", method, apperrors.ErrValidation)
	}
}

func requirePositive(name string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%s must be positive: %w", name, apperrors.ErrValidation)
	}
	return nil
}

// RecordPurchase posts the acquisition of raw cow skins: debit raw
// materials inventory, credit the payment account.
func (s *postingService) RecordPurchase(ctx context.Context, req dto.PurchaseRequest, creatorUserID string) (*domain.JournalEntry, error) {
	if err := requirePositive("amount", req.Amount); err != nil {
		return nil, err
	}
	creditAccount, err := paymentAccount(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Raw material purchase from %s", req.VendorName)
	}

	return s.ledgerSvc.Post(ctx, dto.CreateEntryRequest{
		EntryDate:      req.Date,
		Description:    description,
		Reference:      req.Reference,
		SourceType:     string(domain.SourcePurchase),
		IdempotencyKey: "purchase:" + req.Reference,
		Lines: []dto.CreateLineRequest{
			{AccountCode: rawMaterialsCode, Debit: req.Amount, Memo: "Raw cow skins"},
			{AccountCode: creditAccount, Credit: req.Amount, Memo: "Payment to " + req.VendorName},
		},
	}, creatorUserID)
}

// RecordProduction posts a production batch as two entries: raw materials
// plus conversion costs move into work in process, then the full batch cost
// moves from work in process to finished goods.
func (s *postingService) RecordProduction(ctx context.Context, req dto.ProductionRequest, creatorUserID string) ([]domain.JournalEntry, error) {
	if err := requirePositive("rawMaterialsCost", req.RawMaterialsCost); err != nil {
		return nil, err
	}
	if req.LaborCost.IsNegative() || req.OverheadCost.IsNegative() {
		return nil, fmt.Errorf("conversion costs cannot be negative: %w", apperrors.ErrValidation)
	}

	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Production batch %s", req.BatchReference)
	}
	batchCost := req.RawMaterialsCost.Add(req.LaborCost).Add(req.OverheadCost)

	intoWIP := []dto.CreateLineRequest{
		{AccountCode: wipInventoryCode, Debit: batchCost, Memo: "Batch into process"},
		{AccountCode: rawMaterialsCode, Credit: req.RawMaterialsCost, Memo: "Materials consumed"},
	}
	if req.LaborCost.IsPositive() {
		intoWIP = append(intoWIP, dto.CreateLineRequest{AccountCode: directLaborCode, Credit: req.LaborCost, Memo: "Labor applied"})
	}
	if req.OverheadCost.IsPositive() {
		intoWIP = append(intoWIP, dto.CreateLineRequest{AccountCode: overheadCode, Credit: req.OverheadCost, Memo: "Overhead applied"})
	}

	first, err := s.ledgerSvc.Post(ctx, dto.CreateEntryRequest{
		EntryDate:      req.Date,
		Description:    description + " (into process)",
		Reference:      req.BatchReference,
		SourceType:     string(domain.SourceProduction),
		IdempotencyKey: "production-wip:" + req.BatchReference,
		Lines:          intoWIP,
	}, creatorUserID)
	if err != nil {
		return nil, err
	}

	second, err := s.ledgerSvc.Post(ctx, dto.CreateEntryRequest{
		EntryDate:      req.Date,
		Description:    description + " (completed)",
		Reference:      req.BatchReference,
		SourceType:     string(domain.SourceProduction),
		IdempotencyKey: "production-fg:" + req.BatchReference,
		Lines: []dto.CreateLineRequest{
			{AccountCode: finishedGoodsCode, Debit: batchCost, Memo: "Finished ponmo"},
			{AccountCode: wipInventoryCode, Credit: batchCost, Memo: "Batch completed"},
		},
	}, creatorUserID)
	if err != nil {
		return nil, fmt.Errorf("batch completion entry failed after process entry %s: %w", first.EntryID, err)
	}

	return []domain.JournalEntry{*first, *second}, nil
}

// RecordSale posts a sale of finished goods in a single entry: payment and
// receivable on the debit side, revenue on the credit side, plus the cost of
// goods relief from finished goods inventory. A payment above the sale amount
// parks the excess in customer deposits.
func (s *postingService) RecordSale(ctx context.Context, req dto.SaleRequest, creatorUserID string) (*domain.JournalEntry, error) {
	if err := requirePositive("saleAmount", req.SaleAmount); err != nil {
		return nil, err
	}
	if err := requirePositive("costOfGoods", req.CostOfGoods); err != nil {
		return nil, err
	}
	if req.AmountPaid.IsNegative() {
		return nil, fmt.Errorf("amountPaid cannot be negative: %w", apperrors.ErrValidation)
	}
	paymentCode, err := paymentAccount(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Sale to %s", req.CustomerName)
	}

	lines := []dto.CreateLineRequest{}
	if req.AmountPaid.IsPositive() {
		lines = append(lines, dto.CreateLineRequest{AccountCode: paymentCode, Debit: req.AmountPaid, Memo: "Payment received"})
	}
	switch {
	case req.AmountPaid.LessThan(req.SaleAmount):
		outstanding := req.SaleAmount.Sub(req.AmountPaid)
		lines = append(lines, dto.CreateLineRequest{AccountCode: accountsReceivableCode, Debit: outstanding, Memo: "Owed by " + req.CustomerName})
	case req.AmountPaid.GreaterThan(req.SaleAmount):
		excess := req.AmountPaid.Sub(req.SaleAmount)
		lines = append(lines, dto.CreateLineRequest{AccountCode: customerDepositsCode, Credit: excess, Memo: "Overpayment held for " + req.CustomerName})
	}
	lines = append(lines,
		dto.CreateLineRequest{AccountCode: salesRevenueCode, Credit: req.SaleAmount, Memo: "Ponmo sale"},
		dto.CreateLineRequest{AccountCode: cogsCode, Debit: req.CostOfGoods, Memo: "Cost of goods sold"},
		dto.CreateLineRequest{AccountCode: finishedGoodsCode, Credit: req.CostOfGoods, Memo: "Inventory relieved"},
	)

	return s.ledgerSvc.Post(ctx, dto.CreateEntryRequest{
		EntryDate:      req.Date,
		Description:    description,
		Reference:      req.Reference,
		SourceType:     string(domain.SourceSale),
		IdempotencyKey: "sale:" + req.Reference,
		Lines:          lines,
	}, creatorUserID)
}

// RecordExpense posts an operating cost against the named expense account.
func (s *postingService) RecordExpense(ctx context.Context, req dto.ExpenseRequest, creatorUserID string) (*domain.JournalEntry, error) {
	if err := requirePositive("amount", req.Amount); err != nil {
		return nil, err
	}
	expenseAccount, err := s.registry.Lookup(req.ExpenseCode)
	if err != nil {
		return nil, err
	}
	if expenseAccount.Class != domain.Expense {
		return nil, fmt.Errorf("account %d (%s) is not an expense account: %w", req.ExpenseCode, expenseAccount.Name, apperrors.ErrValidation)
	}
	creditAccount, err := paymentAccount(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	return s.ledgerSvc.Post(ctx, dto.CreateEntryRequest{
		EntryDate:      req.Date,
		Description:    req.Description,
		Reference:      req.Reference,
		SourceType:     string(domain.SourceExpense),
		IdempotencyKey: "expense:" + req.Reference,
		Lines: []dto.CreateLineRequest{
			{AccountCode: req.ExpenseCode, Debit: req.Amount},
			{AccountCode: creditAccount, Credit: req.Amount},
		},
	}, creatorUserID)
}

// RecordVendorPayment posts settlement of an accounts payable balance:
// debit accounts payable, credit the payment account.
func (s *postingService) RecordVendorPayment(ctx context.Context, req dto.VendorPaymentRequest, creatorUserID string) (*domain.JournalEntry, error) {
	if err := requirePositive("amount", req.Amount); err != nil {
		return nil, err
	}
	creditAccount, err := paymentAccount(req.PaymentMethod)
	if err != nil {
		return nil, err
	}
	if creditAccount == accountsPayableCode {
		return nil, fmt.Errorf("vendor payment cannot be made on credit: %w", apperrors.ErrValidation)
	}

	return s.ledgerSvc.Post(ctx, dto.CreateEntryRequest{
		EntryDate:      req.Date,
		Description:    fmt.Sprintf("Payment to vendor %s", req.VendorName),
		Reference:      req.Reference,
		SourceType:     string(domain.SourcePayment),
		IdempotencyKey: "vendor-payment:" + req.Reference,
		Lines: []dto.CreateLineRequest{
			{AccountCode: accountsPayableCode, Debit: req.Amount, Memo: "Settle " + req.VendorName},
			{AccountCode: creditAccount, Credit: req.Amount},
		},
	}, creatorUserID)
}

// RecordCustomerDeposit posts money received before delivery as a liability.
func (s *postingService) RecordCustomerDeposit(ctx context.Context, req dto.CustomerDepositRequest, creatorUserID string) (*domain.JournalEntry, error) {
	if err := requirePositive("amount", req.Amount); err != nil {
		return nil, err
	}
	debitAccount, err := paymentAccount(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	return s.ledgerSvc.Post(ctx, dto.CreateEntryRequest{
		EntryDate:      req.Date,
		Description:    fmt.Sprintf("Deposit from %s", req.CustomerName),
		Reference:      req.Reference,
		SourceType:     string(domain.SourceDeposit),
		IdempotencyKey: "deposit:" + req.Reference,
		Lines: []dto.CreateLineRequest{
			{AccountCode: debitAccount, Debit: req.Amount},
			{AccountCode: customerDepositsCode, Credit: req.Amount, Memo: "Held for " + req.CustomerName},
		},
	}, creatorUserID)
}

// RecordDepositUsage posts applying a held customer deposit against that
// customer's receivable: the liability is released and the AR offset. Revenue
// and cost were already recognized by the sale that raised the receivable.
func (s *postingService) RecordDepositUsage(ctx context.Context, req dto.DepositUsageRequest, creatorUserID string) (*domain.JournalEntry, error) {
	if err := requirePositive("amount", req.Amount); err != nil {
		return nil, err
	}

	return s.ledgerSvc.Post(ctx, dto.CreateEntryRequest{
		EntryDate:      req.Date,
		Description:    fmt.Sprintf("Deposit applied for %s", req.CustomerName),
		Reference:      req.Reference,
		SourceType:     string(domain.SourceDeposit),
		IdempotencyKey: "deposit-usage:" + req.Reference,
		Lines: []dto.CreateLineRequest{
			{AccountCode: customerDepositsCode, Debit: req.Amount, Memo: "Deposit released"},
			{AccountCode: accountsReceivableCode, Credit: req.Amount, Memo: "Receivable settled"},
		},
	}, creatorUserID)
}

// RecordPaymentReceived posts a customer paying down their receivable.
func (s *postingService) RecordPaymentReceived(ctx context.Context, req dto.PaymentReceivedRequest, creatorUserID string) (*domain.JournalEntry, error) {
	if err := requirePositive("amount", req.Amount); err != nil {
		return nil, err
	}
	debitAccount, err := paymentAccount(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	return s.ledgerSvc.Post(ctx, dto.CreateEntryRequest{
		EntryDate:      req.Date,
		Description:    fmt.Sprintf("Payment received from %s", req.CustomerName),
		Reference:      req.Reference,
		SourceType:     string(domain.SourcePayment),
		IdempotencyKey: "payment-received:" + req.Reference,
		Lines: []dto.CreateLineRequest{
			{AccountCode: debitAccount, Debit: req.Amount},
			{AccountCode: accountsReceivableCode, Credit: req.Amount, Memo: "From " + req.CustomerName},
		},
	}, creatorUserID)
}
