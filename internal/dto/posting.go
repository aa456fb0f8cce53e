package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment method values accepted by the posting endpoints. Each maps to
// the account the money moves through.
const (
	PaymentMethodCash            = "cash"             // 1000 Cash on Hand
	PaymentMethodBankTransfer    = "bank_transfer"    // 1100 Bank Accounts
	PaymentMethodCheck           = "check"            // 1100 Bank Accounts
	PaymentMethodAccountsPayable = "accounts_payable" // 2000 Accounts Payable (on credit)
)

// PurchaseRequest records buying raw cow skins from a vendor.
type PurchaseRequest struct {
	Date          time.Time       `json:"date" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	VendorName    string          `json:"vendorName" binding:"required,max=100"`
	PaymentMethod string          `json:"paymentMethod" binding:"required,oneof=cash bank_transfer check accounts_payable"`
	Reference     string          `json:"reference" binding:"required,max=100"`
	Description   string          `json:"description" binding:"max=255"`
}

// ProductionRequest records converting raw materials into finished ponmo.
type ProductionRequest struct {
	Date              time.Time       `json:"date" binding:"required"`
	RawMaterialsCost  decimal.Decimal `json:"rawMaterialsCost" binding:"required"`
	LaborCost         decimal.Decimal `json:"laborCost"`
	OverheadCost      decimal.Decimal `json:"overheadCost"`
	BatchReference    string          `json:"batchReference" binding:"required,max=100"`
	Description       string          `json:"description" binding:"max=255"`
}

// SaleRequest records selling finished ponmo to a customer.
type SaleRequest struct {
	Date          time.Time       `json:"date" binding:"required"`
	SaleAmount    decimal.Decimal `json:"saleAmount" binding:"required"`
	CostOfGoods   decimal.Decimal `json:"costOfGoods" binding:"required"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	CustomerName  string          `json:"customerName" binding:"required,max=100"`
	PaymentMethod string          `json:"paymentMethod" binding:"required,oneof=cash bank_transfer check"`
	Reference     string          `json:"reference" binding:"required,max=100"`
	Description   string          `json:"description" binding:"max=255"`
}

// ExpenseRequest records an operating cost such as rent or fuel.
type ExpenseRequest struct {
	Date          time.Time       `json:"date" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	ExpenseCode   int             `json:"expenseCode" binding:"required"`
	PaymentMethod string          `json:"paymentMethod" binding:"required,oneof=cash bank_transfer check accounts_payable"`
	Reference     string          `json:"reference" binding:"required,max=100"`
	Description   string          `json:"description" binding:"required,max=255"`
}

// VendorPaymentRequest records settling an accounts payable balance.
type VendorPaymentRequest struct {
	Date          time.Time       `json:"date" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	VendorName    string          `json:"vendorName" binding:"required,max=100"`
	PaymentMethod string          `json:"paymentMethod" binding:"required,oneof=cash bank_transfer check"`
	Reference     string          `json:"reference" binding:"required,max=100"`
}

// CustomerDepositRequest records money received before delivery.
type CustomerDepositRequest struct {
	Date          time.Time       `json:"date" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	CustomerName  string          `json:"customerName" binding:"required,max=100"`
	PaymentMethod string          `json:"paymentMethod" binding:"required,oneof=cash bank_transfer check"`
	Reference     string          `json:"reference" binding:"required,max=100"`
}

// DepositUsageRequest records applying a held deposit to a delivered sale.
type DepositUsageRequest struct {
	Date         time.Time       `json:"date" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CustomerName string          `json:"customerName" binding:"required,max=100"`
	Reference    string          `json:"reference" binding:"required,max=100"`
}

// PaymentReceivedRequest records a customer paying down receivables.
type PaymentReceivedRequest struct {
	Date          time.Time       `json:"date" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	CustomerName  string          `json:"customerName" binding:"required,max=100"`
	PaymentMethod string          `json:"paymentMethod" binding:"required,oneof=cash bank_transfer check"`
	Reference     string          `json:"reference" binding:"required,max=100"`
}
