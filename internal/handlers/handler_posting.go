package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ponmobiz/ponmo_books_app/internal/apperrors"
	portssvc "github.com/ponmobiz/ponmo_books_app/internal/core/ports/services"
	"github.com/ponmobiz/ponmo_books_app/internal/dto"
	"github.com/ponmobiz/ponmo_books_app/internal/middleware"
)

// postingHandler handles HTTP requests recording business transactions.
type postingHandler struct {
	postingSvc portssvc.PostingSvcFacade
}

func newPostingHandler(postingSvc portssvc.PostingSvcFacade) *postingHandler {
	return &postingHandler{postingSvc: postingSvc}
}

// registerPostingRoutes registers the business transaction routes
func registerPostingRoutes(rg *gin.RouterGroup, postingSvc portssvc.PostingSvcFacade) {
	h := newPostingHandler(postingSvc)

	txnGroup := rg.Group("/transactions")
	{
		txnGroup.POST("/purchases", h.recordPurchase)
		txnGroup.POST("/production", h.recordProduction)
		txnGroup.POST("/sales", h.recordSale)
		txnGroup.POST("/expenses", h.recordExpense)
		txnGroup.POST("/vendor-payments", h.recordVendorPayment)
		txnGroup.POST("/customer-deposits", h.recordCustomerDeposit)
		txnGroup.POST("/deposit-usages", h.recordDepositUsage)
		txnGroup.POST("/payments-received", h.recordPaymentReceived)
	}
}

// respondPostingError maps posting failures to HTTP statuses.
func respondPostingError(c *gin.Context, logger *slog.Logger, action string, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrUnbalanced),
		errors.Is(err, apperrors.ErrMalformedLine),
		errors.Is(err, apperrors.ErrInsufficientLines),
		errors.Is(err, apperrors.ErrInvalidAccount),
		errors.Is(err, apperrors.ErrUnknownAccount):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrStorageUnavailable):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Storage unavailable, retry with the same reference"})
	default:
		logger.Error("Failed to record transaction", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to record " + action})
	}
}

// bindPostingRequest binds the JSON body and resolves the acting user.
// Returns false after writing the error response when either fails.
func bindPostingRequest(c *gin.Context, req interface{}) (string, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", false
	}

	if err := c.ShouldBindJSON(req); err != nil {
		logger.Warn("Invalid transaction request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return "", false
	}

	return userID, true
}

// recordPurchase godoc
// @Summary Record a raw material purchase
// @Description Posts a purchase of raw cow skins from a vendor
// @Tags transactions
// @Accept json
// @Produce json
// @Param purchase body dto.PurchaseRequest true "Purchase details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /transactions/purchases [post]
func (h *postingHandler) recordPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PurchaseRequest
	userID, ok := bindPostingRequest(c, &req)
	if !ok {
		return
	}

	entry, err := h.postingSvc.RecordPurchase(c.Request.Context(), req, userID)
	if err != nil {
		respondPostingError(c, logger, "purchase", err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// recordProduction godoc
// @Summary Record a production batch
// @Description Posts raw materials into process and the completed batch into finished goods
// @Tags transactions
// @Accept json
// @Produce json
// @Param production body dto.ProductionRequest true "Production batch details"
// @Success 201 {array} dto.EntryResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /transactions/production [post]
func (h *postingHandler) recordProduction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ProductionRequest
	userID, ok := bindPostingRequest(c, &req)
	if !ok {
		return
	}

	entries, err := h.postingSvc.RecordProduction(c.Request.Context(), req, userID)
	if err != nil {
		respondPostingError(c, logger, "production batch", err)
		return
	}

	responses := make([]dto.EntryResponse, len(entries))
	for i := range entries {
		responses[i] = dto.ToEntryResponse(&entries[i])
	}
	c.JSON(http.StatusCreated, responses)
}

// recordSale godoc
// @Summary Record a sale
// @Description Posts a sale of finished ponmo including payment, receivable and cost of goods
// @Tags transactions
// @Accept json
// @Produce json
// @Param sale body dto.SaleRequest true "Sale details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /transactions/sales [post]
func (h *postingHandler) recordSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SaleRequest
	userID, ok := bindPostingRequest(c, &req)
	if !ok {
		return
	}

	entry, err := h.postingSvc.RecordSale(c.Request.Context(), req, userID)
	if err != nil {
		respondPostingError(c, logger, "sale", err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// recordExpense godoc
// @Summary Record an operating expense
// @Description Posts an operating cost against the named expense account
// @Tags transactions
// @Accept json
// @Produce json
// @Param expense body dto.ExpenseRequest true "Expense details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /transactions/expenses [post]
func (h *postingHandler) recordExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ExpenseRequest
	userID, ok := bindPostingRequest(c, &req)
	if !ok {
		return
	}

	entry, err := h.postingSvc.RecordExpense(c.Request.Context(), req, userID)
	if err != nil {
		respondPostingError(c, logger, "expense", err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// recordVendorPayment godoc
// @Summary Record a vendor payment
// @Description Posts settlement of an accounts payable balance
// @Tags transactions
// @Accept json
// @Produce json
// @Param payment body dto.VendorPaymentRequest true "Vendor payment details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /transactions/vendor-payments [post]
func (h *postingHandler) recordVendorPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.VendorPaymentRequest
	userID, ok := bindPostingRequest(c, &req)
	if !ok {
		return
	}

	entry, err := h.postingSvc.RecordVendorPayment(c.Request.Context(), req, userID)
	if err != nil {
		respondPostingError(c, logger, "vendor payment", err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// recordCustomerDeposit godoc
// @Summary Record a customer deposit
// @Description Posts money received before delivery as a customer deposit liability
// @Tags transactions
// @Accept json
// @Produce json
// @Param deposit body dto.CustomerDepositRequest true "Deposit details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /transactions/customer-deposits [post]
func (h *postingHandler) recordCustomerDeposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CustomerDepositRequest
	userID, ok := bindPostingRequest(c, &req)
	if !ok {
		return
	}

	entry, err := h.postingSvc.RecordCustomerDeposit(c.Request.Context(), req, userID)
	if err != nil {
		respondPostingError(c, logger, "customer deposit", err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// recordDepositUsage godoc
// @Summary Apply a held deposit to a delivery
// @Description Releases a customer deposit into revenue and relieves inventory
// @Tags transactions
// @Accept json
// @Produce json
// @Param usage body dto.DepositUsageRequest true "Deposit usage details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /transactions/deposit-usages [post]
func (h *postingHandler) recordDepositUsage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.DepositUsageRequest
	userID, ok := bindPostingRequest(c, &req)
	if !ok {
		return
	}

	entry, err := h.postingSvc.RecordDepositUsage(c.Request.Context(), req, userID)
	if err != nil {
		respondPostingError(c, logger, "deposit usage", err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// recordPaymentReceived godoc
// @Summary Record a payment received
// @Description Posts a customer paying down their receivable balance
// @Tags transactions
// @Accept json
// @Produce json
// @Param payment body dto.PaymentReceivedRequest true "Payment details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /transactions/payments-received [post]
func (h *postingHandler) recordPaymentReceived(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PaymentReceivedRequest
	userID, ok := bindPostingRequest(c, &req)
	if !ok {
		return
	}

	entry, err := h.postingSvc.RecordPaymentReceived(c.Request.Context(), req, userID)
	if err != nil {
		respondPostingError(c, logger, "payment received", err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}
