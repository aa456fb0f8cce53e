package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ponmobiz/ponmo_books_app/internal/apperrors"
	"github.com/ponmobiz/ponmo_books_app/internal/core/coa"
	portssvc "github.com/ponmobiz/ponmo_books_app/internal/core/ports/services"
	"github.com/ponmobiz/ponmo_books_app/internal/dto"
	"github.com/ponmobiz/ponmo_books_app/internal/middleware"
)

// accountHandler serves the chart of accounts and per-account ledger views.
type accountHandler struct {
	registry  *coa.Registry
	ledgerSvc portssvc.LedgerSvcFacade
}

func newAccountHandler(registry *coa.Registry, ledgerSvc portssvc.LedgerSvcFacade) *accountHandler {
	return &accountHandler{
		registry:  registry,
		ledgerSvc: ledgerSvc,
	}
}

// registerAccountRoutes registers routes related to the chart of accounts
func registerAccountRoutes(rg *gin.RouterGroup, registry *coa.Registry, ledgerSvc portssvc.LedgerSvcFacade) {
	h := newAccountHandler(registry, ledgerSvc)

	accountGroup := rg.Group("/accounts")
	{
		accountGroup.GET("", h.listAccounts)
		accountGroup.GET("/:code", h.getAccount)
		accountGroup.GET("/:code/entries", h.getAccountEntries)
		accountGroup.GET("/:code/balance", h.getAccountBalance)
	}
}

func parseAccountCode(c *gin.Context) (int, bool) {
	code, err := strconv.Atoi(c.Param("code"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Account code must be numeric"})
		return 0, false
	}
	return code, true
}

// listAccounts godoc
// @Summary List the chart of accounts
// @Description Returns every account in the chart, ordered by code
// @Tags accounts
// @Produce json
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	accounts := h.registry.Accounts()
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToAccountResponses(accounts)})
}

// getAccount godoc
// @Summary Get a single account
// @Description Returns the chart entry for the given account code
// @Tags accounts
// @Produce json
// @Param code path int true "Account code"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse "Invalid account code"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{code} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	code, ok := parseAccountCode(c)
	if !ok {
		return
	}

	account, err := h.registry.Lookup(code)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(&account))
}

// getAccountEntries godoc
// @Summary List ledger activity for an account
// @Description Returns the journal lines touching the account within a date range
// @Tags accounts
// @Produce json
// @Param code path int true "Account code"
// @Param from query string false "Period start (YYYY-MM-DD)"
// @Param to query string false "Period end (YYYY-MM-DD)" default(today)
// @Success 200 {array} dto.AccountActivityResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{code}/entries [get]
func (h *accountHandler) getAccountEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code, ok := parseAccountCode(c)
	if !ok {
		return
	}

	from, ok := parseDateQuery(c, "from", time.Time{})
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "to", time.Now().UTC())
	if !ok {
		return
	}

	activity, err := h.ledgerSvc.EntriesFor(c.Request.Context(), code, from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnknownAccount) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Period end precedes start"})
		} else {
			logger.Error("Failed to list account entries", slog.Int("account_code", code), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list account entries"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountActivityResponses(activity))
}

// getAccountBalance godoc
// @Summary Get an account balance
// @Description Returns the signed balance of the account as of a date
// @Tags accounts
// @Produce json
// @Param code path int true "Account code"
// @Param asOf query string false "Balance date (YYYY-MM-DD)" default(today)
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{code}/balance [get]
func (h *accountHandler) getAccountBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code, ok := parseAccountCode(c)
	if !ok {
		return
	}

	asOf, ok := parseDateQuery(c, "asOf", time.Now().UTC())
	if !ok {
		return
	}

	balance, err := h.ledgerSvc.BalanceAsOf(c.Request.Context(), code, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnknownAccount) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
		} else if errors.Is(err, apperrors.ErrStorageUnavailable) {
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Storage unavailable, try again"})
		} else {
			logger.Error("Failed to compute account balance", slog.Int("account_code", code), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute account balance"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.AccountBalanceResponse{
		AccountCode: code,
		AsOf:        asOf.Format("2006-01-02"),
		Balance:     balance,
	})
}

// parseDateQuery reads a YYYY-MM-DD query parameter, returning fallback when
// the parameter is absent. Returns false after writing a 400 response if the
// value is malformed.
func parseDateQuery(c *gin.Context, name string, fallback time.Time) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid " + name + " date format. Use YYYY-MM-DD"})
		return time.Time{}, false
	}
	return parsed, true
}
