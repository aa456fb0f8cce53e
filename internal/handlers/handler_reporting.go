package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ponmobiz/ponmo_books_app/internal/apperrors"
	portssvc "github.com/ponmobiz/ponmo_books_app/internal/core/ports/services"
	"github.com/ponmobiz/ponmo_books_app/internal/dto"
	"github.com/ponmobiz/ponmo_books_app/internal/middleware"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
		reportingGroup.GET("/profit-and-loss", h.getProfitAndLoss)
		reportingGroup.GET("/balance-sheet", h.getBalanceSheet)
		reportingGroup.GET("/summary", h.getFinancialSummary)
	}
}

func (h *reportingHandler) respondReportError(c *gin.Context, logger *slog.Logger, report string, err error) {
	if errors.Is(err, apperrors.ErrLedgerIntegrity) {
		logger.Error("Ledger integrity violation while generating report", slog.String("report", report), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Ledger integrity violation detected; report withheld"})
		return
	}
	if errors.Is(err, apperrors.ErrStorageUnavailable) {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Storage unavailable, try again"})
		return
	}
	logger.Error("Failed to generate report", slog.String("report", report), slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate " + report + " report"})
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Generates a trial balance report as of a specific date
// @Tags reports
// @Produce json
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to generate report"
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf, ok := parseDateQuery(c, "asOf", time.Now().UTC())
	if !ok {
		return
	}

	logger.Info("Received request to generate trial balance report", slog.String("asOf", asOf.Format("2006-01-02")))

	rows, err := h.reportingService.TrialBalance(c.Request.Context(), asOf)
	if err != nil {
		h.respondReportError(c, logger, "trial balance", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(rows, asOf))
}

// getProfitAndLoss godoc
// @Summary Generate profit and loss report
// @Description Generates a profit and loss report for a date range
// @Tags reports
// @Produce json
// @Param from query string true "Period start (YYYY-MM-DD)"
// @Param to query string false "Period end (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.ProfitAndLossResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to generate report"
// @Security BearerAuth
// @Router /reports/profit-and-loss [get]
func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, ok := parseDateQuery(c, "from", time.Time{})
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "to", time.Now().UTC())
	if !ok {
		return
	}

	logger.Info("Received request to generate profit and loss report",
		slog.String("from", from.Format("2006-01-02")),
		slog.String("to", to.Format("2006-01-02")))

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Period end precedes start"})
			return
		}
		h.respondReportError(c, logger, "profit and loss", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfitAndLossResponse(report, from, to))
}

// getBalanceSheet godoc
// @Summary Generate balance sheet report
// @Description Generates a balance sheet as of a specific date
// @Tags reports
// @Produce json
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to generate report"
// @Security BearerAuth
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf, ok := parseDateQuery(c, "asOf", time.Now().UTC())
	if !ok {
		return
	}

	logger.Info("Received request to generate balance sheet report", slog.String("asOf", asOf.Format("2006-01-02")))

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), asOf)
	if err != nil {
		h.respondReportError(c, logger, "balance sheet", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report, asOf))
}

// getFinancialSummary godoc
// @Summary Generate financial summary
// @Description Bundles the trial balance, profit and loss, and balance sheet as of a date
// @Tags reports
// @Produce json
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.FinancialSummaryResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to generate report"
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *reportingHandler) getFinancialSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf, ok := parseDateQuery(c, "asOf", time.Now().UTC())
	if !ok {
		return
	}

	logger.Info("Received request to generate financial summary", slog.String("asOf", asOf.Format("2006-01-02")))

	summary, err := h.reportingService.FinancialSummary(c.Request.Context(), asOf)
	if err != nil {
		h.respondReportError(c, logger, "financial summary", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFinancialSummaryResponse(summary, asOf))
}
