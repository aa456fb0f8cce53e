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

// journalHandler handles HTTP requests for the journal entry ledger.
type journalHandler struct {
	ledgerSvc portssvc.LedgerSvcFacade
}

func newJournalHandler(ledgerSvc portssvc.LedgerSvcFacade) *journalHandler {
	return &journalHandler{ledgerSvc: ledgerSvc}
}

// registerJournalRoutes registers routes related to journal entries
func registerJournalRoutes(rg *gin.RouterGroup, ledgerSvc portssvc.LedgerSvcFacade) {
	h := newJournalHandler(ledgerSvc)

	journalGroup := rg.Group("/journal-entries")
	{
		journalGroup.POST("", h.postEntry)
		journalGroup.GET("", h.listEntries)
		journalGroup.GET("/:entry_id", h.getEntry)
		journalGroup.POST("/:entry_id/reverse", h.reverseEntry)
	}
}

// postEntry godoc
// @Summary Post a journal entry
// @Description Validates and appends a new balanced journal entry to the ledger
// @Tags journal-entries
// @Accept json
// @Produce json
// @Param entry body dto.CreateEntryRequest true "Journal entry details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} ErrorResponse "Invalid or unbalanced entry"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 409 {object} ErrorResponse "Conflict"
// @Failure 503 {object} ErrorResponse "Storage unavailable"
// @Security BearerAuth
// @Router /journal-entries [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid journal entry request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	entry, err := h.ledgerSvc.Post(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUnbalanced):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Entry debits and credits do not balance"})
		case errors.Is(err, apperrors.ErrInsufficientLines):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Entry requires at least two lines"})
		case errors.Is(err, apperrors.ErrMalformedLine):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Each line needs exactly one positive side with at most two decimal places"})
		case errors.Is(err, apperrors.ErrInvalidAccount):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Entry references an account not in the chart"})
		case errors.Is(err, apperrors.ErrStorageUnavailable):
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Storage unavailable, retry with the same idempotency key"})
		default:
			logger.Error("Failed to post journal entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to post journal entry"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Returns a paginated list of journal entries, newest first
// @Tags journal-entries
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /journal-entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	entries, nextToken, err := h.ledgerSvc.ListEntries(c.Request.Context(), params.Limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list journal entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list journal entries"})
		return
	}

	c.JSON(http.StatusOK, dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: nextToken,
	})
}

// getEntry godoc
// @Summary Get a journal entry
// @Description Returns a single journal entry with its lines
// @Tags journal-entries
// @Produce json
// @Param entry_id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Entry not found"
// @Security BearerAuth
// @Router /journal-entries/{entry_id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entry_id")

	entry, err := h.ledgerSvc.GetEntry(c.Request.Context(), entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrEntryNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Journal entry not found"})
		} else {
			logger.Error("Failed to get journal entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get journal entry"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// reverseEntry godoc
// @Summary Reverse a journal entry
// @Description Appends a mirror-image entry and marks the original as reversed
// @Tags journal-entries
// @Produce json
// @Param entry_id path string true "Entry ID"
// @Success 201 {object} dto.EntryResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Entry not found"
// @Failure 409 {object} ErrorResponse "Entry already reversed or is a reversal"
// @Security BearerAuth
// @Router /journal-entries/{entry_id}/reverse [post]
func (h *journalHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entry_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	reversing, err := h.ledgerSvc.Reverse(c.Request.Context(), entryID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrEntryNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Journal entry not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Entry is already reversed or is itself a reversal"})
		case errors.Is(err, apperrors.ErrStorageUnavailable):
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Storage unavailable, try again"})
		default:
			logger.Error("Failed to reverse journal entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to reverse journal entry"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(reversing))
}
