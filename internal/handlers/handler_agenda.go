package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finbook/finbook_api/internal/core/ports/services"
	"github.com/finbook/finbook_api/internal/dto"
	"github.com/finbook/finbook_api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// agendaHandler handles scheduled transactions. It serves the same
// transaction lifecycle as transactionHandler, but balance effects apply
// only once an entry is marked paid or received.
type agendaHandler struct {
	agendaService portssvc.TransactionSvc
}

func newAgendaHandler(as portssvc.TransactionSvc) *agendaHandler {
	return &agendaHandler{agendaService: as}
}

// registerAgendaRoutes registers routes related to scheduled transactions.
func registerAgendaRoutes(rg *gin.RouterGroup, agendaService portssvc.TransactionSvc) {
	h := newAgendaHandler(agendaService)

	agenda := rg.Group("/agenda/transactions")
	{
		agenda.POST("", h.createEntry)
		agenda.GET("", h.listEntries)
		agenda.GET("/:id", h.getEntry)
		agenda.PUT("/:id", h.updateEntry)
		agenda.DELETE("/:id", h.deleteEntry)
	}
}

// createEntry godoc
// @Summary Schedule a transaction
// @Description Creates a scheduled transaction; the account balance moves only once it settles
// @Tags agenda
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /agenda/transactions [post]
func (h *agendaHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAgendaEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.agendaService.CreateTransaction(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, logger, err, "schedule transaction")
		return
	}

	logger.Info("Agenda entry created", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// getEntry godoc
// @Summary Get a scheduled transaction by ID
// @Tags agenda
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /agenda/transactions/{id} [get]
func (h *agendaHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.agendaService.GetTransactionByID(c.Request.Context(), userID, transactionID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve agenda entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listEntries godoc
// @Summary List scheduled transactions
// @Description Retrieves the agenda ordered by due date, each entry carrying its account name
// @Tags agenda
// @Produce  json
// @Success 200 {array} dto.AgendaEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /agenda/transactions [get]
func (h *agendaHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txns, err := h.agendaService.ListTransactions(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "list agenda entries")
		return
	}

	accountIDs := make([]string, 0, len(txns))
	seen := map[string]bool{}
	for _, txn := range txns {
		if !seen[txn.AccountID] {
			seen[txn.AccountID] = true
			accountIDs = append(accountIDs, txn.AccountID)
		}
	}

	names, err := h.agendaService.AccountNames(c.Request.Context(), userID, accountIDs)
	if err != nil {
		respondServiceError(c, logger, err, "resolve account names")
		return
	}

	entries := make([]dto.AgendaEntryResponse, len(txns))
	for i := range txns {
		entries[i] = dto.AgendaEntryResponse{
			TransactionResponse: dto.ToTransactionResponse(&txns[i]),
			AccountName:         names[txns[i].AccountID],
		}
	}

	c.JSON(http.StatusOK, entries)
}

// updateEntry godoc
// @Summary Update a scheduled transaction
// @Description Updates an agenda entry; marking it paid or received posts its balance effect
// @Tags agenda
// @Accept  json
// @Produce  json
// @Param   id path string true "Transaction ID to update"
// @Param   transaction body dto.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /agenda/transactions/{id} [put]
func (h *agendaHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAgendaEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("transaction_id", transactionID))

	txn, err := h.agendaService.UpdateTransaction(c.Request.Context(), userID, transactionID, req)
	if err != nil {
		respondServiceError(c, logger, err, "update agenda entry")
		return
	}

	logger.Info("Agenda entry updated")
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// deleteEntry godoc
// @Summary Delete a scheduled transaction
// @Description Deletes an agenda entry, reversing its balance effect if it had settled
// @Tags agenda
// @Produce  json
// @Param   id path string true "Transaction ID to delete"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /agenda/transactions/{id} [delete]
func (h *agendaHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.agendaService.DeleteTransaction(c.Request.Context(), userID, transactionID); err != nil {
		respondServiceError(c, logger, err, "delete agenda entry")
		return
	}

	logger.Info("Agenda entry deleted", slog.String("transaction_id", transactionID))
	c.Status(http.StatusNoContent)
}
