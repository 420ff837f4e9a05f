package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finbook/finbook_api/internal/core/ports/services"
	"github.com/finbook/finbook_api/internal/dto"
	"github.com/finbook/finbook_api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// billHandler handles HTTP requests related to bills.
type billHandler struct {
	billService portssvc.BillSvc
}

func newBillHandler(bs portssvc.BillSvc) *billHandler {
	return &billHandler{billService: bs}
}

// registerBillRoutes registers routes related to bills.
func registerBillRoutes(rg *gin.RouterGroup, billService portssvc.BillSvc) {
	h := newBillHandler(billService)

	bills := rg.Group("/bills")
	{
		bills.POST("", h.createBill)
		bills.GET("", h.listBills)
		bills.GET("/:id", h.getBill)
		bills.PUT("/:id", h.updateBill)
		bills.DELETE("/:id", h.deleteBill)
	}
}

// createBill godoc
// @Summary Register a bill
// @Description Registers a payable; the installment amount defaults to the total split evenly
// @Tags bills
// @Accept  json
// @Produce  json
// @Param   bill body dto.CreateBillRequest true "Bill details"
// @Success 201 {object} dto.BillResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /bills [post]
func (h *billHandler) createBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBill", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bill, err := h.billService.CreateBill(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, logger, err, "create bill")
		return
	}

	logger.Info("Bill created", slog.String("bill_id", bill.BillID))
	c.JSON(http.StatusCreated, dto.ToBillResponse(bill))
}

// getBill godoc
// @Summary Get a bill by ID
// @Tags bills
// @Produce  json
// @Param   id path string true "Bill ID"
// @Success 200 {object} dto.BillResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Bill not found"
// @Security BearerAuth
// @Router /bills/{id} [get]
func (h *billHandler) getBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	billID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bill, err := h.billService.GetBillByID(c.Request.Context(), userID, billID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve bill")
		return
	}

	c.JSON(http.StatusOK, dto.ToBillResponse(bill))
}

// listBills godoc
// @Summary List bills
// @Tags bills
// @Produce  json
// @Success 200 {array} dto.BillResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /bills [get]
func (h *billHandler) listBills(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bills, err := h.billService.ListBills(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "list bills")
		return
	}

	responses := make([]dto.BillResponse, len(bills))
	for i := range bills {
		responses[i] = dto.ToBillResponse(&bills[i])
	}
	c.JSON(http.StatusOK, responses)
}

// updateBill godoc
// @Summary Update a bill
// @Tags bills
// @Accept  json
// @Produce  json
// @Param   id path string true "Bill ID"
// @Param   bill body dto.UpdateBillRequest true "Fields to update"
// @Success 200 {object} dto.BillResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Bill not found"
// @Security BearerAuth
// @Router /bills/{id} [put]
func (h *billHandler) updateBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	billID := c.Param("id")

	var req dto.UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateBill", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bill, err := h.billService.UpdateBill(c.Request.Context(), userID, billID, req)
	if err != nil {
		respondServiceError(c, logger, err, "update bill")
		return
	}

	c.JSON(http.StatusOK, dto.ToBillResponse(bill))
}

// deleteBill godoc
// @Summary Delete a bill
// @Tags bills
// @Produce  json
// @Param   id path string true "Bill ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Bill not found"
// @Security BearerAuth
// @Router /bills/{id} [delete]
func (h *billHandler) deleteBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	billID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.billService.DeleteBill(c.Request.Context(), userID, billID); err != nil {
		respondServiceError(c, logger, err, "delete bill")
		return
	}

	c.Status(http.StatusNoContent)
}
