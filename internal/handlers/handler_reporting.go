package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/finbook/finbook_api/internal/core/ports/services"
	"github.com/finbook/finbook_api/internal/dto"
	"github.com/finbook/finbook_api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler serves the dashboard aggregation endpoints.
type reportingHandler struct {
	reportingService portssvc.ReportingSvc
}

func newReportingHandler(rs portssvc.ReportingSvc) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers the dashboard routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvc) {
	h := newReportingHandler(reportingService)

	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("/category-spending", h.categorySpending)
		dashboard.GET("/category-income", h.categoryIncome)
		dashboard.GET("/income-vs-expense", h.incomeVsExpense)
		dashboard.GET("/account-balances", h.accountBalances)
	}
}

// parseDateBounds reads optional from/to query params in YYYY-MM-DD form.
func parseDateBounds(c *gin.Context) (from, to *time.Time, ok bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if s := c.Query("from"); s != "" {
		t, err := time.Parse(dto.DateLayout, s)
		if err != nil {
			logger.Warn("Invalid 'from' date", slog.String("value", s))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'from' date, expected YYYY-MM-DD"})
			return nil, nil, false
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(dto.DateLayout, s)
		if err != nil {
			logger.Warn("Invalid 'to' date", slog.String("value", s))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'to' date, expected YYYY-MM-DD"})
			return nil, nil, false
		}
		to = &t
	}
	return from, to, true
}

// categorySpending godoc
// @Summary Spending grouped by category
// @Description Sums settled expenses per category, optionally bounded by from/to dates
// @Tags dashboard
// @Produce  json
// @Param   from query string false "Start date (YYYY-MM-DD)"
// @Param   to query string false "End date (YYYY-MM-DD)"
// @Success 200 {array} domain.CategorySummary
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /dashboard/category-spending [get]
func (h *reportingHandler) categorySpending(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	from, to, ok := parseDateBounds(c)
	if !ok {
		return
	}

	summaries, err := h.reportingService.CategorySpending(c.Request.Context(), userID, from, to)
	if err != nil {
		respondServiceError(c, logger, err, "compute category spending")
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// categoryIncome godoc
// @Summary Income grouped by category
// @Description Sums settled income per category, optionally bounded by from/to dates
// @Tags dashboard
// @Produce  json
// @Param   from query string false "Start date (YYYY-MM-DD)"
// @Param   to query string false "End date (YYYY-MM-DD)"
// @Success 200 {array} domain.CategorySummary
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /dashboard/category-income [get]
func (h *reportingHandler) categoryIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	from, to, ok := parseDateBounds(c)
	if !ok {
		return
	}

	summaries, err := h.reportingService.CategoryIncome(c.Request.Context(), userID, from, to)
	if err != nil {
		respondServiceError(c, logger, err, "compute category income")
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// incomeVsExpense godoc
// @Summary Monthly income versus expense
// @Description Settled income and expense totals per month over the last six months
// @Tags dashboard
// @Produce  json
// @Success 200 {array} domain.MonthlyTotal
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /dashboard/income-vs-expense [get]
func (h *reportingHandler) incomeVsExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	totals, err := h.reportingService.IncomeVsExpense(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "compute income vs expense")
		return
	}

	c.JSON(http.StatusOK, totals)
}

// accountBalances godoc
// @Summary Current balance per account
// @Tags dashboard
// @Produce  json
// @Success 200 {array} domain.AccountBalance
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /dashboard/account-balances [get]
func (h *reportingHandler) accountBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	balances, err := h.reportingService.AccountBalances(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "compute account balances")
		return
	}

	c.JSON(http.StatusOK, balances)
}
