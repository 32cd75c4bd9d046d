package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/cashflow_app/internal/apperrors"
	"github.com/SscSPs/cashflow_app/internal/core/domain"
	portsexport "github.com/SscSPs/cashflow_app/internal/core/ports/export"
	portssvc "github.com/SscSPs/cashflow_app/internal/core/ports/services"
	"github.com/SscSPs/cashflow_app/internal/dto"
	"github.com/SscSPs/cashflow_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

const (
	yearOptionCount = 5
	// otherCategoryParam selects the Income Other or Outcome Other bucket, by categoryType.
	otherCategoryParam = "other"
)

// reportingHandler handles HTTP requests related to dashboard reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
	renderer         portsexport.ReportRenderer
	defaultTopLimit  int
}

// registerReportingRoutes registers routes related to dashboard reports.
// renderer may be nil, in which case export answers 503.
func registerReportingRoutes(rg *gin.RouterGroup, rs portssvc.ReportingService, renderer portsexport.ReportRenderer, defaultTopLimit int) {
	h := &reportingHandler{
		reportingService: rs,
		renderer:         renderer,
		defaultTopLimit:  defaultTopLimit,
	}

	reports := rg.Group("/reports")
	{
		reports.GET("/summary", h.getSummary)
		reports.GET("/balance", h.getBalance)
		reports.GET("/monthly", h.getMonthlySeries)
		reports.GET("/breakdown", h.getBreakdown)
		reports.GET("/top-spending", h.getTopSpending)
		reports.GET("/categories/:categoryId/transactions", h.getCategoryTransactions)
		reports.GET("/export", h.exportReport)
	}
}

// reportRequest binds the shared report query. The sequence number may also
// arrive as a header when the query does not carry one.
func (h *reportingHandler) reportRequest(c *gin.Context) (domain.ReportRequest, error) {
	var params dto.ReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return domain.ReportRequest{}, apperrors.NewValidationFailedError("Invalid query parameters: " + err.Error())
	}
	if params.Seq == 0 {
		if raw := c.GetHeader(middleware.SequenceHeader); raw != "" {
			seq, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				return domain.ReportRequest{}, apperrors.NewValidationFailedError("invalid " + middleware.SequenceHeader + " header")
			}
			params.Seq = seq
		}
	}
	req, err := params.ToReportRequest(h.defaultTopLimit, c.GetHeader(middleware.SessionHeader))
	if err != nil {
		return domain.ReportRequest{}, err
	}
	if req.Seq != 0 {
		c.Header(middleware.SequenceHeader, strconv.FormatUint(req.Seq, 10))
	}
	return req, nil
}

// getSummary godoc
// @Summary Dashboard summary
// @Description Balance, monthly spending, category breakdown and top spending computed from one snapshot. Overlapping requests with the same session follow last-write-wins by seq.
// @Tags reports
// @Produce json
// @Param startDate query string false "Start date (YYYY-MM-DD), defaults to the first day of the current month"
// @Param endDate query string false "End date (YYYY-MM-DD), defaults to the last day of the current month"
// @Param categoryType query string false "Breakdown type: income or outcome"
// @Param year query int false "Bar chart year, defaults to the current year"
// @Param limit query int false "Top spending cap, 0 for all"
// @Param seq query int false "Request sequence number"
// @Param X-Client-Session header string false "Client session"
// @Success 200 {object} dto.ReportResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 409 {object} map[string]string "Superseded by a newer request"
// @Failure 500 {object} map[string]string "Failed to build report"
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *reportingHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := userFromContext(c, logger)
	if !ok {
		return
	}
	req, err := h.reportRequest(c)
	if err != nil {
		respondError(c, logger, err, "Invalid report request")
		return
	}

	report, err := h.reportingService.Summary(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger.With(slog.Uint64("seq", req.Seq)), err, "Failed to build report")
		return
	}
	c.JSON(http.StatusOK, dto.ToReportResponse(report, req.Seq))
}

// getBalance godoc
// @Summary Balance of a period
// @Tags reports
// @Produce json
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 409 {object} map[string]string "Superseded by a newer request"
// @Security BearerAuth
// @Router /reports/balance [get]
func (h *reportingHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := userFromContext(c, logger)
	if !ok {
		return
	}
	req, err := h.reportRequest(c)
	if err != nil {
		respondError(c, logger, err, "Invalid report request")
		return
	}

	balance, err := h.reportingService.Balance(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to compute balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceResponse(balance))
}

// getMonthlySeries godoc
// @Summary Monthly spending of a year
// @Description Outcome totals per month. The current year stops at the current month.
// @Tags reports
// @Produce json
// @Param year query int false "Year, defaults to the current year"
// @Success 200 {object} dto.MonthlySeriesResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Security BearerAuth
// @Router /reports/monthly [get]
func (h *reportingHandler) getMonthlySeries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := userFromContext(c, logger)
	if !ok {
		return
	}
	req, err := h.reportRequest(c)
	if err != nil {
		respondError(c, logger, err, "Invalid report request")
		return
	}

	series, err := h.reportingService.MonthlySeries(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to compute monthly series")
		return
	}

	years := h.reportingService.YearOptions(yearOptionCount)
	year := req.Filter.Year
	if year == 0 && len(years) > 0 {
		year = years[0]
	}
	c.JSON(http.StatusOK, dto.MonthlySeriesResponse{
		Year:   year,
		Series: dto.ToBarChartResponses(series),
		Years:  years,
	})
}

// getBreakdown godoc
// @Summary Category breakdown
// @Description Pie chart data: totals and percentages per category for the period
// @Tags reports
// @Produce json
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Param categoryType query string false "income or outcome"
// @Success 200 {array} dto.PieChartEntryResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Security BearerAuth
// @Router /reports/breakdown [get]
func (h *reportingHandler) getBreakdown(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := userFromContext(c, logger)
	if !ok {
		return
	}
	req, err := h.reportRequest(c)
	if err != nil {
		respondError(c, logger, err, "Invalid report request")
		return
	}

	entries, err := h.reportingService.CategoryBreakdown(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to compute category breakdown")
		return
	}
	c.JSON(http.StatusOK, dto.ToPieChartResponses(entries))
}

// getTopSpending godoc
// @Summary Top spending categories
// @Tags reports
// @Produce json
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Param limit query int false "Cap, 0 for all"
// @Param withTransactions query bool false "Include each category's transactions"
// @Success 200 {array} dto.CategorySummaryResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Security BearerAuth
// @Router /reports/top-spending [get]
func (h *reportingHandler) getTopSpending(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := userFromContext(c, logger)
	if !ok {
		return
	}
	req, err := h.reportRequest(c)
	if err != nil {
		respondError(c, logger, err, "Invalid report request")
		return
	}

	top, err := h.reportingService.TopSpending(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to rank top spending")
		return
	}
	c.JSON(http.StatusOK, dto.ToCategorySummaryResponses(top))
}

// getCategoryTransactions godoc
// @Summary Transactions of one category
// @Description Drill-down behind a breakdown slice. Use "other" with categoryType for the Income Other or Outcome Other bucket.
// @Tags reports
// @Produce json
// @Param categoryId path string true "Category ID or other"
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Param categoryType query string false "income or outcome, required for other"
// @Success 200 {array} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 404 {object} map[string]string "Category not found"
// @Security BearerAuth
// @Router /reports/categories/{categoryId}/transactions [get]
func (h *reportingHandler) getCategoryTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := userFromContext(c, logger)
	if !ok {
		return
	}

	var categoryID *int64
	if raw := c.Param("categoryId"); raw != otherCategoryParam {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			respondError(c, logger, apperrors.NewValidationFailedError("categoryId must be a positive integer or 'other'"), "Invalid category id")
			return
		}
		categoryID = &id
	}

	r, err := dto.ParseDateRange(c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		respondError(c, logger, err, "Invalid date range")
		return
	}

	categoryType := domain.CategoryType(c.Query("categoryType"))
	txns, err := h.reportingService.CategoryTransactions(c.Request.Context(), userID, categoryID, categoryType, r)
	if err != nil {
		respondError(c, logger, err, "Failed to list category transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
}

// exportReport godoc
// @Summary Download the dashboard as a spreadsheet
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Param categoryType query string false "Breakdown type"
// @Param year query int false "Bar chart year"
// @Success 200 {file} file
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 503 {object} map[string]string "Export not configured"
// @Security BearerAuth
// @Router /reports/export [get]
func (h *reportingHandler) exportReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := userFromContext(c, logger)
	if !ok {
		return
	}
	req, err := h.reportRequest(c)
	if err != nil {
		respondError(c, logger, err, "Invalid report request")
		return
	}

	if h.renderer == nil {
		respondError(c, logger, apperrors.ErrUnavailable, "Report export is not configured")
		return
	}

	doc, err := h.reportingService.ExportReport(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to export report")
		return
	}

	filename := fmt.Sprintf("cashflow-report-%s.%s", exportSuffix(req.Filter.Range), h.renderer.FileExtension())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, h.renderer.ContentType(), doc)
}

func exportSuffix(r domain.DateRange) string {
	if r.StartDate.IsZero() {
		return "current"
	}
	return r.StartDate.Format(domain.DateLayout)
}
