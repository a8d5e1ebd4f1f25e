package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/apperrors"
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/settlement_ledger/internal/core/ports/services"
	"github.com/SscSPs/settlement_ledger/internal/dto"
	"github.com/SscSPs/settlement_ledger/internal/middleware"
	"github.com/SscSPs/settlement_ledger/internal/utils"
	"github.com/SscSPs/settlement_ledger/internal/utils/export"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports", middleware.RequireScope(middleware.ScopeRead))
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/ar-aging", h.getARAging)
		reports.GET("/ap-aging", h.getAPAging)
	}
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Sums posted activity per account for entries dated within the range, in base currency
// @Tags reports
// @Produce json,text/csv
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end, inclusive (YYYY-MM-DD)"
// @Param format query string false "Output format" Enums(json, csv)
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	var params dto.TrialBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	from, _ := time.Parse(time.DateOnly, params.From)
	to, _ := time.Parse(time.DateOnly, params.To)

	tb, err := h.reportingService.BuildTrialBalance(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err, "Failed to generate trial balance")
		return
	}

	resp := dto.ToTrialBalanceResponse(tb)
	if params.Format == "csv" {
		writeCSV(c, fmt.Sprintf("trial-balance_%s_%s.csv", params.From, params.To), resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getARAging godoc
// @Summary Generate accounts receivable aging
// @Description Classifies open posted receivables into overdue buckets as of a date
// @Tags reports
// @Produce json,text/csv
// @Param asOf query string false "Aging date (YYYY-MM-DD)" default(current date)
// @Param buckets query string false "Comma-separated bucket widths in days" default(30,30,30)
// @Param currency query string false "Reporting currency" default(base currency)
// @Param format query string false "Output format" Enums(json, csv)
// @Success 200 {object} dto.AgingReportResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /reports/ar-aging [get]
func (h *reportingHandler) getARAging(c *gin.Context) {
	h.aging(c, domain.InvoiceAR, h.reportingService.BuildARAging)
}

// getAPAging godoc
// @Summary Generate accounts payable aging
// @Description Classifies open posted payables into overdue buckets as of a date
// @Tags reports
// @Produce json,text/csv
// @Param asOf query string false "Aging date (YYYY-MM-DD)" default(current date)
// @Param buckets query string false "Comma-separated bucket widths in days" default(30,30,30)
// @Param currency query string false "Reporting currency" default(base currency)
// @Param format query string false "Output format" Enums(json, csv)
// @Success 200 {object} dto.AgingReportResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /reports/ap-aging [get]
func (h *reportingHandler) getAPAging(c *gin.Context) {
	h.aging(c, domain.InvoiceAP, h.reportingService.BuildAPAging)
}

type agingBuilder func(ctx context.Context, asOf time.Time, widths []int, currency string) (*domain.AgingReport, error)

func (h *reportingHandler) aging(c *gin.Context, kind domain.InvoiceKind, build agingBuilder) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.AgingParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	asOf := domain.DateOnly(time.Now())
	if params.AsOf != "" {
		asOf, _ = time.Parse(time.DateOnly, params.AsOf)
	}
	widths, err := utils.ParseBucketWidths(params.Buckets)
	if err != nil {
		respondError(c, apperrors.NewValidationError(err.Error()), "Invalid buckets")
		return
	}

	report, err := build(c.Request.Context(), asOf, widths, params.Currency)
	if err != nil {
		respondError(c, err, "Failed to generate aging report")
		return
	}
	if report.UnavailableCount > 0 {
		logger.Warn("Aging rows without a reporting rate",
			slog.String("kind", string(kind)), slog.Int("count", report.UnavailableCount))
	}

	resp := dto.ToAgingReportResponse(report)
	if params.Format == "csv" {
		writeCSV(c, fmt.Sprintf("%s-aging_%s.csv", strings.ToLower(string(kind)), asOf.Format(time.DateOnly)), resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func writeCSV(c *gin.Context, filename string, t export.Tabular) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)
	if err := export.WriteCSV(c.Writer, t); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to write CSV", slog.String("error", err.Error()))
	}
}
