package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/SscSPs/settlement_ledger/internal/core/ports/services"
	"github.com/SscSPs/settlement_ledger/internal/dto"
	"github.com/SscSPs/settlement_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type periodHandler struct {
	periodGate portssvc.PeriodGateSvc
}

func newPeriodHandler(pg portssvc.PeriodGateSvc) *periodHandler {
	return &periodHandler{periodGate: pg}
}

func registerPeriodRoutes(rg *gin.RouterGroup, periodGate portssvc.PeriodGateSvc) {
	h := newPeriodHandler(periodGate)

	rg.GET("/periods/resolve", middleware.RequireScope(middleware.ScopeRead), h.resolvePeriod)
}

// resolvePeriod godoc
// @Summary Find the open fiscal period for a date
// @Description Answers whether a document dated on the given day could be posted, and into which period
// @Tags periods
// @Produce json
// @Param date query string true "Transaction date (YYYY-MM-DD)"
// @Param periodID query string false "Explicit period to check against"
// @Success 200 {object} dto.PeriodResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "No open period accepts the date"
// @Security BearerAuth
// @Router /periods/resolve [get]
func (h *periodHandler) resolvePeriod(c *gin.Context) {
	var params dto.ResolvePeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	date, _ := time.Parse(time.DateOnly, params.Date)

	var periodID *string
	if params.PeriodID != "" {
		periodID = &params.PeriodID
	}

	period, err := h.periodGate.ValidateTransactionDate(c.Request.Context(), date, periodID)
	if err != nil {
		respondError(c, err, "Failed to resolve fiscal period")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}
