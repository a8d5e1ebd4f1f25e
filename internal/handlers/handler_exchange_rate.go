package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/settlement_ledger/internal/core/ports/services"
	"github.com/SscSPs/settlement_ledger/internal/dto"
	"github.com/SscSPs/settlement_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvc
}

func newExchangeRateHandler(ers portssvc.ExchangeRateSvc) *exchangeRateHandler {
	return &exchangeRateHandler{exchangeRateService: ers}
}

func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvc) {
	h := newExchangeRateHandler(exchangeRateService)

	rg.GET("/exchange-rates", middleware.RequireScope(middleware.ScopeRead), h.getExchangeRate)
}

// getExchangeRate godoc
// @Summary Resolve an exchange rate
// @Description Returns the rate the ledger would use to convert one unit of from into to on the date
// @Tags exchange-rates
// @Produce json
// @Param from query string true "Source currency"
// @Param to query string true "Target currency"
// @Param date query string false "Rate date (YYYY-MM-DD)" default(current date)
// @Param type query string false "Rate type" Enums(SPOT, AVERAGE, CLOSING)
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 503 {object} map[string]string "Exchange rate unavailable"
// @Security BearerAuth
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	var params dto.ExchangeRateParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	on := domain.DateOnly(time.Now())
	if params.Date != "" {
		// Format already checked by the binding.
		on, _ = time.Parse(time.DateOnly, params.Date)
	}
	rateType := domain.RateSpot
	if params.Type != "" {
		rateType = domain.RateType(params.Type)
	}
	from, to := strings.ToUpper(params.From), strings.ToUpper(params.To)

	rate, err := h.exchangeRateService.GetExchangeRate(c.Request.Context(), from, to, on, rateType)
	if err != nil {
		respondError(c, err, "Failed to resolve exchange rate")
		return
	}

	c.JSON(http.StatusOK, dto.ExchangeRateResponse{
		From:     from,
		To:       to,
		Date:     on.Format(time.DateOnly),
		RateType: string(rateType),
		Rate:     rate.String(),
	})
}
