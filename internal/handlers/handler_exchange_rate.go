package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/fx_rate_service/internal/apperrors"
	"github.com/SscSPs/fx_rate_service/internal/core/domain"
	portssvc "github.com/SscSPs/fx_rate_service/internal/core/ports/services"
	"github.com/SscSPs/fx_rate_service/internal/dto"
	"github.com/SscSPs/fx_rate_service/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{
		exchangeRateService: ers,
	}
}

// RegisterExchangeRateRoutes registers routes related to exchange rates.
func RegisterExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade) {
	registerValidators()
	h := newExchangeRateHandler(exchangeRateService)

	rg.GET("/convert", h.convert)
	rg.GET("/latest", h.refreshRates)
	rg.POST("/refresh", h.refreshRates)
	rg.GET("/rates", h.listLatestRates)
}

// convert godoc
// @Summary Convert an amount between two currencies
// @Description Converts amount from one currency to another through the pivot currency using the latest stored rates
// @Tags exchange rates
// @Produce  json
// @Param   from   query string true "Source currency code (3 letters)" minlength(3) maxlength(3)
// @Param   to     query string true "Target currency code (3 letters)" minlength(3) maxlength(3)
// @Param   amount query string true "Amount to convert, as a decimal number"
// @Success 200 {object} dto.ConversionResponse
// @Failure 400 {object} map[string]string "Invalid currency code or amount"
// @Failure 404 {object} dto.RateNotFoundResponse "No stored rate for one of the currencies"
// @Failure 500 {object} map[string]string "Failed to convert amount"
// @Router /convert [get]
func (h *exchangeRateHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ConvertRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("Failed to bind query for Convert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + describeBindingError(err)})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		logger.Warn("Invalid amount for Convert", slog.String("amount", req.Amount))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount: " + req.Amount})
		return
	}

	logger = logger.With(slog.String("from", req.From), slog.String("to", req.To))

	result, err := h.exchangeRateService.Convert(c.Request.Context(), req.From, req.To, amount)
	if err != nil {
		var notFound *apperrors.RateNotFoundError
		switch {
		case errors.As(err, &notFound):
			logger.Warn("Exchange rate not found", slog.String("currency", notFound.Code), slog.String("side", notFound.Side))
			c.JSON(http.StatusNotFound, dto.RateNotFoundResponse{
				Error:    notFound.Error(),
				Currency: notFound.Code,
				Side:     notFound.Side,
			})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error converting amount", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to convert amount", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert amount"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToConversionResponse(result))
}

// refreshRates godoc
// @Summary Refresh exchange rates from the provider
// @Description Fetches the provider's latest rates for the pivot currency and stores them. The trigger is always accepted; the body reports whether the refresh succeeded.
// @Tags exchange rates
// @Produce  json
// @Success 200 {object} dto.RefreshResponse
// @Router /latest [get]
// @Router /refresh [post]
func (h *exchangeRateHandler) refreshRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to refresh exchange rates")

	outcome, err := h.exchangeRateService.RefreshRates(c.Request.Context())
	if outcome == nil {
		outcome = &domain.RefreshOutcome{Status: domain.RefreshFailed, Base: h.exchangeRateService.PivotCurrency()}
		if err != nil {
			outcome.Reason = err.Error()
		}
	}
	if err != nil {
		logger.Warn("Exchange rate refresh did not complete", slog.String("error", err.Error()))
	}

	c.JSON(http.StatusOK, dto.ToRefreshResponse(outcome))
}

// listLatestRates godoc
// @Summary List latest exchange rates
// @Description Lists the latest stored rate of every currency quoted against the pivot currency
// @Tags exchange rates
// @Produce  json
// @Success 200 {object} dto.LatestRatesResponse
// @Failure 500 {object} map[string]string "Failed to list exchange rates"
// @Router /rates [get]
func (h *exchangeRateHandler) listLatestRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rates, err := h.exchangeRateService.LatestRates(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list exchange rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list exchange rates"})
		return
	}

	c.JSON(http.StatusOK, dto.ToLatestRatesResponse(h.exchangeRateService.PivotCurrency(), rates))
}
