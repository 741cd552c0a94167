package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/fx_rate_service/internal/apperrors"
	"github.com/SscSPs/fx_rate_service/internal/core/domain"
	portssvc "github.com/SscSPs/fx_rate_service/internal/core/ports/services"
	"github.com/SscSPs/fx_rate_service/internal/dto"
	"github.com/SscSPs/fx_rate_service/internal/handlers"
	"github.com/SscSPs/fx_rate_service/internal/metrics"
	"github.com/SscSPs/fx_rate_service/internal/middleware"
	"github.com/SscSPs/fx_rate_service/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ExchangeRateService ---
type MockExchangeRateService struct {
	mock.Mock
}

func (m *MockExchangeRateService) Convert(ctx context.Context, fromCode, toCode string, amount decimal.Decimal) (*domain.ConversionResult, error) {
	args := m.Called(ctx, fromCode, toCode, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConversionResult), args.Error(1)
}

func (m *MockExchangeRateService) RateToBase(ctx context.Context, code string) (decimal.Decimal, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockExchangeRateService) LatestRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateService) RefreshRates(ctx context.Context) (*domain.RefreshOutcome, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefreshOutcome), args.Error(1)
}

func (m *MockExchangeRateService) PivotCurrency() string {
	return "EUR"
}

// Ensure mock implements the interface
var _ portssvc.ExchangeRateSvcFacade = (*MockExchangeRateService)(nil)

// --- Mock HealthService ---
type MockHealthService struct {
	mock.Mock
}

func (m *MockHealthService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Test Suite ---
type ExchangeRateHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockExchangeRateService
	mockHealth  *MockHealthService
}

func TestExchangeRateHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateHandlerTestSuite))
}

func (suite *ExchangeRateHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockService = new(MockExchangeRateService)
	suite.mockHealth = new(MockHealthService)
	suite.router = suite.newRouter(nil)
}

func (suite *ExchangeRateHandlerTestSuite) newRouter(rateLimit *string) *gin.Engine {
	cfg := &config.Config{CORSAllowedOrigins: []string{"*"}}
	services := &portssvc.ServiceContainer{
		ExchangeRate: suite.mockService,
		Health:       suite.mockHealth,
	}

	router := gin.New()
	if rateLimit == nil {
		handlers.RegisterRoutes(router, cfg, services, metrics.NewMetrics(), nil)
		return router
	}

	rl, err := middleware.NewIPRateLimiter(*rateLimit)
	suite.Require().NoError(err)
	handlers.RegisterRoutes(router, cfg, services, metrics.NewMetrics(), rl)
	return router
}

func (suite *ExchangeRateHandlerTestSuite) do(method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	req.RemoteAddr = "192.0.2.10:4321"
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func decimalEq(value string) interface{} {
	want := decimal.RequireFromString(value)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

// --- Convert ---

func (suite *ExchangeRateHandlerTestSuite) TestConvert_Success() {
	result := &domain.ConversionResult{
		FromCurrency:    "USD",
		ToCurrency:      "GBP",
		OriginalAmount:  decimal.NewFromInt(100),
		ConvertedAmount: decimal.RequireFromString("77.27"),
		ExchangeRate:    decimal.RequireFromString("0.772727"),
	}
	suite.mockService.On("Convert", mock.Anything, "usd", "GBP", decimalEq("100")).Return(result, nil).Once()

	w := suite.do(http.MethodGet, "/api/fx/convert?from=usd&to=GBP&amount=100")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ConversionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(dto.ConversionResponse{
		FromCurrency:    "USD",
		ToCurrency:      "GBP",
		OriginalAmount:  "100",
		ConvertedAmount: "77.27",
		ExchangeRate:    "0.772727",
	}, resp)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ExchangeRateHandlerTestSuite) TestConvert_SameCurrencyFormatting() {
	result := &domain.ConversionResult{
		FromCurrency:    "EUR",
		ToCurrency:      "EUR",
		OriginalAmount:  decimal.NewFromInt(50),
		ConvertedAmount: decimal.NewFromInt(50),
		ExchangeRate:    decimal.NewFromInt(1),
	}
	suite.mockService.On("Convert", mock.Anything, "EUR", "EUR", decimalEq("50")).Return(result, nil).Once()

	w := suite.do(http.MethodGet, "/api/fx/convert?from=EUR&to=EUR&amount=50")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ConversionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("1.000000", resp.ExchangeRate)
	suite.Equal("50.00", resp.ConvertedAmount)
}

func (suite *ExchangeRateHandlerTestSuite) TestConvert_BadRequest() {
	tests := []struct {
		name  string
		query string
	}{
		{name: "missing amount", query: "from=USD&to=GBP"},
		{name: "missing from", query: "to=GBP&amount=1"},
		{name: "short code", query: "from=US&to=GBP&amount=1"},
		{name: "digits in code", query: "from=US1&to=GBP&amount=1"},
		{name: "non-numeric amount", query: "from=USD&to=GBP&amount=abc"},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.do(http.MethodGet, "/api/fx/convert?"+tt.query)
			suite.Equal(http.StatusBadRequest, w.Code)
			suite.Contains(w.Body.String(), "error")
		})
	}
	suite.mockService.AssertNotCalled(suite.T(), "Convert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateHandlerTestSuite) TestConvert_BadRequestNamesField() {
	w := suite.do(http.MethodGet, "/api/fx/convert?from=U5D&to=GBP&amount=1")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.JSONEq(`{"error":"Invalid request: from must be a 3-letter currency code"}`, w.Body.String())
}

func (suite *ExchangeRateHandlerTestSuite) TestConvert_ServiceValidationError() {
	suite.mockService.On("Convert", mock.Anything, "USD", "GBP", decimalEq("-5")).
		Return(nil, apperrors.NewValidationError("amount must not be negative")).Once()

	w := suite.do(http.MethodGet, "/api/fx/convert?from=USD&to=GBP&amount=-5")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "amount must not be negative")
}

func (suite *ExchangeRateHandlerTestSuite) TestConvert_RateNotFound() {
	suite.mockService.On("Convert", mock.Anything, "USD", "JPY", decimalEq("1")).
		Return(nil, &apperrors.RateNotFoundError{Code: "JPY", Side: "target"}).Once()

	w := suite.do(http.MethodGet, "/api/fx/convert?from=USD&to=JPY&amount=1")

	suite.Equal(http.StatusNotFound, w.Code)
	var resp dto.RateNotFoundResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("JPY", resp.Currency)
	suite.Equal("target", resp.Side)
	suite.Equal("rate not found for target currency: JPY", resp.Error)
}

func (suite *ExchangeRateHandlerTestSuite) TestConvert_StorageError() {
	suite.mockService.On("Convert", mock.Anything, "USD", "GBP", decimalEq("1")).
		Return(nil, apperrors.NewStorageError("find latest exchange rate", errors.New("connection refused"))).Once()

	w := suite.do(http.MethodGet, "/api/fx/convert?from=USD&to=GBP&amount=1")

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.JSONEq(`{"error":"Failed to convert amount"}`, w.Body.String())
}

// --- Refresh ---

func (suite *ExchangeRateHandlerTestSuite) TestRefresh_Success() {
	outcome := &domain.RefreshOutcome{
		Status:     domain.RefreshSucceeded,
		Base:       "EUR",
		Date:       time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		RatesSaved: 31,
	}
	suite.mockService.On("RefreshRates", mock.Anything).Return(outcome, nil).Once()

	w := suite.do(http.MethodGet, "/api/fx/latest")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.RefreshResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("succeeded", resp.Status)
	suite.Equal("Exchange rates refreshed", resp.Message)
	suite.Equal("2024-05-10", resp.Date)
	suite.Equal(31, resp.RatesSaved)
	suite.Empty(resp.Reason)
}

func (suite *ExchangeRateHandlerTestSuite) TestRefresh_FailureStillAccepted() {
	providerErr := apperrors.NewProviderError("request latest rates", errors.New("timeout"))
	outcome := &domain.RefreshOutcome{
		Status: domain.RefreshFailed,
		Base:   "EUR",
		Reason: providerErr.Error(),
	}
	suite.mockService.On("RefreshRates", mock.Anything).Return(outcome, providerErr).Once()

	w := suite.do(http.MethodPost, "/api/fx/refresh")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.RefreshResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("failed", resp.Status)
	suite.Equal("Exchange rate refresh failed", resp.Message)
	suite.Contains(resp.Reason, "timeout")
	suite.Empty(resp.Date)
	suite.Zero(resp.RatesSaved)
}

func (suite *ExchangeRateHandlerTestSuite) TestRefresh_NilOutcome() {
	suite.mockService.On("RefreshRates", mock.Anything).Return(nil, errors.New("boom")).Once()

	w := suite.do(http.MethodGet, "/api/fx/latest")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.RefreshResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("failed", resp.Status)
	suite.Equal("EUR", resp.Base)
	suite.Equal("boom", resp.Reason)
}

// --- Rates ---

func (suite *ExchangeRateHandlerTestSuite) TestListLatestRates() {
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	rates := []domain.ExchangeRate{
		{ExchangeRateID: "a", BaseCurrencyCode: "EUR", TargetCurrencyCode: "EUR", Rate: decimal.NewFromInt(1), DateEffective: day},
		{ExchangeRateID: "b", BaseCurrencyCode: "EUR", TargetCurrencyCode: "USD", Rate: decimal.RequireFromString("1.0812"), DateEffective: day},
	}
	suite.mockService.On("LatestRates", mock.Anything).Return(rates, nil).Once()

	w := suite.do(http.MethodGet, "/api/fx/rates")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LatestRatesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("EUR", resp.Base)
	suite.Require().Len(resp.Rates, 2)
	suite.Equal("1.000000", resp.Rates[0].Rate)
	suite.Equal("USD", resp.Rates[1].TargetCurrencyCode)
	suite.Equal("1.081200", resp.Rates[1].Rate)
	suite.Equal("2024-05-10", resp.Rates[1].DateEffective)
}

func (suite *ExchangeRateHandlerTestSuite) TestListLatestRates_Error() {
	suite.mockService.On("LatestRates", mock.Anything).Return(nil, apperrors.NewStorageError("list", errors.New("down"))).Once()

	w := suite.do(http.MethodGet, "/api/fx/rates")

	suite.Equal(http.StatusInternalServerError, w.Code)
}

// --- Ambient routes ---

func (suite *ExchangeRateHandlerTestSuite) TestHealth() {
	suite.mockHealth.On("Ping", mock.Anything).Return(nil).Once()
	w := suite.do(http.MethodGet, "/health")
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())

	suite.mockHealth.On("Ping", mock.Anything).Return(errors.New("store down")).Once()
	w = suite.do(http.MethodGet, "/health")
	suite.Equal(http.StatusServiceUnavailable, w.Code)
}

func (suite *ExchangeRateHandlerTestSuite) TestMetricsEndpoint() {
	w := suite.do(http.MethodGet, "/metrics")
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "go_goroutines")
}

func (suite *ExchangeRateHandlerTestSuite) TestSwaggerDoc() {
	w := suite.do(http.MethodGet, "/swagger/doc.json")
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "/convert")
}

func (suite *ExchangeRateHandlerTestSuite) TestRateLimitOnAPIGroup() {
	limit := "1-M"
	suite.router = suite.newRouter(&limit)
	suite.mockService.On("LatestRates", mock.Anything).Return([]domain.ExchangeRate{}, nil)

	first := suite.do(http.MethodGet, "/api/fx/rates")
	second := suite.do(http.MethodGet, "/api/fx/rates")

	suite.Equal(http.StatusOK, first.Code)
	suite.Equal(http.StatusTooManyRequests, second.Code)

	// Health is outside the throttled group.
	suite.mockHealth.On("Ping", mock.Anything).Return(nil)
	suite.Equal(http.StatusOK, suite.do(http.MethodGet, "/health").Code)
}
