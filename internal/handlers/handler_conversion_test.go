package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/currency_converter_app/internal/apperrors"
	"github.com/SscSPs/currency_converter_app/internal/core/domain"
	portssvc "github.com/SscSPs/currency_converter_app/internal/core/ports/services"
	"github.com/SscSPs/currency_converter_app/internal/dto"
	"github.com/SscSPs/currency_converter_app/internal/handlers"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testJWTSecret = "test-secret-key-that-is-long-enough"

// --- Mock ExchangeRateService ---
type MockExchangeRateService struct {
	mock.Mock
}

func (m *MockExchangeRateService) GetExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCode, toCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateService) ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateService) ListSupportedCurrencies(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockExchangeRateService) UpdateExchangeRate(ctx context.Context, req dto.UpdateExchangeRateRequest) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ExchangeRateSvcFacade = (*MockExchangeRateService)(nil)

// --- Mock ConversionService ---
type MockConversionService struct {
	mock.Mock
}

func (m *MockConversionService) Convert(ctx context.Context, req dto.ConvertRequest, userID string) (*domain.ConversionRecord, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConversionRecord), args.Error(1)
}

func (m *MockConversionService) GetUserHistory(ctx context.Context, userID string) ([]domain.ConversionRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ConversionRecord), args.Error(1)
}

func (m *MockConversionService) ClearUserHistory(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockConversionService) FormatConversion(ctx context.Context, record domain.ConversionRecord, decimalPlaces int) string {
	args := m.Called(ctx, record, decimalPlaces)
	return args.String(0)
}

// Ensure mock implements the interface
var _ portssvc.ConversionSvc = (*MockConversionService)(nil)

// generateTestToken creates a signed JWT for testing.
func generateTestToken(t *testing.T, userID string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Issuer:    "fxconv-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

func newJSONRequest(method, url string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockRateService *MockExchangeRateService
	mockConvService *MockConversionService
}

func (suite *HandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(handlers.RegisterValidators())
}

func (suite *HandlerTestSuite) SetupTest() {
	suite.router = gin.New()
	suite.mockRateService = new(MockExchangeRateService)
	suite.mockConvService = new(MockConversionService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterCurrencyRoutes(v1, suite.mockRateService)
	handlers.RegisterExchangeRateRoutes(v1, suite.mockRateService)
	handlers.RegisterConversionRoutes(v1, suite.mockConvService, testJWTSecret, 2)
}

func (suite *HandlerTestSuite) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *HandlerTestSuite) TestListCurrencies() {
	suite.mockRateService.On("ListSupportedCurrencies", mock.Anything).Return([]string{"EUR", "GBP", "USD"}, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/currencies", nil)
	w := suite.serve(req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListCurrenciesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal([]string{"EUR", "GBP", "USD"}, resp.Currencies)
	suite.mockRateService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestGetExchangeRate_Success() {
	rate := &domain.ExchangeRate{CurrencyPair: domain.CurrencyPair{From: "EUR", To: "GBP"}, Rate: 0.847}
	suite.mockRateService.On("GetExchangeRate", mock.Anything, "eur", "gbp").Return(rate, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/exchange-rates/eur/gbp", nil)
	w := suite.serve(req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ExchangeRateResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(dto.ExchangeRateResponse{FromCurrencyCode: "EUR", ToCurrencyCode: "GBP", Rate: 0.847}, resp)
}

func (suite *HandlerTestSuite) TestGetExchangeRate_NotFound() {
	suite.mockRateService.On("GetExchangeRate", mock.Anything, "USD", "JPY").
		Return(nil, &apperrors.RateNotFoundError{From: "USD", To: "JPY"}).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/exchange-rates/USD/JPY", nil)
	w := suite.serve(req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Contains(w.Body.String(), "no exchange rate found for USD to JPY")
}

func (suite *HandlerTestSuite) TestGetExchangeRate_ValidationError() {
	suite.mockRateService.On("GetExchangeRate", mock.Anything, "US", "EUR").
		Return(nil, apperrors.NewValidationError("currency codes must be at least 3 characters")).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/exchange-rates/US/EUR", nil)
	w := suite.serve(req)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestListExchangeRates_InternalError() {
	suite.mockRateService.On("ListExchangeRates", mock.Anything).Return(nil, assert.AnError).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/exchange-rates", nil)
	w := suite.serve(req)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Contains(w.Body.String(), "Failed to list exchange rates")
	suite.NotContains(w.Body.String(), assert.AnError.Error())
}

func (suite *HandlerTestSuite) TestUpdateExchangeRate_Success() {
	body := dto.UpdateExchangeRateRequest{FromCurrencyCode: "usd", ToCurrencyCode: "cad", Rate: 1.35}
	stored := &domain.ExchangeRate{CurrencyPair: domain.CurrencyPair{From: "USD", To: "CAD"}, Rate: 1.35}
	suite.mockRateService.On("UpdateExchangeRate", mock.Anything, body).Return(stored, nil).Once()

	w := suite.serve(newJSONRequest(http.MethodPut, "/api/v1/exchange-rates", body))

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"fromCurrencyCode":"USD","toCurrencyCode":"CAD","rate":1.35}`, w.Body.String())
	suite.mockRateService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestUpdateExchangeRate_BindingErrors() {
	bodies := []map[string]any{
		{"fromCurrencyCode": "USD", "toCurrencyCode": "CAD", "rate": 0},
		{"fromCurrencyCode": "USD", "toCurrencyCode": "CAD", "rate": -2},
		{"fromCurrencyCode": "US", "toCurrencyCode": "CAD", "rate": 1.2},
		{"fromCurrencyCode": "U$D", "toCurrencyCode": "CAD", "rate": 1.2},
		{"toCurrencyCode": "CAD", "rate": 1.2},
	}

	for _, body := range bodies {
		w := suite.serve(newJSONRequest(http.MethodPut, "/api/v1/exchange-rates", body))
		suite.Equal(http.StatusBadRequest, w.Code, "body %v", body)
	}
	suite.mockRateService.AssertNotCalled(suite.T(), "UpdateExchangeRate", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestConvert_Anonymous() {
	body := dto.ConvertRequest{Amount: 100, FromCurrencyCode: "usd", ToCurrencyCode: "eur"}
	record := &domain.ConversionRecord{
		OriginalAmount:  100,
		FromCurrency:    "USD",
		ToCurrency:      "EUR",
		ConvertedAmount: 91,
		ExchangeRate:    0.91,
		Timestamp:       "2024-06-01T12:00:00.000000Z",
	}
	suite.mockConvService.On("Convert", mock.Anything, body, "").Return(record, nil).Once()
	suite.mockConvService.On("FormatConversion", mock.Anything, *record, 2).Return("100.00 USD = 91.00 EUR (rate: 0.91)").Once()

	w := suite.serve(newJSONRequest(http.MethodPost, "/api/v1/conversions", body))

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ConversionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("USD", resp.FromCurrency)
	suite.Equal("EUR", resp.ToCurrency)
	suite.Equal(91.0, resp.ConvertedAmount)
	suite.Equal("100.00 USD = 91.00 EUR (rate: 0.91)", resp.Formatted)
	suite.mockConvService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestConvert_AuthenticatedWithDecimalPlaces() {
	userID := uuid.NewString()
	places := 4
	body := dto.ConvertRequest{Amount: 10, FromCurrencyCode: "EUR", ToCurrencyCode: "GBP", DecimalPlaces: &places}
	record := &domain.ConversionRecord{OriginalAmount: 10, FromCurrency: "EUR", ToCurrency: "GBP", ConvertedAmount: 8.47, ExchangeRate: 0.847}

	suite.mockConvService.On("Convert", mock.Anything, mock.MatchedBy(func(r dto.ConvertRequest) bool {
		return r.Amount == 10 && r.DecimalPlaces != nil && *r.DecimalPlaces == 4
	}), userID).Return(record, nil).Once()
	suite.mockConvService.On("FormatConversion", mock.Anything, *record, 4).Return("10.0000 EUR = 8.4700 GBP (rate: 0.8470)").Once()

	req := newJSONRequest(http.MethodPost, "/api/v1/conversions", body)
	req.Header.Set("Authorization", "Bearer "+generateTestToken(suite.T(), userID))
	w := suite.serve(req)

	suite.Equal(http.StatusCreated, w.Code)
	suite.Contains(w.Body.String(), "10.0000 EUR = 8.4700 GBP")
	suite.mockConvService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestConvert_InvalidToken() {
	body := dto.ConvertRequest{Amount: 10, FromCurrencyCode: "EUR", ToCurrencyCode: "GBP"}
	req := newJSONRequest(http.MethodPost, "/api/v1/conversions", body)
	req.Header.Set("Authorization", "Bearer garbage")

	w := suite.serve(req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockConvService.AssertNotCalled(suite.T(), "Convert", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestConvert_BindingErrors() {
	bodies := []map[string]any{
		{"amount": 0, "fromCurrencyCode": "USD", "toCurrencyCode": "EUR"},
		{"amount": -10, "fromCurrencyCode": "USD", "toCurrencyCode": "EUR"},
		{"amount": 10, "fromCurrencyCode": "USD"},
		{"amount": 10, "fromCurrencyCode": "USD", "toCurrencyCode": "EUR", "decimalPlaces": -1},
	}

	for _, body := range bodies {
		w := suite.serve(newJSONRequest(http.MethodPost, "/api/v1/conversions", body))
		suite.Equal(http.StatusBadRequest, w.Code, "body %v", body)
	}
}

func (suite *HandlerTestSuite) TestConvert_RateNotFound() {
	body := dto.ConvertRequest{Amount: 10, FromCurrencyCode: "USD", ToCurrencyCode: "JPY"}
	suite.mockConvService.On("Convert", mock.Anything, body, "").
		Return(nil, &apperrors.RateNotFoundError{From: "USD", To: "JPY"}).Once()

	w := suite.serve(newJSONRequest(http.MethodPost, "/api/v1/conversions", body))

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestGetHistory() {
	userID := uuid.NewString()
	records := []domain.ConversionRecord{
		{OriginalAmount: 100, FromCurrency: "USD", ToCurrency: "EUR", ConvertedAmount: 91, ExchangeRate: 0.91, Timestamp: "2024-06-01T12:00:00.000000Z"},
	}
	suite.mockConvService.On("GetUserHistory", mock.Anything, userID).Return(records, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/me/history", nil)
	req.Header.Set("Authorization", "Bearer "+generateTestToken(suite.T(), userID))
	w := suite.serve(req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.HistoryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(userID, resp.UserID)
	suite.Require().Len(resp.Conversions, 1)
	suite.Equal("2024-06-01T12:00:00.000000Z", resp.Conversions[0].Timestamp)
}

func (suite *HandlerTestSuite) TestGetHistory_RequiresToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/me/history", nil)
	w := suite.serve(req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockConvService.AssertNotCalled(suite.T(), "GetUserHistory", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestClearHistory() {
	userID := uuid.NewString()
	suite.mockConvService.On("ClearUserHistory", mock.Anything, userID).Return(nil).Once()

	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/me/history", nil)
	req.Header.Set("Authorization", "Bearer "+generateTestToken(suite.T(), userID))
	w := suite.serve(req)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockConvService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestClearHistory_NotFound() {
	userID := uuid.NewString()
	suite.mockConvService.On("ClearUserHistory", mock.Anything, userID).
		Return(apperrors.NewNotFoundError("no conversion history for user " + userID)).Once()

	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/me/history", nil)
	req.Header.Set("Authorization", "Bearer "+generateTestToken(suite.T(), userID))
	w := suite.serve(req)

	suite.Equal(http.StatusNotFound, w.Code)
}

// --- Run Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
