package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/hammamsawalma/edusystem/internal/apperrors"
	"github.com/hammamsawalma/edusystem/internal/core/domain"
	portssvc "github.com/hammamsawalma/edusystem/internal/core/ports/services"
	"github.com/hammamsawalma/edusystem/internal/dto"
	"github.com/hammamsawalma/edusystem/internal/handlers"
	"github.com/hammamsawalma/edusystem/internal/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountingService ---
type MockAccountingService struct {
	mock.Mock
}

func (m *MockAccountingService) StudentRevenue(ctx context.Context, actor domain.Actor, period domain.Period, teacherID *string) (*domain.StudentRevenueReport, error) {
	args := m.Called(ctx, actor, period, teacherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudentRevenueReport), args.Error(1)
}

func (m *MockAccountingService) TeacherReconciliation(ctx context.Context, actor domain.Actor, period domain.Period, teacherID *string) (*domain.TeacherReconciliationReport, error) {
	args := m.Called(ctx, actor, period, teacherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeacherReconciliationReport), args.Error(1)
}

func (m *MockAccountingService) ExpenseSummary(ctx context.Context, actor domain.Actor, period domain.Period, category *string, status *domain.ExpenseStatus) (*domain.ExpenseReport, error) {
	args := m.Called(ctx, actor, period, category, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseReport), args.Error(1)
}

func (m *MockAccountingService) ProfitLoss(ctx context.Context, actor domain.Actor, period domain.Period) (*domain.ProfitLossSummary, error) {
	args := m.Called(ctx, actor, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProfitLossSummary), args.Error(1)
}

func (m *MockAccountingService) CashFlow(ctx context.Context, actor domain.Actor, period domain.Period, granularity domain.Granularity) (*domain.CashFlowReport, error) {
	args := m.Called(ctx, actor, period, granularity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashFlowReport), args.Error(1)
}

func (m *MockAccountingService) Comparison(ctx context.Context, actor domain.Actor, current, previous domain.Period) (*domain.PeriodComparison, error) {
	args := m.Called(ctx, actor, current, previous)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodComparison), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.AccountingSvcFacade = (*MockAccountingService)(nil)

// --- Test Suite ---
type AccountingHandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	mockSvc   *MockAccountingService
	jwtSecret string
}

func (suite *AccountingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockSvc = new(MockAccountingService)
	v1 := suite.router.Group("/api/v1")
	handlers.RegisterAccountingRoutes(v1, suite.mockSvc)
}

// generateTestToken creates a signed JWT carrying the given role.
func (suite *AccountingHandlerTestSuite) generateTestToken(userID string, role domain.Role) string {
	claims := middleware.AccessClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "edusystem-test",
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *AccountingHandlerTestSuite) doRequest(url, token string) (*httptest.ResponseRecorder, dto.Envelope) {
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var envelope dto.Envelope
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &envelope))
	return w, envelope
}

// --- Test Cases ---

func (suite *AccountingHandlerTestSuite) TestGetProfitLoss_Success() {
	adminID := uuid.NewString()
	summary := &domain.ProfitLossSummary{Status: domain.StatusProfit}
	summary.Revenue.Total = decimal.NewFromInt(500)
	summary.NetIncome = decimal.NewFromInt(400)

	suite.mockSvc.On("ProfitLoss", mock.Anything,
		mock.MatchedBy(func(a domain.Actor) bool {
			return a.ID == adminID && a.Role == domain.RoleAdmin
		}),
		mock.MatchedBy(func(p domain.Period) bool {
			return p.Start.Equal(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))
		})).Return(summary, nil).Once()

	token := suite.generateTestToken(adminID, domain.RoleAdmin)
	w, envelope := suite.doRequest("/api/v1/accounting/profit-loss?startDate=2025-01-01&endDate=2025-03-31", token)

	suite.Equal(http.StatusOK, w.Code)
	suite.True(envelope.Success)
	data, ok := envelope.Data.(map[string]any)
	suite.Require().True(ok)
	suite.Equal(string(domain.StatusProfit), data["status"])
	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *AccountingHandlerTestSuite) TestGetProfitLoss_ForbiddenMapsTo403() {
	teacherID := uuid.NewString()

	suite.mockSvc.On("ProfitLoss", mock.Anything,
		mock.AnythingOfType("domain.Actor"), mock.AnythingOfType("domain.Period")).
		Return(nil, apperrors.ErrForbidden).Once()

	token := suite.generateTestToken(teacherID, domain.RoleTeacher)
	w, envelope := suite.doRequest("/api/v1/accounting/profit-loss", token)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.False(envelope.Success)
	suite.NotEmpty(envelope.Error)
	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *AccountingHandlerTestSuite) TestGetComparison_MissingBoundsRejected() {
	token := suite.generateTestToken(uuid.NewString(), domain.RoleAdmin)
	w, envelope := suite.doRequest("/api/v1/accounting/comparison?currentStart=2025-02-01&currentEnd=2025-02-28", token)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.False(envelope.Success)
	suite.mockSvc.AssertNotCalled(suite.T(), "Comparison", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountingHandlerTestSuite) TestGetCashFlow_InvalidGranularity() {
	token := suite.generateTestToken(uuid.NewString(), domain.RoleAdmin)
	w, envelope := suite.doRequest("/api/v1/accounting/cashflow?period=hourly", token)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.False(envelope.Success)
	suite.mockSvc.AssertNotCalled(suite.T(), "CashFlow", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountingHandlerTestSuite) TestMissingToken_Unauthorized() {
	w, envelope := suite.doRequest("/api/v1/accounting/profit-loss", "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.False(envelope.Success)
}

func TestAccountingHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AccountingHandlerTestSuite))
}
