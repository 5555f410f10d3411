package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hammamsawalma/edusystem/internal/apperrors"
	"github.com/hammamsawalma/edusystem/internal/core/domain"
	portsrepo "github.com/hammamsawalma/edusystem/internal/core/ports/repositories"
	portssvc "github.com/hammamsawalma/edusystem/internal/core/ports/services"
	"github.com/hammamsawalma/edusystem/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type DashboardServiceTestSuite struct {
	suite.Suite
	mockStudents        *MockStudentRepository
	mockStudentPayments *MockStudentPaymentRepository
	mockTeacherPayments *MockTeacherPaymentRepository
	mockExpenses        *MockExpenseRepository
	mockTimeEntries     *MockTimeEntryRepository
	service             portssvc.DashboardSvcFacade

	// A Wednesday, so the week window starts two days earlier.
	now time.Time
}

func (suite *DashboardServiceTestSuite) SetupTest() {
	suite.mockStudents = new(MockStudentRepository)
	suite.mockStudentPayments = new(MockStudentPaymentRepository)
	suite.mockTeacherPayments = new(MockTeacherPaymentRepository)
	suite.mockExpenses = new(MockExpenseRepository)
	suite.mockTimeEntries = new(MockTimeEntryRepository)
	suite.now = time.Date(2025, time.March, 12, 15, 0, 0, 0, time.UTC)

	suite.service = services.NewDashboardService(portsrepo.RepositoryProvider{
		StudentRepo:        suite.mockStudents,
		StudentPaymentRepo: suite.mockStudentPayments,
		TeacherPaymentRepo: suite.mockTeacherPayments,
		ExpenseRepo:        suite.mockExpenses,
		TimeEntryRepo:      suite.mockTimeEntries,
	}, services.WithDashboardClock(func() time.Time { return suite.now }))
}

// --- Test Cases ---

func (suite *DashboardServiceTestSuite) TestStats_NonAdminForbidden() {
	ctx := context.Background()
	teacher := domain.Actor{ID: uuid.NewString(), Role: domain.RoleTeacher}

	stats, err := suite.service.Stats(ctx, teacher)

	suite.Require().Error(err)
	suite.Nil(stats)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *DashboardServiceTestSuite) TestStats_WindowBoundsAndSums() {
	ctx := context.Background()
	admin := domain.Actor{ID: uuid.NewString(), Role: domain.RoleAdmin}

	dayStart := time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC)
	weekStart := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	// The three windows are fetched concurrently, so the capture is locked.
	var mu sync.Mutex
	seenStarts := make(map[time.Time]bool)
	suite.mockStudentPayments.On("ListPaymentsInPeriod", mock.Anything, mock.MatchedBy(func(p domain.Period) bool {
		mu.Lock()
		seenStarts[p.Start] = true
		mu.Unlock()
		return p.End.Equal(suite.now)
	}), (*string)(nil)).Return([]domain.StudentPayment{
		{Amount: decimal.NewFromInt(100), Status: domain.StudentPaymentCompleted, PaymentDate: suite.now},
		{Amount: decimal.NewFromInt(40), Status: domain.StudentPaymentPending, PaymentDate: suite.now},
	}, nil).Times(3)
	suite.mockTeacherPayments.On("ListPaymentsInPeriod", mock.Anything, mock.AnythingOfType("domain.Period"), (*string)(nil)).
		Return([]domain.TeacherPayment{
			{Amount: decimal.NewFromInt(30), Status: domain.TeacherPaymentPaid, PaymentDate: suite.now},
		}, nil).Times(3)
	suite.mockExpenses.On("ListExpensesInPeriod", mock.Anything, mock.AnythingOfType("domain.Period"), mock.AnythingOfType("repositories.ExpenseFilter")).
		Return([]domain.Expense{
			{Amount: decimal.NewFromInt(10), Category: "supplies", Status: domain.ExpenseApproved, Date: suite.now},
		}, nil).Times(3)
	suite.mockStudents.On("CountActiveStudents", mock.Anything, (*string)(nil)).Return(7, nil).Once()

	stats, err := suite.service.Stats(ctx, admin)

	suite.Require().NoError(err)
	suite.Equal(7, stats.ActiveStudents)

	// Each window counts completed inflows only, minus paid payouts and
	// approved expenses.
	for _, ps := range []domain.PeriodStats{stats.Today, stats.ThisWeek, stats.ThisMonth} {
		suite.True(ps.Revenue.Equal(decimal.NewFromInt(100)))
		suite.True(ps.Expenses.Equal(decimal.NewFromInt(40)))
		suite.True(ps.Net.Equal(decimal.NewFromInt(60)))
		suite.Equal(1, ps.Payments)
	}

	suite.True(seenStarts[dayStart])
	suite.True(seenStarts[weekStart])
	suite.True(seenStarts[monthStart])

	suite.mockStudents.AssertExpectations(suite.T())
	suite.mockStudentPayments.AssertExpectations(suite.T())
	suite.mockTeacherPayments.AssertExpectations(suite.T())
	suite.mockExpenses.AssertExpectations(suite.T())
}

func (suite *DashboardServiceTestSuite) TestTeacherStats_TeacherAlwaysScopedToSelf() {
	ctx := context.Background()
	teacher := domain.Actor{ID: uuid.NewString(), Role: domain.RoleTeacher}
	otherID := uuid.NewString()

	ownScope := mock.MatchedBy(func(id *string) bool { return id != nil && *id == teacher.ID })
	suite.mockTimeEntries.On("ListEntriesInPeriod", mock.Anything, mock.AnythingOfType("domain.Period"), ownScope).
		Return([]domain.TimeEntry{}, nil).Times(4)
	suite.mockTeacherPayments.On("ListPaymentsInPeriod", mock.Anything, mock.AnythingOfType("domain.Period"), ownScope).
		Return([]domain.TeacherPayment{}, nil).Once()

	// The teacher names someone else; the scope still forces their own ID.
	stats, err := suite.service.TeacherStats(ctx, teacher, &otherID)

	suite.Require().NoError(err)
	suite.Equal(teacher.ID, stats.TeacherID)
	suite.mockTimeEntries.AssertExpectations(suite.T())
	suite.mockTeacherPayments.AssertExpectations(suite.T())
}

func (suite *DashboardServiceTestSuite) TestTeacherStats_AdminMustNameTeacher() {
	ctx := context.Background()
	admin := domain.Actor{ID: uuid.NewString(), Role: domain.RoleAdmin}

	stats, err := suite.service.TeacherStats(ctx, admin, nil)

	suite.Require().Error(err)
	suite.Nil(stats)
	suite.ErrorIs(err, apperrors.ErrMissingParameter)
}

func (suite *DashboardServiceTestSuite) TestTeacherStats_UnpaidEarningsClamped() {
	ctx := context.Background()
	admin := domain.Actor{ID: uuid.NewString(), Role: domain.RoleAdmin}
	teacherID := uuid.NewString()
	yearStart := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	scope := mock.MatchedBy(func(id *string) bool { return id != nil && *id == teacherID })
	yearPeriod := mock.MatchedBy(func(p domain.Period) bool { return p.Start.Equal(yearStart) })
	shortPeriod := mock.MatchedBy(func(p domain.Period) bool { return !p.Start.Equal(yearStart) })

	suite.mockTimeEntries.On("ListEntriesInPeriod", mock.Anything, shortPeriod, scope).
		Return([]domain.TimeEntry{}, nil).Times(3)
	suite.mockTimeEntries.On("ListEntriesInPeriod", mock.Anything, yearPeriod, scope).
		Return([]domain.TimeEntry{
			{TeacherID: teacherID, HoursWorked: decimal.NewFromInt(10), HourlyRate: decimal.NewFromInt(50)},
		}, nil).Once()
	suite.mockTeacherPayments.On("ListPaymentsInPeriod", mock.Anything, yearPeriod, scope).
		Return([]domain.TeacherPayment{
			{TeacherID: teacherID, Amount: decimal.NewFromInt(600), Status: domain.TeacherPaymentPaid},
		}, nil).Once()

	stats, err := suite.service.TeacherStats(ctx, admin, &teacherID)

	suite.Require().NoError(err)
	// 500 earned against 600 settled clamps to zero, never negative.
	suite.True(stats.UnpaidEarnings.IsZero())
	suite.mockTimeEntries.AssertExpectations(suite.T())
	suite.mockTeacherPayments.AssertExpectations(suite.T())
}

func TestDashboardServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DashboardServiceTestSuite))
}
