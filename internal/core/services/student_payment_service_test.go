package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hammamsawalma/edusystem/internal/apperrors"
	"github.com/hammamsawalma/edusystem/internal/core/domain"
	portssvc "github.com/hammamsawalma/edusystem/internal/core/ports/services"
	"github.com/hammamsawalma/edusystem/internal/core/services"
	"github.com/hammamsawalma/edusystem/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type StudentPaymentServiceTestSuite struct {
	suite.Suite
	mockPayments *MockStudentPaymentRepository
	mockStudents *MockStudentRepository
	service      portssvc.StudentPaymentSvcFacade
}

func (suite *StudentPaymentServiceTestSuite) SetupTest() {
	suite.mockPayments = new(MockStudentPaymentRepository)
	suite.mockStudents = new(MockStudentRepository)
	suite.service = services.NewStudentPaymentService(suite.mockPayments, suite.mockStudents)
}

// --- Test Cases ---

func (suite *StudentPaymentServiceTestSuite) TestCreatePayment_Success() {
	ctx := context.Background()
	admin := domain.Actor{ID: uuid.NewString(), Role: domain.RoleAdmin}
	teacherID := uuid.NewString()
	studentID := uuid.NewString()
	student := &domain.Student{StudentID: studentID, TeacherID: teacherID, Active: true}

	req := dto.CreateStudentPaymentRequest{
		StudentID:    studentID,
		Amount:       decimal.NewFromInt(150),
		CurrencyCode: "DZD",
		Status:       "completed",
		PaymentDate:  time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
	}

	suite.mockStudents.On("FindStudentByID", ctx, studentID).Return(student, nil).Once()
	suite.mockPayments.On("SavePayment", ctx, mock.MatchedBy(func(p domain.StudentPayment) bool {
		return p.StudentID == studentID && p.TeacherID == teacherID &&
			p.Amount.Equal(req.Amount) && p.Status == domain.StudentPaymentCompleted &&
			p.CreatedBy == admin.ID
	})).Return(nil).Once()
	// The create triggers the summary resync.
	suite.mockPayments.On("ListPaymentsByStudent", mock.Anything, studentID).
		Return([]domain.StudentPayment{}, nil).Once()
	suite.mockStudents.On("UpdatePaymentSummary", mock.Anything, studentID,
		decimal.Zero, (*time.Time)(nil), decimal.Zero).Return(nil).Once()

	payment, err := suite.service.CreatePayment(ctx, admin, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(payment)
	suite.Equal(teacherID, payment.TeacherID)
	suite.mockPayments.AssertExpectations(suite.T())
	suite.mockStudents.AssertExpectations(suite.T())
}

func (suite *StudentPaymentServiceTestSuite) TestCreatePayment_NonPositiveAmount() {
	ctx := context.Background()
	admin := domain.Actor{ID: uuid.NewString(), Role: domain.RoleAdmin}
	req := dto.CreateStudentPaymentRequest{
		StudentID: uuid.NewString(),
		Amount:    decimal.Zero,
		Status:    "completed",
	}

	payment, err := suite.service.CreatePayment(ctx, admin, req)

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPayments.AssertExpectations(suite.T())
}

func (suite *StudentPaymentServiceTestSuite) TestCreatePayment_TeacherCannotPayOthersStudent() {
	ctx := context.Background()
	teacher := domain.Actor{ID: uuid.NewString(), Role: domain.RoleTeacher}
	studentID := uuid.NewString()
	student := &domain.Student{StudentID: studentID, TeacherID: uuid.NewString(), Active: true}

	suite.mockStudents.On("FindStudentByID", ctx, studentID).Return(student, nil).Once()

	payment, err := suite.service.CreatePayment(ctx, teacher, dto.CreateStudentPaymentRequest{
		StudentID:   studentID,
		Amount:      decimal.NewFromInt(100),
		Status:      "pending",
		PaymentDate: time.Now(),
	})

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockStudents.AssertExpectations(suite.T())
}

func (suite *StudentPaymentServiceTestSuite) TestCreatePayment_ResyncFailureDoesNotFailCreate() {
	ctx := context.Background()
	admin := domain.Actor{ID: uuid.NewString(), Role: domain.RoleAdmin}
	studentID := uuid.NewString()
	student := &domain.Student{StudentID: studentID, TeacherID: uuid.NewString(), Active: true}

	suite.mockStudents.On("FindStudentByID", ctx, studentID).Return(student, nil).Once()
	suite.mockPayments.On("SavePayment", ctx, mock.AnythingOfType("domain.StudentPayment")).Return(nil).Once()
	suite.mockPayments.On("ListPaymentsByStudent", mock.Anything, studentID).
		Return(nil, assert.AnError).Once()

	payment, err := suite.service.CreatePayment(ctx, admin, dto.CreateStudentPaymentRequest{
		StudentID:   studentID,
		Amount:      decimal.NewFromInt(100),
		Status:      "completed",
		PaymentDate: time.Now(),
	})

	// The payment write already committed; the failed resync is swallowed.
	suite.Require().NoError(err)
	suite.Require().NotNil(payment)
	suite.mockPayments.AssertExpectations(suite.T())
	suite.mockStudents.AssertExpectations(suite.T())
}

func (suite *StudentPaymentServiceTestSuite) TestResyncStudentSummary_Idempotent() {
	ctx := context.Background()
	studentID := uuid.NewString()
	march := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	april := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

	payments := []domain.StudentPayment{
		{PaymentID: uuid.NewString(), StudentID: studentID,
			Amount: decimal.NewFromInt(100), Status: domain.StudentPaymentCompleted, PaymentDate: march},
		{PaymentID: uuid.NewString(), StudentID: studentID,
			Amount: decimal.NewFromInt(200), Status: domain.StudentPaymentCompleted, PaymentDate: april},
		{PaymentID: uuid.NewString(), StudentID: studentID,
			Amount: decimal.NewFromInt(50), Status: domain.StudentPaymentPending, PaymentDate: april},
		{PaymentID: uuid.NewString(), StudentID: studentID,
			Amount: decimal.NewFromInt(75), Status: domain.StudentPaymentFailed, PaymentDate: april},
	}

	suite.mockPayments.On("ListPaymentsByStudent", ctx, studentID).Return(payments, nil).Twice()
	suite.mockStudents.On("UpdatePaymentSummary", ctx, studentID,
		mock.MatchedBy(func(totalPaid decimal.Decimal) bool {
			return totalPaid.Equal(decimal.NewFromInt(300))
		}),
		mock.MatchedBy(func(last *time.Time) bool {
			return last != nil && last.Equal(april)
		}),
		mock.MatchedBy(func(balance decimal.Decimal) bool {
			return balance.Equal(decimal.NewFromInt(50))
		})).Return(nil).Twice()

	// Running the resync twice with no intervening mutation writes the
	// same values both times.
	suite.Require().NoError(suite.service.ResyncStudentSummary(ctx, studentID))
	suite.Require().NoError(suite.service.ResyncStudentSummary(ctx, studentID))

	suite.mockPayments.AssertExpectations(suite.T())
	suite.mockStudents.AssertExpectations(suite.T())
}

func (suite *StudentPaymentServiceTestSuite) TestDeletePayment_TriggersResync() {
	ctx := context.Background()
	admin := domain.Actor{ID: uuid.NewString(), Role: domain.RoleAdmin}
	studentID := uuid.NewString()
	payment := &domain.StudentPayment{
		PaymentID: uuid.NewString(),
		StudentID: studentID,
		TeacherID: uuid.NewString(),
		Amount:    decimal.NewFromInt(100),
		Status:    domain.StudentPaymentCompleted,
	}

	suite.mockPayments.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()
	suite.mockPayments.On("DeletePayment", ctx, payment.PaymentID).Return(nil).Once()
	suite.mockPayments.On("ListPaymentsByStudent", mock.Anything, studentID).
		Return([]domain.StudentPayment{}, nil).Once()
	suite.mockStudents.On("UpdatePaymentSummary", mock.Anything, studentID,
		decimal.Zero, (*time.Time)(nil), decimal.Zero).Return(nil).Once()

	err := suite.service.DeletePayment(ctx, admin, payment.PaymentID)

	suite.Require().NoError(err)
	suite.mockPayments.AssertExpectations(suite.T())
	suite.mockStudents.AssertExpectations(suite.T())
}

func TestStudentPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StudentPaymentServiceTestSuite))
}
