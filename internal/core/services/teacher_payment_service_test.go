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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type TeacherPaymentServiceTestSuite struct {
	suite.Suite
	mockPayments *MockTeacherPaymentRepository
	mockUsers    *MockUserRepository
	service      portssvc.TeacherPaymentSvcFacade
	admin        domain.Actor
}

func (suite *TeacherPaymentServiceTestSuite) SetupTest() {
	suite.mockPayments = new(MockTeacherPaymentRepository)
	suite.mockUsers = new(MockUserRepository)
	suite.service = services.NewTeacherPaymentService(suite.mockPayments, suite.mockUsers)
	suite.admin = domain.Actor{ID: uuid.NewString(), Role: domain.RoleAdmin}
}

// --- Test Cases ---

func (suite *TeacherPaymentServiceTestSuite) TestCreatePayment_StartsPending() {
	ctx := context.Background()
	teacherID := uuid.NewString()
	teacher := &domain.User{UserID: teacherID, Role: domain.RoleTeacher}

	req := dto.CreateTeacherPaymentRequest{
		TeacherID:    teacherID,
		Amount:       decimal.NewFromInt(400),
		CurrencyCode: "DZD",
		PaymentDate:  time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
	}

	suite.mockUsers.On("FindUserByID", ctx, teacherID).Return(teacher, nil).Once()
	suite.mockPayments.On("SavePayment", ctx, mock.MatchedBy(func(p domain.TeacherPayment) bool {
		return p.TeacherID == teacherID && p.Status == domain.TeacherPaymentPending &&
			p.Amount.Equal(req.Amount) && p.CreatedBy == suite.admin.ID
	})).Return(nil).Once()

	payment, err := suite.service.CreatePayment(ctx, suite.admin, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(payment)
	suite.Equal(domain.TeacherPaymentPending, payment.Status)
	suite.mockPayments.AssertExpectations(suite.T())
	suite.mockUsers.AssertExpectations(suite.T())
}

func (suite *TeacherPaymentServiceTestSuite) TestCreatePayment_TargetMustBeTeacher() {
	ctx := context.Background()
	adminUser := &domain.User{UserID: uuid.NewString(), Role: domain.RoleAdmin}

	suite.mockUsers.On("FindUserByID", ctx, adminUser.UserID).Return(adminUser, nil).Once()

	payment, err := suite.service.CreatePayment(ctx, suite.admin, dto.CreateTeacherPaymentRequest{
		TeacherID:   adminUser.UserID,
		Amount:      decimal.NewFromInt(100),
		PaymentDate: time.Now(),
	})

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUsers.AssertExpectations(suite.T())
}

func (suite *TeacherPaymentServiceTestSuite) TestCreatePayment_NonAdminForbidden() {
	ctx := context.Background()
	teacher := domain.Actor{ID: uuid.NewString(), Role: domain.RoleTeacher}

	payment, err := suite.service.CreatePayment(ctx, teacher, dto.CreateTeacherPaymentRequest{
		TeacherID: teacher.ID,
		Amount:    decimal.NewFromInt(100),
	})

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *TeacherPaymentServiceTestSuite) TestUpdateStatus_PendingToApproved() {
	ctx := context.Background()
	payment := &domain.TeacherPayment{
		PaymentID: uuid.NewString(),
		TeacherID: uuid.NewString(),
		Amount:    decimal.NewFromInt(400),
		Status:    domain.TeacherPaymentPending,
	}

	suite.mockPayments.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()
	suite.mockPayments.On("UpdatePayment", ctx, mock.MatchedBy(func(p domain.TeacherPayment) bool {
		return p.Status == domain.TeacherPaymentApproved && p.LastUpdatedBy == suite.admin.ID
	})).Return(nil).Once()

	updated, err := suite.service.UpdateStatus(ctx, suite.admin, payment.PaymentID,
		dto.UpdateTeacherPaymentStatusRequest{Status: "approved"})

	suite.Require().NoError(err)
	suite.Equal(domain.TeacherPaymentApproved, updated.Status)
	suite.mockPayments.AssertExpectations(suite.T())
}

func (suite *TeacherPaymentServiceTestSuite) TestUpdateStatus_CannotSkipApproval() {
	ctx := context.Background()
	payment := &domain.TeacherPayment{
		PaymentID: uuid.NewString(),
		Status:    domain.TeacherPaymentPending,
	}

	suite.mockPayments.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()

	updated, err := suite.service.UpdateStatus(ctx, suite.admin, payment.PaymentID,
		dto.UpdateTeacherPaymentStatusRequest{Status: "paid"})

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPayments.AssertExpectations(suite.T())
}

func (suite *TeacherPaymentServiceTestSuite) TestUpdateStatus_PaidIsTerminal() {
	ctx := context.Background()
	payment := &domain.TeacherPayment{
		PaymentID: uuid.NewString(),
		Status:    domain.TeacherPaymentPaid,
	}

	suite.mockPayments.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()

	updated, err := suite.service.UpdateStatus(ctx, suite.admin, payment.PaymentID,
		dto.UpdateTeacherPaymentStatusRequest{Status: "approved"})

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPayments.AssertExpectations(suite.T())
}

func (suite *TeacherPaymentServiceTestSuite) TestDeletePayment_PaidRefused() {
	ctx := context.Background()
	payment := &domain.TeacherPayment{
		PaymentID: uuid.NewString(),
		Status:    domain.TeacherPaymentPaid,
	}

	suite.mockPayments.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()

	err := suite.service.DeletePayment(ctx, suite.admin, payment.PaymentID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPayments.AssertNotCalled(suite.T(), "DeletePayment", mock.Anything, mock.Anything)
	suite.mockPayments.AssertExpectations(suite.T())
}

func (suite *TeacherPaymentServiceTestSuite) TestDeletePayment_PendingAllowed() {
	ctx := context.Background()
	payment := &domain.TeacherPayment{
		PaymentID: uuid.NewString(),
		Status:    domain.TeacherPaymentPending,
	}

	suite.mockPayments.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()
	suite.mockPayments.On("DeletePayment", ctx, payment.PaymentID).Return(nil).Once()

	err := suite.service.DeletePayment(ctx, suite.admin, payment.PaymentID)

	suite.Require().NoError(err)
	suite.mockPayments.AssertExpectations(suite.T())
}

func TestTeacherPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TeacherPaymentServiceTestSuite))
}
