package services_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/hammamsawalma/edusystem/internal/apperrors"
	"github.com/hammamsawalma/edusystem/internal/core/domain"
	portssvc "github.com/hammamsawalma/edusystem/internal/core/ports/services"
	"github.com/hammamsawalma/edusystem/internal/core/services"
	"github.com/hammamsawalma/edusystem/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUsers *MockUserRepository
	service   portssvc.UserSvcFacade
	admin     domain.Actor
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUsers = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUsers)
	suite.admin = domain.Actor{ID: uuid.NewString(), Role: domain.RoleAdmin}
}

// --- Test Cases ---

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Name:       "New Teacher",
		Email:      "teacher@example.com",
		Password:   "password1234",
		Role:       "teacher",
		HourlyRate: decimalPtr(decimal.NewFromInt(75)),
	}

	suite.mockUsers.On("FindUserByEmail", ctx, req.Email).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUsers.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == req.Email && u.Role == domain.RoleTeacher &&
			u.AuthProvider == domain.ProviderLocal &&
			u.PasswordHash != "" && u.PasswordHash != req.Password &&
			u.CreatedBy == suite.admin.ID
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, suite.admin, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.NoError(bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)))
	suite.mockUsers.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateEmail() {
	ctx := context.Background()
	existing := &domain.User{UserID: uuid.NewString(), Email: "taken@example.com"}

	suite.mockUsers.On("FindUserByEmail", ctx, existing.Email).Return(existing, nil).Once()

	user, err := suite.service.CreateUser(ctx, suite.admin, dto.CreateUserRequest{
		Name:     "Dup",
		Email:    existing.Email,
		Password: "password1234",
		Role:     "teacher",
	})

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUsers.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_NonAdminForbidden() {
	ctx := context.Background()
	teacher := domain.Actor{ID: uuid.NewString(), Role: domain.RoleTeacher}

	user, err := suite.service.CreateUser(ctx, teacher, dto.CreateUserRequest{
		Name:     "Nope",
		Email:    "nope@example.com",
		Password: "password1234",
		Role:     "teacher",
	})

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *UserServiceTestSuite) TestCreateOAuthUser_LinksExistingByEmail() {
	ctx := context.Background()
	providerID := uuid.NewString()
	existing := &domain.User{
		UserID:        uuid.NewString(),
		Email:         "linked@example.com",
		Role:          domain.RoleTeacher,
		AuthProvider:  domain.ProviderLocal,
		EmailVerified: false,
	}

	suite.mockUsers.On("FindUserByProviderID", ctx, domain.ProviderGoogle, providerID).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUsers.On("FindUserByEmail", ctx, existing.Email).Return(existing, nil).Once()
	suite.mockUsers.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.UserID == existing.UserID &&
			u.AuthProvider == domain.ProviderGoogle &&
			u.ProviderUserID == providerID &&
			u.EmailVerified
	})).Return(nil).Once()

	user, err := suite.service.CreateOAuthUser(ctx, "Linked", existing.Email, domain.ProviderGoogle, providerID, true)

	suite.Require().NoError(err)
	suite.Equal(existing.UserID, user.UserID)
	suite.mockUsers.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateOAuthUser_CreatesTeacherAccount() {
	ctx := context.Background()
	providerID := uuid.NewString()

	suite.mockUsers.On("FindUserByProviderID", ctx, domain.ProviderGoogle, providerID).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUsers.On("FindUserByEmail", ctx, "new@example.com").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUsers.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == "new@example.com" && u.Role == domain.RoleTeacher &&
			u.AuthProvider == domain.ProviderGoogle && u.ProviderUserID == providerID
	})).Return(nil).Once()

	user, err := suite.service.CreateOAuthUser(ctx, "New", "new@example.com", domain.ProviderGoogle, providerID, true)

	suite.Require().NoError(err)
	suite.Equal(domain.RoleTeacher, user.Role)
	suite.mockUsers.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticate_WrongPassword() {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.DefaultCost)
	user := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "auth@example.com",
		PasswordHash: string(hash),
	}

	suite.mockUsers.On("FindUserByEmail", ctx, user.Email).Return(user, nil).Once()

	got, err := suite.service.Authenticate(ctx, user.Email, "wrong-password")

	suite.Require().Error(err)
	suite.Nil(got)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(http.StatusUnauthorized, appErr.Code)
	suite.mockUsers.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticate_UnknownEmailSameError() {
	ctx := context.Background()

	suite.mockUsers.On("FindUserByEmail", ctx, "ghost@example.com").
		Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.Authenticate(ctx, "ghost@example.com", "whatever")

	// Unknown email and bad password are indistinguishable to the caller.
	suite.Require().Error(err)
	suite.Nil(got)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(http.StatusUnauthorized, appErr.Code)
	suite.mockUsers.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateUser_RateChangeAdminOnly() {
	ctx := context.Background()
	teacher := domain.Actor{ID: uuid.NewString(), Role: domain.RoleTeacher}
	user := &domain.User{UserID: teacher.ID, Role: domain.RoleTeacher}

	suite.mockUsers.On("FindUserByID", ctx, teacher.ID).Return(user, nil).Once()

	got, err := suite.service.UpdateUser(ctx, teacher, teacher.ID, dto.UpdateUserRequest{
		HourlyRate: decimalPtr(decimal.NewFromInt(999)),
	})

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUsers.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestDeleteUser_CannotDeleteSelf() {
	ctx := context.Background()

	err := suite.service.DeleteUser(ctx, suite.admin, suite.admin.ID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUsers.AssertNotCalled(suite.T(), "MarkUserDeleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
