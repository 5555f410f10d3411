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
type TimeEntryServiceTestSuite struct {
	suite.Suite
	mockEntries *MockTimeEntryRepository
	mockUsers   *MockUserRepository
	service     portssvc.TimeEntrySvcFacade
}

func (suite *TimeEntryServiceTestSuite) SetupTest() {
	suite.mockEntries = new(MockTimeEntryRepository)
	suite.mockUsers = new(MockUserRepository)
	suite.service = services.NewTimeEntryService(suite.mockEntries, suite.mockUsers)
}

// --- Test Cases ---

func (suite *TimeEntryServiceTestSuite) TestCreateEntry_FallsBackToTeacherRate() {
	ctx := context.Background()
	actor := domain.Actor{ID: uuid.NewString(), Role: domain.RoleTeacher}
	teacher := &domain.User{
		UserID:     actor.ID,
		Role:       domain.RoleTeacher,
		HourlyRate: decimalPtr(decimal.NewFromInt(80)),
	}

	req := dto.CreateTimeEntryRequest{
		Date:        time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC),
		HoursWorked: decimal.NewFromFloat(2.5),
	}

	suite.mockUsers.On("FindUserByID", ctx, actor.ID).Return(teacher, nil).Once()
	suite.mockEntries.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.TimeEntry) bool {
		return e.TeacherID == actor.ID &&
			e.HourlyRate.Equal(decimal.NewFromInt(80)) &&
			e.TotalAmount.Equal(decimal.NewFromInt(200))
	})).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, actor, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.True(entry.TotalAmount.Equal(decimal.NewFromInt(200)))
	suite.mockEntries.AssertExpectations(suite.T())
	suite.mockUsers.AssertExpectations(suite.T())
}

func (suite *TimeEntryServiceTestSuite) TestCreateEntry_ExplicitRateWins() {
	ctx := context.Background()
	actor := domain.Actor{ID: uuid.NewString(), Role: domain.RoleTeacher}
	teacher := &domain.User{
		UserID:     actor.ID,
		Role:       domain.RoleTeacher,
		HourlyRate: decimalPtr(decimal.NewFromInt(80)),
	}

	req := dto.CreateTimeEntryRequest{
		Date:        time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC),
		HoursWorked: decimal.NewFromInt(4),
		HourlyRate:  decimalPtr(decimal.NewFromInt(100)),
	}

	suite.mockUsers.On("FindUserByID", ctx, actor.ID).Return(teacher, nil).Once()
	suite.mockEntries.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.TimeEntry) bool {
		return e.HourlyRate.Equal(decimal.NewFromInt(100)) &&
			e.TotalAmount.Equal(decimal.NewFromInt(400))
	})).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, actor, req)

	suite.Require().NoError(err)
	suite.True(entry.HourlyRate.Equal(decimal.NewFromInt(100)))
	suite.mockEntries.AssertExpectations(suite.T())
}

func (suite *TimeEntryServiceTestSuite) TestCreateEntry_NoRateConfigured() {
	ctx := context.Background()
	actor := domain.Actor{ID: uuid.NewString(), Role: domain.RoleTeacher}
	teacher := &domain.User{UserID: actor.ID, Role: domain.RoleTeacher, HourlyRate: nil}

	suite.mockUsers.On("FindUserByID", ctx, actor.ID).Return(teacher, nil).Once()

	entry, err := suite.service.CreateEntry(ctx, actor, dto.CreateTimeEntryRequest{
		Date:        time.Now(),
		HoursWorked: decimal.NewFromInt(1),
	})

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUsers.AssertExpectations(suite.T())
}

func (suite *TimeEntryServiceTestSuite) TestCreateEntry_TeacherCannotLogForOthers() {
	ctx := context.Background()
	actor := domain.Actor{ID: uuid.NewString(), Role: domain.RoleTeacher}

	entry, err := suite.service.CreateEntry(ctx, actor, dto.CreateTimeEntryRequest{
		TeacherID:   uuid.NewString(),
		Date:        time.Now(),
		HoursWorked: decimal.NewFromInt(1),
	})

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *TimeEntryServiceTestSuite) TestCreateEntry_AdminMustNameTeacher() {
	ctx := context.Background()
	admin := domain.Actor{ID: uuid.NewString(), Role: domain.RoleAdmin}

	entry, err := suite.service.CreateEntry(ctx, admin, dto.CreateTimeEntryRequest{
		Date:        time.Now(),
		HoursWorked: decimal.NewFromInt(1),
	})

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrMissingParameter)
}

func (suite *TimeEntryServiceTestSuite) TestUpdateEntry_RederivesTotal() {
	ctx := context.Background()
	actor := domain.Actor{ID: uuid.NewString(), Role: domain.RoleTeacher}
	entry := &domain.TimeEntry{
		EntryID:     uuid.NewString(),
		TeacherID:   actor.ID,
		HoursWorked: decimal.NewFromInt(2),
		HourlyRate:  decimal.NewFromInt(80),
		TotalAmount: decimal.NewFromInt(160),
	}

	suite.mockEntries.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockEntries.On("UpdateEntry", ctx, mock.MatchedBy(func(e domain.TimeEntry) bool {
		return e.HoursWorked.Equal(decimal.NewFromInt(3)) &&
			e.TotalAmount.Equal(decimal.NewFromInt(240))
	})).Return(nil).Once()

	updated, err := suite.service.UpdateEntry(ctx, actor, entry.EntryID, dto.UpdateTimeEntryRequest{
		HoursWorked: decimalPtr(decimal.NewFromInt(3)),
	})

	suite.Require().NoError(err)
	suite.True(updated.TotalAmount.Equal(decimal.NewFromInt(240)))
	suite.mockEntries.AssertExpectations(suite.T())
}

func (suite *TimeEntryServiceTestSuite) TestDeleteEntry_OtherTeacherForbidden() {
	ctx := context.Background()
	actor := domain.Actor{ID: uuid.NewString(), Role: domain.RoleTeacher}
	entry := &domain.TimeEntry{EntryID: uuid.NewString(), TeacherID: uuid.NewString()}

	suite.mockEntries.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	err := suite.service.DeleteEntry(ctx, actor, entry.EntryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockEntries.AssertExpectations(suite.T())
}

func TestTimeEntryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TimeEntryServiceTestSuite))
}
