package services

import (
	portsrepo "github.com/hammamsawalma/edusystem/internal/core/ports/repositories"
	portssvc "github.com/hammamsawalma/edusystem/internal/core/ports/services"
	"github.com/hammamsawalma/edusystem/pkg/config"
)

// NewServiceContainer wires every service over the repository provider.
func NewServiceContainer(repos portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	accounting := NewAccountingService(repos)

	return &portssvc.ServiceContainer{
		User:           NewUserService(repos.UserRepo),
		Token:          NewTokenService(cfg),
		GoogleOAuth:    NewGoogleOAuthService(cfg),
		Student:        NewStudentService(repos.StudentRepo, repos.UserRepo),
		StudentPayment: NewStudentPaymentService(repos.StudentPaymentRepo, repos.StudentRepo),
		TeacherPayment: NewTeacherPaymentService(repos.TeacherPaymentRepo, repos.UserRepo),
		Expense:        NewExpenseService(repos.ExpenseRepo),
		TimeEntry:      NewTimeEntryService(repos.TimeEntryRepo, repos.UserRepo),
		Accounting:     accounting,
		Dashboard:      NewDashboardService(repos),
		Report:         NewReportService(repos.ReportRepo, accounting),
	}
}
