package pgsql

import (
	portsrepo "github.com/hammamsawalma/edusystem/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:           newPgxUserRepository(dbPool),
		StudentRepo:        newPgxStudentRepository(dbPool),
		StudentPaymentRepo: newPgxStudentPaymentRepository(dbPool),
		TeacherPaymentRepo: newPgxTeacherPaymentRepository(dbPool),
		ExpenseRepo:        newPgxExpenseRepository(dbPool),
		TimeEntryRepo:      newPgxTimeEntryRepository(dbPool),
		ReportRepo:         newPgxReportRepository(dbPool),
	}
}
