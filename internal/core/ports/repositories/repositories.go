package repositories

// RepositoryProvider bundles every repository implementation so wiring in
// main stays in one place.
type RepositoryProvider struct {
	UserRepo           UserRepository
	StudentRepo        StudentRepository
	StudentPaymentRepo StudentPaymentRepository
	TeacherPaymentRepo TeacherPaymentRepository
	ExpenseRepo        ExpenseRepository
	TimeEntryRepo      TimeEntryRepository
	ReportRepo         ReportRepository
}
