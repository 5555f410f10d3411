package services

// ServiceContainer bundles every service implementation for route wiring.
type ServiceContainer struct {
	User           UserSvcFacade
	Token          TokenSvcFacade
	GoogleOAuth    GoogleOAuthSvcFacade
	Student        StudentSvcFacade
	StudentPayment StudentPaymentSvcFacade
	TeacherPayment TeacherPaymentSvcFacade
	Expense        ExpenseSvcFacade
	TimeEntry      TimeEntrySvcFacade
	Accounting     AccountingSvcFacade
	Dashboard      DashboardSvcFacade
	Report         ReportSvcFacade
}
