package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used by the handlers and the command line.
type ServiceContainer struct {
	Credit         CreditSvcFacade
	PaidAction     PaidActionSvc
	BillingWebhook BillingWebhookSvc
	User           UserSvcFacade
	Reconciliation ReconciliationSvc
}
