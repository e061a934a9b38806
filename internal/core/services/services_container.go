package services

import (
	portsrepo "github.com/bilgisen/bookshall-sub000/internal/core/ports/repositories"
	portssvc "github.com/bilgisen/bookshall-sub000/internal/core/ports/services"
	"github.com/bilgisen/bookshall-sub000/internal/platform/config"
	"github.com/bilgisen/bookshall-sub000/internal/platform/metrics"
	"github.com/bilgisen/bookshall-sub000/internal/platform/pricing"
	"github.com/bilgisen/bookshall-sub000/internal/utils"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// m and analytics may be nil.
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	prices *pricing.Table,
	m *metrics.Metrics,
	analytics *utils.PosthogClientWrapper,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The credit service comes first: every other writer goes through it.
	container.Credit = NewCreditService(
		repos.CreditRepo,
		WithMaxHistoryLimit(cfg.MaxHistoryLimit),
		WithCreditMetrics(m),
		WithCreditAnalytics(analytics),
	)

	container.PaidAction = NewPaidActionService(container.Credit, prices, m)
	container.BillingWebhook = NewBillingWebhookService(cfg.BillingWebhookSecret, repos.UserRepo, container.Credit, prices, m)
	container.User = NewUserService(repos.UserRepo)
	container.Reconciliation = NewReconciliationService(repos.CreditRepo)

	return container
}
