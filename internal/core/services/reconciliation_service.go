package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bilgisen/bookshall-sub000/internal/apperrors"
	"github.com/bilgisen/bookshall-sub000/internal/core/domain"
	portsrepo "github.com/bilgisen/bookshall-sub000/internal/core/ports/repositories"
	portssvc "github.com/bilgisen/bookshall-sub000/internal/core/ports/services"
)

// reconciliationService reports cached balances that disagree with the ledger. It never repairs them.
type reconciliationService struct {
	BaseService
	reconciler portsrepo.CreditReconciler
	now        func() time.Time
}

func NewReconciliationService(reconciler portsrepo.CreditReconciler) portssvc.ReconciliationSvc {
	return &reconciliationService{reconciler: reconciler, now: time.Now}
}

var _ portssvc.ReconciliationSvc = (*reconciliationService)(nil)

func (s *reconciliationService) CheckUser(ctx context.Context, userID string) (*domain.ReconciliationReport, error) {
	pos, err := s.reconciler.GetLedgerPosition(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("no balance recorded for user %s: %w", userID, err)
		}
		return nil, fmt.Errorf("failed to read ledger position: %w", err)
	}
	return s.report(ctx, []domain.LedgerPosition{*pos}), nil
}

func (s *reconciliationService) CheckAll(ctx context.Context) (*domain.ReconciliationReport, error) {
	positions, err := s.reconciler.ListLedgerPositions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger positions: %w", err)
	}
	return s.report(ctx, positions), nil
}

func (s *reconciliationService) report(ctx context.Context, positions []domain.LedgerPosition) *domain.ReconciliationReport {
	rep := &domain.ReconciliationReport{
		CheckedAt: s.now().UTC(),
		Checked:   len(positions),
		Drifted:   []domain.LedgerPosition{},
	}
	for _, p := range positions {
		if p.Consistent() {
			continue
		}
		s.LogWarn(ctx, "Balance drift detected",
			slog.String("user_id", p.UserID),
			slog.Int64("cached_balance", p.CachedBalance),
			slog.Int64("ledger_balance", p.LedgerBalance),
			slog.Int64("drift", p.Drift()))
		rep.Drifted = append(rep.Drifted, p)
	}
	s.LogInfo(ctx, "Reconciliation finished",
		slog.Int("checked", rep.Checked),
		slog.Int("drifted", len(rep.Drifted)))
	return rep
}
