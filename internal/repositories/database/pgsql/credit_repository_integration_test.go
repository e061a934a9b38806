package pgsql_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bilgisen/bookshall-sub000/internal/apperrors"
	"github.com/bilgisen/bookshall-sub000/internal/core/domain"
	portsrepo "github.com/bilgisen/bookshall-sub000/internal/core/ports/repositories"
	portssvc "github.com/bilgisen/bookshall-sub000/internal/core/ports/services"
	"github.com/bilgisen/bookshall-sub000/internal/core/services"
	"github.com/bilgisen/bookshall-sub000/internal/platform/pricing"
	"github.com/bilgisen/bookshall-sub000/internal/repositories/database/pgsql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserID() string {
	return "it-" + uuid.NewString()
}

func newLedger(t *testing.T, startingBalance int64) (*pgsql.PgxCreditRepository, portssvc.CreditSvcFacade) {
	pool := requireDB(t)
	repo := pgsql.NewCreditRepository(pool, pgsql.CreditRepositoryOptions{StartingBalance: startingBalance}, testLogger)
	return repo, services.NewCreditService(repo)
}

// assertConsistent checks that the cached balance equals the signed sum of the ledger.
func assertConsistent(t *testing.T, repo *pgsql.PgxCreditRepository, userID string) {
	t.Helper()
	pos, err := repo.GetLedgerPosition(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, pos.Consistent(), "cached %d, ledger %d", pos.CachedBalance, pos.LedgerBalance)
}

func TestLedger_StartingBalanceIsRecorded(t *testing.T) {
	repo, svc := newLedger(t, 1000)
	ctx := context.Background()
	userID := newUserID()

	balance, err := svc.GetBalance(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), balance)

	history, err := svc.GetTransactionHistory(ctx, userID, domain.HistoryFilter{})
	require.NoError(t, err)
	require.Len(t, history.Transactions, 1)
	assert.Equal(t, domain.ReasonInitialBalance, history.Transactions[0].Reason)
	assert.Equal(t, domain.TransactionTypeEarn, history.Transactions[0].Type)
	assertConsistent(t, repo, userID)

	// A second read neither reseeds nor duplicates the entry.
	balance, err = svc.GetBalance(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), balance)
	history, err = svc.GetTransactionHistory(ctx, userID, domain.HistoryFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, history.Total)
}

func TestLedger_WritePathSeedsLikeReadPath(t *testing.T) {
	repo, svc := newLedger(t, 1000)
	ctx := context.Background()
	userID := newUserID()

	res, err := svc.EarnCredits(ctx, userID, 100, "welcome", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1100), res.Balance)
	assertConsistent(t, repo, userID)
}

func TestLedger_SummaryAsFirstContact(t *testing.T) {
	repo, svc := newLedger(t, 1000)
	ctx := context.Background()
	userID := newUserID()

	summary, err := svc.GetCreditSummary(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), summary.Earned)
	assert.Equal(t, int64(0), summary.Spent)
	assert.Equal(t, summary.Earned-summary.Spent, summary.Available)
	assertConsistent(t, repo, userID)
}

func TestLedger_ConcurrentFirstTouchSeedsOnce(t *testing.T) {
	repo, svc := newLedger(t, 1000)
	ctx := context.Background()
	userID := newUserID()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.GetBalance(ctx, userID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	summary, err := svc.GetCreditSummary(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), summary.Earned)
	assert.Equal(t, int64(1000), summary.Available)
	assertConsistent(t, repo, userID)
}

func TestLedger_ConcurrentSpendsNeverOverdraw(t *testing.T) {
	repo, svc := newLedger(t, 0)
	ctx := context.Background()
	userID := newUserID()

	_, err := svc.EarnCredits(ctx, userID, 100, "welcome", nil)
	require.NoError(t, err)

	const attempts = 10
	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		succeeded    int
		insufficient int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.SpendCredits(ctx, userID, 30, "BOOK_CREATION", nil)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, apperrors.ErrInsufficientCredits):
				insufficient++
			default:
				t.Errorf("unexpected spend error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, succeeded)
	assert.Equal(t, attempts-3, insufficient)

	balance, err := svc.GetBalance(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), balance)
	assertConsistent(t, repo, userID)
}

// failingEntries makes every ledger insert inside a unit of work fail after the balance moved.
type failingEntries struct {
	*pgsql.PgxCreditRepository
}

func (f failingEntries) RunInTx(ctx context.Context, fn portsrepo.CreditTxFunc) error {
	return f.PgxCreditRepository.RunInTx(ctx, func(ctx context.Context, tx portsrepo.CreditTxRepository) error {
		return fn(ctx, failingTx{CreditTxRepository: tx})
	})
}

type failingTx struct {
	portsrepo.CreditTxRepository
}

func (failingTx) CreateTransaction(context.Context, domain.CreditTransaction) (*domain.CreditTransaction, error) {
	return nil, errors.New("injected ledger failure")
}

func TestLedger_FailedEntryRollsBackBalance(t *testing.T) {
	repo, svc := newLedger(t, 0)
	ctx := context.Background()
	userID := newUserID()

	_, err := svc.EarnCredits(ctx, userID, 100, "welcome", nil)
	require.NoError(t, err)

	broken := services.NewCreditService(failingEntries{repo})

	_, err = broken.SpendCredits(ctx, userID, 40, "BOOK_CREATION", nil)
	require.Error(t, err)
	cse, ok := apperrors.AsCreditSystemError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeTransactionFailed, cse.Code)
	assert.NotEmpty(t, cse.CorrelationID)

	_, err = broken.EarnCredits(ctx, userID, 40, "welcome", nil)
	require.Error(t, err)

	balance, err := svc.GetBalance(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance)

	history, err := svc.GetTransactionHistory(ctx, userID, domain.HistoryFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, history.Total)
	assertConsistent(t, repo, userID)
}

func TestLedger_HistoryPagesAreContiguous(t *testing.T) {
	_, svc := newLedger(t, 0)
	ctx := context.Background()
	userID := newUserID()

	const entries = 25
	for i := 1; i <= entries; i++ {
		_, err := svc.EarnCredits(ctx, userID, int64(i), fmt.Sprintf("grant-%02d", i), domain.Metadata{"n": i})
		require.NoError(t, err)
	}

	seen := make(map[string]bool, entries)
	var reasons []string
	for offset := 0; ; offset += 10 {
		page, err := svc.GetTransactionHistory(ctx, userID, domain.HistoryFilter{Limit: 10, Offset: offset})
		require.NoError(t, err)
		assert.Equal(t, entries, page.Total)
		for _, txn := range page.Transactions {
			assert.False(t, seen[txn.ID], "duplicate entry %s", txn.ID)
			seen[txn.ID] = true
			reasons = append(reasons, txn.Reason)
		}
		assert.Equal(t, offset+len(page.Transactions) < entries, page.HasMore)
		if !page.HasMore {
			break
		}
	}

	require.Len(t, reasons, entries)
	assert.Equal(t, "grant-25", reasons[0])
	assert.Equal(t, "grant-01", reasons[entries-1])

	page, err := svc.GetTransactionHistory(ctx, userID, domain.HistoryFilter{Limit: 10, Offset: 100})
	require.NoError(t, err)
	assert.Empty(t, page.Transactions)
	assert.NotNil(t, page.Transactions)
	assert.False(t, page.HasMore)
}

func TestLedger_HistoryDateRange(t *testing.T) {
	_, svc := newLedger(t, 0)
	ctx := context.Background()
	userID := newUserID()

	_, err := svc.EarnCredits(ctx, userID, 5, "before", nil)
	require.NoError(t, err)
	time.Sleep(20 * time.Millisecond)
	from := time.Now().UTC()
	_, err = svc.EarnCredits(ctx, userID, 5, "inside", nil)
	require.NoError(t, err)

	page, err := svc.GetTransactionHistory(ctx, userID, domain.HistoryFilter{StartDate: &from})
	require.NoError(t, err)
	require.Len(t, page.Transactions, 1)
	assert.Equal(t, "inside", page.Transactions[0].Reason)

	until := from.Add(-time.Millisecond)
	page, err = svc.GetTransactionHistory(ctx, userID, domain.HistoryFilter{EndDate: &until})
	require.NoError(t, err)
	require.Len(t, page.Transactions, 1)
	assert.Equal(t, "before", page.Transactions[0].Reason)
}

func TestLedger_MetadataRoundTrip(t *testing.T) {
	_, svc := newLedger(t, 0)
	ctx := context.Background()
	userID := newUserID()

	_, err := svc.EarnCredits(ctx, userID, 5, "welcome", domain.Metadata{"bookId": "book-1", "draft": true})
	require.NoError(t, err)

	page, err := svc.GetTransactionHistory(ctx, userID, domain.HistoryFilter{})
	require.NoError(t, err)
	require.Len(t, page.Transactions, 1)
	assert.Equal(t, "book-1", page.Transactions[0].Metadata["bookId"])
	assert.Equal(t, true, page.Transactions[0].Metadata["draft"])
}

func TestLedger_ScenarioA_NewUser(t *testing.T) {
	_, unseeded := newLedger(t, 0)
	_, seeded := newLedger(t, 1000)
	ctx := context.Background()

	balance, err := unseeded.GetBalance(ctx, newUserID())
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)

	balance, err = seeded.GetBalance(ctx, newUserID())
	require.NoError(t, err)
	assert.Equal(t, int64(1000), balance)
}

func TestLedger_ScenarioBAndC_EarnSpendOverspendSummary(t *testing.T) {
	repo, svc := newLedger(t, 0)
	ctx := context.Background()
	userID := newUserID()

	res, err := svc.EarnCredits(ctx, userID, 100, "welcome", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(100), res.Balance)

	res, err = svc.SpendCredits(ctx, userID, 50, "book", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(50), res.Balance)

	_, err = svc.SpendCredits(ctx, userID, 100, "overspend", nil)
	require.Error(t, err)
	cse, ok := apperrors.AsCreditSystemError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInsufficientCredits, cse.Code)
	assert.Equal(t, map[string]any{"available": int64(50), "required": int64(100)}, cse.Details)

	balance, err := svc.GetBalance(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(50), balance)

	summary, err := svc.GetCreditSummary(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), summary.Earned)
	assert.Equal(t, int64(50), summary.Spent)
	assert.Equal(t, int64(50), summary.Available)
	assertConsistent(t, repo, userID)
}

func TestLedger_ScenarioD_DeletionRefund(t *testing.T) {
	repo, svc := newLedger(t, 0)
	paid := services.NewPaidActionService(svc, pricing.Default(), nil)
	ctx := context.Background()
	userID := newUserID()

	_, err := svc.EarnCredits(ctx, userID, 500, "welcome", nil)
	require.NoError(t, err)

	charge, err := paid.Charge(ctx, userID, domain.ActionBookCreation, "book-7", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(200), charge.Cost)
	assert.Equal(t, int64(300), charge.Balance)

	refund := paid.Refund(ctx, userID, domain.ResourceBook, "book-7", nil)
	require.True(t, refund.Refunded)
	assert.Equal(t, int64(200), refund.Amount)
	assert.Equal(t, int64(500), refund.Balance)

	page, err := svc.GetTransactionHistory(ctx, userID, domain.HistoryFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, page.Transactions, 1)
	latest := page.Transactions[0]
	assert.Equal(t, "REFUND_BOOK_DELETION", latest.Reason)
	assert.Equal(t, domain.TransactionTypeEarn, latest.Type)
	assert.Equal(t, int64(200), latest.Amount)
	assert.Equal(t, "book-7", latest.Metadata["resourceId"])
	assertConsistent(t, repo, userID)
}

func TestLedger_ReconciliationFindsDrift(t *testing.T) {
	repo, svc := newLedger(t, 0)
	ctx := context.Background()
	userID := newUserID()

	_, err := svc.EarnCredits(ctx, userID, 100, "welcome", nil)
	require.NoError(t, err)

	// A balance change without a ledger entry is exactly what reconciliation exists to catch.
	_, err = repo.UpdateUserBalance(ctx, userID, 7)
	require.NoError(t, err)

	report, err := services.NewReconciliationService(repo).CheckUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, report.Drifted, 1)
	assert.Equal(t, int64(7), report.Drifted[0].Drift())

	_, err = repo.GetLedgerPosition(ctx, newUserID())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
