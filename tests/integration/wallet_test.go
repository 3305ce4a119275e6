package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/adapter/repository/postgres"
	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/infrastructure/eventsink"
	"github.com/iho/gowallet/internal/usecase"
	"github.com/iho/gowallet/tests/testutil"
)

func newWalletStack(testDB *testutil.TestDB) *usecase.WalletUseCase {
	pool := testDB.Pool
	walletRepo := postgres.NewWalletRepository(pool)
	entryRepo := postgres.NewEntryRepository(pool)
	txManager := postgres.NewTxManager(pool)
	idGen := postgres.NewULIDGenerator()
	factory := usecase.NewEntryFactory(idGen)

	coordinator := usecase.NewCoordinator(txManager, eventsink.NewLogSink(zerolog.Nop()), zerolog.Nop()).
		Register(usecase.OperationDeposit, usecase.NewDepositStrategy(walletRepo, entryRepo, factory)).
		Register(usecase.OperationTransfer, usecase.NewTransferStrategy(walletRepo, entryRepo, factory)).
		Register(usecase.OperationReversal, usecase.NewReversalStrategy(walletRepo, entryRepo, factory)).
		WithRetrier(postgres.NewRetrier(zerolog.Nop()))

	return usecase.NewWalletUseCase(coordinator, walletRepo, entryRepo)
}

func TestDepositAndBalance(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	walletUC := newWalletStack(testDB)
	alice := testDB.CreateTestUser(ctx, "alice@example.com", 0)

	entry, err := walletUC.Deposit(ctx, alice.ID, usecase.DepositInput{
		Amount: decimal.RequireFromString("100.50"),
	})
	if err != nil {
		t.Fatalf("deposit failed: %v", err)
	}

	if entry.Amount != 10050 {
		t.Errorf("entry amount = %d, want 10050", entry.Amount)
	}
	if entry.Type != domain.EntryTypeDeposit || entry.Status != domain.EntryStatusCompleted {
		t.Errorf("entry = %+v", entry)
	}

	if got := testDB.Balance(ctx, alice.ID); got != 10050 {
		t.Errorf("balance = %d, want 10050", got)
	}

	balance, err := walletUC.GetBalance(ctx, alice.ID)
	if err != nil {
		t.Fatalf("get balance failed: %v", err)
	}
	if !balance.Equal(decimal.RequireFromString("100.50")) {
		t.Errorf("balance = %s, want 100.50", balance)
	}
}

func TestTransferMovesFundsAndLinksLegs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	walletUC := newWalletStack(testDB)
	alice := testDB.CreateTestUser(ctx, "alice@example.com", 10000)
	bob := testDB.CreateTestUser(ctx, "bob@example.com", 0)

	entries, err := walletUC.Transfer(ctx, alice.ID, usecase.TransferInput{
		RecipientID: bob.ID,
		Amount:      decimal.RequireFromString("30"),
	})
	if err != nil {
		t.Fatalf("transfer failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	debit, credit := entries[0], entries[1]
	if debit.AccountID != alice.ID || credit.AccountID != bob.ID {
		t.Errorf("legs on wrong accounts: %+v %+v", debit, credit)
	}
	if credit.RelatedEntryID == nil || *credit.RelatedEntryID != debit.ID {
		t.Error("credit leg does not reference debit leg")
	}
	if debit.RelatedEntryID != nil {
		t.Error("debit leg must not reference another entry")
	}

	if got := testDB.Balance(ctx, alice.ID); got != 7000 {
		t.Errorf("sender balance = %d, want 7000", got)
	}
	if got := testDB.Balance(ctx, bob.ID); got != 3000 {
		t.Errorf("recipient balance = %d, want 3000", got)
	}
}

func TestTransferInsufficientBalanceLeavesStateUntouched(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	walletUC := newWalletStack(testDB)
	alice := testDB.CreateTestUser(ctx, "alice@example.com", 1000)
	bob := testDB.CreateTestUser(ctx, "bob@example.com", 0)

	_, err := walletUC.Transfer(ctx, alice.ID, usecase.TransferInput{
		RecipientID: bob.ID,
		Amount:      decimal.RequireFromString("10.01"),
	})
	if !errors.Is(err, domain.ErrInsufficientBalance) {
		t.Fatalf("expected %v, got %v", domain.ErrInsufficientBalance, err)
	}

	if got := testDB.Balance(ctx, alice.ID); got != 1000 {
		t.Errorf("sender balance = %d, want 1000", got)
	}
	if got := testDB.Balance(ctx, bob.ID); got != 0 {
		t.Errorf("recipient balance = %d, want 0", got)
	}

	_, total, err := walletUC.ListTransactions(ctx, alice.ID, usecase.ListEntriesParams{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 0 {
		t.Errorf("expected no entries after rollback, got %d", total)
	}
}

func TestDepositBlockedOnNegativeBalance(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	walletUC := newWalletStack(testDB)
	alice := testDB.CreateTestUser(ctx, "alice@example.com", -500)

	_, err := walletUC.Deposit(ctx, alice.ID, usecase.DepositInput{
		Amount: decimal.RequireFromString("1"),
	})
	if !errors.Is(err, domain.ErrNegativeBalance) {
		t.Fatalf("expected %v, got %v", domain.ErrNegativeBalance, err)
	}
}

func TestListTransactionsPagingAndFilter(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	walletUC := newWalletStack(testDB)
	alice := testDB.CreateTestUser(ctx, "alice@example.com", 0)
	bob := testDB.CreateTestUser(ctx, "bob@example.com", 0)

	for range 3 {
		if _, err := walletUC.Deposit(ctx, alice.ID, usecase.DepositInput{
			Amount: decimal.RequireFromString("10"),
		}); err != nil {
			t.Fatalf("deposit failed: %v", err)
		}
	}

	if _, err := walletUC.Transfer(ctx, alice.ID, usecase.TransferInput{
		RecipientID: bob.ID,
		Amount:      decimal.RequireFromString("5"),
	}); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}

	entries, total, err := walletUC.ListTransactions(ctx, alice.ID, usecase.ListEntriesParams{Limit: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 4 {
		t.Errorf("total = %d, want 4", total)
	}
	if len(entries) != 2 {
		t.Errorf("page size = %d, want 2", len(entries))
	}

	depositType := domain.EntryTypeDeposit
	entries, total, err = walletUC.ListTransactions(ctx, alice.ID, usecase.ListEntriesParams{Type: &depositType})
	if err != nil {
		t.Fatalf("filtered list failed: %v", err)
	}
	if total != 3 || len(entries) != 3 {
		t.Errorf("filtered total = %d len = %d, want 3 and 3", total, len(entries))
	}
	for _, e := range entries {
		if e.Type != domain.EntryTypeDeposit {
			t.Errorf("filter leaked type %s", e.Type)
		}
	}
}
