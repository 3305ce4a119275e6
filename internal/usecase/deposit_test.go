package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
	"github.com/iho/gowallet/internal/usecase/mocks"
)

func TestDepositStrategy_Execute(t *testing.T) {
	tests := []struct {
		name        string
		op          usecase.OperationContext
		setupMocks  func(*mocks.MockWalletRepository, *mocks.MockEntryRepository)
		expectError bool
		errorType   error
		wantBalance int64
	}{
		{
			name: "successful deposit",
			op:   usecase.OperationContext{AccountID: "acc-1", Amount: 10050},
			setupMocks: func(walletRepo *mocks.MockWalletRepository, entryRepo *mocks.MockEntryRepository) {
				walletRepo.Seed(&domain.Wallet{ID: "acc-1", Balance: 5000})
			},
			wantBalance: 15050,
		},
		{
			name: "deposit into zero balance",
			op:   usecase.OperationContext{AccountID: "acc-1", Amount: 100},
			setupMocks: func(walletRepo *mocks.MockWalletRepository, entryRepo *mocks.MockEntryRepository) {
				walletRepo.Seed(&domain.Wallet{ID: "acc-1", Balance: 0})
			},
			wantBalance: 100,
		},
		{
			name: "reject non-positive amount",
			op:   usecase.OperationContext{AccountID: "acc-1", Amount: 0},
			setupMocks: func(walletRepo *mocks.MockWalletRepository, entryRepo *mocks.MockEntryRepository) {
				walletRepo.Seed(&domain.Wallet{ID: "acc-1", Balance: 5000})
			},
			expectError: true,
			errorType:   domain.ErrInvalidAmount,
		},
		{
			name: "reject deposit into negative balance",
			op:   usecase.OperationContext{AccountID: "acc-1", Amount: 100},
			setupMocks: func(walletRepo *mocks.MockWalletRepository, entryRepo *mocks.MockEntryRepository) {
				walletRepo.Seed(&domain.Wallet{ID: "acc-1", Balance: -2500})
			},
			expectError: true,
			errorType:   domain.ErrNegativeBalance,
		},
		{
			name:        "unknown account",
			op:          usecase.OperationContext{AccountID: "missing", Amount: 100},
			setupMocks:  func(walletRepo *mocks.MockWalletRepository, entryRepo *mocks.MockEntryRepository) {},
			expectError: true,
			errorType:   domain.ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			walletRepo := mocks.NewMockWalletRepository()
			entryRepo := mocks.NewMockEntryRepository()
			tt.setupMocks(walletRepo, entryRepo)

			factory := usecase.NewEntryFactory(mocks.NewMockIDGenerator("entry"))
			strategy := usecase.NewDepositStrategy(walletRepo, entryRepo, factory)

			result, err := strategy.Execute(context.Background(), tt.op, &mocks.MockTransaction{})

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errorType != nil && !errors.Is(err, tt.errorType) {
					t.Fatalf("expected error %v, got %v", tt.errorType, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(result.Entries) != 1 {
				t.Fatalf("expected 1 entry, got %d", len(result.Entries))
			}

			entry := result.Entries[0]
			if entry.Type != domain.EntryTypeDeposit {
				t.Errorf("expected type %s, got %s", domain.EntryTypeDeposit, entry.Type)
			}
			if entry.Status != domain.EntryStatusCompleted {
				t.Errorf("expected status %s, got %s", domain.EntryStatusCompleted, entry.Status)
			}
			if entry.Amount != tt.op.Amount {
				t.Errorf("expected amount %d, got %d", tt.op.Amount, entry.Amount)
			}

			wallet, err := walletRepo.Get(context.Background(), tt.op.AccountID)
			if err != nil {
				t.Fatalf("wallet lookup failed: %v", err)
			}
			if wallet.Balance != tt.wantBalance {
				t.Errorf("expected balance %d, got %d", tt.wantBalance, wallet.Balance)
			}

			if len(result.Events) != 1 || result.Events[0].Event != domain.EventDepositCompleted {
				t.Errorf("expected one %s event, got %+v", domain.EventDepositCompleted, result.Events)
			}
		})
	}
}

func TestDepositStrategy_DefaultDescription(t *testing.T) {
	walletRepo := mocks.NewMockWalletRepository()
	walletRepo.Seed(&domain.Wallet{ID: "acc-1", Balance: 0})
	entryRepo := mocks.NewMockEntryRepository()
	factory := usecase.NewEntryFactory(mocks.NewMockIDGenerator("entry"))
	strategy := usecase.NewDepositStrategy(walletRepo, entryRepo, factory)

	result, err := strategy.Execute(context.Background(), usecase.OperationContext{
		AccountID: "acc-1",
		Amount:    500,
	}, &mocks.MockTransaction{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Entries[0].Description == nil || *result.Entries[0].Description != "Deposit" {
		t.Errorf("expected default description %q, got %v", "Deposit", result.Entries[0].Description)
	}
}
