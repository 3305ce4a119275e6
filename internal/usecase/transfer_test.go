package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
	"github.com/iho/gowallet/internal/usecase/mocks"
)

func TestTransferStrategy_Execute(t *testing.T) {
	tests := []struct {
		name          string
		op            usecase.OperationContext
		setupMocks    func(*mocks.MockWalletRepository)
		expectError   bool
		errorType     error
		wantSender    int64
		wantRecipient int64
	}{
		{
			name: "successful transfer",
			op:   usecase.OperationContext{AccountID: "acc-1", RecipientID: "acc-2", Amount: 3000},
			setupMocks: func(walletRepo *mocks.MockWalletRepository) {
				walletRepo.Seed(&domain.Wallet{ID: "acc-1", Balance: 10000})
				walletRepo.Seed(&domain.Wallet{ID: "acc-2", Balance: 500})
			},
			wantSender:    7000,
			wantRecipient: 3500,
		},
		{
			name: "exact balance transfer",
			op:   usecase.OperationContext{AccountID: "acc-1", RecipientID: "acc-2", Amount: 10000},
			setupMocks: func(walletRepo *mocks.MockWalletRepository) {
				walletRepo.Seed(&domain.Wallet{ID: "acc-1", Balance: 10000})
				walletRepo.Seed(&domain.Wallet{ID: "acc-2", Balance: 0})
			},
			wantSender:    0,
			wantRecipient: 10000,
		},
		{
			name: "reject insufficient balance",
			op:   usecase.OperationContext{AccountID: "acc-1", RecipientID: "acc-2", Amount: 10001},
			setupMocks: func(walletRepo *mocks.MockWalletRepository) {
				walletRepo.Seed(&domain.Wallet{ID: "acc-1", Balance: 10000})
				walletRepo.Seed(&domain.Wallet{ID: "acc-2", Balance: 0})
			},
			expectError: true,
			errorType:   domain.ErrInsufficientBalance,
		},
		{
			name: "reject self transfer",
			op:   usecase.OperationContext{AccountID: "acc-1", RecipientID: "acc-1", Amount: 100},
			setupMocks: func(walletRepo *mocks.MockWalletRepository) {
				walletRepo.Seed(&domain.Wallet{ID: "acc-1", Balance: 10000})
			},
			expectError: true,
			errorType:   domain.ErrSelfTransfer,
		},
		{
			name: "reject missing recipient id",
			op:   usecase.OperationContext{AccountID: "acc-1", Amount: 100},
			setupMocks: func(walletRepo *mocks.MockWalletRepository) {
				walletRepo.Seed(&domain.Wallet{ID: "acc-1", Balance: 10000})
			},
			expectError: true,
			errorType:   domain.ErrRecipientRequired,
		},
		{
			name: "reject non-positive amount",
			op:   usecase.OperationContext{AccountID: "acc-1", RecipientID: "acc-2", Amount: -1},
			setupMocks: func(walletRepo *mocks.MockWalletRepository) {
				walletRepo.Seed(&domain.Wallet{ID: "acc-1", Balance: 10000})
				walletRepo.Seed(&domain.Wallet{ID: "acc-2", Balance: 0})
			},
			expectError: true,
			errorType:   domain.ErrInvalidAmount,
		},
		{
			name: "unknown recipient",
			op:   usecase.OperationContext{AccountID: "acc-1", RecipientID: "missing", Amount: 100},
			setupMocks: func(walletRepo *mocks.MockWalletRepository) {
				walletRepo.Seed(&domain.Wallet{ID: "acc-1", Balance: 10000})
			},
			expectError: true,
			errorType:   domain.ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			walletRepo := mocks.NewMockWalletRepository()
			entryRepo := mocks.NewMockEntryRepository()
			tt.setupMocks(walletRepo)

			factory := usecase.NewEntryFactory(mocks.NewMockIDGenerator("entry"))
			strategy := usecase.NewTransferStrategy(walletRepo, entryRepo, factory)

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

			if len(result.Entries) != 2 {
				t.Fatalf("expected 2 entries, got %d", len(result.Entries))
			}

			debit, credit := result.Entries[0], result.Entries[1]

			if debit.AccountID != tt.op.AccountID {
				t.Errorf("debit leg belongs to %s, want %s", debit.AccountID, tt.op.AccountID)
			}
			if debit.RelatedEntryID != nil {
				t.Error("debit leg must not reference another entry")
			}
			if debit.RelatedAccountID == nil || *debit.RelatedAccountID != tt.op.RecipientID {
				t.Errorf("debit leg counterparty = %v, want %s", debit.RelatedAccountID, tt.op.RecipientID)
			}

			if credit.AccountID != tt.op.RecipientID {
				t.Errorf("credit leg belongs to %s, want %s", credit.AccountID, tt.op.RecipientID)
			}
			if credit.RelatedEntryID == nil || *credit.RelatedEntryID != debit.ID {
				t.Errorf("credit leg must reference debit leg %s, got %v", debit.ID, credit.RelatedEntryID)
			}
			if !credit.IsCreditLeg() {
				t.Error("credit leg not recognized as credit leg")
			}

			sender, _ := walletRepo.Get(context.Background(), tt.op.AccountID)
			recipient, _ := walletRepo.Get(context.Background(), tt.op.RecipientID)
			if sender.Balance != tt.wantSender {
				t.Errorf("sender balance = %d, want %d", sender.Balance, tt.wantSender)
			}
			if recipient.Balance != tt.wantRecipient {
				t.Errorf("recipient balance = %d, want %d", recipient.Balance, tt.wantRecipient)
			}

			if len(result.Events) != 1 || result.Events[0].Event != domain.EventTransferCompleted {
				t.Errorf("expected one %s event, got %+v", domain.EventTransferCompleted, result.Events)
			}
		})
	}
}

func TestTransferStrategy_LockOrdering(t *testing.T) {
	// Locks must be taken in ascending id order regardless of transfer
	// direction.
	tests := []struct {
		name      string
		sender    string
		recipient string
		wantOrder []string
	}{
		{"low to high", "acc-1", "acc-2", []string{"acc-1", "acc-2"}},
		{"high to low", "acc-2", "acc-1", []string{"acc-1", "acc-2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			walletRepo := mocks.NewMockWalletRepository()
			walletRepo.Seed(&domain.Wallet{ID: "acc-1", Balance: 10000})
			walletRepo.Seed(&domain.Wallet{ID: "acc-2", Balance: 10000})

			var lockOrder []string
			walletRepo.GetForUpdateFunc = func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Wallet, error) {
				lockOrder = append(lockOrder, id)
				return walletRepo.Get(ctx, id)
			}

			factory := usecase.NewEntryFactory(mocks.NewMockIDGenerator("entry"))
			strategy := usecase.NewTransferStrategy(walletRepo, mocks.NewMockEntryRepository(), factory)

			_, err := strategy.Execute(context.Background(), usecase.OperationContext{
				AccountID:   tt.sender,
				RecipientID: tt.recipient,
				Amount:      100,
			}, &mocks.MockTransaction{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(lockOrder) != 2 || lockOrder[0] != tt.wantOrder[0] || lockOrder[1] != tt.wantOrder[1] {
				t.Errorf("lock order = %v, want %v", lockOrder, tt.wantOrder)
			}
		})
	}
}
