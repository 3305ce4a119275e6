package usecase

import (
	"context"
	"time"

	"github.com/iho/gowallet/internal/domain"
)

// DepositStrategy credits an account with new funds.
type DepositStrategy struct {
	walletRepo WalletRepository
	entryRepo  EntryRepository
	factory    *EntryFactory
}

// NewDepositStrategy creates a new DepositStrategy.
func NewDepositStrategy(walletRepo WalletRepository, entryRepo EntryRepository, factory *EntryFactory) *DepositStrategy {
	return &DepositStrategy{
		walletRepo: walletRepo,
		entryRepo:  entryRepo,
		factory:    factory,
	}
}

// Execute applies a deposit inside the caller's transaction.
func (s *DepositStrategy) Execute(ctx context.Context, op OperationContext, tx Transaction) (*Result, error) {
	if op.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	wallet, err := s.walletRepo.GetForUpdate(ctx, tx, op.AccountID)
	if err != nil {
		return nil, err
	}

	if !wallet.CanDeposit() {
		return nil, domain.ErrNegativeBalance
	}

	now := time.Now().UTC()
	newBalance := wallet.Balance + op.Amount

	if err := s.walletRepo.SetBalance(ctx, tx, wallet.ID, newBalance, now); err != nil {
		return nil, err
	}

	entry := s.factory.Deposit(op.AccountID, op.Amount, op.Description, now)
	if err := s.entryRepo.Create(ctx, tx, entry); err != nil {
		return nil, err
	}

	return &Result{
		Entries: []*domain.Entry{entry},
		Events: []domain.Event{
			domain.NewEvent(domain.EventDepositCompleted, map[string]any{
				"entry_id":    entry.ID,
				"account_id":  op.AccountID,
				"amount":      op.Amount,
				"new_balance": newBalance,
			}),
		},
	}, nil
}
