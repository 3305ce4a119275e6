package usecase

import (
	"context"
	"time"

	"github.com/iho/gowallet/internal/domain"
)

// TransferStrategy moves funds between two accounts, producing a linked
// debit/credit entry pair.
type TransferStrategy struct {
	walletRepo WalletRepository
	entryRepo  EntryRepository
	factory    *EntryFactory
}

// NewTransferStrategy creates a new TransferStrategy.
func NewTransferStrategy(walletRepo WalletRepository, entryRepo EntryRepository, factory *EntryFactory) *TransferStrategy {
	return &TransferStrategy{
		walletRepo: walletRepo,
		entryRepo:  entryRepo,
		factory:    factory,
	}
}

// Execute applies a transfer inside the caller's transaction.
func (s *TransferStrategy) Execute(ctx context.Context, op OperationContext, tx Transaction) (*Result, error) {
	if op.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	if op.RecipientID == "" {
		return nil, domain.ErrRecipientRequired
	}

	if op.AccountID == op.RecipientID {
		return nil, domain.ErrSelfTransfer
	}

	sender, recipient, err := lockWalletPair(ctx, tx, s.walletRepo, op.AccountID, op.RecipientID)
	if err != nil {
		return nil, err
	}

	if !sender.CanDebit(op.Amount) {
		return nil, domain.ErrInsufficientBalance
	}

	now := time.Now().UTC()
	newSenderBalance := sender.Balance - op.Amount
	newRecipientBalance := recipient.Balance + op.Amount

	if err := s.walletRepo.SetBalance(ctx, tx, sender.ID, newSenderBalance, now); err != nil {
		return nil, err
	}

	if err := s.walletRepo.SetBalance(ctx, tx, recipient.ID, newRecipientBalance, now); err != nil {
		return nil, err
	}

	debit := s.factory.TransferDebit(sender.ID, recipient.ID, op.Amount, op.Description, now)
	if err := s.entryRepo.Create(ctx, tx, debit); err != nil {
		return nil, err
	}

	credit := s.factory.TransferCredit(sender.ID, recipient.ID, op.Amount, debit.ID, op.Description, now)
	if err := s.entryRepo.Create(ctx, tx, credit); err != nil {
		return nil, err
	}

	return &Result{
		Entries: []*domain.Entry{debit, credit},
		Events: []domain.Event{
			domain.NewEvent(domain.EventTransferCompleted, map[string]any{
				"debit_entry_id":        debit.ID,
				"credit_entry_id":       credit.ID,
				"sender_id":             sender.ID,
				"recipient_id":          recipient.ID,
				"amount":                op.Amount,
				"new_sender_balance":    newSenderBalance,
				"new_recipient_balance": newRecipientBalance,
			}),
		},
	}, nil
}

// lockWalletPair acquires row locks on two wallets in ascending-id order and
// returns them re-bound to the (first, second) argument order. The fixed
// global ordering is the deadlock-avoidance mechanism: any two concurrent
// operations touching the same pair of accounts acquire locks the same way
// regardless of transfer direction.
func lockWalletPair(ctx context.Context, tx Transaction, repo WalletRepository, idA, idB string) (*domain.Wallet, *domain.Wallet, error) {
	firstID, secondID := idA, idB
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}

	first, err := repo.GetForUpdate(ctx, tx, firstID)
	if err != nil {
		return nil, nil, err
	}

	second, err := repo.GetForUpdate(ctx, tx, secondID)
	if err != nil {
		return nil, nil, err
	}

	if firstID == idA {
		return first, second, nil
	}

	return second, first, nil
}
