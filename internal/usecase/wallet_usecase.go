package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
)

// OperationExecutor runs a ledger operation atomically. Satisfied by
// *Coordinator.
type OperationExecutor interface {
	Execute(ctx context.Context, kind OperationKind, op OperationContext) ([]*domain.Entry, error)
}

// DepositInput carries the caller-facing deposit parameters. Amount is in
// major units and is converted to minor units at the boundary.
type DepositInput struct {
	Amount      decimal.Decimal
	Description *string
}

// TransferInput carries the caller-facing transfer parameters.
type TransferInput struct {
	RecipientID string
	Amount      decimal.Decimal
	Description *string
}

// WalletUseCase exposes the wallet operations consumed by the HTTP layer. All
// mutating operations go through the executor; reads hit the repositories
// directly.
type WalletUseCase struct {
	executor   OperationExecutor
	walletRepo WalletRepository
	entryRepo  EntryRepository
}

// NewWalletUseCase creates a new WalletUseCase.
func NewWalletUseCase(executor OperationExecutor, walletRepo WalletRepository, entryRepo EntryRepository) *WalletUseCase {
	return &WalletUseCase{
		executor:   executor,
		walletRepo: walletRepo,
		entryRepo:  entryRepo,
	}
}

// Deposit credits the account and returns the created entry.
func (uc *WalletUseCase) Deposit(ctx context.Context, accountID string, input DepositInput) (*domain.Entry, error) {
	amount, err := domain.ToMinorUnits(input.Amount)
	if err != nil {
		return nil, err
	}

	entries, err := uc.executor.Execute(ctx, OperationDeposit, OperationContext{
		AccountID:   accountID,
		Amount:      amount,
		Description: input.Description,
	})
	if err != nil {
		return nil, err
	}

	return entries[0], nil
}

// Transfer moves funds to another account and returns the sender-side entry
// followed by the recipient-side entry.
func (uc *WalletUseCase) Transfer(ctx context.Context, accountID string, input TransferInput) ([]*domain.Entry, error) {
	amount, err := domain.ToMinorUnits(input.Amount)
	if err != nil {
		return nil, err
	}

	return uc.executor.Execute(ctx, OperationTransfer, OperationContext{
		AccountID:   accountID,
		Amount:      amount,
		RecipientID: input.RecipientID,
		Description: input.Description,
	})
}

// Reverse undoes a prior entry owned by the account and returns the reversal
// entries it created.
func (uc *WalletUseCase) Reverse(ctx context.Context, accountID, entryID string) ([]*domain.Entry, error) {
	return uc.executor.Execute(ctx, OperationReversal, OperationContext{
		AccountID: accountID,
		EntryID:   entryID,
	})
}

// GetBalance returns the account balance in major units.
func (uc *WalletUseCase) GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	wallet, err := uc.walletRepo.Get(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	return domain.FromMinorUnits(wallet.Balance), nil
}

// ListTransactions returns a page of the account's entry history, newest
// first, plus the total count across all pages.
func (uc *WalletUseCase) ListTransactions(ctx context.Context, accountID string, params ListEntriesParams) ([]*domain.Entry, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}

	if params.Limit < 1 {
		params.Limit = DefaultPageLimit
	}

	if params.Limit > MaxPageLimit {
		params.Limit = MaxPageLimit
	}

	return uc.entryRepo.ListByAccount(ctx, accountID, params)
}
