package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iho/gowallet/internal/domain"
)

// ReversalStrategy undoes the balance effect of a prior COMPLETED entry and
// marks it REVERSED. Reversals are idempotent structurally: the status check
// under lock guarantees exactly-once application without retry logic.
type ReversalStrategy struct {
	walletRepo WalletRepository
	entryRepo  EntryRepository
	factory    *EntryFactory
}

// NewReversalStrategy creates a new ReversalStrategy.
func NewReversalStrategy(walletRepo WalletRepository, entryRepo EntryRepository, factory *EntryFactory) *ReversalStrategy {
	return &ReversalStrategy{
		walletRepo: walletRepo,
		entryRepo:  entryRepo,
		factory:    factory,
	}
}

// Execute applies a reversal inside the caller's transaction.
func (s *ReversalStrategy) Execute(ctx context.Context, op OperationContext, tx Transaction) (*Result, error) {
	if op.EntryID == "" {
		return nil, domain.ErrEntryIDRequired
	}

	original, err := s.entryRepo.GetForUpdate(ctx, tx, op.EntryID)
	if err != nil {
		return nil, err
	}

	if original.Status == domain.EntryStatusReversed {
		return nil, domain.ErrAlreadyReversed
	}

	if original.Type == domain.EntryTypeReversal {
		return nil, domain.ErrReversalNotAllowed
	}

	// Owner mismatch is reported as not-found so non-owners cannot probe
	// for the existence of other users' entries.
	if original.AccountID != op.AccountID {
		return nil, domain.ErrEntryNotFound
	}

	switch original.Type {
	case domain.EntryTypeDeposit:
		return s.reverseDeposit(ctx, tx, original)
	case domain.EntryTypeTransfer:
		return s.reverseTransfer(ctx, tx, original)
	default:
		return nil, domain.ErrUnsupportedEntryType
	}
}

func (s *ReversalStrategy) reverseDeposit(ctx context.Context, tx Transaction, original *domain.Entry) (*Result, error) {
	wallet, err := s.walletRepo.GetForUpdate(ctx, tx, original.AccountID)
	if err != nil {
		return nil, err
	}

	// The balance may go negative here; that is accepted and only blocks
	// further deposits.
	now := time.Now().UTC()
	newBalance := wallet.Balance - original.Amount

	if err := s.walletRepo.SetBalance(ctx, tx, wallet.ID, newBalance, now); err != nil {
		return nil, err
	}

	if err := s.entryRepo.SetStatus(ctx, tx, original.ID, domain.EntryStatusReversed, now); err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Reversal of deposit %s", original.ID)
	reversal := s.factory.Reversal(original.AccountID, original.Amount, original.ID, nil, &description, now)

	if err := s.entryRepo.Create(ctx, tx, reversal); err != nil {
		return nil, err
	}

	return &Result{
		Entries: []*domain.Entry{reversal},
		Events: []domain.Event{
			domain.NewEvent(domain.EventReversalCompleted, map[string]any{
				"reversal_entry_id": reversal.ID,
				"original_entry_id": original.ID,
				"account_id":        original.AccountID,
				"amount":            original.Amount,
				"new_balance":       newBalance,
			}),
		},
	}, nil
}

func (s *ReversalStrategy) reverseTransfer(ctx context.Context, tx Transaction, original *domain.Entry) (*Result, error) {
	debit := original

	var credit *domain.Entry

	// A reversal may reference either leg. The debit leg is authoritative
	// for direction, so resolve it first when the credit leg was targeted.
	if original.IsCreditLeg() {
		locked, err := s.entryRepo.GetForUpdate(ctx, tx, *original.RelatedEntryID)
		if err != nil {
			return nil, err
		}

		if locked.Status == domain.EntryStatusReversed {
			return nil, domain.ErrAlreadyReversed
		}

		debit = locked
		credit = original
	}

	if debit.RelatedAccountID == nil {
		return nil, domain.ErrMissingCounterparty
	}

	senderID := debit.AccountID
	recipientID := *debit.RelatedAccountID

	sender, recipient, err := lockWalletPair(ctx, tx, s.walletRepo, senderID, recipientID)
	if err != nil {
		return nil, err
	}

	// Sender gets the money back, recipient gives it back, regardless of
	// which leg the reversal request referenced.
	amount := debit.Amount
	now := time.Now().UTC()
	newSenderBalance := sender.Balance + amount
	newRecipientBalance := recipient.Balance - amount

	if err := s.walletRepo.SetBalance(ctx, tx, senderID, newSenderBalance, now); err != nil {
		return nil, err
	}

	if err := s.walletRepo.SetBalance(ctx, tx, recipientID, newRecipientBalance, now); err != nil {
		return nil, err
	}

	if err := s.entryRepo.SetStatus(ctx, tx, debit.ID, domain.EntryStatusReversed, now); err != nil {
		return nil, err
	}

	if credit == nil {
		found, err := s.entryRepo.FindRelated(ctx, tx, debit.ID)
		if err != nil && !errors.Is(err, domain.ErrEntryNotFound) {
			return nil, err
		}

		credit = found
	}

	creditOriginalID := debit.ID
	if credit != nil {
		if err := s.entryRepo.SetStatus(ctx, tx, credit.ID, domain.EntryStatusReversed, now); err != nil {
			return nil, err
		}

		creditOriginalID = credit.ID
	}

	description := fmt.Sprintf("Reversal of transfer %s", debit.ID)

	senderReversal := s.factory.Reversal(senderID, amount, debit.ID, &recipientID, &description, now)
	if err := s.entryRepo.Create(ctx, tx, senderReversal); err != nil {
		return nil, err
	}

	recipientReversal := s.factory.Reversal(recipientID, amount, creditOriginalID, &senderID, &description, now)
	if err := s.entryRepo.Create(ctx, tx, recipientReversal); err != nil {
		return nil, err
	}

	return &Result{
		Entries: []*domain.Entry{senderReversal, recipientReversal},
		Events: []domain.Event{
			domain.NewEvent(domain.EventReversalCompleted, map[string]any{
				"sender_reversal_id":    senderReversal.ID,
				"recipient_reversal_id": recipientReversal.ID,
				"original_entry_id":     debit.ID,
				"sender_id":             senderID,
				"recipient_id":          recipientID,
				"amount":                amount,
				"new_sender_balance":    newSenderBalance,
				"new_recipient_balance": newRecipientBalance,
			}),
		},
	}, nil
}
