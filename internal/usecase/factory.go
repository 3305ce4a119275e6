package usecase

import (
	"time"

	"github.com/iho/gowallet/internal/domain"
)

// Default descriptions applied when the caller provides none.
const (
	descDeposit          = "Deposit"
	descTransferSent     = "Transfer sent"
	descTransferReceived = "Transfer received"
	descReversal         = "Transaction reversal"
)

// EntryFactory constructs ledger entry records. It performs no I/O; the
// strategies persist what it produces.
type EntryFactory struct {
	idGen IDGenerator
}

// NewEntryFactory creates a new EntryFactory.
func NewEntryFactory(idGen IDGenerator) *EntryFactory {
	return &EntryFactory{idGen: idGen}
}

// Deposit builds a DEPOSIT entry.
func (f *EntryFactory) Deposit(accountID string, amount int64, description *string, now time.Time) *domain.Entry {
	return &domain.Entry{
		ID:          f.idGen.Generate(),
		AccountID:   accountID,
		Type:        domain.EntryTypeDeposit,
		Amount:      amount,
		Status:      domain.EntryStatusCompleted,
		Description: orDefault(description, descDeposit),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// TransferDebit builds the sender-side leg of a transfer.
func (f *EntryFactory) TransferDebit(senderID, recipientID string, amount int64, description *string, now time.Time) *domain.Entry {
	return &domain.Entry{
		ID:               f.idGen.Generate(),
		AccountID:        senderID,
		Type:             domain.EntryTypeTransfer,
		Amount:           amount,
		RelatedAccountID: &recipientID,
		Status:           domain.EntryStatusCompleted,
		Description:      orDefault(description, descTransferSent),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// TransferCredit builds the recipient-side leg, linked to its debit leg.
func (f *EntryFactory) TransferCredit(senderID, recipientID string, amount int64, debitEntryID string, description *string, now time.Time) *domain.Entry {
	return &domain.Entry{
		ID:               f.idGen.Generate(),
		AccountID:        recipientID,
		Type:             domain.EntryTypeTransfer,
		Amount:           amount,
		RelatedAccountID: &senderID,
		RelatedEntryID:   &debitEntryID,
		Status:           domain.EntryStatusCompleted,
		Description:      orDefault(description, descTransferReceived),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Reversal builds a REVERSAL entry linked to the entry it undoes.
func (f *EntryFactory) Reversal(accountID string, amount int64, originalEntryID string, relatedAccountID *string, description *string, now time.Time) *domain.Entry {
	return &domain.Entry{
		ID:               f.idGen.Generate(),
		AccountID:        accountID,
		Type:             domain.EntryTypeReversal,
		Amount:           amount,
		RelatedAccountID: relatedAccountID,
		RelatedEntryID:   &originalEntryID,
		Status:           domain.EntryStatusCompleted,
		Description:      orDefault(description, descReversal),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func orDefault(description *string, fallback string) *string {
	if description != nil && *description != "" {
		return description
	}

	return &fallback
}
