package domain

import "time"

// EntryType identifies the kind of money movement an entry records.
type EntryType string

const (
	EntryTypeDeposit  EntryType = "DEPOSIT"
	EntryTypeTransfer EntryType = "TRANSFER"
	EntryTypeReversal EntryType = "REVERSAL"
)

// EntryStatus is the lifecycle state of an entry. The only legal transition
// is COMPLETED -> REVERSED, exactly once.
type EntryStatus string

const (
	EntryStatusCompleted EntryStatus = "COMPLETED"
	EntryStatusReversed  EntryStatus = "REVERSED"
)

// Entry is one immutable ledger record of a money movement. Amount is always
// a positive integer in minor units; direction is carried by the entry type
// and the owning account. Only Status mutates after creation.
type Entry struct {
	ID               string
	AccountID        string
	Type             EntryType
	Amount           int64
	RelatedAccountID *string
	RelatedEntryID   *string
	Status           EntryStatus
	Description      *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsCreditLeg reports whether a transfer entry is the recipient-side leg.
// The credit leg links back to its debit leg; the debit leg links to nothing.
func (e *Entry) IsCreditLeg() bool {
	return e.Type == EntryTypeTransfer && e.RelatedEntryID != nil
}

// Validate checks the invariants every entry must satisfy before persistence.
func (e *Entry) Validate() error {
	if e.Amount <= 0 {
		return ErrInvalidAmount
	}

	if e.AccountID == "" {
		return ErrAccountNotFound
	}

	return nil
}
