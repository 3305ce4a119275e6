package usecase

import (
	"context"

	"github.com/iho/gowallet/internal/domain"
)

// OperationKind selects a ledger operation strategy.
type OperationKind string

const (
	OperationDeposit  OperationKind = "deposit"
	OperationTransfer OperationKind = "transfer"
	OperationReversal OperationKind = "reversal"
)

// OperationContext is the input to a strategy. Amount is in minor units and
// is zero when the operation carries no amount (reversals derive it from the
// original entry).
type OperationContext struct {
	AccountID   string
	Amount      int64
	RecipientID string
	EntryID     string
	Description *string
}

// Result is what a strategy produces: the entries it created and the events
// to publish after commit.
type Result struct {
	Entries []*domain.Entry
	Events  []domain.Event
}

// Strategy executes one ledger operation inside the caller's transaction.
// Strategies never commit or roll back; the coordinator owns the scope.
type Strategy interface {
	Execute(ctx context.Context, op OperationContext, tx Transaction) (*Result, error)
}
