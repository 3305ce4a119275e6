package usecase

import (
	"context"
	"time"

	"github.com/iho/gowallet/internal/domain"
)

// WalletRepository defines data access for wallet balances.
type WalletRepository interface {
	Get(ctx context.Context, id string) (*domain.Wallet, error)
	GetForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Wallet, error)
	SetBalance(ctx context.Context, tx Transaction, id string, balance int64, updatedAt time.Time) error
}

// ListEntriesParams carries pagination and filtering for entry history.
type ListEntriesParams struct {
	Page  int
	Limit int
	Type  *domain.EntryType
}

// EntryRepository defines data access for ledger entries.
type EntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.Entry) error
	Get(ctx context.Context, id string) (*domain.Entry, error)
	GetForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Entry, error)
	SetStatus(ctx context.Context, tx Transaction, id string, status domain.EntryStatus, updatedAt time.Time) error
	// FindRelated returns the credit leg whose RelatedEntryID points at the
	// given debit entry, locked for the duration of the transaction.
	FindRelated(ctx context.Context, tx Transaction, entryID string) (*domain.Entry, error)
	ListByAccount(ctx context.Context, accountID string, params ListEntriesParams) ([]*domain.Entry, int64, error)
}

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// EventSink receives domain events after commit. Implementations must treat
// delivery as best-effort; the coordinator never retries a failed publish.
type EventSink interface {
	Publish(ctx context.Context, event domain.Event) error
}

// Retrier re-runs an operation on transient database failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
