package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

// WalletRepository implements usecase.WalletRepository. Balances live on the
// users table; this repository reads and writes the balance projection only.
type WalletRepository struct {
	pool *pgxpool.Pool
}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(pool *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{pool: pool}
}

// Get retrieves a wallet without locking.
func (r *WalletRepository) Get(ctx context.Context, id string) (*domain.Wallet, error) {
	query := `
		SELECT id, balance, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	return scanWallet(r.pool.QueryRow(ctx, query, id))
}

// GetForUpdate retrieves a wallet with a row lock held until the transaction
// ends. Callers locking more than one wallet must do so in ascending id
// order.
func (r *WalletRepository) GetForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Wallet, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		SELECT id, balance, created_at, updated_at
		FROM users
		WHERE id = $1
		FOR UPDATE
	`

	return scanWallet(pgxTx.QueryRow(ctx, query, id))
}

// SetBalance writes an absolute balance computed under the row lock.
func (r *WalletRepository) SetBalance(ctx context.Context, tx usecase.Transaction, id string, balance int64, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE users
		SET balance = $2, updated_at = $3
		WHERE id = $1
	`

	tag, err := pgxTx.Exec(ctx, query, id, balance, updatedAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	var wallet domain.Wallet

	err := row.Scan(
		&wallet.ID,
		&wallet.Balance,
		&wallet.CreatedAt,
		&wallet.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}

	return &wallet, nil
}
