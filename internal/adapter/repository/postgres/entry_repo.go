package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

const entryColumns = `id, account_id, type, amount, related_account_id, related_entry_id, status, description, created_at, updated_at`

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

// Create inserts a new entry.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO entries (id, account_id, type, amount, related_account_id, related_entry_id, status, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := pgxTx.Exec(ctx, query,
		entry.ID,
		entry.AccountID,
		entry.Type,
		entry.Amount,
		entry.RelatedAccountID,
		entry.RelatedEntryID,
		entry.Status,
		entry.Description,
		entry.CreatedAt,
		entry.UpdatedAt,
	)

	return err
}

// Get retrieves an entry without locking.
func (r *EntryRepository) Get(ctx context.Context, id string) (*domain.Entry, error) {
	query := fmt.Sprintf(`SELECT %s FROM entries WHERE id = $1`, entryColumns)

	return scanEntry(r.pool.QueryRow(ctx, query, id))
}

// GetForUpdate retrieves an entry with a row lock held until the transaction
// ends.
func (r *EntryRepository) GetForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Entry, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := fmt.Sprintf(`SELECT %s FROM entries WHERE id = $1 FOR UPDATE`, entryColumns)

	return scanEntry(pgxTx.QueryRow(ctx, query, id))
}

// SetStatus updates the lifecycle status of an entry.
func (r *EntryRepository) SetStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.EntryStatus, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE entries
		SET status = $2, updated_at = $3
		WHERE id = $1
	`

	tag, err := pgxTx.Exec(ctx, query, id, status, updatedAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// FindRelated retrieves the credit leg pointing at the given debit entry,
// locked for the duration of the transaction.
func (r *EntryRepository) FindRelated(ctx context.Context, tx usecase.Transaction, entryID string) (*domain.Entry, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := fmt.Sprintf(`SELECT %s FROM entries WHERE related_entry_id = $1 AND type = $2 FOR UPDATE`, entryColumns)

	return scanEntry(pgxTx.QueryRow(ctx, query, entryID, domain.EntryTypeTransfer))
}

// ListByAccount returns a page of the account's entries, newest first, plus
// the total matching count.
func (r *EntryRepository) ListByAccount(ctx context.Context, accountID string, params usecase.ListEntriesParams) ([]*domain.Entry, int64, error) {
	countQuery := `SELECT COUNT(*) FROM entries WHERE account_id = $1 AND ($2::text IS NULL OR type = $2)`

	entryType := params.Type

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, accountID, entryType).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM entries
		WHERE account_id = $1 AND ($2::text IS NULL OR type = $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4
	`, entryColumns)

	offset := (params.Page - 1) * params.Limit

	rows, err := r.pool.Query(ctx, query, accountID, entryType, params.Limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []*domain.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func scanEntry(row pgx.Row) (*domain.Entry, error) {
	var entry domain.Entry

	err := row.Scan(
		&entry.ID,
		&entry.AccountID,
		&entry.Type,
		&entry.Amount,
		&entry.RelatedAccountID,
		&entry.RelatedEntryID,
		&entry.Status,
		&entry.Description,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}

	return &entry, nil
}
