package domain

import "errors"

// Validation errors. Rejected before any lock is taken.
var (
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrAmountPrecision   = errors.New("amount must have at most two decimal places")
	ErrRecipientRequired = errors.New("recipient ID is required")
	ErrEntryIDRequired   = errors.New("entry ID is required")
	ErrInvalidEmail      = errors.New("invalid email address")
	ErrWeakPassword      = errors.New("password must be at least 8 characters")
)

// Not-found errors. An entry owned by someone else is reported as not found
// so non-owners cannot probe for existence.
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrEntryNotFound   = errors.New("entry not found")
)

// Conflict errors. The request is well formed but the ledger state forbids it.
var (
	ErrSelfTransfer        = errors.New("cannot transfer to yourself")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrAlreadyReversed     = errors.New("entry has already been reversed")
	ErrReversalNotAllowed  = errors.New("cannot reverse a reversal entry")
	ErrNegativeBalance     = errors.New("deposits are not allowed when balance is negative")
	ErrEmailTaken          = errors.New("user with this email already exists")
)

// Fatal errors. These indicate a data-integrity or logic bug, not a bad
// request, and are never retried.
var (
	ErrUnsupportedEntryType = errors.New("unsupported entry type for reversal")
	ErrMissingCounterparty  = errors.New("transfer entry is missing its counterparty account")
)
