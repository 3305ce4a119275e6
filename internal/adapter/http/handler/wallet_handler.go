package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/adapter/http/dto"
	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

// WalletService is the slice of the wallet use case the handler needs.
type WalletService interface {
	Deposit(ctx context.Context, accountID string, input usecase.DepositInput) (*domain.Entry, error)
	Transfer(ctx context.Context, accountID string, input usecase.TransferInput) ([]*domain.Entry, error)
	Reverse(ctx context.Context, accountID, entryID string) ([]*domain.Entry, error)
	GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error)
	ListTransactions(ctx context.Context, accountID string, params usecase.ListEntriesParams) ([]*domain.Entry, int64, error)
}

// WalletHandler handles wallet HTTP requests. The account is always the
// authenticated user; it is never taken from the request body.
type WalletHandler struct {
	service WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(service WalletService) *WalletHandler {
	return &WalletHandler{service: service}
}

// GetBalance returns the authenticated user's balance.
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	user, ok := domain.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	balance, err := h.service.GetBalance(r.Context(), user.ID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		AccountID: user.ID,
		Balance:   balance,
	})
}

// Deposit credits the authenticated user's wallet.
func (h *WalletHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	user, ok := domain.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.service.Deposit(r.Context(), user.ID, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "deposit failed", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// Transfer moves funds from the authenticated user to another user.
func (h *WalletHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	user, ok := domain.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entries, err := h.service.Transfer(r.Context(), user.ID, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "transfer failed", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntriesFromDomain(entries))
}

// Reverse undoes one of the authenticated user's entries.
func (h *WalletHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	user, ok := domain.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	entryID := chi.URLParam(r, "entryID")

	entries, err := h.service.Reverse(r.Context(), user.ID, entryID)
	if err != nil {
		writeError(w, mapDomainError(err), "reversal failed", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntriesFromDomain(entries))
}

// ListTransactions returns a page of the authenticated user's entry history.
func (h *WalletHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	user, ok := domain.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	params := usecase.ListEntriesParams{
		Page:  parseIntQuery(r, "page", 1),
		Limit: parseIntQuery(r, "limit", usecase.DefaultPageLimit),
	}

	if raw := r.URL.Query().Get("type"); raw != "" {
		entryType := domain.EntryType(raw)
		switch entryType {
		case domain.EntryTypeDeposit, domain.EntryTypeTransfer, domain.EntryTypeReversal:
			params.Type = &entryType
		default:
			writeError(w, http.StatusBadRequest, "invalid type filter", raw)
			return
		}
	}

	entries, total, err := h.service.ListTransactions(r.Context(), user.ID, params)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PaginatedEntriesResponse{
		Data:  dto.EntriesFromDomain(entries),
		Total: total,
		Page:  params.Page,
		Limit: params.Limit,
	})
}
