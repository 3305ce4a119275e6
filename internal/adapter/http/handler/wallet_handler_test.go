package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/adapter/http/dto"
	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

type walletServiceStub struct {
	depositFn  func(ctx context.Context, accountID string, input usecase.DepositInput) (*domain.Entry, error)
	transferFn func(ctx context.Context, accountID string, input usecase.TransferInput) ([]*domain.Entry, error)
	reverseFn  func(ctx context.Context, accountID, entryID string) ([]*domain.Entry, error)
	balanceFn  func(ctx context.Context, accountID string) (decimal.Decimal, error)
	listFn     func(ctx context.Context, accountID string, params usecase.ListEntriesParams) ([]*domain.Entry, int64, error)
}

func (s *walletServiceStub) Deposit(ctx context.Context, accountID string, input usecase.DepositInput) (*domain.Entry, error) {
	return s.depositFn(ctx, accountID, input)
}

func (s *walletServiceStub) Transfer(ctx context.Context, accountID string, input usecase.TransferInput) ([]*domain.Entry, error) {
	return s.transferFn(ctx, accountID, input)
}

func (s *walletServiceStub) Reverse(ctx context.Context, accountID, entryID string) ([]*domain.Entry, error) {
	return s.reverseFn(ctx, accountID, entryID)
}

func (s *walletServiceStub) GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	return s.balanceFn(ctx, accountID)
}

func (s *walletServiceStub) ListTransactions(ctx context.Context, accountID string, params usecase.ListEntriesParams) ([]*domain.Entry, int64, error) {
	return s.listFn(ctx, accountID, params)
}

func authedRequest(method, target string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	ctx := domain.WithUser(req.Context(), &domain.User{ID: "user-1", Email: "alice@example.com"})
	return req.WithContext(ctx)
}

func TestWalletHandler_Deposit_Success(t *testing.T) {
	entry := &domain.Entry{
		ID:        "entry-1",
		AccountID: "user-1",
		Type:      domain.EntryTypeDeposit,
		Amount:    10050,
		Status:    domain.EntryStatusCompleted,
	}

	var capturedAccount string
	var capturedInput usecase.DepositInput
	h := NewWalletHandler(&walletServiceStub{
		depositFn: func(ctx context.Context, accountID string, input usecase.DepositInput) (*domain.Entry, error) {
			capturedAccount = accountID
			capturedInput = input
			return entry, nil
		},
	})

	body, _ := json.Marshal(dto.DepositRequest{Amount: decimal.RequireFromString("100.50")})
	rec := httptest.NewRecorder()

	h.Deposit(rec, authedRequest(http.MethodPost, "/wallet/deposit", body))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if capturedAccount != "user-1" {
		t.Errorf("account = %s, want user-1 from auth context", capturedAccount)
	}
	if !capturedInput.Amount.Equal(decimal.RequireFromString("100.50")) {
		t.Errorf("amount = %s, want 100.50", capturedInput.Amount)
	}

	var resp dto.EntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Amount.Equal(decimal.RequireFromString("100.50")) {
		t.Errorf("response amount = %s, want major units 100.50", resp.Amount)
	}
}

func TestWalletHandler_Deposit_Unauthenticated(t *testing.T) {
	h := NewWalletHandler(&walletServiceStub{})

	req := httptest.NewRequest(http.MethodPost, "/wallet/deposit", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()

	h.Deposit(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestWalletHandler_Transfer_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"insufficient balance", domain.ErrInsufficientBalance, http.StatusConflict},
		{"self transfer", domain.ErrSelfTransfer, http.StatusConflict},
		{"unknown recipient", domain.ErrAccountNotFound, http.StatusNotFound},
		{"invalid amount", domain.ErrInvalidAmount, http.StatusBadRequest},
		{"precision", domain.ErrAmountPrecision, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewWalletHandler(&walletServiceStub{
				transferFn: func(ctx context.Context, accountID string, input usecase.TransferInput) ([]*domain.Entry, error) {
					return nil, tt.err
				},
			})

			body, _ := json.Marshal(dto.TransferRequest{
				RecipientID: "user-2",
				Amount:      decimal.RequireFromString("10"),
			})
			rec := httptest.NewRecorder()

			h.Transfer(rec, authedRequest(http.MethodPost, "/wallet/transfer", body))

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestWalletHandler_Reverse_UsesURLParam(t *testing.T) {
	var capturedEntryID string
	h := NewWalletHandler(&walletServiceStub{
		reverseFn: func(ctx context.Context, accountID, entryID string) ([]*domain.Entry, error) {
			capturedEntryID = entryID
			return []*domain.Entry{{ID: "rev-1", AccountID: accountID, Type: domain.EntryTypeReversal, Amount: 100, Status: domain.EntryStatusCompleted}}, nil
		},
	})

	r := chi.NewRouter()
	r.Post("/wallet/transactions/{entryID}/reverse", h.Reverse)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, authedRequest(http.MethodPost, "/wallet/transactions/entry-9/reverse", nil))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if capturedEntryID != "entry-9" {
		t.Errorf("entry id = %s, want entry-9", capturedEntryID)
	}
}

func TestWalletHandler_ListTransactions(t *testing.T) {
	var capturedParams usecase.ListEntriesParams
	h := NewWalletHandler(&walletServiceStub{
		listFn: func(ctx context.Context, accountID string, params usecase.ListEntriesParams) ([]*domain.Entry, int64, error) {
			capturedParams = params
			return []*domain.Entry{
				{ID: "e1", AccountID: accountID, Type: domain.EntryTypeDeposit, Amount: 100, Status: domain.EntryStatusCompleted},
			}, 7, nil
		},
	})

	rec := httptest.NewRecorder()
	h.ListTransactions(rec, authedRequest(http.MethodGet, "/wallet/transactions?page=2&limit=5&type=DEPOSIT", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if capturedParams.Page != 2 || capturedParams.Limit != 5 {
		t.Errorf("params = %+v", capturedParams)
	}
	if capturedParams.Type == nil || *capturedParams.Type != domain.EntryTypeDeposit {
		t.Errorf("type filter = %v, want DEPOSIT", capturedParams.Type)
	}

	var resp dto.PaginatedEntriesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 7 || resp.Page != 2 || resp.Limit != 5 || len(resp.Data) != 1 {
		t.Errorf("response = %+v", resp)
	}
}

func TestWalletHandler_ListTransactions_BadTypeFilter(t *testing.T) {
	h := NewWalletHandler(&walletServiceStub{})

	rec := httptest.NewRecorder()
	h.ListTransactions(rec, authedRequest(http.MethodGet, "/wallet/transactions?type=WITHDRAWAL", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestWalletHandler_GetBalance(t *testing.T) {
	h := NewWalletHandler(&walletServiceStub{
		balanceFn: func(ctx context.Context, accountID string) (decimal.Decimal, error) {
			return decimal.RequireFromString("123.45"), nil
		},
	})

	rec := httptest.NewRecorder()
	h.GetBalance(rec, authedRequest(http.MethodGet, "/wallet/balance", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.BalanceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.AccountID != "user-1" || !resp.Balance.Equal(decimal.RequireFromString("123.45")) {
		t.Errorf("response = %+v", resp)
	}
}
