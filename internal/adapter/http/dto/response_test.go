package dto

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
)

func TestEntryFromDomain_ConvertsToMajorUnits(t *testing.T) {
	relAccount := "user-2"
	relEntry := "entry-1"

	entry := &domain.Entry{
		ID:               "entry-2",
		AccountID:        "user-1",
		Type:             domain.EntryTypeTransfer,
		Amount:           10050,
		RelatedAccountID: &relAccount,
		RelatedEntryID:   &relEntry,
		Status:           domain.EntryStatusCompleted,
	}

	resp := EntryFromDomain(entry)

	if !resp.Amount.Equal(decimal.RequireFromString("100.5")) {
		t.Errorf("amount = %s, want 100.5", resp.Amount)
	}
	if resp.Type != "TRANSFER" || resp.Status != "COMPLETED" {
		t.Errorf("type/status = %s/%s", resp.Type, resp.Status)
	}
	if resp.RelatedAccountID == nil || *resp.RelatedAccountID != relAccount {
		t.Errorf("related account = %v, want %s", resp.RelatedAccountID, relAccount)
	}
	if resp.RelatedEntryID == nil || *resp.RelatedEntryID != relEntry {
		t.Errorf("related entry = %v, want %s", resp.RelatedEntryID, relEntry)
	}
}

func TestEntriesFromDomain_EmptySlice(t *testing.T) {
	result := EntriesFromDomain(nil)
	if result == nil || len(result) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", result)
	}
}
