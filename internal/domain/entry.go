package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/go-petr/pet-ledger/internal/ledger"
)

// Entry holds one ledger line of an account.
type Entry struct {
	AccountID     int64     `json:"account_id"`
	TransactionID uuid.UUID `json:"transaction_id"`
	Date          time.Time `json:"date"`
	Narrative     string    `json:"narrative"`
	Amount        string    `json:"amount"` // always positive, see Direction
	Direction     string    `json:"direction"`
}

// CreateEntryParams is the input data for a deposit or a withdrawal.
type CreateEntryParams struct {
	AccountID int64     `json:"account_id"`
	Narrative string    `json:"narrative"`
	Date      time.Time `json:"date"`
	Amount    string    `json:"amount"`
}

// EntryResult is the result of a deposit or a withdrawal.
type EntryResult struct {
	Account Account `json:"account"`
	Entry   Entry   `json:"entry"`
}

// NewEntry returns the API view of a ledger entry.
func NewEntry(e ledger.Entry) Entry {
	return Entry{
		AccountID:     e.AccountID,
		TransactionID: e.TransactionID,
		Date:          e.Date,
		Narrative:     e.Narrative,
		Amount:        e.Amount.String(),
		Direction:     e.Direction.String(),
	}
}

// NewEntries returns the API view of ledger entries.
func NewEntries(entries []ledger.Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, NewEntry(e))
	}

	return out
}
