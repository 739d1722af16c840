package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/go-petr/pet-ledger/pkg/moneypkg"
)

// Direction is the bookkeeping side of an entry.
type Direction int

// Directions.
const (
	Credit Direction = iota + 1
	Debit
)

func (d Direction) String() string {
	switch d {
	case Credit:
		return "credit"
	case Debit:
		return "debit"
	}

	return "unknown"
}

// Entry is one append-only ledger line of an account.
type Entry struct {
	AccountID int64
	// TransactionID links the entries written by one transaction, e.g. both legs of a transfer.
	TransactionID uuid.UUID
	Date          time.Time
	Narrative     string
	// Amount is always a non-negative magnitude, Direction carries the sign.
	Amount    moneypkg.Amount
	Direction Direction
}

// signed returns the effect of the entry on the nominal balance.
func (e Entry) signed() (moneypkg.Amount, error) {
	if e.Direction == Debit {
		return e.Amount.Neg()
	}

	return e.Amount, nil
}
