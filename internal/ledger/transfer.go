package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/go-petr/pet-ledger/pkg/moneypkg"
)

// TransferResult describes a completed transfer.
type TransferResult struct {
	TransactionID uuid.UUID
	SourceID      int64
	DestinationID int64
	Amount        moneypkg.Amount
	// Entries holds the withdrawal then the deposit. Empty for a zero amount.
	Entries []Entry
}

// Transfer moves money between two accounts once the source has enough funds.
type Transfer struct {
	lifecycle
	source *Account
	dest   *Account
	amount moneypkg.Amount
	at     time.Time
	txID   uuid.UUID
}

// NewTransfer returns a transfer of amount from source to dest dated at.
func NewTransfer(source, dest *Account, amount moneypkg.Amount, at time.Time) *Transfer {
	return &Transfer{
		lifecycle: lifecycle{op: "transfer"},
		source:    source,
		dest:      dest,
		amount:    amount,
		at:        at,
		txID:      uuid.New(),
	}
}

// Execute checks the source balance and then withdraws from the source and deposits
// into the destination. Both accounts are validated before anything is written, so a
// failed transfer leaves no entries behind.
//
// A zero amount succeeds without writing entries.
func (t *Transfer) Execute() (TransferResult, error) {
	if err := t.begin(); err != nil {
		return TransferResult{}, err
	}
	defer t.finish()

	if t.amount.IsNegative() {
		return TransferResult{}, ErrNegativeAmount
	}

	source, err := grantFundsSource(t.source)
	if err != nil {
		return TransferResult{}, err
	}
	defer source.revoke()

	dest, err := grantAccount(t.dest)
	if err != nil {
		return TransferResult{}, err
	}
	defer dest.revoke()

	t.granted()

	if err := source.ensureFunds(t.amount); err != nil {
		return TransferResult{}, err
	}

	// Both legs must fit before the first one is written.
	if err := t.source.ensureRoom(moveOut, t.amount); err != nil {
		return TransferResult{}, err
	}

	if err := t.dest.ensureRoom(moveIn, t.amount); err != nil {
		return TransferResult{}, err
	}

	result := TransferResult{
		TransactionID: t.txID,
		SourceID:      t.source.ID(),
		DestinationID: t.dest.ID(),
		Amount:        t.amount,
	}

	if t.amount.IsZero() {
		t.executed()
		return result, nil
	}

	// The withdrawal is complete before the deposit starts.
	withdrawal, err := newWithdraw(t.source, posting{
		txID:      t.txID,
		at:        t.at,
		narrative: fmt.Sprintf("Transfer To %d", result.DestinationID),
		amount:    t.amount,
	}).Execute()
	if err != nil {
		return TransferResult{}, err
	}

	deposit, err := newDeposit(t.dest, posting{
		txID:      t.txID,
		at:        t.at,
		narrative: fmt.Sprintf("Transfer From %d", result.SourceID),
		amount:    t.amount,
	}).Execute()
	if err != nil {
		return TransferResult{}, err
	}

	result.Entries = []Entry{withdrawal, deposit}
	t.executed()

	return result, nil
}
