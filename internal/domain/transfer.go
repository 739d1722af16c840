package domain

import (
	"errors"

	"github.com/google/uuid"

	"github.com/go-petr/pet-ledger/internal/ledger"
)

var (
	// ErrSameAccount indicates a transfer whose source and destination are the same account.
	ErrSameAccount = errors.New("source and destination accounts are the same")
	// ErrNoCreditors indicates a bill payment without creditors.
	ErrNoCreditors = errors.New("no creditors")
)

// CreateTransferParams is the input data for the transfer transaction.
type CreateTransferParams struct {
	FromAccountID int64  `json:"from_account_id"`
	ToAccountID   int64  `json:"to_account_id"`
	Amount        string `json:"amount"`
}

// TransferResult is the result of the transfer transaction.
type TransferResult struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	Amount        string    `json:"amount"`
	FromAccount   Account   `json:"from_account"`
	ToAccount     Account   `json:"to_account"`
	Entries       []Entry   `json:"entries"`
}

// PayBillsParams is the input data to pay the balances of creditors from one account.
type PayBillsParams struct {
	SourceAccountID int64   `json:"source_account_id"`
	CreditorIDs     []int64 `json:"creditor_ids"`
}

// BillFailure is a creditor that could not be paid.
type BillFailure struct {
	CreditorID int64  `json:"creditor_id"`
	Amount     string `json:"amount"`
	Error      string `json:"error"`
}

// PayBillsResult reports the outcome of a bill payment run.
type PayBillsResult struct {
	Source    Account         `json:"source"`
	Creditors []Account       `json:"creditors"`
	Paid      []int64         `json:"paid"`
	Failed    []BillFailure   `json:"failed"`
	Transfers []TransferEntry `json:"transfers"`
}

// TransferEntry is one transfer made while paying bills.
type TransferEntry struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	CreditorID    int64     `json:"creditor_id"`
	Amount        string    `json:"amount"`
	Entries       []Entry   `json:"entries"`
}

// NewTransferEntry returns the API view of a ledger transfer result.
func NewTransferEntry(r ledger.TransferResult) TransferEntry {
	return TransferEntry{
		TransactionID: r.TransactionID,
		CreditorID:    r.DestinationID,
		Amount:        r.Amount.String(),
		Entries:       NewEntries(r.Entries),
	}
}
