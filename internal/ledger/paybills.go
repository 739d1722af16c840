package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-petr/pet-ledger/pkg/moneypkg"
)

// CreditorFailure is a creditor that could not be paid.
type CreditorFailure struct {
	CreditorID int64
	Amount     moneypkg.Amount
	Err        error
}

// PayBillsResult reports which creditors were paid and which were not.
type PayBillsResult struct {
	SourceID  int64
	Paid      []int64
	Failed    []CreditorFailure
	Transfers []TransferResult
}

// Err joins the creditor failures, or returns nil when every creditor was paid.
func (r PayBillsResult) Err() error {
	errs := make([]error, 0, len(r.Failed))
	for _, f := range r.Failed {
		errs = append(errs, fmt.Errorf("creditor %d: %w", f.CreditorID, f.Err))
	}

	return errors.Join(errs...)
}

// PayBills pays off the balance of every creditor from one source account.
//
// Each creditor is an independent transfer: a failed payment is recorded in the result
// and the remaining creditors are still processed in order.
type PayBills struct {
	lifecycle
	source    *Account
	creditors []*Account
	at        time.Time
}

// NewPayBills returns a context paying creditors, in order, from source.
func NewPayBills(source *Account, creditors []*Account, at time.Time) *PayBills {
	return &PayBills{
		lifecycle: lifecycle{op: "pay bills"},
		source:    source,
		creditors: creditors,
		at:        at,
	}
}

// Execute runs one transfer per creditor for the creditor's current balance.
//
// The returned error is only set when the batch could not start at all; per creditor
// failures are reported in PayBillsResult.Failed.
func (p *PayBills) Execute() (PayBillsResult, error) {
	if err := p.begin(); err != nil {
		return PayBillsResult{}, err
	}
	defer p.finish()

	source, err := grantFundsSource(p.source)
	if err != nil {
		return PayBillsResult{}, err
	}
	defer source.revoke()

	p.granted()

	result := PayBillsResult{
		SourceID: p.source.ID(),
		Paid:     []int64{},
		Failed:   []CreditorFailure{},
	}

	for _, creditor := range p.creditors {
		amount := creditor.Balance()

		tr, err := NewTransfer(p.source, creditor, amount, p.at).Execute()
		if err != nil {
			result.Failed = append(result.Failed, CreditorFailure{
				CreditorID: creditor.ID(),
				Amount:     amount,
				Err:        err,
			})

			continue
		}

		result.Paid = append(result.Paid, creditor.ID())
		result.Transfers = append(result.Transfers, tr)
	}

	p.executed()

	return result, nil
}
