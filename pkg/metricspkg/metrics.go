// Package metricspkg provides prometheus counters for ledger operations.
package metricspkg

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/go-petr/pet-ledger/internal/ledger"
	"github.com/go-petr/pet-ledger/pkg/moneypkg"
)

// Operation names used as the operation label.
const (
	OpDeposit  = "deposit"
	OpWithdraw = "withdraw"
	OpTransfer = "transfer"
	OpPayBills = "pay_bills"
	OpPayBill  = "pay_bill"
)

// Recorder counts executed ledger operations by outcome.
//
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	operations *prometheus.CounterVec
}

// New registers the ledger counters with reg and returns a Recorder.
func New(reg prometheus.Registerer) (*Recorder, error) {
	ops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledger",
		Name:      "operations_total",
		Help:      "Executed ledger operations by operation and outcome.",
	}, []string{"operation", "outcome"})

	if err := reg.Register(ops); err != nil {
		return nil, err
	}

	return &Recorder{operations: ops}, nil
}

// Observe counts one execution of op that ended with err.
func (r *Recorder) Observe(op string, err error) {
	if r == nil {
		return
	}

	r.operations.WithLabelValues(op, Outcome(err)).Inc()
}

// Outcome classifies an operation error into a label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ledger.ErrCapabilityRequirement):
		return "capability_requirement"
	case errors.Is(err, ledger.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, moneypkg.ErrOutOfRange):
		return "out_of_range"
	}

	return "error"
}
