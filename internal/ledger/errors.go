package ledger

import (
	"errors"
	"fmt"

	"github.com/go-petr/pet-ledger/pkg/moneypkg"
)

var (
	// ErrCapabilityRequirement matches every *CapabilityRequirementError.
	ErrCapabilityRequirement = errors.New("capability requirement not met")
	// ErrInsufficientFunds matches every *InsufficientFundsError.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInvalidState matches every *InvalidStateError.
	ErrInvalidState = errors.New("invalid state")
	// ErrNegativeAmount indicates an amount below zero where a magnitude is expected.
	ErrNegativeAmount = errors.New("negative amount")
	// ErrInvalidAccountType indicates an unknown account type.
	ErrInvalidAccountType = errors.New("invalid account type")
)

// CapabilityRequirementError is returned when an account lacks something a role needs.
type CapabilityRequirementError struct {
	Role      Role
	AccountID int64
	Missing   string
}

func (e *CapabilityRequirementError) Error() string {
	return fmt.Sprintf("account %d cannot play role %q: missing %s", e.AccountID, e.Role, e.Missing)
}

// Is makes errors.Is(err, ErrCapabilityRequirement) hold.
func (e *CapabilityRequirementError) Is(target error) bool {
	return target == ErrCapabilityRequirement
}

// InsufficientFundsError is returned when a source balance cannot cover a transfer.
type InsufficientFundsError struct {
	AccountID int64
	Balance   moneypkg.Amount
	Requested moneypkg.Amount
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds in account %d: balance %s, requested %s",
		e.AccountID, e.Balance, e.Requested)
}

// Is makes errors.Is(err, ErrInsufficientFunds) hold.
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// InvalidStateError is returned when a context or role is used outside its lifecycle.
type InvalidStateError struct {
	Operation string
	State     State
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: invalid state %s", e.Operation, e.State)
}

// Is makes errors.Is(err, ErrInvalidState) hold.
func (e *InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}
