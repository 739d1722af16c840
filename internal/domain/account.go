// Package domain provides defenitions of all entities exposed by the ledger API.
package domain

import (
	"errors"

	"github.com/go-petr/pet-ledger/internal/ledger"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountAlreadyExists indicates that an account with the given id already exists.
	ErrAccountAlreadyExists = errors.New("account already exists")
	// ErrInvalidAccountType indicates that the account type is neither asset nor liability.
	ErrInvalidAccountType = errors.New("invalid account type")
	// ErrInvalidAmount indicates invalid amount.
	ErrInvalidAmount = errors.New("invalid amount")
)

// Account holds identity and derived balance of a ledger account.
type Account struct {
	ID              int64  `json:"id"`
	LastName        string `json:"last_name"`
	FirstName       string `json:"first_name"`
	AccountType     string `json:"account_type"`
	StartingBalance string `json:"starting_balance"`
	Balance         string `json:"balance"`
}

// CreateAccountParams is the input data to open an account.
//
// A zero ID lets the repository pick the next free one.
type CreateAccountParams struct {
	ID              int64  `json:"id"`
	LastName        string `json:"last_name"`
	FirstName       string `json:"first_name"`
	StartingBalance string `json:"starting_balance"`
	AccountType     string `json:"account_type"`
}

// NewAccount returns the API view of a ledger account.
//
// The caller must hold the account lock.
func NewAccount(a *ledger.Account) Account {
	info := a.Info()

	return Account{
		ID:              info.ID,
		LastName:        info.LastName,
		FirstName:       info.FirstName,
		AccountType:     info.Type.String(),
		StartingBalance: info.StartingBalance.String(),
		Balance:         a.Balance().String(),
	}
}
