// Package ledger implements accounts with an append-only entry log and the transaction
// contexts (deposit, withdraw, transfer, pay bills) that write to them.
//
// Accounts never expose a way to append entries. A context assigns a role to the
// accounts it works on, uses the role for the duration of its Execute call and revokes it
// before returning, so entries can only be written from inside a transaction.
package ledger

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-petr/pet-ledger/pkg/moneypkg"
)

// AccountType tells which bookkeeping side increases an account.
type AccountType int

// Account types.
const (
	Asset AccountType = iota + 1
	Liability
)

func (t AccountType) String() string {
	switch t {
	case Asset:
		return "asset"
	case Liability:
		return "liability"
	}

	return "unknown"
}

// ParseAccountType returns the account type named by s ("asset" or "liability").
func ParseAccountType(s string) (AccountType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asset":
		return Asset, nil
	case "liability":
		return Liability, nil
	}

	return 0, ErrInvalidAccountType
}

type movement int

const (
	moveIn movement = iota
	moveOut
)

// normalSide maps a money movement to the direction recorded on each account type.
var normalSide = map[AccountType]map[movement]Direction{
	Asset:     {moveIn: Credit, moveOut: Debit},
	Liability: {moveIn: Debit, moveOut: Credit},
}

// AccountInfo is the immutable identity of an account.
type AccountInfo struct {
	ID              int64
	LastName        string
	FirstName       string
	StartingBalance moneypkg.Amount
	Type            AccountType
}

type entryLog struct {
	entries []Entry
}

// Account is an identity plus its entry log. The balance is always derived from both.
//
// Accounts must be shared by pointer so every context sees the same log.
type Account struct {
	info  *AccountInfo
	log   *entryLog
	roles map[Role]int
}

// NewAccount returns an account with an empty entry log.
func NewAccount(info AccountInfo) (*Account, error) {
	if _, ok := normalSide[info.Type]; !ok {
		return nil, ErrInvalidAccountType
	}

	return &Account{
		info: &info,
		log:  &entryLog{},
	}, nil
}

// ID returns the account ID, or zero for an account without info.
func (a *Account) ID() int64 {
	if a == nil || a.info == nil {
		return 0
	}

	return a.info.ID
}

// Info returns the account identity.
func (a *Account) Info() AccountInfo {
	if a == nil || a.info == nil {
		return AccountInfo{}
	}

	return *a.info
}

// Balance folds the entries onto the starting balance: credits add, debits subtract.
func (a *Account) Balance() moneypkg.Amount {
	balance, err := a.fold()
	if err != nil {
		// appendEntry only accepts entries whose fold stays in range.
		panic(err)
	}

	return balance
}

// fold returns the balance after the logged entries and then extra.
func (a *Account) fold(extra ...Entry) (moneypkg.Amount, error) {
	balance := moneypkg.Zero
	if a == nil {
		return balance, nil
	}

	if a.info != nil {
		balance = a.info.StartingBalance
	}

	var logged []Entry
	if a.log != nil {
		logged = a.log.entries
	}

	for _, entries := range [][]Entry{logged, extra} {
		for _, e := range entries {
			signed, err := e.signed()
			if err != nil {
				return moneypkg.Zero, err
			}

			if balance, err = balance.Add(signed); err != nil {
				return moneypkg.Zero, err
			}
		}
	}

	return balance, nil
}

// Entries returns a copy of the entry log in insertion order.
func (a *Account) Entries() []Entry {
	if a == nil || a.log == nil {
		return nil
	}

	out := make([]Entry, len(a.log.entries))
	copy(out, a.log.entries)

	return out
}

// Roles returns the roles currently assigned to the account, sorted by name.
func (a *Account) Roles() []Role {
	if a == nil {
		return nil
	}

	out := make([]Role, 0, len(a.roles))
	for r := range a.roles {
		out = append(out, r)
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// direction returns how a movement is recorded on this account.
func (a *Account) direction(m movement) Direction {
	return normalSide[a.info.Type][m]
}

// ensureRoom fails when recording amount as movement m would take the balance out of range.
func (a *Account) ensureRoom(m movement, amount moneypkg.Amount) error {
	_, err := a.fold(Entry{Amount: amount, Direction: a.direction(m)})
	if err != nil {
		return fmt.Errorf("balance of account %d: %w", a.ID(), err)
	}

	return nil
}

func (a *Account) appendEntry(e Entry) {
	a.log.entries = append(a.log.entries, e)
}

func (a *Account) install(r Role) {
	if a.roles == nil {
		a.roles = make(map[Role]int)
	}

	a.roles[r]++
}

func (a *Account) uninstall(r Role) {
	if a.roles[r] <= 1 {
		delete(a.roles, r)
		return
	}

	a.roles[r]--
}
