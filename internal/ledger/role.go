package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/go-petr/pet-ledger/pkg/moneypkg"
)

// Role names a set of operations an account may perform while a transaction runs.
type Role string

// Roles.
const (
	// RoleAccount may record deposits and withdrawals.
	RoleAccount Role = "account"
	// RoleFundsSource may answer balance questions and fund transfers.
	RoleFundsSource Role = "funds source"
)

type requirement struct {
	name string
	met  func(*Account) bool
}

var (
	hasInfo = requirement{"account info", func(a *Account) bool {
		return a.info != nil
	}}
	hasType = requirement{"account type", func(a *Account) bool {
		_, ok := normalSide[a.info.Type]
		return ok
	}}
	hasLog = requirement{"entry log", func(a *Account) bool {
		return a.log != nil
	}}
)

// requirements lists what an account must have before it may play a role.
// Checks run in order and later checks may rely on earlier ones.
var requirements = map[Role][]requirement{
	RoleAccount:     {hasInfo, hasType, hasLog},
	RoleFundsSource: {hasInfo, hasLog},
}

// grant is one role assigned to one account. It is valid until revoked.
type grant struct {
	role    Role
	account *Account
	revoked bool
}

// assign installs role on account and then validates the role requirements.
// On failure the installation is rolled back and the account is left as it was.
func assign(role Role, account *Account) (*grant, error) {
	if account == nil {
		return nil, &CapabilityRequirementError{Role: role, Missing: "account"}
	}

	g := &grant{role: role, account: account}
	account.install(role)

	for _, req := range requirements[role] {
		if !req.met(account) {
			g.revoke()
			return nil, &CapabilityRequirementError{Role: role, AccountID: account.ID(), Missing: req.name}
		}
	}

	return g, nil
}

// revoke removes the role from the account. Safe to call more than once.
func (g *grant) revoke() {
	if g == nil || g.revoked {
		return
	}

	g.revoked = true
	g.account.uninstall(g.role)
}

func (g *grant) check(op string) error {
	if g.revoked {
		return &InvalidStateError{Operation: op, State: StateRevoked}
	}

	return nil
}

// ledgerAccount is an account playing RoleAccount.
type ledgerAccount struct {
	*grant
}

func grantAccount(a *Account) (ledgerAccount, error) {
	g, err := assign(RoleAccount, a)
	return ledgerAccount{g}, err
}

type posting struct {
	txID      uuid.UUID
	at        time.Time
	narrative string
	amount    moneypkg.Amount
}

func (r ledgerAccount) record(op string, m movement, p posting) (Entry, error) {
	if err := r.check(op); err != nil {
		return Entry{}, err
	}

	if err := r.account.ensureRoom(m, p.amount); err != nil {
		return Entry{}, err
	}

	e := Entry{
		AccountID:     r.account.ID(),
		TransactionID: p.txID,
		Date:          p.at,
		Narrative:     p.narrative,
		Amount:        p.amount,
		Direction:     r.account.direction(m),
	}
	r.account.appendEntry(e)

	return e, nil
}

// fundsSource is an account playing RoleFundsSource.
type fundsSource struct {
	*grant
}

func grantFundsSource(a *Account) (fundsSource, error) {
	g, err := assign(RoleFundsSource, a)
	return fundsSource{g}, err
}

// ensureFunds returns an *InsufficientFundsError when the balance cannot cover amount.
func (s fundsSource) ensureFunds(amount moneypkg.Amount) error {
	if err := s.check("transfer"); err != nil {
		return err
	}

	balance := s.account.Balance()
	if balance.LessThan(amount) {
		return &InsufficientFundsError{AccountID: s.account.ID(), Balance: balance, Requested: amount}
	}

	return nil
}
