package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/go-petr/pet-ledger/pkg/moneypkg"
)

// entryContext writes exactly one entry to one account.
type entryContext struct {
	lifecycle
	account *Account
	move    movement
	posting posting
}

func newEntryContext(op string, m movement, account *Account, p posting) entryContext {
	return entryContext{
		lifecycle: lifecycle{op: op},
		account:   account,
		move:      m,
		posting:   p,
	}
}

func (c *entryContext) execute() (Entry, error) {
	if err := c.begin(); err != nil {
		return Entry{}, err
	}
	defer c.finish()

	if c.posting.amount.IsNegative() {
		return Entry{}, ErrNegativeAmount
	}

	role, err := grantAccount(c.account)
	if err != nil {
		return Entry{}, err
	}
	defer role.revoke()

	c.granted()

	e, err := role.record(c.op, c.move, c.posting)
	if err != nil {
		return Entry{}, err
	}

	c.executed()

	return e, nil
}

// Deposit moves money into an account.
type Deposit struct {
	entryContext
}

// NewDeposit returns a deposit of amount into account.
func NewDeposit(account *Account, narrative string, at time.Time, amount moneypkg.Amount) *Deposit {
	return newDeposit(account, posting{txID: uuid.New(), at: at, narrative: narrative, amount: amount})
}

func newDeposit(account *Account, p posting) *Deposit {
	return &Deposit{newEntryContext("deposit", moveIn, account, p)}
}

// Execute appends the deposit entry and returns it.
func (d *Deposit) Execute() (Entry, error) {
	return d.execute()
}

// Withdraw moves money out of an account.
//
// Withdraw does not check the balance and may leave the account negative;
// use Transfer when funds must be available.
type Withdraw struct {
	entryContext
}

// NewWithdraw returns a withdrawal of amount from account.
func NewWithdraw(account *Account, narrative string, at time.Time, amount moneypkg.Amount) *Withdraw {
	return newWithdraw(account, posting{txID: uuid.New(), at: at, narrative: narrative, amount: amount})
}

func newWithdraw(account *Account, p posting) *Withdraw {
	return &Withdraw{newEntryContext("withdraw", moveOut, account, p)}
}

// Execute appends the withdrawal entry and returns it.
func (w *Withdraw) Execute() (Entry, error) {
	return w.execute()
}
