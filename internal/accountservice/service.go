// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/ledger"
	"github.com/go-petr/pet-ledger/pkg/metricspkg"
	"github.com/go-petr/pet-ledger/pkg/moneypkg"
	"github.com/go-petr/pet-ledger/pkg/tracepkg"
)

// Repo provides data access layer interface needed by account service layer.
type Repo interface {
	Create(ctx context.Context, info ledger.AccountInfo) (*ledger.Account, error)
	Get(ctx context.Context, id int64) (*ledger.Account, error)
	List(ctx context.Context, limit int32, offset int64) ([]*ledger.Account, error)
	Lock(ids ...int64) (unlock func())
}

// Service facilitates account service layer logic.
type Service struct {
	repo    Repo
	metrics *metricspkg.Recorder
	tracer  trace.Tracer
	now     func() time.Time
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo, m *metricspkg.Recorder) *Service {
	return &Service{
		repo:    ar,
		metrics: m,
		tracer:  otel.Tracer("ledger/accountservice"),
		now:     time.Now,
	}
}

// Create opens an account with the given identity and starting balance.
func (s *Service) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	balance, err := moneypkg.Parse(arg.StartingBalance)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.Account{}, domain.ErrInvalidAmount
	}

	accountType, err := ledger.ParseAccountType(arg.AccountType)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.Account{}, domain.ErrInvalidAccountType
	}

	account, err := s.repo.Create(ctx, ledger.AccountInfo{
		ID:              arg.ID,
		LastName:        arg.LastName,
		FirstName:       arg.FirstName,
		StartingBalance: balance,
		Type:            accountType,
	})
	if err != nil {
		return domain.Account{}, err
	}

	unlock := s.repo.Lock(account.ID())
	defer unlock()

	return domain.NewAccount(account), nil
}

// Get returns account for the given account ID.
func (s *Service) Get(ctx context.Context, id int64) (domain.Account, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Account{}, err
	}

	unlock := s.repo.Lock(id)
	defer unlock()

	return domain.NewAccount(account), nil
}

// List returns a page of accounts.
func (s *Service) List(ctx context.Context, pageSize, pageID int32) ([]domain.Account, error) {
	limit := pageSize
	offset := (int64(pageID) - 1) * int64(pageSize)

	accounts, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	items := make([]domain.Account, 0, len(accounts))

	for _, a := range accounts {
		unlock := s.repo.Lock(a.ID())
		items = append(items, domain.NewAccount(a))
		unlock()
	}

	return items, nil
}

// Entries returns the entry log of the account in insertion order.
func (s *Service) Entries(ctx context.Context, id int64) ([]domain.Entry, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	unlock := s.repo.Lock(id)
	defer unlock()

	return domain.NewEntries(account.Entries()), nil
}

// Deposit records a deposit into the account.
func (s *Service) Deposit(ctx context.Context, arg domain.CreateEntryParams) (domain.EntryResult, error) {
	return s.post(ctx, metricspkg.OpDeposit, arg, func(a *ledger.Account, at time.Time, amount moneypkg.Amount) (ledger.Entry, error) {
		return ledger.NewDeposit(a, arg.Narrative, at, amount).Execute()
	})
}

// Withdraw records a withdrawal from the account.
//
// The balance is not checked, a withdrawal may overdraw the account.
func (s *Service) Withdraw(ctx context.Context, arg domain.CreateEntryParams) (domain.EntryResult, error) {
	return s.post(ctx, metricspkg.OpWithdraw, arg, func(a *ledger.Account, at time.Time, amount moneypkg.Amount) (ledger.Entry, error) {
		return ledger.NewWithdraw(a, arg.Narrative, at, amount).Execute()
	})
}

type executeFunc func(a *ledger.Account, at time.Time, amount moneypkg.Amount) (ledger.Entry, error)

func (s *Service) post(ctx context.Context, op string, arg domain.CreateEntryParams, execute executeFunc) (res domain.EntryResult, err error) {
	ctx, span := s.tracer.Start(ctx, "accountservice."+op, trace.WithAttributes(
		tracepkg.AttrAccountID.Int64(arg.AccountID),
		tracepkg.AttrAmount.String(arg.Amount),
	))
	defer func() {
		tracepkg.HandleSpanError(span, "failed to "+op, err)
		span.End()
	}()

	l := zerolog.Ctx(ctx)

	amount, err := moneypkg.Parse(arg.Amount)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.EntryResult{}, domain.ErrInvalidAmount
	}

	account, err := s.repo.Get(ctx, arg.AccountID)
	if err != nil {
		return domain.EntryResult{}, err
	}

	at := arg.Date
	if at.IsZero() {
		at = s.now()
	}

	unlock := s.repo.Lock(arg.AccountID)
	defer unlock()

	entry, err := execute(account, at, amount)
	s.metrics.Observe(op, err)

	if err != nil {
		l.Info().Err(err).Str("operation", op).Int64("account_id", arg.AccountID).Send()
		return domain.EntryResult{}, err
	}

	l.Debug().Str("operation", op).Int64("account_id", arg.AccountID).Str("amount", amount.String()).Msg("entry recorded")

	return domain.EntryResult{
		Account: domain.NewAccount(account),
		Entry:   domain.NewEntry(entry),
	}, nil
}
