// Package transferservice manages business logic layer of transfers and bill payments.
package transferservice

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

// AccountRepo provides data access layer interface needed by transfer service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transferservice
type AccountRepo interface {
	Get(ctx context.Context, id int64) (*ledger.Account, error)
	Lock(ids ...int64) (unlock func())
}

// Service facilitates transfer service layer logic.
type Service struct {
	repo    AccountRepo
	metrics *metricspkg.Recorder
	tracer  trace.Tracer
	now     func() time.Time
}

// New return transfer service struct to manage transfer bussines logic.
func New(ar AccountRepo, m *metricspkg.Recorder) *Service {
	return &Service{
		repo:    ar,
		metrics: m,
		tracer:  otel.Tracer("ledger/transferservice"),
		now:     time.Now,
	}
}

// Transfer moves money between two accounts if the source can cover it.
func (s *Service) Transfer(ctx context.Context, arg domain.CreateTransferParams) (res domain.TransferResult, err error) {
	ctx, span := s.tracer.Start(ctx, "transferservice.transfer", trace.WithAttributes(
		tracepkg.AttrFromAccountID.Int64(arg.FromAccountID),
		tracepkg.AttrToAccountID.Int64(arg.ToAccountID),
		tracepkg.AttrAmount.String(arg.Amount),
	))
	defer func() {
		tracepkg.HandleSpanError(span, "failed to transfer", err)
		span.End()
	}()

	l := zerolog.Ctx(ctx)

	amount, err := moneypkg.Parse(arg.Amount)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.TransferResult{}, domain.ErrInvalidAmount
	}

	if arg.FromAccountID == arg.ToAccountID {
		return domain.TransferResult{}, domain.ErrSameAccount
	}

	from, err := s.repo.Get(ctx, arg.FromAccountID)
	if err != nil {
		return domain.TransferResult{}, err
	}

	to, err := s.repo.Get(ctx, arg.ToAccountID)
	if err != nil {
		return domain.TransferResult{}, err
	}

	unlock := s.repo.Lock(arg.FromAccountID, arg.ToAccountID)
	defer unlock()

	result, err := ledger.NewTransfer(from, to, amount, s.now()).Execute()
	s.metrics.Observe(metricspkg.OpTransfer, err)

	if err != nil {
		l.Info().Err(err).Int64("from_account_id", arg.FromAccountID).Int64("to_account_id", arg.ToAccountID).Send()
		return domain.TransferResult{}, err
	}

	return domain.TransferResult{
		TransactionID: result.TransactionID,
		Amount:        result.Amount.String(),
		FromAccount:   domain.NewAccount(from),
		ToAccount:     domain.NewAccount(to),
		Entries:       domain.NewEntries(result.Entries),
	}, nil
}

// PayBills pays the current balance of every creditor, in order, from the source account.
//
// A creditor that cannot be paid is reported in the result and does not stop the run.
func (s *Service) PayBills(ctx context.Context, arg domain.PayBillsParams) (res domain.PayBillsResult, err error) {
	ctx, span := s.tracer.Start(ctx, "transferservice.pay_bills", trace.WithAttributes(
		tracepkg.AttrAccountID.Int64(arg.SourceAccountID),
		tracepkg.AttrCreditors.Int64Slice(arg.CreditorIDs),
	))
	defer func() {
		tracepkg.HandleSpanError(span, "failed to pay bills", err)
		span.End()
	}()

	l := zerolog.Ctx(ctx)

	if len(arg.CreditorIDs) == 0 {
		return domain.PayBillsResult{}, domain.ErrNoCreditors
	}

	source, err := s.repo.Get(ctx, arg.SourceAccountID)
	if err != nil {
		return domain.PayBillsResult{}, err
	}

	creditors := make([]*ledger.Account, 0, len(arg.CreditorIDs))

	for _, id := range arg.CreditorIDs {
		if id == arg.SourceAccountID {
			return domain.PayBillsResult{}, domain.ErrSameAccount
		}

		c, err := s.repo.Get(ctx, id)
		if err != nil {
			return domain.PayBillsResult{}, err
		}

		creditors = append(creditors, c)
	}

	unlock := s.repo.Lock(append([]int64{arg.SourceAccountID}, arg.CreditorIDs...)...)
	defer unlock()

	result, err := ledger.NewPayBills(source, creditors, s.now()).Execute()
	s.metrics.Observe(metricspkg.OpPayBills, err)

	if err != nil {
		l.Error().Err(err).Int64("source_account_id", arg.SourceAccountID).Send()
		return domain.PayBillsResult{}, err
	}

	res = domain.PayBillsResult{
		Source:    domain.NewAccount(source),
		Creditors: make([]domain.Account, 0, len(creditors)),
		Paid:      result.Paid,
		Failed:    make([]domain.BillFailure, 0, len(result.Failed)),
		Transfers: make([]domain.TransferEntry, 0, len(result.Transfers)),
	}

	for _, c := range creditors {
		res.Creditors = append(res.Creditors, domain.NewAccount(c))
	}

	for _, tr := range result.Transfers {
		s.metrics.Observe(metricspkg.OpPayBill, nil)
		res.Transfers = append(res.Transfers, domain.NewTransferEntry(tr))
	}

	for _, f := range result.Failed {
		s.metrics.Observe(metricspkg.OpPayBill, f.Err)
		span.AddEvent("bill not paid", trace.WithAttributes(
			tracepkg.AttrAccountID.Int64(f.CreditorID),
			tracepkg.AttrOutcome.String(metricspkg.Outcome(f.Err)),
		))
		l.Info().Err(f.Err).Int64("creditor_id", f.CreditorID).Msg("bill not paid")

		res.Failed = append(res.Failed, domain.BillFailure{
			CreditorID: f.CreditorID,
			Amount:     f.Amount.String(),
			Error:      f.Err.Error(),
		})
	}

	return res, nil
}
