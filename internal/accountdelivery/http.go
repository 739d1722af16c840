// Package accountdelivery manages delivery layer of accounts and their entries.
package accountdelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/ledger"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-petr/pet-ledger/pkg/moneypkg"
	"github.com/go-petr/pet-ledger/pkg/web"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	Get(ctx context.Context, id int64) (domain.Account, error)
	List(ctx context.Context, pageSize, pageID int32) ([]domain.Account, error)
	Entries(ctx context.Context, id int64) ([]domain.Entry, error)
	Deposit(ctx context.Context, arg domain.CreateEntryParams) (domain.EntryResult, error)
	Withdraw(ctx context.Context, arg domain.CreateEntryParams) (domain.EntryResult, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service         Service
	defaultPageSize int32
}

// NewHandler returns account handler.
//
// defaultPageSize is used by List when the request has no page_size.
func NewHandler(as Service, defaultPageSize int32) Handler {
	return Handler{
		service:         as,
		defaultPageSize: defaultPageSize,
	}
}

type data struct {
	Account domain.Account `json:"account"`
}
type response struct {
	Data data `json:"data,omitempty"`
}

func bindError(gctx *gin.Context, l *zerolog.Logger, err error) {
	var (
		ve     validator.ValidationErrors
		errMsg = err.Error()
	)

	if errors.As(err, &ve) {
		field := ve[0]
		errMsg = field.Field() + web.GetErrorMsg(field)
	}

	l.Info().Err(err).Send()
	gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})
}

func serviceError(gctx *gin.Context, l *zerolog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		gctx.JSON(http.StatusNotFound, web.Error(err))
		return
	case errors.Is(err, domain.ErrAccountAlreadyExists):
		gctx.JSON(http.StatusConflict, web.Error(err))
		return
	case
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidAccountType),
		errors.Is(err, ledger.ErrNegativeAmount),
		errors.Is(err, moneypkg.ErrOutOfRange):
		gctx.JSON(http.StatusBadRequest, web.Error(err))
		return
	}

	l.Error().Err(err).Send()
	gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
}

type createRequest struct {
	ID              int64  `json:"id" binding:"omitempty,min=1"`
	LastName        string `json:"last_name" binding:"required"`
	FirstName       string `json:"first_name" binding:"required"`
	StartingBalance string `json:"starting_balance" binding:"required,money"`
	AccountType     string `json:"account_type" binding:"required,accounttype"`
}

// Create handles http request to open an account.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, l, err)
		return
	}

	createdAccount, err := h.service.Create(ctx, domain.CreateAccountParams{
		ID:              req.ID,
		LastName:        req.LastName,
		FirstName:       req.FirstName,
		StartingBalance: req.StartingBalance,
		AccountType:     req.AccountType,
	})
	if err != nil {
		serviceError(gctx, l, err)
		return
	}

	res := response{
		Data: data{createdAccount},
	}

	gctx.JSON(http.StatusOK, res)
}

type getRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// Get handles http request to get account.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		bindError(gctx, l, err)
		return
	}

	acc, err := h.service.Get(ctx, req.ID)
	if err != nil {
		serviceError(gctx, l, err)
		return
	}

	res := response{
		Data: data{acc},
	}

	gctx.JSON(http.StatusOK, res)
}

type listRequest struct {
	PageID   int32 `form:"page_id" binding:"required,min=1"`
	PageSize int32 `form:"page_size" binding:"omitempty,min=1,max=100"`
}

type dataAccounts struct {
	Accounts []domain.Account `json:"accounts"`
}
type responseAccounts struct {
	Data dataAccounts `json:"data,omitempty"`
}

// List handles http request to list accounts.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		bindError(gctx, l, err)
		return
	}

	if req.PageSize == 0 {
		req.PageSize = h.defaultPageSize
	}

	accounts, err := h.service.List(ctx, req.PageSize, req.PageID)
	if err != nil {
		serviceError(gctx, l, err)
		return
	}

	res := responseAccounts{
		Data: dataAccounts{accounts},
	}

	gctx.JSON(http.StatusOK, res)
}

type dataEntries struct {
	Entries []domain.Entry `json:"entries"`
}
type responseEntries struct {
	Data dataEntries `json:"data,omitempty"`
}

// Entries handles http request to list the entry log of an account.
func (h *Handler) Entries(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		bindError(gctx, l, err)
		return
	}

	entries, err := h.service.Entries(ctx, req.ID)
	if err != nil {
		serviceError(gctx, l, err)
		return
	}

	res := responseEntries{
		Data: dataEntries{entries},
	}

	gctx.JSON(http.StatusOK, res)
}

type entryRequest struct {
	Narrative string    `json:"narrative" binding:"required"`
	Date      time.Time `json:"date"`
	Amount    string    `json:"amount" binding:"required,money"`
}

type responseEntry struct {
	Data domain.EntryResult `json:"data,omitempty"`
}

type postFunc func(ctx context.Context, arg domain.CreateEntryParams) (domain.EntryResult, error)

func (h *Handler) post(gctx *gin.Context, post postFunc) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri getRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		bindError(gctx, l, err)
		return
	}

	var req entryRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, l, err)
		return
	}

	result, err := post(ctx, domain.CreateEntryParams{
		AccountID: uri.ID,
		Narrative: req.Narrative,
		Date:      req.Date,
		Amount:    req.Amount,
	})
	if err != nil {
		serviceError(gctx, l, err)
		return
	}

	gctx.JSON(http.StatusOK, responseEntry{Data: result})
}

// Deposit handles http request to deposit money into an account.
func (h *Handler) Deposit(gctx *gin.Context) {
	h.post(gctx, h.service.Deposit)
}

// Withdraw handles http request to withdraw money from an account.
func (h *Handler) Withdraw(gctx *gin.Context) {
	h.post(gctx, h.service.Withdraw)
}
