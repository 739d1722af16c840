// Package transferdelivery manages delivery layer of transfers and bill payments.
package transferdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/ledger"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-petr/pet-ledger/pkg/moneypkg"
	"github.com/go-petr/pet-ledger/pkg/web"
)

// Service provides service layer interface needed by transfer delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transferdelivery
type Service interface {
	Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferResult, error)
	PayBills(ctx context.Context, arg domain.PayBillsParams) (domain.PayBillsResult, error)
}

// Handler facilitates transfer delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transfer handler.
func NewHandler(ts Service) *Handler {
	return &Handler{
		service: ts,
	}
}

func (h *Handler) bindJSON(gctx *gin.Context, l *zerolog.Logger, req any) bool {
	err := gctx.ShouldBindJSON(req)
	if err == nil {
		return true
	}

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

	return false
}

func (h *Handler) serviceError(gctx *gin.Context, l *zerolog.Logger, err error) {
	l.Info().Err(err).Send()

	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		gctx.JSON(http.StatusNotFound, web.Error(err))
		return
	case
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrSameAccount),
		errors.Is(err, domain.ErrNoCreditors),
		errors.Is(err, ledger.ErrNegativeAmount),
		errors.Is(err, ledger.ErrInsufficientFunds),
		errors.Is(err, moneypkg.ErrOutOfRange):
		gctx.JSON(http.StatusBadRequest, web.Error(err))
		return
	}

	gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
}

type request struct {
	FromAccountID int64  `json:"from_account_id" binding:"required,min=1"`
	ToAccountID   int64  `json:"to_account_id" binding:"required,min=1,nefield=FromAccountID"`
	Amount        string `json:"amount" binding:"required,money"`
}

type data struct {
	Transfer domain.TransferResult `json:"transfer"`
}

type response struct {
	Data data `json:"data,omitempty"`
}

// Create handles http request to create a transfer between two accounts.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req request
	if !h.bindJSON(gctx, l, &req) {
		return
	}

	arg := domain.CreateTransferParams{
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
	}

	result, err := h.service.Transfer(ctx, arg)
	if err != nil {
		h.serviceError(gctx, l, err)
		return
	}

	res := response{
		Data: data{result},
	}

	gctx.JSON(http.StatusOK, res)
}

type billsRequest struct {
	SourceAccountID int64   `json:"source_account_id" binding:"required,min=1"`
	CreditorIDs     []int64 `json:"creditor_ids" binding:"required,min=1,dive,min=1"`
}

type billsData struct {
	Bills domain.PayBillsResult `json:"bills"`
}

type billsResponse struct {
	Data billsData `json:"data,omitempty"`
}

// PayBills handles http request to pay the balances of creditors from one account.
//
// Unpaid creditors do not fail the request, they are listed in the response.
func (h *Handler) PayBills(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req billsRequest
	if !h.bindJSON(gctx, l, &req) {
		return
	}

	result, err := h.service.PayBills(ctx, domain.PayBillsParams{
		SourceAccountID: req.SourceAccountID,
		CreditorIDs:     req.CreditorIDs,
	})
	if err != nil {
		h.serviceError(gctx, l, err)
		return
	}

	gctx.JSON(http.StatusOK, billsResponse{Data: billsData{result}})
}
